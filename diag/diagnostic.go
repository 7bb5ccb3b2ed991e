// Package diag implements JetStream's structured error model (C3): a
// wire-encodable Diagnostic (message, code, severity, help, url, labeled
// source spans, backtrace) for application errors, and a local Kind/Error
// pair for everything that never crosses the wire.
//
// The Diagnostic shape is grounded on the original Rust crate's
// MietteDiagnostic wire encoding
// (components/jetstream_wireformat/src/miette.rs): every field is
// Option-wrapped except the message.
package diag

import (
	"io"

	"github.com/jetstream-proto/jetstream/wire"
)

// Severity classifies a Diagnostic the way a compiler classifies a
// lint: advice is informational, warning is non-fatal, error is fatal.
type Severity uint8

const (
	SeverityAdvice  Severity = 0
	SeverityWarning Severity = 1
	SeverityError   Severity = 2
)

func (s Severity) String() string {
	switch s {
	case SeverityAdvice:
		return "advice"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// SizeSeverity is the byte size of an encoded Severity. Always 1.
func SizeSeverity(Severity) uint32 { return 1 }

// WriteSeverity encodes a Severity as a single byte (0/1/2).
func WriteSeverity(w io.Writer, s Severity) error {
	return wire.WriteU8(w, uint8(s))
}

// ReadSeverity decodes a Severity byte. Any value other than 0, 1, or 2
// is wire.ErrInvalidData.
func ReadSeverity(r io.Reader) (Severity, error) {
	b, err := wire.ReadU8(r)
	if err != nil {
		return 0, err
	}
	switch b {
	case 0, 1, 2:
		return Severity(b), nil
	default:
		return 0, wire.ErrInvalidData
	}
}

// Label annotates a byte range of some source text the diagnostic
// refers to — a labeled span in the original crate's terms
// (miette::LabeledSpan). Text is the optional annotation shown next to
// the span; Primary marks the span that should be highlighted as the
// main culprit when more than one label is present.
type Label struct {
	Text    *string
	Offset  uint32
	Length  uint32
	Primary bool
}

// ByteSize returns the encoded size of l.
func (l Label) ByteSize() uint32 {
	return wire.SizeOption(l.Text, wire.SizeString) +
		wire.SizeU32(l.Offset) + wire.SizeU32(l.Length) + wire.SizeBool(l.Primary)
}

// Encode writes l's wire encoding.
func (l Label) Encode(w io.Writer) error {
	if err := wire.WriteOption(w, l.Text, wire.WriteString); err != nil {
		return err
	}
	if err := wire.WriteU32(w, l.Offset); err != nil {
		return err
	}
	if err := wire.WriteU32(w, l.Length); err != nil {
		return err
	}
	return wire.WriteBool(w, l.Primary)
}

// DecodeLabel decodes a Label.
func DecodeLabel(r io.Reader) (Label, error) {
	text, err := wire.ReadOption(r, wire.ReadString)
	if err != nil {
		return Label{}, err
	}
	offset, err := wire.ReadU32(r)
	if err != nil {
		return Label{}, err
	}
	length, err := wire.ReadU32(r)
	if err != nil {
		return Label{}, err
	}
	primary, err := wire.ReadBool(r)
	if err != nil {
		return Label{}, err
	}
	return Label{Text: text, Offset: offset, Length: length, Primary: primary}, nil
}

func sizeLabel(l Label) uint32               { return l.ByteSize() }
func encodeLabel(w io.Writer, l Label) error { return l.Encode(w) }

// Backtrace is a compact, interned representation of a span trace: just
// the ordered list of frame names that produced the error. The original
// crate's jetstream_error::backtrace module captures a richer tree; this
// is the wire-shaped projection of it that is cheap to carry across a
// connection.
type Backtrace struct {
	Frames []string
}

// ByteSize returns the encoded size of b.
func (b Backtrace) ByteSize() uint32 {
	return wire.SizeSlice(b.Frames, wire.SizeString)
}

// Encode writes b's wire encoding.
func (b Backtrace) Encode(w io.Writer) error {
	return wire.WriteSlice(w, b.Frames, wire.WriteString)
}

// DecodeBacktrace decodes a Backtrace.
func DecodeBacktrace(r io.Reader) (Backtrace, error) {
	frames, err := wire.ReadSlice(r, wire.ReadString)
	if err != nil {
		return Backtrace{}, err
	}
	return Backtrace{Frames: frames}, nil
}

// Diagnostic is the structured application error carried in the wire's
// reserved error frame (spec.md §3, §4.3, §7). Every field but Message
// is optional, matching miette::MietteDiagnostic's wire shape.
type Diagnostic struct {
	Message   string
	Code      *string
	Severity  *Severity
	Help      *string
	URL       *string
	Labels    []Label
	Backtrace *Backtrace
}

// ByteSize returns the encoded size of d.
func (d Diagnostic) ByteSize() uint32 {
	size := wire.SizeString(d.Message) +
		wire.SizeOption(d.Code, wire.SizeString) +
		wire.SizeOption(d.Severity, SizeSeverity) +
		wire.SizeOption(d.Help, wire.SizeString) +
		wire.SizeOption(d.URL, wire.SizeString) +
		wire.SizeSlice(d.Labels, sizeLabel)
	return size + sizeBacktraceOption(d.Backtrace)
}

// Encode writes d's wire encoding: message, code, severity, help, url,
// labels, backtrace — in that order.
func (d Diagnostic) Encode(w io.Writer) error {
	if err := wire.WriteString(w, d.Message); err != nil {
		return err
	}
	if err := wire.WriteOption(w, d.Code, wire.WriteString); err != nil {
		return err
	}
	if err := wire.WriteOption(w, d.Severity, WriteSeverity); err != nil {
		return err
	}
	if err := wire.WriteOption(w, d.Help, wire.WriteString); err != nil {
		return err
	}
	if err := wire.WriteOption(w, d.URL, wire.WriteString); err != nil {
		return err
	}
	if err := wire.WriteSlice(w, d.Labels, encodeLabel); err != nil {
		return err
	}
	return writeBacktraceOption(w, d.Backtrace)
}

// DecodeDiagnostic decodes a Diagnostic.
func DecodeDiagnostic(r io.Reader) (Diagnostic, error) {
	message, err := wire.ReadString(r)
	if err != nil {
		return Diagnostic{}, err
	}
	code, err := wire.ReadOption(r, wire.ReadString)
	if err != nil {
		return Diagnostic{}, err
	}
	severity, err := wire.ReadOption(r, ReadSeverity)
	if err != nil {
		return Diagnostic{}, err
	}
	help, err := wire.ReadOption(r, wire.ReadString)
	if err != nil {
		return Diagnostic{}, err
	}
	url, err := wire.ReadOption(r, wire.ReadString)
	if err != nil {
		return Diagnostic{}, err
	}
	labels, err := wire.ReadSlice(r, DecodeLabel)
	if err != nil {
		return Diagnostic{}, err
	}
	backtrace, err := readBacktraceOption(r)
	if err != nil {
		return Diagnostic{}, err
	}
	return Diagnostic{
		Message:   message,
		Code:      code,
		Severity:  severity,
		Help:      help,
		URL:       url,
		Labels:    labels,
		Backtrace: backtrace,
	}, nil
}

// NewDiagnostic builds a Diagnostic with only a message set — the minimal
// valid form, matching miette::MietteDiagnostic::new.
func NewDiagnostic(message string) Diagnostic {
	return Diagnostic{Message: message}
}

// WithCode sets the diagnostic's dotted code (e.g.
// "jetstream.rpc.timeout") and returns d for chaining.
func (d Diagnostic) WithCode(code string) Diagnostic {
	d.Code = &code
	return d
}

// WithSeverity sets the diagnostic's severity and returns d for chaining.
func (d Diagnostic) WithSeverity(s Severity) Diagnostic {
	d.Severity = &s
	return d
}

// WithHelp sets the diagnostic's help text and returns d for chaining.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = &help
	return d
}

// WithURL sets the diagnostic's reference URL and returns d for chaining.
func (d Diagnostic) WithURL(url string) Diagnostic {
	d.URL = &url
	return d
}

// WithLabels sets the diagnostic's labeled spans and returns d for
// chaining.
func (d Diagnostic) WithLabels(labels []Label) Diagnostic {
	d.Labels = labels
	return d
}

func sizeBacktraceOption(b *Backtrace) uint32 {
	if b == nil {
		return 1
	}
	return 1 + b.ByteSize()
}

func writeBacktraceOption(w io.Writer, b *Backtrace) error {
	if b == nil {
		return wire.WriteU8(w, 0)
	}
	if err := wire.WriteU8(w, 1); err != nil {
		return err
	}
	return b.Encode(w)
}

func readBacktraceOption(r io.Reader) (*Backtrace, error) {
	tag, err := wire.ReadU8(r)
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0:
		return nil, nil
	case 1:
		b, err := DecodeBacktrace(r)
		if err != nil {
			return nil, err
		}
		return &b, nil
	default:
		return nil, wire.ErrInvalidData
	}
}
