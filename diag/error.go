package diag

import (
	"errors"
	"fmt"
)

// Kind partitions JetStream errors into the classes spec.md §4.3 and §7
// define. Only Application ever crosses the wire (as an encoded
// Diagnostic in the reserved error frame); every other kind is local to
// the side that observed it.
type Kind string

const (
	KindTransport          Kind = "transport"
	KindDecode             Kind = "decode"
	KindVersionMismatch    Kind = "version-mismatch"
	KindNoHandler          Kind = "no-handler"
	KindUnexpectedResponse Kind = "unexpected-response"
	KindUnknownTag         Kind = "unknown-tag"
	KindTimeout            Kind = "timeout"
	KindCancelled          Kind = "cancelled"
	KindApplication        Kind = "application"
)

// Error is the error type returned to callers across every JetStream
// surface: the mux's RPC calls, the router's Accept, and handler
// dispatch. Kind identifies which of spec.md §4.3's nine buckets this
// is; Diagnostic is populated only for KindApplication.
type Error struct {
	Kind       Kind
	Message    string
	Tag        uint16
	HasTag     bool
	Diagnostic *Diagnostic
	Err        error // underlying transport/decode error, if any
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Diagnostic != nil {
		msg = e.Diagnostic.Message
	}
	if e.HasTag {
		if e.Err != nil {
			return fmt.Sprintf("jetstream: %s (tag %d): %s: %v", e.Kind, e.Tag, msg, e.Err)
		}
		return fmt.Sprintf("jetstream: %s (tag %d): %s", e.Kind, e.Tag, msg)
	}
	if e.Err != nil {
		return fmt.Sprintf("jetstream: %s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("jetstream: %s: %s", e.Kind, msg)
}

// Unwrap exposes the underlying transport/decode error for errors.Is/As.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, so callers
// can write errors.Is(err, diag.Timeout) style checks against the
// sentinel values below.
func (e *Error) Is(target error) bool {
	var o *Error
	if errors.As(target, &o) {
		return o.Kind == e.Kind && o.Message == "" && o.Diagnostic == nil
	}
	return false
}

// sentinel constructs a bare *Error of the given kind, used as an
// errors.Is target: errors.Is(err, diag.Timeout).
func sentinel(k Kind) *Error { return &Error{Kind: k} }

// Sentinel values for errors.Is comparisons against a Kind, independent
// of the message/tag/diagnostic on the concrete error.
var (
	Timeout            = sentinel(KindTimeout)
	Cancelled          = sentinel(KindCancelled)
	UnknownTag         = sentinel(KindUnknownTag)
	UnexpectedResponse = sentinel(KindUnexpectedResponse)
	Transport          = sentinel(KindTransport)
	Decode             = sentinel(KindDecode)
	VersionMismatch    = sentinel(KindVersionMismatch)
	NoHandler          = sentinel(KindNoHandler)
)

// New builds a plain local error of the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf builds a plain local error of the given kind with a formatted
// message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds a local error of the given kind that carries an underlying
// transport/decode error.
func Wrap(kind Kind, err error) *Error {
	return &Error{Kind: kind, Message: err.Error(), Err: err}
}

// WithTag returns a copy of e annotated with the tag it occurred on.
func (e *Error) WithTag(tag uint16) *Error {
	cp := *e
	cp.Tag = tag
	cp.HasTag = true
	return &cp
}

// FromDiagnostic builds a KindApplication error carrying d, the shape
// that crosses the wire in the reserved error frame (spec.md §4.3).
func FromDiagnostic(d Diagnostic) *Error {
	return &Error{Kind: KindApplication, Message: d.Message, Diagnostic: &d}
}

// WithCode builds a KindApplication error directly from a message and a
// dotted code, the common case for a handler-side failure
// (spec.md §7 scenario 5).
func WithCode(message, code string) *Error {
	return FromDiagnostic(NewDiagnostic(message).WithCode(code).WithSeverity(SeverityError))
}
