package diag

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jetstream-proto/jetstream/wire"
)

func TestDiagnosticRoundTrip(t *testing.T) {
	code := "example.div_by_zero"
	help := "b must be non-zero"
	url := "https://example.com/errors/div-by-zero"
	sev := SeverityError
	d := Diagnostic{
		Message:  "b is zero",
		Code:     &code,
		Severity: &sev,
		Help:     &help,
		URL:      &url,
		Labels: []Label{
			{Offset: 4, Length: 1, Primary: true},
		},
		Backtrace: &Backtrace{Frames: []string{"divide", "dispatch"}},
	}

	var buf bytes.Buffer
	if err := d.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if uint32(buf.Len()) != d.ByteSize() {
		t.Fatalf("ByteSize = %d, encode wrote %d", d.ByteSize(), buf.Len())
	}

	got, err := DecodeDiagnostic(&buf)
	if err != nil {
		t.Fatalf("DecodeDiagnostic: %v", err)
	}
	if got.Message != d.Message {
		t.Errorf("Message = %q, want %q", got.Message, d.Message)
	}
	if got.Code == nil || *got.Code != code {
		t.Errorf("Code = %v, want %q", got.Code, code)
	}
	if got.Severity == nil || *got.Severity != SeverityError {
		t.Errorf("Severity = %v, want Error", got.Severity)
	}
	if len(got.Labels) != 1 || got.Labels[0].Offset != 4 {
		t.Errorf("Labels = %+v", got.Labels)
	}
	if got.Backtrace == nil || len(got.Backtrace.Frames) != 2 {
		t.Errorf("Backtrace = %+v", got.Backtrace)
	}
}

func TestDiagnosticMinimal(t *testing.T) {
	d := NewDiagnostic("oops")
	var buf bytes.Buffer
	if err := d.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	got, err := DecodeDiagnostic(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Message != "oops" || got.Code != nil || got.Severity != nil {
		t.Fatalf("got %+v", got)
	}
}

func TestSeverityInvalidByte(t *testing.T) {
	_, err := ReadSeverity(bytes.NewReader([]byte{9}))
	if !errors.Is(err, wire.ErrInvalidData) {
		t.Fatalf("err = %v, want ErrInvalidData", err)
	}
}

func TestSeverityRoundTrip(t *testing.T) {
	for _, s := range []Severity{SeverityAdvice, SeverityWarning, SeverityError} {
		var buf bytes.Buffer
		if err := WriteSeverity(&buf, s); err != nil {
			t.Fatal(err)
		}
		got, err := ReadSeverity(&buf)
		if err != nil {
			t.Fatal(err)
		}
		if got != s {
			t.Fatalf("got %v, want %v", got, s)
		}
	}
}
