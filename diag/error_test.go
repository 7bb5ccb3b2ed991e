package diag

import (
	"errors"
	"io"
	"testing"
)

func TestErrorIsSentinel(t *testing.T) {
	err := Newf(KindTimeout, "rpc exceeded %s", "5s").WithTag(42)
	if !errors.Is(err, Timeout) {
		t.Fatalf("errors.Is(err, Timeout) = false, want true")
	}
	if errors.Is(err, Cancelled) {
		t.Fatalf("errors.Is(err, Cancelled) = true, want false")
	}
}

func TestErrorUnwrap(t *testing.T) {
	err := Wrap(KindTransport, io.ErrClosedPipe)
	if !errors.Is(err, io.ErrClosedPipe) {
		t.Fatalf("errors.Is(err, io.ErrClosedPipe) = false, want true")
	}
	if !errors.Is(err, Transport) {
		t.Fatalf("errors.Is(err, Transport) = false, want true")
	}
}

func TestFromDiagnostic(t *testing.T) {
	err := WithCode("b is zero", "example.div_by_zero")
	if err.Kind != KindApplication {
		t.Fatalf("Kind = %v, want application", err.Kind)
	}
	if err.Diagnostic == nil || *err.Diagnostic.Code != "example.div_by_zero" {
		t.Fatalf("Diagnostic = %+v", err.Diagnostic)
	}
	if *err.Diagnostic.Severity != SeverityError {
		t.Fatalf("Severity = %v, want Error", err.Diagnostic.Severity)
	}
}
