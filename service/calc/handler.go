package calc

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jetstream-proto/jetstream/diag"
	"github.com/jetstream-proto/jetstream/wire"
)

// Server is the reference calc Handler: it exercises application-level
// errors (Divide), out-of-order completion under concurrent load (Slow
// versus Fast), and mid-flight cancellation (Sleep) — spec.md §8's
// remaining scenarios.
type Server struct {
	log *zap.Logger
}

// NewServer builds a calc Server. A nil logger is replaced with a no-op
// one.
func NewServer(log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{log: log}
}

var _ Handler = (*Server)(nil)

// Divide returns a div_by_zero application error when b is zero,
// instead of panicking on the Go division (spec.md §8 scenario 5: "an
// application error crosses the wire as a Diagnostic, not a transport
// failure").
func (s *Server) Divide(ctx context.Context, a, b int32) (int32, error) {
	if b == 0 {
		return 0, diag.WithCode("division by zero", "example::div_by_zero")
	}
	return a / b, nil
}

// Slow sleeps for ms milliseconds, then echoes ms back — used alongside
// Fast to demonstrate that a session delivers responses out of the
// order their requests were sent in (spec.md §8 scenario 4).
func (s *Server) Slow(ctx context.Context, ms uint32) (uint32, error) {
	select {
	case <-time.After(time.Duration(ms) * time.Millisecond):
		return ms, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Fast returns immediately, racing ahead of any outstanding Slow call on
// the same session (spec.md §8 scenario 4).
func (s *Server) Fast(ctx context.Context) (uint32, error) {
	return 0, nil
}

// Sleep sleeps for ms milliseconds and returns. A caller that cancels or
// times out its RPC context while this is still running never sees the
// eventual response — its tag is already released and reused (spec.md
// §8 scenario 6).
func (s *Server) Sleep(ctx context.Context, ms uint32) (wire.Unit, error) {
	select {
	case <-time.After(time.Duration(ms) * time.Millisecond):
		return wire.Unit{}, nil
	case <-ctx.Done():
		return wire.Unit{}, ctx.Err()
	}
}
