package echo

import (
	"context"

	"go.uber.org/zap"

	"github.com/jetstream-proto/jetstream/wire"
)

// Server is the reference echo Handler: it proves out the generated
// Client/Dispatcher pair end to end (spec.md §8's ping/echo scenarios)
// and is deliberately stateless — there is nothing here worth getting
// wrong.
type Server struct {
	log *zap.Logger
}

// NewServer builds an echo Server. A nil logger is replaced with a
// no-op one.
func NewServer(log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{log: log}
}

var _ Handler = (*Server)(nil)

// Ping answers every call with no data, exercising the zero-payload
// request/response pair (spec.md §8 scenario 1).
func (s *Server) Ping(ctx context.Context) (wire.Unit, error) {
	return wire.Unit{}, nil
}

// Echo returns message unchanged, exercising a string-carrying
// request/response pair (spec.md §8 scenario 2).
func (s *Server) Echo(ctx context.Context, message string) (string, error) {
	s.log.Debug("echo: serving request", zap.String("message", message))
	return message, nil
}
