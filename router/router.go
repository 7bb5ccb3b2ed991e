// Package router implements the protocol-name-to-handler registry
// (C9): given an accepted transport.Conn, it runs the server side of
// the version handshake and, on success, invokes the resolved
// handler with the post-handshake stream (spec.md §4.9).
//
// Grounded on the original Rust crate's router.rs (with_handler,
// accept) nearly 1:1.
package router

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jetstream-proto/jetstream/diag"
	"github.com/jetstream-proto/jetstream/handshake"
	"github.com/jetstream-proto/jetstream/peer"
	"github.com/jetstream-proto/jetstream/transport"
)

// HandlerFunc is a resolved connection handler: given the
// post-handshake reader/writer (conn itself, already past Tversion/
// Rversion), the negotiated msize, and the peer context, it services
// requests until the stream closes (spec.md §4.9's handler contract).
type HandlerFunc func(ctx context.Context, conn transport.Conn, peerCtx peer.Context, msize uint32) error

// Router holds a protocol-name → handler mapping and runs the
// handshake for each accepted connection (spec.md §4.9).
type Router struct {
	maxMsize uint32
	log      *zap.Logger

	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// New builds an empty Router. maxMsize is this server's ceiling on the
// negotiated msize (spec.md §4.5 step 4: "min(server_max, t.msize)").
func New(maxMsize uint32, log *zap.Logger) *Router {
	if log == nil {
		log = zap.NewNop()
	}
	return &Router{maxMsize: maxMsize, log: log, handlers: make(map[string]HandlerFunc)}
}

// WithHandler registers fn under handlerKey — normally a generated
// service's lowercased name, or a legacy "9P2000"/"9P2000.L" token —
// and returns r for chaining.
func (r *Router) WithHandler(handlerKey string, fn HandlerFunc) *Router {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[handlerKey] = fn
	return r
}

// resolve reports whether handlerKey has a registered handler, the
// shape handshake.Resolver expects.
func (r *Router) resolve(handlerKey string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[handlerKey]
	return ok
}

// Accept runs the server handshake on conn and, on success, invokes
// the resolved handler with the still-open connection (spec.md §4.9).
// It returns the handshake or handler error on failure; the caller is
// responsible for closing conn once Accept returns.
func (r *Router) Accept(ctx context.Context, conn transport.Conn) error {
	v, msize, err := handshake.ServerHandshake(conn, conn, r.maxMsize, r.resolve)
	if err != nil {
		r.log.Debug("jetstream: handshake rejected", zap.Error(err))
		return err
	}

	r.mu.RLock()
	fn, ok := r.handlers[v.HandlerKey()]
	r.mu.RUnlock()
	if !ok {
		// resolve() said yes during the handshake but the handler was
		// unregistered concurrently; treat it the same as never having
		// been found.
		return diag.Newf(diag.KindNoHandler, "no handler registered for %q", v.HandlerKey())
	}

	r.log.Info("jetstream: accepted connection", zap.String("protocol", v.HandlerKey()), zap.Uint32("msize", msize))
	if err := fn(ctx, conn, conn.Context(), msize); err != nil {
		return fmt.Errorf("router: handler %q: %w", v.HandlerKey(), err)
	}
	return nil
}

// Serve accepts connections from l until ctx is done or l.Accept fails
// terminally, running Accept on each in its own goroutine.
func (r *Router) Serve(ctx context.Context, l transport.Listener) error {
	for {
		conn, err := l.Accept(ctx)
		if err != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				r.log.Warn("jetstream: accept error", zap.Error(err))
				continue
			}
		}

		go func() {
			defer conn.Close()
			if err := r.Accept(ctx, conn); err != nil {
				r.log.Warn("jetstream: connection error", zap.Error(err))
			}
		}()
	}
}
