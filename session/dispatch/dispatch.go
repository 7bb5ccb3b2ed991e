// Package dispatch implements the server-side per-connection dispatcher
// (C8, server half): it reads frames off one connection already past
// the version handshake, fans each one out to a per-request goroutine
// keyed by tag, and serializes writes back onto the connection so
// concurrent handlers' responses never interleave their bytes.
//
// Grounded on the original Rust crate's router.rs (`impl Handler for
// T`'s per-request task fan-out over a shared response writer) and
// other_examples/.../droyo-styx's Conn (the per-tag state map).
package dispatch

import (
	"context"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/jetstream-proto/jetstream/diag"
	"github.com/jetstream-proto/jetstream/frame"
	"github.com/jetstream-proto/jetstream/peer"
	"github.com/jetstream-proto/jetstream/transport"
)

// Handler is implemented by generated service dispatchers: given a
// decoded request frame, it calls the user handler and returns the
// response union to send back, tagged with the same tag (spec.md §4.6
// "the dispatcher preserves the request's tag").
type Handler interface {
	// Dispatch decodes msgType/payload as a request variant, invokes
	// the matching method handler with ctx, and returns the response
	// framer to write back. Dispatch itself never returns an error for
	// an application failure — that is wrapped into the response
	// union's error variant by the generated dispatcher — only for a
	// malformed request it cannot even decode.
	Dispatch(ctx context.Context, msgType uint8, payload []byte) (frame.Framer, error)
}

// Dispatcher serves one connection: it owns the serialized writer and
// the reader loop, and hands every decoded frame to h on its own
// goroutine so a slow handler cannot block other in-flight requests
// (spec.md §4.9 "a handler may spawn an unbounded number of concurrent
// request-handling tasks per connection").
type Dispatcher struct {
	conn  transport.Conn
	msize uint32
	h     Handler
	log   *zap.Logger

	writeMu sync.Mutex
	wg      sync.WaitGroup
}

// New builds a Dispatcher for conn. msize is the negotiated per-frame
// cap from the handshake.
func New(conn transport.Conn, msize uint32, h Handler, log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{conn: conn, msize: msize, h: h, log: log}
}

// Serve runs the reader loop until reading from the connection fails.
// ctx is handed to every dispatched handler call; the loop itself does
// not watch it, so it ends only when the connection is closed or
// errors. It returns nil on a clean EOF, and the observed error
// otherwise. In-flight handler goroutines spawned before Serve returns
// are allowed to run to completion; their responses are written if the
// connection is still open and simply dropped (write error ignored)
// otherwise (spec.md §5 "in-flight handler tasks may continue to
// completion but their responses are dropped").
func (d *Dispatcher) Serve(ctx context.Context) error {
	defer d.wg.Wait()

	for {
		f, err := frame.ReadFrame(d.conn, d.msize)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return diag.Wrap(diag.KindTransport, err)
		}

		d.wg.Add(1)
		go d.handle(ctx, f)
	}
}

// handle runs one request to completion and writes its response. A
// Dispatch error (malformed request) becomes an error-frame response
// with diag.KindDecode's message, same as an application error would.
func (d *Dispatcher) handle(ctx context.Context, f frame.Frame) {
	defer d.wg.Done()

	resp, err := d.h.Dispatch(ctx, f.Type, f.Payload)
	if err != nil {
		resp = errorFramer{diag.NewDiagnostic(err.Error()).WithCode("jetstream.rpc.decode").WithSeverity(diag.SeverityError)}
	}

	d.writeMu.Lock()
	defer d.writeMu.Unlock()
	if werr := frame.WriteFrame(d.conn, f.Tag, resp); werr != nil {
		d.log.Warn("jetstream: write response failed", zap.Uint16("tag", f.Tag), zap.Error(werr))
	}
}

// errorFramer adapts a bare diag.Diagnostic into a frame.Framer for
// the reserved error type, used only for the can't-even-decode-the-
// request path above; generated dispatchers wrap their own Rmessage
// error variant directly for handler-level failures.
type errorFramer struct{ d diag.Diagnostic }

func (e errorFramer) MessageType() uint8       { return frame.ErrorType }
func (e errorFramer) PayloadSize() uint32      { return e.d.ByteSize() }
func (e errorFramer) EncodePayload(w io.Writer) error { return e.d.Encode(w) }

// Accept wires ServerHandshake's result into a Dispatcher and serves
// the connection until it closes. It is the per-connection entry point
// a router.Router's resolved handler normally calls.
func Accept(ctx context.Context, conn transport.Conn, p peer.Context, msize uint32, h Handler, log *zap.Logger) error {
	return New(conn, msize, h, log).Serve(peer.NewContext(ctx, p))
}
