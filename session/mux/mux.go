// Package mux implements the client-side session mux (C8): it owns one
// bidirectional byte stream already past the version handshake, and
// correlates every RPC call's request frame with its response frame by
// tag, allowing many requests in flight at once with out-of-order
// completion.
//
// Grounded on the original Rust crate's router.rs (response channel +
// dedicated writer task + per-request fan-out) and
// other_examples/.../droyo-styx's Conn (a tag-keyed transaction map
// guarding per-tag state); golang.org/x/sync/errgroup coordinates the
// session's single reader task against Close, the idiomatic Go
// substitute for a Tokio JoinHandle.
package mux

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jetstream-proto/jetstream/diag"
	"github.com/jetstream-proto/jetstream/frame"
	"github.com/jetstream-proto/jetstream/tagpool"
	"github.com/jetstream-proto/jetstream/transport"
)

// ctxErrKind maps a done context's error to timeout or cancelled
// (spec.md §4.3/§4.8: expiry is timeout, an explicit cancel is
// cancelled).
func ctxErrKind(err error) diag.Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return diag.KindTimeout
	}
	return diag.KindCancelled
}

// DefaultMaxMsize is the package's suggested upper bound on negotiated
// msize (spec.md §9, Open Question: "maximum sensible msize is
// implementation-defined"). 4 MiB sits comfortably above the 256-byte
// handshake floor and below the 32 MiB data-blob cap; callers may
// negotiate a different value.
const DefaultMaxMsize = 4 << 20

// slot is the per-tag bookkeeping entry in Session.outstanding: a
// one-shot channel the reader loop delivers the matching response
// frame (or a terminal error) to.
type slot struct {
	resp chan frame.Frame
	err  chan error
}

// Session is the client side of one negotiated connection: a writer
// serialized against concurrent RPC calls, a single reader task
// dispatching responses to outstanding slots by tag, and a tag pool
// bounding in-flight request count (spec.md §4.8).
type Session struct {
	conn   transport.Conn
	msize  uint32
	tags   *tagpool.Pool
	log    *zap.Logger

	writeMu sync.Mutex

	mu          sync.Mutex
	outstanding map[uint16]*slot
	closed      bool
	closeErr    error

	eg     *errgroup.Group
	cancel context.CancelFunc
}

// New starts a Session over conn. msize is the negotiated per-frame
// cap (0 disables the cap, for callers that already enforce it
// elsewhere); tagCapacity bounds the number of concurrent in-flight
// RPCs (spec.md §4.7 "capacity ≤ 65535, excluding NOTAG").
func New(conn transport.Conn, msize uint32, tagCapacity uint16, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	eg, _ := errgroup.WithContext(ctx)

	s := &Session{
		conn:        conn,
		msize:       msize,
		tags:        tagpool.New(tagCapacity),
		log:         log,
		outstanding: make(map[uint16]*slot),
		eg:          eg,
		cancel:      cancel,
	}
	eg.Go(s.readLoop)
	return s
}

// readLoop is the session's single reader task (spec.md §4.8,
// §5 "the reader is a single task"). It runs until the stream errors
// or Close is called, delivering each decoded frame to the slot for
// its tag, or dropping it as unknown-tag if no slot is registered.
func (s *Session) readLoop() error {
	for {
		f, err := frame.ReadFrame(s.conn, s.msize)
		if err != nil {
			s.terminate(diag.Wrap(diag.KindTransport, err))
			return err
		}

		s.mu.Lock()
		sl, ok := s.outstanding[f.Tag]
		if ok {
			delete(s.outstanding, f.Tag)
		}
		s.mu.Unlock()

		if !ok {
			s.log.Warn("jetstream: response for unknown tag dropped", zap.Uint16("tag", f.Tag), zap.Uint8("type", f.Type))
			continue
		}

		s.tags.Release(f.Tag)
		sl.resp <- f
	}
}

// terminate fails every outstanding slot with err and marks the
// session closed; called once the reader loop observes a fatal
// transport error, or from Close.
func (s *Session) terminate(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.closeErr = err
	for tag, sl := range s.outstanding {
		delete(s.outstanding, tag)
		sl.err <- err
	}
}

// RPC sends req under a freshly acquired tag and decodes the matching
// response with decode, which is normally a generated service's
// Decode<R>message function. It blocks until the response arrives, ctx
// is done (yielding diag.Cancelled or diag.Timeout depending on why
// ctx ended), or the session terminates (diag.Transport). ctx is
// consulted only while waiting for a tag and for the response: writing
// the request frame is not interrupted by ctx, and a write that blocks
// on the transport returns only when the write completes or fails.
func RPC[Resp any](ctx context.Context, s *Session, req frame.Framer, decode func(msgType uint8, payload io.Reader) (Resp, error)) (Resp, error) {
	var zero Resp

	tag, err := s.tags.Acquire(ctx)
	if err != nil {
		return zero, err
	}

	sl := &slot{resp: make(chan frame.Frame, 1), err: make(chan error, 1)}

	s.mu.Lock()
	if s.closed {
		closeErr := s.closeErr
		s.mu.Unlock()
		s.tags.Release(tag)
		return zero, closeErr
	}
	s.outstanding[tag] = sl
	s.mu.Unlock()

	s.writeMu.Lock()
	writeErr := frame.WriteFrame(s.conn, tag, req)
	s.writeMu.Unlock()
	if writeErr != nil {
		s.dropSlot(tag)
		return zero, diag.Wrap(diag.KindTransport, writeErr).WithTag(tag)
	}

	select {
	case f := <-sl.resp:
		v, err := frame.DecodePayload(f.Payload, func(r io.Reader) (Resp, error) { return decode(f.Type, r) })
		if err != nil {
			return zero, diag.Wrap(diag.KindDecode, err).WithTag(tag)
		}
		return v, nil
	case err := <-sl.err:
		return zero, err
	case <-ctx.Done():
		s.dropSlot(tag)
		return zero, diag.Wrap(ctxErrKind(ctx.Err()), ctx.Err()).WithTag(tag)
	}
}

// Cancel abandons the in-flight call holding tag without waiting for a
// server response: it removes tag's slot, releases the tag back to the
// pool, and fails the waiting RPC call (if it is still waiting) with
// diag.Cancelled. A response that later arrives for tag is dropped by
// readLoop as unknown-tag, exactly as if the caller had simply dropped
// the RPC future (SPEC_FULL.md "Mux.Cancel(tag)": local bookkeeping
// only, nothing is sent over the wire).
//
// Cancel is a no-op if tag has no outstanding slot — already delivered,
// already cancelled, or never allocated.
func (s *Session) Cancel(tag uint16) {
	s.mu.Lock()
	sl, ok := s.outstanding[tag]
	if ok {
		delete(s.outstanding, tag)
	}
	s.mu.Unlock()
	if !ok {
		return
	}
	s.tags.Release(tag)
	sl.err <- diag.New(diag.KindCancelled, "rpc cancelled")
}

// dropSlot removes tag's slot (if still registered — it may have
// already been delivered to and removed by readLoop) and releases the
// tag, the effect of dropping an in-flight call (spec.md §4.8
// "Cancellation").
func (s *Session) dropSlot(tag uint16) {
	s.mu.Lock()
	_, ok := s.outstanding[tag]
	if ok {
		delete(s.outstanding, tag)
	}
	s.mu.Unlock()
	if ok {
		s.tags.Release(tag)
	}
}

// Close shuts the session down: it fails every outstanding RPC with
// diag.Cancelled, closes the underlying connection, and waits for the
// reader task to exit (spec.md §4.8/§5, "per-session shutdown").
func (s *Session) Close() error {
	s.terminate(diag.New(diag.KindCancelled, "session closed"))
	closeErr := s.conn.Close()
	s.cancel()
	_ = s.eg.Wait() // readLoop's own error is already folded into closeErr via terminate
	if closeErr != nil {
		return fmt.Errorf("mux: close: %w", closeErr)
	}
	return nil
}
