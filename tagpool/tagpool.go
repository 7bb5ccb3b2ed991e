// Package tagpool implements the bounded tag allocator (C7): a client
// session hands out a fresh tag per in-flight request and recycles it
// on response or cancellation, never exceeding the pool's size.
//
// Grounded on the original Rust crate's TagPool
// (components/jetstream_rpc/src/tag/notify.rs): an atomic counter
// hands out fresh tags until the pool is exhausted, after which
// acquire blocks on a recycle queue fed by release. The Go rendition
// swaps Mutex<Vec<u16>>+Notify for a buffered channel, which is
// already a wake-one-waiter queue and needs no separate condition
// variable.
package tagpool

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/jetstream-proto/jetstream/diag"
	"github.com/jetstream-proto/jetstream/frame"
)

// Pool allocates tags in [1, size]. Tag 0 is reserved by this
// allocator's own numbering (never handed out) to mirror the
// original's counter, which starts at 1; frame.NoTag (0xFFFF) is
// reserved by the wire protocol itself for the version handshake and
// is never handed out either, regardless of size (spec.md §4.7
// "capacity ≤ 65535, excluding NOTAG") — Acquire skips over it rather
// than requiring every caller to pass size < 0xFFFF.
type Pool struct {
	next  atomic.Uint32
	freed chan uint16
	size  uint16
}

// New creates a Pool that hands out tags 1..size before blocking on
// recycled ones.
func New(size uint16) *Pool {
	return &Pool{freed: make(chan uint16, size), size: size}
}

// Acquire returns a fresh tag if the pool has not yet handed out all
// size of them, otherwise blocks until a tag is released or ctx is
// done. The reserved frame.NoTag value is never returned even if size
// reaches the counter far enough to produce it; the counter simply
// skips past it.
func (p *Pool) Acquire(ctx context.Context) (uint16, error) {
	for {
		next := p.next.Add(1)
		if uint16(next) == frame.NoTag {
			continue
		}
		if next <= uint32(p.size) {
			return uint16(next), nil
		}
		break
	}

	select {
	case tag := <-p.freed:
		return tag, nil
	case <-ctx.Done():
		kind := diag.KindCancelled
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			kind = diag.KindTimeout
		}
		return 0, diag.Wrap(kind, ctx.Err())
	}
}

// Release returns tag to the pool, unblocking one waiting Acquire.
func (p *Pool) Release(tag uint16) {
	p.freed <- tag
}
