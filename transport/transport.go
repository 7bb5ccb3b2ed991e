// Package transport defines the byte-stream contract JetStream's
// session and router layers consume (C10): anything that can be read
// and written asynchronously, closed, and that can surface a peer.Context
// for the accepted side.
//
// The core does not prescribe TLS, certificate parsing, or address
// resolution (spec.md §4.10) — concrete transports under this package's
// subdirectories are thin adapters over net.Conn/quic.Stream that
// satisfy Conn and fill in a peer.Context.
package transport

import (
	"context"
	"io"

	"github.com/jetstream-proto/jetstream/peer"
)

// Conn is a bidirectional byte stream with an associated peer context.
// A generated client stub and the session mux both only need this much
// of a transport; io.ReadWriteCloser already covers frame.ReadFrame/
// frame.WriteFrame.
type Conn interface {
	io.Reader
	io.Writer
	io.Closer
	// Context describes the remote side of this connection, if the
	// transport can surface one (spec.md §4.11).
	Context() peer.Context
}

// Listener accepts Conns. The tcpconn and quictransport transports each
// implement this over their native listener type; pipe has no Listener
// and only hands out connected pairs.
type Listener interface {
	Accept(ctx context.Context) (Conn, error)
	Close() error
	Addr() string
}
