// Package pipe implements an in-process byte-pipe transport (spec.md
// §4.10, first collaborator listed): two transport.Conn values wired
// directly to each other in memory, with no network involved — used by
// the package's own tests and by embedders testing a service without a
// real listener.
package pipe

import (
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/jetstream-proto/jetstream/peer"
	"github.com/jetstream-proto/jetstream/transport"
)

// conn is one half of an in-process pipe pair.
type conn struct {
	r    *io.PipeReader
	w    *io.PipeWriter
	ctx  peer.Context
	once sync.Once
}

func (c *conn) Read(p []byte) (int, error)  { return c.r.Read(p) }
func (c *conn) Write(p []byte) (int, error) { return c.w.Write(p) }
func (c *conn) Context() peer.Context       { return c.ctx }

func (c *conn) Close() error {
	var err error
	c.once.Do(func() {
		werr := c.w.Close()
		rerr := c.r.Close()
		if werr != nil {
			err = werr
		} else {
			err = rerr
		}
	})
	return err
}

// New returns a connected pair of transport.Conn values: writes to one
// side arrive as reads on the other. Each side is assigned an opaque
// node-id identity, since a pipe has no address or credentials to
// surface (peer.Context's "no stronger peer identity" case,
// spec.md §4.11).
func New() (client, server transport.Conn) {
	clientNodeID := uuid.NewString()
	serverNodeID := uuid.NewString()

	cr, sw := io.Pipe() // client reads what the server writes
	sr, cw := io.Pipe() // server reads what the client writes

	c := &conn{r: cr, w: cw, ctx: peer.WithNodeID(clientNodeID)}
	s := &conn{r: sr, w: sw, ctx: peer.WithNodeID(serverNodeID)}
	return c, s
}
