// Package peer implements the per-connection context (C11): an
// immutable, cloneable descriptor of the remote side of a session,
// threaded into every dispatched server-side request.
//
// Grounded on the original Rust crate's context.rs (Context, RemoteAddr,
// Identity) field-for-field; the framework only shapes these values, it
// never interprets them — authorization stays the handler's job
// (spec.md §4.11).
package peer

import (
	"context"
	"fmt"
)

// RemoteAddr identifies the transport-level address of the other side
// of a connection. Exactly one of the three forms is set, matching the
// three transports spec.md §4.10 lists as collaborators.
type RemoteAddr struct {
	// Network is a dialable network address (host:port, a QUIC
	// connection's remote addr, ...).
	Network string
	// LocalSocket is a filesystem path, for a unix domain socket peer.
	LocalSocket string
	// NodeID is an opaque identifier for transports with no dialable
	// address at all (an in-process pipe, a WebTransport session keyed
	// by session id).
	NodeID string
}

func (a RemoteAddr) String() string {
	switch {
	case a.Network != "":
		return a.Network
	case a.LocalSocket != "":
		return "unix:" + a.LocalSocket
	case a.NodeID != "":
		return "node:" + a.NodeID
	default:
		return "<unknown>"
	}
}

// UnixCredentials carries the kernel-verified credentials of a unix
// domain socket peer, from SO_PEERCRED or equivalent.
type UnixCredentials struct {
	PID int32
	UID uint32
	GID uint32
}

// TLSPeer carries the parsed identity of a peer's TLS client
// certificate. Certificate parsing itself is the embedder's job (a
// transport adapter); the core only shapes the struct once parsed,
// mirroring the original crate's `cfg(feature = "x509")`-gated parsing
// boundary.
type TLSPeer struct {
	FingerprintSHA256 string
	CommonName        string
	SANDNSNames       []string
	SANIPAddresses    []string
	SANEmails         []string
	SANURIs           []string
	// Chain holds the full verified certificate chain, leaf first, each
	// entry itself a FingerprintSHA256+CommonName pair; nil if the
	// transport did not request/verify a chain.
	Chain []TLSPeer
}

// IdentityKind discriminates the three forms Identity may take.
type IdentityKind uint8

const (
	IdentityNone IdentityKind = iota
	IdentityUnixCredentials
	IdentityNodeID
	IdentityTLSPeer
)

// Identity is the peer's verified identity, if the transport surfaces
// one. The zero value is IdentityNone.
type Identity struct {
	Kind   IdentityKind
	Unix   UnixCredentials
	NodeID string
	TLS    TLSPeer
}

func (id Identity) String() string {
	switch id.Kind {
	case IdentityUnixCredentials:
		return fmt.Sprintf("uid=%d gid=%d pid=%d", id.Unix.UID, id.Unix.GID, id.Unix.PID)
	case IdentityNodeID:
		return "node:" + id.NodeID
	case IdentityTLSPeer:
		if id.TLS.CommonName != "" {
			return "cn=" + id.TLS.CommonName
		}
		return "fingerprint=" + id.TLS.FingerprintSHA256
	default:
		return "<none>"
	}
}

// Context is the immutable per-connection descriptor threaded into
// every server-side dispatch call. The zero value describes a
// connection with no known address or identity (e.g. a bare
// transport.Conn with no Context-producing adapter).
type Context struct {
	Addr     *RemoteAddr
	Identity Identity
}

// New builds a Context from an optional address and identity.
func New(addr *RemoteAddr, identity Identity) Context {
	return Context{Addr: addr, Identity: identity}
}

// WithNodeID builds a Context for a transport whose only peer
// identifier is an opaque node id (e.g. an in-process pipe), using the
// same string for both RemoteAddr and Identity.
func WithNodeID(nodeID string) Context {
	return Context{
		Addr:     &RemoteAddr{NodeID: nodeID},
		Identity: Identity{Kind: IdentityNodeID, NodeID: nodeID},
	}
}

// contextKey is an unexported type so peer.Context never collides with
// another package's context.WithValue key (spec.md §4.11 "threaded
// through server-side calls").
type contextKey struct{}

// NewContext returns a copy of parent carrying pc, retrievable by a
// generated dispatcher's handler via FromContext.
func NewContext(parent context.Context, pc Context) context.Context {
	return context.WithValue(parent, contextKey{}, pc)
}

// FromContext extracts the Context a dispatcher attached to ctx. It
// returns the zero Context and false if none was attached (e.g. a
// handler called directly in a test, outside dispatch.Accept).
func FromContext(ctx context.Context) (Context, bool) {
	pc, ok := ctx.Value(contextKey{}).(Context)
	return pc, ok
}
