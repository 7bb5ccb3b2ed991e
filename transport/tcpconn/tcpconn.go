// Package tcpconn implements the TCP(+TLS)+unix-socket transport
// (spec.md §4.10): a thin adapter from net.Conn to transport.Conn that
// fills in a peer.Context from whatever the underlying socket can
// surface — a TLS peer certificate, or (for a unix domain socket) the
// kernel-verified SO_PEERCRED credentials.
//
// Grounded on the teacher's cmd/llm9p/main.go for the net.Listen/
// signal-driven-shutdown shape; TLS peer parsing follows
// peer.TLSPeer's field set (components/jetstream_rpc/src/context.rs).
package tcpconn

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"fmt"
	"net"

	"github.com/jetstream-proto/jetstream/peer"
	"github.com/jetstream-proto/jetstream/transport"
)

// conn adapts a net.Conn (plain, TLS, or unix) to transport.Conn.
type conn struct {
	net.Conn
	ctx peer.Context
}

func (c *conn) Context() peer.Context { return c.ctx }

// wrap builds a transport.Conn for nc, extracting a TLS peer identity
// when nc is a *tls.Conn that has completed its handshake, a unix
// peer-credential identity when nc is a *net.UnixConn, or otherwise a
// bare network-address context.
func wrap(nc net.Conn) transport.Conn {
	addr := &peer.RemoteAddr{Network: nc.RemoteAddr().String()}

	if tc, ok := nc.(*tls.Conn); ok {
		if id, ok := tlsPeerIdentity(tc); ok {
			return &conn{Conn: nc, ctx: peer.New(addr, id)}
		}
	}
	if uc, ok := underlyingUnixConn(nc); ok {
		if id, ok := unixPeerIdentity(uc); ok {
			return &conn{Conn: nc, ctx: peer.New(addr, id)}
		}
	}
	return &conn{Conn: nc, ctx: peer.New(addr, peer.Identity{})}
}

// underlyingUnixConn returns nc itself (or nc.NetConn() for a TLS conn
// over a unix socket) as a *net.UnixConn, if that's what it is.
func underlyingUnixConn(nc net.Conn) (*net.UnixConn, bool) {
	if tc, ok := nc.(*tls.Conn); ok {
		nc = tc.NetConn()
	}
	uc, ok := nc.(*net.UnixConn)
	return uc, ok
}

func tlsPeerIdentity(tc *tls.Conn) (peer.Identity, bool) {
	state := tc.ConnectionState()
	if !state.HandshakeComplete || len(state.PeerCertificates) == 0 {
		return peer.Identity{}, false
	}
	return peer.Identity{Kind: peer.IdentityTLSPeer, TLS: parseChain(state.PeerCertificates)}, true
}

func parseChain(certs []*x509.Certificate) peer.TLSPeer {
	leaf := parseCert(certs[0])
	leaf.Chain = make([]peer.TLSPeer, len(certs))
	for i, c := range certs {
		leaf.Chain[i] = parseCert(c)
	}
	return leaf
}

func parseCert(c *x509.Certificate) peer.TLSPeer {
	sum := sha256.Sum256(c.Raw)
	tp := peer.TLSPeer{
		FingerprintSHA256: hex.EncodeToString(sum[:]),
		CommonName:        c.Subject.CommonName,
		SANDNSNames:       append([]string(nil), c.DNSNames...),
		SANEmails:         append([]string(nil), c.EmailAddresses...),
	}
	for _, ip := range c.IPAddresses {
		tp.SANIPAddresses = append(tp.SANIPAddresses, ip.String())
	}
	for _, u := range c.URIs {
		tp.SANURIs = append(tp.SANURIs, u.String())
	}
	return tp
}

// listener adapts a net.Listener to transport.Listener.
type listener struct{ net.Listener }

// Listen starts a TCP listener on addr. If tlsConfig is non-nil, the
// listener wraps accepted connections in TLS server mode; set
// tlsConfig.ClientAuth to tls.RequireAndVerifyClientCert and an
// embedder-supplied VerifyPeerCertificate for mTLS (spec.md §4.10's
// "optional mTLS client-certificate verifier").
func Listen(addr string, tlsConfig *tls.Config) (transport.Listener, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("tcpconn: listen %s: %w", addr, err)
	}
	if tlsConfig != nil {
		l = tls.NewListener(l, tlsConfig)
	}
	return &listener{l}, nil
}

// ListenUnix starts a unix domain socket listener at path, enabling
// SO_PEERCRED-derived identities on accepted connections.
func ListenUnix(path string) (transport.Listener, error) {
	l, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("tcpconn: listen unix %s: %w", path, err)
	}
	return &listener{l}, nil
}

func (l *listener) Accept(ctx context.Context) (transport.Conn, error) {
	type result struct {
		c   net.Conn
		err error
	}
	ch := make(chan result, 1)
	go func() {
		c, err := l.Listener.Accept()
		ch <- result{c, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return nil, r.err
		}
		return wrap(r.c), nil
	}
}

func (l *listener) Close() error { return l.Listener.Close() }
func (l *listener) Addr() string { return l.Listener.Addr().String() }

// Dial connects to addr over TCP. If tlsConfig is non-nil the
// connection is upgraded to TLS client mode before returning.
func Dial(addr string, tlsConfig *tls.Config) (transport.Conn, error) {
	if tlsConfig != nil {
		tc, err := tls.Dial("tcp", addr, tlsConfig)
		if err != nil {
			return nil, fmt.Errorf("tcpconn: dial %s: %w", addr, err)
		}
		return wrap(tc), nil
	}
	nc, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("tcpconn: dial %s: %w", addr, err)
	}
	return wrap(nc), nil
}

// DialUnix connects to a unix domain socket at path.
func DialUnix(path string) (transport.Conn, error) {
	nc, err := net.Dial("unix", path)
	if err != nil {
		return nil, fmt.Errorf("tcpconn: dial unix %s: %w", path, err)
	}
	return wrap(nc), nil
}
