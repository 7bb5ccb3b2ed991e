//go:build !linux

package tcpconn

import (
	"net"

	"github.com/jetstream-proto/jetstream/peer"
)

// unixPeerIdentity has no portable SO_PEERCRED equivalent outside
// Linux; non-Linux builds fall back to the bare network-address
// context.
func unixPeerIdentity(*net.UnixConn) (peer.Identity, bool) {
	return peer.Identity{}, false
}
