//go:build linux

package tcpconn

import (
	"net"

	"golang.org/x/sys/unix"

	"github.com/jetstream-proto/jetstream/peer"
)

// unixPeerIdentity reads SO_PEERCRED off uc's underlying file
// descriptor. No repo in the retrieval pack wraps SO_PEERCRED in a
// higher-level library (see DESIGN.md), so this goes straight to
// golang.org/x/sys/unix.
func unixPeerIdentity(uc *net.UnixConn) (peer.Identity, bool) {
	raw, err := uc.SyscallConn()
	if err != nil {
		return peer.Identity{}, false
	}

	var cred *unix.Ucred
	var cerr error
	err = raw.Control(func(fd uintptr) {
		cred, cerr = unix.GetsockoptUcred(int(fd), unix.SOL_SOCKET, unix.SO_PEERCRED)
	})
	if err != nil || cerr != nil || cred == nil {
		return peer.Identity{}, false
	}

	return peer.Identity{
		Kind: peer.IdentityUnixCredentials,
		Unix: peer.UnixCredentials{PID: cred.Pid, UID: cred.Uid, GID: cred.Gid},
	}, true
}
