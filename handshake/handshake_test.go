package handshake

import (
	"errors"
	"io"
	"testing"

	"github.com/blang/semver"
	"github.com/jetstream-proto/jetstream/diag"
)

func TestParseVersionLegacy(t *testing.T) {
	for _, s := range []string{"9P2000", "9P2000.L"} {
		v, err := ParseVersion(s)
		if err != nil {
			t.Fatalf("ParseVersion(%q): %v", s, err)
		}
		if v.String() != s {
			t.Fatalf("String() = %q, want %q", v.String(), s)
		}
		if v.HandlerKey() != s {
			t.Fatalf("HandlerKey() = %q, want %q", v.HandlerKey(), s)
		}
	}
}

func TestParseVersionJetStream(t *testing.T) {
	s := "rs.jetstream.proto/echo/1.0.0+deadbeef"
	v, err := ParseVersion(s)
	if err != nil {
		t.Fatalf("ParseVersion: %v", err)
	}
	if v.Kind != KindJetStream {
		t.Fatalf("Kind = %v, want KindJetStream", v.Kind)
	}
	if v.ProtoName != "echo" {
		t.Fatalf("ProtoName = %q, want echo", v.ProtoName)
	}
	if v.Digest() != "deadbeef" {
		t.Fatalf("Digest() = %q, want deadbeef", v.Digest())
	}
	if v.SemVer.NE(semver.MustParse("1.0.0")) {
		t.Fatalf("SemVer = %v, want 1.0.0", v.SemVer)
	}
	if v.String() != s {
		t.Fatalf("String() = %q, want %q", v.String(), s)
	}
}

func TestParseVersionMalformed(t *testing.T) {
	for _, s := range []string{"", "garbage", "rs.jetstream.proto/onlyname", "rs.jetstream.proto/echo/not-a-semver"} {
		if _, err := ParseVersion(s); err == nil {
			t.Fatalf("ParseVersion(%q) = nil error, want error", s)
		}
	}
}

// conn pairs two io.Pipes into a single bidirectional stream suitable
// for driving a client and server handshake against each other within
// one test, without a real transport.
type conn struct {
	io.Reader
	io.Writer
}

func newConnPair() (client, server conn) {
	clientR, serverW := io.Pipe()
	serverR, clientW := io.Pipe()
	return conn{clientR, clientW}, conn{serverR, serverW}
}

func TestHandshakeAccepted(t *testing.T) {
	client, server := newConnPair()

	identity := "rs.jetstream.proto/echo/1.0.0+deadbeef"
	resolve := func(key string) bool { return key == "echo" }

	type result struct {
		msize uint32
		err   error
	}
	clientDone := make(chan result, 1)
	serverDone := make(chan result, 1)

	go func() {
		msize, err := ClientHandshake(client, client, 65536, identity)
		clientDone <- result{msize, err}
	}()
	go func() {
		_, msize, err := ServerHandshake(server, server, 32768, resolve)
		serverDone <- result{msize, err}
	}()

	cr := <-clientDone
	sr := <-serverDone
	if cr.err != nil {
		t.Fatalf("client handshake: %v", cr.err)
	}
	if sr.err != nil {
		t.Fatalf("server handshake: %v", sr.err)
	}
	if cr.msize != 32768 || sr.msize != 32768 {
		t.Fatalf("msize = client:%d server:%d, want 32768 both", cr.msize, sr.msize)
	}
}

func TestHandshakeNoHandler(t *testing.T) {
	client, server := newConnPair()

	identity := "rs.jetstream.proto/wrongname/0.0.0+00000000"
	resolve := func(key string) bool { return false }

	clientErr := make(chan error, 1)
	serverErr := make(chan error, 1)

	go func() {
		_, err := ClientHandshake(client, client, 65536, identity)
		clientErr <- err
	}()
	go func() {
		_, _, err := ServerHandshake(server, server, 32768, resolve)
		serverErr <- err
	}()

	if err := <-clientErr; !errors.Is(err, diag.VersionMismatch) {
		t.Fatalf("client err = %v, want version-mismatch", err)
	}
	if err := <-serverErr; err == nil {
		t.Fatalf("server err = nil, want no-handler")
	}
}
