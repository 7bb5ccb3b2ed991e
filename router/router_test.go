package router_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jetstream-proto/jetstream/diag"
	"github.com/jetstream-proto/jetstream/handshake"
	"github.com/jetstream-proto/jetstream/peer"
	"github.com/jetstream-proto/jetstream/router"
	"github.com/jetstream-proto/jetstream/service/echo"
	"github.com/jetstream-proto/jetstream/session/dispatch"
	"github.com/jetstream-proto/jetstream/session/mux"
	"github.com/jetstream-proto/jetstream/transport"
	"github.com/jetstream-proto/jetstream/transport/pipe"
)

func TestAcceptResolvesRegisteredHandler(t *testing.T) {
	client, server := pipe.New()
	t.Cleanup(func() { client.Close(); server.Close() })

	r := router.New(mux.DefaultMaxMsize, nil)
	r.WithHandler("echo", func(ctx context.Context, conn transport.Conn, peerCtx peer.Context, msize uint32) error {
		return dispatch.Accept(ctx, conn, peerCtx, msize, echo.NewDispatcher(echo.NewServer(nil)), nil)
	})

	go func() { _ = r.Accept(context.Background(), server) }()

	msize, err := handshake.ClientHandshake(client, client, mux.DefaultMaxMsize, echo.ProtocolIdentity)
	require.NoError(t, err)
	require.Greater(t, msize, uint32(0))

	sess := mux.New(client, msize, 8, nil)
	defer sess.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c := echo.NewClient(sess)
	_, err = c.Ping(ctx)
	require.NoError(t, err)
}

// TestVersionRejection exercises spec.md §8 scenario 3: a client
// requesting a protocol name with no registered handler gets back
// Rversion{msize: 0, version: "unknown"}, and ClientHandshake surfaces
// it as a version-mismatch error.
func TestVersionRejection(t *testing.T) {
	client, server := pipe.New()
	t.Cleanup(func() { client.Close(); server.Close() })

	r := router.New(mux.DefaultMaxMsize, nil)
	r.WithHandler("calc", func(ctx context.Context, conn transport.Conn, peerCtx peer.Context, msize uint32) error {
		return nil
	})

	go func() { _ = r.Accept(context.Background(), server) }()

	_, err := handshake.ClientHandshake(client, client, mux.DefaultMaxMsize, echo.ProtocolIdentity)
	require.Error(t, err)

	var de *diag.Error
	require.True(t, errors.As(err, &de))
	require.Equal(t, diag.KindVersionMismatch, de.Kind)
}
