package echo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jetstream-proto/jetstream/handshake"
	"github.com/jetstream-proto/jetstream/service/echo"
	"github.com/jetstream-proto/jetstream/session/dispatch"
	"github.com/jetstream-proto/jetstream/session/mux"
	"github.com/jetstream-proto/jetstream/transport/pipe"
)

// dial wires a client/server pipe pair through the version handshake and
// the echo service, returning a ready-to-use Client.
func dial(t *testing.T) *echo.Client {
	t.Helper()

	client, server := pipe.New()
	t.Cleanup(func() { client.Close(); server.Close() })

	go func() {
		_, msize, err := handshake.ServerHandshake(server, server, mux.DefaultMaxMsize, func(key string) bool { return key == "echo" })
		if err != nil {
			return
		}
		_ = dispatch.Accept(context.Background(), server, server.Context(), msize, echo.NewDispatcher(echo.NewServer(nil)), nil)
	}()

	msize, err := handshake.ClientHandshake(client, client, mux.DefaultMaxMsize, echo.ProtocolIdentity)
	require.NoError(t, err)

	sess := mux.New(client, msize, 64, nil)
	t.Cleanup(func() { sess.Close() })
	return echo.NewClient(sess)
}

func TestPing(t *testing.T) {
	c := dial(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := c.Ping(ctx)
	require.NoError(t, err)
}

func TestEchoRoundTrip(t *testing.T) {
	c := dial(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := c.Echo(ctx, "hello")
	require.NoError(t, err)
	require.Equal(t, "hello", got)
}
