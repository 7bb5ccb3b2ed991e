package pipe_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jetstream-proto/jetstream/peer"
	"github.com/jetstream-proto/jetstream/transport/pipe"
)

func TestRoundTrip(t *testing.T) {
	client, server := pipe.New()
	defer client.Close()
	defer server.Close()

	go func() {
		_, _ = client.Write([]byte("hello"))
	}()

	buf := make([]byte, 5)
	_, err := io.ReadFull(server, buf)
	require.NoError(t, err)
	require.Equal(t, "hello", string(buf))
}

func TestDistinctNodeIdentities(t *testing.T) {
	client, server := pipe.New()
	defer client.Close()
	defer server.Close()

	cID := client.Context()
	sID := server.Context()
	require.Equal(t, peer.IdentityNodeID, cID.Identity.Kind)
	require.Equal(t, peer.IdentityNodeID, sID.Identity.Kind)
	require.NotEqual(t, cID.Identity.NodeID, sID.Identity.NodeID)
}

func TestCloseUnblocksPeer(t *testing.T) {
	client, server := pipe.New()
	defer server.Close()

	require.NoError(t, client.Close())

	buf := make([]byte, 1)
	_, err := server.Read(buf)
	require.ErrorIs(t, err, io.EOF)
}
