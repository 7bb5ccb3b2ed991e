package dispatch_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jetstream-proto/jetstream/diag"
	"github.com/jetstream-proto/jetstream/frame"
	"github.com/jetstream-proto/jetstream/handshake"
	"github.com/jetstream-proto/jetstream/service/echo"
	"github.com/jetstream-proto/jetstream/session/dispatch"
	"github.com/jetstream-proto/jetstream/session/mux"
	"github.com/jetstream-proto/jetstream/transport/pipe"
)

// rawFramer is a bare Framer for a message type id the echo dispatcher
// never generates, used to drive the can't-even-decode path directly
// rather than through a generated union.
type rawFramer struct{ msgType uint8 }

func (f rawFramer) MessageType() uint8            { return f.msgType }
func (f rawFramer) PayloadSize() uint32           { return 0 }
func (f rawFramer) EncodePayload(w io.Writer) error { return nil }

// TestMalformedRequestBecomesErrorFrame exercises the can't-even-decode
// path (session/dispatch's Dispatch returning an error for a message
// type its Handler doesn't recognize): the connection survives and the
// caller gets back a frame.ErrorType response instead of the stream
// dying.
func TestMalformedRequestBecomesErrorFrame(t *testing.T) {
	client, server := pipe.New()
	defer client.Close()
	defer server.Close()

	go func() {
		_, msize, err := handshake.ServerHandshake(server, server, mux.DefaultMaxMsize, func(string) bool { return true })
		if err != nil {
			return
		}
		d := dispatch.New(server, msize, echo.NewDispatcher(echo.NewServer(nil)), nil)
		_ = d.Serve(context.Background())
	}()

	msize, err := handshake.ClientHandshake(client, client, mux.DefaultMaxMsize, echo.ProtocolIdentity)
	require.NoError(t, err)

	require.NoError(t, frame.WriteFrame(client, 1, rawFramer{msgType: 250}))

	f, err := frame.ReadFrame(client, msize)
	require.NoError(t, err)
	require.Equal(t, frame.ErrorType, f.Type)
	require.Equal(t, uint16(1), f.Tag)

	got, err := diag.DecodeDiagnostic(bytes.NewReader(f.Payload))
	require.NoError(t, err)
	require.NotEmpty(t, got.Message)
}
