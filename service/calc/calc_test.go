package calc_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jetstream-proto/jetstream/diag"
	"github.com/jetstream-proto/jetstream/handshake"
	"github.com/jetstream-proto/jetstream/service/calc"
	"github.com/jetstream-proto/jetstream/session/dispatch"
	"github.com/jetstream-proto/jetstream/session/mux"
	"github.com/jetstream-proto/jetstream/transport/pipe"
)

func dial(t *testing.T) *calc.Client {
	t.Helper()

	client, server := pipe.New()
	t.Cleanup(func() { client.Close(); server.Close() })

	go func() {
		_, msize, err := handshake.ServerHandshake(server, server, mux.DefaultMaxMsize, func(key string) bool { return key == "calc" })
		if err != nil {
			return
		}
		_ = dispatch.Accept(context.Background(), server, server.Context(), msize, calc.NewDispatcher(calc.NewServer(nil)), nil)
	}()

	msize, err := handshake.ClientHandshake(client, client, mux.DefaultMaxMsize, calc.ProtocolIdentity)
	require.NoError(t, err)

	sess := mux.New(client, msize, 64, nil)
	t.Cleanup(func() { sess.Close() })
	return calc.NewClient(sess)
}

func TestDivide(t *testing.T) {
	c := dial(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	got, err := c.Divide(ctx, 10, 2)
	require.NoError(t, err)
	require.EqualValues(t, 5, got)
}

// TestDivideByZero exercises spec.md §8 scenario 5: a handler-level
// failure crosses the wire as an application Diagnostic, not a
// transport error.
func TestDivideByZero(t *testing.T) {
	c := dial(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := c.Divide(ctx, 10, 0)
	require.Error(t, err)

	var de *diag.Error
	require.True(t, errors.As(err, &de))
	require.Equal(t, diag.KindApplication, de.Kind)
	require.NotNil(t, de.Diagnostic)
	require.NotNil(t, de.Diagnostic.Code)
	require.Equal(t, "example::div_by_zero", *de.Diagnostic.Code)
	require.NotNil(t, de.Diagnostic.Severity)
	require.Equal(t, diag.SeverityError, *de.Diagnostic.Severity)
}

// TestOutOfOrderCompletion exercises spec.md §8 scenario 4: a session
// delivers responses in the order they complete, not the order their
// requests were sent — fast resolves before a concurrently outstanding
// slow call does.
func TestOutOfOrderCompletion(t *testing.T) {
	c := dial(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	order := make(chan string, 2)

	go func() {
		_, err := c.Slow(ctx, 200)
		if err == nil {
			order <- "slow"
		}
	}()

	time.Sleep(20 * time.Millisecond) // give Slow a head start sending its request
	go func() {
		_, err := c.Fast(ctx)
		if err == nil {
			order <- "fast"
		}
	}()

	first := <-order
	second := <-order
	require.Equal(t, "fast", first)
	require.Equal(t, "slow", second)
}

// TestSleepCancellation exercises spec.md §8 scenario 6: cancelling a
// call while it is in flight releases its tag immediately, and a
// subsequent call on the same session succeeds; the late server
// response, once it arrives, is simply discarded.
func TestSleepCancellation(t *testing.T) {
	c := dial(t)

	callCtx, cancelCall := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancelCall()
	}()

	_, err := c.Sleep(callCtx, 5000)
	require.Error(t, err)
	require.True(t, errors.Is(err, diag.Cancelled))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	got, err := c.Fast(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 0, got)
}
