// jetstreamd serves the echo and calc example services over TCP (and
// optionally a unix domain socket), the reference server half of the
// handshake/router/dispatch stack.
//
// Usage:
//
//	jetstreamd -addr :5640
//
// Talk to it with jetstreamctl, or with any client that completes the
// JetStream version handshake for "echo" or "calc".
package main

import (
	"context"
	"crypto/tls"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/jetstream-proto/jetstream/internal/logging"
	"github.com/jetstream-proto/jetstream/peer"
	"github.com/jetstream-proto/jetstream/router"
	"github.com/jetstream-proto/jetstream/service/calc"
	"github.com/jetstream-proto/jetstream/service/echo"
	"github.com/jetstream-proto/jetstream/session/dispatch"
	"github.com/jetstream-proto/jetstream/session/mux"
	"github.com/jetstream-proto/jetstream/transport"
	"github.com/jetstream-proto/jetstream/transport/tcpconn"
)

func main() {
	addr := flag.String("addr", ":5640", "address to listen on")
	unixSocket := flag.String("unix", "", "additionally listen on this unix domain socket path")
	debug := flag.Bool("debug", false, "enable debug logging")
	maxMsize := flag.Uint("max-msize", mux.DefaultMaxMsize, "ceiling on the negotiated msize")
	certFile := flag.String("cert", "", "TLS certificate file (enables TLS when set with -key)")
	keyFile := flag.String("key", "", "TLS private key file")
	flag.Parse()

	log := logging.New(*debug)
	defer log.Sync()

	r := router.New(uint32(*maxMsize), log)
	r.WithHandler("echo", serveWith(echo.NewDispatcher(echo.NewServer(log))))
	r.WithHandler("calc", serveWith(calc.NewDispatcher(calc.NewServer(log))))

	var tlsConfig *tls.Config
	if *certFile != "" && *keyFile != "" {
		cert, err := tls.LoadX509KeyPair(*certFile, *keyFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "jetstreamd: load TLS keypair: %v\n", err)
			os.Exit(1)
		}
		tlsConfig = &tls.Config{Certificates: []tls.Certificate{cert}}
	}

	listener, err := tcpconn.Listen(*addr, tlsConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jetstreamd: %v\n", err)
		os.Exit(1)
	}
	log.Info("jetstreamd: listening", zap.String("addr", listener.Addr()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("jetstreamd: shutting down")
		cancel()
		listener.Close()
	}()

	if *unixSocket != "" {
		ul, err := tcpconn.ListenUnix(*unixSocket)
		if err != nil {
			fmt.Fprintf(os.Stderr, "jetstreamd: %v\n", err)
			os.Exit(1)
		}
		log.Info("jetstreamd: listening", zap.String("addr", ul.Addr()))
		go func() {
			if err := r.Serve(ctx, ul); err != nil && ctx.Err() == nil {
				log.Warn("jetstreamd: unix listener stopped", zap.Error(err))
			}
		}()
	}

	if err := r.Serve(ctx, listener); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "jetstreamd: serve: %v\n", err)
		os.Exit(1)
	}
}

// serveWith adapts a generated dispatcher (satisfying session/dispatch's
// Handler) into a router.HandlerFunc.
func serveWith(h dispatch.Handler) router.HandlerFunc {
	return func(ctx context.Context, conn transport.Conn, peerCtx peer.Context, msize uint32) error {
		return dispatch.Accept(ctx, conn, peerCtx, msize, h, nil)
	}
}
