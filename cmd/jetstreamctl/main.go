// jetstreamctl is a minimal client for jetstreamd: it dials, runs the
// version handshake for one of the built-in services, issues a single
// call, and prints the result. It exists to exercise the generated
// client stubs end to end over a real transport, the client-side
// counterpart to jetstreamd's server.
//
// Usage:
//
//	jetstreamctl -addr :5640 -service echo -method echo -arg hello
//	jetstreamctl -addr :5640 -service calc -method divide -a 10 -b 0
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jetstream-proto/jetstream/diag"
	"github.com/jetstream-proto/jetstream/handshake"
	"github.com/jetstream-proto/jetstream/service/calc"
	"github.com/jetstream-proto/jetstream/service/echo"
	"github.com/jetstream-proto/jetstream/session/mux"
	"github.com/jetstream-proto/jetstream/transport/tcpconn"
)

func main() {
	addr := flag.String("addr", ":5640", "jetstreamd address to dial")
	service := flag.String("service", "echo", "service to talk to: echo or calc")
	method := flag.String("method", "ping", "method to call")
	arg := flag.String("arg", "", "string argument (echo.Echo's message)")
	a := flag.Int("a", 0, "first integer argument (calc.Divide/Slow's a/ms)")
	b := flag.Int("b", 0, "second integer argument (calc.Divide's b)")
	timeout := flag.Duration("timeout", 5*time.Second, "call deadline")
	flag.Parse()

	identity := echo.ProtocolIdentity
	if *service == "calc" {
		identity = calc.ProtocolIdentity
	}

	conn, err := tcpconn.Dial(*addr, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jetstreamctl: dial: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	msize, err := handshake.ClientHandshake(conn, conn, mux.DefaultMaxMsize, identity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jetstreamctl: handshake: %v\n", err)
		os.Exit(1)
	}

	session := mux.New(conn, msize, 64, nil)
	defer session.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, session, *service, *method, *arg, int32(*a), int32(*b)); err != nil {
		reportErr(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, session *mux.Session, service, method, arg string, a, b int32) error {
	switch service {
	case "echo":
		client := echo.NewClient(session)
		switch method {
		case "ping":
			_, err := client.Ping(ctx)
			if err == nil {
				fmt.Println("ok")
			}
			return err
		case "echo":
			reply, err := client.Echo(ctx, arg)
			if err == nil {
				fmt.Println(reply)
			}
			return err
		default:
			return fmt.Errorf("jetstreamctl: unknown echo method %q", method)
		}
	case "calc":
		client := calc.NewClient(session)
		switch method {
		case "divide":
			value, err := client.Divide(ctx, a, b)
			if err == nil {
				fmt.Println(value)
			}
			return err
		case "fast":
			value, err := client.Fast(ctx)
			if err == nil {
				fmt.Println(value)
			}
			return err
		case "slow":
			value, err := client.Slow(ctx, uint32(a))
			if err == nil {
				fmt.Println(value)
			}
			return err
		case "sleep":
			_, err := client.Sleep(ctx, uint32(a))
			if err == nil {
				fmt.Println("ok")
			}
			return err
		default:
			return fmt.Errorf("jetstreamctl: unknown calc method %q", method)
		}
	default:
		return fmt.Errorf("jetstreamctl: unknown service %q", service)
	}
}

func reportErr(err error) {
	var jerr *diag.Error
	if errors.As(err, &jerr) && jerr.Diagnostic != nil {
		code := ""
		if jerr.Diagnostic.Code != nil {
			code = *jerr.Diagnostic.Code
		}
		fmt.Fprintf(os.Stderr, "jetstreamctl: %s: %s\n", code, jerr.Diagnostic.Message)
		return
	}
	fmt.Fprintf(os.Stderr, "jetstreamctl: %v\n", err)
}
