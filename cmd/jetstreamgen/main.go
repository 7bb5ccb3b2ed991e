// jetstreamgen is the CLI front end for the composite/service code
// generator (C2, C6): given a built-in service description name, it
// writes the generated Go source (records, Tmessage/Rmessage unions,
// client stub, server dispatcher) to a file.
//
// Usage:
//
//	jetstreamgen -service echo -out service/echo/service.gen.go -pkg echo
//
// The generated files committed under service/echo and service/calc
// were produced exactly this way; see those packages' descriptor.go
// for the ServiceDesc each was generated from.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jetstream-proto/jetstream/internal/codegen"
)

func main() {
	serviceName := flag.String("service", "", "registered service description name (see descriptions.go)")
	out := flag.String("out", "", "output .go file path")
	pkg := flag.String("pkg", "", "package name for the generated file")
	flag.Parse()

	if *serviceName == "" || *out == "" || *pkg == "" {
		fmt.Fprintln(os.Stderr, "usage: jetstreamgen -service NAME -out FILE -pkg PKG")
		os.Exit(2)
	}

	desc, ok := descriptions[*serviceName]
	if !ok {
		fmt.Fprintf(os.Stderr, "jetstreamgen: unknown service %q (known: %v)\n", *serviceName, knownNames())
		os.Exit(1)
	}

	src, err := codegen.GenerateService(desc, *pkg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "jetstreamgen: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, []byte(src), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "jetstreamgen: write %s: %v\n", *out, err)
		os.Exit(1)
	}
}

func knownNames() []string {
	names := make([]string, 0, len(descriptions))
	for n := range descriptions {
		names = append(names, n)
	}
	return names
}
