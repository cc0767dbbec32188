// Command predeval is a thin CLI over the engine package: it evaluates a
// predicate, fetches an attribute, or renders a tuple's canonical schema
// string, all from flags so the engine can be exercised without writing
// Go.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"predeval/cmd/predeval/internal/cli"
	"predeval/trace"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	root := cli.NewRootCmd(newTracer)
	return root.Execute()
}

// newTracer builds a zap-backed tracer when -v is passed, or a disabled
// one otherwise.
func newTracer(verbose bool) *trace.Tracer {
	if !verbose {
		return trace.New(nil, nil)
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return trace.New(nil, nil)
	}
	return trace.New(log, nil)
}
