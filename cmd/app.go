// Package cmd implements the fxql command line application.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/etnz/fxql"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&parseCmd{}, "statements")
	c.Register(&checkCmd{}, "statements")
	c.Register(&exportCmd{}, "statements")

	c.Register(&serveCmd{}, "server")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

// Verbose enables diagnostics on stderr.
var Verbose = flag.Bool("v", false, "print diagnostics on stderr")

func debugf(format string, args ...any) {
	if *Verbose {
		log.Printf(format, args...)
	}
}

// readSource reads the FXQL source of a command: a file name or "-" for stdin.
// With escaped, `\n` and `\\` sequences are decoded first.
func readSource(args []string, escaped bool) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected exactly one input, a file name or \"-\" for stdin, got %d", len(args))
	}
	name := args[0]

	var content []byte
	var err error
	if name == "-" {
		content, err = io.ReadAll(os.Stdin)
	} else {
		content, err = os.ReadFile(name)
	}
	if err != nil {
		return "", fmt.Errorf("could not read %q: %w", name, err)
	}
	debugf("read %d bytes from %q", len(content), name)

	src := string(content)
	if escaped {
		src = fxql.Unescape(src)
	}
	return src, nil
}

// createOutput opens name for writing, or returns stdout when name is empty.
// The returned close function must always be called.
func createOutput(name string) (io.Writer, func() error, error) {
	if name == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, nil, fmt.Errorf("could not create %q: %w", name, err)
	}
	return f, f.Close, nil
}
