package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/fxql"
	"github.com/etnz/fxql/renderer"
	"github.com/google/subcommands"
)

// Output formats of the parse command.
const (
	formatJSON     = "json"
	formatJSONL    = "jsonl"
	formatMarkdown = "markdown"
)

type parseCmd struct {
	output  string
	format  string
	path    string
	escaped bool
}

func (*parseCmd) Name() string     { return "parse" }
func (*parseCmd) Synopsis() string { return "parse FXQL statements into entries" }
func (*parseCmd) Usage() string {
	return `fxql parse [-o <file>] [-format json|jsonl|markdown] [-path <jsonpath>] [-escaped] <file|->

  Parses FXQL statements and prints the resulting entries.

  With -path, the JSON output is queried with a JSONPath expression and only
  the matching values are printed.

Usage Examples:
# Print the entries of rates.fxql as JSON.
$ fxql parse rates.fxql

# Print the buy price of every entry.
$ fxql parse -path '$[*].BuyPrice' rates.fxql

`
}

func (c *parseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "write the entries to this file instead of stdout")
	f.StringVar(&c.format, "format", formatJSON, "output format: json, jsonl or markdown")
	f.StringVar(&c.path, "path", "", "JSONPath expression applied to the JSON output")
	f.BoolVar(&c.escaped, "escaped", false, `decode \n and \\ sequences before parsing`)
}

func (c *parseCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	src, err := readSource(f.Args(), c.escaped)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	w, closeOutput, err := createOutput(c.output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	err = c.run(src, w)
	if cerr := closeOutput(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// run parses src and writes the entries to w in the selected format.
func (c *parseCmd) run(src string, w io.Writer) error {
	if c.path != "" && c.format != formatJSON {
		return fmt.Errorf("-path requires the %s format", formatJSON)
	}

	entries, err := fxql.Parse(src)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []fxql.Entry{}
	}
	debugf("parsed %d entries", len(entries))

	switch c.format {
	case formatJSON:
		var v any = entries
		if c.path != "" {
			if v, err = query(entries, c.path); err != nil {
				return err
			}
		}
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", out)
		return err
	case formatJSONL:
		return fxql.EncodeEntries(w, entries)
	case formatMarkdown:
		_, err := fmt.Fprint(w, renderer.Entries(entries))
		return err
	default:
		return fmt.Errorf("unknown format %q", c.format)
	}
}

// query evaluates a JSONPath expression against the JSON form of entries.
// Numbers are kept as json.Number so that values print as written.
func query(entries []fxql.Entry, path string) (any, error) {
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}

	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}
	return v, nil
}

// asParseError returns the *fxql.ParseError in err chain, if any.
func asParseError(err error) (*fxql.ParseError, bool) {
	var perr *fxql.ParseError
	ok := errors.As(err, &perr)
	return perr, ok
}
