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
	"strings"

	"github.com/etnz/fxql"
	"github.com/etnz/fxql/renderer"
	"github.com/google/subcommands"
)

var errCheckFailed = errors.New("check failed")

type checkCmd struct {
	strict  bool
	entries string
	escaped bool
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "validate FXQL statements" }
func (*checkCmd) Usage() string {
	return `fxql check [-strict] [-entries <file.jsonl>] [-escaped] <file|->

  Validates FXQL statements. A grammar error is shown with the offending line.
  Currency codes that are well formed but not ISO 4217 are reported as
  warnings, -strict turns them into errors.

  With -entries, the parsed entries must also match the JSONL file exactly.

`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.strict, "strict", false, "fail on currency codes that are not ISO 4217")
	f.StringVar(&c.entries, "entries", "", "JSONL file with the expected entries")
	f.BoolVar(&c.escaped, "escaped", false, `decode \n and \\ sequences before parsing`)
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	src, err := readSource(f.Args(), c.escaped)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var report strings.Builder
	err = c.run(src, &report)
	printMarkdown(report.String())
	if err != nil {
		if !errors.Is(err, errCheckFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// run checks src and writes a markdown report to w. It returns
// errCheckFailed when the report holds errors.
func (c *checkCmd) run(src string, w io.Writer) error {
	entries, err := fxql.Parse(src)
	if perr, ok := asParseError(err); ok {
		fmt.Fprint(w, renderer.Error(src, perr))
		return errCheckFailed
	}
	if err != nil {
		return err
	}

	warnings := 0
	for _, e := range entries {
		for _, code := range e.UnknownCurrencies() {
			fmt.Fprintf(w, "* warning: entry %d %s: %q is not an ISO 4217 currency\n", e.EntryID, e.Pair(), code)
			warnings++
		}
	}

	if c.entries != "" {
		mismatches, err := c.compare(entries)
		if err != nil {
			return err
		}
		for _, m := range mismatches {
			fmt.Fprintf(w, "* error: %s\n", m)
		}
		if len(mismatches) > 0 {
			return errCheckFailed
		}
	}

	if c.strict && warnings > 0 {
		fmt.Fprintf(w, "\n%d warning(s) in strict mode\n", warnings)
		return errCheckFailed
	}
	fmt.Fprintf(w, "\nok: %d entries\n", len(entries))
	return nil
}

// compare lists the differences between entries and the expected entries file.
func (c *checkCmd) compare(entries []fxql.Entry) ([]string, error) {
	f, err := os.Open(c.entries)
	if err != nil {
		return nil, fmt.Errorf("could not open expected entries: %w", err)
	}
	defer f.Close()

	want, err := fxql.DecodeEntries(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", c.entries, err)
	}

	var mismatches []string
	if len(entries) != len(want) {
		mismatches = append(mismatches, fmt.Sprintf("got %d entries, want %d", len(entries), len(want)))
	}
	for i := 0; i < len(entries) && i < len(want); i++ {
		got, err := json.Marshal(entries[i])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal entry %d: %w", i+1, err)
		}
		exp, err := json.Marshal(want[i])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal expected entry %d: %w", i+1, err)
		}
		if !bytes.Equal(got, exp) {
			mismatches = append(mismatches, fmt.Sprintf("entry %d is `%s`, want `%s`", i+1, got, exp))
		}
	}
	return mismatches, nil
}
