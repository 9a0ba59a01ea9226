package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/fxql"
	"github.com/etnz/fxql/xlsx"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output  string
	escaped bool
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export FXQL entries as an Excel workbook" }
func (*exportCmd) Usage() string {
	return `fxql export -o <file.xlsx> [-escaped] <file|->

  Parses FXQL statements and writes the entries into the "Entries" sheet of a
  new workbook.

`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "workbook to create (required)")
	f.BoolVar(&c.escaped, "escaped", false, `decode \n and \\ sequences before parsing`)
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.output == "" {
		fmt.Fprintln(os.Stderr, "Error: -o is required")
		return subcommands.ExitUsageError
	}
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
	fmt.Fprintf(os.Stderr, "✅ Successfully exported entries to %s\n", c.output)
	return subcommands.ExitSuccess
}

func (c *exportCmd) run(src string, w io.Writer) error {
	entries, err := fxql.Parse(src)
	if err != nil {
		return err
	}
	debugf("exporting %d entries", len(entries))
	return xlsx.Encode(w, entries)
}
