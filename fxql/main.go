// Command fxql parses, checks, exports and serves FXQL statements.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/fxql/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion, a no-op unless invoked by the shell.
	input := predict.Files("*")
	completion := complete.Command{
		Sub: map[string]*complete.Command{
			"parse": {
				Flags: map[string]complete.Predictor{
					"o":       predict.Files("*.json*"),
					"format":  predict.Set{"json", "jsonl", "markdown"},
					"path":    predict.Something,
					"escaped": predict.Nothing,
				},
				Args: input,
			},
			"check": {
				Flags: map[string]complete.Predictor{
					"strict":  predict.Nothing,
					"entries": predict.Files("*.jsonl"),
					"escaped": predict.Nothing,
				},
				Args: input,
			},
			"export": {
				Flags: map[string]complete.Predictor{
					"o":       predict.Files("*.xlsx"),
					"escaped": predict.Nothing,
				},
				Args: input,
			},
			"serve": {
				Flags: map[string]complete.Predictor{
					"env": predict.Files("*"),
				},
			},
			"topic": {
				Args: predict.Set{"readme", "grammar", "errors", "*"},
			},
		},
		Flags: map[string]complete.Predictor{
			"v": predict.Nothing,
		},
	}
	completion.Complete("fxql")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()

	// Unknown subcommands are looked up as fxql-<name> extensions.
	if name := flag.Arg(0); name != "" && !registered(commander, name) {
		if found, code := cmd.RunExtension(name, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}

func registered(c *subcommands.Commander, name string) bool {
	found := false
	c.VisitCommands(func(_ *subcommands.CommandGroup, command subcommands.Command) {
		if command.Name() == name {
			found = true
		}
	})
	return found
}
