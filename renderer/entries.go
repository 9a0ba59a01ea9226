package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/fxql"
)

// Entries renders entries as a markdown table, followed by the list of
// entries using currency codes that are not ISO 4217.
func Entries(entries []fxql.Entry) string {
	var b strings.Builder

	fmt.Fprint(&b, "# FXQL Entries\n\n")
	if len(entries) == 0 {
		fmt.Fprintln(&b, "No entries.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Id | Pair | Buy | Sell | Cap |")
	fmt.Fprintln(&b, "|---:|:---|---:|---:|---:|")
	for _, e := range entries {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n",
			e.EntryID,
			e.Pair(),
			price(e.BuyPrice, e.DestinationCurrency),
			price(e.SellPrice, e.DestinationCurrency),
			amount(e.CapAmount),
		)
	}

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprint(w, "\n## Unknown Currencies\n\n")
		found := false
		for _, e := range entries {
			if unknown := e.UnknownCurrencies(); len(unknown) > 0 {
				fmt.Fprintf(w, "* %d %s: %s\n", e.EntryID, e.Pair(), strings.Join(unknown, ", "))
				found = true
			}
		}
		return found
	})

	return b.String()
}
