package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders md for the terminal.
func printMarkdown(md string) {
	fmt.Print(renderMarkdown(md))
}

// renderMarkdown returns md styled for the terminal, or md itself when it
// cannot be rendered.
func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			return out
		}
	}
	debugf("could not render markdown: %v", err)
	return md
}
