package renderer

import (
	"strings"

	"github.com/etnz/fxql"
)

// errorView is the data of the error template.
type errorView struct {
	Message string
	Line    int
	Column  int
	Text    string // offending source line
	Caret   string // marker under the offending character
}

// Error renders err with the line of src it points to and a caret under
// the last character read before the error.
func Error(src string, err *fxql.ParseError) string {
	v := errorView{
		Message: err.Message,
		Line:    err.Line,
		Column:  err.Column,
	}

	lines := strings.Split(src, "\n")
	if err.Line >= 1 && err.Line <= len(lines) {
		v.Text = strings.TrimRight(lines[err.Line-1], "\r")
	}
	v.Caret = caret(v.Text, err.Column-1)

	return renderTemplate("error", "error.md", v)
}

// caret returns a marker at rune index i of text. Tabs are kept so that the
// marker lines up whatever the tab width.
func caret(text string, i int) string {
	var b strings.Builder
	n := 0
	for _, r := range text {
		if n >= i {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
		n++
	}
	for ; n < i; n++ {
		b.WriteRune(' ')
	}
	b.WriteRune('^')
	return b.String()
}
