package fxql

import "fmt"

// Position is a location in FXQL source.
//
// Line is 1-based. Column counts the characters already consumed on the
// current line, so it starts at 0.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// advance moves past one character of the current line.
func (p *Position) advance() { p.Column++ }

// newline moves to the start of the next line.
func (p *Position) newline() {
	p.Line++
	p.Column = 0
}
