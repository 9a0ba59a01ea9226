package fxql

import (
	"errors"
	"fmt"
)

// ErrParserUsed is returned when Parse is called twice on the same Parser.
var ErrParserUsed = errors.New("fxql: parser already used")

// ParseError is the single kind of grammar violation reported by the parser.
//
// Line and Column are the cursor position at the moment the violation was
// detected, which can be past the first character of the offending token.
type ParseError struct {
	Message string `json:"message"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Pos returns the position where the error was detected.
func (e *ParseError) Pos() Position { return Position{Line: e.Line, Column: e.Column} }

func newParseError(pos Position, format string, args ...any) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    pos.Line,
		Column:  pos.Column,
	}
}
