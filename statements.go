package fxql

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyStatement is returned for a payload with no FXQL at all.
	ErrEmptyStatement = errors.New("FXQL is required")
	// ErrTooManyEntries is returned when a payload holds more entries than allowed.
	ErrTooManyEntries = errors.New("too many FXQL statements")
)

// Unescape decodes a transport payload where newlines and backslashes were
// sent as the two character sequences `\n` and `\\`.
//
// `\\` is decoded first, so `\\n` ends up as a newline.
func Unescape(s string) string {
	s = strings.ReplaceAll(s, `\\`, `\`)
	return strings.ReplaceAll(s, `\n`, "\n")
}

// ParseStatements unescapes a payload received from a transport and parses it.
func ParseStatements(payload string) ([]Entry, error) {
	if payload == "" {
		return nil, ErrEmptyStatement
	}
	return Parse(Unescape(payload))
}

// CheckLimit returns ErrTooManyEntries if entries exceeds max. A max lower
// than 1 disables the check.
func CheckLimit(entries []Entry, max int) error {
	if max > 0 && len(entries) > max {
		return fmt.Errorf("%w: got %d, maximum is %d", ErrTooManyEntries, len(entries), max)
	}
	return nil
}
