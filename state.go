package fxql

import (
	"regexp"
	"strings"
)

// state is the kind of token the parser expects next.
type state int

const (
	expectPair state = iota
	expectOpenBrace
	expectFuncOrClose
	expectNumber
	expectWholeNumber
	expectSeparator
)

func (s state) String() string {
	switch s {
	case expectPair:
		return "CURRENCY_PAIR"
	case expectOpenBrace:
		return "OPEN_BRACE"
	case expectFuncOrClose:
		return "FUNC_NAME"
	case expectNumber:
		return "NUMBER"
	case expectWholeNumber:
		return "WHOLE_NUMBER"
	case expectSeparator:
		return "NEWLINE_OR_END"
	default:
		return "UNKNOWN"
	}
}

var (
	currencyPairRegex = regexp.MustCompile(`^[A-Z]{3}-[A-Z]{3}$`)
	numberRegex       = regexp.MustCompile(`^(0|[1-9]\d*)(\.\d+)?$`)
	wholeNumberRegex  = regexp.MustCompile(`^(0|[1-9]\d*)$`)
)

// validate checks a flushed token against the expected state, moves the
// state machine forward and records the fragments it yields.
func (p *Parser) validate(raw string) error {
	token := strings.TrimSpace(raw)
	if token == "" {
		return nil
	}

	switch p.state {
	case expectPair:
		if !currencyPairRegex.MatchString(token) {
			return newParseError(p.pos, "Invalid currency pair '%s'", token)
		}
		source, dest, _ := strings.Cut(token, "-")
		p.block = append(p.block, currencyPair{source: source, dest: dest})
		p.state = expectOpenBrace

	case expectOpenBrace:
		if token != "{" {
			return newParseError(p.pos, "Expected a single space and '{' after currency pair")
		}
		p.state = expectFuncOrClose

	case expectFuncOrClose:
		if fn, ok := functions[token]; ok {
			p.fn = fn
			if fn == Cap {
				p.state = expectWholeNumber
			} else {
				p.state = expectNumber
			}
			break
		}
		if token != "}" {
			return newParseError(p.pos, "Unexpected function name '%s'", token)
		}
		if !p.hasCalls() {
			return newParseError(p.pos, "Empty FXQL block detected")
		}
		p.finalize()
		p.state = expectSeparator

	case expectNumber:
		if !numberRegex.MatchString(token) {
			return newParseError(p.pos, "Invalid numeric value '%s' for '%s'", token, p.fn)
		}
		p.block = append(p.block, functionCall{fn: p.fn, raw: token})
		p.state = expectFuncOrClose

	case expectWholeNumber:
		if !wholeNumberRegex.MatchString(token) {
			return newParseError(p.pos, "CAP value must be a positive whole number, but got '%s'", token)
		}
		p.block = append(p.block, functionCall{fn: p.fn, raw: token})
		p.state = expectFuncOrClose

	case expectSeparator:
		return newParseError(p.pos, "FXQL statements must be separated by a single newline")

	default:
		return newParseError(p.pos, "Unexpected parser state")
	}
	return nil
}

// hasCalls reports whether the open block holds at least one function call.
func (p *Parser) hasCalls() bool {
	for _, f := range p.block {
		if _, ok := f.(functionCall); ok {
			return true
		}
	}
	return false
}
