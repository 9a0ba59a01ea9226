package fxql

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Parser turns one FXQL source into entries.
//
// A Parser holds the whole state of a single parse and cannot be reused:
// create one per input, or call the package level Parse.
type Parser struct {
	src   string
	used  bool
	pos   Position
	token strings.Builder
	state state
	fn    Function   // function awaiting its value
	block []fragment // fragments of the open block
	blank bool       // last line was blank after a closed block

	entries []Entry
}

// NewParser returns a parser for src. src must hold literal newlines, see
// Unescape for transport encoded payloads.
func NewParser(src string) *Parser {
	return &Parser{
		src:   src,
		pos:   Position{Line: 1},
		state: expectPair,
	}
}

// Parse parses src and returns its entries in source order.
// A grammar violation is returned as a *ParseError.
func Parse(src string) ([]Entry, error) {
	return NewParser(src).Parse()
}

// Parse scans the source once. It either returns every entry or the first
// *ParseError encountered, never both.
func (p *Parser) Parse() ([]Entry, error) {
	if p.used {
		return nil, ErrParserUsed
	}
	p.used = true

	for _, r := range p.src {
		switch r {
		case '\n':
			if err := p.endLine(); err != nil {
				return nil, err
			}
		case ' ':
			if err := p.flush(); err != nil {
				return nil, err
			}
			p.pos.advance()
		default:
			p.token.WriteRune(r)
			p.pos.advance()
		}
	}

	if err := p.flush(); err != nil {
		return nil, err
	}
	// Trailing content without a closing brace still makes an entry.
	if len(p.block) > 0 {
		p.finalize()
	}
	return p.entries, nil
}

// endLine handles a newline: it validates the pending token and decides
// whether the next line may start a new block.
func (p *Parser) endLine() error {
	if p.state == expectSeparator && strings.TrimSpace(p.token.String()) == "" {
		p.blank = true
		p.pos.newline()
		return nil
	}

	if err := p.flush(); err != nil {
		return err
	}
	p.pos.newline()

	if p.state == expectSeparator {
		if p.blank {
			p.blank = false
		} else {
			p.reset()
			p.state = expectPair
		}
	}
	return nil
}

// flush validates the buffered token and empties the buffer.
func (p *Parser) flush() error {
	token := p.token.String()
	if err := p.validate(token); err != nil {
		return err
	}
	p.token.Reset()
	return nil
}

// reset discards the open block.
func (p *Parser) reset() {
	p.block = nil
	p.blank = false
}

// finalize reduces the open block into a new Entry.
func (p *Parser) finalize() {
	if len(p.block) == 0 {
		return
	}
	pair := p.block[0].(currencyPair)
	e := Entry{
		EntryID:             len(p.entries) + 1,
		SourceCurrency:      pair.source,
		DestinationCurrency: pair.dest,
	}
	for _, f := range p.block[1:] {
		call, ok := f.(functionCall)
		if !ok {
			continue
		}
		// values were checked against the grammar, they always parse.
		v := decimal.NullDecimal{Decimal: decimal.RequireFromString(call.raw), Valid: true}
		switch call.fn {
		case Buy:
			e.BuyPrice = v
		case Sell:
			e.SellPrice = v
		case Cap:
			e.CapAmount = v
		}
	}
	p.entries = append(p.entries, e)
	p.reset()
}
