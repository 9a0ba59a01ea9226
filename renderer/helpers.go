package renderer

import (
	"bytes"
	"io"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// price formats a rate quoted in currency code, "-" when absent.
func price(d decimal.NullDecimal, code string) string {
	if !d.Valid {
		return "-"
	}
	if c := money.GetCurrency(code); c != nil && c.Grapheme != "" {
		return c.Grapheme + d.Decimal.String()
	}
	return d.Decimal.String()
}

// amount formats a bare amount, "-" when absent.
func amount(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return d.Decimal.String()
}
