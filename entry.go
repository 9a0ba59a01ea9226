package fxql

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Entry is the structured result of one FXQL block.
//
// BuyPrice, SellPrice and CapAmount are only valid when the matching
// function appeared in the block. Values are kept exactly as written.
type Entry struct {
	EntryID             int                 `json:"EntryId"`
	SourceCurrency      string              `json:"SourceCurrency"`
	DestinationCurrency string              `json:"DestinationCurrency"`
	BuyPrice            decimal.NullDecimal `json:"BuyPrice"`
	SellPrice           decimal.NullDecimal `json:"SellPrice"`
	CapAmount           decimal.NullDecimal `json:"CapAmount"`
}

// Pair returns the entry's currency pair as written in FXQL, e.g. "USD-GBP".
func (e Entry) Pair() string { return e.SourceCurrency + "-" + e.DestinationCurrency }

// UnknownCurrencies returns the codes of the pair that are not ISO 4217
// currencies. The grammar only checks their shape.
func (e Entry) UnknownCurrencies() []string {
	var unknown []string
	for _, code := range []string{e.SourceCurrency, e.DestinationCurrency} {
		if money.GetCurrency(code) == nil {
			unknown = append(unknown, code)
		}
	}
	return unknown
}

// MarshalJSON writes the entry keys in a fixed order and leaves out the
// functions absent from the block.
func (e Entry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("EntryId", e.EntryID)
	w.Append("SourceCurrency", e.SourceCurrency)
	w.Append("DestinationCurrency", e.DestinationCurrency)
	w.Decimal("BuyPrice", e.BuyPrice)
	w.Decimal("SellPrice", e.SellPrice)
	w.Decimal("CapAmount", e.CapAmount)
	return w.MarshalJSON()
}
