package fxql

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestUnescape(t *testing.T) {
	testCases := []struct {
		in, want string
	}{
		{`USD-GBP {\n BUY 1\n}`, "USD-GBP {\n BUY 1\n}"},
		{`a\\b`, `a\b`},
		{`a\\nb`, "a\nb"},
		{"already\nliteral", "already\nliteral"},
	}
	for _, tc := range testCases {
		if got := Unescape(tc.in); got != tc.want {
			t.Errorf("Unescape(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseStatements(t *testing.T) {
	payload := `USD-GBP {\n BUY 100\n SELL 200\n CAP 93800\n}\n\nEUR-JPY {\n BUY 145.20\n}`
	entries, err := ParseStatements(payload)
	if err != nil {
		t.Fatalf("ParseStatements() returned an unexpected error: %v", err)
	}
	checkEntries(t, entries, []Entry{
		{EntryID: 1, SourceCurrency: "USD", DestinationCurrency: "GBP", BuyPrice: D("100"), SellPrice: D("200"), CapAmount: D("93800")},
		{EntryID: 2, SourceCurrency: "EUR", DestinationCurrency: "JPY", BuyPrice: D("145.2")},
	})

	if _, err := ParseStatements(""); !errors.Is(err, ErrEmptyStatement) {
		t.Errorf("ParseStatements(\"\") error = %v, want %v", err, ErrEmptyStatement)
	}
}

func TestCheckLimit(t *testing.T) {
	entries := make([]Entry, 3)
	if err := CheckLimit(entries, 3); err != nil {
		t.Errorf("CheckLimit(3 entries, 3) = %v, want nil", err)
	}
	if err := CheckLimit(entries, 0); err != nil {
		t.Errorf("CheckLimit(3 entries, 0) = %v, want nil", err)
	}
	if err := CheckLimit(entries, 2); !errors.Is(err, ErrTooManyEntries) {
		t.Errorf("CheckLimit(3 entries, 2) = %v, want %v", err, ErrTooManyEntries)
	}
}

func TestEncodeDecodeEntries(t *testing.T) {
	entries, err := Parse("USD-GBP {\n BUY 0.85\n CAP 10000\n}\nNGN-USD {\n SELL 0.0023\n}")
	if err != nil {
		t.Fatalf("Parse() returned an unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := EncodeEntries(&buf, entries); err != nil {
		t.Fatalf("EncodeEntries() returned an unexpected error: %v", err)
	}
	want := `{"EntryId":1,"SourceCurrency":"USD","DestinationCurrency":"GBP","BuyPrice":0.85,"CapAmount":10000}
{"EntryId":2,"SourceCurrency":"NGN","DestinationCurrency":"USD","SellPrice":0.0023}
`
	if got := buf.String(); got != want {
		t.Errorf("EncodeEntries() produced incorrect output.\nGot:\n%s\nWant:\n%s", got, want)
	}

	decoded, err := DecodeEntries(strings.NewReader("\n" + buf.String() + "\n"))
	if err != nil {
		t.Fatalf("DecodeEntries() returned an unexpected error: %v", err)
	}
	checkEntries(t, decoded, entries)
}

func TestDecodeEntries_Invalid(t *testing.T) {
	_, err := DecodeEntries(strings.NewReader("{\"EntryId\":1}\nnot json\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("DecodeEntries() error = %v, want an error about line 2", err)
	}
}
