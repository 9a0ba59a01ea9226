package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/fxql"
	"github.com/etnz/fxql/renderer"
)

const twoEntries = "USD-GBP {\n BUY 0.85\n}\n\nEUR-JPY {\n SELL 145.20\n CAP 5000\n}"

func TestParseCmd_Run(t *testing.T) {
	entries, err := fxql.Parse(twoEntries)
	if err != nil {
		t.Fatalf("Parse() returned an unexpected error: %v", err)
	}

	testCases := []struct {
		name string
		cmd  parseCmd
		want string
	}{
		{
			name: "json",
			cmd:  parseCmd{format: formatJSON},
			want: `[
  {
    "EntryId": 1,
    "SourceCurrency": "USD",
    "DestinationCurrency": "GBP",
    "BuyPrice": 0.85
  },
  {
    "EntryId": 2,
    "SourceCurrency": "EUR",
    "DestinationCurrency": "JPY",
    "SellPrice": 145.2,
    "CapAmount": 5000
  }
]
`,
		},
		{
			name: "jsonl",
			cmd:  parseCmd{format: formatJSONL},
			want: `{"EntryId":1,"SourceCurrency":"USD","DestinationCurrency":"GBP","BuyPrice":0.85}
{"EntryId":2,"SourceCurrency":"EUR","DestinationCurrency":"JPY","SellPrice":145.2,"CapAmount":5000}
`,
		},
		{
			name: "markdown",
			cmd:  parseCmd{format: formatMarkdown},
			want: renderer.Entries(entries),
		},
		{
			name: "path to a value",
			cmd:  parseCmd{format: formatJSON, path: "$[0].BuyPrice"},
			want: "0.85\n",
		},
		{
			name: "path to many values",
			cmd:  parseCmd{format: formatJSON, path: "$[*].SourceCurrency"},
			want: "[\n  \"USD\",\n  \"EUR\"\n]\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var b strings.Builder
			if err := tc.cmd.run(twoEntries, &b); err != nil {
				t.Fatalf("run() returned an unexpected error: %v", err)
			}
			if got := b.String(); got != tc.want {
				t.Errorf("run() output mismatch:\ngot:\n%s\nwant:\n%s", got, tc.want)
			}
		})
	}
}

func TestParseCmd_RunEmpty(t *testing.T) {
	var b strings.Builder
	c := parseCmd{format: formatJSON}
	if err := c.run("", &b); err != nil {
		t.Fatalf("run() returned an unexpected error: %v", err)
	}
	if got := b.String(); got != "[]\n" {
		t.Errorf("run() = %q, want %q", got, "[]\n")
	}
}

func TestParseCmd_RunErrors(t *testing.T) {
	testCases := []struct {
		name       string
		cmd        parseCmd
		src        string
		parseError bool
	}{
		{name: "grammar", cmd: parseCmd{format: formatJSON}, src: "usd-GBP { BUY 1 }", parseError: true},
		{name: "unknown format", cmd: parseCmd{format: "yaml"}, src: twoEntries},
		{name: "path needs json", cmd: parseCmd{format: formatJSONL, path: "$"}, src: twoEntries},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cmd.run(tc.src, &bytes.Buffer{})
			if err == nil {
				t.Fatal("run() succeeded, want an error")
			}
			if _, ok := asParseError(err); ok != tc.parseError {
				t.Errorf("run() error = %v, parse error %v, want %v", err, ok, tc.parseError)
			}
		})
	}
}

func TestCheckCmd_Run(t *testing.T) {
	dir := t.TempDir()
	matching := filepath.Join(dir, "matching.jsonl")
	different := filepath.Join(dir, "different.jsonl")
	writeEntries(t, matching, twoEntries)
	writeEntries(t, different, "USD-GBP {\n BUY 0.86\n}")

	testCases := []struct {
		name       string
		cmd        checkCmd
		src        string
		wantFailed bool
		wantReport string
	}{
		{
			name:       "valid",
			src:        twoEntries,
			wantReport: "ok: 2 entries",
		},
		{
			name:       "grammar error",
			src:        "usd-GBP {\n BUY 1\n}",
			wantFailed: true,
			wantReport: "Invalid currency pair 'usd-GBP'",
		},
		{
			name:       "unknown currency is a warning",
			src:        "XYZ-USD {\n BUY 1\n}",
			wantReport: `"XYZ" is not an ISO 4217 currency`,
		},
		{
			name:       "unknown currency in strict mode",
			cmd:        checkCmd{strict: true},
			src:        "XYZ-USD {\n BUY 1\n}",
			wantFailed: true,
			wantReport: "1 warning(s) in strict mode",
		},
		{
			name:       "expected entries match",
			cmd:        checkCmd{entries: matching},
			src:        twoEntries,
			wantReport: "ok: 2 entries",
		},
		{
			name:       "expected entries differ",
			cmd:        checkCmd{entries: different},
			src:        twoEntries,
			wantFailed: true,
			wantReport: "got 2 entries, want 1",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var report strings.Builder
			err := tc.cmd.run(tc.src, &report)
			if tc.wantFailed != errors.Is(err, errCheckFailed) {
				t.Errorf("run() error = %v, want failed %v", err, tc.wantFailed)
			}
			if err != nil && !errors.Is(err, errCheckFailed) {
				t.Errorf("run() returned an unexpected error: %v", err)
			}
			if !strings.Contains(report.String(), tc.wantReport) {
				t.Errorf("report %q does not contain %q", report.String(), tc.wantReport)
			}
		})
	}
}

func TestExportCmd_Run(t *testing.T) {
	var b bytes.Buffer
	c := exportCmd{}
	if err := c.run(twoEntries, &b); err != nil {
		t.Fatalf("run() returned an unexpected error: %v", err)
	}
	// A workbook is a zip archive.
	if !bytes.HasPrefix(b.Bytes(), []byte("PK")) {
		t.Errorf("run() did not write a workbook")
	}
	if err := c.run("USD-GBP {}", &b); err == nil {
		t.Errorf("run() succeeded on invalid FXQL")
	}
}

func TestReadSource(t *testing.T) {
	name := filepath.Join(t.TempDir(), "rates.fxql")
	if err := os.WriteFile(name, []byte(`USD-GBP {\n BUY 1\n}`), 0644); err != nil {
		t.Fatal(err)
	}

	raw, err := readSource([]string{name}, false)
	if err != nil {
		t.Fatalf("readSource() returned an unexpected error: %v", err)
	}
	if raw != `USD-GBP {\n BUY 1\n}` {
		t.Errorf("readSource() = %q, want the file content", raw)
	}

	decoded, err := readSource([]string{name}, true)
	if err != nil {
		t.Fatalf("readSource() returned an unexpected error: %v", err)
	}
	if decoded != "USD-GBP {\n BUY 1\n}" {
		t.Errorf("readSource(escaped) = %q, want decoded newlines", decoded)
	}

	if _, err := readSource(nil, false); err == nil {
		t.Errorf("readSource() without input succeeded")
	}
}

func writeEntries(t *testing.T, name, src string) {
	t.Helper()
	entries, err := fxql.Parse(src)
	if err != nil {
		t.Fatalf("Parse() returned an unexpected error: %v", err)
	}
	var b bytes.Buffer
	if err := fxql.EncodeEntries(&b, entries); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(name, b.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestRenderMarkdown(t *testing.T) {
	got := renderMarkdown("# Entries\n\nok: 2 entries\n")
	if !strings.Contains(got, "Entries") || !strings.Contains(got, "ok: 2 entries") {
		t.Errorf("renderMarkdown() lost the content: %q", got)
	}
}
