package fxql

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// EncodeEntries writes entries to w in JSONL format, one entry per line.
func EncodeEntries(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("failed to marshal entry %d: %w", e.EntryID, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("failed to write entry %d: %w", e.EntryID, err)
		}
	}
	return nil
}

// DecodeEntries reads entries from a stream of JSONL data. Empty lines are
// skipped.
func DecodeEntries(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := bytes.TrimSpace(scanner.Bytes())
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var e Entry
		if err := json.Unmarshal(lineBytes, &e); err != nil {
			return nil, fmt.Errorf("could not decode entry in line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return entries, nil
}
