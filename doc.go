// Package fxql parses FXQL, a small language describing foreign exchange
// rates.
//
// An FXQL source is a list of blocks, each one opened by a currency pair and
// holding the BUY, SELL and CAP functions for that pair:
//
//	USD-GBP {
//	 BUY 100
//	 SELL 200
//	 CAP 93800
//	}
//
// Blocks are separated by a single newline or by one blank line.
//
// The package provides:
//   - Parsing: a single pass, character by character parser that produces
//     one Entry per block, or the first *ParseError with its line and column.
//   - Transport helpers: Unescape and ParseStatements for payloads where
//     newlines were sent escaped, and CheckLimit for batch size policies.
//   - Encoding: JSON for entries with a stable key order, and JSONL streams.
//
// This package is the foundation of the `fxql` command-line tool and of its
// HTTP server.
package fxql
