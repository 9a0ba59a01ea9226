// Package xlsx exports FXQL entries as an Excel workbook.
package xlsx

import (
	"fmt"
	"io"

	"github.com/etnz/fxql"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the sheet holding the entries.
const SheetName = "Entries"

// Header is the first row of the sheet.
var Header = []any{"EntryId", "SourceCurrency", "DestinationCurrency", "BuyPrice", "SellPrice", "CapAmount"}

// Encode writes entries to w as a workbook with a single sheet, one row per
// entry after the header. Absent values are left empty.
//
// Values are written as numeric cells holding their exact decimal text, so
// the file keeps every digit. Spreadsheet applications still compute with
// 15 significant digits.
func Encode(w io.Writer, entries []fxql.Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{e.EntryID, e.SourceCurrency, e.DestinationCurrency}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write entry %d: %w", e.EntryID, err)
		}
		for j, d := range []decimal.NullDecimal{e.BuyPrice, e.SellPrice, e.CapAmount} {
			if !d.Valid {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(len(row)+j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellDefault(SheetName, cell, d.Decimal.String()); err != nil {
				return fmt.Errorf("failed to write entry %d: %w", e.EntryID, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
