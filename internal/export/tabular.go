// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/pdiddy/pubmed-meta/pkg/types"
)

// SheetName is the worksheet written to XLSX files.
const SheetName = "Sheet1"

// WriteCSV writes a header row and one row per record.
func WriteCSV(w io.Writer, records []types.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(types.Columns); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return fmt.Errorf("writing CSV row %s: %w", r.PubMedID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a single-sheet workbook with a bold header row and one
// row per record. All cells are text, so IDs keep any leading zeros.
// Excel caps a cell at excelize.TotalCellChars characters; longer values
// are truncated in the workbook and each one is logged as a warning.
func WriteXLSX(w io.Writer, records []types.Record, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	header := toCells(types.Columns)
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing XLSX header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(types.Columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		return fmt.Errorf("styling XLSX header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := r.Row()
		for j, v := range values {
			if n := utf8.RuneCountInString(v); n > excelize.TotalCellChars {
				logger.Warn("XLSX cell exceeds the Excel character limit and is truncated; the CSV keeps the full value",
					zap.String("pmid", r.PubMedID),
					zap.String("column", types.Columns[j]),
					zap.Int("chars", n),
					zap.Int("limit", excelize.TotalCellChars))
			}
		}
		row := toCells(values)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing XLSX row %s: %w", r.PubMedID, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("encoding XLSX: %w", err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
