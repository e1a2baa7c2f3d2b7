// =============================================================================
// CSV Wizard - XLSX Export Module
// =============================================================================
//
// This module writes converted point rows into an Excel workbook, for
// operators who hand the points to people working in spreadsheets instead of
// CAD. The source CSV is never touched by an export.
//
// WORKBOOK LAYOUT:
//   - a single sheet (default "Points")
//   - row 1 is the canonical header in bold when the rows start with it
//   - the sequence column is written as a number; coordinate cells are written
//     as text so no digits are lost to float formatting
//
// =============================================================================

package xlsxexport

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/csv-wizard/internal/types"
)

// DefaultSheetName is used when Options.SheetName is empty.
const DefaultSheetName = "Points"

// Options controls the workbook layout.
type Options struct {
	SheetName string
}

// Export streams rows into a new workbook and writes it to w.
//
// PARAMETERS:
//   - rows: The converted rows, header first when there is one.
//   - w: The destination for the .xlsx bytes.
//   - opts: Layout options.
//
// RETURNS:
//   - The number of rows written.
//   - An error if the workbook cannot be built or written.
func Export(rows []types.Row, w io.Writer, opts Options) (int, error) {
	file := excelize.NewFile()
	defer func() {
		_ = file.Close()
	}()

	sheetName := opts.SheetName
	if sheetName == "" {
		sheetName = DefaultSheetName
	}
	if defaultSheet := file.GetSheetName(0); defaultSheet != sheetName {
		if err := file.SetSheetName(defaultSheet, sheetName); err != nil {
			return 0, fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	stream, err := file.NewStreamWriter(sheetName)
	if err != nil {
		return 0, fmt.Errorf("failed to open sheet: %w", err)
	}

	headerStyle, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return 0, fmt.Errorf("failed to create header style: %w", err)
	}

	canonical := types.CanonicalHeader()
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		isHeader := i == 0 && row.Equal(canonical)

		for j, value := range row {
			switch {
			case isHeader:
				cells[j] = excelize.Cell{StyleID: headerStyle, Value: value}
			case j == 0:
				cells[j] = sequenceCell(value)
			default:
				cells[j] = value
			}
		}

		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return i, err
		}
		if err := stream.SetRow(cell, cells); err != nil {
			return i, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := stream.Flush(); err != nil {
		return len(rows), fmt.Errorf("failed to flush sheet: %w", err)
	}
	if _, err := file.WriteTo(w); err != nil {
		return len(rows), fmt.Errorf("failed to write workbook: %w", err)
	}
	return len(rows), nil
}

// ExportFile writes the workbook to outPath.
func ExportFile(rows []types.Row, outPath string, opts Options) (int, error) {
	f, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", outPath, err)
	}

	n, err := Export(rows, f, opts)
	if err != nil {
		f.Close()
		os.Remove(outPath)
		return n, err
	}
	if err := f.Close(); err != nil {
		return n, fmt.Errorf("failed to close %s: %w", outPath, err)
	}
	return n, nil
}

// sequenceCell writes integer sequence numbers as numbers and anything else
// (pass-through data) as text.
func sequenceCell(value string) interface{} {
	if n, err := strconv.Atoi(value); err == nil {
		return n
	}
	return value
}
