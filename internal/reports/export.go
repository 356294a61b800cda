package reports

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet name of XLSX exports.
const SheetName = "Report"

// WriteCSV writes a header line and every row.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	if err := cw.WriteAll(t.Strings()); err != nil {
		return fmt.Errorf("writing csv rows: %w", err)
	}
	return nil
}

// WriteXLSX writes the table as a workbook with one sheet. Numeric cells are
// stored as numbers and a bold totals row follows the data when any column
// is numeric.
func (t *Table) WriteXLSX(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range t.Rows {
		line := make([]any, len(t.Columns))
		for j, c := range t.Columns {
			if d, ok := toDecimal(r[c]); ok {
				line[j] = d.InexactFloat64()
			} else {
				line[j] = Cell(r, c)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &line); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := t.writeTotals(f); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func (t *Table) writeTotals(f *excelize.File) error {
	totals := t.Totals()
	if len(totals) == 0 {
		return nil
	}
	line := make([]any, len(t.Columns))
	for j, c := range t.Columns {
		if sum, ok := totals[c]; ok {
			line[j] = sum.InexactFloat64()
		}
	}
	if _, numericFirst := totals[t.Columns[0]]; !numericFirst {
		line[0] = "Total"
	}
	row := len(t.Rows) + 2
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(t.Columns), row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetName, first, &line); err != nil {
		return fmt.Errorf("writing totals: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating totals style: %w", err)
	}
	return f.SetCellStyle(SheetName, first, last, style)
}
