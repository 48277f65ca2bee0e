package table

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"
)

// DefaultSheet is the sheet name WriteXLSX uses when none is given.
const DefaultSheet = "Sheet1"

// ReadXLSXFile reads the first sheet of the workbook at path.
func ReadXLSXFile(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("table: open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f)
}

// ReadXLSX reads the first sheet of a workbook from r.
func ReadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("table: open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) (*Table, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoHeader
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("table: read sheet %q: %w", sheets[0], err)
	}
	return fromRecords(rows)
}

// WriteXLSX writes t as a single sheet to w. NaN cells are left empty.
func WriteXLSX(w io.Writer, t *Table, sheet string) error {
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	defer f.Close()

	if sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheet); err != nil {
			return fmt.Errorf("table: rename sheet: %w", err)
		}
	}

	header := make([]any, t.Width())
	for j, name := range t.Names() {
		header[j] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("table: write header: %w", err)
	}

	cols := t.Columns()
	row := make([]any, len(cols))
	for i := 0; i < t.Len(); i++ {
		for j, c := range cols {
			v := c.Values[i]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				row[j] = nil
				continue
			}
			row[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("table: write row %d: %w", i, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("table: write workbook: %w", err)
	}
	return nil
}
