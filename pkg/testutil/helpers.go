// Package testutil provides common utility functions for testing.
package testutil

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

// SheetSpec describes one sheet of a fixture workbook. Rows are written
// starting at A1; nil entries leave the cell blank.
type SheetSpec struct {
	Name string
	Rows [][]interface{}
}

// WorkbookBytes builds an xlsx workbook containing the given sheets in order
// and returns its encoded bytes.
func WorkbookBytes(t testing.TB, sheets ...SheetSpec) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	defaultSheet := f.GetSheetName(0)
	for i, spec := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, spec.Name); err != nil {
				t.Fatalf("failed to rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(spec.Name); err != nil {
			t.Fatalf("failed to create sheet %s: %v", spec.Name, err)
		}

		for r, row := range spec.Rows {
			for c, value := range row {
				if value == nil {
					continue
				}
				axis, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					t.Fatalf("invalid coordinates: %v", err)
				}
				if err := f.SetCellValue(spec.Name, axis, value); err != nil {
					t.Fatalf("failed to set %s!%s: %v", spec.Name, axis, err)
				}
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to encode workbook: %v", err)
	}
	return buf.Bytes()
}

// WorkbookReader is WorkbookBytes wrapped in a reader.
func WorkbookReader(t testing.TB, sheets ...SheetSpec) *bytes.Reader {
	t.Helper()
	return bytes.NewReader(WorkbookBytes(t, sheets...))
}

// OrdersSheet returns a person sheet whose header names the regions and whose
// month rows hold one value per region.
func OrdersSheet(name string, regions []string, months []string, values [][]interface{}) SheetSpec {
	header := make([]interface{}, 0, len(regions)+1)
	header = append(header, "MÊS")
	for _, r := range regions {
		header = append(header, r)
	}

	rows := [][]interface{}{header}
	for i, m := range months {
		row := []interface{}{m}
		if i < len(values) {
			row = append(row, values[i]...)
		}
		rows = append(rows, row)
	}
	return SheetSpec{Name: name, Rows: rows}
}
