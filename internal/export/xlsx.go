package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/iwvelando/order-dashboard/internal/report"
	"github.com/iwvelando/order-dashboard/pkg/constants"
	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes t as a single-sheet workbook with the consolidated header.
func WriteXLSX(w io.Writer, t report.Table) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := constants.ConsolidatedSheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to open stream writer: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, r := range t.Records {
		axis, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(axis, []interface{}{r.Month, r.Region, r.Value, r.Person}); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush rows: %w", err)
	}

	_, err = f.WriteTo(w)
	return err
}

// XLSXBytes returns the workbook encoding of t.
func XLSXBytes(t report.Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
