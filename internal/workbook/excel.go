package workbook

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Open reads the xlsx workbook at path fully into memory.
func Open(logger *zap.Logger, path string) (*MemoryWorkbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Load(logger, f)
}

// Read reads an xlsx workbook from r fully into memory.
func Read(logger *zap.Logger, r io.Reader) (*MemoryWorkbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Load(logger, f)
}

// Load copies every sheet of an open excelize file into a MemoryWorkbook,
// keeping the workbook's sheet order.
func Load(logger *zap.Logger, f *excelize.File) (*MemoryWorkbook, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	wb := NewMemoryWorkbook()
	for _, name := range f.GetSheetList() {
		grid, err := readGrid(f, name)
		if err != nil {
			return nil, &SheetError{Sheet: name, Err: err}
		}
		sheet := NewSheet(name, grid)
		wb.Add(sheet)

		logger.Debug("sheet loaded",
			zap.String("op", "workbook.Load"),
			zap.String("sheet", name),
			zap.Int("columns", sheet.Width()),
			zap.Int("rows", len(sheet.Rows())),
		)
	}
	return wb, nil
}

func readGrid(f *excelize.File, sheet string) ([][]Cell, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	grid := make([][]Cell, len(rows))
	for r, row := range rows {
		cells := make([]Cell, len(row))
		for c, raw := range row {
			cell, err := typedCell(f, sheet, c+1, r+1, raw)
			if err != nil {
				return nil, err
			}
			cells[c] = cell
		}
		grid[r] = cells
	}
	return grid, nil
}

// typedCell classifies a raw cell value using the cell type stored in the
// workbook. Numbers, dates and formula results that parse as floats are
// numeric; strings and errors stay text.
func typedCell(f *excelize.File, sheet string, col, row int, raw string) (Cell, error) {
	if raw == "" {
		return Cell{}, nil
	}

	axis, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return Cell{}, err
	}
	cellType, err := f.GetCellType(sheet, axis)
	if err != nil {
		return Cell{}, err
	}

	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeError:
		return TextCell(raw), nil
	case excelize.CellTypeBool:
		return BoolCell(raw == "1" || strings.EqualFold(raw, "true")), nil
	default:
		if v, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return Cell{Kind: Number, Number: v, Text: raw}, nil
		}
		return TextCell(raw), nil
	}
}
