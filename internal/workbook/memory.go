package workbook

import (
	"fmt"
	"strconv"
)

// MemorySheet is a Sheet held entirely in memory.
type MemorySheet struct {
	name   string
	header []string
	rows   [][]Cell
	width  int
}

// NewSheet builds a sheet from a raw grid. The first non-empty row becomes the
// header and every following row is data.
func NewSheet(name string, grid [][]Cell) *MemorySheet {
	start := 0
	for start < len(grid) && rowIsEmpty(grid[start]) {
		start++
	}

	s := &MemorySheet{name: name}
	if start == len(grid) {
		return s
	}

	width := 0
	for _, row := range grid[start:] {
		if n := trimmedLen(row); n > width {
			width = n
		}
	}
	s.width = width
	s.header = headerLabels(pad(grid[start], width))

	for _, row := range grid[start+1:] {
		if rowIsEmpty(row) {
			continue
		}
		s.rows = append(s.rows, pad(row, width))
	}
	return s
}

// Name implements Sheet.
func (s *MemorySheet) Name() string { return s.name }

// HeaderRow implements Sheet.
func (s *MemorySheet) HeaderRow() []string { return s.header }

// Rows implements Sheet.
func (s *MemorySheet) Rows() [][]Cell { return s.rows }

// Width implements Sheet.
func (s *MemorySheet) Width() int { return s.width }

// MemoryWorkbook is a Workbook held entirely in memory.
type MemoryWorkbook struct {
	names  []string
	sheets map[string]Sheet
}

// NewMemoryWorkbook returns a workbook containing sheets in the given order.
func NewMemoryWorkbook(sheets ...Sheet) *MemoryWorkbook {
	wb := &MemoryWorkbook{sheets: make(map[string]Sheet, len(sheets))}
	for _, s := range sheets {
		wb.Add(s)
	}
	return wb
}

// Add appends a sheet. A sheet with an existing name replaces the old one in place.
func (wb *MemoryWorkbook) Add(s Sheet) {
	if _, ok := wb.sheets[s.Name()]; !ok {
		wb.names = append(wb.names, s.Name())
	}
	wb.sheets[s.Name()] = s
}

// SheetNames implements Workbook.
func (wb *MemoryWorkbook) SheetNames() []string {
	return append([]string(nil), wb.names...)
}

// Sheet implements Workbook.
func (wb *MemoryWorkbook) Sheet(name string) (Sheet, error) {
	s, ok := wb.sheets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, name)
	}
	return s, nil
}

// headerLabels turns header cells into column labels. Blank labels become
// "Unnamed: <index>" and repeated labels get ".1", ".2", ... suffixes so every
// column has a distinct name.
func headerLabels(cells []Cell) []string {
	labels := make([]string, len(cells))
	seen := make(map[string]int, len(cells))
	for i, c := range cells {
		label := c.Text
		if c.IsEmpty() || label == "" {
			label = "Unnamed: " + strconv.Itoa(i)
		}
		if n, dup := seen[label]; dup {
			candidate := fmt.Sprintf("%s.%d", label, n)
			for {
				if _, taken := seen[candidate]; !taken {
					break
				}
				n++
				candidate = fmt.Sprintf("%s.%d", label, n)
			}
			seen[label] = n + 1
			label = candidate
		}
		seen[label] = 1
		labels[i] = label
	}
	return labels
}

func rowIsEmpty(row []Cell) bool {
	return trimmedLen(row) == 0
}

func trimmedLen(row []Cell) int {
	n := len(row)
	for n > 0 && row[n-1].IsEmpty() {
		n--
	}
	return n
}

func pad(row []Cell, width int) []Cell {
	out := make([]Cell, width)
	copy(out, row)
	return out
}
