// Package workbook provides read access to spreadsheet workbooks as ordered
// grids of typed cells. Sheets expose a header row and the data rows below it,
// and the set of columns is whatever the sheet happens to contain.
package workbook

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidFormat indicates the input is not a readable xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrSheetNotFound indicates a sheet name that is not part of the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// Kind is the type of a cell value.
type Kind int

const (
	// Empty is a cell without a value.
	Empty Kind = iota
	// Text is a string cell.
	Text
	// Number is a numeric cell (numbers, dates and numeric formula results).
	Number
	// Bool is a boolean cell.
	Bool
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Text:
		return "text"
	case Number:
		return "number"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Cell is a single typed sheet cell. Text holds the raw source string for
// every kind except Empty.
type Cell struct {
	Kind   Kind
	Text   string
	Number float64
}

// TextCell returns a text cell.
func TextCell(s string) Cell {
	return Cell{Kind: Text, Text: s}
}

// NumberCell returns a numeric cell.
func NumberCell(v float64) Cell {
	return Cell{Kind: Number, Number: v, Text: strconv.FormatFloat(v, 'f', -1, 64)}
}

// BoolCell returns a boolean cell.
func BoolCell(b bool) Cell {
	c := Cell{Kind: Bool, Text: strings.ToUpper(strconv.FormatBool(b))}
	if b {
		c.Number = 1
	}
	return c
}

// IsEmpty reports whether the cell has no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == Empty
}

// Sheet is one tab of a workbook.
type Sheet interface {
	// Name returns the sheet name as shown on its tab.
	Name() string
	// HeaderRow returns the ordered column labels, one per column.
	HeaderRow() []string
	// Rows returns the data rows below the header, each padded to Width.
	Rows() [][]Cell
	// Width returns the number of columns.
	Width() int
}

// Workbook is an ordered collection of named sheets.
type Workbook interface {
	// SheetNames returns sheet names in workbook order.
	SheetNames() []string
	// Sheet returns the named sheet or an error wrapping ErrSheetNotFound.
	Sheet(name string) (Sheet, error)
}

// SheetError reports a failure reading one sheet.
type SheetError struct {
	Sheet string
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q: %v", e.Sheet, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}
