package normalize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/iwvelando/order-dashboard/internal/workbook"
)

// ErrUnparseable is returned by ParseValue when a cell cannot be read as a number.
var ErrUnparseable = errors.New("unparseable value")

// CleanValue converts a raw cell into an amount. It never fails: anything that
// ParseValue rejects becomes 0.0, so a malformed value and a genuine zero are
// indistinguishable in the result.
func CleanValue(c workbook.Cell) float64 {
	v, err := ParseValue(c)
	if err != nil {
		return 0
	}
	return v
}

// ParseValue applies the cleaning rules and reports values it could not read.
//
// Non-text cells are coerced directly; empty cells read as 0. Text is reduced
// to digits, commas and periods. When more than one period remains, all but
// the last are thousands separators. When a comma is present, periods are
// thousands separators and the comma is the decimal point. So "1.234,56",
// "1.234.567,89" and "R$ 500,00" read as 1234.56, 1234567.89 and 500.
func ParseValue(c workbook.Cell) (float64, error) {
	switch c.Kind {
	case workbook.Empty:
		return 0, nil
	case workbook.Number, workbook.Bool:
		if math.IsNaN(c.Number) || math.IsInf(c.Number, 0) {
			return 0, fmt.Errorf("%w: %v", ErrUnparseable, c.Number)
		}
		return c.Number, nil
	}

	cleaned := cleanText(c.Text)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnparseable, c.Text)
	}
	return v, nil
}

func cleanText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			b.WriteRune(r)
		}
	}
	out := b.String()

	if strings.Count(out, ".") > 1 {
		last := strings.LastIndex(out, ".")
		out = strings.ReplaceAll(out[:last], ".", "") + out[last:]
	}
	if strings.Contains(out, ",") {
		out = strings.ReplaceAll(out, ".", "")
		out = strings.ReplaceAll(out, ",", ".")
	}
	return out
}
