// Package mathutil provides rounding and tolerance helpers for currency amounts.
package mathutil

import (
	"math"

	"github.com/iwvelando/order-dashboard/pkg/constants"
)

// Round rounds a value to cents.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsNegative reports whether val is still negative once rounded to cents.
func IsNegative(val float64) bool {
	return Round(val) < 0
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// SameAmount reports whether two amounts agree to the cent.
func SameAmount(a, b float64) bool {
	return WithinTolerance(a, b, constants.CurrencyTolerance)
}
