// Package format provides locale-aware number formatting for reports.
package format

import (
	"math"

	"github.com/iwvelando/order-dashboard/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Currency returns a Brazilian real string with thousands separators (e.g., "-R$ 1.234,56").
func Currency(amount float64) string {
	formatted := NumericCurrency(math.Abs(amount))
	if mathutil.IsNegative(amount) {
		return "-R$ " + formatted
	}
	return "R$ " + formatted
}

// NumericCurrency returns the amount with Brazilian separators and no symbol (e.g., "-1.234,56").
func NumericCurrency(amount float64) string {
	amount = mathutil.Round(amount)
	if amount == 0 {
		// avoid "-0,00"
		amount = 0
	}
	return printer.Sprintf("%.2f", amount)
}
