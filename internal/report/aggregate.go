package report

import (
	"math"
	"sort"

	"github.com/iwvelando/order-dashboard/pkg/constants"
	"github.com/shopspring/decimal"
)

// Total is the summed value of one category. Total is nil when the category
// has no records, which only happens on the calendar month axis.
type Total struct {
	Label string   `json:"label"`
	Total *float64 `json:"total"`
}

// Present reports whether the category had any records.
func (t Total) Present() bool {
	return t.Total != nil
}

// Value returns the total, or 0 when the category had no records.
func (t Total) Value() float64 {
	if t.Total == nil {
		return 0
	}
	return *t.Total
}

// Summary bundles the three aggregations of a table.
type Summary struct {
	Rows     int     `json:"rows"`
	Total    float64 `json:"total"`
	ByPerson []Total `json:"byPerson"`
	ByRegion []Total `json:"byRegion"`
	ByMonth  []Total `json:"byMonth"`
}

// Summarize computes every aggregation of t.
func Summarize(t Table) Summary {
	return Summary{
		Rows:     t.Len(),
		Total:    Sum(t),
		ByPerson: ByPerson(t),
		ByRegion: ByRegion(t),
		ByMonth:  ByMonth(t),
	}
}

// Sum returns the total of every record value.
func Sum(t Table) float64 {
	total := decimal.Zero
	for _, r := range t.Records {
		total = total.Add(amount(r.Value))
	}
	return total.InexactFloat64()
}

// ByPerson sums values per person, largest total first.
func ByPerson(t Table) []Total {
	return byDescendingTotal(t, func(r Record) string { return r.Person })
}

// ByRegion sums values per region, largest total first.
func ByRegion(t Table) []Total {
	return byDescendingTotal(t, func(r Record) string { return r.Region })
}

// ByMonth sums values per month on the fixed calendar axis, JANEIRO through
// DEZEMBRO. All twelve months are returned; months without records have a nil
// Total.
func ByMonth(t Table) []Total {
	sums := group(t, func(r Record) string { return r.Month })

	out := make([]Total, len(constants.Months))
	for i, m := range constants.Months {
		out[i] = Total{Label: m}
		if s, ok := sums[m]; ok {
			v := s.InexactFloat64()
			out[i].Total = &v
		}
	}
	return out
}

func byDescendingTotal(t Table, key func(Record) string) []Total {
	sums := group(t, key)

	labels := make([]string, 0, len(sums))
	for k := range sums {
		labels = append(labels, k)
	}
	sort.Slice(labels, func(i, j int) bool {
		if c := sums[labels[i]].Cmp(sums[labels[j]]); c != 0 {
			return c > 0
		}
		return labels[i] < labels[j]
	})

	out := make([]Total, len(labels))
	for i, label := range labels {
		v := sums[label].InexactFloat64()
		out[i] = Total{Label: label, Total: &v}
	}
	return out
}

func group(t Table, key func(Record) string) map[string]decimal.Decimal {
	sums := make(map[string]decimal.Decimal)
	for _, r := range t.Records {
		k := key(r)
		sums[k] = sums[k].Add(amount(r.Value))
	}
	return sums
}

func amount(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
