// Package report holds the canonical long-format order table and the
// filtering and aggregation applied to it for display and export.
package report

// Record is one (month, region, person) order amount.
type Record struct {
	Month  string  `json:"month"`
	Region string  `json:"region"`
	Value  float64 `json:"value"`
	Person string  `json:"person"`
}

// Table is an ordered collection of records. A Table is never modified after
// construction; filtering returns a new Table.
type Table struct {
	Records []Record `json:"records"`
}

// Len returns the number of records.
func (t Table) Len() int {
	return len(t.Records)
}

// Empty reports whether the table has no records.
func (t Table) Empty() bool {
	return len(t.Records) == 0
}

// Persons returns the distinct persons in first-seen order.
func (t Table) Persons() []string {
	return t.distinct(func(r Record) string { return r.Person })
}

// Regions returns the distinct regions in first-seen order.
func (t Table) Regions() []string {
	return t.distinct(func(r Record) string { return r.Region })
}

// Months returns the distinct months in first-seen order.
func (t Table) Months() []string {
	return t.distinct(func(r Record) string { return r.Month })
}

func (t Table) distinct(key func(Record) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range t.Records {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
