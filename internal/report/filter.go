package report

// Set is a set of labels.
type Set map[string]struct{}

// NewSet returns a set holding values.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is in the set.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Selection is the explicit filter state: a record passes when its person,
// region and month are all selected. An empty set selects nothing.
type Selection struct {
	Persons Set
	Regions Set
	Months  Set
}

// DefaultSelection selects every person, region and month present in t.
func DefaultSelection(t Table) Selection {
	return Selection{
		Persons: NewSet(t.Persons()...),
		Regions: NewSet(t.Regions()...),
		Months:  NewSet(t.Months()...),
	}
}

// SelectionFrom builds a selection from explicit lists. A nil list means every
// value of that dimension present in t.
func SelectionFrom(t Table, persons, regions, months []string) Selection {
	sel := DefaultSelection(t)
	if persons != nil {
		sel.Persons = NewSet(persons...)
	}
	if regions != nil {
		sel.Regions = NewSet(regions...)
	}
	if months != nil {
		sel.Months = NewSet(months...)
	}
	return sel
}

// Filter returns the records of t matching sel, in their original order.
func Filter(t Table, sel Selection) Table {
	out := make([]Record, 0, len(t.Records))
	for _, r := range t.Records {
		if sel.Persons.Has(r.Person) && sel.Regions.Has(r.Region) && sel.Months.Has(r.Month) {
			out = append(out, r)
		}
	}
	return Table{Records: out}
}
