package validation

import "fmt"

// UnknownSelections returns a warning for every requested value of a filter
// dimension that does not occur in the available values.
func UnknownSelections(dimension string, requested, available []string) []string {
	known := make(map[string]struct{}, len(available))
	for _, a := range available {
		known[a] = struct{}{}
	}

	var warnings []string
	for _, r := range requested {
		if _, ok := known[r]; !ok {
			warnings = append(warnings, fmt.Sprintf("%s %q not found in workbook", dimension, r))
		}
	}
	return warnings
}
