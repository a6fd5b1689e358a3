package pii

// RequiredFields is the default required field set for the compliance check.
var RequiredFields = []string{"age_range", "preferences", "location_region"}

// Compliant reports whether every required field name is present as a key in
// the record. When no names are supplied, RequiredFields is used.
//
// This is a presence check only. Empty strings and zero values count as
// present; downstream callers depend on exactly this weak guarantee to decide
// between blocking the operation and proceeding, so it must not be
// strengthened into a type or semantic check.
func Compliant(record map[string]any, required ...string) bool {
	if len(required) == 0 {
		required = RequiredFields
	}

	for _, field := range required {
		if _, ok := record[field]; !ok {
			return false
		}
	}

	return true
}
