// Package pii implements the anonymization and compliance rules applied to
// profile records before any data leaves the process for a model endpoint.
package pii

import (
	"crypto/sha256"
	"fmt"
	"reflect"
	"strings"
)

// SensitiveFields is the fixed set of field names whose values are hashed
// during anonymization of flat records. The set does not depend on data
// content.
var SensitiveFields = map[string]struct{}{
	"name":    {},
	"address": {},
	"phone":   {},
	"email":   {},
	"ssn":     {},
}

// TagName is the struct tag marking a field as sensitive at the type
// definition site. Fields tagged `pii:"hash"` are digested when the struct is
// flattened for a prompt.
const TagName = "pii"

const hashTagValue = "hash"

// Digest returns the first 8 hex characters of the SHA-256 digest of the
// value's string form. Unsalted: identical values always produce identical
// digests. Re-identification against known value sets is an accepted
// limitation of this scheme, not a bug.
func Digest(value any) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%v", value)))
	return fmt.Sprintf("%x", sum)[:8]
}

// Anonymize returns a copy of the record in which every key from
// SensitiveFields carries the digest of its value instead of the value
// itself. All other keys pass through unchanged. The input map is never
// mutated. A nil map yields a nil map.
func Anonymize(record map[string]any) map[string]any {
	if record == nil {
		return nil
	}

	anonymized := make(map[string]any, len(record))
	for key, value := range record {
		if _, sensitive := SensitiveFields[key]; sensitive {
			anonymized[key] = Digest(value)
			continue
		}
		anonymized[key] = value
	}

	return anonymized
}

// AnonymizeStruct flattens a profile struct into a map keyed by json field
// names and digests every field tagged `pii:"hash"`. Unlike Anonymize, the
// sensitive set is declared on the type itself, so schema drift cannot
// silently leave a new field unprotected.
func AnonymizeStruct(v any) map[string]any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	record := make(map[string]any)
	for _, field := range reflect.VisibleFields(rv.Type()) {
		if !field.IsExported() || field.Anonymous {
			continue
		}

		key, omitEmpty := jsonKey(field)
		if key == "-" {
			continue
		}

		value := rv.FieldByIndex(field.Index)
		if omitEmpty && value.IsZero() {
			continue
		}

		if field.Tag.Get(TagName) == hashTagValue {
			record[key] = Digest(value.Interface())
			continue
		}

		record[key] = value.Interface()
	}

	return record
}

func jsonKey(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name, false
	}

	parts := strings.Split(tag, ",")
	name := parts[0]
	if name == "" {
		name = field.Name
	}

	omitEmpty := false
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}

	return name, omitEmpty
}
