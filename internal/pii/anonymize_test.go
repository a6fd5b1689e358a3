package pii

import (
	"regexp"
	"testing"
)

var hexDigest = regexp.MustCompile(`^[0-9a-f]{8}$`)

func TestAnonymizeHashesSensitiveFields(t *testing.T) {
	record := map[string]any{
		"name":      "Jane Doe",
		"ssn":       "000-12-3456",
		"email":     "jane@example.com",
		"age":       8,
		"interests": "art, music",
	}

	anonymized := Anonymize(record)

	for _, key := range []string{"name", "ssn", "email"} {
		value, ok := anonymized[key].(string)
		if !ok {
			t.Fatalf("expected %s to be a string digest, got %T", key, anonymized[key])
		}
		if !hexDigest.MatchString(value) {
			t.Fatalf("expected %s to be 8 hex characters, got %q", key, value)
		}
		if value == record[key] {
			t.Fatalf("expected %s to differ from the original value", key)
		}
	}

	if anonymized["age"] != 8 {
		t.Fatalf("expected age to pass through, got %v", anonymized["age"])
	}
	if anonymized["interests"] != "art, music" {
		t.Fatalf("expected interests to pass through, got %v", anonymized["interests"])
	}
}

func TestAnonymizeIsDeterministic(t *testing.T) {
	record := map[string]any{"name": "Jane Doe", "age": 8}

	first := Anonymize(record)
	second := Anonymize(record)

	if first["name"] != second["name"] {
		t.Fatalf("expected identical digests, got %q and %q", first["name"], second["name"])
	}

	// Anonymizing an already-anonymized record keeps non-sensitive keys
	// unchanged.
	again := Anonymize(first)
	if again["age"] != first["age"] {
		t.Fatalf("expected age to stay unchanged, got %v", again["age"])
	}
}

func TestAnonymizeDoesNotMutateInput(t *testing.T) {
	record := map[string]any{"name": "Jane Doe", "age": 8}

	_ = Anonymize(record)

	if record["name"] != "Jane Doe" {
		t.Fatalf("input map was mutated: %v", record["name"])
	}
}

func TestAnonymizeNilRecord(t *testing.T) {
	if got := Anonymize(nil); got != nil {
		t.Fatalf("expected nil for nil input, got %v", got)
	}
}

func TestDigestDeterministic(t *testing.T) {
	if Digest("value") != Digest("value") {
		t.Fatal("expected identical digests for identical values")
	}
	if Digest("value") == Digest("other") {
		t.Fatal("expected different digests for different values")
	}
	if !hexDigest.MatchString(Digest(12345)) {
		t.Fatalf("expected 8 hex characters, got %q", Digest(12345))
	}
}

func TestAnonymizeStruct(t *testing.T) {
	type record struct {
		Name      string `json:"name,omitempty" pii:"hash"`
		Age       int    `json:"age"`
		Interests string `json:"interests"`
		Ignored   string `json:"-"`
	}

	anonymized := AnonymizeStruct(&record{
		Name:      "Jane Doe",
		Age:       8,
		Interests: "art",
		Ignored:   "not serialized",
	})

	name, ok := anonymized["name"].(string)
	if !ok || !hexDigest.MatchString(name) {
		t.Fatalf("expected hashed name, got %v", anonymized["name"])
	}
	if name == "Jane Doe" {
		t.Fatal("expected name to be digested")
	}

	if anonymized["age"] != 8 {
		t.Fatalf("expected age to pass through, got %v", anonymized["age"])
	}
	if anonymized["interests"] != "art" {
		t.Fatalf("expected interests to pass through, got %v", anonymized["interests"])
	}
	if _, ok := anonymized["-"]; ok {
		t.Fatal("did not expect skipped field in record")
	}
}

func TestAnonymizeStructOmitsEmptyTaggedFields(t *testing.T) {
	type record struct {
		Name string `json:"name,omitempty" pii:"hash"`
		Age  int    `json:"age"`
	}

	anonymized := AnonymizeStruct(&record{Age: 8})

	if _, ok := anonymized["name"]; ok {
		t.Fatal("expected empty omitempty field to be absent")
	}
	if anonymized["age"] != 8 {
		t.Fatalf("expected age to be present, got %v", anonymized["age"])
	}
}

func TestAnonymizeStructNonStruct(t *testing.T) {
	if got := AnonymizeStruct("not a struct"); got != nil {
		t.Fatalf("expected nil for non-struct input, got %v", got)
	}

	var nilRecord *struct{}
	if got := AnonymizeStruct(nilRecord); got != nil {
		t.Fatalf("expected nil for nil pointer, got %v", got)
	}
}
