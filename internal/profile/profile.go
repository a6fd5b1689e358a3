// Package profile defines the child and family records consumed by the
// matching flow, plus the roster collection they travel in.
package profile

import (
	"github.com/mitchellh/mapstructure"
)

// Personalities is the fixed set of child personality descriptions offered by
// the data-entry surface.
var Personalities = []string{
	"Outgoing and social",
	"Quiet and thoughtful",
	"Active and energetic",
	"Creative and artistic",
	"Academic and studious",
}

// Regions is the fixed set of location regions offered by the data-entry
// surface.
var Regions = []string{
	"Boston Metro",
	"Western Massachusetts",
	"Central Massachusetts",
	"Southeastern Massachusetts",
	"Northeastern Massachusetts",
}

// Required field names per profile shape. These are the caller-supplied
// equivalents of the default compliance set; the check itself stays
// presence-only.
var (
	ChildRequiredFields  = []string{"age", "interests", "location"}
	FamilyRequiredFields = []string{"age_range", "interests", "location"}
)

// ChildProfile is one child's record as entered by a caseworker. It is
// immutable for the duration of one matching request and never persisted.
// Fields tagged pii:"hash" are digested before the record leaves the process.
type ChildProfile struct {
	Name         string `json:"name,omitempty" mapstructure:"name" pii:"hash"`
	Age          int    `json:"age" mapstructure:"age"`
	Interests    string `json:"interests" mapstructure:"interests"`
	SpecialNeeds string `json:"special_needs" mapstructure:"special-needs"`
	Personality  string `json:"personality" mapstructure:"personality"`
	Location     string `json:"location" mapstructure:"location"`
}

// FamilyProfile is one prospective family's roster record. Contact details
// carry pii tags so they are only ever transmitted as digests.
type FamilyProfile struct {
	ID              string   `json:"id"`
	FamilyType      string   `json:"family_type"`
	AgeRange        string   `json:"age_range"`
	Interests       []string `json:"interests"`
	Specializations []string `json:"specializations"`
	Location        string   `json:"location"`
	HomeType        string   `json:"home_type"`
	Pets            string   `json:"pets"`
	Values          string   `json:"values"`

	ContactName  string `json:"name,omitempty" pii:"hash"`
	ContactEmail string `json:"email,omitempty" pii:"hash"`
	ContactPhone string `json:"phone,omitempty" pii:"hash"`
	Address      string `json:"address,omitempty" pii:"hash"`

	// Raw holds the record as loaded from a roster file, before decoding into
	// this struct. Screening checks it when present, since a struct-backed map
	// always carries every key.
	Raw map[string]any `json:"-" mapstructure:"-"`
}

// Map flattens the child profile into a flat record keyed by json field
// names. Used for the compliance presence check; anonymization goes through
// pii.AnonymizeStruct instead.
func (c *ChildProfile) Map() map[string]any {
	return structToMap(c)
}

// Map returns the family record as a flat map. The roster-file form is
// preferred when available so absent keys stay absent.
func (f *FamilyProfile) Map() map[string]any {
	if f.Raw != nil {
		return f.Raw
	}
	return structToMap(f)
}

func structToMap(v any) map[string]any {
	record := make(map[string]any)

	cfg := &mapstructure.DecoderConfig{
		Result:  &record,
		TagName: "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return record
	}

	// Decode of a well-formed struct into a map cannot fail; an error here
	// just yields an empty record, which the compliance check then rejects.
	_ = decoder.Decode(v)
	delete(record, "-")

	return record
}
