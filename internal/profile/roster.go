package profile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// LoadRoster reads a roster of family records from a JSON file: a top-level
// array of flat objects. Each record is decoded into a FamilyProfile while the
// original map is kept on Raw for the screening presence check. Record shape
// is not validated here.
func LoadRoster(path string) (*Families, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster file: %w", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing roster file %q: %w", path, err)
	}

	families := &Families{Items: make([]*FamilyProfile, 0, len(records))}
	for i, record := range records {
		family := &FamilyProfile{}

		cfg := &mapstructure.DecoderConfig{
			Result:           family,
			TagName:          "json",
			WeaklyTypedInput: true,
		}
		decoder, err := mapstructure.NewDecoder(cfg)
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(record); err != nil {
			return nil, fmt.Errorf("decoding roster record %d: %w", i, err)
		}

		family.Raw = record
		families.Items = append(families.Items, family)
	}

	return families, nil
}
