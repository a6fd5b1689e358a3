package profile

import (
	"encoding/json"
	"os"
	"time"
)

// ExcludedFamilies is the persisted list of families parked between matching
// runs via the exclude file.
type ExcludedFamilies struct {
	Items []*ExcludedFamily
}

type ExcludedFamily struct {
	ID         string
	FamilyType string
	Reason     string
	ExcludedAt time.Time
}

// ToExcluded converts the roster into exclude-file entries with the given reason.
func (f *Families) ToExcluded(reason string) *ExcludedFamilies {
	excluded := &ExcludedFamilies{}
	for _, family := range f.Items {
		excluded.Items = append(excluded.Items, &ExcludedFamily{
			ID:         family.ID,
			FamilyType: family.FamilyType,
			Reason:     reason,
			ExcludedAt: time.Now().UTC(),
		})
	}
	return excluded
}

// GetExcludedFamiliesFromFile loads the exclude file. A missing or empty file
// yields an empty list rather than an error.
func GetExcludedFamiliesFromFile(path string) (*ExcludedFamilies, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ExcludedFamilies{}, nil
		}
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return &ExcludedFamilies{}, nil
	}

	var excluded ExcludedFamilies
	if err := json.NewDecoder(file).Decode(&excluded); err != nil {
		return nil, err
	}
	return &excluded, nil
}

func (e *ExcludedFamilies) Append(other *ExcludedFamilies) {
	e.Items = append(e.Items, other.Items...)
}

func (e *ExcludedFamilies) FamilyIDs() []string {
	ids := make([]string, 0, len(e.Items))
	for _, family := range e.Items {
		ids = append(ids, family.ID)
	}
	return ids
}

func (e *ExcludedFamilies) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}
