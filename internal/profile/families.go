package profile

import (
	"encoding/json"
	"os"
)

// Families is the in-memory roster of prospective families.
type Families struct {
	Items []*FamilyProfile
}

func (f *Families) Len() int {
	return len(f.Items)
}

func (f *Families) IDs() []string {
	ids := make([]string, 0, len(f.Items))
	for _, family := range f.Items {
		ids = append(ids, family.ID)
	}
	return ids
}

func (f *Families) FindByID(id string) *FamilyProfile {
	for _, family := range f.Items {
		if family.ID == id {
			return family
		}
	}
	return nil
}

// Exclude removes families with the given IDs and returns the removed IDs.
// Roster order of the remaining families is preserved: the ranking step
// breaks score ties by input order, so screening must not shuffle it.
func (f *Families) Exclude(ids []string) []string {
	targets := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		targets[id] = struct{}{}
	}

	var excluded []string
	kept := f.Items[:0]
	for _, family := range f.Items {
		if _, ok := targets[family.ID]; ok {
			excluded = append(excluded, family.ID)
			continue
		}
		kept = append(kept, family)
	}
	f.Items = kept

	return excluded
}

// DumpToTmpFile writes the roster to a temporary JSON file and returns its name.
func (f *Families) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "families_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return "", err
	}
	return file.Name(), nil
}
