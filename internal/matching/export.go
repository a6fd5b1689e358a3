package matching

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// DefaultExportLimit is how many top matches an export carries by default.
const DefaultExportLimit = 5

// Export is the on-disk form of a matching run: top-N matches only, no
// reasoning text and no profile data.
type Export struct {
	RunID      string           `json:"run_id"`
	Timestamp  time.Time        `json:"timestamp"`
	Matches    int              `json:"matches"`
	TopMatches []*ExportedMatch `json:"top_matches"`
}

type ExportedMatch struct {
	Rank      int       `json:"rank"`
	FamilyID  string    `json:"family_id"`
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// Export builds the serializable top-N view of the result.
func (r *Result) Export(limit int) *Export {
	if limit <= 0 {
		limit = DefaultExportLimit
	}

	export := &Export{
		RunID:      r.RunID,
		Timestamp:  r.GeneratedAt,
		Matches:    r.Len(),
		TopMatches: []*ExportedMatch{},
	}

	for i, rec := range r.Items {
		if i >= limit {
			break
		}
		export.TopMatches = append(export.TopMatches, &ExportedMatch{
			Rank:      i + 1,
			FamilyID:  rec.FamilyID,
			Score:     rec.Score,
			Timestamp: rec.Timestamp,
		})
	}

	return export
}

// ToFile writes the export as indented JSON.
func (e *Export) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// ExportToDir writes the top-N export into dir using a timestamped file name
// and returns the full path.
func (r *Result) ExportToDir(dir string, limit int) (string, error) {
	name := "HeartMatch_Results_" + r.GeneratedAt.Format("20060102_150405") + ".json"
	path := filepath.Join(dir, name)

	if err := r.Export(limit).ToFile(path); err != nil {
		return "", err
	}

	return path, nil
}
