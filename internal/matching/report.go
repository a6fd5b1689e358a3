package matching

import (
	"fmt"
	"strings"

	"github.com/caseworks/heartmatch/internal/profile"
)

// Report renders a plain-text compatibility report for one recommendation,
// suitable for display next to the ranked list.
func Report(child *profile.ChildProfile, family *profile.FamilyProfile, rec *Recommendation) string {
	var b strings.Builder

	b.WriteString("Compatibility Analysis\n")
	b.WriteString("======================\n\n")

	b.WriteString("Child Profile:\n")
	fmt.Fprintf(&b, "  Age: %d years\n", child.Age)
	fmt.Fprintf(&b, "  Interests: %s\n", child.Interests)
	fmt.Fprintf(&b, "  Personality: %s\n", child.Personality)
	fmt.Fprintf(&b, "  Special Needs: %s\n", child.SpecialNeeds)
	fmt.Fprintf(&b, "  Location Region: %s\n\n", child.Location)

	b.WriteString("Family Profile:\n")
	fmt.Fprintf(&b, "  ID: %s\n", family.ID)
	fmt.Fprintf(&b, "  Type: %s\n", family.FamilyType)
	fmt.Fprintf(&b, "  Age Range: %s\n", family.AgeRange)
	fmt.Fprintf(&b, "  Interests: %s\n", strings.Join(family.Interests, ", "))
	fmt.Fprintf(&b, "  Specializations: %s\n", strings.Join(family.Specializations, ", "))
	fmt.Fprintf(&b, "  Values: %s\n\n", family.Values)

	fmt.Fprintf(&b, "Match Score: %d%%\n\n", rec.Score)

	b.WriteString("Model Reasoning:\n")
	b.WriteString(rec.Reasoning)
	b.WriteString("\n")

	return b.String()
}
