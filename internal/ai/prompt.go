package ai

import (
	"strings"

	_ "embed"
)

//go:embed prompt.md
var promptTemplate string

// BuildPrompt renders the anonymized child and family records into the fixed
// matching template. The template is static; there is no per-request
// branching beyond substitution.
func BuildPrompt(childJSON, familyJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Child Profile: {{CHILD_JSON}}\n\nFamily Profile: {{FAMILY_JSON}}\n\nProvide a matching score (0-100) and detailed reasoning."
	}

	prompt := strings.ReplaceAll(template, "{{CHILD_JSON}}", childJSON)
	prompt = strings.ReplaceAll(prompt, "{{FAMILY_JSON}}", familyJSON)
	return prompt
}
