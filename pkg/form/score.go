package form

import (
	"strings"

	"github.com/goliatone/go-docforge/pkg/schema"
)

// Score is the heuristic 0–100 "how filled out is this document" indicator,
// plus the categories whose weight was earned by the change that produced it.
// It is user-facing encouragement, never a validation gate.
type Score struct {
	Value         int
	JustCompleted []string
}

// scoreCategory is one entry of the fixed, template-agnostic priority list.
// A category contributes its weight when the template has a matching field
// whose value is non-empty; long-form categories additionally require the
// value to clear MinLength, so a single character never scores as complete.
type scoreCategory struct {
	Name      string
	Weight    int
	Keywords  []string
	MinLength int
}

// Weights sum to 100. Templates missing a category simply cap below 100.
var scoreCategories = []scoreCategory{
	{Name: "name", Weight: 20, Keywords: []string{"name"}},
	{Name: "contact", Weight: 20, Keywords: []string{"email", "phone", "tel"}},
	{Name: "title", Weight: 15, Keywords: []string{"title", "role", "position", "profession", "job"}},
	{Name: "narrative", Weight: 30, Keywords: []string{"summary", "about", "bio", "description", "experience", "motivation", "body", "cover", "objective"}, MinLength: 40},
	{Name: "extras", Weight: 15, Keywords: []string{"skill", "education", "language", "address", "city"}},
}

// computeCompleted returns the set of categories currently counting toward
// the score. O(fields) per call.
func computeCompleted(fields []schema.FieldSchema, values schema.FormValues) map[string]bool {
	completed := make(map[string]bool, len(scoreCategories))
	for _, category := range scoreCategories {
		for _, field := range fields {
			if !matchesAny(strings.ToLower(field.ID), category.Keywords) {
				continue
			}
			value := values.Get(field.ID)
			if value.Empty() {
				continue
			}
			if category.MinLength > 0 && value.Len() < category.MinLength {
				continue
			}
			completed[category.Name] = true
			break
		}
	}
	return completed
}

func scoreFromCompleted(completed map[string]bool) int {
	total := 0
	for _, category := range scoreCategories {
		if completed[category.Name] {
			total += category.Weight
		}
	}
	return total
}

// ComputeScore scores the current values against the template's fields.
func ComputeScore(desc schema.TemplateDescriptor, values schema.FormValues) Score {
	return Score{Value: scoreFromCompleted(computeCompleted(desc.Fields, values))}
}

// diffCompleted lists categories newly counting since the previous snapshot,
// in priority-list order. Feeds the transient "just completed" UI feedback.
func diffCompleted(before, after map[string]bool) []string {
	var added []string
	for _, category := range scoreCategories {
		if after[category.Name] && !before[category.Name] {
			added = append(added, category.Name)
		}
	}
	return added
}
