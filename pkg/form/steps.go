package form

import (
	"strings"

	"github.com/goliatone/go-docforge/pkg/schema"
)

// Step is one wizard page: a titled group of field ids in display order.
type Step struct {
	Title    string
	FieldIDs []string
}

const catchAllTitle = "Additional info"

// Keyword buckets used when a template declares no step groups. Field ids are
// matched by substring, so authors get sensible pages by naming convention
// alone. Anything unmatched lands in the catch-all step.
var (
	identityKeywords  = []string{"name", "email", "phone", "tel", "address", "city", "birth", "date", "photo"}
	narrativeKeywords = []string{"summary", "about", "bio", "description", "experience", "education", "skill", "motivation", "body", "message", "cover", "objective"}
)

// BuildSteps partitions the template's fields into wizard steps. Declared
// StepGroups win; the id-keyword heuristic is the fallback. Either way,
// fields that no group or keyword claims collect into a final catch-all step,
// and every step lists fields by their declared order.
func BuildSteps(desc schema.TemplateDescriptor) []Step {
	sorted := desc.SortedFields()
	if len(desc.StepGroups) > 0 {
		return declaredSteps(desc, sorted)
	}
	return heuristicSteps(sorted)
}

func declaredSteps(desc schema.TemplateDescriptor, sorted []schema.FieldSchema) []Step {
	grouped := make(map[string]int)
	var steps []Step
	for i, group := range desc.StepGroups {
		step := Step{Title: stepTitle(i)}
		for _, id := range group {
			if _, ok := desc.Field(id); !ok {
				continue
			}
			if _, taken := grouped[id]; taken {
				continue
			}
			grouped[id] = i
			step.FieldIDs = append(step.FieldIDs, id)
		}
		if len(step.FieldIDs) > 0 {
			steps = append(steps, step)
		}
	}

	var leftover []string
	for _, field := range sorted {
		if _, ok := grouped[field.ID]; !ok {
			leftover = append(leftover, field.ID)
		}
	}
	if len(leftover) > 0 {
		steps = append(steps, Step{Title: catchAllTitle, FieldIDs: leftover})
	}
	if len(steps) == 0 {
		steps = []Step{{Title: catchAllTitle}}
	}
	return steps
}

func heuristicSteps(sorted []schema.FieldSchema) []Step {
	identity := Step{Title: "Identity"}
	narrative := Step{Title: "Narrative"}
	rest := Step{Title: catchAllTitle}

	for _, field := range sorted {
		switch {
		case matchesAny(field.ID, identityKeywords):
			identity.FieldIDs = append(identity.FieldIDs, field.ID)
		case matchesAny(field.ID, narrativeKeywords):
			narrative.FieldIDs = append(narrative.FieldIDs, field.ID)
		default:
			rest.FieldIDs = append(rest.FieldIDs, field.ID)
		}
	}

	var steps []Step
	for _, step := range []Step{identity, narrative, rest} {
		if len(step.FieldIDs) > 0 {
			steps = append(steps, step)
		}
	}
	if len(steps) == 0 {
		steps = []Step{{Title: catchAllTitle}}
	}
	return steps
}

func matchesAny(id string, keywords []string) bool {
	lowered := strings.ToLower(id)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

func stepTitle(index int) string {
	titles := []string{"Basics", "Details", "Finishing touches"}
	if index < len(titles) {
		return titles[index]
	}
	return catchAllTitle
}
