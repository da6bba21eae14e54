package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docforge/pkg/schema"
)

func TestBuildSteps_DeclaredGroupsWin(t *testing.T) {
	desc := schema.TemplateDescriptor{
		ID:   "invoice",
		Name: "Invoice",
		Fields: []schema.FieldSchema{
			{ID: "client", Order: 1},
			{ID: "amount", Order: 2},
			{ID: "notes", Order: 3},
		},
		StepGroups: [][]string{
			{"client", "missing-id"},
			{"amount"},
		},
	}

	steps := BuildSteps(desc)
	var got [][]string
	for _, step := range steps {
		got = append(got, step.FieldIDs)
	}
	// Unknown ids are skipped; ungrouped fields land in a final catch-all.
	want := [][]string{{"client"}, {"amount"}, {"notes"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}
	if steps[len(steps)-1].Title != "Additional info" {
		t.Fatalf("catch-all title: %q", steps[len(steps)-1].Title)
	}
}

func TestBuildSteps_HeuristicGrouping(t *testing.T) {
	desc := schema.TemplateDescriptor{
		ID:   "cv",
		Name: "CV",
		Fields: []schema.FieldSchema{
			{ID: "full_name", Order: 1},
			{ID: "email", Order: 2},
			{ID: "work_experience", Order: 3},
			{ID: "favourite_color", Order: 4},
		},
	}

	steps := BuildSteps(desc)
	if len(steps) != 3 {
		t.Fatalf("want identity/narrative/catch-all, got %+v", steps)
	}
	if diff := cmp.Diff([]string{"full_name", "email"}, steps[0].FieldIDs); diff != "" {
		t.Fatalf("identity step (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"work_experience"}, steps[1].FieldIDs); diff != "" {
		t.Fatalf("narrative step (-want +got):\n%s", diff)
	}
	// A field matching no keyword falls into the default catch-all step.
	if diff := cmp.Diff([]string{"favourite_color"}, steps[2].FieldIDs); diff != "" {
		t.Fatalf("catch-all step (-want +got):\n%s", diff)
	}
}

func TestBuildSteps_EmptyTemplate(t *testing.T) {
	steps := BuildSteps(schema.TemplateDescriptor{ID: "blank", Name: "Blank"})
	if len(steps) != 1 || len(steps[0].FieldIDs) != 0 {
		t.Fatalf("want a single empty step, got %+v", steps)
	}
}
