package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCheckIntegrity(t *testing.T) {
	desc := TemplateDescriptor{
		ID:   "cv-classic",
		Name: "Classic CV",
		Fields: []FieldSchema{
			{ID: "name", Type: FieldTypeText, Label: "Full name"},
			{ID: "hobby", Type: FieldTypeText, Label: "Hobby"},
		},
		Markup: `<h1>{name}</h1><p>{phone}</p>`,
	}

	report := CheckIntegrity(desc)

	if report.Clean() {
		t.Fatal("expected mismatches")
	}
	if diff := cmp.Diff([]string{"phone"}, report.OrphanMarkers); diff != "" {
		t.Fatalf("orphan markers (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"hobby"}, report.UnmatchedFields); diff != "" {
		t.Fatalf("unmatched fields (-want +got):\n%s", diff)
	}
}

func TestCheckIntegrity_Clean(t *testing.T) {
	desc := TemplateDescriptor{
		ID:     "note",
		Name:   "Note",
		Fields: []FieldSchema{{ID: "body", Type: FieldTypeTextarea, Label: "Body"}},
		Markup: `<article data-field="body">…</article>`,
	}
	if report := CheckIntegrity(desc); !report.Clean() {
		t.Fatalf("unexpected report: %+v", report)
	}
}
