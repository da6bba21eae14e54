package importer

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docforge/pkg/schema"
)

const candidateDoc = `
openapi: 3.0.3
info:
  title: Candidate API
  version: 1.0.0
paths: {}
components:
  schemas:
    Candidate:
      type: object
      required: [fullName, email]
      properties:
        fullName:
          type: string
          minLength: 2
          maxLength: 80
        email:
          type: string
          format: email
        birthDate:
          type: string
          format: date
        summary:
          type: string
          maxLength: 600
        seniority:
          type: string
          enum: [junior, mid, senior]
        languages:
          type: array
          items:
            type: string
            enum: [English, French, Wolof]
    Plain:
      type: string
`

func TestFields_ConvertsObjectSchema(t *testing.T) {
	fields, err := Fields(context.Background(), []byte(candidateDoc), "Candidate")
	if err != nil {
		t.Fatalf("Fields() error: %v", err)
	}

	want := []schema.FieldSchema{
		{ID: "birthDate", Type: schema.FieldTypeDate, Label: "Birth date", Order: 10},
		{ID: "email", Type: schema.FieldTypeEmail, Label: "Email", Required: true, Order: 20},
		{ID: "fullName", Type: schema.FieldTypeText, Label: "Full name", Required: true, Order: 30,
			Validation: &schema.LengthRule{MinLength: 2, MaxLength: 80}},
		{ID: "languages", Type: schema.FieldTypeCheckbox, Label: "Languages", Order: 40,
			Options: []string{"English", "French", "Wolof"}},
		{ID: "seniority", Type: schema.FieldTypeSelect, Label: "Seniority", Order: 50,
			Options: []string{"junior", "mid", "senior"}},
		{ID: "summary", Type: schema.FieldTypeTextarea, Label: "Summary", Order: 60,
			Validation: &schema.LengthRule{MaxLength: 600}},
	}
	if diff := cmp.Diff(want, fields); diff != "" {
		t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
	}
}

func TestFields_ProducesValidDescriptorInput(t *testing.T) {
	fields, err := Fields(context.Background(), []byte(candidateDoc), "Candidate")
	if err != nil {
		t.Fatalf("Fields() error: %v", err)
	}
	desc := schema.TemplateDescriptor{ID: "imported", Name: "Imported", Fields: fields}
	if err := desc.Validate(); err != nil {
		t.Fatalf("descriptor built from imported fields failed validation: %v", err)
	}
}

func TestFields_RejectsMissingAndNonObjectSchemas(t *testing.T) {
	if _, err := Fields(context.Background(), []byte(candidateDoc), "Nope"); err == nil {
		t.Fatal("expected error for unknown schema name")
	}
	if _, err := Fields(context.Background(), []byte(candidateDoc), "Plain"); err == nil {
		t.Fatal("expected error for non-object schema")
	}
	if _, err := Fields(context.Background(), nil, "Candidate"); err == nil {
		t.Fatal("expected error for empty payload")
	}
}
