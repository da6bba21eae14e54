package validation

import (
	"testing"

	"github.com/goliatone/go-docforge/pkg/schema"
)

func TestValidate_Required(t *testing.T) {
	field := schema.FieldSchema{ID: "name", Type: schema.FieldTypeText, Label: "Full name", Required: true}

	if got := Validate(field, schema.String("")); got != "Full name is required" {
		t.Fatalf("empty required: %q", got)
	}
	if got := Validate(field, schema.String("Amadou")); got != "" {
		t.Fatalf("filled required: %q", got)
	}
}

func TestValidate_RequiredCheckbox(t *testing.T) {
	field := schema.FieldSchema{ID: "skills", Type: schema.FieldTypeCheckbox, Label: "Skills", Required: true, Options: []string{"go"}}

	if got := Validate(field, schema.List()); got != "Skills is required" {
		t.Fatalf("empty list: %q", got)
	}
	if got := Validate(field, schema.List("go")); got != "" {
		t.Fatalf("filled list: %q", got)
	}
}

func TestValidate_Email(t *testing.T) {
	field := schema.FieldSchema{ID: "email", Type: schema.FieldTypeEmail, Label: "Email"}

	if got := Validate(field, schema.String("not-an-email")); got != "invalid email" {
		t.Fatalf("bad email: %q", got)
	}
	if got := Validate(field, schema.String("amadou@example.com")); got != "" {
		t.Fatalf("good email: %q", got)
	}
	// Optional email fields pass when empty.
	if got := Validate(field, schema.String("")); got != "" {
		t.Fatalf("empty optional email: %q", got)
	}
}

func TestValidate_RequiredWinsOverEmail(t *testing.T) {
	field := schema.FieldSchema{ID: "email", Type: schema.FieldTypeEmail, Label: "Email", Required: true}
	if got := Validate(field, schema.String("")); got != "Email is required" {
		t.Fatalf("want required message first, got %q", got)
	}
}

func TestValidate_LengthBounds(t *testing.T) {
	field := schema.FieldSchema{
		ID:         "summary",
		Type:       schema.FieldTypeTextarea,
		Label:      "Summary",
		Validation: &schema.LengthRule{MinLength: 5, MaxLength: 10},
	}

	if got := Validate(field, schema.String("abcd")); got != "Summary must be at least 5 characters" {
		t.Fatalf("below min: %q", got)
	}
	// Exactly MinLength passes: the rule is strictly less-than.
	if got := Validate(field, schema.String("abcde")); got != "" {
		t.Fatalf("exact min: %q", got)
	}
	if got := Validate(field, schema.String("abcdefghijk")); got != "Summary must be at most 10 characters" {
		t.Fatalf("above max: %q", got)
	}
	if got := Validate(field, schema.String("abcdefghij")); got != "" {
		t.Fatalf("exact max: %q", got)
	}
}

func TestValidate_Deterministic(t *testing.T) {
	field := schema.FieldSchema{ID: "email", Type: schema.FieldTypeEmail, Label: "Email"}
	value := schema.String("broken@")

	first := Validate(field, value)
	second := Validate(field, value)
	if first != second {
		t.Fatalf("non-deterministic: %q vs %q", first, second)
	}
}

func TestValidateAll(t *testing.T) {
	fields := []schema.FieldSchema{
		{ID: "name", Type: schema.FieldTypeText, Label: "Name", Required: true},
		{ID: "email", Type: schema.FieldTypeEmail, Label: "Email", Required: true},
	}
	values := schema.FormValues{
		"name":  schema.String("Amadou"),
		"email": schema.String("not-an-email"),
	}

	errs := ValidateAll(fields, values)
	if len(errs) != 1 {
		t.Fatalf("want a single failure, got %v", errs)
	}
	if errs["email"] != "invalid email" {
		t.Fatalf("email error: %q", errs["email"])
	}
}
