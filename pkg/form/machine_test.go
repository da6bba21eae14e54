package form

import (
	"testing"

	"github.com/goliatone/go-docforge/pkg/schema"
)

func contactTemplate() schema.TemplateDescriptor {
	return schema.TemplateDescriptor{
		ID:   "contact",
		Name: "Contact card",
		Fields: []schema.FieldSchema{
			{ID: "name", Type: schema.FieldTypeText, Label: "Name", Required: true, Order: 1},
			{ID: "email", Type: schema.FieldTypeEmail, Label: "Email", Required: true, Order: 2},
		},
		Markup: "<h1>{name}</h1><p>{email}</p>",
	}
}

func TestSubmit_InvalidEmailBlocks(t *testing.T) {
	m := NewMachine(contactTemplate())
	m.SetValue("name", schema.String("Amadou"))
	m.SetValue("email", schema.String("not-an-email"))

	if _, ok := m.Submit(); ok {
		t.Fatal("submit must fail")
	}
	if m.Submitted() {
		t.Fatal("machine must stay in Editing")
	}

	errs := m.Errors()
	if len(errs) != 1 {
		t.Fatalf("want only the email error, got %v", errs)
	}
	if errs["email"] == "" {
		t.Fatal("missing email error")
	}
}

func TestSubmit_ValidTransitionsToSubmitted(t *testing.T) {
	m := NewMachine(contactTemplate())
	m.SetValue("name", schema.String("Amadou"))
	m.SetValue("email", schema.String("amadou@example.com"))

	values, ok := m.Submit()
	if !ok {
		t.Fatalf("submit failed: %v", m.Errors())
	}
	if !m.Submitted() {
		t.Fatal("machine must be Submitted")
	}
	if values.Get("email").Text() != "amadou@example.com" {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestAdvance_GatesOnCurrentStepOnly(t *testing.T) {
	desc := schema.TemplateDescriptor{
		ID:   "cv",
		Name: "CV",
		Fields: []schema.FieldSchema{
			{ID: "name", Type: schema.FieldTypeText, Label: "Name", Required: true, Order: 1},
			{ID: "summary", Type: schema.FieldTypeTextarea, Label: "Summary", Required: true, Order: 2},
		},
	}
	m := NewMachine(desc)
	if m.StepCount() != 2 {
		t.Fatalf("want 2 heuristic steps, got %d", m.StepCount())
	}

	// Step 0 holds the identity field; summary's requiredness must not gate it.
	if m.Advance() {
		t.Fatal("advance must fail while name is empty")
	}
	if m.StepIndex() != 0 {
		t.Fatalf("step moved: %d", m.StepIndex())
	}

	m.SetValue("name", schema.String("Amadou"))
	if errs := m.Errors(); len(errs) != 0 {
		t.Fatalf("setValue must clear the field error, got %v", errs)
	}
	if !m.Advance() {
		t.Fatalf("advance failed: %v", m.Errors())
	}
	if m.StepIndex() != 1 {
		t.Fatalf("want step 1, got %d", m.StepIndex())
	}

	// Advance at the last step validates but does not move.
	m.SetValue("summary", schema.String("Engineer."))
	if !m.Advance() {
		t.Fatalf("advance at last step failed: %v", m.Errors())
	}
	if m.StepIndex() != 1 {
		t.Fatalf("last step must be sticky, got %d", m.StepIndex())
	}
}

func TestRetreat_Unconditional(t *testing.T) {
	m := NewMachine(contactTemplate())
	m.Retreat() // no-op at step 0
	if m.StepIndex() != 0 {
		t.Fatalf("retreat at step 0 moved to %d", m.StepIndex())
	}
}

func TestSubmit_JumpsToFirstFailingStep(t *testing.T) {
	desc := schema.TemplateDescriptor{
		ID:   "cv",
		Name: "CV",
		Fields: []schema.FieldSchema{
			{ID: "name", Type: schema.FieldTypeText, Label: "Name", Required: true, Order: 1},
			{ID: "summary", Type: schema.FieldTypeTextarea, Label: "Summary", Required: true, Order: 2},
			{ID: "website", Type: schema.FieldTypeText, Label: "Website", Required: true, Order: 3},
		},
	}
	m := NewMachine(desc)
	m.SetValue("name", schema.String("Amadou"))
	m.Advance()
	m.SetValue("summary", schema.String("Engineer."))
	m.Advance()
	if m.StepIndex() != 2 {
		t.Fatalf("setup: want step 2, got %d", m.StepIndex())
	}

	// Clear an earlier step's field, then submit from the last step.
	m.SetValue("name", schema.String(""))
	if _, ok := m.Submit(); ok {
		t.Fatal("submit must fail")
	}
	if m.StepIndex() != 0 {
		t.Fatalf("must jump to the step containing the first failure, got %d", m.StepIndex())
	}
	errs := m.Errors()
	if errs["name"] == "" || errs["website"] == "" {
		t.Fatalf("all failing fields must carry errors, got %v", errs)
	}
}

func TestSetValue_UnknownFieldDropped(t *testing.T) {
	m := NewMachine(contactTemplate())
	m.SetValue("ghost", schema.String("boo"))
	if _, ok := m.Values()["ghost"]; ok {
		t.Fatal("unknown field must not be stored")
	}
}

func TestSeededDefaultsAndReset(t *testing.T) {
	desc := contactTemplate()
	desc.Fields[0].DefaultValue = "Jane"
	m := NewMachine(desc)
	if got := m.Values().Get("name").Text(); got != "Jane" {
		t.Fatalf("seed: %q", got)
	}

	m.SetValue("name", schema.String("Amadou"))
	m.Reset(contactTemplate())
	if got := m.Values().Get("name").Text(); got != "" {
		t.Fatalf("reset must discard values, got %q", got)
	}
	if m.StepIndex() != 0 || m.Submitted() {
		t.Fatal("reset must restore the initial state")
	}
}
