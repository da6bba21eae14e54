package docforge

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
)

const letterDescriptor = `
id: letter
name: Letter
fields:
  - id: recipient
    type: text
    label: Recipient
    order: 10
  - id: body
    type: textarea
    label: Body
    order: 20
markup: "<p>Dear {recipient},</p><p>{body}</p>"
`

func TestRenderTemplate(t *testing.T) {
	fsys := fstest.MapFS{
		"letter.yaml": &fstest.MapFile{Data: []byte(letterDescriptor)},
	}
	cat, err := NewCatalog(fsys)
	if err != nil {
		t.Fatalf("NewCatalog() error: %v", err)
	}

	values := FormValues{"recipient": String("Ms. Ba")}
	markup, err := RenderTemplate(context.Background(), cat, "letter", values)
	if err != nil {
		t.Fatalf("RenderTemplate() error: %v", err)
	}
	if !strings.Contains(markup, "Dear Ms. Ba,") {
		t.Errorf("markup missing substituted recipient:\n%s", markup)
	}
	if !strings.Contains(markup, "[Body]") {
		t.Errorf("unfilled field should fall back to its bracketed label:\n%s", markup)
	}

	if _, err := RenderTemplate(context.Background(), cat, "missing", nil); err == nil {
		t.Error("expected error for unknown template id")
	}
}

func TestNewSessionFacade(t *testing.T) {
	desc := TemplateDescriptor{
		ID:     "note",
		Name:   "Note",
		Fields: []FieldSchema{{ID: "text", Type: "text", Label: "Text", Order: 10}},
		Markup: "<p>{text}</p>",
	}
	sess := NewSession(desc)
	defer sess.Close()

	if _, err := sess.SetValue("text", String("hello")); err != nil {
		t.Fatalf("SetValue() error: %v", err)
	}
	if got := sess.Markup(); !strings.Contains(got, "hello") {
		t.Errorf("Markup() = %q", got)
	}
}
