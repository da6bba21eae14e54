package render

import (
	"strings"
	"testing"

	"github.com/goliatone/go-docforge/pkg/schema"
)

func cvTemplate() schema.TemplateDescriptor {
	return schema.TemplateDescriptor{
		ID:   "cv-classic",
		Name: "Classic CV",
		Fields: []schema.FieldSchema{
			{ID: "name", Type: schema.FieldTypeText, Label: "Full name", Order: 1},
			{ID: "summary", Type: schema.FieldTypeTextarea, Label: "Summary", Placeholder: "A few lines about you", Order: 2},
		},
		Markup: `<style>h1 { color: #2563eb; } h2 { color: #1e40af; } body { font-family: Georgia, serif; }</style>` +
			`<h1>Hello {name}</h1><h2>{name}</h2><p data-field="summary">…</p>`,
		DefaultTheme: schema.Theme{Primary: "#2563eb", Secondary: "#1e40af"},
		DefaultFont:  "Georgia, serif",
	}
}

func TestRender_EscapesUserText(t *testing.T) {
	out := Render(cvTemplate(), schema.FormValues{"name": schema.String("<script>")}, schema.Theme{}, schema.Font{})

	if !strings.Contains(out, "Hello &lt;script&gt;") {
		t.Fatalf("value not escaped:\n%s", out)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("raw script tag leaked:\n%s", out)
	}
}

func TestRender_AllMarkerOccurrencesReplaced(t *testing.T) {
	out := Render(cvTemplate(), schema.FormValues{"name": schema.String("Amadou")}, schema.Theme{}, schema.Font{})

	if strings.Contains(out, "{name}") {
		t.Fatalf("marker survived substitution:\n%s", out)
	}
	if got := strings.Count(out, "Amadou"); got != 2 {
		t.Fatalf("want value at both occurrences, got %d:\n%s", got, out)
	}
}

func TestRender_PlaceholderAndBracketFallback(t *testing.T) {
	out := Render(cvTemplate(), schema.FormValues{}, schema.Theme{}, schema.Font{})

	// name has no placeholder: bracketed label. summary has one.
	if !strings.Contains(out, "[Full name]") {
		t.Fatalf("missing bracketed fallback:\n%s", out)
	}
	if !strings.Contains(out, "A few lines about you") {
		t.Fatalf("missing placeholder fallback:\n%s", out)
	}
}

func TestRender_ThemeSubstitution(t *testing.T) {
	chosen := schema.Theme{Primary: "#059669", Secondary: "#047857"}
	out := Render(cvTemplate(), schema.FormValues{}, chosen, schema.Font{})

	if strings.Contains(out, "#2563eb") || strings.Contains(out, "#1e40af") {
		t.Fatalf("default colors survived:\n%s", out)
	}
	if !strings.Contains(out, "#059669") || !strings.Contains(out, "#047857") {
		t.Fatalf("chosen colors missing:\n%s", out)
	}
}

func TestRender_FontSubstitution(t *testing.T) {
	chosen := schema.Font{Family: "Inter", CSSValue: "'Inter', sans-serif"}
	out := Render(cvTemplate(), schema.FormValues{}, schema.Theme{}, chosen)

	if strings.Contains(out, "Georgia, serif") {
		t.Fatalf("default font survived:\n%s", out)
	}
	if !strings.Contains(out, "'Inter', sans-serif") {
		t.Fatalf("chosen font missing:\n%s", out)
	}
}

func TestRender_UnknownMarkerUntouched(t *testing.T) {
	desc := cvTemplate()
	desc.Markup += "<p>{phone}</p>"

	out := Render(desc, schema.FormValues{}, schema.Theme{}, schema.Font{})
	if !strings.Contains(out, "{phone}") {
		t.Fatalf("orphan marker must stay verbatim:\n%s", out)
	}
}

func TestRender_Idempotent(t *testing.T) {
	values := schema.FormValues{"name": schema.String("Amadou"), "summary": schema.String("Engineer & writer")}
	theme := schema.Theme{Primary: "#059669", Secondary: "#047857"}
	font := schema.Font{Family: "Inter", CSSValue: "'Inter', sans-serif"}

	first := Render(cvTemplate(), values, theme, font)
	second := Render(cvTemplate(), values, theme, font)
	if first != second {
		t.Fatal("render is not byte-identical for identical inputs")
	}
}

func TestRender_ZeroThemeKeepsDefaults(t *testing.T) {
	out := Render(cvTemplate(), schema.FormValues{}, schema.Theme{}, schema.Font{})
	if !strings.Contains(out, "#2563eb") || !strings.Contains(out, "Georgia, serif") {
		t.Fatalf("defaults must survive zero choices:\n%s", out)
	}
}

func TestRender_CheckboxJoinsSelections(t *testing.T) {
	desc := schema.TemplateDescriptor{
		ID:   "skills",
		Name: "Skills",
		Fields: []schema.FieldSchema{
			{ID: "skills", Type: schema.FieldTypeCheckbox, Label: "Skills", Options: []string{"go", "sql"}},
		},
		Markup: "<p>{skills}</p>",
	}
	out := Render(desc, schema.FormValues{"skills": schema.List("go", "sql")}, schema.Theme{}, schema.Font{})
	if !strings.Contains(out, "go, sql") {
		t.Fatalf("selections not joined:\n%s", out)
	}
}
