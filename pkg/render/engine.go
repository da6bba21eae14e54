// Package render implements the substitution engine: a pure merge of a
// template's markup with form values, a theme choice, and a font choice.
// Substitution is literal marker replacement over the markup string; there is
// deliberately no template-engine dependency here.
package render

import (
	"html"
	"strings"

	"github.com/goliatone/go-docforge/pkg/schema"
)

// Render produces the final renderable markup for a template. Pure function:
// no shared state, safe to call on every change, byte-identical for identical
// arguments.
//
// Substitution order is fixed — fields, then theme, then font — so an escaped
// field value can never spuriously match a later color or font token pass.
// Markers with no matching field stay verbatim; a marker appearing several
// times is replaced identically at every occurrence.
func Render(desc schema.TemplateDescriptor, values schema.FormValues, theme schema.Theme, font schema.Font) string {
	markup := desc.Markup

	for _, field := range desc.SortedFields() {
		display := html.EscapeString(EffectiveValue(field, values.Get(field.ID)))
		markup = schema.ReplaceMarker(markup, field.ID, display)
	}

	markup = applyTheme(markup, desc.DefaultTheme, theme)
	markup = applyFont(markup, desc.DefaultFont, font)
	return markup
}

// EffectiveValue is what actually gets substituted for a field: the current
// input, else the placeholder, else a bracketed label so an unfilled template
// still looks structurally complete in preview.
func EffectiveValue(field schema.FieldSchema, value schema.Value) string {
	if !value.Empty() {
		return value.Text()
	}
	if field.Placeholder != "" {
		return field.Placeholder
	}
	return "[" + field.Label + "]"
}

// applyTheme swaps the template's two declared default color tokens for the
// chosen theme's colors. Direct string substitution over the known tokens,
// not a CSS parse.
func applyTheme(markup string, defaults, chosen schema.Theme) string {
	if chosen.IsZero() {
		return markup
	}
	if defaults.Primary != "" && chosen.Primary != "" {
		markup = strings.ReplaceAll(markup, defaults.Primary, chosen.Primary)
	}
	if defaults.Secondary != "" && chosen.Secondary != "" {
		markup = strings.ReplaceAll(markup, defaults.Secondary, chosen.Secondary)
	}
	return markup
}

func applyFont(markup, defaultFont string, chosen schema.Font) string {
	if chosen.IsZero() || defaultFont == "" {
		return markup
	}
	return strings.ReplaceAll(markup, defaultFont, chosen.CSSValue)
}
