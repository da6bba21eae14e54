// Package docforge composes the editing engine from the top level: template
// catalogs, form sessions, and live preview rendering behind one import path.
package docforge

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-docforge/pkg/catalog"
	"github.com/goliatone/go-docforge/pkg/form"
	"github.com/goliatone/go-docforge/pkg/render"
	"github.com/goliatone/go-docforge/pkg/schema"
	"github.com/goliatone/go-docforge/pkg/session"
)

// TemplateDescriptor aliases the descriptor type exported via the root package
// for convenience.
type TemplateDescriptor = schema.TemplateDescriptor

// FieldSchema describes one input of a template's form.
type FieldSchema = schema.FieldSchema

// FormValues maps field ids to committed values.
type FormValues = schema.FormValues

// Value is one field's committed value, text or selection list.
type Value = schema.Value

// String wraps a plain text form value.
func String(text string) Value {
	return schema.String(text)
}

// List wraps a multi-select form value.
func List(items ...string) Value {
	return schema.List(items...)
}

// Theme is a primary/secondary color pair applied to rendered markup.
type Theme = schema.Theme

// Font names a font family and its CSS substitution value.
type Font = schema.Font

// Score is the completion score returned after each committed edit.
type Score = form.Score

// Session drives one document through editing, preview, and submit.
type Session = session.Session

// NewSession exposes the session constructor from the top-level module.
func NewSession(desc TemplateDescriptor, options ...session.Option) *Session {
	return session.New(desc, options...)
}

// NewCatalog loads a template catalog from a filesystem of YAML descriptors.
func NewCatalog(fsys fs.FS, options ...catalog.FSOption) (*catalog.FSCatalog, error) {
	return catalog.NewFSCatalog(fsys, options...)
}

// Render merges a template with values and styling in one call, for callers
// that just want markup without session machinery.
func Render(desc TemplateDescriptor, values FormValues, theme Theme, font Font) string {
	return render.Render(desc, values, theme, font)
}

// RenderTemplate loads the named template from the catalog and renders it with
// the given values and the template's default styling.
func RenderTemplate(ctx context.Context, templates catalog.Templates, id string, values FormValues) (string, error) {
	desc, err := templates.Template(ctx, id)
	if err != nil {
		return "", err
	}
	return render.Render(desc, values, schema.Theme{}, schema.Font{}), nil
}
