// Package catalog loads and serves the template, theme, and font catalogs.
// Templates are operator-authored YAML descriptors; themes and fonts are
// small enumerated lists, optionally derived from go-theme manifests.
package catalog

import (
	"context"
	"errors"

	"github.com/goliatone/go-docforge/pkg/schema"
)

// ErrTemplateNotFound reports a lookup for an unknown template id. Callers
// surface it as a user-visible "template unavailable" state rather than a
// crash.
var ErrTemplateNotFound = errors.New("catalog: template not found")

// Templates serves template descriptors to editing sessions. Descriptors are
// immutable once handed out; reloads swap the backing set atomically.
type Templates interface {
	// Template returns the descriptor for id, or ErrTemplateNotFound.
	Template(ctx context.Context, id string) (schema.TemplateDescriptor, error)

	// List returns every available descriptor ordered by id.
	List(ctx context.Context) ([]schema.TemplateDescriptor, error)
}

// ThemeOption is a named color pair offered to the user. The template's own
// default theme is the zero state and is not part of the catalog.
type ThemeOption struct {
	Name  string       `yaml:"name" json:"name"`
	Theme schema.Theme `yaml:"theme" json:"theme"`
}

// FontOption is a named font choice offered to the user.
type FontOption struct {
	Name string      `yaml:"name" json:"name"`
	Font schema.Font `yaml:"font" json:"font"`
}

// DefaultThemes is the built-in theme catalog.
func DefaultThemes() []ThemeOption {
	return []ThemeOption{
		{Name: "Ocean", Theme: schema.Theme{Primary: "#2563eb", Secondary: "#1e40af"}},
		{Name: "Forest", Theme: schema.Theme{Primary: "#059669", Secondary: "#047857"}},
		{Name: "Plum", Theme: schema.Theme{Primary: "#7c3aed", Secondary: "#5b21b6"}},
		{Name: "Slate", Theme: schema.Theme{Primary: "#475569", Secondary: "#1e293b"}},
		{Name: "Crimson", Theme: schema.Theme{Primary: "#dc2626", Secondary: "#991b1b"}},
	}
}

// DefaultFonts is the built-in font catalog.
func DefaultFonts() []FontOption {
	return []FontOption{
		{Name: "Inter", Font: schema.Font{Family: "Inter", CSSValue: "'Inter', sans-serif"}},
		{Name: "Georgia", Font: schema.Font{Family: "Georgia", CSSValue: "Georgia, serif"}},
		{Name: "Courier", Font: schema.Font{Family: "Courier", CSSValue: "'Courier New', monospace"}},
		{Name: "Lato", Font: schema.Font{Family: "Lato", CSSValue: "'Lato', sans-serif"}},
	}
}
