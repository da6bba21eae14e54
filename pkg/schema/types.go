package schema

import (
	"errors"
	"fmt"
	"sort"
)

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeEmail    FieldType = "email"
	FieldTypeTel      FieldType = "tel"
	FieldTypeDate     FieldType = "date"
	FieldTypeSelect   FieldType = "select"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
)

// Closed reports whether the type restricts input to a declared option list.
func (t FieldType) Closed() bool {
	switch t {
	case FieldTypeSelect, FieldTypeRadio, FieldTypeCheckbox:
		return true
	}
	return false
}

// Multi reports whether the type holds more than one value at a time.
func (t FieldType) Multi() bool {
	return t == FieldTypeCheckbox
}

// LengthRule bounds the rune length of a field value. A zero bound is unset.
type LengthRule struct {
	MinLength int `yaml:"minLength" json:"minLength,omitempty"`
	MaxLength int `yaml:"maxLength" json:"maxLength,omitempty"`
}

// FieldSchema models an individual input inside a template's form. Struct
// fields are annotated so catalogs can serialise them directly.
type FieldSchema struct {
	ID           string      `yaml:"id" json:"id"`
	Type         FieldType   `yaml:"type" json:"type"`
	Label        string      `yaml:"label" json:"label"`
	Placeholder  string      `yaml:"placeholder" json:"placeholder,omitempty"`
	Required     bool        `yaml:"required" json:"required"`
	Options      []string    `yaml:"options" json:"options,omitempty"`
	DefaultValue string      `yaml:"defaultValue" json:"defaultValue,omitempty"`
	Order        int         `yaml:"order" json:"order"`
	Validation   *LengthRule `yaml:"validation" json:"validation,omitempty"`
}

// Theme is a primary/secondary color pair applied to template markup.
type Theme struct {
	Primary   string `yaml:"primary" json:"primary"`
	Secondary string `yaml:"secondary" json:"secondary"`
}

// IsZero reports whether the theme carries no colors at all.
func (t Theme) IsZero() bool {
	return t.Primary == "" && t.Secondary == ""
}

// Font names a font family together with the CSS value substituted into markup.
type Font struct {
	Family   string `yaml:"family" json:"family"`
	CSSValue string `yaml:"cssValue" json:"cssValue"`
}

// IsZero reports whether the font carries no substitution value.
func (f Font) IsZero() bool {
	return f.CSSValue == ""
}

// TemplateDescriptor is the authored, immutable-per-session definition of a
// document type: fields, markup with placeholder markers, and default styling.
type TemplateDescriptor struct {
	ID           string        `yaml:"id" json:"id"`
	Name         string        `yaml:"name" json:"name"`
	Category     string        `yaml:"category" json:"category"`
	Fields       []FieldSchema `yaml:"fields" json:"fields"`
	Markup       string        `yaml:"markup" json:"markup"`
	DefaultTheme Theme         `yaml:"defaultTheme" json:"defaultTheme"`
	DefaultFont  string        `yaml:"defaultFont" json:"defaultFont"`

	// StepGroups declares the wizard step partitioning as ordered groups of
	// field ids. When empty the wizard falls back to grouping by id keywords.
	StepGroups [][]string `yaml:"stepGroups" json:"stepGroups,omitempty"`
}

var (
	errDescriptorIDMissing   = errors.New("schema: template id is required")
	errDescriptorNameMissing = errors.New("schema: template name is required")
)

// Validate checks structural invariants of the descriptor: field ids present
// and unique, closed-choice fields carrying a non-empty option list.
func (d TemplateDescriptor) Validate() error {
	if d.ID == "" {
		return errDescriptorIDMissing
	}
	if d.Name == "" {
		return errDescriptorNameMissing
	}
	seen := make(map[string]struct{}, len(d.Fields))
	for _, field := range d.Fields {
		if field.ID == "" {
			return fmt.Errorf("schema: template %q: field without id", d.ID)
		}
		if _, dup := seen[field.ID]; dup {
			return fmt.Errorf("schema: template %q: duplicate field id %q", d.ID, field.ID)
		}
		seen[field.ID] = struct{}{}
		if field.Type.Closed() && len(field.Options) == 0 {
			return fmt.Errorf("schema: template %q: field %q of type %s requires options", d.ID, field.ID, field.Type)
		}
	}
	return nil
}

// SortedFields returns the fields ordered by their Order attribute. Order
// values need not be contiguous; ties keep declaration order.
func (d TemplateDescriptor) SortedFields() []FieldSchema {
	fields := append([]FieldSchema(nil), d.Fields...)
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Order < fields[j].Order
	})
	return fields
}

// Field looks up a field schema by id.
func (d TemplateDescriptor) Field(id string) (FieldSchema, bool) {
	for _, field := range d.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return FieldSchema{}, false
}
