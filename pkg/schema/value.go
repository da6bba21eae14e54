package schema

import (
	"strings"
	"unicode/utf8"
)

// Value is the tagged union held for one field: a plain string for most field
// types, a string list for checkbox fields. The zero Value is empty text.
type Value struct {
	text string
	list []string
	many bool
}

// String wraps a plain text value.
func String(text string) Value {
	return Value{text: text}
}

// List wraps a multi-select value.
func List(items ...string) Value {
	return Value{list: append([]string(nil), items...), many: true}
}

// IsList reports whether the value holds a selection list.
func (v Value) IsList() bool {
	return v.many
}

// Text returns the plain text form. List values join with ", " so they can be
// substituted into markup like any other value.
func (v Value) Text() string {
	if v.many {
		return strings.Join(v.list, ", ")
	}
	return v.text
}

// Items returns the selection list, nil for text values.
func (v Value) Items() []string {
	if !v.many {
		return nil
	}
	return append([]string(nil), v.list...)
}

// Empty reports whether the value counts as unfilled: the empty string, or an
// empty selection list.
func (v Value) Empty() bool {
	if v.many {
		return len(v.list) == 0
	}
	return v.text == ""
}

// Len is the rune length of a text value or the number of selected items.
func (v Value) Len() int {
	if v.many {
		return len(v.list)
	}
	return utf8.RuneCountInString(v.text)
}

// FormValues maps field ids to their current values. Keys are a subset of the
// owning template's field ids; an absent key reads as the empty value.
type FormValues map[string]Value

// Get returns the value for id, or the empty value when unset.
func (fv FormValues) Get(id string) Value {
	return fv[id]
}

// Clone returns an independent copy suitable for handing to readers.
func (fv FormValues) Clone() FormValues {
	out := make(FormValues, len(fv))
	for id, value := range fv {
		out[id] = value
	}
	return out
}

// SeedDefaults builds the initial values for a template from each field's
// declared default.
func SeedDefaults(desc TemplateDescriptor) FormValues {
	values := make(FormValues, len(desc.Fields))
	for _, field := range desc.Fields {
		if field.DefaultValue == "" {
			continue
		}
		if field.Type.Multi() {
			values[field.ID] = List(field.DefaultValue)
			continue
		}
		values[field.ID] = String(field.DefaultValue)
	}
	return values
}

// FieldErrors maps field ids to human-readable validation messages. Only ids
// that currently fail validation are present.
type FieldErrors map[string]string
