// Package validation checks single field values against their schema. Results
// are plain messages, not errors: validation feedback is data the wizard
// surfaces inline, never a control-flow failure.
package validation

import (
	"fmt"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/goliatone/go-docforge/pkg/schema"
)

// Validate applies the field's rules in order and returns the first failure
// as a human-readable message, or the empty string when the value passes.
// Deterministic, no state or I/O; safe to call per keystroke.
func Validate(field schema.FieldSchema, value schema.Value) string {
	if field.Required && value.Empty() {
		return fmt.Sprintf("%s is required", fieldLabel(field))
	}
	if value.Empty() {
		return ""
	}

	if field.Type == schema.FieldTypeEmail {
		if err := ozzo.Validate(value.Text(), is.Email); err != nil {
			return "invalid email"
		}
	}

	rule := field.Validation
	if rule == nil {
		return ""
	}
	if rule.MinLength > 0 && tooShort(value, rule.MinLength) {
		return fmt.Sprintf("%s must be at least %d characters", fieldLabel(field), rule.MinLength)
	}
	if rule.MaxLength > 0 && tooLong(value, rule.MaxLength) {
		return fmt.Sprintf("%s must be at most %d characters", fieldLabel(field), rule.MaxLength)
	}
	return ""
}

// ValidateAll runs Validate over a set of fields and collects the failures.
func ValidateAll(fields []schema.FieldSchema, values schema.FormValues) schema.FieldErrors {
	errs := make(schema.FieldErrors)
	for _, field := range fields {
		if msg := Validate(field, values.Get(field.ID)); msg != "" {
			errs[field.ID] = msg
		}
	}
	return errs
}

// tooShort rejects strictly-below-minimum lengths only: a value of exactly
// MinLength passes. Selection lists count items instead of runes.
func tooShort(value schema.Value, min int) bool {
	if value.IsList() {
		return value.Len() < min
	}
	return ozzo.Validate(value.Text(), ozzo.RuneLength(min, 0)) != nil
}

func tooLong(value schema.Value, max int) bool {
	if value.IsList() {
		return value.Len() > max
	}
	return ozzo.Validate(value.Text(), ozzo.RuneLength(0, max)) != nil
}

func fieldLabel(field schema.FieldSchema) string {
	if field.Label != "" {
		return field.Label
	}
	return field.ID
}
