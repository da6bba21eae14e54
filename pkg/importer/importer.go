// Package importer converts OpenAPI component schemas into template field
// schemas. It is a template-authoring aid: operators who already describe
// their data in OpenAPI can bootstrap a descriptor's field list instead of
// writing it by hand. Never part of the end-user editing path.
package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-docforge/pkg/schema"
)

const textareaThreshold = 120

var errNoComponents = errors.New("importer: document has no component schemas")

// Fields loads an OpenAPI document and converts the named component object
// schema's properties into an ordered field list.
func Fields(ctx context.Context, raw []byte, schemaName string) ([]schema.FieldSchema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("importer: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("importer: load document: %w", err)
	}
	if doc.Components == nil || len(doc.Components.Schemas) == 0 {
		return nil, errNoComponents
	}
	ref, ok := doc.Components.Schemas[schemaName]
	if !ok || ref.Value == nil {
		return nil, fmt.Errorf("importer: schema %q not found", schemaName)
	}
	if !ref.Value.Type.Is("object") {
		return nil, fmt.Errorf("importer: schema %q is not an object", schemaName)
	}
	return convertObject(ref.Value), nil
}

func convertObject(src *openapi3.Schema) []schema.FieldSchema {
	required := make(map[string]bool, len(src.Required))
	for _, name := range src.Required {
		required[name] = true
	}

	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]schema.FieldSchema, 0, len(names))
	for i, name := range names {
		ref := src.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field := convertProperty(name, ref.Value)
		field.Required = required[name]
		field.Order = (i + 1) * 10
		fields = append(fields, field)
	}
	return fields
}

func convertProperty(name string, src *openapi3.Schema) schema.FieldSchema {
	field := schema.FieldSchema{
		ID:    name,
		Type:  schema.FieldTypeText,
		Label: labelFromName(name),
	}
	if text, ok := src.Default.(string); ok {
		field.DefaultValue = text
	}

	switch {
	case src.Type.Is("array"):
		field.Type = schema.FieldTypeCheckbox
		if src.Items != nil && src.Items.Value != nil {
			field.Options = enumStrings(src.Items.Value.Enum)
		}
	case len(src.Enum) > 0:
		field.Type = schema.FieldTypeSelect
		field.Options = enumStrings(src.Enum)
	default:
		field.Type = textType(src)
	}

	if rule := lengthRule(src); rule != nil {
		field.Validation = rule
	}
	return field
}

func textType(src *openapi3.Schema) schema.FieldType {
	switch src.Format {
	case "email":
		return schema.FieldTypeEmail
	case "date", "date-time":
		return schema.FieldTypeDate
	case "tel", "phone":
		return schema.FieldTypeTel
	}
	if src.MaxLength != nil && *src.MaxLength > textareaThreshold {
		return schema.FieldTypeTextarea
	}
	return schema.FieldTypeText
}

func lengthRule(src *openapi3.Schema) *schema.LengthRule {
	rule := &schema.LengthRule{}
	if src.MinLength > 0 {
		rule.MinLength = int(src.MinLength)
	}
	if src.MaxLength != nil {
		rule.MaxLength = int(*src.MaxLength)
	}
	if rule.MinLength == 0 && rule.MaxLength == 0 {
		return nil
	}
	return rule
}

func enumStrings(enum []any) []string {
	out := make([]string, 0, len(enum))
	for _, value := range enum {
		if text, ok := value.(string); ok && text != "" {
			out = append(out, text)
		}
	}
	return out
}

// labelFromName turns snake_case or camelCase property names into a
// human-readable label: "full_name" and "fullName" both become "Full name".
func labelFromName(name string) string {
	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == '.':
			flush()
		case unicode.IsUpper(r):
			flush()
			current.WriteRune(unicode.ToLower(r))
		default:
			current.WriteRune(r)
		}
	}
	flush()
	if len(words) == 0 {
		return name
	}
	label := strings.Join(words, " ")
	return strings.ToUpper(label[:1]) + label[1:]
}
