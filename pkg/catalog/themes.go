package catalog

import (
	"fmt"
	"sort"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-docforge/pkg/schema"
)

// Token names a go-theme manifest must carry for its tokens to map onto a
// document color pair.
const (
	tokenPrimary   = "primary"
	tokenSecondary = "secondary"
)

// ThemesFromManifest derives theme options from a go-theme manifest: one for
// the base token set, one per variant with the variant's tokens overlaid.
// Manifests without a primary token contribute nothing.
func ThemesFromManifest(m *theme.Manifest) []ThemeOption {
	if m == nil {
		return nil
	}

	var options []ThemeOption
	if base, ok := themeFromTokens(m.Tokens); ok {
		options = append(options, ThemeOption{Name: m.Name, Theme: base})
	}

	names := make([]string, 0, len(m.Variants))
	for name := range m.Variants {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		merged := mergeTokens(m.Tokens, m.Variants[name].Tokens)
		if t, ok := themeFromTokens(merged); ok {
			options = append(options, ThemeOption{Name: m.Name + "/" + name, Theme: t})
		}
	}
	return options
}

// SelectTheme resolves a named theme and variant through a go-theme selector
// and maps the resolved tokens onto a document color pair.
func SelectTheme(selector theme.ThemeSelector, name, variant string) (schema.Theme, error) {
	if selector == nil {
		return schema.Theme{}, fmt.Errorf("catalog: theme selector is nil")
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return schema.Theme{}, fmt.Errorf("catalog: select theme %q: %w", name, err)
	}
	if selection == nil || selection.Manifest == nil {
		return schema.Theme{}, fmt.Errorf("catalog: theme %q resolved without a manifest", name)
	}

	tokens := selection.Manifest.Tokens
	if variant != "" {
		if v, ok := selection.Manifest.Variants[variant]; ok {
			tokens = mergeTokens(tokens, v.Tokens)
		}
	}
	t, ok := themeFromTokens(tokens)
	if !ok {
		return schema.Theme{}, fmt.Errorf("catalog: theme %q carries no %s token", name, tokenPrimary)
	}
	return t, nil
}

func themeFromTokens(tokens map[string]string) (schema.Theme, bool) {
	primary := tokens[tokenPrimary]
	if primary == "" {
		return schema.Theme{}, false
	}
	secondary := tokens[tokenSecondary]
	if secondary == "" {
		secondary = primary
	}
	return schema.Theme{Primary: primary, Secondary: secondary}, true
}

func mergeTokens(base, overlay map[string]string) map[string]string {
	merged := make(map[string]string, len(base)+len(overlay))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range overlay {
		merged[key] = value
	}
	return merged
}
