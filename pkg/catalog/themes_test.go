package catalog

import (
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docforge/pkg/schema"
)

func TestThemesFromManifest(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Tokens: map[string]string{
			"primary":   "#2563eb",
			"secondary": "#1e40af",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{"primary": "#93c5fd"},
			},
		},
	}

	got := ThemesFromManifest(manifest)
	want := []ThemeOption{
		{Name: "acme", Theme: schema.Theme{Primary: "#2563eb", Secondary: "#1e40af"}},
		{Name: "acme/dark", Theme: schema.Theme{Primary: "#93c5fd", Secondary: "#1e40af"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("themes (-want +got):\n%s", diff)
	}
}

type stubSelector struct {
	selection *theme.Selection
	err       error
}

func (s *stubSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	return s.selection, s.err
}

func TestSelectTheme(t *testing.T) {
	manifest := &theme.Manifest{
		Name:   "acme",
		Tokens: map[string]string{"primary": "#2563eb", "secondary": "#1e40af"},
		Variants: map[string]theme.Variant{
			"dark": {Tokens: map[string]string{"primary": "#93c5fd"}},
		},
	}
	selector := &stubSelector{selection: &theme.Selection{Theme: "acme", Variant: "dark", Manifest: manifest}}

	got, err := SelectTheme(selector, "acme", "dark")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	want := schema.Theme{Primary: "#93c5fd", Secondary: "#1e40af"}
	if got != want {
		t.Fatalf("want %+v, got %+v", want, got)
	}
}

func TestSelectTheme_NoPrimaryToken(t *testing.T) {
	selector := &stubSelector{selection: &theme.Selection{Theme: "bare", Manifest: &theme.Manifest{Name: "bare"}}}
	if _, err := SelectTheme(selector, "bare", ""); err == nil {
		t.Fatal("manifest without primary token must fail")
	}
}
