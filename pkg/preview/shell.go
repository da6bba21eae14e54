package preview

import (
	"embed"
	"fmt"
	"net/http"

	"github.com/flosch/pongo2/v6"
)

//go:embed assets/shell.html
var shellAssets embed.FS

// ShellConfig parameterises the host page that embeds the preview frame and
// connects back to the WebSocket surface.
type ShellConfig struct {
	Title     string
	SocketURL string
	Codec     string
}

// RenderShell renders the preview host page: a sandboxed iframe plus the
// client script that applies content and style frames as they arrive.
func RenderShell(cfg ShellConfig) (string, error) {
	raw, err := shellAssets.ReadFile("assets/shell.html")
	if err != nil {
		return "", fmt.Errorf("preview: read shell template: %w", err)
	}
	tmpl, err := pongo2.FromBytes(raw)
	if err != nil {
		return "", fmt.Errorf("preview: parse shell template: %w", err)
	}
	out, err := tmpl.Execute(pongo2.Context{
		"title":      cfg.Title,
		"socket_url": cfg.SocketURL,
		"codec":      cfg.Codec,
	})
	if err != nil {
		return "", fmt.Errorf("preview: render shell: %w", err)
	}
	return out, nil
}

// ShellHandler serves the rendered host page over HTTP.
func ShellHandler(cfg ShellConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := RenderShell(cfg)
		if err != nil {
			http.Error(w, "preview unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	}
}
