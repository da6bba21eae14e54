package preview

import (
	_ "embed"
	"log/slog"
	"sync"
)

// Presentation stylesheet injected after every content replacement: layout
// reset plus print-media rules, independent of template content.
//
//go:embed assets/presentation.css
var presentationCSS string

// Option customises the renderer.
type Option func(*Renderer)

// WithLogger injects a structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithStylesheet overrides the embedded presentation stylesheet.
func WithStylesheet(css string) Option {
	return func(r *Renderer) {
		r.css = css
	}
}

// Renderer owns a rendering surface and pushes fully substituted markup into
// it. Full replacement, no diffing: documents are single-page scale and
// replacement is cheap against keystroke latency budgets.
type Renderer struct {
	mu      sync.Mutex
	surface Surface
	css     string
	logger  *slog.Logger
}

// NewRenderer constructs a renderer with no surface attached. Updates before
// Attach are dropped.
func NewRenderer(options ...Option) *Renderer {
	r := &Renderer{
		css:    presentationCSS,
		logger: slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Attach hands the renderer the host-provided surface.
func (r *Renderer) Attach(surface Surface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surface = surface
}

// Detach releases the surface; later updates become no-ops without error.
func (r *Renderer) Detach() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.surface = nil
}

// Update replaces the surface content with markup and re-injects the
// presentation stylesheet. A detached or not-yet-ready surface drops the
// update silently; the next scheduled update supersedes it.
func (r *Renderer) Update(markup string) {
	r.mu.Lock()
	surface := r.surface
	css := r.css
	r.mu.Unlock()

	if surface == nil || !surface.Ready() {
		r.logger.Debug("preview: surface not ready, update dropped")
		return
	}
	surface.SetContent(markup)
	surface.InjectStyle(css)
}
