package catalog

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-docforge/pkg/schema"
)

// FSOption customises the filesystem-backed catalog.
type FSOption func(*FSCatalog)

// WithLogger injects a structured logger used for authoring feedback.
func WithLogger(logger *slog.Logger) FSOption {
	return func(c *FSCatalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMarkupLint toggles the bluemonday authoring lint. Enabled by default;
// report-only either way, since templates are trusted operator content.
func WithMarkupLint(enabled bool) FSOption {
	return func(c *FSCatalog) {
		c.lint = enabled
	}
}

// FSCatalog loads YAML template descriptors from an fs.FS. Each *.yaml file
// holds one TemplateDescriptor. The loaded set is swapped atomically on
// Reload, so descriptors already handed to sessions stay stable.
type FSCatalog struct {
	fsys   fs.FS
	logger *slog.Logger
	lint   bool
	policy *bluemonday.Policy

	mu        sync.RWMutex
	templates map[string]schema.TemplateDescriptor
}

var _ Templates = (*FSCatalog)(nil)

// NewFSCatalog loads every descriptor under fsys and returns the catalog.
func NewFSCatalog(fsys fs.FS, options ...FSOption) (*FSCatalog, error) {
	c := &FSCatalog{
		fsys:   fsys,
		logger: slog.Default(),
		lint:   true,
		policy: bluemonday.UGCPolicy(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads every descriptor from the filesystem and swaps the set.
func (c *FSCatalog) Reload() error {
	entries, err := fs.Glob(c.fsys, "*.yaml")
	if err != nil {
		return fmt.Errorf("catalog: glob descriptors: %w", err)
	}
	yml, err := fs.Glob(c.fsys, "*.yml")
	if err != nil {
		return fmt.Errorf("catalog: glob descriptors: %w", err)
	}
	entries = append(entries, yml...)

	templates := make(map[string]schema.TemplateDescriptor, len(entries))
	for _, name := range entries {
		desc, err := c.loadOne(name)
		if err != nil {
			return err
		}
		if _, dup := templates[desc.ID]; dup {
			return fmt.Errorf("catalog: duplicate template id %q in %s", desc.ID, name)
		}
		templates[desc.ID] = desc
	}

	c.mu.Lock()
	c.templates = templates
	c.mu.Unlock()
	c.logger.Info("catalog: templates loaded", slog.Int("count", len(templates)))
	return nil
}

func (c *FSCatalog) loadOne(name string) (schema.TemplateDescriptor, error) {
	data, err := fs.ReadFile(c.fsys, name)
	if err != nil {
		return schema.TemplateDescriptor{}, fmt.Errorf("catalog: read %s: %w", name, err)
	}

	var desc schema.TemplateDescriptor
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return schema.TemplateDescriptor{}, fmt.Errorf("catalog: parse %s: %w", name, err)
	}
	if desc.ID == "" {
		desc.ID = strings.TrimSuffix(path.Base(name), path.Ext(name))
	}
	if err := desc.Validate(); err != nil {
		return schema.TemplateDescriptor{}, fmt.Errorf("catalog: %s: %w", name, err)
	}

	// Authoring feedback only; the descriptor loads either way.
	schema.CheckIntegrity(desc).Log(c.logger, desc.ID)
	if c.lint {
		c.lintMarkup(desc)
	}
	return desc, nil
}

// lintMarkup flags markup that a conservative sanitizer would rewrite.
// Templates are trusted, so this is a warning for template authors, not a
// gate: inline styles and data-field attributes routinely trip it.
func (c *FSCatalog) lintMarkup(desc schema.TemplateDescriptor) {
	sanitized := c.policy.Sanitize(desc.Markup)
	if sanitized != desc.Markup {
		c.logger.Debug("catalog: markup differs from sanitized form",
			slog.String("template", desc.ID))
	}
}

// Template implements Templates.
func (c *FSCatalog) Template(ctx context.Context, id string) (schema.TemplateDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return schema.TemplateDescriptor{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	desc, ok := c.templates[id]
	if !ok {
		return schema.TemplateDescriptor{}, fmt.Errorf("catalog: template %q: %w", id, ErrTemplateNotFound)
	}
	return desc, nil
}

// List implements Templates.
func (c *FSCatalog) List(ctx context.Context) ([]schema.TemplateDescriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]schema.TemplateDescriptor, 0, len(c.templates))
	for _, desc := range c.templates {
		out = append(out, desc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
