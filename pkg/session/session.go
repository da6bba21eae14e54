// Package session ties the pieces together: one Session owns a form machine,
// the user's theme and font selections, and the preview pipeline for a single
// document being edited. The HTTP layer and the terminal wizard both drive the
// same Session API.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/goliatone/go-docforge/pkg/form"
	"github.com/goliatone/go-docforge/pkg/preview"
	"github.com/goliatone/go-docforge/pkg/render"
	"github.com/goliatone/go-docforge/pkg/schema"
	"github.com/goliatone/go-docforge/pkg/store"
)

// ErrValidationFailed reports a submit attempt blocked by field validation.
// The per-field messages are available through Errors.
var ErrValidationFailed = errors.New("session: validation failed")

// ErrAlreadySubmitted reports an edit attempted after the terminal state.
var ErrAlreadySubmitted = errors.New("session: already submitted")

// Option customises a session at construction time.
type Option func(*Session)

// WithRenderer attaches the preview renderer updates are pushed to. Without
// one, editing still works and Markup stays available on demand.
func WithRenderer(renderer *preview.Renderer) Option {
	return func(s *Session) {
		s.renderer = renderer
	}
}

// WithStore sets the document store Submit persists into.
func WithStore(docs store.DocumentStore) Option {
	return func(s *Session) {
		s.docs = docs
	}
}

// WithLogger injects a structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTheme presets the theme selection.
func WithTheme(theme schema.Theme) Option {
	return func(s *Session) {
		s.theme = theme
	}
}

// WithFont presets the font selection.
func WithFont(font schema.Font) Option {
	return func(s *Session) {
		s.font = font
	}
}

// WithSynchronousRender applies preview updates inline instead of through the
// coalescing goroutine. Intended for tests.
func WithSynchronousRender() Option {
	return func(s *Session) {
		s.syncRender = true
	}
}

// Session is the per-document orchestrator. All methods are safe for
// concurrent use; preview pushes happen off the caller's goroutine and are
// coalesced so a burst of edits applies only its latest markup, with the final
// value of the burst never dropped.
type Session struct {
	mu      sync.Mutex
	machine *form.Machine
	theme   schema.Theme
	font    schema.Font
	pending string

	renderer   *preview.Renderer
	docs       store.DocumentStore
	logger     *slog.Logger
	syncRender bool

	signal chan struct{}
	done   chan struct{}
	once   sync.Once
}

// New starts a session editing the given template.
func New(desc schema.TemplateDescriptor, options ...Option) *Session {
	s := &Session{
		machine: form.NewMachine(desc),
		logger:  slog.Default(),
		signal:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if !s.syncRender {
		go s.applyLoop()
	}
	s.scheduleRender()
	return s
}

// applyLoop drains render signals and pushes the latest pending markup. The
// signal channel has capacity one: a burst of edits collapses into a single
// wakeup, and because pending is re-read after the wakeup the markup applied
// is always the newest committed one.
func (s *Session) applyLoop() {
	for {
		select {
		case <-s.done:
			return
		case <-s.signal:
			s.mu.Lock()
			markup := s.pending
			s.mu.Unlock()
			s.push(markup)
		}
	}
}

func (s *Session) push(markup string) {
	if s.renderer == nil {
		return
	}
	s.renderer.Update(markup)
}

// scheduleRender recomputes markup under the lock and queues a preview push.
func (s *Session) scheduleRender() {
	s.mu.Lock()
	markup := s.renderLocked()
	s.pending = markup
	s.mu.Unlock()

	if s.syncRender {
		s.push(markup)
		return
	}
	select {
	case s.signal <- struct{}{}:
	default:
	}
}

func (s *Session) renderLocked() string {
	return render.Render(s.machine.Template(), s.machine.Values(), s.theme, s.font)
}

// SetValue commits a field value and returns the updated completion score.
// Edits after Submit are rejected.
func (s *Session) SetValue(id string, value schema.Value) (form.Score, error) {
	s.mu.Lock()
	if s.machine.Submitted() {
		s.mu.Unlock()
		return form.Score{}, ErrAlreadySubmitted
	}
	score := s.machine.SetValue(id, value)
	s.mu.Unlock()

	s.scheduleRender()
	return score, nil
}

// Advance validates the current step and moves forward when it passes.
func (s *Session) Advance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Advance()
}

// Retreat moves one step back; no-op at the first step.
func (s *Session) Retreat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.machine.Retreat()
}

// SelectTheme swaps the theme selection and refreshes the preview. The zero
// theme restores the template's own defaults.
func (s *Session) SelectTheme(theme schema.Theme) {
	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()
	s.scheduleRender()
}

// SelectFont swaps the font selection and refreshes the preview.
func (s *Session) SelectFont(font schema.Font) {
	s.mu.Lock()
	s.font = font
	s.mu.Unlock()
	s.scheduleRender()
}

// SwitchTemplate atomically replaces the template mid-session: values, errors,
// and step position reset, and style selections fall back to the new
// template's defaults. Nothing from the old template leaks across.
func (s *Session) SwitchTemplate(desc schema.TemplateDescriptor) {
	s.mu.Lock()
	s.machine.Reset(desc)
	s.theme = schema.Theme{}
	s.font = schema.Font{}
	s.mu.Unlock()
	s.scheduleRender()
}

// Submit validates everything, renders the final markup, and persists it when
// a store is configured. On validation failure the wizard jumps to the first
// failing step and ErrValidationFailed is returned; Errors carries details.
func (s *Session) Submit(ctx context.Context, title string) (store.Document, error) {
	s.mu.Lock()
	if s.machine.Submitted() {
		s.mu.Unlock()
		return store.Document{}, ErrAlreadySubmitted
	}
	_, ok := s.machine.Submit()
	if !ok {
		s.mu.Unlock()
		return store.Document{}, ErrValidationFailed
	}
	doc := store.Document{
		Title:      title,
		TemplateID: s.machine.Template().ID,
		Content:    s.renderLocked(),
	}
	docs := s.docs
	s.mu.Unlock()

	if docs != nil {
		id, err := docs.Save(ctx, doc)
		if err != nil {
			return store.Document{}, fmt.Errorf("session: persist document: %w", err)
		}
		doc.ID = id
	}
	s.logger.Info("session: document submitted", "template", doc.TemplateID, "document", doc.ID)
	return doc, nil
}

// Markup renders the current state on demand, independent of the preview
// pipeline.
func (s *Session) Markup() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderLocked()
}

// Template returns the descriptor being edited.
func (s *Session) Template() schema.TemplateDescriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Template()
}

// Values returns a snapshot of the committed form values.
func (s *Session) Values() schema.FormValues {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Values()
}

// Errors returns a snapshot of the standing validation errors.
func (s *Session) Errors() schema.FieldErrors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Errors()
}

// Steps returns the wizard steps for the current template.
func (s *Session) Steps() []form.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Steps()
}

// StepIndex returns the current wizard position.
func (s *Session) StepIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.StepIndex()
}

// Score returns the current completion score.
func (s *Session) Score() form.Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Score()
}

// Submitted reports whether the session reached the terminal state.
func (s *Session) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Submitted()
}

// Close stops the background apply loop. Safe to call more than once.
func (s *Session) Close() {
	s.once.Do(func() { close(s.done) })
}
