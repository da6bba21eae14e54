// Package httpapi exposes the editing workflow over HTTP: template catalog,
// session lifecycle, wizard navigation, live preview sockets, and saved
// documents.
package httpapi

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-docforge/pkg/catalog"
	"github.com/goliatone/go-docforge/pkg/preview"
	"github.com/goliatone/go-docforge/pkg/session"
	"github.com/goliatone/go-docforge/pkg/store"
)

// Option customises the server.
type Option func(*Server)

// WithLogger injects a structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDocumentStore enables document persistence for submits.
func WithDocumentStore(docs store.DocumentStore) Option {
	return func(s *Server) {
		s.docs = docs
	}
}

// WithThemes overrides the built-in theme catalog.
func WithThemes(themes []catalog.ThemeOption) Option {
	return func(s *Server) {
		s.themes = themes
	}
}

// WithFonts overrides the built-in font catalog.
func WithFonts(fonts []catalog.FontOption) Option {
	return func(s *Server) {
		s.fonts = fonts
	}
}

// WithAllowedOrigins whitelists cross-origin preview socket connections.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) {
		s.origins = append(s.origins, origins...)
	}
}

// Server wires the editing engine to HTTP. Each session owns a WebSocket
// preview surface; frames fan out to however many browser tabs watch it.
type Server struct {
	templates catalog.Templates
	sessions  *session.Manager
	docs      store.DocumentStore
	themes    []catalog.ThemeOption
	fonts     []catalog.FontOption
	origins   []string
	logger    *slog.Logger

	mu       sync.Mutex
	surfaces map[string]*preview.WebSocketSurface
}

// NewServer constructs the API server around a template catalog.
func NewServer(templates catalog.Templates, options ...Option) *Server {
	s := &Server{
		templates: templates,
		sessions:  session.NewManager(),
		themes:    catalog.DefaultThemes(),
		fonts:     catalog.DefaultFonts(),
		logger:    slog.Default(),
		surfaces:  make(map[string]*preview.WebSocketSurface),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Router builds the chi handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Get("/templates", s.handleListTemplates)
		r.Get("/templates/{templateID}", s.handleGetTemplate)
		r.Get("/themes", s.handleListThemes)
		r.Get("/fonts", s.handleListFonts)

		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/values", s.handleSetValue)
			r.Post("/advance", s.handleAdvance)
			r.Post("/retreat", s.handleRetreat)
			r.Post("/template", s.handleSwitchTemplate)
			r.Post("/theme", s.handleSelectTheme)
			r.Post("/font", s.handleSelectFont)
			r.Post("/submit", s.handleSubmit)
			r.Get("/preview/ws", s.handlePreviewSocket)
		})

		r.Get("/documents", s.handleListDocuments)
		r.Get("/documents/{documentID}", s.handleGetDocument)
		r.Delete("/documents/{documentID}", s.handleDeleteDocument)
	})

	r.Get("/sessions/{sessionID}/preview", s.handlePreviewPage)
	return r
}

// Shutdown tears down all live sessions and their preview surfaces.
func (s *Server) Shutdown() {
	s.mu.Lock()
	for id, surface := range s.surfaces {
		surface.Close()
		delete(s.surfaces, id)
	}
	s.mu.Unlock()
	s.sessions.CloseAll()
}

func (s *Server) surface(id string) (*preview.WebSocketSurface, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	surface, ok := s.surfaces[id]
	return surface, ok
}

func (s *Server) trackSurface(id string, surface *preview.WebSocketSurface) {
	s.mu.Lock()
	s.surfaces[id] = surface
	s.mu.Unlock()
}

func (s *Server) dropSurface(id string) {
	s.mu.Lock()
	surface := s.surfaces[id]
	delete(s.surfaces, id)
	s.mu.Unlock()
	if surface != nil {
		surface.Close()
	}
}
