package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-docforge/pkg/catalog"
	"github.com/goliatone/go-docforge/pkg/preview"
	"github.com/goliatone/go-docforge/pkg/schema"
	"github.com/goliatone/go-docforge/pkg/session"
	"github.com/goliatone/go-docforge/pkg/store"
)

type valuePayload struct {
	Value string   `json:"value"`
	Items []string `json:"items,omitempty"`
}

func (p valuePayload) toValue() schema.Value {
	if p.Items != nil {
		return schema.List(p.Items...)
	}
	return schema.String(p.Value)
}

func valuesPayload(values schema.FormValues) map[string]valuePayload {
	out := make(map[string]valuePayload, len(values))
	for id, value := range values {
		if value.IsList() {
			out[id] = valuePayload{Items: value.Items()}
			continue
		}
		out[id] = valuePayload{Value: value.Text()}
	}
	return out
}

type stepPayload struct {
	Title    string   `json:"title"`
	FieldIDs []string `json:"fieldIds"`
}

type sessionState struct {
	ID          string                  `json:"id"`
	TemplateID  string                  `json:"templateId"`
	StepIndex   int                     `json:"stepIndex"`
	Steps       []stepPayload           `json:"steps"`
	Values      map[string]valuePayload `json:"values"`
	Errors      schema.FieldErrors      `json:"errors"`
	Score       int                     `json:"score"`
	Submitted   bool                    `json:"submitted"`
	PreviewPath string                  `json:"previewPath"`
}

func (s *Server) sessionState(id string, sess *session.Session) sessionState {
	steps := sess.Steps()
	stepDTOs := make([]stepPayload, len(steps))
	for i, step := range steps {
		stepDTOs[i] = stepPayload{Title: step.Title, FieldIDs: step.FieldIDs}
	}
	return sessionState{
		ID:          id,
		TemplateID:  sess.Template().ID,
		StepIndex:   sess.StepIndex(),
		Steps:       stepDTOs,
		Values:      valuesPayload(sess.Values()),
		Errors:      sess.Errors(),
		Score:       sess.Score().Value,
		Submitted:   sess.Submitted(),
		PreviewPath: "/sessions/" + id + "/preview",
	}
}

func (s *Server) resolveSession(w http.ResponseWriter, r *http.Request) (string, *session.Session, bool) {
	id := chi.URLParam(r, "sessionID")
	sess, ok := s.sessions.Get(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "session not found")
		return "", nil, false
	}
	return id, sess, true
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	descs, err := s.templates.List(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "catalog unavailable")
		return
	}
	s.respond(w, http.StatusOK, descs)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	desc, err := s.templates.Template(r.Context(), chi.URLParam(r, "templateID"))
	if errors.Is(err, catalog.ErrTemplateNotFound) {
		s.respondError(w, http.StatusNotFound, "template not found")
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "catalog unavailable")
		return
	}
	s.respond(w, http.StatusOK, desc)
}

func (s *Server) handleListThemes(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, s.themes)
}

func (s *Server) handleListFonts(w http.ResponseWriter, _ *http.Request) {
	s.respond(w, http.StatusOK, s.fonts)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TemplateID string `json:"templateId"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	desc, err := s.templates.Template(r.Context(), req.TemplateID)
	if errors.Is(err, catalog.ErrTemplateNotFound) {
		s.respondError(w, http.StatusNotFound, "template not found")
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "catalog unavailable")
		return
	}

	surface := preview.NewWebSocketSurface(
		preview.WithAllowedOrigins(s.origins...),
		preview.WithSurfaceLogger(s.logger),
	)
	renderer := preview.NewRenderer(preview.WithLogger(s.logger))
	renderer.Attach(surface)

	sess := session.New(desc,
		session.WithRenderer(renderer),
		session.WithStore(s.docs),
		session.WithLogger(s.logger),
	)
	id := s.sessions.Add(sess)
	s.trackSurface(id, surface)

	s.logger.Info("httpapi: session created", "session", id, "template", desc.ID)
	s.respond(w, http.StatusCreated, s.sessionState(id, sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.resolveSession(w, r)
	if !ok {
		return
	}
	s.respond(w, http.StatusOK, s.sessionState(id, sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	s.dropSurface(id)
	s.sessions.Remove(id)
	s.respond(w, http.StatusNoContent, nil)
}

func (s *Server) handleSetValue(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.resolveSession(w, r)
	if !ok {
		return
	}
	var req struct {
		FieldID string `json:"fieldId"`
		valuePayload
	}
	if !s.decode(w, r, &req) {
		return
	}
	score, err := sess.SetValue(req.FieldID, req.toValue())
	if errors.Is(err, session.ErrAlreadySubmitted) {
		s.respondError(w, http.StatusConflict, "session already submitted")
		return
	}
	s.respond(w, http.StatusOK, struct {
		Session       sessionState `json:"session"`
		Score         int          `json:"score"`
		JustCompleted []string     `json:"justCompleted,omitempty"`
	}{
		Session:       s.sessionState(id, sess),
		Score:         score.Value,
		JustCompleted: score.JustCompleted,
	})
}

func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.resolveSession(w, r)
	if !ok {
		return
	}
	moved := sess.Advance()
	s.respond(w, http.StatusOK, struct {
		Moved   bool         `json:"moved"`
		Session sessionState `json:"session"`
	}{Moved: moved, Session: s.sessionState(id, sess)})
}

func (s *Server) handleRetreat(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.resolveSession(w, r)
	if !ok {
		return
	}
	sess.Retreat()
	s.respond(w, http.StatusOK, s.sessionState(id, sess))
}

func (s *Server) handleSwitchTemplate(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.resolveSession(w, r)
	if !ok {
		return
	}
	var req struct {
		TemplateID string `json:"templateId"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	desc, err := s.templates.Template(r.Context(), req.TemplateID)
	if errors.Is(err, catalog.ErrTemplateNotFound) {
		s.respondError(w, http.StatusNotFound, "template not found")
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "catalog unavailable")
		return
	}
	sess.SwitchTemplate(desc)
	s.respond(w, http.StatusOK, s.sessionState(id, sess))
}

func (s *Server) handleSelectTheme(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.resolveSession(w, r)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		sess.SelectTheme(schema.Theme{})
		s.respond(w, http.StatusOK, s.sessionState(id, sess))
		return
	}
	for _, option := range s.themes {
		if option.Name == req.Name {
			sess.SelectTheme(option.Theme)
			s.respond(w, http.StatusOK, s.sessionState(id, sess))
			return
		}
	}
	s.respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown theme %q", req.Name))
}

func (s *Server) handleSelectFont(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.resolveSession(w, r)
	if !ok {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		sess.SelectFont(schema.Font{})
		s.respond(w, http.StatusOK, s.sessionState(id, sess))
		return
	}
	for _, option := range s.fonts {
		if option.Name == req.Name {
			sess.SelectFont(option.Font)
			s.respond(w, http.StatusOK, s.sessionState(id, sess))
			return
		}
	}
	s.respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown font %q", req.Name))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id, sess, ok := s.resolveSession(w, r)
	if !ok {
		return
	}
	var req struct {
		Title string `json:"title"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	doc, err := sess.Submit(r.Context(), req.Title)
	switch {
	case errors.Is(err, session.ErrValidationFailed):
		s.respond(w, http.StatusUnprocessableEntity, struct {
			Error   string       `json:"error"`
			Session sessionState `json:"session"`
		}{Error: "validation failed", Session: s.sessionState(id, sess)})
		return
	case errors.Is(err, session.ErrAlreadySubmitted):
		s.respondError(w, http.StatusConflict, "session already submitted")
		return
	case err != nil:
		s.logger.Error("httpapi: submit failed", "session", id, "error", err)
		s.respondError(w, http.StatusInternalServerError, "submit failed")
		return
	}
	s.respond(w, http.StatusOK, doc)
}

func (s *Server) handlePreviewSocket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if _, ok := s.sessions.Get(id); !ok {
		s.respondError(w, http.StatusNotFound, "session not found")
		return
	}
	surface, ok := s.surface(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "preview not available")
		return
	}
	if err := surface.Accept(r.Context(), w, r); err != nil {
		s.logger.Debug("httpapi: preview socket closed", "session", id, "error", err)
	}
}

func (s *Server) handlePreviewPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	sess, ok := s.sessions.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	preview.ShellHandler(preview.ShellConfig{
		Title:     sess.Template().Name,
		SocketURL: "/api/sessions/" + id + "/preview/ws",
		Codec:     "msgpack",
	})(w, r)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	if s.docs == nil {
		s.respondError(w, http.StatusNotImplemented, "document store not configured")
		return
	}
	docs, err := s.docs.List(r.Context())
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	s.respond(w, http.StatusOK, docs)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	if s.docs == nil {
		s.respondError(w, http.StatusNotImplemented, "document store not configured")
		return
	}
	doc, err := s.docs.Get(r.Context(), chi.URLParam(r, "documentID"))
	if errors.Is(err, store.ErrDocumentNotFound) {
		s.respondError(w, http.StatusNotFound, "document not found")
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	s.respond(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	if s.docs == nil {
		s.respondError(w, http.StatusNotImplemented, "document store not configured")
		return
	}
	err := s.docs.Delete(r.Context(), chi.URLParam(r, "documentID"))
	if errors.Is(err, store.ErrDocumentNotFound) {
		s.respondError(w, http.StatusNotFound, "document not found")
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	s.respond(w, http.StatusNoContent, nil)
}
