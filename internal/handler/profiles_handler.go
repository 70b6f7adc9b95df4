package handler

import (
	"net/http"

	"doc-intelligence/internal/domain"
	"doc-intelligence/internal/persona"
)

// PersonaCatalog lists persona profiles and previews contexts.
type PersonaCatalog interface {
	Profiles() []persona.Profile
	Build(role, job string) *domain.PersonaContext
}

// ProfilesHandler exposes the persona profile table.
type ProfilesHandler struct {
	personas PersonaCatalog
}

// NewProfilesHandler creates a new profiles handler
func NewProfilesHandler(personas PersonaCatalog) *ProfilesHandler {
	return &ProfilesHandler{personas: personas}
}

// List returns every profile in match order, generic last.
func (h *ProfilesHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles := h.personas.Profiles()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profiles": profiles,
		"count":    len(profiles),
	})
}

// Context previews the persona context built for ?persona=&job=.
func (h *ProfilesHandler) Context(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, h.personas.Build(q.Get("persona"), q.Get("job")))
}
