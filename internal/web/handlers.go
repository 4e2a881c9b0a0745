package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/desertthunder/oclettings/internal/models"
	"github.com/desertthunder/oclettings/internal/server"
	"github.com/desertthunder/oclettings/internal/shared"
)

// LettingsPage is the data of lettings/index.html.
type LettingsPage struct {
	LettingsList []*models.Letting
}

// LettingPage is the data of lettings/letting.html.
type LettingPage struct {
	Title   string
	Address *models.Address
}

// ProfilesPage is the data of profiles/index.html.
type ProfilesPage struct {
	ProfilesList []*models.Profile
}

// ProfilePage is the data of profiles/profile.html.
type ProfilePage struct {
	Profile *models.Profile
}

// ErrorPage is the data of 404.html and 500.html. Detail is only set in debug mode.
type ErrorPage struct {
	Message   string
	Detail    string
	RequestID string
}

// Index renders the home page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, IndexTemplate, nil)
}

// LettingsIndex renders every letting.
func (h *Handler) LettingsIndex(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("Lettings index page accessed")

	lettings, err := h.lettings.List(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.logger.Debug("Retrieved lettings", "count", len(lettings))
	h.render(w, r, http.StatusOK, LettingsIndexTemplate, LettingsPage{LettingsList: lettings})
}

// Letting renders one letting. Ids that are not all digits do not match the route.
func (h *Handler) Letting(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("letting_id")
	id, ok := parseID(raw)
	if !ok {
		h.NotFound(w, r)
		return
	}

	h.logger.Info("Letting detail page accessed", "id", id)

	letting, err := h.lettings.Get(r.Context(), id)
	if errors.Is(err, shared.ErrNotFound) {
		h.logger.Error("Letting not found", "id", id)
		h.notFound(w, r, err.Error())
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.logger.Debug("Found letting", "title", letting.Title)
	h.render(w, r, http.StatusOK, LettingTemplate, LettingPage{Title: letting.Title, Address: letting.Address})
}

// ProfilesIndex renders every profile.
func (h *Handler) ProfilesIndex(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.List(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, ProfilesIndexTemplate, ProfilesPage{ProfilesList: profiles})
}

// Profile renders the profile of the user named in the path.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	profile, err := h.profiles.Get(r.Context(), username)
	if errors.Is(err, shared.ErrNotFound) {
		h.logger.Warn("Profile not found", "username", username)
		h.notFound(w, r, err.Error())
		return
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, ProfileTemplate, ProfilePage{Profile: profile})
}

// Test500 always fails so the error page can be checked in a deployment.
func (h *Handler) Test500(w http.ResponseWriter, r *http.Request) {
	panic("Test 500 error")
}

// NotFound renders the 404 page for paths no route matches.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.notFound(w, r, fmt.Sprintf("The requested path %s was not found on this server.", r.URL.Path))
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request, message string) {
	h.render(w, r, http.StatusNotFound, NotFoundTemplate, ErrorPage{
		Message:   message,
		RequestID: server.RequestIDFromContext(r.Context()),
	})
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("request failed", "path", r.URL.Path, "err", err)
	h.renderServerError(w, r, err.Error())
}

// renderPanic is the fallback of the recover middleware.
func (h *Handler) renderPanic(w http.ResponseWriter, r *http.Request) {
	h.renderServerError(w, r, "panic recovered, see server log")
}

func (h *Handler) renderServerError(w http.ResponseWriter, r *http.Request, detail string) {
	page := ErrorPage{
		Message:   "Something went wrong on our side.",
		RequestID: server.RequestIDFromContext(r.Context()),
	}
	if h.debug {
		page.Detail = detail
	}

	if err := h.templates.Render(w, http.StatusInternalServerError, ServerErrorTemplate, page); err != nil {
		h.logger.Error("failed to render error page", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if err := h.templates.Render(w, status, name, data); err != nil {
		h.serverError(w, r, err)
	}
}

// parseID accepts only non-empty all-digit ids that fit in an int64.
func parseID(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
