package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-l10n/internal/access"
	"github.com/goliatone/go-l10n/internal/catalog"
	"github.com/goliatone/go-l10n/internal/domain"
	"github.com/google/uuid"
)

type projectCreatePayload struct {
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Info          string     `json:"info,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Priority      int        `json:"priority,omitempty"`
	ContactID     *uuid.UUID `json:"contact_id,omitempty"`
	Visibility    string     `json:"visibility,omitempty"`
	SystemProject bool       `json:"system_project,omitempty"`
}

type projectUpdatePayload struct {
	Name          *string    `json:"name,omitempty"`
	Info          *string    `json:"info,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	ClearDeadline bool       `json:"clear_deadline,omitempty"`
	Priority      *int       `json:"priority,omitempty"`
	ContactID     *uuid.UUID `json:"contact_id,omitempty"`
	Visibility    *string    `json:"visibility,omitempty"`
}

type projectLocalePayload struct {
	Locale   string `json:"locale"`
	Readonly bool   `json:"readonly,omitempty"`
}

type projectLocaleReadonlyPayload struct {
	Readonly bool `json:"readonly"`
}

func (api *AdminAPI) registerProjectRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "projects")
	mux.HandleFunc("GET "+root, api.handleProjectList)
	mux.HandleFunc("POST "+root, api.handleProjectCreate)
	mux.HandleFunc("GET "+root+"/{id}", api.handleProjectGet)
	mux.HandleFunc("PUT "+root+"/{id}", api.handleProjectUpdate)
	mux.HandleFunc("POST "+root+"/{id}/disable", api.handleProjectDisable)
	mux.HandleFunc("POST "+root+"/{id}/enable", api.handleProjectEnable)
	mux.HandleFunc("GET "+root+"/{id}/locales", api.handleProjectLocaleList)
	mux.HandleFunc("POST "+root+"/{id}/locales", api.handleProjectLocaleEnable)
	mux.HandleFunc("GET "+joinPath(base, "projects-by-slug")+"/{slug}", api.handleProjectGetBySlug)
	mux.HandleFunc("PUT "+joinPath(base, "project-locales")+"/{id}/readonly", api.handleProjectLocaleReadonly)
}

func (api *AdminAPI) handleProjectList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.ProjectsRead) {
		return
	}
	query := r.URL.Query()
	records, err := api.catalog.ListProjects(r.Context(), catalog.ListProjectsRequest{
		IncludeDisabled: parseBoolQuery(query.Get("include_disabled"), false),
		IncludeSystem:   parseBoolQuery(query.Get("include_system"), false),
		ViewerIsAdmin:   parseBoolQuery(query.Get("admin"), false),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *AdminAPI) handleProjectCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.ProjectsCreate) {
		return
	}
	var payload projectCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	record, err := api.catalog.CreateProject(r.Context(), catalog.CreateProjectRequest{
		Name:          payload.Name,
		Slug:          payload.Slug,
		Info:          payload.Info,
		Deadline:      payload.Deadline,
		Priority:      domain.Priority(payload.Priority),
		ContactID:     payload.ContactID,
		Visibility:    domain.NormalizeVisibility(payload.Visibility),
		SystemProject: payload.SystemProject,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handleProjectGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.ProjectsRead) {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid project id"})
		return
	}
	record, err := api.catalog.GetProject(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleProjectGetBySlug(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.ProjectsRead) {
		return
	}
	slug := strings.TrimSpace(r.PathValue("slug"))
	if slug == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "slug required"})
		return
	}
	record, err := api.catalog.GetProjectBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleProjectUpdate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.ProjectsUpdate) {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid project id"})
		return
	}
	var payload projectUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	req := catalog.UpdateProjectRequest{
		ID:            id,
		Name:          payload.Name,
		Info:          payload.Info,
		Deadline:      payload.Deadline,
		ClearDeadline: payload.ClearDeadline,
		ContactID:     payload.ContactID,
	}
	if payload.Priority != nil {
		priority := domain.Priority(*payload.Priority)
		req.Priority = &priority
	}
	if payload.Visibility != nil {
		visibility := domain.NormalizeVisibility(*payload.Visibility)
		req.Visibility = &visibility
	}
	record, err := api.catalog.UpdateProject(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleProjectDisable(w http.ResponseWriter, r *http.Request) {
	api.toggleProject(w, r, api.catalogDisable)
}

func (api *AdminAPI) handleProjectEnable(w http.ResponseWriter, r *http.Request) {
	api.toggleProject(w, r, api.catalogEnable)
}

func (api *AdminAPI) catalogDisable(r *http.Request, id uuid.UUID) (*catalog.Project, error) {
	return api.catalog.DisableProject(r.Context(), id)
}

func (api *AdminAPI) catalogEnable(r *http.Request, id uuid.UUID) (*catalog.Project, error) {
	return api.catalog.EnableProject(r.Context(), id)
}

func (api *AdminAPI) toggleProject(w http.ResponseWriter, r *http.Request, toggle func(*http.Request, uuid.UUID) (*catalog.Project, error)) {
	if api == nil || api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.ProjectsUpdate) {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid project id"})
		return
	}
	record, err := toggle(r, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleProjectLocaleList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.LocalesRead) {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid project id"})
		return
	}
	records, err := api.catalog.ListProjectLocales(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *AdminAPI) handleProjectLocaleEnable(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.LocalesUpdate) {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid project id"})
		return
	}
	var payload projectLocalePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	record, err := api.catalog.EnableLocale(r.Context(), catalog.EnableLocaleRequest{
		ProjectID: id,
		Locale:    payload.Locale,
		Readonly:  payload.Readonly,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handleProjectLocaleReadonly(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.LocalesUpdate) {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid project locale id"})
		return
	}
	var payload projectLocaleReadonlyPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	record, err := api.catalog.SetReadonly(r.Context(), catalog.SetReadonlyRequest{
		ProjectLocaleID: id,
		Readonly:        payload.Readonly,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}
