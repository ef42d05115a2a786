package http

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-l10n/internal/access"
	"github.com/goliatone/go-l10n/internal/catalog"
)

type localeCreatePayload struct {
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Direction       string  `json:"direction,omitempty"`
	Script          string  `json:"script,omitempty"`
	Population      int     `json:"population,omitempty"`
	CLDRPlurals     []int   `json:"cldr_plurals,omitempty"`
	TeamDescription *string `json:"team_description,omitempty"`
}

func (api *AdminAPI) registerLocaleRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "locales")
	mux.HandleFunc("GET "+root, api.handleLocaleList)
	mux.HandleFunc("POST "+root, api.handleLocaleCreate)
	mux.HandleFunc("GET "+root+"/{id}", api.handleLocaleGet)
	mux.HandleFunc("GET "+root+"/{id}/projects", api.handleLocaleProjectList)
	mux.HandleFunc("GET "+joinPath(base, "locales-by-code")+"/{code}", api.handleLocaleGetByCode)
}

func (api *AdminAPI) handleLocaleList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.LocalesRead) {
		return
	}
	records, err := api.catalog.ListLocales(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *AdminAPI) handleLocaleCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.LocalesCreate) {
		return
	}
	var payload localeCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	record, err := api.catalog.CreateLocale(r.Context(), catalog.CreateLocaleRequest{
		Code:            payload.Code,
		Name:            payload.Name,
		Direction:       payload.Direction,
		Script:          payload.Script,
		Population:      payload.Population,
		CLDRPlurals:     payload.CLDRPlurals,
		TeamDescription: payload.TeamDescription,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handleLocaleGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.LocalesRead) {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid locale id"})
		return
	}
	record, err := api.catalog.GetLocale(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleLocaleGetByCode(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.LocalesRead) {
		return
	}
	code := strings.TrimSpace(r.PathValue("code"))
	if code == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "locale code required"})
		return
	}
	record, err := api.catalog.GetLocaleByCode(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleLocaleProjectList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.LocalesRead) {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid locale id"})
		return
	}
	records, err := api.catalog.ListLocaleProjects(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
