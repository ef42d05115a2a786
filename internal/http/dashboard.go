package http

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-l10n/internal/access"
	"github.com/goliatone/go-l10n/internal/dashboard"
)

func (api *AdminAPI) registerDashboardRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	root := joinPath(base, "dashboard")
	mux.HandleFunc("GET "+root+"/projects", api.handleDashboardProjects)
	mux.HandleFunc("GET "+root+"/projects/page", api.handleDashboardProjectsPage)
	mux.HandleFunc("GET "+root+"/projects/{slug}", api.handleDashboardProjectDetail)
	mux.HandleFunc("GET "+root+"/teams/{code}", api.handleDashboardTeamPage)
	mux.HandleFunc("GET "+root+"/overview", api.handleDashboardOverview)
	mux.HandleFunc("GET "+root+"/areas/{area}/widgets", api.handleDashboardAreaWidgets)
}

func (api *AdminAPI) handleDashboardProjects(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.dashboard == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.DashboardsRead) {
		return
	}
	rows, err := api.dashboard.ProjectRows(r.Context(), dashboardRowsRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (api *AdminAPI) handleDashboardProjectsPage(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.dashboard == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if api.renderer == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable", Message: "page rendering not configured"})
		return
	}
	if !requirePermission(w, r, access.DashboardsRead) {
		return
	}
	rows, err := api.dashboard.ProjectRows(r.Context(), dashboardRowsRequest(r))
	if err != nil {
		writeError(w, err)
		return
	}
	markup, err := api.renderer.RenderTemplate("project_list.html", map[string]any{
		"title": "Projects",
		"rows":  rows,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeHTML(w, http.StatusOK, markup)
}

func (api *AdminAPI) handleDashboardProjectDetail(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.dashboard == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.DashboardsRead) {
		return
	}
	slug := strings.TrimSpace(r.PathValue("slug"))
	if slug == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "slug required"})
		return
	}
	detail, err := api.dashboard.ProjectDetail(r.Context(), slug)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (api *AdminAPI) handleDashboardTeamPage(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.dashboard == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.DashboardsRead) {
		return
	}
	code := strings.TrimSpace(r.PathValue("code"))
	if code == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "locale code required"})
		return
	}
	page, err := api.dashboard.TeamPage(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (api *AdminAPI) handleDashboardOverview(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.dashboard == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.DashboardsRead) {
		return
	}
	overview, err := api.dashboard.Overview(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (api *AdminAPI) handleDashboardAreaWidgets(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.dashboard == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.DashboardsRead) {
		return
	}
	records, err := api.dashboard.AreaWidgets(r.Context(), r.PathValue("area"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func dashboardRowsRequest(r *http.Request) dashboard.ProjectRowsRequest {
	query := r.URL.Query()
	return dashboard.ProjectRowsRequest{
		IncludeDisabled: parseBoolQuery(query.Get("include_disabled"), false),
		IncludeSystem:   parseBoolQuery(query.Get("include_system"), false),
		ViewerIsAdmin:   parseBoolQuery(query.Get("admin"), false),
	}
}
