package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-l10n/internal/access"
	"github.com/goliatone/go-l10n/internal/progress"
	"github.com/google/uuid"
)

type scopePayload struct {
	Kind      string    `json:"kind"`
	ProjectID uuid.UUID `json:"project_id,omitempty"`
	LocaleID  uuid.UUID `json:"locale_id,omitempty"`
}

func (p scopePayload) toScope() progress.Scope {
	return progress.Scope{
		Kind:      progress.ScopeKind(strings.ToLower(strings.TrimSpace(p.Kind))),
		ProjectID: p.ProjectID,
		LocaleID:  p.LocaleID,
	}
}

type snapshotPayload struct {
	Scope    scopePayload      `json:"scope"`
	Snapshot progress.Snapshot `json:"snapshot"`
}

type adjustPayload struct {
	Scope scopePayload  `json:"scope"`
	Diff  progress.Diff `json:"diff"`
}

type activityPayload struct {
	ProjectID  uuid.UUID  `json:"project_id"`
	LocaleID   uuid.UUID  `json:"locale_id"`
	ActorID    uuid.UUID  `json:"actor_id,omitempty"`
	Verb       string     `json:"verb"`
	OccurredAt *time.Time `json:"occurred_at,omitempty"`
}

func (api *AdminAPI) registerProgressRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	stats := joinPath(base, "stats")
	mux.HandleFunc("PUT "+stats, api.handleSnapshotSet)
	mux.HandleFunc("POST "+stats+"/adjust", api.handleSnapshotAdjust)
	mux.HandleFunc("GET "+stats+"/snapshot", api.handleSnapshotGet)
	mux.HandleFunc("GET "+stats+"/chart", api.handleChartGet)
	mux.HandleFunc("POST "+stats+"/projects/{id}/recompute", api.handleProjectRecompute)

	activity := joinPath(base, "activity")
	mux.HandleFunc("POST "+activity, api.handleActivityRecord)
	mux.HandleFunc("GET "+activity+"/latest", api.handleActivityLatest)
}

func (api *AdminAPI) handleSnapshotSet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.progress == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.ProjectsUpdate) {
		return
	}
	var payload snapshotPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	record, err := api.progress.SetSnapshot(r.Context(), payload.Scope.toScope(), payload.Snapshot)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleSnapshotAdjust(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.progress == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.ProjectsUpdate) {
		return
	}
	var payload adjustPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	snapshot, err := api.progress.Adjust(r.Context(), payload.Scope.toScope(), payload.Diff)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (api *AdminAPI) handleSnapshotGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.progress == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.DashboardsRead) {
		return
	}
	scope, ok := scopeFromQuery(w, r)
	if !ok {
		return
	}
	snapshot, err := api.progress.Snapshot(r.Context(), scope)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (api *AdminAPI) handleChartGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.progress == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.DashboardsRead) {
		return
	}
	scope, ok := scopeFromQuery(w, r)
	if !ok {
		return
	}
	chart, err := api.progress.Chart(r.Context(), scope)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

func (api *AdminAPI) handleProjectRecompute(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.progress == nil {
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
	snapshot, err := api.progress.RecomputeProject(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (api *AdminAPI) handleActivityRecord(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.progress == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.ProjectsUpdate) {
		return
	}
	var payload activityPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	record, err := api.progress.RecordActivity(r.Context(), progress.RecordActivityRequest{
		ProjectID:  payload.ProjectID,
		LocaleID:   payload.LocaleID,
		ActorID:    payload.ActorID,
		Verb:       payload.Verb,
		OccurredAt: payload.OccurredAt,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handleActivityLatest(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.progress == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.DashboardsRead) {
		return
	}
	scope, ok := scopeFromQuery(w, r)
	if !ok {
		return
	}
	record, err := api.progress.LatestActivity(r.Context(), scope)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func scopeFromQuery(w http.ResponseWriter, r *http.Request) (progress.Scope, bool) {
	query := r.URL.Query()
	scope := progress.Scope{
		Kind: progress.ScopeKind(strings.ToLower(strings.TrimSpace(query.Get("kind")))),
	}
	if raw := strings.TrimSpace(query.Get("project_id")); raw != "" {
		id, err := parseUUID(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid project id"})
			return progress.Scope{}, false
		}
		scope.ProjectID = id
	}
	if raw := strings.TrimSpace(query.Get("locale_id")); raw != "" {
		id, err := parseUUID(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid locale id"})
			return progress.Scope{}, false
		}
		scope.LocaleID = id
	}
	return scope, true
}
