package http

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-l10n/internal/access"
	"github.com/goliatone/go-l10n/internal/domain"
	"github.com/goliatone/go-l10n/internal/team"
	"github.com/google/uuid"
)

type contributorCreatePayload struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type membershipPayload struct {
	ContributorID   uuid.UUID  `json:"contributor_id"`
	LocaleID        uuid.UUID  `json:"locale_id"`
	ProjectLocaleID *uuid.UUID `json:"project_locale_id,omitempty"`
	Role            string     `json:"role"`
}

func (api *AdminAPI) registerTeamRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	contributors := joinPath(base, "contributors")
	mux.HandleFunc("POST "+contributors, api.handleContributorCreate)
	mux.HandleFunc("GET "+contributors+"/{id}", api.handleContributorGet)
	mux.HandleFunc("POST "+contributors+"/{id}/deactivate", api.handleContributorDeactivate)
	mux.HandleFunc("GET "+contributors+"/{id}/memberships", api.handleContributorMembershipList)

	memberships := joinPath(base, "memberships")
	mux.HandleFunc("POST "+memberships, api.handleMembershipAssign)
	mux.HandleFunc("DELETE "+memberships, api.handleMembershipRevoke)

	teams := joinPath(base, "teams")
	mux.HandleFunc("GET "+teams+"/{localeID}/members", api.handleTeamMemberList)
	mux.HandleFunc("GET "+teams+"/{localeID}/contributors", api.handleTeamContributorList)
}

func (api *AdminAPI) handleContributorCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.team == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.PermissionsManage) {
		return
	}
	var payload contributorCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	record, err := api.team.AddContributor(r.Context(), team.AddContributorRequest{
		Email: payload.Email,
		Name:  payload.Name,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handleContributorGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.team == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.PermissionsRead) {
		return
	}
	// Lookup by email when the path segment is not a UUID.
	raw := strings.TrimSpace(r.PathValue("id"))
	if strings.Contains(raw, "@") {
		record, err := api.team.GetContributorByEmail(r.Context(), raw)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
		return
	}
	id, err := parseUUID(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid contributor id"})
		return
	}
	record, err := api.team.GetContributor(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleContributorDeactivate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.team == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.PermissionsManage) {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid contributor id"})
		return
	}
	record, err := api.team.DeactivateContributor(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleContributorMembershipList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.team == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.PermissionsRead) {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid contributor id"})
		return
	}
	records, err := api.team.ListContributorMemberships(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *AdminAPI) handleMembershipAssign(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.team == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.PermissionsManage) {
		return
	}
	var payload membershipPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	record, err := api.team.AssignRole(r.Context(), team.AssignRoleRequest{
		ContributorID:   payload.ContributorID,
		LocaleID:        payload.LocaleID,
		ProjectLocaleID: payload.ProjectLocaleID,
		Role:            domain.Role(strings.ToLower(strings.TrimSpace(payload.Role))),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handleMembershipRevoke(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.team == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.PermissionsManage) {
		return
	}
	var payload membershipPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	err := api.team.RevokeRole(r.Context(), team.RevokeRoleRequest{
		ContributorID:   payload.ContributorID,
		LocaleID:        payload.LocaleID,
		ProjectLocaleID: payload.ProjectLocaleID,
		Role:            domain.Role(strings.ToLower(strings.TrimSpace(payload.Role))),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handleTeamMemberList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.team == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.PermissionsRead) {
		return
	}
	localeID, err := parseUUID(r.PathValue("localeID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid locale id"})
		return
	}
	records, err := api.team.ListMemberships(r.Context(), localeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *AdminAPI) handleTeamContributorList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.team == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.PermissionsRead) {
		return
	}
	localeID, err := parseUUID(r.PathValue("localeID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid locale id"})
		return
	}
	records, err := api.team.ListContributors(r.Context(), localeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
