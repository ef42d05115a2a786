package http

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-l10n/internal/access"
	"github.com/google/uuid"
)

// maxPermissionFormSize caps form POST bodies at 1 MiB.
const maxPermissionFormSize = 1 << 20

type matrixFormMember struct {
	ID           uuid.UUID
	Name         string
	IsManager    bool
	IsTranslator bool
}

func (api *AdminAPI) registerPermissionRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	teams := joinPath(base, "teams")
	mux.HandleFunc("GET "+teams+"/{localeID}/permissions", api.handleMatrixGet)
	mux.HandleFunc("GET "+teams+"/{localeID}/permissions/form", api.handleMatrixForm)
	mux.HandleFunc("POST "+teams+"/{localeID}/permissions", api.handleMatrixApply)
	mux.HandleFunc("GET "+teams+"/{localeID}/permissions/changelog", api.handleMatrixChangelog)
}

func (api *AdminAPI) handleMatrixGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.access == nil {
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
	matrix, err := api.access.Matrix(r.Context(), localeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, matrix)
}

func (api *AdminAPI) handleMatrixForm(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.access == nil || api.team == nil || api.catalog == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if api.renderer == nil || api.csrf == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable", Message: "form rendering not configured"})
		return
	}
	if !requirePermission(w, r, access.PermissionsManage) {
		return
	}
	localeID, err := parseUUID(r.PathValue("localeID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid locale id"})
		return
	}

	matrix, err := api.access.Matrix(r.Context(), localeID)
	if err != nil {
		writeError(w, err)
		return
	}
	locale, err := api.catalog.GetLocale(r.Context(), localeID)
	if err != nil {
		writeError(w, err)
		return
	}
	contributors, err := api.team.ListContributors(r.Context(), localeID)
	if err != nil {
		writeError(w, err)
		return
	}

	managers := uuidSet(matrix.Managers)
	translators := uuidSet(matrix.Translators)
	members := make([]matrixFormMember, 0, len(contributors))
	for _, contributor := range contributors {
		members = append(members, matrixFormMember{
			ID:           contributor.ID,
			Name:         contributor.Name,
			IsManager:    managers[contributor.ID],
			IsTranslator: translators[contributor.ID],
		})
	}

	markup, err := api.renderer.RenderTemplate("permissions_form.html", map[string]any{
		"action":      r.URL.Path,
		"csrf_token":  api.csrf.Token(sessionID(r)),
		"locale_name": locale.Name,
		"locale_code": locale.Code,
		"members":     members,
		"projects":    matrix.Projects,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeHTML(w, http.StatusOK, markup)
}

func (api *AdminAPI) handleMatrixApply(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.access == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.PermissionsManage) {
		return
	}
	localeID, err := parseUUID(r.PathValue("localeID"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid locale id"})
		return
	}

	if err := checkSameOrigin(r); err != nil {
		writeError(w, err)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxPermissionFormSize)
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid form payload"})
		return
	}
	if api.csrf != nil {
		if err := api.csrf.Verify(sessionID(r), r.PostFormValue(CSRFFormField)); err != nil {
			writeError(w, err)
			return
		}
	}

	performedBy, err := parseUUID(r.PostFormValue("performed_by"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "performed_by required"})
		return
	}

	req := access.ApplyMatrixRequest{
		LocaleID:    localeID,
		PerformedBy: performedBy,
		Managers:    parseUUIDList(r.PostForm["managers"]),
		Translators: parseUUIDList(r.PostForm["translators"]),
		Projects:    parseMatrixProjects(r.PostForm),
	}

	result, err := api.access.ApplyMatrix(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (api *AdminAPI) handleMatrixChangelog(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.access == nil {
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
	records, err := api.access.Changelog(r.Context(), localeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// parseMatrixProjects collects per-project rows from indexed form fields of
// the shape project_translators[<pair-id>] and has_custom_translators[<pair-id>].
func parseMatrixProjects(form map[string][]string) []access.MatrixProjectInput {
	rows := map[uuid.UUID]*access.MatrixProjectInput{}
	order := make([]uuid.UUID, 0)

	row := func(pairID uuid.UUID) *access.MatrixProjectInput {
		if existing, ok := rows[pairID]; ok {
			return existing
		}
		input := &access.MatrixProjectInput{ProjectLocaleID: pairID}
		rows[pairID] = input
		order = append(order, pairID)
		return input
	}

	for key, values := range form {
		if pairID, ok := indexedFormKey(key, "has_custom_translators"); ok {
			row(pairID).HasCustomTranslators = len(values) > 0 && values[0] != "false"
			continue
		}
		if pairID, ok := indexedFormKey(key, "project_translators"); ok {
			row(pairID).Translators = parseUUIDList(values)
		}
	}

	out := make([]access.MatrixProjectInput, 0, len(order))
	for _, pairID := range order {
		out = append(out, *rows[pairID])
	}
	return out
}

func indexedFormKey(key, prefix string) (uuid.UUID, bool) {
	if !strings.HasPrefix(key, prefix+"[") || !strings.HasSuffix(key, "]") {
		return uuid.Nil, false
	}
	raw := key[len(prefix)+1 : len(key)-1]
	pairID, err := parseUUID(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return pairID, true
}

func parseUUIDList(values []string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		parsed, err := parseUUID(value)
		if err != nil {
			continue
		}
		out = append(out, parsed)
	}
	return out
}

func uuidSet(ids []uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
