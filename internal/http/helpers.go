package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	l10ncatalog "github.com/goliatone/go-l10n/catalog"
	"github.com/goliatone/go-l10n/internal/access"
	"github.com/goliatone/go-l10n/internal/catalog"
	"github.com/goliatone/go-l10n/internal/progress"
	"github.com/goliatone/go-l10n/internal/team"
	"github.com/goliatone/go-l10n/internal/validation"
	"github.com/goliatone/go-l10n/internal/widgets"
	l10nprogress "github.com/goliatone/go-l10n/progress"
	l10nteam "github.com/goliatone/go-l10n/team"
	l10nwidgets "github.com/goliatone/go-l10n/widgets"
	"github.com/google/uuid"
)

type errorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message,omitempty"`
	Issues  []validation.ValidationIssue `json:"issues,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeHTML(w http.ResponseWriter, status int, markup string) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, markup)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var catalogNotFound *catalog.NotFoundError
	if errors.As(err, &catalogNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: catalogNotFound.Error(),
		}
	}

	var teamNotFound *team.NotFoundError
	if errors.As(err, &teamNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: teamNotFound.Error(),
		}
	}

	var progressNotFound *progress.NotFoundError
	if errors.As(err, &progressNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: progressNotFound.Error(),
		}
	}

	var widgetNotFound *widgets.NotFoundError
	if errors.As(err, &widgetNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: widgetNotFound.Error(),
		}
	}

	if errors.Is(err, l10nteam.ErrMembershipNotFound) {
		return http.StatusNotFound, errorResponse{
			Error:   "not_found",
			Message: err.Error(),
		}
	}

	if errors.Is(err, access.ErrPermissionDenied) {
		return http.StatusForbidden, errorResponse{
			Error:   "forbidden",
			Message: err.Error(),
		}
	}

	if errors.Is(err, ErrCSRFTokenRequired) ||
		errors.Is(err, ErrCSRFTokenInvalid) ||
		errors.Is(err, ErrCrossOriginRequest) {
		return http.StatusForbidden, errorResponse{
			Error:   "csrf_failed",
			Message: err.Error(),
		}
	}

	if errors.Is(err, l10ncatalog.ErrSlugExists) ||
		errors.Is(err, l10ncatalog.ErrLocaleCodeExists) ||
		errors.Is(err, l10ncatalog.ErrDuplicateProjectLocale) ||
		errors.Is(err, l10nteam.ErrEmailExists) ||
		errors.Is(err, l10nteam.ErrMembershipExists) ||
		errors.Is(err, l10nwidgets.ErrDefinitionExists) {
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}
	}

	if errors.Is(err, l10ncatalog.ErrProjectDisabled) ||
		errors.Is(err, l10nteam.ErrContributorInactive) {
		return http.StatusConflict, errorResponse{
			Error:   "conflict",
			Message: err.Error(),
		}
	}

	if errors.Is(err, validation.ErrSchemaInvalid) ||
		errors.Is(err, validation.ErrSchemaValidation) ||
		errors.Is(err, l10nwidgets.ErrDefinitionSchemaInvalid) ||
		errors.Is(err, l10nwidgets.ErrInstanceConfigurationInvalid) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Issues:  validation.Issues(err),
		}
	}

	if isRequestError(err) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	var fieldErrors ozzo.Errors
	if errors.As(err, &fieldErrors) {
		return http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

func isRequestError(err error) bool {
	requestErrors := []error{
		l10ncatalog.ErrProjectNameRequired,
		l10ncatalog.ErrSlugRequired,
		l10ncatalog.ErrSlugInvalid,
		l10ncatalog.ErrProjectIDRequired,
		l10ncatalog.ErrPriorityInvalid,
		l10ncatalog.ErrDeadlineInvalid,
		l10ncatalog.ErrLocaleCodeRequired,
		l10ncatalog.ErrLocaleNameRequired,
		l10ncatalog.ErrUnknownLocale,
		l10ncatalog.ErrCLDRPluralsInvalid,
		l10ncatalog.ErrProjectLocaleRequired,
		l10nteam.ErrEmailRequired,
		l10nteam.ErrEmailInvalid,
		l10nteam.ErrContributorRequired,
		l10nteam.ErrLocaleRequired,
		l10nteam.ErrRoleInvalid,
		l10nteam.ErrManagerRoleOnOverride,
		l10nprogress.ErrScopeInvalid,
		l10nprogress.ErrVerbInvalid,
		l10nprogress.ErrSnapshotInvalid,
		l10nwidgets.ErrDefinitionNameRequired,
		l10nwidgets.ErrDefinitionSchemaRequired,
		l10nwidgets.ErrInstanceDefinitionRequired,
		l10nwidgets.ErrInstanceAreaRequired,
		l10nwidgets.ErrInstanceIDRequired,
		l10nwidgets.ErrInstancePositionInvalid,
		access.ErrLocaleRequired,
		access.ErrPerformerRequired,
		access.ErrContributorRequired,
		access.ErrProjectRequired,
		access.ErrUnknownProjectPair,
	}
	for _, sentinel := range requestErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func parseUUID(value string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return uuid.Nil, errors.New("uuid required")
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return uuid.Nil, err
	}
	return parsed, nil
}

func parseBoolQuery(value string, defaultValue bool) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func requirePermission(w http.ResponseWriter, r *http.Request, permission string) bool {
	if strings.TrimSpace(permission) == "" {
		return true
	}
	if r == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "request missing"})
		return false
	}
	if err := access.Require(r.Context(), permission); err != nil {
		writeError(w, err)
		return false
	}
	return true
}
