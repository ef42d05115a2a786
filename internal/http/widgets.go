package http

import (
	"net/http"

	"github.com/goliatone/go-l10n/internal/access"
	"github.com/goliatone/go-l10n/internal/widgets"
	"github.com/google/uuid"
)

type widgetDefinitionPayload struct {
	Name        string         `json:"name"`
	Description *string        `json:"description,omitempty"`
	Schema      map[string]any `json:"schema"`
	Defaults    map[string]any `json:"defaults,omitempty"`
}

type widgetInstanceCreatePayload struct {
	DefinitionID  uuid.UUID      `json:"definition_id"`
	AreaCode      string         `json:"area_code"`
	Configuration map[string]any `json:"configuration,omitempty"`
	Position      int            `json:"position,omitempty"`
}

type widgetInstanceUpdatePayload struct {
	AreaCode      *string        `json:"area_code,omitempty"`
	Configuration map[string]any `json:"configuration,omitempty"`
	Position      *int           `json:"position,omitempty"`
}

func (api *AdminAPI) registerWidgetRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	definitions := joinPath(base, "widgets/definitions")
	mux.HandleFunc("GET "+definitions, api.handleWidgetDefinitionList)
	mux.HandleFunc("POST "+definitions, api.handleWidgetDefinitionRegister)
	mux.HandleFunc("GET "+definitions+"/{id}", api.handleWidgetDefinitionGet)

	instances := joinPath(base, "widgets/instances")
	mux.HandleFunc("POST "+instances, api.handleWidgetInstanceCreate)
	mux.HandleFunc("GET "+instances+"/{id}", api.handleWidgetInstanceGet)
	mux.HandleFunc("PUT "+instances+"/{id}", api.handleWidgetInstanceUpdate)
	mux.HandleFunc("DELETE "+instances+"/{id}", api.handleWidgetInstanceDelete)

	areas := joinPath(base, "widgets/areas")
	mux.HandleFunc("GET "+areas+"/{area}/instances", api.handleWidgetAreaList)
}

func (api *AdminAPI) handleWidgetDefinitionList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.widgets == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.WidgetsRead) {
		return
	}
	records, err := api.widgets.ListDefinitions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (api *AdminAPI) handleWidgetDefinitionRegister(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.widgets == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.WidgetsCreate) {
		return
	}
	var payload widgetDefinitionPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	record, err := api.widgets.RegisterDefinition(r.Context(), widgets.RegisterDefinitionInput{
		Name:        payload.Name,
		Description: payload.Description,
		Schema:      payload.Schema,
		Defaults:    payload.Defaults,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handleWidgetDefinitionGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.widgets == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.WidgetsRead) {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid definition id"})
		return
	}
	record, err := api.widgets.GetDefinition(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleWidgetInstanceCreate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.widgets == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.WidgetsCreate) {
		return
	}
	var payload widgetInstanceCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	record, err := api.widgets.CreateInstance(r.Context(), widgets.CreateInstanceRequest{
		DefinitionID:  payload.DefinitionID,
		AreaCode:      payload.AreaCode,
		Configuration: payload.Configuration,
		Position:      payload.Position,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (api *AdminAPI) handleWidgetInstanceGet(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.widgets == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.WidgetsRead) {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid instance id"})
		return
	}
	record, err := api.widgets.GetInstance(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleWidgetInstanceUpdate(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.widgets == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.WidgetsUpdate) {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid instance id"})
		return
	}
	var payload widgetInstanceUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	record, err := api.widgets.UpdateInstance(r.Context(), widgets.UpdateInstanceRequest{
		ID:            id,
		AreaCode:      payload.AreaCode,
		Configuration: payload.Configuration,
		Position:      payload.Position,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (api *AdminAPI) handleWidgetInstanceDelete(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.widgets == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.WidgetsDelete) {
		return
	}
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid instance id"})
		return
	}
	if err := api.widgets.DeleteInstance(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *AdminAPI) handleWidgetAreaList(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.widgets == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	if !requirePermission(w, r, access.WidgetsRead) {
		return
	}
	records, err := api.widgets.ListInstancesByArea(r.Context(), r.PathValue("area"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}
