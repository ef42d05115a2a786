package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-l10n/internal/access"
	"github.com/goliatone/go-l10n/internal/catalog"
	"github.com/goliatone/go-l10n/internal/dashboard"
	adminhttp "github.com/goliatone/go-l10n/internal/http"
	"github.com/goliatone/go-l10n/internal/progress"
	"github.com/goliatone/go-l10n/internal/render"
	"github.com/goliatone/go-l10n/internal/team"
	"github.com/goliatone/go-l10n/internal/widgets"
	"github.com/google/uuid"
)

type repoLocaleResolver struct {
	locales catalog.LocaleRepository
}

func (r repoLocaleResolver) LocaleCode(ctx context.Context, id uuid.UUID) (string, error) {
	record, err := r.locales.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return record.Code, nil
}

type adminFixture struct {
	mux      *http.ServeMux
	catalog  catalog.Service
	team     team.Service
	progress progress.Service
	access   access.Service
	widgets  widgets.Service
	csrf     *adminhttp.CSRFProvider
}

func setupAdminAPI(t *testing.T) *adminFixture {
	t.Helper()

	projects := catalog.NewMemoryProjectRepository()
	locales := catalog.NewMemoryLocaleRepository()
	projectLocales := catalog.NewMemoryProjectLocaleRepository()
	catalogSvc := catalog.NewService(projects, locales, projectLocales)

	contributors := team.NewMemoryContributorRepository()
	memberships := team.NewMemoryMembershipRepository()
	teamSvc := team.NewService(contributors, memberships, team.WithLocaleResolver(repoLocaleResolver{locales: locales}))

	stats := progress.NewMemoryStatsRepository()
	activityRepo := progress.NewMemoryActivityRepository()
	progressSvc := progress.NewService(stats, activityRepo)

	changes := team.NewMemoryPermissionChangeRepository()
	accessSvc := access.NewService(memberships, projectLocales, projects, changes)

	definitions := widgets.NewMemoryDefinitionRepository()
	instances := widgets.NewMemoryInstanceRepository()
	widgetSvc := widgets.NewService(definitions, instances)

	dashboardSvc := dashboard.NewService(catalogSvc, progressSvc, teamSvc, dashboard.WithWidgets(widgetSvc))

	renderer, err := render.DefaultRenderer()
	if err != nil {
		t.Fatalf("default renderer: %v", err)
	}
	csrf, err := adminhttp.NewCSRFProvider("test-secret")
	if err != nil {
		t.Fatalf("csrf provider: %v", err)
	}

	api := adminhttp.NewAdminAPI(
		adminhttp.WithCatalogService(catalogSvc),
		adminhttp.WithTeamService(teamSvc),
		adminhttp.WithProgressService(progressSvc),
		adminhttp.WithAccessService(accessSvc),
		adminhttp.WithWidgetService(widgetSvc),
		adminhttp.WithDashboardService(dashboardSvc),
		adminhttp.WithRenderer(renderer),
		adminhttp.WithCSRF(csrf),
	)

	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("register admin api: %v", err)
	}

	return &adminFixture{
		mux:      mux,
		catalog:  catalogSvc,
		team:     teamSvc,
		progress: progressSvc,
		access:   accessSvc,
		widgets:  widgetSvc,
		csrf:     csrf,
	}
}

func doJSONRequest(t *testing.T, mux *http.ServeMux, method, path string, body any, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, req)

	if recorder.Code != wantStatus {
		t.Fatalf("%s %s: expected status %d, got %d (body %s)", method, path, wantStatus, recorder.Code, recorder.Body.String())
	}
	return recorder
}

func decodeJSONBody(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response body: %v (body %s)", err, recorder.Body.String())
	}
}

func TestProjectLifecycle(t *testing.T) {
	fixture := setupAdminAPI(t)

	created := doJSONRequest(t, fixture.mux, http.MethodPost, "/admin/api/projects", map[string]any{
		"name":       "Firefox",
		"slug":       "firefox",
		"priority":   4,
		"visibility": "public",
	}, http.StatusCreated)

	var project struct {
		ID   uuid.UUID `json:"id"`
		Slug string    `json:"slug"`
	}
	decodeJSONBody(t, created, &project)
	if project.Slug != "firefox" || project.ID == uuid.Nil {
		t.Fatalf("unexpected project payload: %+v", project)
	}

	bySlug := doJSONRequest(t, fixture.mux, http.MethodGet, "/admin/api/projects-by-slug/firefox", nil, http.StatusOK)
	var fetched struct {
		ID uuid.UUID `json:"id"`
	}
	decodeJSONBody(t, bySlug, &fetched)
	if fetched.ID != project.ID {
		t.Fatalf("expected slug lookup to return %s, got %s", project.ID, fetched.ID)
	}

	doJSONRequest(t, fixture.mux, http.MethodPut, "/admin/api/projects/"+project.ID.String(), map[string]any{
		"priority": 5,
	}, http.StatusOK)

	disabled := doJSONRequest(t, fixture.mux, http.MethodPost, "/admin/api/projects/"+project.ID.String()+"/disable", nil, http.StatusOK)
	var state struct {
		Disabled bool `json:"disabled"`
	}
	decodeJSONBody(t, disabled, &state)
	if !state.Disabled {
		t.Fatal("expected project to be disabled")
	}

	listed := doJSONRequest(t, fixture.mux, http.MethodGet, "/admin/api/projects?include_disabled=true&admin=true", nil, http.StatusOK)
	var rows []map[string]any
	decodeJSONBody(t, listed, &rows)
	if len(rows) != 1 {
		t.Fatalf("expected 1 project, got %d", len(rows))
	}
}

func TestProjectCreateDuplicateSlugConflicts(t *testing.T) {
	fixture := setupAdminAPI(t)

	payload := map[string]any{"name": "Firefox", "slug": "firefox"}
	doJSONRequest(t, fixture.mux, http.MethodPost, "/admin/api/projects", payload, http.StatusCreated)
	doJSONRequest(t, fixture.mux, http.MethodPost, "/admin/api/projects", payload, http.StatusConflict)
}

func TestProjectGetUnknownReturnsNotFound(t *testing.T) {
	fixture := setupAdminAPI(t)
	doJSONRequest(t, fixture.mux, http.MethodGet, "/admin/api/projects/"+uuid.NewString(), nil, http.StatusNotFound)
}

func TestProjectCreateMissingNameRejected(t *testing.T) {
	fixture := setupAdminAPI(t)
	doJSONRequest(t, fixture.mux, http.MethodPost, "/admin/api/projects", map[string]any{
		"slug": "firefox",
	}, http.StatusBadRequest)
}

func TestEnableLocaleForProject(t *testing.T) {
	fixture := setupAdminAPI(t)

	doJSONRequest(t, fixture.mux, http.MethodPost, "/admin/api/locales", map[string]any{
		"code":         "sl",
		"name":         "Slovenian",
		"cldr_plurals": []int{1, 2, 3, 5},
	}, http.StatusCreated)

	created := doJSONRequest(t, fixture.mux, http.MethodPost, "/admin/api/projects", map[string]any{
		"name": "Firefox",
		"slug": "firefox",
	}, http.StatusCreated)
	var project struct {
		ID uuid.UUID `json:"id"`
	}
	decodeJSONBody(t, created, &project)

	enabled := doJSONRequest(t, fixture.mux, http.MethodPost, "/admin/api/projects/"+project.ID.String()+"/locales", map[string]any{
		"locale": "sl",
	}, http.StatusCreated)
	var pair struct {
		ID       uuid.UUID `json:"id"`
		Readonly bool      `json:"readonly"`
	}
	decodeJSONBody(t, enabled, &pair)
	if pair.Readonly {
		t.Fatal("expected pair to default to writable")
	}

	doJSONRequest(t, fixture.mux, http.MethodPost, "/admin/api/projects/"+project.ID.String()+"/locales", map[string]any{
		"locale": "sl",
	}, http.StatusConflict)

	doJSONRequest(t, fixture.mux, http.MethodPut, "/admin/api/project-locales/"+pair.ID.String()+"/readonly", map[string]any{
		"readonly": true,
	}, http.StatusOK)
}

func TestPermissionCheckerOnContextBlocksWrites(t *testing.T) {
	fixture := setupAdminAPI(t)

	body, err := json.Marshal(map[string]any{"name": "Firefox", "slug": "firefox"})
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/admin/api/projects", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(access.WithPermissions(req.Context(), access.ProjectsRead))

	recorder := httptest.NewRecorder()
	fixture.mux.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d (body %s)", recorder.Code, recorder.Body.String())
	}
}

func TestPermissionsMatrixFormPost(t *testing.T) {
	fixture := setupAdminAPI(t)
	ctx := context.Background()

	locale, err := fixture.catalog.CreateLocale(ctx, catalog.CreateLocaleRequest{Code: "sl", Name: "Slovenian"})
	if err != nil {
		t.Fatalf("create locale: %v", err)
	}
	project, err := fixture.catalog.CreateProject(ctx, catalog.CreateProjectRequest{Name: "Firefox", Slug: "firefox"})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	pair, err := fixture.catalog.EnableLocale(ctx, catalog.EnableLocaleRequest{ProjectID: project.ID, Locale: "sl"})
	if err != nil {
		t.Fatalf("enable locale: %v", err)
	}

	manager, err := fixture.team.AddContributor(ctx, team.AddContributorRequest{Email: "manager@example.com", Name: "Matjaz"})
	if err != nil {
		t.Fatalf("add manager: %v", err)
	}
	translator, err := fixture.team.AddContributor(ctx, team.AddContributorRequest{Email: "translator@example.com", Name: "Vesna"})
	if err != nil {
		t.Fatalf("add translator: %v", err)
	}

	form := url.Values{}
	form.Set("csrf_token", fixture.csrf.Token("test-session"))
	form.Set("performed_by", manager.ID.String())
	form.Add("managers", manager.ID.String())
	form.Add("translators", translator.ID.String())
	form.Set("has_custom_translators["+pair.ID.String()+"]", "on")
	form.Add("project_translators["+pair.ID.String()+"]", translator.ID.String())

	path := "/admin/api/teams/" + locale.ID.String() + "/permissions"
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Session-ID", "test-session")
	req.Header.Set("Referer", "http://example.com/teams/sl")

	recorder := httptest.NewRecorder()
	fixture.mux.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %s)", recorder.Code, recorder.Body.String())
	}

	matrix, err := fixture.access.Matrix(ctx, locale.ID)
	if err != nil {
		t.Fatalf("matrix: %v", err)
	}
	if len(matrix.Managers) != 1 || matrix.Managers[0] != manager.ID {
		t.Fatalf("expected manager %s, got %+v", manager.ID, matrix.Managers)
	}
	if len(matrix.Translators) != 1 || matrix.Translators[0] != translator.ID {
		t.Fatalf("expected translator %s, got %+v", translator.ID, matrix.Translators)
	}
	if len(matrix.Projects) != 1 || !matrix.Projects[0].HasCustomTranslators {
		t.Fatalf("expected custom translator set on pair, got %+v", matrix.Projects)
	}
}

func TestPermissionsFormPostRejectsBadCSRF(t *testing.T) {
	fixture := setupAdminAPI(t)
	ctx := context.Background()

	locale, err := fixture.catalog.CreateLocale(ctx, catalog.CreateLocaleRequest{Code: "sl", Name: "Slovenian"})
	if err != nil {
		t.Fatalf("create locale: %v", err)
	}
	manager, err := fixture.team.AddContributor(ctx, team.AddContributorRequest{Email: "manager@example.com"})
	if err != nil {
		t.Fatalf("add manager: %v", err)
	}

	form := url.Values{}
	form.Set("csrf_token", "1234.bogus")
	form.Set("performed_by", manager.ID.String())

	path := "/admin/api/teams/" + locale.ID.String() + "/permissions"
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	recorder := httptest.NewRecorder()
	fixture.mux.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d (body %s)", recorder.Code, recorder.Body.String())
	}
}

func TestPermissionsFormPostRejectsCrossOrigin(t *testing.T) {
	fixture := setupAdminAPI(t)
	ctx := context.Background()

	locale, err := fixture.catalog.CreateLocale(ctx, catalog.CreateLocaleRequest{Code: "sl", Name: "Slovenian"})
	if err != nil {
		t.Fatalf("create locale: %v", err)
	}

	form := url.Values{}
	form.Set("csrf_token", fixture.csrf.Token("test-session"))

	path := "/admin/api/teams/" + locale.ID.String() + "/permissions"
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Session-ID", "test-session")
	req.Header.Set("Origin", "http://attacker.example")

	recorder := httptest.NewRecorder()
	fixture.mux.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d (body %s)", recorder.Code, recorder.Body.String())
	}
}

func TestPermissionsFormRendersCSRFToken(t *testing.T) {
	fixture := setupAdminAPI(t)
	ctx := context.Background()

	locale, err := fixture.catalog.CreateLocale(ctx, catalog.CreateLocaleRequest{Code: "sl", Name: "Slovenian"})
	if err != nil {
		t.Fatalf("create locale: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/api/teams/"+locale.ID.String()+"/permissions/form", nil)
	recorder := httptest.NewRecorder()
	fixture.mux.ServeHTTP(recorder, req)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %s)", recorder.Code, recorder.Body.String())
	}
	body := recorder.Body.String()
	if !strings.Contains(body, `name="csrf_token"`) {
		t.Fatalf("expected csrf token input in form, got %s", body)
	}
	if !strings.Contains(body, "Slovenian") {
		t.Fatalf("expected locale name in form, got %s", body)
	}
}

func TestWidgetDefinitionAndInstanceFlow(t *testing.T) {
	fixture := setupAdminAPI(t)

	registered := doJSONRequest(t, fixture.mux, http.MethodPost, "/admin/api/widgets/definitions", map[string]any{
		"name": "progress_chart",
		"schema": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"show_percent": map[string]any{"type": "boolean"},
			},
		},
		"defaults": map[string]any{"show_percent": true},
	}, http.StatusCreated)

	var definition struct {
		ID uuid.UUID `json:"id"`
	}
	decodeJSONBody(t, registered, &definition)

	created := doJSONRequest(t, fixture.mux, http.MethodPost, "/admin/api/widgets/instances", map[string]any{
		"definition_id": definition.ID,
		"area_code":     "project_row",
		"position":      1,
	}, http.StatusCreated)
	var instance struct {
		ID            uuid.UUID      `json:"id"`
		Configuration map[string]any `json:"configuration"`
	}
	decodeJSONBody(t, created, &instance)
	if instance.Configuration["show_percent"] != true {
		t.Fatalf("expected defaults merged into configuration, got %+v", instance.Configuration)
	}

	doJSONRequest(t, fixture.mux, http.MethodPost, "/admin/api/widgets/instances", map[string]any{
		"definition_id": definition.ID,
		"area_code":     "project_row",
		"configuration": map[string]any{"show_percent": "yes"},
	}, http.StatusUnprocessableEntity)

	area := doJSONRequest(t, fixture.mux, http.MethodGet, "/admin/api/widgets/areas/project_row/instances", nil, http.StatusOK)
	var placed []map[string]any
	decodeJSONBody(t, area, &placed)
	if len(placed) != 1 {
		t.Fatalf("expected 1 placed widget, got %d", len(placed))
	}

	doJSONRequest(t, fixture.mux, http.MethodDelete, "/admin/api/widgets/instances/"+instance.ID.String(), nil, http.StatusNoContent)
	doJSONRequest(t, fixture.mux, http.MethodGet, "/admin/api/widgets/instances/"+instance.ID.String(), nil, http.StatusNotFound)
}

func TestStatsAndDashboardEndpoints(t *testing.T) {
	fixture := setupAdminAPI(t)
	ctx := context.Background()

	locale, err := fixture.catalog.CreateLocale(ctx, catalog.CreateLocaleRequest{Code: "sl", Name: "Slovenian"})
	if err != nil {
		t.Fatalf("create locale: %v", err)
	}
	project, err := fixture.catalog.CreateProject(ctx, catalog.CreateProjectRequest{
		Name:       "Firefox",
		Slug:       "firefox",
		Visibility: "public",
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	if _, err := fixture.catalog.EnableLocale(ctx, catalog.EnableLocaleRequest{ProjectID: project.ID, Locale: "sl"}); err != nil {
		t.Fatalf("enable locale: %v", err)
	}

	doJSONRequest(t, fixture.mux, http.MethodPut, "/admin/api/stats", map[string]any{
		"scope": map[string]any{
			"kind":       "project_locale",
			"project_id": project.ID,
			"locale_id":  locale.ID,
		},
		"snapshot": map[string]any{
			"total_strings":    100,
			"approved_strings": 75,
		},
	}, http.StatusOK)

	chartPath := "/admin/api/stats/chart?kind=project_locale&project_id=" + project.ID.String() + "&locale_id=" + locale.ID.String()
	charted := doJSONRequest(t, fixture.mux, http.MethodGet, chartPath, nil, http.StatusOK)
	var chart struct {
		CompletionPercent int `json:"completion_percent"`
	}
	decodeJSONBody(t, charted, &chart)
	if chart.CompletionPercent != 75 {
		t.Fatalf("expected 75%% completion, got %d", chart.CompletionPercent)
	}

	doJSONRequest(t, fixture.mux, http.MethodPost, "/admin/api/activity", map[string]any{
		"project_id":  project.ID,
		"locale_id":   locale.ID,
		"verb":        "approved",
		"occurred_at": time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}, http.StatusCreated)

	rowsResp := doJSONRequest(t, fixture.mux, http.MethodGet, "/admin/api/dashboard/projects", nil, http.StatusOK)
	var rows []struct {
		Slug string `json:"slug"`
		URL  string `json:"url"`
	}
	decodeJSONBody(t, rowsResp, &rows)
	if len(rows) != 1 || rows[0].Slug != "firefox" {
		t.Fatalf("expected firefox dashboard row, got %+v", rows)
	}

	pageResp := doJSONRequest(t, fixture.mux, http.MethodGet, "/admin/api/dashboard/projects/page", nil, http.StatusOK)
	if !strings.Contains(pageResp.Body.String(), "Firefox") {
		t.Fatalf("expected rendered project table, got %s", pageResp.Body.String())
	}

	doJSONRequest(t, fixture.mux, http.MethodGet, "/admin/api/dashboard/teams/sl", nil, http.StatusOK)
	doJSONRequest(t, fixture.mux, http.MethodGet, "/admin/api/dashboard/overview", nil, http.StatusOK)
}
