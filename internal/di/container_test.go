package di_test

import (
	"context"
	"testing"

	catalogmodel "github.com/goliatone/go-l10n/catalog"
	"github.com/goliatone/go-l10n/internal/catalog"
	"github.com/goliatone/go-l10n/internal/di"
	"github.com/goliatone/go-l10n/internal/runtimeconfig"
	"github.com/goliatone/go-l10n/pkg/activity"
	"github.com/goliatone/go-l10n/pkg/testsupport"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func TestNewContainerDefaults(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	if container.CatalogService() == nil {
		t.Fatal("expected catalog service")
	}
	if container.TeamService() == nil {
		t.Fatal("expected team service")
	}
	if container.AccessService() == nil {
		t.Fatal("expected access service")
	}
	if container.ProgressService() == nil {
		t.Fatal("expected progress service")
	}
	if container.DashboardService() == nil {
		t.Fatal("expected dashboard service")
	}
	if container.TemplateRenderer() == nil {
		t.Fatal("expected template renderer")
	}
}

func TestNewContainerSeedsDefaultLocale(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.DefaultLocale = "sl"

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	locale, err := container.CatalogService().GetLocaleByCode(context.Background(), "sl")
	if err != nil {
		t.Fatalf("default locale lookup failed: %v", err)
	}
	if locale.Code != "sl" {
		t.Fatalf("expected seeded locale sl, got %q", locale.Code)
	}
}

func TestNewContainerValidatesConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Features.AdvancedCache = true

	if _, err := di.NewContainer(cfg); err == nil {
		t.Fatal("expected config validation error")
	}
}

func TestWidgetServiceFeatureGate(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.WidgetService() != nil {
		t.Fatal("widget service should be nil when the feature is off")
	}

	cfg.Features.Widgets = true
	container, err = di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	svc := container.WidgetService()
	if svc == nil {
		t.Fatal("expected widget service when the feature is on")
	}

	defs, err := svc.ListDefinitions(context.Background())
	if err != nil {
		t.Fatalf("ListDefinitions failed: %v", err)
	}

	names := map[string]bool{}
	for _, def := range defs {
		names[def.Name] = true
	}
	for _, want := range []string{"progress_chart", "deadline", "priority", "latest_activity", "contributor_list"} {
		if !names[want] {
			t.Fatalf("builtin widget definition %q not synced, got %v", want, names)
		}
	}
}

func TestWidgetConfigDefinitionsAreSynced(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Widgets = true
	cfg.Widgets.Definitions = []runtimeconfig.WidgetDefinitionConfig{
		{
			Name:        "review_queue",
			Description: "Strings waiting for review",
			Schema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"limit": map[string]any{"type": "integer"},
				},
			},
			Defaults: map[string]any{"limit": 5},
		},
	}

	container, err := di.NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	def, err := container.WidgetService().GetDefinitionByName(context.Background(), "review_queue")
	if err != nil {
		t.Fatalf("configured definition missing: %v", err)
	}
	if def.Defaults["limit"] != 5 {
		t.Fatalf("expected configured defaults to survive sync, got %v", def.Defaults)
	}
}

func TestActivityHooksReceiveCatalogEvents(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Activity = true

	capture := &activity.CaptureHook{}
	container, err := di.NewContainer(cfg, di.WithActivityHooks(capture))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	_, err = container.CatalogService().CreateProject(context.Background(), catalog.CreateProjectRequest{
		Name: "Browser",
		Slug: "browser",
	})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	if len(capture.Events) == 0 {
		t.Fatal("expected catalog mutation to emit an activity event")
	}
	if capture.Events[0].Verb != "create" {
		t.Fatalf("expected create verb, got %q", capture.Events[0].Verb)
	}
	if capture.Events[0].Channel != cfg.Activity.Channel {
		t.Fatalf("expected channel %q, got %q", cfg.Activity.Channel, capture.Events[0].Channel)
	}
}

func TestWithSQLDBSelectsDialectByDriver(t *testing.T) {
	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	sqlDB.SetMaxOpenConns(1)

	schema := bun.NewDB(sqlDB, sqlitedialect.New())
	for _, model := range []any{
		(*catalogmodel.Locale)(nil),
		(*catalogmodel.Project)(nil),
		(*catalogmodel.ProjectLocale)(nil),
	} {
		if _, err := schema.NewCreateTable().Model(model).IfNotExists().Exec(context.Background()); err != nil {
			t.Fatalf("create table %T: %v", model, err)
		}
	}

	cfg := runtimeconfig.DefaultConfig()
	container, err := di.NewContainer(cfg, di.WithSQLDB(sqlDB, "sqlite3"))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	locale, err := container.CatalogService().CreateLocale(context.Background(), catalog.CreateLocaleRequest{
		Code: "pt-BR",
		Name: "Portuguese (Brazil)",
	})
	if err != nil {
		t.Fatalf("CreateLocale failed: %v", err)
	}

	count, err := schema.NewSelect().Model((*catalogmodel.Locale)(nil)).Where("id = ?", locale.ID).Count(context.Background())
	if err != nil {
		t.Fatalf("count locales: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected locale persisted through provided handle, got %d rows", count)
	}
}

func TestWithSQLDBPostgresDriver(t *testing.T) {
	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	// Construction does not touch the database, so a placeholder handle is
	// enough to verify the postgres driver names resolve.
	cfg := runtimeconfig.DefaultConfig()
	container, err := di.NewContainer(cfg, di.WithSQLDB(sqlDB, "pgx"))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.CatalogService() == nil {
		t.Fatal("expected catalog service")
	}
}

func TestServiceOverridesWin(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	custom := catalog.NewService(
		catalog.NewMemoryProjectRepository(),
		catalog.NewMemoryLocaleRepository(),
		catalog.NewMemoryProjectLocaleRepository(),
	)

	container, err := di.NewContainer(cfg, di.WithCatalogService(custom))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	if container.CatalogService() == nil {
		t.Fatal("expected catalog service")
	}
	// The override has no seeded default locale, distinguishing it from the
	// container-built service.
	if _, err := container.CatalogService().GetLocaleByCode(context.Background(), cfg.DefaultLocale); err == nil {
		t.Fatal("expected override service to be used")
	}
}
