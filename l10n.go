// Package l10n is a localization management module: projects, locale teams,
// translator permissions, and progress dashboards behind a single runtime
// façade. Hosts construct a Module from a Config and mount the admin surface
// or drive the services directly.
package l10n

import (
	"errors"
	nethttp "net/http"

	"github.com/goliatone/go-l10n/internal/access"
	"github.com/goliatone/go-l10n/internal/catalog"
	"github.com/goliatone/go-l10n/internal/dashboard"
	"github.com/goliatone/go-l10n/internal/di"
	l10nhttp "github.com/goliatone/go-l10n/internal/http"
	"github.com/goliatone/go-l10n/internal/manifest"
	"github.com/goliatone/go-l10n/internal/progress"
	"github.com/goliatone/go-l10n/internal/team"
	"github.com/goliatone/go-l10n/internal/widgets"
	"github.com/goliatone/go-l10n/pkg/interfaces"
)

// ErrAdminDisabled is returned by RegisterAdmin when HTTP.Enabled is false.
var ErrAdminDisabled = errors.New("l10n: admin http surface is disabled")

// CatalogService exports the project and locale catalog contract.
type CatalogService = catalog.Service

// TeamService exports the contributor and membership contract.
type TeamService = team.Service

// AccessService exports the permission matrix contract.
type AccessService = access.Service

// ProgressService exports the stats and activity contract.
type ProgressService = progress.Service

// WidgetService exports the dashboard widget contract.
type WidgetService = widgets.Service

// DashboardService exports the view-model assembly contract.
type DashboardService = dashboard.Service

// ManifestImporter exports the project manifest importer.
type ManifestImporter = manifest.Importer

// Module represents the top level localization runtime façade.
type Module struct {
	container *di.Container
}

// New constructs an l10n module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Catalog returns the configured project and locale catalog service.
func (m *Module) Catalog() CatalogService {
	return m.container.CatalogService()
}

// Team returns the configured contributor and membership service.
func (m *Module) Team() TeamService {
	return m.container.TeamService()
}

// Access returns the configured permission service.
func (m *Module) Access() AccessService {
	return m.container.AccessService()
}

// Progress returns the configured progress service.
func (m *Module) Progress() ProgressService {
	return m.container.ProgressService()
}

// Widgets returns the widget service; nil when Features.Widgets is off.
func (m *Module) Widgets() WidgetService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.WidgetService()
}

// Dashboard returns the configured dashboard view-model service.
func (m *Module) Dashboard() DashboardService {
	return m.container.DashboardService()
}

// Manifest returns the manifest importer; nil unless Manifest.Enabled.
func (m *Module) Manifest() *ManifestImporter {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ManifestImporter()
}

// TemplateRenderer returns the renderer used for server-rendered pages.
func (m *Module) TemplateRenderer() interfaces.TemplateRenderer {
	return m.container.TemplateRenderer()
}

// LoggerProvider returns the resolved logger provider; may be nil when the
// logging feature is disabled.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.LoggerProvider()
}

// RegisterAdmin mounts the admin API and server-rendered pages on the mux.
// It fails when HTTP.Enabled is false or the CSRF secret is missing.
func (m *Module) RegisterAdmin(mux *nethttp.ServeMux) error {
	cfg := m.container.Config
	if !cfg.HTTP.Enabled {
		return ErrAdminDisabled
	}

	csrf, err := l10nhttp.NewCSRFProvider(cfg.HTTP.CSRFSecret)
	if err != nil {
		return err
	}

	api := l10nhttp.NewAdminAPI(
		l10nhttp.WithBasePath(cfg.HTTP.BasePath),
		l10nhttp.WithCatalogService(m.container.CatalogService()),
		l10nhttp.WithTeamService(m.container.TeamService()),
		l10nhttp.WithAccessService(m.container.AccessService()),
		l10nhttp.WithProgressService(m.container.ProgressService()),
		l10nhttp.WithWidgetService(m.container.WidgetService()),
		l10nhttp.WithDashboardService(m.container.DashboardService()),
		l10nhttp.WithRenderer(m.container.TemplateRenderer()),
		l10nhttp.WithCSRF(csrf),
	)
	return api.Register(mux)
}
