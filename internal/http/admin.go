package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-l10n/internal/access"
	"github.com/goliatone/go-l10n/internal/catalog"
	"github.com/goliatone/go-l10n/internal/dashboard"
	"github.com/goliatone/go-l10n/internal/progress"
	"github.com/goliatone/go-l10n/internal/team"
	"github.com/goliatone/go-l10n/internal/widgets"
	"github.com/goliatone/go-l10n/pkg/interfaces"
)

// AdminAPI registers admin endpoints for projects, locales, teams,
// permissions, progress stats, widgets, and dashboard view models.
type AdminAPI struct {
	basePath  string
	catalog   catalog.Service
	team      team.Service
	progress  progress.Service
	access    access.Service
	widgets   widgets.Service
	dashboard dashboard.Service
	renderer  interfaces.TemplateRenderer
	csrf      *CSRFProvider
}

// AdminOption mutates the AdminAPI configuration.
type AdminOption func(*AdminAPI)

// NewAdminAPI constructs an AdminAPI instance.
func NewAdminAPI(opts ...AdminOption) *AdminAPI {
	api := &AdminAPI{
		basePath: "/admin/api",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/admin/api").
func WithBasePath(path string) AdminOption {
	return func(api *AdminAPI) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithCatalogService wires the project and locale catalog service.
func WithCatalogService(service catalog.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.catalog = service
		}
	}
}

// WithTeamService wires the contributor and membership service.
func WithTeamService(service team.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.team = service
		}
	}
}

// WithProgressService wires the stats and activity service.
func WithProgressService(service progress.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.progress = service
		}
	}
}

// WithAccessService wires the permission matrix service.
func WithAccessService(service access.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.access = service
		}
	}
}

// WithWidgetService wires the widget definition and instance service.
func WithWidgetService(service widgets.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.widgets = service
		}
	}
}

// WithDashboardService wires the dashboard view model service.
func WithDashboardService(service dashboard.Service) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.dashboard = service
		}
	}
}

// WithRenderer wires the template renderer used by HTML endpoints.
func WithRenderer(renderer interfaces.TemplateRenderer) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.renderer = renderer
		}
	}
}

// WithCSRF wires the CSRF provider guarding form POST endpoints.
func WithCSRF(provider *CSRFProvider) AdminOption {
	return func(api *AdminAPI) {
		if api != nil {
			api.csrf = provider
		}
	}
}

// Register attaches the admin endpoints to the provided mux.
func (api *AdminAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: admin api is nil")
	}

	base := joinPath(api.basePath, "")

	api.registerProjectRoutes(mux, base)
	api.registerLocaleRoutes(mux, base)
	api.registerTeamRoutes(mux, base)
	api.registerPermissionRoutes(mux, base)
	api.registerProgressRoutes(mux, base)
	api.registerWidgetRoutes(mux, base)
	api.registerDashboardRoutes(mux, base)

	return nil
}
