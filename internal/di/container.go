// Package di wires the l10n module services together. Defaults use
// in-memory repositories; hosts swap in bun-backed storage by providing a
// database handle.
package di

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/goliatone/go-l10n/internal/access"
	"github.com/goliatone/go-l10n/internal/catalog"
	"github.com/goliatone/go-l10n/internal/dashboard"
	"github.com/goliatone/go-l10n/internal/identity"
	"github.com/goliatone/go-l10n/internal/logging"
	"github.com/goliatone/go-l10n/internal/logging/console"
	"github.com/goliatone/go-l10n/internal/logging/gologger"
	"github.com/goliatone/go-l10n/internal/manifest"
	"github.com/goliatone/go-l10n/internal/progress"
	"github.com/goliatone/go-l10n/internal/render"
	"github.com/goliatone/go-l10n/internal/runtimeconfig"
	"github.com/goliatone/go-l10n/internal/team"
	"github.com/goliatone/go-l10n/internal/widgets"
	"github.com/goliatone/go-l10n/pkg/activity"
	"github.com/goliatone/go-l10n/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Container wires module dependencies.
type Container struct {
	Config runtimeconfig.Config

	template       interfaces.TemplateRenderer
	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	projectRepo       catalog.ProjectRepository
	localeRepo        catalog.LocaleRepository
	projectLocaleRepo catalog.ProjectLocaleRepository
	memoryLocaleRepo  *catalog.MemoryLocaleRepository

	contributorRepo team.ContributorRepository
	membershipRepo  team.MembershipRepository
	changeLogRepo   access.ChangeLog

	statsRepo        progress.StatsRepository
	activityLogRepo  progress.ActivityRepository
	widgetDefRepo    widgets.DefinitionRepository
	widgetInstRepo   widgets.InstanceRepository
	widgetRegistry   *widgets.Registry
	activityHooks    activity.Hooks
	activityEmitter  *activity.Emitter
	routeManager     *urlkit.RouteManager
	dashboardURLs    *dashboard.URLBuilder
	manifestImporter *manifest.Importer

	catalogSvc   catalog.Service
	teamSvc      team.Service
	accessSvc    access.Service
	progressSvc  progress.Service
	widgetSvc    widgets.Service
	dashboardSvc dashboard.Service
}

// Option mutates the container before services are finalised.
type Option func(*Container)

// WithBunDB swaps the default in-memory repositories for bun-backed ones.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithSQLDB wraps a raw database handle with the bun dialect matching the
// driver name. Postgres drivers map to pgdialect; everything else is treated
// as SQLite.
func WithSQLDB(db *sql.DB, driver string) Option {
	return func(c *Container) {
		if db == nil {
			return
		}
		switch strings.ToLower(driver) {
		case "postgres", "postgresql", "pg", "pgx":
			c.bunDB = bun.NewDB(db, pgdialect.New())
		default:
			c.bunDB = bun.NewDB(db, sqlitedialect.New())
		}
	}
}

// WithCache overrides the repository cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithTemplate overrides the default template renderer.
func WithTemplate(tr interfaces.TemplateRenderer) Option {
	return func(c *Container) {
		if tr != nil {
			c.template = tr
		}
	}
}

// WithLoggerProvider overrides the logger provider resolved from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithActivityHooks attaches hooks that receive emitted activity events.
func WithActivityHooks(hooks ...activity.Hook) Option {
	return func(c *Container) {
		for _, hook := range hooks {
			if hook != nil {
				c.activityHooks = append(c.activityHooks, hook)
			}
		}
	}
}

// WithCatalogService overrides the default catalog service binding.
func WithCatalogService(svc catalog.Service) Option {
	return func(c *Container) {
		c.catalogSvc = svc
	}
}

// WithTeamService overrides the default team service binding.
func WithTeamService(svc team.Service) Option {
	return func(c *Container) {
		c.teamSvc = svc
	}
}

// WithAccessService overrides the default access service binding.
func WithAccessService(svc access.Service) Option {
	return func(c *Container) {
		c.accessSvc = svc
	}
}

// WithProgressService overrides the default progress service binding.
func WithProgressService(svc progress.Service) Option {
	return func(c *Container) {
		c.progressSvc = svc
	}
}

// WithWidgetService overrides the default widget service binding.
func WithWidgetService(svc widgets.Service) Option {
	return func(c *Container) {
		c.widgetSvc = svc
	}
}

// WithDashboardService overrides the default dashboard service binding.
func WithDashboardService(svc dashboard.Service) Option {
	return func(c *Container) {
		c.dashboardSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	memoryLocaleRepo := catalog.NewMemoryLocaleRepository()

	c := &Container{
		Config:            cfg,
		cacheTTL:          cacheTTL,
		projectRepo:       catalog.NewMemoryProjectRepository(),
		localeRepo:        memoryLocaleRepo,
		projectLocaleRepo: catalog.NewMemoryProjectLocaleRepository(),
		memoryLocaleRepo:  memoryLocaleRepo,
		contributorRepo:   team.NewMemoryContributorRepository(),
		membershipRepo:    team.NewMemoryMembershipRepository(),
		changeLogRepo:     team.NewMemoryPermissionChangeRepository(),
		statsRepo:         progress.NewMemoryStatsRepository(),
		activityLogRepo:   progress.NewMemoryActivityRepository(),
		widgetDefRepo:     widgets.NewMemoryDefinitionRepository(),
		widgetInstRepo:    widgets.NewMemoryInstanceRepository(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureDashboardRoutes()
	c.configureActivity()
	c.seedDefaultLocale()

	if c.template == nil {
		renderer, err := render.DefaultRenderer()
		if err != nil {
			return nil, err
		}
		c.template = renderer
	}

	if c.catalogSvc == nil {
		catalogOpts := []catalog.ServiceOption{}
		if c.activityEmitter != nil {
			catalogOpts = append(catalogOpts, catalog.WithActivityEmitter(c.activityEmitter))
		}
		c.catalogSvc = catalog.NewService(c.projectRepo, c.localeRepo, c.projectLocaleRepo, catalogOpts...)
	}

	if c.teamSvc == nil {
		teamOpts := []team.ServiceOption{
			team.WithLocaleResolver(&localeCodeResolver{locales: c.localeRepo}),
		}
		if c.activityEmitter != nil {
			teamOpts = append(teamOpts, team.WithActivityEmitter(c.activityEmitter))
		}
		c.teamSvc = team.NewService(c.contributorRepo, c.membershipRepo, teamOpts...)
	}

	if c.accessSvc == nil {
		c.accessSvc = access.NewService(c.membershipRepo, c.projectLocaleRepo, c.projectRepo, c.changeLogRepo)
	}

	if c.progressSvc == nil {
		c.progressSvc = progress.NewService(c.statsRepo, c.activityLogRepo)
	}

	if c.widgetSvc == nil && c.Config.Features.Widgets {
		c.widgetSvc = widgets.NewService(c.widgetDefRepo, c.widgetInstRepo)
		if err := c.syncWidgetRegistry(); err != nil {
			return nil, err
		}
	}

	if c.dashboardSvc == nil {
		dashOpts := []dashboard.ServiceOption{}
		if c.dashboardURLs != nil {
			dashOpts = append(dashOpts, dashboard.WithURLBuilder(c.dashboardURLs))
		}
		if c.widgetSvc != nil {
			dashOpts = append(dashOpts, dashboard.WithWidgets(c.widgetSvc))
		}
		c.dashboardSvc = dashboard.NewService(c.catalogSvc, c.progressSvc, c.teamSvc, dashOpts...)
	}

	if c.Config.Manifest.Enabled {
		c.manifestImporter = manifest.NewImporter(manifest.ImporterConfig{
			Catalog: c.catalogSvc,
			Logger:  logging.ManifestLogger(c.loggerProvider),
		})
	}

	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = console.NewProvider(console.Options{})
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}

	c.projectRepo = catalog.NewBunProjectRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.localeRepo = catalog.NewBunLocaleRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.projectLocaleRepo = catalog.NewBunProjectLocaleRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)

	c.contributorRepo = team.NewBunContributorRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.membershipRepo = team.NewBunMembershipRepository(c.bunDB)
	c.changeLogRepo = team.NewBunPermissionChangeRepository(c.bunDB)

	c.statsRepo = progress.NewBunStatsRepository(c.bunDB)
	c.activityLogRepo = progress.NewBunActivityRepository(c.bunDB)

	c.widgetDefRepo = widgets.NewBunDefinitionRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.widgetInstRepo = widgets.NewBunInstanceRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)

	c.memoryLocaleRepo = nil
}

func (c *Container) configureDashboardRoutes() {
	if c.dashboardURLs != nil {
		return
	}

	dashCfg := c.Config.Dashboard
	if dashCfg.RouteConfig == nil {
		return
	}

	manager := urlkit.NewRouteManager(dashCfg.RouteConfig)
	c.routeManager = manager

	c.dashboardURLs = dashboard.NewURLBuilder(dashboard.URLBuilderOptions{
		Manager:            manager,
		Group:              strings.TrimSpace(dashCfg.URLKit.Group),
		ProjectRoute:       strings.TrimSpace(dashCfg.URLKit.ProjectRoute),
		TeamRoute:          strings.TrimSpace(dashCfg.URLKit.TeamRoute),
		ProjectLocaleRoute: strings.TrimSpace(dashCfg.URLKit.ProjectLocaleRoute),
		SlugParam:          strings.TrimSpace(dashCfg.URLKit.SlugParam),
		LocaleParam:        strings.TrimSpace(dashCfg.URLKit.LocaleParam),
	})
}

func (c *Container) configureActivity() {
	if !c.Config.Features.Activity {
		return
	}
	c.activityEmitter = activity.NewEmitter(c.activityHooks, activity.Config{
		Enabled: len(c.activityHooks) > 0,
		Channel: c.Config.Activity.Channel,
	})
}

// seedDefaultLocale guarantees the configured default locale exists in the
// in-memory repository so a fresh module can enable projects immediately.
func (c *Container) seedDefaultLocale() {
	if c.memoryLocaleRepo == nil {
		return
	}

	code := strings.ToLower(strings.TrimSpace(c.Config.DefaultLocale))
	if code == "" {
		return
	}
	if existing, err := c.memoryLocaleRepo.GetByCode(context.Background(), code); err == nil && existing != nil {
		return
	}

	_, _ = c.memoryLocaleRepo.Create(context.Background(), &catalog.Locale{
		ID:        identity.LocaleUUID(code),
		Code:      code,
		Name:      strings.ToUpper(code[:1]) + code[1:],
		Direction: "ltr",
		Script:    "Latin",
		CreatedAt: time.Now(),
	})
}

func (c *Container) syncWidgetRegistry() error {
	registry := widgets.DefaultRegistry()
	for _, def := range c.Config.Widgets.Definitions {
		registry.Register(widgets.RegisterDefinitionInput{
			Name:        def.Name,
			Description: optionalString(def.Description),
			Schema:      def.Schema,
			Defaults:    def.Defaults,
		})
	}
	c.widgetRegistry = registry
	return c.widgetSvc.SyncRegistry(context.Background(), registry)
}

// LoggerProvider exposes the resolved logger provider; may be nil when the
// logging feature is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// TemplateRenderer exposes the configured template renderer.
func (c *Container) TemplateRenderer() interfaces.TemplateRenderer {
	return c.template
}

// ActivityEmitter exposes the configured emitter; nil when activity is off.
func (c *Container) ActivityEmitter() *activity.Emitter {
	return c.activityEmitter
}

// RouteManager exposes the urlkit manager backing dashboard URLs.
func (c *Container) RouteManager() *urlkit.RouteManager {
	return c.routeManager
}

// DashboardURLs exposes the dashboard URL builder; nil without route config.
func (c *Container) DashboardURLs() *dashboard.URLBuilder {
	return c.dashboardURLs
}

// CatalogService returns the configured catalog service.
func (c *Container) CatalogService() catalog.Service {
	return c.catalogSvc
}

// TeamService returns the configured team service.
func (c *Container) TeamService() team.Service {
	return c.teamSvc
}

// AccessService returns the configured access service.
func (c *Container) AccessService() access.Service {
	return c.accessSvc
}

// ProgressService returns the configured progress service.
func (c *Container) ProgressService() progress.Service {
	return c.progressSvc
}

// WidgetService returns the widget service; nil when the feature is off.
func (c *Container) WidgetService() widgets.Service {
	return c.widgetSvc
}

// DashboardService returns the configured dashboard service.
func (c *Container) DashboardService() dashboard.Service {
	return c.dashboardSvc
}

// ManifestImporter returns the importer; nil unless manifests are enabled.
func (c *Container) ManifestImporter() *manifest.Importer {
	return c.manifestImporter
}

// WidgetRegistry returns the registry synced into the widget service.
func (c *Container) WidgetRegistry() *widgets.Registry {
	return c.widgetRegistry
}

// localeCodeResolver adapts the locale repository to the team service's
// LocaleResolver contract.
type localeCodeResolver struct {
	locales catalog.LocaleRepository
}

func (r *localeCodeResolver) LocaleCode(ctx context.Context, id uuid.UUID) (string, error) {
	locale, err := r.locales.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return locale.Code, nil
}

func optionalString(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
