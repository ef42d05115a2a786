package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

var ErrAdvancedCacheRequiresEnabledCache = errors.New("l10n config: advanced cache feature requires cache to be enabled")
var ErrManifestFeatureRequired = errors.New("l10n config: manifest feature must be enabled to configure manifests")
var ErrManifestDirRequired = errors.New("l10n config: manifest directory is required when manifests are enabled")
var ErrCSRFSecretRequired = errors.New("l10n config: csrf secret is required when the admin API is enabled")
var ErrLoggingProviderRequired = errors.New("l10n config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("l10n config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("l10n config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("l10n config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the l10n module.
// Fields intentionally use simple types so host applications can extend them
// later.
type Config struct {
	Enabled       bool
	DefaultLocale string
	Storage       StorageConfig
	Cache         CacheConfig
	Dashboard     DashboardConfig
	Widgets       WidgetConfig
	Features      Features
	Commands      CommandsConfig
	Manifest      ManifestConfig
	HTTP          HTTPConfig
	Activity      ActivityConfig
	Logging       LoggingConfig
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// DashboardConfig captures routing configuration for dashboard URL building.
type DashboardConfig struct {
	RouteConfig *urlkit.Config
	URLKit      URLKitBuilderConfig
}

// URLKitBuilderConfig configures the go-urlkit based URL builder.
type URLKitBuilderConfig struct {
	Group              string
	ProjectRoute       string
	TeamRoute          string
	ProjectLocaleRoute string
	SlugParam          string
	LocaleParam        string
}

// Features toggles module functionality.
type Features struct {
	Widgets       bool
	Manifest      bool
	AdvancedCache bool
	Activity      bool
	Logger        bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// WidgetConfig controls registry bootstrapping.
type WidgetConfig struct {
	Definitions []WidgetDefinitionConfig
}

// WidgetDefinitionConfig mirrors the minimal RegisterDefinitionInput
// requirements.
type WidgetDefinitionConfig struct {
	Name        string
	Description string
	Schema      map[string]any
	Defaults    map[string]any
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled bool
	Timeout time.Duration
}

// ManifestConfig captures filesystem behaviour for project manifest imports.
type ManifestConfig struct {
	Enabled   bool
	Dir       string
	Pattern   string
	Recursive bool
	DryRun    bool
}

// HTTPConfig captures settings for the admin API surface.
type HTTPConfig struct {
	Enabled    bool
	BasePath   string
	CSRFSecret string
}

// ActivityConfig controls event emission.
type ActivityConfig struct {
	Channel string
}

// DefaultConfig returns opinionated defaults for a fresh deployment.
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		DefaultLocale: "en",
		Storage: StorageConfig{
			Provider: "bun",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Dashboard: DashboardConfig{},
		Widgets:   WidgetConfig{},
		Features:  Features{},
		Commands: CommandsConfig{
			Timeout: 30 * time.Second,
		},
		Manifest: ManifestConfig{
			Dir:       "manifests",
			Pattern:   "*.md",
			Recursive: true,
		},
		HTTP: HTTPConfig{
			BasePath: "/admin",
		},
		Activity: ActivityConfig{
			Channel: "l10n",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Features.AdvancedCache && !cfg.Cache.Enabled {
		return ErrAdvancedCacheRequiresEnabledCache
	}
	if cfg.Manifest.Enabled {
		if !cfg.Features.Manifest {
			return ErrManifestFeatureRequired
		}
		if strings.TrimSpace(cfg.Manifest.Dir) == "" {
			return ErrManifestDirRequired
		}
	}
	if cfg.HTTP.Enabled && strings.TrimSpace(cfg.HTTP.CSRFSecret) == "" {
		return ErrCSRFSecretRequired
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
