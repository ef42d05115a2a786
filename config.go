package l10n

import "github.com/goliatone/go-l10n/internal/runtimeconfig"

var (
	ErrAdvancedCacheRequiresEnabledCache = runtimeconfig.ErrAdvancedCacheRequiresEnabledCache
	ErrManifestFeatureRequired           = runtimeconfig.ErrManifestFeatureRequired
	ErrManifestDirRequired               = runtimeconfig.ErrManifestDirRequired
	ErrCSRFSecretRequired                = runtimeconfig.ErrCSRFSecretRequired
	ErrLoggingProviderRequired           = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown            = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid               = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid              = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config                 = runtimeconfig.Config
	StorageConfig          = runtimeconfig.StorageConfig
	CacheConfig            = runtimeconfig.CacheConfig
	DashboardConfig        = runtimeconfig.DashboardConfig
	URLKitBuilderConfig    = runtimeconfig.URLKitBuilderConfig
	Features               = runtimeconfig.Features
	LoggingConfig          = runtimeconfig.LoggingConfig
	WidgetConfig           = runtimeconfig.WidgetConfig
	WidgetDefinitionConfig = runtimeconfig.WidgetDefinitionConfig
	CommandsConfig         = runtimeconfig.CommandsConfig
	ManifestConfig         = runtimeconfig.ManifestConfig
	HTTPConfig             = runtimeconfig.HTTPConfig
	ActivityConfig         = runtimeconfig.ActivityConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
