package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-l10n/pkg/interfaces"
)

const (
	rootModule      = "l10n"
	catalogModule   = "l10n.catalog"
	teamModule      = "l10n.team"
	progressModule  = "l10n.progress"
	accessModule    = "l10n.access"
	dashboardModule = "l10n.dashboard"
	widgetsModule   = "l10n.widgets"
	httpModule      = "l10n.http"
	manifestModule  = "l10n.manifest"
)

const (
	fieldManifestPath   = "manifest_path"
	fieldManifestLocale = "locale"
	fieldManifestAction = "sync_action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// CatalogLogger returns the logger namespace reserved for the project and
// locale catalog.
func CatalogLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, catalogModule)
}

// TeamLogger returns the logger namespace reserved for contributor and
// membership services.
func TeamLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, teamModule)
}

// ProgressLogger returns the logger namespace reserved for progress tracking.
func ProgressLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, progressModule)
}

// AccessLogger returns the logger namespace reserved for permission checks.
func AccessLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, accessModule)
}

// DashboardLogger returns the logger namespace reserved for dashboard
// assembly.
func DashboardLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, dashboardModule)
}

// WidgetsLogger returns the logger namespace reserved for widget services.
func WidgetsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, widgetsModule)
}

// HTTPLogger returns the logger namespace reserved for the admin API.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// ManifestLogger returns the logger namespace reserved for manifest imports.
func ManifestLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, manifestModule)
}

// WithManifestContext enriches the provided logger with common manifest fields
// such as file path, locale, and sync action. Empty values are ignored.
func WithManifestContext(logger interfaces.Logger, path, locale, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldManifestPath] = trimmed
	}
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		fields[fieldManifestLocale] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldManifestAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry. It satisfies the Logger
// contract so services can safely operate when logging is disabled.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
