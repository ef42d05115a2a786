package bootstrap

import (
	"fmt"
	"strings"

	l10n "github.com/goliatone/go-l10n"
	"github.com/goliatone/go-l10n/internal/di"
	"github.com/goliatone/go-l10n/internal/logging"
	"github.com/goliatone/go-l10n/internal/manifest"
	"github.com/goliatone/go-l10n/pkg/interfaces"
)

// Options captures configuration for manifest CLI bootstraps.
type Options struct {
	ManifestDir    string
	Pattern        string
	Recursive      bool
	DefaultLocale  string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the l10n module and the configured importer/logger.
type Module struct {
	Module   *l10n.Module
	Importer *manifest.Importer
	Logger   interfaces.Logger
}

// BuildModule constructs an l10n module configured for manifest operations.
func BuildModule(opts Options) (*Module, error) {
	cfg := l10n.DefaultConfig()
	cfg.Features.Manifest = true
	cfg.Manifest.Enabled = true
	cfg.Manifest.Dir = strings.TrimSpace(opts.ManifestDir)
	if cfg.Manifest.Dir == "" {
		cfg.Manifest.Dir = "manifests"
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Manifest.Pattern = trimmed
	}
	cfg.Manifest.Recursive = opts.Recursive

	if locale := strings.TrimSpace(opts.DefaultLocale); locale != "" {
		cfg.DefaultLocale = locale
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := l10n.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise l10n module: %w", err)
	}

	importer := module.Manifest()
	if importer == nil {
		return nil, fmt.Errorf("manifest importer not configured; ensure Features.Manifest is enabled")
	}

	logger := logging.ManifestLogger(module.LoggerProvider())

	return &Module{
		Module:   module,
		Importer: importer,
		Logger:   logger,
	}, nil
}

// SplitCodes parses a comma separated locale code list into a trimmed slice.
func SplitCodes(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	codes := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			codes = append(codes, trimmed)
		}
	}
	return codes
}
