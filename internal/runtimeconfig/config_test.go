package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-l10n/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
	if cfg.DefaultLocale != "en" {
		t.Fatalf("expected en default locale, got %q", cfg.DefaultLocale)
	}
	if !cfg.Cache.Enabled {
		t.Fatal("expected cache enabled by default")
	}
}

func TestValidateAdvancedCacheRequiresCache(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Features.AdvancedCache = true
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrAdvancedCacheRequiresEnabledCache) {
		t.Fatalf("expected ErrAdvancedCacheRequiresEnabledCache, got %v", err)
	}
}

func TestValidateManifestRules(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Manifest.Enabled = true
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrManifestFeatureRequired) {
		t.Fatalf("expected ErrManifestFeatureRequired, got %v", err)
	}

	cfg.Features.Manifest = true
	cfg.Manifest.Dir = "  "
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrManifestDirRequired) {
		t.Fatalf("expected ErrManifestDirRequired, got %v", err)
	}

	cfg.Manifest.Dir = "manifests"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid manifest config, got %v", err)
	}
}

func TestValidateHTTPRequiresCSRFSecret(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.HTTP.Enabled = true
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrCSRFSecretRequired) {
		t.Fatalf("expected ErrCSRFSecretRequired, got %v", err)
	}
	cfg.HTTP.CSRFSecret = "sekrit"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid http config, got %v", err)
	}
}

func TestValidateLoggingRules(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = ""
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}

	cfg.Logging.Provider = "syslog"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}

	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingLevelInvalid) {
		t.Fatalf("expected ErrLoggingLevelInvalid, got %v", err)
	}

	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}

	cfg.Logging.Format = "pretty"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid logging config, got %v", err)
	}
}
