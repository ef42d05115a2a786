package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-l10n/cmd/manifest/internal/bootstrap"
	"github.com/goliatone/go-l10n/internal/catalog"
	"github.com/goliatone/go-l10n/internal/manifest"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runSync(os.Args[1:]); err != nil {
		log.Fatalf("manifest sync: %v", err)
	}
}

func runSync(args []string) error {
	fs := flag.NewFlagSet("manifest-sync", flag.ExitOnError)
	manifestDir := fs.String("manifest-dir", "manifests", "Path to the project manifest root")
	pattern := fs.String("pattern", "*.md", "Glob pattern applied when discovering manifest files")
	recursive := fs.Bool("recursive", true, "Traverse sub-directories when discovering manifests")
	locales := fs.String("locales", "", "Comma separated locale codes to register before syncing")
	defaultLocale := fs.String("default-locale", "en", "Default locale seeded into the catalog")
	dryRun := fs.Bool("dry-run", false, "Preview changes without touching the catalog")
	asJSON := fs.Bool("json", false, "Print the full sync result as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}

	module, err := moduleBuilder(bootstrap.Options{
		ManifestDir:   *manifestDir,
		Pattern:       *pattern,
		Recursive:     *recursive,
		DefaultLocale: *defaultLocale,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Importer == nil {
		return fmt.Errorf("manifest importer not configured; ensure Features.Manifest is enabled")
	}

	ctx := context.Background()

	if err := registerLocales(ctx, module.Module.Catalog(), bootstrap.SplitCodes(*locales)); err != nil {
		return err
	}

	loader := manifest.NewLoader(os.DirFS(*manifestDir), manifest.LoaderConfig{
		Pattern:   *pattern,
		Recursive: *recursive,
	})
	manifests, err := loader.LoadDirectory(ctx, ".")
	if err != nil {
		return fmt.Errorf("load manifests: %w", err)
	}

	result, err := module.Importer.Sync(ctx, manifests, manifest.SyncOptions{DryRun: *dryRun})
	if err != nil {
		return fmt.Errorf("execute sync: %w", err)
	}

	if *asJSON {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(encoded))
		return nil
	}

	fmt.Fprintf(os.Stdout, "projects: %d created, %d updated, %d skipped\n", result.Created, result.Updated, result.Skipped)
	fmt.Fprintf(os.Stdout, "locales: %d enabled, %d readonly changes\n", result.LocalesEnabled, result.ReadonlyUpdated)
	for _, message := range result.Errors {
		fmt.Fprintf(os.Stderr, "error: %s\n", message)
	}
	if len(result.Errors) > 0 {
		return fmt.Errorf("sync finished with %d errors", len(result.Errors))
	}
	return nil
}

// registerLocales ensures every requested code exists before manifests
// reference it. Codes double as display names; operators rename them later.
func registerLocales(ctx context.Context, svc catalog.Service, codes []string) error {
	for _, code := range codes {
		if _, err := svc.GetLocaleByCode(ctx, code); err == nil {
			continue
		} else {
			var notFound *catalog.NotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("lookup locale %s: %w", code, err)
			}
		}
		if _, err := svc.CreateLocale(ctx, catalog.CreateLocaleRequest{Code: code, Name: code}); err != nil {
			return fmt.Errorf("register locale %s: %w", code, err)
		}
	}
	return nil
}
