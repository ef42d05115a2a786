package manifest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-l10n/internal/catalog"
	"github.com/goliatone/go-l10n/internal/logging"
	"github.com/goliatone/go-l10n/pkg/interfaces"
)

var ErrCatalogServiceRequired = errors.New("manifest importer: catalog service is required")

// Sync action names recorded per manifest.
const (
	ActionCreate       = "project_create"
	ActionUpdate       = "project_update"
	ActionSkip         = "project_skip"
	ActionEnableLocale = "locale_enable"
	ActionSetReadonly  = "readonly_set"
)

// Action records one applied (or planned, under dry-run) sync step.
type Action struct {
	Path   string `json:"path"`
	Slug   string `json:"slug"`
	Locale string `json:"locale,omitempty"`
	Action string `json:"action"`
}

// Result aggregates the outcome of a sync run.
type Result struct {
	Created         int      `json:"created"`
	Updated         int      `json:"updated"`
	Skipped         int      `json:"skipped"`
	LocalesEnabled  int      `json:"locales_enabled"`
	ReadonlyUpdated int      `json:"readonly_updated"`
	Actions         []Action `json:"actions,omitempty"`
	Errors          []string `json:"errors,omitempty"`
}

// SyncOptions tunes a sync run.
type SyncOptions struct {
	// DryRun records planned actions without touching the catalog.
	DryRun bool
}

// ImporterConfig carries importer dependencies.
type ImporterConfig struct {
	Catalog catalog.Service
	Logger  interfaces.Logger
}

// Importer reconciles parsed manifests against the project catalog.
type Importer struct {
	catalog catalog.Service
	logger  interfaces.Logger
}

// NewImporter builds an Importer from the supplied configuration.
func NewImporter(cfg ImporterConfig) *Importer {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{
		catalog: cfg.Catalog,
		logger:  logger,
	}
}

// Sync applies every manifest in order. Failures on one manifest are recorded
// and do not stop the remaining manifests from syncing.
func (i *Importer) Sync(ctx context.Context, manifests []*Manifest, opts SyncOptions) (*Result, error) {
	if i.catalog == nil {
		return nil, ErrCatalogServiceRequired
	}

	result := &Result{}
	for _, parsed := range manifests {
		if parsed == nil {
			continue
		}
		if err := i.syncManifest(ctx, parsed, opts, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", parsed.FilePath, err))
		}
	}
	return result, nil
}

func (i *Importer) syncManifest(ctx context.Context, parsed *Manifest, opts SyncOptions, result *Result) error {
	existing, err := i.catalog.GetProjectBySlug(ctx, parsed.Slug)
	if err != nil {
		var notFound *catalog.NotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
		existing = nil
	}

	if existing == nil {
		i.record(result, parsed, "", ActionCreate)
		result.Created++
		if opts.DryRun {
			for _, ref := range parsed.Locales {
				i.record(result, parsed, ref.Code, ActionEnableLocale)
				result.LocalesEnabled++
			}
			return nil
		}
		created, err := i.catalog.CreateProject(ctx, catalog.CreateProjectRequest{
			Name:          parsed.Name,
			Slug:          parsed.Slug,
			Info:          parsed.Info,
			Deadline:      parsed.Deadline,
			Priority:      parsed.Priority,
			Visibility:    parsed.Visibility,
			SystemProject: parsed.System,
		})
		if err != nil {
			result.Created--
			return err
		}
		existing = created
	} else if changed := i.projectDiff(existing, parsed); changed != nil {
		i.record(result, parsed, "", ActionUpdate)
		result.Updated++
		if !opts.DryRun {
			if _, err := i.catalog.UpdateProject(ctx, *changed); err != nil {
				result.Updated--
				return err
			}
		}
	} else {
		i.record(result, parsed, "", ActionSkip)
		result.Skipped++
	}

	return i.syncLocales(ctx, parsed, existing, opts, result)
}

func (i *Importer) syncLocales(ctx context.Context, parsed *Manifest, project *catalog.Project, opts SyncOptions, result *Result) error {
	for _, ref := range parsed.Locales {
		locale, err := i.catalog.GetLocaleByCode(ctx, ref.Code)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: locale %s: %v", parsed.FilePath, ref.Code, err))
			continue
		}

		pair, err := i.catalog.GetProjectLocale(ctx, project.ID, locale.ID)
		if err != nil {
			var notFound *catalog.NotFoundError
			if !errors.As(err, &notFound) {
				return err
			}
			i.record(result, parsed, ref.Code, ActionEnableLocale)
			result.LocalesEnabled++
			if opts.DryRun {
				continue
			}
			if _, err := i.catalog.EnableLocale(ctx, catalog.EnableLocaleRequest{
				ProjectID: project.ID,
				Locale:    ref.Code,
				Readonly:  ref.Readonly,
			}); err != nil {
				result.LocalesEnabled--
				result.Errors = append(result.Errors, fmt.Sprintf("%s: locale %s: %v", parsed.FilePath, ref.Code, err))
			}
			continue
		}

		if pair.Readonly != ref.Readonly {
			i.record(result, parsed, ref.Code, ActionSetReadonly)
			result.ReadonlyUpdated++
			if opts.DryRun {
				continue
			}
			if _, err := i.catalog.SetReadonly(ctx, catalog.SetReadonlyRequest{
				ProjectLocaleID: pair.ID,
				Readonly:        ref.Readonly,
			}); err != nil {
				result.ReadonlyUpdated--
				result.Errors = append(result.Errors, fmt.Sprintf("%s: locale %s: %v", parsed.FilePath, ref.Code, err))
			}
		}
	}
	return nil
}

func (i *Importer) projectDiff(existing *catalog.Project, parsed *Manifest) *catalog.UpdateProjectRequest {
	req := catalog.UpdateProjectRequest{ID: existing.ID}
	changed := false

	if existing.Name != parsed.Name {
		name := parsed.Name
		req.Name = &name
		changed = true
	}
	if existing.Info != parsed.Info {
		info := parsed.Info
		req.Info = &info
		changed = true
	}
	if existing.Priority != parsed.Priority {
		priority := parsed.Priority
		req.Priority = &priority
		changed = true
	}
	if existing.Visibility != parsed.Visibility {
		visibility := parsed.Visibility
		req.Visibility = &visibility
		changed = true
	}
	if !equalDeadline(existing.Deadline, parsed.Deadline) {
		if parsed.Deadline == nil {
			req.ClearDeadline = true
		} else {
			deadline := *parsed.Deadline
			req.Deadline = &deadline
		}
		changed = true
	}

	if !changed {
		return nil
	}
	return &req
}

func (i *Importer) record(result *Result, parsed *Manifest, locale, action string) {
	result.Actions = append(result.Actions, Action{
		Path:   parsed.FilePath,
		Slug:   parsed.Slug,
		Locale: locale,
		Action: action,
	})
	logging.WithManifestContext(i.logger, parsed.FilePath, locale, action).Info("manifest sync", "slug", parsed.Slug)
}

func equalDeadline(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
