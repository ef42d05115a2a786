package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BunProjectRepository struct {
	db   *bun.DB
	repo repository.Repository[*Project]
}

func NewBunProjectRepository(db *bun.DB) *BunProjectRepository {
	return NewBunProjectRepositoryWithCache(db, nil, nil)
}

func NewBunProjectRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunProjectRepository {
	base := NewProjectRecordRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunProjectRepository{db: db, repo: wrapped}
}

func (r *BunProjectRepository) Create(ctx context.Context, record *Project) (*Project, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*Project, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "project", id.String())
	}
	return result, nil
}

func (r *BunProjectRepository) GetBySlug(ctx context.Context, slug string) (*Project, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "project", slug)
	}
	return result, nil
}

func (r *BunProjectRepository) List(ctx context.Context) ([]*Project, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunProjectRepository) Update(ctx context.Context, record *Project) (*Project, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "project", record.ID.String())
	}
	return updated, nil
}

type BunLocaleRepository struct {
	repo repository.Repository[*Locale]
}

func NewBunLocaleRepository(db *bun.DB) *BunLocaleRepository {
	return NewBunLocaleRepositoryWithCache(db, nil, nil)
}

// NewBunLocaleRepositoryWithCache constructs a LocaleRepository with optional caching.
func NewBunLocaleRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunLocaleRepository {
	base := NewLocaleRecordRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunLocaleRepository{repo: wrapped}
}

func (r *BunLocaleRepository) Create(ctx context.Context, record *Locale) (*Locale, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunLocaleRepository) GetByID(ctx context.Context, id uuid.UUID) (*Locale, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "locale", id.String())
	}
	return result, nil
}

func (r *BunLocaleRepository) GetByCode(ctx context.Context, code string) (*Locale, error) {
	result, err := r.repo.GetByIdentifier(ctx, code)
	if err != nil {
		return nil, mapRepositoryError(err, "locale", code)
	}
	return result, nil
}

func (r *BunLocaleRepository) List(ctx context.Context) ([]*Locale, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

type BunProjectLocaleRepository struct {
	db   *bun.DB
	repo repository.Repository[*ProjectLocale]
}

func NewBunProjectLocaleRepository(db *bun.DB) *BunProjectLocaleRepository {
	return NewBunProjectLocaleRepositoryWithCache(db, nil, nil)
}

func NewBunProjectLocaleRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunProjectLocaleRepository {
	base := NewProjectLocaleRecordRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunProjectLocaleRepository{db: db, repo: wrapped}
}

func (r *BunProjectLocaleRepository) Create(ctx context.Context, record *ProjectLocale) (*ProjectLocale, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunProjectLocaleRepository) GetByID(ctx context.Context, id uuid.UUID) (*ProjectLocale, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "project_locale", id.String())
	}
	return result, nil
}

func (r *BunProjectLocaleRepository) GetByPair(ctx context.Context, projectID, localeID uuid.UUID) (*ProjectLocale, error) {
	record := new(ProjectLocale)
	err := r.db.NewSelect().
		Model(record).
		Where("pl.project_id = ?", projectID).
		Where("pl.locale_id = ?", localeID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "project_locale", Key: fmt.Sprintf("%s/%s", projectID, localeID)}
		}
		return nil, fmt.Errorf("project_locale repository error: %w", err)
	}
	return record, nil
}

func (r *BunProjectLocaleRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*ProjectLocale, error) {
	var records []*ProjectLocale
	err := r.db.NewSelect().
		Model(&records).
		Where("pl.project_id = ?", projectID).
		Relation("Locale").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("project_locale repository error: %w", err)
	}
	return records, nil
}

func (r *BunProjectLocaleRepository) ListByLocale(ctx context.Context, localeID uuid.UUID) ([]*ProjectLocale, error) {
	var records []*ProjectLocale
	err := r.db.NewSelect().
		Model(&records).
		Where("pl.locale_id = ?", localeID).
		Relation("Project").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("project_locale repository error: %w", err)
	}
	return records, nil
}

func (r *BunProjectLocaleRepository) Update(ctx context.Context, record *ProjectLocale) (*ProjectLocale, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "project_locale", record.ID.String())
	}
	return updated, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
