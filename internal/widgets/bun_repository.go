package widgets

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BunDefinitionRepository struct {
	repo repository.Repository[*Definition]
}

func NewBunDefinitionRepository(db *bun.DB) *BunDefinitionRepository {
	return NewBunDefinitionRepositoryWithCache(db, nil, nil)
}

func NewBunDefinitionRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunDefinitionRepository {
	base := NewDefinitionRecordRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunDefinitionRepository{repo: wrapped}
}

func (r *BunDefinitionRepository) Create(ctx context.Context, record *Definition) (*Definition, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunDefinitionRepository) Update(ctx context.Context, record *Definition) (*Definition, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "widget_definition", record.ID.String())
	}
	return updated, nil
}

func (r *BunDefinitionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Definition, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "widget_definition", id.String())
	}
	return result, nil
}

func (r *BunDefinitionRepository) GetByName(ctx context.Context, name string) (*Definition, error) {
	result, err := r.repo.GetByIdentifier(ctx, name)
	if err != nil {
		return nil, mapRepositoryError(err, "widget_definition", name)
	}
	return result, nil
}

func (r *BunDefinitionRepository) List(ctx context.Context) ([]*Definition, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

type BunInstanceRepository struct {
	db   *bun.DB
	repo repository.Repository[*Instance]
}

func NewBunInstanceRepository(db *bun.DB) *BunInstanceRepository {
	return NewBunInstanceRepositoryWithCache(db, nil, nil)
}

func NewBunInstanceRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunInstanceRepository {
	base := NewInstanceRecordRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunInstanceRepository{db: db, repo: wrapped}
}

func (r *BunInstanceRepository) Create(ctx context.Context, record *Instance) (*Instance, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunInstanceRepository) Update(ctx context.Context, record *Instance) (*Instance, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "widget_instance", record.ID.String())
	}
	return updated, nil
}

func (r *BunInstanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*Instance)(nil)).
		Where("wi.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("widget_instance repository error: %w", err)
	}
	return nil
}

func (r *BunInstanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*Instance, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "widget_instance", id.String())
	}
	return result, nil
}

func (r *BunInstanceRepository) ListByArea(ctx context.Context, areaCode string) ([]*Instance, error) {
	var records []*Instance
	err := r.db.NewSelect().
		Model(&records).
		Where("wi.area_code = ?", areaCode).
		Relation("Definition").
		Order("wi.position ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("widget_instance repository error: %w", err)
	}
	return records, nil
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
