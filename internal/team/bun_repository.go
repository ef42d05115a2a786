package team

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-l10n/internal/domain"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BunContributorRepository struct {
	repo repository.Repository[*Contributor]
}

func NewBunContributorRepository(db *bun.DB) *BunContributorRepository {
	return NewBunContributorRepositoryWithCache(db, nil, nil)
}

func NewBunContributorRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunContributorRepository {
	base := NewContributorRecordRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunContributorRepository{repo: wrapped}
}

func (r *BunContributorRepository) Create(ctx context.Context, record *Contributor) (*Contributor, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunContributorRepository) GetByID(ctx context.Context, id uuid.UUID) (*Contributor, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "contributor", id.String())
	}
	return result, nil
}

func (r *BunContributorRepository) GetByEmail(ctx context.Context, email string) (*Contributor, error) {
	result, err := r.repo.GetByIdentifier(ctx, email)
	if err != nil {
		return nil, mapRepositoryError(err, "contributor", email)
	}
	return result, nil
}

func (r *BunContributorRepository) List(ctx context.Context) ([]*Contributor, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunContributorRepository) Update(ctx context.Context, record *Contributor) (*Contributor, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "contributor", record.ID.String())
	}
	return updated, nil
}

type BunMembershipRepository struct {
	db   *bun.DB
	repo repository.Repository[*Membership]
}

func NewBunMembershipRepository(db *bun.DB) *BunMembershipRepository {
	return &BunMembershipRepository{db: db, repo: NewMembershipRecordRepository(db)}
}

func (r *BunMembershipRepository) Create(ctx context.Context, record *Membership) (*Membership, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunMembershipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*Membership)(nil)).
		Where("m.id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("membership repository error: %w", err)
	}
	return nil
}

func (r *BunMembershipRepository) Find(ctx context.Context, contributorID, localeID uuid.UUID, projectLocaleID *uuid.UUID, role domain.Role) (*Membership, error) {
	record := new(Membership)
	query := r.db.NewSelect().
		Model(record).
		Where("m.contributor_id = ?", contributorID).
		Where("m.locale_id = ?", localeID).
		Where("m.role = ?", role)
	if projectLocaleID == nil {
		query = query.Where("m.project_locale_id IS NULL")
	} else {
		query = query.Where("m.project_locale_id = ?", *projectLocaleID)
	}
	if err := query.Limit(1).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "membership", Key: contributorID.String()}
		}
		return nil, fmt.Errorf("membership repository error: %w", err)
	}
	return record, nil
}

func (r *BunMembershipRepository) ListByLocale(ctx context.Context, localeID uuid.UUID) ([]*Membership, error) {
	var records []*Membership
	err := r.db.NewSelect().
		Model(&records).
		Where("m.locale_id = ?", localeID).
		Relation("Contributor").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("membership repository error: %w", err)
	}
	return records, nil
}

func (r *BunMembershipRepository) ListByContributor(ctx context.Context, contributorID uuid.UUID) ([]*Membership, error) {
	var records []*Membership
	err := r.db.NewSelect().
		Model(&records).
		Where("m.contributor_id = ?", contributorID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("membership repository error: %w", err)
	}
	return records, nil
}

func (r *BunMembershipRepository) ListByProjectLocale(ctx context.Context, projectLocaleID uuid.UUID) ([]*Membership, error) {
	var records []*Membership
	err := r.db.NewSelect().
		Model(&records).
		Where("m.project_locale_id = ?", projectLocaleID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("membership repository error: %w", err)
	}
	return records, nil
}

type BunPermissionChangeRepository struct {
	db   *bun.DB
	repo repository.Repository[*PermissionChange]
}

func NewBunPermissionChangeRepository(db *bun.DB) *BunPermissionChangeRepository {
	return &BunPermissionChangeRepository{db: db, repo: NewPermissionChangeRecordRepository(db)}
}

func (r *BunPermissionChangeRepository) Create(ctx context.Context, record *PermissionChange) (*PermissionChange, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunPermissionChangeRepository) ListByLocale(ctx context.Context, localeID uuid.UUID) ([]*PermissionChange, error) {
	var records []*PermissionChange
	err := r.db.NewSelect().
		Model(&records).
		Where("pc.locale_id = ?", localeID).
		Order("pc.created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("permission_change repository error: %w", err)
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
