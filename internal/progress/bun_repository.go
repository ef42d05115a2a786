package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	l10nprogress "github.com/goliatone/go-l10n/progress"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunStatsRepository persists stats rows keyed by scope.
type BunStatsRepository struct {
	db *bun.DB
}

func NewBunStatsRepository(db *bun.DB) *BunStatsRepository {
	return &BunStatsRepository{db: db}
}

func (r *BunStatsRepository) Get(ctx context.Context, scope Scope) (*StatsRow, error) {
	record := new(StatsRow)
	query := r.db.NewSelect().
		Model(record).
		Where("st.scope_kind = ?", scope.Kind)
	query = applyScopeFilter(query, scope)
	if err := query.Limit(1).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "stats", Key: string(scope.Kind)}
		}
		return nil, fmt.Errorf("stats repository error: %w", err)
	}
	return record, nil
}

func (r *BunStatsRepository) Upsert(ctx context.Context, record *StatsRow) (*StatsRow, error) {
	_, err := r.db.NewInsert().
		Model(record).
		On("CONFLICT (id) DO UPDATE").
		Set("total_strings = EXCLUDED.total_strings").
		Set("approved_strings = EXCLUDED.approved_strings").
		Set("pretranslated_strings = EXCLUDED.pretranslated_strings").
		Set("strings_with_errors = EXCLUDED.strings_with_errors").
		Set("strings_with_warnings = EXCLUDED.strings_with_warnings").
		Set("unreviewed_strings = EXCLUDED.unreviewed_strings").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats repository error: %w", err)
	}
	return record, nil
}

func (r *BunStatsRepository) ListPairsByProject(ctx context.Context, projectID uuid.UUID) ([]*StatsRow, error) {
	var records []*StatsRow
	err := r.db.NewSelect().
		Model(&records).
		Where("st.scope_kind = ?", l10nprogress.ScopeProjectLocale).
		Where("st.project_id = ?", projectID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats repository error: %w", err)
	}
	return records, nil
}

func (r *BunStatsRepository) ListPairsByLocale(ctx context.Context, localeID uuid.UUID) ([]*StatsRow, error) {
	var records []*StatsRow
	err := r.db.NewSelect().
		Model(&records).
		Where("st.scope_kind = ?", l10nprogress.ScopeProjectLocale).
		Where("st.locale_id = ?", localeID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats repository error: %w", err)
	}
	return records, nil
}

func applyScopeFilter(query *bun.SelectQuery, scope Scope) *bun.SelectQuery {
	switch scope.Kind {
	case l10nprogress.ScopeProject:
		return query.Where("st.project_id = ?", scope.ProjectID)
	case l10nprogress.ScopeLocale:
		return query.Where("st.locale_id = ?", scope.LocaleID)
	default:
		return query.
			Where("st.project_id = ?", scope.ProjectID).
			Where("st.locale_id = ?", scope.LocaleID)
	}
}

// BunActivityRepository persists activity entries.
type BunActivityRepository struct {
	db *bun.DB
}

func NewBunActivityRepository(db *bun.DB) *BunActivityRepository {
	return &BunActivityRepository{db: db}
}

func (r *BunActivityRepository) Record(ctx context.Context, entry *ActivityEntry) (*ActivityEntry, error) {
	if _, err := r.db.NewInsert().Model(entry).Exec(ctx); err != nil {
		return nil, fmt.Errorf("activity repository error: %w", err)
	}
	return entry, nil
}

func (r *BunActivityRepository) Latest(ctx context.Context, scope Scope) (*ActivityEntry, error) {
	record := new(ActivityEntry)
	query := r.db.NewSelect().Model(record)
	switch scope.Kind {
	case l10nprogress.ScopeProject:
		query = query.Where("ae.project_id = ?", scope.ProjectID)
	case l10nprogress.ScopeLocale:
		query = query.Where("ae.locale_id = ?", scope.LocaleID)
	default:
		query = query.
			Where("ae.project_id = ?", scope.ProjectID).
			Where("ae.locale_id = ?", scope.LocaleID)
	}
	err := query.Order("occurred_at DESC").Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "activity", Key: string(scope.Kind)}
		}
		return nil, fmt.Errorf("activity repository error: %w", err)
	}
	return record, nil
}
