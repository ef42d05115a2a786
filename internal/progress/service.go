package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	l10nprogress "github.com/goliatone/go-l10n/progress"
	"github.com/google/uuid"
)

// Service exposes progress tracking use-cases.
type Service interface {
	SetSnapshot(ctx context.Context, scope Scope, snapshot Snapshot) (*StatsRow, error)
	Snapshot(ctx context.Context, scope Scope) (Snapshot, error)
	Adjust(ctx context.Context, scope Scope, diff Diff) (Snapshot, error)
	AdjustProjectLocale(ctx context.Context, projectID, localeID uuid.UUID, diff Diff) error
	Chart(ctx context.Context, scope Scope) (Chart, error)
	RecomputeProject(ctx context.Context, projectID uuid.UUID) (Snapshot, error)
	RecomputeLocale(ctx context.Context, localeID uuid.UUID) (Snapshot, error)
	AvgStringCount(ctx context.Context, projectID uuid.UUID) (int, error)

	RecordActivity(ctx context.Context, req RecordActivityRequest) (*ActivityEntry, error)
	LatestActivity(ctx context.Context, scope Scope) (*ActivityEntry, error)
}

// RecordActivityRequest captures one translation event.
type RecordActivityRequest struct {
	ProjectID  uuid.UUID
	LocaleID   uuid.UUID
	ActorID    uuid.UUID
	Verb       string
	OccurredAt *time.Time
}

// StatsRepository abstracts storage for stats rows.
type StatsRepository interface {
	Get(ctx context.Context, scope Scope) (*StatsRow, error)
	Upsert(ctx context.Context, record *StatsRow) (*StatsRow, error)
	ListPairsByProject(ctx context.Context, projectID uuid.UUID) ([]*StatsRow, error)
	ListPairsByLocale(ctx context.Context, localeID uuid.UUID) ([]*StatsRow, error)
}

// ActivityRepository abstracts storage for activity entries.
type ActivityRepository interface {
	Record(ctx context.Context, entry *ActivityEntry) (*ActivityEntry, error)
	Latest(ctx context.Context, scope Scope) (*ActivityEntry, error)
}

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		s.now = clock
	}
}

type IDGenerator func() uuid.UUID

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

type service struct {
	stats    StatsRepository
	activity ActivityRepository
	now      func() time.Time
	id       IDGenerator
}

// NewService constructs a progress service with the required dependencies.
func NewService(stats StatsRepository, activity ActivityRepository, opts ...ServiceOption) Service {
	s := &service{
		stats:    stats,
		activity: activity,
		now:      time.Now,
		id:       uuid.New,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SetSnapshot replaces the stored counts for a scope.
func (s *service) SetSnapshot(ctx context.Context, scope Scope, snapshot Snapshot) (*StatsRow, error) {
	if err := validateScope(scope); err != nil {
		return nil, err
	}
	if snapshot.Total < 0 || snapshot.Approved < 0 || snapshot.Pretranslated < 0 ||
		snapshot.Errors < 0 || snapshot.Warnings < 0 || snapshot.Unreviewed < 0 {
		return nil, l10nprogress.ErrSnapshotInvalid
	}

	row, err := s.stats.Get(ctx, scope)
	if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		row = &StatsRow{
			ID:        s.id(),
			ScopeKind: scope.Kind,
			ProjectID: scope.ProjectID,
			LocaleID:  scope.LocaleID,
		}
	}

	row.Total = snapshot.Total
	row.Approved = snapshot.Approved
	row.Pretranslated = snapshot.Pretranslated
	row.Errors = snapshot.Errors
	row.Warnings = snapshot.Warnings
	row.Unreviewed = snapshot.Unreviewed
	row.UpdatedAt = s.now()

	return s.stats.Upsert(ctx, row)
}

// Snapshot returns the stored counts, zeroed when no row exists yet.
func (s *service) Snapshot(ctx context.Context, scope Scope) (Snapshot, error) {
	if err := validateScope(scope); err != nil {
		return Snapshot{}, err
	}
	row, err := s.stats.Get(ctx, scope)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return Snapshot{}, nil
		}
		return Snapshot{}, err
	}
	return row.Snapshot(), nil
}

// Adjust applies signed deltas to one scope.
func (s *service) Adjust(ctx context.Context, scope Scope, diff Diff) (Snapshot, error) {
	current, err := s.Snapshot(ctx, scope)
	if err != nil {
		return Snapshot{}, err
	}
	next := current.Apply(diff)
	if _, err := s.SetSnapshot(ctx, scope, next); err != nil {
		return Snapshot{}, err
	}
	return next, nil
}

// AdjustProjectLocale applies the diff to a pairing and both of its rollups.
func (s *service) AdjustProjectLocale(ctx context.Context, projectID, localeID uuid.UUID, diff Diff) error {
	if projectID == uuid.Nil || localeID == uuid.Nil {
		return l10nprogress.ErrScopeInvalid
	}
	scopes := []Scope{
		l10nprogress.ProjectLocaleScope(projectID, localeID),
		l10nprogress.ProjectScope(projectID),
		l10nprogress.LocaleScope(localeID),
	}
	for _, scope := range scopes {
		if _, err := s.Adjust(ctx, scope, diff); err != nil {
			return err
		}
	}
	return nil
}

// Chart returns the dashboard chart for a scope.
func (s *service) Chart(ctx context.Context, scope Scope) (Chart, error) {
	snapshot, err := s.Snapshot(ctx, scope)
	if err != nil {
		return Chart{}, err
	}
	return l10nprogress.ChartOf(snapshot), nil
}

// RecomputeProject rebuilds the project aggregate from its pair rows.
func (s *service) RecomputeProject(ctx context.Context, projectID uuid.UUID) (Snapshot, error) {
	if projectID == uuid.Nil {
		return Snapshot{}, l10nprogress.ErrScopeInvalid
	}
	rows, err := s.stats.ListPairsByProject(ctx, projectID)
	if err != nil {
		return Snapshot{}, err
	}
	total := Snapshot{}
	for _, row := range rows {
		total = total.Add(row.Snapshot())
	}
	if _, err := s.SetSnapshot(ctx, l10nprogress.ProjectScope(projectID), total); err != nil {
		return Snapshot{}, err
	}
	return total, nil
}

// RecomputeLocale rebuilds the locale aggregate from its pair rows.
func (s *service) RecomputeLocale(ctx context.Context, localeID uuid.UUID) (Snapshot, error) {
	if localeID == uuid.Nil {
		return Snapshot{}, l10nprogress.ErrScopeInvalid
	}
	rows, err := s.stats.ListPairsByLocale(ctx, localeID)
	if err != nil {
		return Snapshot{}, err
	}
	total := Snapshot{}
	for _, row := range rows {
		total = total.Add(row.Snapshot())
	}
	if _, err := s.SetSnapshot(ctx, l10nprogress.LocaleScope(localeID), total); err != nil {
		return Snapshot{}, err
	}
	return total, nil
}

// AvgStringCount divides the project total by its enabled locale count.
func (s *service) AvgStringCount(ctx context.Context, projectID uuid.UUID) (int, error) {
	if projectID == uuid.Nil {
		return 0, l10nprogress.ErrScopeInvalid
	}
	rows, err := s.stats.ListPairsByProject(ctx, projectID)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	total := 0
	for _, row := range rows {
		total += row.Total
	}
	return total / len(rows), nil
}

// RecordActivity stores one translation event.
func (s *service) RecordActivity(ctx context.Context, req RecordActivityRequest) (*ActivityEntry, error) {
	if req.ProjectID == uuid.Nil || req.LocaleID == uuid.Nil {
		return nil, l10nprogress.ErrScopeInvalid
	}
	if req.Verb != l10nprogress.VerbSubmitted && req.Verb != l10nprogress.VerbApproved {
		return nil, l10nprogress.ErrVerbInvalid
	}

	occurred := s.now()
	if req.OccurredAt != nil {
		occurred = *req.OccurredAt
	}

	entry := &ActivityEntry{
		ID:         s.id(),
		ProjectID:  req.ProjectID,
		LocaleID:   req.LocaleID,
		ActorID:    req.ActorID,
		Verb:       req.Verb,
		OccurredAt: occurred,
	}
	return s.activity.Record(ctx, entry)
}

// LatestActivity resolves the newest event for a scope, nil when none exists.
func (s *service) LatestActivity(ctx context.Context, scope Scope) (*ActivityEntry, error) {
	if err := validateScope(scope); err != nil {
		return nil, err
	}
	entry, err := s.activity.Latest(ctx, scope)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

func validateScope(scope Scope) error {
	switch scope.Kind {
	case l10nprogress.ScopeProject:
		if scope.ProjectID == uuid.Nil {
			return l10nprogress.ErrScopeInvalid
		}
	case l10nprogress.ScopeLocale:
		if scope.LocaleID == uuid.Nil {
			return l10nprogress.ErrScopeInvalid
		}
	case l10nprogress.ScopeProjectLocale:
		if scope.ProjectID == uuid.Nil || scope.LocaleID == uuid.Nil {
			return l10nprogress.ErrScopeInvalid
		}
	default:
		return l10nprogress.ErrScopeInvalid
	}
	return nil
}
