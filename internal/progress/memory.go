package progress

import (
	"context"
	"fmt"
	"sync"

	l10nprogress "github.com/goliatone/go-l10n/progress"
	"github.com/google/uuid"
)

// MemoryStatsRepository is an in-memory implementation for scaffolding and tests.
type MemoryStatsRepository struct {
	mu      sync.RWMutex
	records map[string]*StatsRow
}

// NewMemoryStatsRepository creates an empty in-memory stats repository.
func NewMemoryStatsRepository() *MemoryStatsRepository {
	return &MemoryStatsRepository{
		records: make(map[string]*StatsRow),
	}
}

func scopeKey(scope Scope) string {
	return fmt.Sprintf("%s:%s:%s", scope.Kind, scope.ProjectID, scope.LocaleID)
}

func rowScope(row *StatsRow) Scope {
	return Scope{Kind: row.ScopeKind, ProjectID: row.ProjectID, LocaleID: row.LocaleID}
}

// Get retrieves the stats row for a scope.
func (m *MemoryStatsRepository) Get(_ context.Context, scope Scope) (*StatsRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[scopeKey(scope)]
	if !ok {
		return nil, &NotFoundError{Resource: "stats", Key: scopeKey(scope)}
	}
	copied := *rec
	return &copied, nil
}

// Upsert inserts or replaces the stats row for its scope.
func (m *MemoryStatsRepository) Upsert(_ context.Context, record *StatsRow) (*StatsRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	m.records[scopeKey(rowScope(record))] = &copied
	out := copied
	return &out, nil
}

// ListPairsByProject returns pair rows belonging to a project.
func (m *MemoryStatsRepository) ListPairsByProject(_ context.Context, projectID uuid.UUID) ([]*StatsRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*StatsRow, 0)
	for _, rec := range m.records {
		if rec.ScopeKind == l10nprogress.ScopeProjectLocale && rec.ProjectID == projectID {
			copied := *rec
			out = append(out, &copied)
		}
	}
	return out, nil
}

// ListPairsByLocale returns pair rows belonging to a locale.
func (m *MemoryStatsRepository) ListPairsByLocale(_ context.Context, localeID uuid.UUID) ([]*StatsRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*StatsRow, 0)
	for _, rec := range m.records {
		if rec.ScopeKind == l10nprogress.ScopeProjectLocale && rec.LocaleID == localeID {
			copied := *rec
			out = append(out, &copied)
		}
	}
	return out, nil
}

// MemoryActivityRepository stores activity entries in-memory.
type MemoryActivityRepository struct {
	mu      sync.RWMutex
	entries []*ActivityEntry
}

// NewMemoryActivityRepository constructs the repository.
func NewMemoryActivityRepository() *MemoryActivityRepository {
	return &MemoryActivityRepository{}
}

// Record appends an activity entry.
func (m *MemoryActivityRepository) Record(_ context.Context, entry *ActivityEntry) (*ActivityEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *entry
	m.entries = append(m.entries, &copied)
	out := copied
	return &out, nil
}

// Latest returns the newest entry matching the scope.
func (m *MemoryActivityRepository) Latest(_ context.Context, scope Scope) (*ActivityEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var latest *ActivityEntry
	for _, entry := range m.entries {
		if !scopeMatches(scope, entry) {
			continue
		}
		if latest == nil || entry.OccurredAt.After(latest.OccurredAt) {
			latest = entry
		}
	}
	if latest == nil {
		return nil, &NotFoundError{Resource: "activity", Key: scopeKey(scope)}
	}
	copied := *latest
	return &copied, nil
}

func scopeMatches(scope Scope, entry *ActivityEntry) bool {
	switch scope.Kind {
	case l10nprogress.ScopeProject:
		return entry.ProjectID == scope.ProjectID
	case l10nprogress.ScopeLocale:
		return entry.LocaleID == scope.LocaleID
	case l10nprogress.ScopeProjectLocale:
		return entry.ProjectID == scope.ProjectID && entry.LocaleID == scope.LocaleID
	default:
		return false
	}
}
