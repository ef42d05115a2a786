package team

import (
	"context"
	"sync"

	"github.com/goliatone/go-l10n/internal/domain"
	"github.com/google/uuid"
)

// MemoryContributorRepository is an in-memory implementation for scaffolding and tests.
type MemoryContributorRepository struct {
	mu         sync.RWMutex
	records    map[uuid.UUID]*Contributor
	emailIndex map[string]uuid.UUID
}

// NewMemoryContributorRepository creates an empty in-memory contributor repository.
func NewMemoryContributorRepository() *MemoryContributorRepository {
	return &MemoryContributorRepository{
		records:    make(map[uuid.UUID]*Contributor),
		emailIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied contributor.
func (m *MemoryContributorRepository) Create(_ context.Context, record *Contributor) (*Contributor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	m.records[copied.ID] = &copied
	m.emailIndex[copied.Email] = copied.ID
	out := copied
	return &out, nil
}

// GetByID retrieves a contributor by identifier.
func (m *MemoryContributorRepository) GetByID(_ context.Context, id uuid.UUID) (*Contributor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, &NotFoundError{Resource: "contributor", Key: id.String()}
	}
	copied := *rec
	return &copied, nil
}

// GetByEmail retrieves a contributor by email, returning NotFoundError when absent.
func (m *MemoryContributorRepository) GetByEmail(_ context.Context, email string) (*Contributor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.emailIndex[email]
	if !ok {
		return nil, &NotFoundError{Resource: "contributor", Key: email}
	}
	copied := *m.records[id]
	return &copied, nil
}

// List returns all contributors.
func (m *MemoryContributorRepository) List(_ context.Context) ([]*Contributor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Contributor, 0, len(m.records))
	for _, rec := range m.records {
		copied := *rec
		out = append(out, &copied)
	}
	return out, nil
}

// Update replaces a stored contributor.
func (m *MemoryContributorRepository) Update(_ context.Context, record *Contributor) (*Contributor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "contributor", Key: record.ID.String()}
	}
	copied := *record
	m.records[copied.ID] = &copied
	m.emailIndex[copied.Email] = copied.ID
	out := copied
	return &out, nil
}

// MemoryMembershipRepository stores role grants in-memory.
type MemoryMembershipRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Membership
}

// NewMemoryMembershipRepository constructs the repository.
func NewMemoryMembershipRepository() *MemoryMembershipRepository {
	return &MemoryMembershipRepository{
		records: make(map[uuid.UUID]*Membership),
	}
}

// Create inserts the supplied membership.
func (m *MemoryMembershipRepository) Create(_ context.Context, record *Membership) (*Membership, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneMembership(record)
	m.records[copied.ID] = copied
	return cloneMembership(copied), nil
}

// Delete removes a membership by identifier.
func (m *MemoryMembershipRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return &NotFoundError{Resource: "membership", Key: id.String()}
	}
	delete(m.records, id)
	return nil
}

// Find locates a membership matching the full grant tuple.
func (m *MemoryMembershipRepository) Find(_ context.Context, contributorID, localeID uuid.UUID, projectLocaleID *uuid.UUID, role domain.Role) (*Membership, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, rec := range m.records {
		if rec.ContributorID != contributorID || rec.LocaleID != localeID || rec.Role != role {
			continue
		}
		if !sameScope(rec.ProjectLocaleID, projectLocaleID) {
			continue
		}
		return cloneMembership(rec), nil
	}
	return nil, &NotFoundError{Resource: "membership", Key: contributorID.String()}
}

// ListByLocale returns every grant on a locale.
func (m *MemoryMembershipRepository) ListByLocale(_ context.Context, localeID uuid.UUID) ([]*Membership, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Membership, 0)
	for _, rec := range m.records {
		if rec.LocaleID == localeID {
			out = append(out, cloneMembership(rec))
		}
	}
	return out, nil
}

// ListByContributor returns every grant held by a contributor.
func (m *MemoryMembershipRepository) ListByContributor(_ context.Context, contributorID uuid.UUID) ([]*Membership, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Membership, 0)
	for _, rec := range m.records {
		if rec.ContributorID == contributorID {
			out = append(out, cloneMembership(rec))
		}
	}
	return out, nil
}

// ListByProjectLocale returns the custom translator grants for a pairing.
func (m *MemoryMembershipRepository) ListByProjectLocale(_ context.Context, projectLocaleID uuid.UUID) ([]*Membership, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Membership, 0)
	for _, rec := range m.records {
		if rec.ProjectLocaleID != nil && *rec.ProjectLocaleID == projectLocaleID {
			out = append(out, cloneMembership(rec))
		}
	}
	return out, nil
}

func sameScope(a, b *uuid.UUID) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}

func cloneMembership(src *Membership) *Membership {
	if src == nil {
		return nil
	}
	copied := *src
	if src.ProjectLocaleID != nil {
		scoped := *src.ProjectLocaleID
		copied.ProjectLocaleID = &scoped
	}
	copied.Contributor = nil
	return &copied
}

// MemoryPermissionChangeRepository stores permission change records in-memory.
type MemoryPermissionChangeRepository struct {
	mu      sync.RWMutex
	records []*PermissionChange
}

// NewMemoryPermissionChangeRepository constructs the repository.
func NewMemoryPermissionChangeRepository() *MemoryPermissionChangeRepository {
	return &MemoryPermissionChangeRepository{}
}

// Create appends a permission change record.
func (m *MemoryPermissionChangeRepository) Create(_ context.Context, record *PermissionChange) (*PermissionChange, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	if record.ProjectLocaleID != nil {
		scoped := *record.ProjectLocaleID
		copied.ProjectLocaleID = &scoped
	}
	m.records = append(m.records, &copied)
	out := copied
	return &out, nil
}

// ListByLocale returns change records for a locale, newest first.
func (m *MemoryPermissionChangeRepository) ListByLocale(_ context.Context, localeID uuid.UUID) ([]*PermissionChange, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*PermissionChange, 0)
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].LocaleID == localeID {
			copied := *m.records[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}
