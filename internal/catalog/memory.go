package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryProjectRepository is an in-memory implementation for scaffolding and tests.
type MemoryProjectRepository struct {
	mu        sync.RWMutex
	projects  map[uuid.UUID]*Project
	slugIndex map[string]uuid.UUID
}

// NewMemoryProjectRepository creates an empty in-memory project repository.
func NewMemoryProjectRepository() *MemoryProjectRepository {
	return &MemoryProjectRepository{
		projects:  make(map[uuid.UUID]*Project),
		slugIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied project.
func (m *MemoryProjectRepository) Create(_ context.Context, record *Project) (*Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneProject(record)
	m.projects[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return cloneProject(copied), nil
}

// GetByID retrieves a project by identifier.
func (m *MemoryProjectRepository) GetByID(_ context.Context, id uuid.UUID) (*Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.projects[id]
	if !ok {
		return nil, &NotFoundError{Resource: "project", Key: id.String()}
	}
	return cloneProject(rec), nil
}

// GetBySlug retrieves a project by slug, returning NotFoundError when absent.
func (m *MemoryProjectRepository) GetBySlug(_ context.Context, slug string) (*Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "project", Key: slug}
	}
	return cloneProject(m.projects[id]), nil
}

// List returns all projects.
func (m *MemoryProjectRepository) List(_ context.Context) ([]*Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Project, 0, len(m.projects))
	for _, rec := range m.projects {
		out = append(out, cloneProject(rec))
	}
	return out, nil
}

// Update replaces a stored project.
func (m *MemoryProjectRepository) Update(_ context.Context, record *Project) (*Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.projects[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "project", Key: record.ID.String()}
	}
	delete(m.slugIndex, existing.Slug)

	copied := cloneProject(record)
	m.projects[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return cloneProject(copied), nil
}

func cloneProject(src *Project) *Project {
	if src == nil {
		return nil
	}
	copied := *src
	if src.Deadline != nil {
		deadline := *src.Deadline
		copied.Deadline = &deadline
	}
	if src.DateDisabled != nil {
		disabled := *src.DateDisabled
		copied.DateDisabled = &disabled
	}
	if src.ContactID != nil {
		contact := *src.ContactID
		copied.ContactID = &contact
	}
	copied.ProjectLocales = nil
	return &copied
}

// MemoryLocaleRepository stores locales in-memory.
type MemoryLocaleRepository struct {
	mu        sync.RWMutex
	locales   map[uuid.UUID]*Locale
	codeIndex map[string]uuid.UUID
}

// NewMemoryLocaleRepository constructs the repository.
func NewMemoryLocaleRepository() *MemoryLocaleRepository {
	return &MemoryLocaleRepository{
		locales:   make(map[uuid.UUID]*Locale),
		codeIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied locale.
func (m *MemoryLocaleRepository) Create(_ context.Context, record *Locale) (*Locale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneLocale(record)
	m.locales[copied.ID] = copied
	m.codeIndex[copied.Code] = copied.ID
	return cloneLocale(copied), nil
}

// GetByID retrieves a locale by identifier.
func (m *MemoryLocaleRepository) GetByID(_ context.Context, id uuid.UUID) (*Locale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.locales[id]
	if !ok {
		return nil, &NotFoundError{Resource: "locale", Key: id.String()}
	}
	return cloneLocale(rec), nil
}

// GetByCode retrieves a locale by its code.
func (m *MemoryLocaleRepository) GetByCode(_ context.Context, code string) (*Locale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.codeIndex[code]
	if !ok {
		return nil, &NotFoundError{Resource: "locale", Key: code}
	}
	return cloneLocale(m.locales[id]), nil
}

// List returns all locales.
func (m *MemoryLocaleRepository) List(_ context.Context) ([]*Locale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Locale, 0, len(m.locales))
	for _, rec := range m.locales {
		out = append(out, cloneLocale(rec))
	}
	return out, nil
}

func cloneLocale(src *Locale) *Locale {
	if src == nil {
		return nil
	}
	copied := *src
	if src.TeamDescription != nil {
		desc := *src.TeamDescription
		copied.TeamDescription = &desc
	}
	return &copied
}

// MemoryProjectLocaleRepository stores project locale pairings in-memory.
type MemoryProjectLocaleRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*ProjectLocale
}

// NewMemoryProjectLocaleRepository constructs the repository.
func NewMemoryProjectLocaleRepository() *MemoryProjectLocaleRepository {
	return &MemoryProjectLocaleRepository{
		records: make(map[uuid.UUID]*ProjectLocale),
	}
}

// Create inserts the supplied pairing.
func (m *MemoryProjectLocaleRepository) Create(_ context.Context, record *ProjectLocale) (*ProjectLocale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneProjectLocale(record)
	m.records[copied.ID] = copied
	return cloneProjectLocale(copied), nil
}

// GetByID retrieves a pairing by identifier.
func (m *MemoryProjectLocaleRepository) GetByID(_ context.Context, id uuid.UUID) (*ProjectLocale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, &NotFoundError{Resource: "project_locale", Key: id.String()}
	}
	return cloneProjectLocale(rec), nil
}

// GetByPair retrieves the pairing for a project and locale.
func (m *MemoryProjectLocaleRepository) GetByPair(_ context.Context, projectID, localeID uuid.UUID) (*ProjectLocale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, rec := range m.records {
		if rec.ProjectID == projectID && rec.LocaleID == localeID {
			return cloneProjectLocale(rec), nil
		}
	}
	return nil, &NotFoundError{Resource: "project_locale", Key: fmt.Sprintf("%s/%s", projectID, localeID)}
}

// ListByProject returns the pairings for a project.
func (m *MemoryProjectLocaleRepository) ListByProject(_ context.Context, projectID uuid.UUID) ([]*ProjectLocale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*ProjectLocale, 0)
	for _, rec := range m.records {
		if rec.ProjectID == projectID {
			out = append(out, cloneProjectLocale(rec))
		}
	}
	return out, nil
}

// ListByLocale returns the pairings for a locale.
func (m *MemoryProjectLocaleRepository) ListByLocale(_ context.Context, localeID uuid.UUID) ([]*ProjectLocale, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*ProjectLocale, 0)
	for _, rec := range m.records {
		if rec.LocaleID == localeID {
			out = append(out, cloneProjectLocale(rec))
		}
	}
	return out, nil
}

// Update replaces a stored pairing.
func (m *MemoryProjectLocaleRepository) Update(_ context.Context, record *ProjectLocale) (*ProjectLocale, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "project_locale", Key: record.ID.String()}
	}
	copied := cloneProjectLocale(record)
	m.records[copied.ID] = copied
	return cloneProjectLocale(copied), nil
}

func cloneProjectLocale(src *ProjectLocale) *ProjectLocale {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Project = nil
	copied.Locale = nil
	return &copied
}
