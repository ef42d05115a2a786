package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	l10ncatalog "github.com/goliatone/go-l10n/catalog"
	"github.com/goliatone/go-l10n/internal/domain"
	"github.com/goliatone/go-l10n/pkg/activity"
	"github.com/google/uuid"
)

// Service exposes the project and locale catalog use-cases.
type Service interface {
	CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error)
	UpdateProject(ctx context.Context, req UpdateProjectRequest) (*Project, error)
	DisableProject(ctx context.Context, id uuid.UUID) (*Project, error)
	EnableProject(ctx context.Context, id uuid.UUID) (*Project, error)
	GetProject(ctx context.Context, id uuid.UUID) (*Project, error)
	GetProjectBySlug(ctx context.Context, slug string) (*Project, error)
	ListProjects(ctx context.Context, req ListProjectsRequest) ([]*Project, error)

	CreateLocale(ctx context.Context, req CreateLocaleRequest) (*Locale, error)
	GetLocale(ctx context.Context, id uuid.UUID) (*Locale, error)
	GetLocaleByCode(ctx context.Context, code string) (*Locale, error)
	ListLocales(ctx context.Context) ([]*Locale, error)

	EnableLocale(ctx context.Context, req EnableLocaleRequest) (*ProjectLocale, error)
	SetReadonly(ctx context.Context, req SetReadonlyRequest) (*ProjectLocale, error)
	GetProjectLocale(ctx context.Context, projectID, localeID uuid.UUID) (*ProjectLocale, error)
	ListProjectLocales(ctx context.Context, projectID uuid.UUID) ([]*ProjectLocale, error)
	ListLocaleProjects(ctx context.Context, localeID uuid.UUID) ([]*ProjectLocale, error)
}

// CreateProjectRequest captures the information required to register a project.
type CreateProjectRequest struct {
	Name          string
	Slug          string
	Info          string
	Deadline      *time.Time
	Priority      domain.Priority
	ContactID     *uuid.UUID
	Visibility    domain.Visibility
	SystemProject bool
	Locales       []string
}

// Validate checks field-level constraints before domain rules run.
func (r CreateProjectRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required.Error("name is required")),
		validation.Field(&r.Slug, validation.Required.Error("slug is required")),
	)
}

// UpdateProjectRequest applies partial updates; nil fields are left untouched.
type UpdateProjectRequest struct {
	ID            uuid.UUID
	Name          *string
	Info          *string
	Deadline      *time.Time
	ClearDeadline bool
	Priority      *domain.Priority
	ContactID     *uuid.UUID
	Visibility    *domain.Visibility
}

// ListProjectsRequest controls the visibility filtering applied to listings.
type ListProjectsRequest struct {
	IncludeDisabled bool
	IncludeSystem   bool
	ViewerIsAdmin   bool
}

// CreateLocaleRequest captures the information required to register a locale.
type CreateLocaleRequest struct {
	Code            string
	Name            string
	Direction       string
	Script          string
	Population      int
	CLDRPlurals     []int
	TeamDescription *string
}

// Validate checks field-level constraints before domain rules run.
func (r CreateLocaleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Code, validation.Required.Error("code is required")),
		validation.Field(&r.Name, validation.Required.Error("name is required")),
		validation.Field(&r.Population, validation.Min(0).Error("population must be zero or positive")),
	)
}

// EnableLocaleRequest pairs a project with a locale code.
type EnableLocaleRequest struct {
	ProjectID uuid.UUID
	Locale    string
	Readonly  bool
}

// SetReadonlyRequest toggles the readonly flag on a project locale.
type SetReadonlyRequest struct {
	ProjectLocaleID uuid.UUID
	Readonly        bool
}

// ProjectRepository abstracts storage operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, record *Project) (*Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Project, error)
	GetBySlug(ctx context.Context, slug string) (*Project, error)
	List(ctx context.Context) ([]*Project, error)
	Update(ctx context.Context, record *Project) (*Project, error)
}

// LocaleRepository abstracts storage operations for locales.
type LocaleRepository interface {
	Create(ctx context.Context, record *Locale) (*Locale, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Locale, error)
	GetByCode(ctx context.Context, code string) (*Locale, error)
	List(ctx context.Context) ([]*Locale, error)
}

// ProjectLocaleRepository abstracts storage operations for project locales.
type ProjectLocaleRepository interface {
	Create(ctx context.Context, record *ProjectLocale) (*ProjectLocale, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ProjectLocale, error)
	GetByPair(ctx context.Context, projectID, localeID uuid.UUID) (*ProjectLocale, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*ProjectLocale, error)
	ListByLocale(ctx context.Context, localeID uuid.UUID) ([]*ProjectLocale, error)
	Update(ctx context.Context, record *ProjectLocale) (*ProjectLocale, error)
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

// WithSlugNormalizer overrides the normalizer applied to project slugs.
func WithSlugNormalizer(normalizer l10ncatalog.SlugNormalizer) ServiceOption {
	return func(s *service) {
		if normalizer != nil {
			s.slugs = normalizer
		}
	}
}

// WithActivityEmitter attaches an activity emitter for catalog mutations.
func WithActivityEmitter(emitter *activity.Emitter) ServiceOption {
	return func(s *service) {
		if emitter != nil {
			s.activity = emitter
		}
	}
}

// service implements Service.
type service struct {
	projects       ProjectRepository
	locales        LocaleRepository
	projectLocales ProjectLocaleRepository
	slugs          l10ncatalog.SlugNormalizer
	activity       *activity.Emitter
	now            func() time.Time
	id             IDGenerator
}

func (s *service) emitActivity(ctx context.Context, verb, objectType string, objectID uuid.UUID, meta map[string]any) {
	if s.activity == nil || !s.activity.Enabled() || objectID == uuid.Nil {
		return
	}
	_ = s.activity.Emit(ctx, activity.Event{
		Verb:       verb,
		ObjectType: objectType,
		ObjectID:   objectID.String(),
		Metadata:   meta,
	})
}

// NewService constructs a catalog service with the required dependencies.
func NewService(projects ProjectRepository, locales LocaleRepository, projectLocales ProjectLocaleRepository, opts ...ServiceOption) Service {
	s := &service{
		projects:       projects,
		locales:        locales,
		projectLocales: projectLocales,
		slugs:          l10ncatalog.DefaultSlugNormalizer(),
		now:            time.Now,
		id:             uuid.New,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CreateProject registers a project and enables any supplied locales.
func (s *service) CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, l10ncatalog.ErrProjectNameRequired
	}

	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		return nil, l10ncatalog.ErrSlugRequired
	}
	normalized, err := s.slugs.Normalize(slug)
	if err != nil || normalized == "" {
		return nil, l10ncatalog.ErrSlugInvalid
	}
	slug = normalized

	priority := req.Priority
	if priority == 0 {
		priority = domain.PriorityLowest
	}
	if !priority.Valid() {
		return nil, l10ncatalog.ErrPriorityInvalid
	}

	if existing, err := s.projects.GetBySlug(ctx, slug); err == nil && existing != nil {
		return nil, l10ncatalog.ErrSlugExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	now := s.now()
	record := &Project{
		ID:            s.id(),
		Name:          name,
		Slug:          slug,
		Info:          strings.TrimSpace(req.Info),
		Deadline:      req.Deadline,
		Priority:      priority,
		ContactID:     req.ContactID,
		Visibility:    domain.NormalizeVisibility(string(req.Visibility)),
		SystemProject: req.SystemProject,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.projects.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	for _, code := range req.Locales {
		if _, err := s.EnableLocale(ctx, EnableLocaleRequest{ProjectID: created.ID, Locale: code}); err != nil {
			return nil, err
		}
	}

	s.emitActivity(ctx, "create", activity.ObjectProject, created.ID, map[string]any{
		"slug": created.Slug,
	})
	return created, nil
}

// UpdateProject applies partial changes to an existing project.
func (s *service) UpdateProject(ctx context.Context, req UpdateProjectRequest) (*Project, error) {
	if req.ID == uuid.Nil {
		return nil, l10ncatalog.ErrProjectIDRequired
	}

	record, err := s.projects.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, l10ncatalog.ErrProjectNameRequired
		}
		record.Name = name
	}
	if req.Info != nil {
		record.Info = strings.TrimSpace(*req.Info)
	}
	if req.ClearDeadline {
		record.Deadline = nil
	} else if req.Deadline != nil {
		record.Deadline = req.Deadline
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, l10ncatalog.ErrPriorityInvalid
		}
		record.Priority = *req.Priority
	}
	if req.ContactID != nil {
		record.ContactID = req.ContactID
	}
	if req.Visibility != nil {
		record.Visibility = domain.NormalizeVisibility(string(*req.Visibility))
	}

	record.UpdatedAt = s.now()
	return s.projects.Update(ctx, record)
}

// DisableProject marks a project disabled and stamps the disable time.
func (s *service) DisableProject(ctx context.Context, id uuid.UUID) (*Project, error) {
	if id == uuid.Nil {
		return nil, l10ncatalog.ErrProjectIDRequired
	}
	record, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.Disabled {
		return record, nil
	}
	now := s.now()
	record.Disabled = true
	record.DateDisabled = &now
	record.UpdatedAt = now
	updated, err := s.projects.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	s.emitActivity(ctx, "disable", activity.ObjectProject, updated.ID, map[string]any{
		"slug": updated.Slug,
	})
	return updated, nil
}

// EnableProject clears the disabled state and its timestamp.
func (s *service) EnableProject(ctx context.Context, id uuid.UUID) (*Project, error) {
	if id == uuid.Nil {
		return nil, l10ncatalog.ErrProjectIDRequired
	}
	record, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !record.Disabled {
		return record, nil
	}
	record.Disabled = false
	record.DateDisabled = nil
	record.UpdatedAt = s.now()
	updated, err := s.projects.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	s.emitActivity(ctx, "enable", activity.ObjectProject, updated.ID, map[string]any{
		"slug": updated.Slug,
	})
	return updated, nil
}

// GetProject fetches a project by identifier.
func (s *service) GetProject(ctx context.Context, id uuid.UUID) (*Project, error) {
	return s.projects.GetByID(ctx, id)
}

// GetProjectBySlug fetches a project by slug.
func (s *service) GetProjectBySlug(ctx context.Context, slug string) (*Project, error) {
	return s.projects.GetBySlug(ctx, strings.TrimSpace(slug))
}

// ListProjects returns projects honoring the availability and visibility rules.
func (s *service) ListProjects(ctx context.Context, req ListProjectsRequest) ([]*Project, error) {
	records, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*Project, 0, len(records))
	for _, record := range records {
		if record.Disabled && !req.IncludeDisabled {
			continue
		}
		if record.SystemProject && !req.IncludeSystem {
			continue
		}
		if record.Visibility == domain.VisibilityPrivate && !req.ViewerIsAdmin {
			continue
		}
		out = append(out, record)
	}

	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// CreateLocale registers a new locale.
func (s *service) CreateLocale(ctx context.Context, req CreateLocaleRequest) (*Locale, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, l10ncatalog.ErrLocaleCodeRequired
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, l10ncatalog.ErrLocaleNameRequired
	}

	if existing, err := s.locales.GetByCode(ctx, code); err == nil && existing != nil {
		return nil, l10ncatalog.ErrLocaleCodeExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	plurals, err := encodeCLDRPlurals(req.CLDRPlurals)
	if err != nil {
		return nil, err
	}

	script := strings.TrimSpace(req.Script)
	if script == "" {
		script = "Latin"
	}

	record := &Locale{
		ID:              s.id(),
		Code:            code,
		Name:            name,
		Direction:       domain.NormalizeDirection(req.Direction),
		Script:          script,
		Population:      req.Population,
		CLDRPlurals:     plurals,
		TeamDescription: req.TeamDescription,
		CreatedAt:       s.now(),
	}

	return s.locales.Create(ctx, record)
}

// GetLocale fetches a locale by identifier.
func (s *service) GetLocale(ctx context.Context, id uuid.UUID) (*Locale, error) {
	return s.locales.GetByID(ctx, id)
}

// GetLocaleByCode fetches a locale by its code.
func (s *service) GetLocaleByCode(ctx context.Context, code string) (*Locale, error) {
	return s.locales.GetByCode(ctx, strings.TrimSpace(code))
}

// ListLocales returns all locales ordered by code.
func (s *service) ListLocales(ctx context.Context) ([]*Locale, error) {
	records, err := s.locales.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Code < records[j].Code
	})
	return records, nil
}

// EnableLocale turns on a locale for a project.
func (s *service) EnableLocale(ctx context.Context, req EnableLocaleRequest) (*ProjectLocale, error) {
	if req.ProjectID == uuid.Nil {
		return nil, l10ncatalog.ErrProjectIDRequired
	}

	project, err := s.projects.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.Disabled {
		return nil, l10ncatalog.ErrProjectDisabled
	}

	locale, err := s.locales.GetByCode(ctx, strings.TrimSpace(req.Locale))
	if err != nil {
		return nil, l10ncatalog.ErrUnknownLocale
	}

	if existing, err := s.projectLocales.GetByPair(ctx, project.ID, locale.ID); err == nil && existing != nil {
		return nil, l10ncatalog.ErrDuplicateProjectLocale
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	record := &ProjectLocale{
		ID:        s.id(),
		ProjectID: project.ID,
		LocaleID:  locale.ID,
		Readonly:  req.Readonly,
		CreatedAt: s.now(),
	}
	created, err := s.projectLocales.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.emitActivity(ctx, "enable_locale", activity.ObjectProjectLocale, created.ID, map[string]any{
		"project": project.Slug,
		"locale":  locale.Code,
	})
	return created, nil
}

// SetReadonly toggles the readonly flag on a project locale.
func (s *service) SetReadonly(ctx context.Context, req SetReadonlyRequest) (*ProjectLocale, error) {
	if req.ProjectLocaleID == uuid.Nil {
		return nil, l10ncatalog.ErrProjectLocaleRequired
	}
	record, err := s.projectLocales.GetByID(ctx, req.ProjectLocaleID)
	if err != nil {
		return nil, err
	}
	if record.Readonly == req.Readonly {
		return record, nil
	}
	record.Readonly = req.Readonly
	return s.projectLocales.Update(ctx, record)
}

// GetProjectLocale resolves the pairing between a project and a locale.
func (s *service) GetProjectLocale(ctx context.Context, projectID, localeID uuid.UUID) (*ProjectLocale, error) {
	return s.projectLocales.GetByPair(ctx, projectID, localeID)
}

// ListProjectLocales returns the locales enabled for a project.
func (s *service) ListProjectLocales(ctx context.Context, projectID uuid.UUID) ([]*ProjectLocale, error) {
	return s.projectLocales.ListByProject(ctx, projectID)
}

// ListLocaleProjects returns the project pairings for a locale.
func (s *service) ListLocaleProjects(ctx context.Context, localeID uuid.UUID) ([]*ProjectLocale, error) {
	return s.projectLocales.ListByLocale(ctx, localeID)
}

func encodeCLDRPlurals(ids []int) (string, error) {
	if len(ids) == 0 {
		return "", nil
	}
	seen := map[int]struct{}{}
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if id < 0 || id > 5 {
			return "", l10ncatalog.ErrCLDRPluralsInvalid
		}
		if _, ok := seen[id]; ok {
			return "", l10ncatalog.ErrCLDRPluralsInvalid
		}
		seen[id] = struct{}{}
		parts = append(parts, strconv.Itoa(id))
	}
	return strings.Join(parts, ","), nil
}
