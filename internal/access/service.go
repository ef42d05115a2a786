package access

import (
	"context"
	"errors"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-l10n/internal/catalog"
	"github.com/goliatone/go-l10n/internal/domain"
	"github.com/goliatone/go-l10n/internal/team"
	"github.com/google/uuid"
)

var (
	ErrLocaleRequired      = errors.New("access: locale id required")
	ErrPerformerRequired   = errors.New("access: performed_by is required")
	ErrContributorRequired = errors.New("access: contributor id required")
	ErrProjectRequired     = errors.New("access: project id required")
	ErrUnknownProjectPair  = errors.New("access: project locale does not belong to the locale")
)

// Service answers permission questions and edits the permission matrix.
type Service interface {
	CanTranslate(ctx context.Context, contributorID, projectID, localeID uuid.UUID) (bool, error)
	CanManage(ctx context.Context, contributorID, localeID uuid.UUID) (bool, error)
	Matrix(ctx context.Context, localeID uuid.UUID) (*Matrix, error)
	ApplyMatrix(ctx context.Context, req ApplyMatrixRequest) (*ApplyMatrixResult, error)
	Changelog(ctx context.Context, localeID uuid.UUID) ([]*team.PermissionChange, error)
}

// Matrix is the editable permission state of one locale.
type Matrix struct {
	LocaleID    uuid.UUID   `json:"locale_id"`
	Managers    []uuid.UUID `json:"managers"`
	Translators []uuid.UUID `json:"translators"`
	Projects    []MatrixRow `json:"projects"`
}

// MatrixRow is the per-project slice of the matrix.
type MatrixRow struct {
	ProjectLocaleID      uuid.UUID   `json:"project_locale_id"`
	ProjectID            uuid.UUID   `json:"project_id"`
	ProjectSlug          string      `json:"project_slug"`
	ProjectName          string      `json:"project_name"`
	Readonly             bool        `json:"readonly"`
	HasCustomTranslators bool        `json:"has_custom_translators"`
	Translators          []uuid.UUID `json:"translators"`
}

// ApplyMatrixRequest carries the full desired state of a locale's matrix.
type ApplyMatrixRequest struct {
	LocaleID    uuid.UUID
	PerformedBy uuid.UUID
	Managers    []uuid.UUID
	Translators []uuid.UUID
	Projects    []MatrixProjectInput
}

// MatrixProjectInput carries the desired state of one project row.
type MatrixProjectInput struct {
	ProjectLocaleID      uuid.UUID
	HasCustomTranslators bool
	Translators          []uuid.UUID
}

// Validate checks field-level constraints before diffing runs.
func (r ApplyMatrixRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.LocaleID, validation.By(requiredUUID("locale_id"))),
		validation.Field(&r.PerformedBy, validation.By(requiredUUID("performed_by"))),
	)
}

func requiredUUID(field string) validation.RuleFunc {
	return func(value any) error {
		id, ok := value.(uuid.UUID)
		if !ok || id == uuid.Nil {
			return validation.NewError("l10n.access."+field+"_required", field+" is required")
		}
		return nil
	}
}

// ApplyMatrixResult reports what the matrix edit changed.
type ApplyMatrixResult struct {
	Changes []*team.PermissionChange
}

// ChangeLog abstracts storage for permission change records.
type ChangeLog interface {
	Create(ctx context.Context, record *team.PermissionChange) (*team.PermissionChange, error)
	ListByLocale(ctx context.Context, localeID uuid.UUID) ([]*team.PermissionChange, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp change records.
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
	memberships    team.MembershipRepository
	projectLocales catalog.ProjectLocaleRepository
	projects       catalog.ProjectRepository
	changes        ChangeLog
	now            func() time.Time
	id             IDGenerator
}

// NewService constructs an access service with the required dependencies.
func NewService(memberships team.MembershipRepository, projectLocales catalog.ProjectLocaleRepository, projects catalog.ProjectRepository, changes ChangeLog, opts ...ServiceOption) Service {
	s := &service{
		memberships:    memberships,
		projectLocales: projectLocales,
		projects:       projects,
		changes:        changes,
		now:            time.Now,
		id:             uuid.New,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CanTranslate decides whether a contributor may submit translations for a
// project-locale. Managers always can; when the pairing carries a custom
// translator set only its members can; otherwise the team translators can.
func (s *service) CanTranslate(ctx context.Context, contributorID, projectID, localeID uuid.UUID) (bool, error) {
	if contributorID == uuid.Nil {
		return false, ErrContributorRequired
	}
	if projectID == uuid.Nil {
		return false, ErrProjectRequired
	}
	if localeID == uuid.Nil {
		return false, ErrLocaleRequired
	}

	manager, err := s.CanManage(ctx, contributorID, localeID)
	if err != nil {
		return false, err
	}
	if manager {
		return true, nil
	}

	pair, err := s.projectLocales.GetByPair(ctx, projectID, localeID)
	if err != nil {
		var notFound *catalog.NotFoundError
		if errors.As(err, &notFound) {
			return false, nil
		}
		return false, err
	}

	memberships, err := s.memberships.ListByContributor(ctx, contributorID)
	if err != nil {
		return false, err
	}

	if pair.HasCustomTranslators {
		for _, membership := range memberships {
			if membership.Role != domain.RoleTranslator {
				continue
			}
			if membership.ProjectLocaleID != nil && *membership.ProjectLocaleID == pair.ID {
				return true, nil
			}
		}
		return false, nil
	}

	for _, membership := range memberships {
		if membership.Role == domain.RoleTranslator && membership.TeamLevel() && membership.LocaleID == localeID {
			return true, nil
		}
	}
	return false, nil
}

// CanManage reports whether the contributor holds a manager grant on the locale.
func (s *service) CanManage(ctx context.Context, contributorID, localeID uuid.UUID) (bool, error) {
	if contributorID == uuid.Nil {
		return false, ErrContributorRequired
	}
	if localeID == uuid.Nil {
		return false, ErrLocaleRequired
	}
	memberships, err := s.memberships.ListByContributor(ctx, contributorID)
	if err != nil {
		return false, err
	}
	for _, membership := range memberships {
		if membership.Role == domain.RoleManager && membership.TeamLevel() && membership.LocaleID == localeID {
			return true, nil
		}
	}
	return false, nil
}

// Matrix assembles the permission editor state for a locale.
func (s *service) Matrix(ctx context.Context, localeID uuid.UUID) (*Matrix, error) {
	if localeID == uuid.Nil {
		return nil, ErrLocaleRequired
	}

	memberships, err := s.memberships.ListByLocale(ctx, localeID)
	if err != nil {
		return nil, err
	}

	matrix := &Matrix{
		LocaleID:    localeID,
		Managers:    make([]uuid.UUID, 0),
		Translators: make([]uuid.UUID, 0),
	}
	overrides := map[uuid.UUID][]uuid.UUID{}
	for _, membership := range memberships {
		if membership.TeamLevel() {
			switch membership.Role {
			case domain.RoleManager:
				matrix.Managers = append(matrix.Managers, membership.ContributorID)
			case domain.RoleTranslator:
				matrix.Translators = append(matrix.Translators, membership.ContributorID)
			}
			continue
		}
		key := *membership.ProjectLocaleID
		overrides[key] = append(overrides[key], membership.ContributorID)
	}
	sortIDs(matrix.Managers)
	sortIDs(matrix.Translators)

	pairs, err := s.projectLocales.ListByLocale(ctx, localeID)
	if err != nil {
		return nil, err
	}
	for _, pair := range pairs {
		row := MatrixRow{
			ProjectLocaleID:      pair.ID,
			ProjectID:            pair.ProjectID,
			Readonly:             pair.Readonly,
			HasCustomTranslators: pair.HasCustomTranslators,
			Translators:          overrides[pair.ID],
		}
		if row.Translators == nil {
			row.Translators = make([]uuid.UUID, 0)
		}
		sortIDs(row.Translators)

		if pair.Project != nil {
			row.ProjectSlug = pair.Project.Slug
			row.ProjectName = pair.Project.Name
		} else if project, err := s.projects.GetByID(ctx, pair.ProjectID); err == nil {
			row.ProjectSlug = project.Slug
			row.ProjectName = project.Name
		}
		matrix.Projects = append(matrix.Projects, row)
	}

	sort.Slice(matrix.Projects, func(i, j int) bool {
		return matrix.Projects[i].ProjectName < matrix.Projects[j].ProjectName
	})
	return matrix, nil
}

// ApplyMatrix diffs the desired state against the stored one, writing
// membership rows and a change record for every difference. Turning
// has_custom_translators off clears the pairing's override set.
func (s *service) ApplyMatrix(ctx context.Context, req ApplyMatrixRequest) (*ApplyMatrixResult, error) {
	if req.LocaleID == uuid.Nil {
		return nil, ErrLocaleRequired
	}
	if req.PerformedBy == uuid.Nil {
		return nil, ErrPerformerRequired
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.Matrix(ctx, req.LocaleID)
	if err != nil {
		return nil, err
	}

	result := &ApplyMatrixResult{Changes: make([]*team.PermissionChange, 0)}

	if err := s.applyGroup(ctx, req, result, current.Managers, req.Managers, domain.RoleManager, nil); err != nil {
		return nil, err
	}
	if err := s.applyGroup(ctx, req, result, current.Translators, req.Translators, domain.RoleTranslator, nil); err != nil {
		return nil, err
	}

	currentRows := map[uuid.UUID]MatrixRow{}
	for _, row := range current.Projects {
		currentRows[row.ProjectLocaleID] = row
	}

	for _, input := range req.Projects {
		row, ok := currentRows[input.ProjectLocaleID]
		if !ok {
			return nil, ErrUnknownProjectPair
		}

		desired := input.Translators
		if !input.HasCustomTranslators {
			desired = nil
		}
		pairID := input.ProjectLocaleID
		if err := s.applyGroup(ctx, req, result, row.Translators, desired, domain.RoleTranslator, &pairID); err != nil {
			return nil, err
		}

		if row.HasCustomTranslators != input.HasCustomTranslators {
			pair, err := s.projectLocales.GetByID(ctx, input.ProjectLocaleID)
			if err != nil {
				return nil, err
			}
			pair.HasCustomTranslators = input.HasCustomTranslators
			if _, err := s.projectLocales.Update(ctx, pair); err != nil {
				return nil, err
			}
		}
	}

	return result, nil
}

// Changelog lists the recorded permission changes for a locale, newest first.
func (s *service) Changelog(ctx context.Context, localeID uuid.UUID) ([]*team.PermissionChange, error) {
	if localeID == uuid.Nil {
		return nil, ErrLocaleRequired
	}
	return s.changes.ListByLocale(ctx, localeID)
}

func (s *service) applyGroup(ctx context.Context, req ApplyMatrixRequest, result *ApplyMatrixResult, current, desired []uuid.UUID, role domain.Role, projectLocaleID *uuid.UUID) error {
	have := map[uuid.UUID]struct{}{}
	for _, id := range current {
		have[id] = struct{}{}
	}
	want := map[uuid.UUID]struct{}{}
	for _, id := range desired {
		if id == uuid.Nil {
			continue
		}
		want[id] = struct{}{}
	}

	for id := range want {
		if _, ok := have[id]; ok {
			continue
		}
		membership := &team.Membership{
			ID:              s.id(),
			ContributorID:   id,
			LocaleID:        req.LocaleID,
			ProjectLocaleID: projectLocaleID,
			Role:            role,
			CreatedAt:       s.now(),
		}
		if _, err := s.memberships.Create(ctx, membership); err != nil {
			return err
		}
		if err := s.recordChange(ctx, result, req, id, role, projectLocaleID, domain.ChangeActionAdded); err != nil {
			return err
		}
	}

	for id := range have {
		if _, ok := want[id]; ok {
			continue
		}
		existing, err := s.memberships.Find(ctx, id, req.LocaleID, projectLocaleID, role)
		if err != nil {
			return err
		}
		if err := s.memberships.Delete(ctx, existing.ID); err != nil {
			return err
		}
		if err := s.recordChange(ctx, result, req, id, role, projectLocaleID, domain.ChangeActionRemoved); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) recordChange(ctx context.Context, result *ApplyMatrixResult, req ApplyMatrixRequest, contributorID uuid.UUID, role domain.Role, projectLocaleID *uuid.UUID, action domain.ChangeAction) error {
	change := &team.PermissionChange{
		ID:              s.id(),
		Action:          action,
		PerformedByID:   req.PerformedBy,
		PerformedOnID:   contributorID,
		LocaleID:        req.LocaleID,
		ProjectLocaleID: projectLocaleID,
		Role:            role,
		CreatedAt:       s.now(),
	}
	created, err := s.changes.Create(ctx, change)
	if err != nil {
		return err
	}
	result.Changes = append(result.Changes, created)
	return nil
}

func sortIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
}
