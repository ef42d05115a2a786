package team

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goliatone/go-l10n/internal/domain"
	"github.com/goliatone/go-l10n/pkg/activity"
	l10nteam "github.com/goliatone/go-l10n/team"
	"github.com/google/uuid"
)

// Service exposes contributor and membership use-cases.
type Service interface {
	AddContributor(ctx context.Context, req AddContributorRequest) (*Contributor, error)
	GetContributor(ctx context.Context, id uuid.UUID) (*Contributor, error)
	GetContributorByEmail(ctx context.Context, email string) (*Contributor, error)
	ListContributors(ctx context.Context, localeID uuid.UUID) ([]*Contributor, error)
	DeactivateContributor(ctx context.Context, id uuid.UUID) (*Contributor, error)

	AssignRole(ctx context.Context, req AssignRoleRequest) (*Membership, error)
	RevokeRole(ctx context.Context, req RevokeRoleRequest) error
	ListMemberships(ctx context.Context, localeID uuid.UUID) ([]*Membership, error)
	ListContributorMemberships(ctx context.Context, contributorID uuid.UUID) ([]*Membership, error)
	RoleSummary(ctx context.Context, contributorID uuid.UUID) (string, error)
}

// AddContributorRequest captures the fields needed to register a contributor.
type AddContributorRequest struct {
	Email string
	Name  string
}

// Validate checks field-level constraints before domain rules run.
func (r AddContributorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("email is required"), is.EmailFormat.Error("email is invalid")),
	)
}

// AssignRoleRequest grants a role on a locale, optionally scoped to a
// project-locale custom translator set.
type AssignRoleRequest struct {
	ContributorID   uuid.UUID
	LocaleID        uuid.UUID
	ProjectLocaleID *uuid.UUID
	Role            domain.Role
}

// RevokeRoleRequest removes a previously granted role.
type RevokeRoleRequest struct {
	ContributorID   uuid.UUID
	LocaleID        uuid.UUID
	ProjectLocaleID *uuid.UUID
	Role            domain.Role
}

// ContributorRepository abstracts storage for contributors.
type ContributorRepository interface {
	Create(ctx context.Context, record *Contributor) (*Contributor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Contributor, error)
	GetByEmail(ctx context.Context, email string) (*Contributor, error)
	List(ctx context.Context) ([]*Contributor, error)
	Update(ctx context.Context, record *Contributor) (*Contributor, error)
}

// MembershipRepository abstracts storage for role grants.
type MembershipRepository interface {
	Create(ctx context.Context, record *Membership) (*Membership, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Find(ctx context.Context, contributorID, localeID uuid.UUID, projectLocaleID *uuid.UUID, role domain.Role) (*Membership, error)
	ListByLocale(ctx context.Context, localeID uuid.UUID) ([]*Membership, error)
	ListByContributor(ctx context.Context, contributorID uuid.UUID) ([]*Membership, error)
	ListByProjectLocale(ctx context.Context, projectLocaleID uuid.UUID) ([]*Membership, error)
}

// LocaleResolver resolves locale codes for role summaries.
type LocaleResolver interface {
	LocaleCode(ctx context.Context, id uuid.UUID) (string, error)
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

// WithLocaleResolver wires locale code lookups used by RoleSummary.
func WithLocaleResolver(resolver LocaleResolver) ServiceOption {
	return func(s *service) {
		if resolver != nil {
			s.localeCodes = resolver
		}
	}
}

// WithActivityEmitter attaches an activity emitter for membership changes.
func WithActivityEmitter(emitter *activity.Emitter) ServiceOption {
	return func(s *service) {
		if emitter != nil {
			s.activity = emitter
		}
	}
}

type service struct {
	contributors ContributorRepository
	memberships  MembershipRepository
	localeCodes  LocaleResolver
	activity     *activity.Emitter
	now          func() time.Time
	id           IDGenerator
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

// NewService constructs a team service with the required dependencies.
func NewService(contributors ContributorRepository, memberships MembershipRepository, opts ...ServiceOption) Service {
	s := &service{
		contributors: contributors,
		memberships:  memberships,
		now:          time.Now,
		id:           uuid.New,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// AddContributor registers a contributor keyed by email.
func (s *service) AddContributor(ctx context.Context, req AddContributorRequest) (*Contributor, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, l10nteam.ErrEmailRequired
	}
	if err := (AddContributorRequest{Email: email, Name: req.Name}).Validate(); err != nil {
		return nil, l10nteam.ErrEmailInvalid
	}

	if existing, err := s.contributors.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, l10nteam.ErrEmailExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	record := &Contributor{
		ID:        s.id(),
		Email:     email,
		Name:      strings.TrimSpace(req.Name),
		Active:    true,
		CreatedAt: s.now(),
	}
	return s.contributors.Create(ctx, record)
}

// GetContributor fetches a contributor by identifier.
func (s *service) GetContributor(ctx context.Context, id uuid.UUID) (*Contributor, error) {
	return s.contributors.GetByID(ctx, id)
}

// GetContributorByEmail fetches a contributor by normalized email.
func (s *service) GetContributorByEmail(ctx context.Context, email string) (*Contributor, error) {
	return s.contributors.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// ListContributors returns contributors with team-level roles on a locale.
func (s *service) ListContributors(ctx context.Context, localeID uuid.UUID) ([]*Contributor, error) {
	if localeID == uuid.Nil {
		return nil, l10nteam.ErrLocaleRequired
	}
	memberships, err := s.memberships.ListByLocale(ctx, localeID)
	if err != nil {
		return nil, err
	}

	seen := map[uuid.UUID]struct{}{}
	out := make([]*Contributor, 0, len(memberships))
	for _, membership := range memberships {
		if !membership.TeamLevel() {
			continue
		}
		if _, ok := seen[membership.ContributorID]; ok {
			continue
		}
		seen[membership.ContributorID] = struct{}{}

		contributor, err := s.contributors.GetByID(ctx, membership.ContributorID)
		if err != nil {
			return nil, err
		}
		out = append(out, contributor)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].DisplayName() < out[j].DisplayName()
	})
	return out, nil
}

// DeactivateContributor marks a contributor inactive.
func (s *service) DeactivateContributor(ctx context.Context, id uuid.UUID) (*Contributor, error) {
	record, err := s.contributors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !record.Active {
		return record, nil
	}
	record.Active = false
	return s.contributors.Update(ctx, record)
}

// AssignRole grants a role, rejecting duplicates and manager grants on
// custom translator sets.
func (s *service) AssignRole(ctx context.Context, req AssignRoleRequest) (*Membership, error) {
	if req.ContributorID == uuid.Nil {
		return nil, l10nteam.ErrContributorRequired
	}
	if req.LocaleID == uuid.Nil {
		return nil, l10nteam.ErrLocaleRequired
	}
	if !domain.ValidRole(string(req.Role)) {
		return nil, l10nteam.ErrRoleInvalid
	}
	if req.ProjectLocaleID != nil && req.Role != domain.RoleTranslator {
		return nil, l10nteam.ErrManagerRoleOnOverride
	}

	contributor, err := s.contributors.GetByID(ctx, req.ContributorID)
	if err != nil {
		return nil, err
	}
	if !contributor.Active {
		return nil, l10nteam.ErrContributorInactive
	}

	if existing, err := s.memberships.Find(ctx, req.ContributorID, req.LocaleID, req.ProjectLocaleID, req.Role); err == nil && existing != nil {
		return nil, l10nteam.ErrMembershipExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	record := &Membership{
		ID:              s.id(),
		ContributorID:   req.ContributorID,
		LocaleID:        req.LocaleID,
		ProjectLocaleID: req.ProjectLocaleID,
		Role:            req.Role,
		CreatedAt:       s.now(),
	}
	created, err := s.memberships.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	s.emitActivity(ctx, "assign_role", activity.ObjectMembership, created.ID, map[string]any{
		"contributor_id": req.ContributorID.String(),
		"locale_id":      req.LocaleID.String(),
		"role":           string(req.Role),
	})
	return created, nil
}

// RevokeRole removes a previously granted role.
func (s *service) RevokeRole(ctx context.Context, req RevokeRoleRequest) error {
	if req.ContributorID == uuid.Nil {
		return l10nteam.ErrContributorRequired
	}
	if req.LocaleID == uuid.Nil {
		return l10nteam.ErrLocaleRequired
	}
	existing, err := s.memberships.Find(ctx, req.ContributorID, req.LocaleID, req.ProjectLocaleID, req.Role)
	if err != nil {
		var notFound *NotFoundError
		if errors.As(err, &notFound) {
			return l10nteam.ErrMembershipNotFound
		}
		return err
	}
	if err := s.memberships.Delete(ctx, existing.ID); err != nil {
		return err
	}
	s.emitActivity(ctx, "revoke_role", activity.ObjectMembership, existing.ID, map[string]any{
		"contributor_id": req.ContributorID.String(),
		"locale_id":      req.LocaleID.String(),
		"role":           string(req.Role),
	})
	return nil
}

// ListMemberships returns every grant on a locale.
func (s *service) ListMemberships(ctx context.Context, localeID uuid.UUID) ([]*Membership, error) {
	return s.memberships.ListByLocale(ctx, localeID)
}

// ListContributorMemberships returns every grant held by a contributor.
func (s *service) ListContributorMemberships(ctx context.Context, contributorID uuid.UUID) ([]*Membership, error) {
	return s.memberships.ListByContributor(ctx, contributorID)
}

// RoleSummary renders the contributor's strongest roles, manager first,
// e.g. "Manager for it, sl" or "Translator for de". Contributors without
// team-level grants are plain "Contributor".
func (s *service) RoleSummary(ctx context.Context, contributorID uuid.UUID) (string, error) {
	memberships, err := s.memberships.ListByContributor(ctx, contributorID)
	if err != nil {
		return "", err
	}

	managed := make([]string, 0)
	translated := make([]string, 0)
	for _, membership := range memberships {
		if !membership.TeamLevel() {
			continue
		}
		code := membership.LocaleID.String()
		if s.localeCodes != nil {
			if resolved, err := s.localeCodes.LocaleCode(ctx, membership.LocaleID); err == nil && resolved != "" {
				code = resolved
			}
		}
		switch membership.Role {
		case domain.RoleManager:
			managed = append(managed, code)
		case domain.RoleTranslator:
			translated = append(translated, code)
		}
	}

	if len(managed) > 0 {
		sort.Strings(managed)
		return "Manager for " + strings.Join(managed, ", "), nil
	}
	if len(translated) > 0 {
		sort.Strings(translated)
		return "Translator for " + strings.Join(translated, ", "), nil
	}
	return "Contributor", nil
}
