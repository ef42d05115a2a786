package team_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-l10n/internal/domain"
	"github.com/goliatone/go-l10n/internal/team"
	l10nteam "github.com/goliatone/go-l10n/team"
	"github.com/google/uuid"
)

type staticLocaleResolver map[uuid.UUID]string

func (r staticLocaleResolver) LocaleCode(_ context.Context, id uuid.UUID) (string, error) {
	return r[id], nil
}

func newTeamService(resolver team.LocaleResolver) (team.Service, *team.MemoryMembershipRepository) {
	contributors := team.NewMemoryContributorRepository()
	memberships := team.NewMemoryMembershipRepository()
	opts := []team.ServiceOption{
		team.WithClock(func() time.Time { return time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC) }),
	}
	if resolver != nil {
		opts = append(opts, team.WithLocaleResolver(resolver))
	}
	return team.NewService(contributors, memberships, opts...), memberships
}

func addContributor(t *testing.T, svc team.Service, email string) *team.Contributor {
	t.Helper()
	contributor, err := svc.AddContributor(context.Background(), team.AddContributorRequest{Email: email})
	if err != nil {
		t.Fatalf("add contributor %s: %v", email, err)
	}
	return contributor
}

func TestAddContributorNormalizesEmail(t *testing.T) {
	svc, _ := newTeamService(nil)
	ctx := context.Background()

	contributor, err := svc.AddContributor(ctx, team.AddContributorRequest{Email: "  Maja@Example.ORG "})
	if err != nil {
		t.Fatalf("add contributor: %v", err)
	}
	if contributor.Email != "maja@example.org" {
		t.Fatalf("expected normalized email, got %q", contributor.Email)
	}
	if contributor.DisplayName() != "maja" {
		t.Fatalf("expected email local part fallback, got %q", contributor.DisplayName())
	}

	if _, err := svc.AddContributor(ctx, team.AddContributorRequest{Email: "maja@example.org"}); !errors.Is(err, l10nteam.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
	if _, err := svc.AddContributor(ctx, team.AddContributorRequest{Email: "not-an-email"}); !errors.Is(err, l10nteam.ErrEmailInvalid) {
		t.Fatalf("expected ErrEmailInvalid, got %v", err)
	}
}

func TestGravatarURLUsesLowercasedEmail(t *testing.T) {
	contributor := &team.Contributor{Email: "Person@Example.com"}
	url := contributor.GravatarURL(88)
	if !strings.Contains(url, "secure.gravatar.com/avatar/") {
		t.Fatalf("unexpected gravatar url %q", url)
	}
	if !strings.Contains(url, "s=88") {
		t.Fatalf("expected size parameter in %q", url)
	}
}

func TestAssignRoleRejectsManagerOnCustomSet(t *testing.T) {
	svc, _ := newTeamService(nil)
	ctx := context.Background()

	contributor := addContributor(t, svc, "translator@example.org")
	localeID := uuid.New()
	pairID := uuid.New()

	if _, err := svc.AssignRole(ctx, team.AssignRoleRequest{
		ContributorID:   contributor.ID,
		LocaleID:        localeID,
		ProjectLocaleID: &pairID,
		Role:            domain.RoleManager,
	}); !errors.Is(err, l10nteam.ErrManagerRoleOnOverride) {
		t.Fatalf("expected ErrManagerRoleOnOverride, got %v", err)
	}

	if _, err := svc.AssignRole(ctx, team.AssignRoleRequest{
		ContributorID:   contributor.ID,
		LocaleID:        localeID,
		ProjectLocaleID: &pairID,
		Role:            domain.RoleTranslator,
	}); err != nil {
		t.Fatalf("assign custom translator: %v", err)
	}
}

func TestAssignRoleRejectsDuplicates(t *testing.T) {
	svc, _ := newTeamService(nil)
	ctx := context.Background()

	contributor := addContributor(t, svc, "dup@example.org")
	localeID := uuid.New()

	if _, err := svc.AssignRole(ctx, team.AssignRoleRequest{ContributorID: contributor.ID, LocaleID: localeID, Role: domain.RoleTranslator}); err != nil {
		t.Fatalf("assign role: %v", err)
	}
	if _, err := svc.AssignRole(ctx, team.AssignRoleRequest{ContributorID: contributor.ID, LocaleID: localeID, Role: domain.RoleTranslator}); !errors.Is(err, l10nteam.ErrMembershipExists) {
		t.Fatalf("expected ErrMembershipExists, got %v", err)
	}
	if _, err := svc.AssignRole(ctx, team.AssignRoleRequest{ContributorID: contributor.ID, LocaleID: localeID, Role: domain.Role("owner")}); !errors.Is(err, l10nteam.ErrRoleInvalid) {
		t.Fatalf("expected ErrRoleInvalid, got %v", err)
	}
}

func TestRevokeRoleRemovesMembership(t *testing.T) {
	svc, _ := newTeamService(nil)
	ctx := context.Background()

	contributor := addContributor(t, svc, "leaver@example.org")
	localeID := uuid.New()

	if _, err := svc.AssignRole(ctx, team.AssignRoleRequest{ContributorID: contributor.ID, LocaleID: localeID, Role: domain.RoleManager}); err != nil {
		t.Fatalf("assign role: %v", err)
	}
	if err := svc.RevokeRole(ctx, team.RevokeRoleRequest{ContributorID: contributor.ID, LocaleID: localeID, Role: domain.RoleManager}); err != nil {
		t.Fatalf("revoke role: %v", err)
	}
	if err := svc.RevokeRole(ctx, team.RevokeRoleRequest{ContributorID: contributor.ID, LocaleID: localeID, Role: domain.RoleManager}); !errors.Is(err, l10nteam.ErrMembershipNotFound) {
		t.Fatalf("expected ErrMembershipNotFound, got %v", err)
	}
}

func TestRoleSummaryPrefersManager(t *testing.T) {
	itID := uuid.New()
	slID := uuid.New()
	deID := uuid.New()
	resolver := staticLocaleResolver{itID: "it", slID: "sl", deID: "de"}

	svc, _ := newTeamService(resolver)
	ctx := context.Background()

	contributor := addContributor(t, svc, "summary@example.org")

	if _, err := svc.AssignRole(ctx, team.AssignRoleRequest{ContributorID: contributor.ID, LocaleID: slID, Role: domain.RoleManager}); err != nil {
		t.Fatalf("assign manager: %v", err)
	}
	if _, err := svc.AssignRole(ctx, team.AssignRoleRequest{ContributorID: contributor.ID, LocaleID: itID, Role: domain.RoleManager}); err != nil {
		t.Fatalf("assign manager: %v", err)
	}
	if _, err := svc.AssignRole(ctx, team.AssignRoleRequest{ContributorID: contributor.ID, LocaleID: deID, Role: domain.RoleTranslator}); err != nil {
		t.Fatalf("assign translator: %v", err)
	}

	summary, err := svc.RoleSummary(ctx, contributor.ID)
	if err != nil {
		t.Fatalf("role summary: %v", err)
	}
	if summary != "Manager for it, sl" {
		t.Fatalf("unexpected summary %q", summary)
	}

	plain := addContributor(t, svc, "plain@example.org")
	summary, err = svc.RoleSummary(ctx, plain.ID)
	if err != nil {
		t.Fatalf("role summary: %v", err)
	}
	if summary != "Contributor" {
		t.Fatalf("unexpected summary %q", summary)
	}
}

func TestListContributorsSkipsCustomSets(t *testing.T) {
	svc, _ := newTeamService(nil)
	ctx := context.Background()

	localeID := uuid.New()
	pairID := uuid.New()
	teamMember := addContributor(t, svc, "team@example.org")
	overrideOnly := addContributor(t, svc, "override@example.org")

	if _, err := svc.AssignRole(ctx, team.AssignRoleRequest{ContributorID: teamMember.ID, LocaleID: localeID, Role: domain.RoleTranslator}); err != nil {
		t.Fatalf("assign role: %v", err)
	}
	if _, err := svc.AssignRole(ctx, team.AssignRoleRequest{ContributorID: overrideOnly.ID, LocaleID: localeID, ProjectLocaleID: &pairID, Role: domain.RoleTranslator}); err != nil {
		t.Fatalf("assign override role: %v", err)
	}

	contributors, err := svc.ListContributors(ctx, localeID)
	if err != nil {
		t.Fatalf("list contributors: %v", err)
	}
	if len(contributors) != 1 || contributors[0].ID != teamMember.ID {
		t.Fatalf("expected only team-level contributor, got %d", len(contributors))
	}
}

func TestDeactivateContributorBlocksNewRoles(t *testing.T) {
	svc, _ := newTeamService(nil)
	ctx := context.Background()

	contributor := addContributor(t, svc, "gone@example.org")
	if _, err := svc.DeactivateContributor(ctx, contributor.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := svc.AssignRole(ctx, team.AssignRoleRequest{ContributorID: contributor.ID, LocaleID: uuid.New(), Role: domain.RoleTranslator}); !errors.Is(err, l10nteam.ErrContributorInactive) {
		t.Fatalf("expected ErrContributorInactive, got %v", err)
	}
}
