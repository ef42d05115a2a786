package l10n_test

import (
	"context"
	"testing"

	l10n "github.com/goliatone/go-l10n"
	"github.com/goliatone/go-l10n/internal/access"
	"github.com/goliatone/go-l10n/internal/catalog"
	"github.com/goliatone/go-l10n/internal/domain"
	"github.com/goliatone/go-l10n/internal/team"
	"github.com/google/uuid"
)

type permissionFixture struct {
	module     *l10n.Module
	localeID   uuid.UUID
	projectID  uuid.UUID
	pairID     uuid.UUID
	manager    uuid.UUID
	translator uuid.UUID
}

func newPermissionFixture(t *testing.T, configure ...func(*l10n.Config)) permissionFixture {
	t.Helper()
	ctx := context.Background()

	cfg := l10n.DefaultConfig()
	for _, mutate := range configure {
		mutate(&cfg)
	}
	module, err := l10n.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	locale, err := module.Catalog().CreateLocale(ctx, catalog.CreateLocaleRequest{
		Code: "fr",
		Name: "French",
	})
	if err != nil {
		t.Fatalf("create locale: %v", err)
	}

	project, err := module.Catalog().CreateProject(ctx, catalog.CreateProjectRequest{
		Name:    "Docs",
		Slug:    "docs",
		Locales: []string{"fr"},
	})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	pair, err := module.Catalog().GetProjectLocale(ctx, project.ID, locale.ID)
	if err != nil {
		t.Fatalf("get project locale: %v", err)
	}

	addContributor := func(email string) uuid.UUID {
		contributor, err := module.Team().AddContributor(ctx, team.AddContributorRequest{Email: email})
		if err != nil {
			t.Fatalf("add contributor %s: %v", email, err)
		}
		return contributor.ID
	}

	return permissionFixture{
		module:     module,
		localeID:   locale.ID,
		projectID:  project.ID,
		pairID:     pair.ID,
		manager:    addContributor("lead@example.com"),
		translator: addContributor("translator@example.com"),
	}
}

func TestModule_ApplyMatrixGrantsAndRevokes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fix := newPermissionFixture(t)
	accessSvc := fix.module.Access()

	result, err := accessSvc.ApplyMatrix(ctx, access.ApplyMatrixRequest{
		LocaleID:    fix.localeID,
		PerformedBy: fix.manager,
		Managers:    []uuid.UUID{fix.manager},
		Translators: []uuid.UUID{fix.translator},
	})
	if err != nil {
		t.Fatalf("apply matrix: %v", err)
	}
	if len(result.Changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(result.Changes))
	}

	matrix, err := accessSvc.Matrix(ctx, fix.localeID)
	if err != nil {
		t.Fatalf("matrix: %v", err)
	}
	if len(matrix.Managers) != 1 || matrix.Managers[0] != fix.manager {
		t.Fatalf("unexpected managers: %v", matrix.Managers)
	}
	if len(matrix.Translators) != 1 || matrix.Translators[0] != fix.translator {
		t.Fatalf("unexpected translators: %v", matrix.Translators)
	}

	ok, err := accessSvc.CanTranslate(ctx, fix.translator, fix.projectID, fix.localeID)
	if err != nil {
		t.Fatalf("can translate: %v", err)
	}
	if !ok {
		t.Fatal("team translator should be allowed to translate")
	}

	// Resubmitting without the translator revokes the grant.
	result, err = accessSvc.ApplyMatrix(ctx, access.ApplyMatrixRequest{
		LocaleID:    fix.localeID,
		PerformedBy: fix.manager,
		Managers:    []uuid.UUID{fix.manager},
	})
	if err != nil {
		t.Fatalf("apply matrix revoke: %v", err)
	}
	if len(result.Changes) != 1 || result.Changes[0].Action != domain.ChangeActionRemoved {
		t.Fatalf("expected one removal, got %+v", result.Changes)
	}

	ok, err = accessSvc.CanTranslate(ctx, fix.translator, fix.projectID, fix.localeID)
	if err != nil {
		t.Fatalf("can translate after revoke: %v", err)
	}
	if ok {
		t.Fatal("revoked translator should be denied")
	}

	changelog, err := accessSvc.Changelog(ctx, fix.localeID)
	if err != nil {
		t.Fatalf("changelog: %v", err)
	}
	if len(changelog) != 3 {
		t.Fatalf("expected 3 changelog entries, got %d", len(changelog))
	}
}

func TestModule_CustomTranslatorsOverrideTeamSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fix := newPermissionFixture(t)
	accessSvc := fix.module.Access()

	projectTranslator, err := fix.module.Team().AddContributor(ctx, team.AddContributorRequest{
		Email: "specialist@example.com",
	})
	if err != nil {
		t.Fatalf("add contributor: %v", err)
	}

	if _, err := accessSvc.ApplyMatrix(ctx, access.ApplyMatrixRequest{
		LocaleID:    fix.localeID,
		PerformedBy: fix.manager,
		Managers:    []uuid.UUID{fix.manager},
		Translators: []uuid.UUID{fix.translator},
		Projects: []access.MatrixProjectInput{
			{
				ProjectLocaleID:      fix.pairID,
				HasCustomTranslators: true,
				Translators:          []uuid.UUID{projectTranslator.ID},
			},
		},
	}); err != nil {
		t.Fatalf("apply matrix: %v", err)
	}

	pair, err := fix.module.Catalog().GetProjectLocale(ctx, fix.projectID, fix.localeID)
	if err != nil {
		t.Fatalf("get project locale: %v", err)
	}
	if !pair.HasCustomTranslators {
		t.Fatal("expected custom translator flag on the pair")
	}

	// The team-level translator loses access to this project.
	ok, err := accessSvc.CanTranslate(ctx, fix.translator, fix.projectID, fix.localeID)
	if err != nil {
		t.Fatalf("can translate: %v", err)
	}
	if ok {
		t.Fatal("team translator should be excluded once the pair has a custom set")
	}

	ok, err = accessSvc.CanTranslate(ctx, projectTranslator.ID, fix.projectID, fix.localeID)
	if err != nil {
		t.Fatalf("can translate custom: %v", err)
	}
	if !ok {
		t.Fatal("project translator should be allowed on the pair")
	}

	// Managers keep access regardless of the custom set.
	ok, err = accessSvc.CanTranslate(ctx, fix.manager, fix.projectID, fix.localeID)
	if err != nil {
		t.Fatalf("can translate manager: %v", err)
	}
	if !ok {
		t.Fatal("locale manager should always be allowed")
	}

	// Disabling the custom set restores the team defaults.
	if _, err := accessSvc.ApplyMatrix(ctx, access.ApplyMatrixRequest{
		LocaleID:    fix.localeID,
		PerformedBy: fix.manager,
		Managers:    []uuid.UUID{fix.manager},
		Translators: []uuid.UUID{fix.translator},
		Projects: []access.MatrixProjectInput{
			{ProjectLocaleID: fix.pairID, HasCustomTranslators: false},
		},
	}); err != nil {
		t.Fatalf("apply matrix reset: %v", err)
	}

	ok, err = accessSvc.CanTranslate(ctx, fix.translator, fix.projectID, fix.localeID)
	if err != nil {
		t.Fatalf("can translate after reset: %v", err)
	}
	if !ok {
		t.Fatal("team translator should regain access when the custom set is removed")
	}
}

func TestModule_CanManageRequiresManagerRole(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	fix := newPermissionFixture(t)
	accessSvc := fix.module.Access()

	if _, err := accessSvc.ApplyMatrix(ctx, access.ApplyMatrixRequest{
		LocaleID:    fix.localeID,
		PerformedBy: fix.manager,
		Managers:    []uuid.UUID{fix.manager},
		Translators: []uuid.UUID{fix.translator},
	}); err != nil {
		t.Fatalf("apply matrix: %v", err)
	}

	ok, err := accessSvc.CanManage(ctx, fix.manager, fix.localeID)
	if err != nil {
		t.Fatalf("can manage: %v", err)
	}
	if !ok {
		t.Fatal("manager should be able to manage the locale")
	}

	ok, err = accessSvc.CanManage(ctx, fix.translator, fix.localeID)
	if err != nil {
		t.Fatalf("can manage translator: %v", err)
	}
	if ok {
		t.Fatal("translator must not manage the locale")
	}
}
