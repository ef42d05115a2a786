package dashboard_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-l10n/internal/catalog"
	"github.com/goliatone/go-l10n/internal/dashboard"
	"github.com/goliatone/go-l10n/internal/domain"
	"github.com/goliatone/go-l10n/internal/progress"
	"github.com/goliatone/go-l10n/internal/team"
	l10nprogress "github.com/goliatone/go-l10n/progress"
)

func testClock() time.Time {
	return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
}

type fixture struct {
	catalog   catalog.Service
	progress  progress.Service
	team      team.Service
	dashboard dashboard.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	catalogSvc := catalog.NewService(
		catalog.NewMemoryProjectRepository(),
		catalog.NewMemoryLocaleRepository(),
		catalog.NewMemoryProjectLocaleRepository(),
		catalog.WithClock(testClock),
	)
	progressSvc := progress.NewService(
		progress.NewMemoryStatsRepository(),
		progress.NewMemoryActivityRepository(),
		progress.WithClock(testClock),
	)
	teamSvc := team.NewService(
		team.NewMemoryContributorRepository(),
		team.NewMemoryMembershipRepository(),
		team.WithClock(testClock),
	)
	return &fixture{
		catalog:  catalogSvc,
		progress: progressSvc,
		team:     teamSvc,
		dashboard: dashboard.NewService(catalogSvc, progressSvc, teamSvc,
			dashboard.WithClock(testClock)),
	}
}

func (f *fixture) seedProject(t *testing.T, name string, deadline *time.Time) *catalog.Project {
	t.Helper()
	project, err := f.catalog.CreateProject(context.Background(), catalog.CreateProjectRequest{
		Name:       name,
		Slug:       name,
		Info:       "Mobile browser with **tracking protection**.",
		Deadline:   deadline,
		Priority:   domain.PriorityHigh,
		Visibility: domain.VisibilityPublic,
	})
	if err != nil {
		t.Fatalf("seed project %s: %v", name, err)
	}
	return project
}

func (f *fixture) seedLocale(t *testing.T, code string) *catalog.Locale {
	t.Helper()
	locale, err := f.catalog.CreateLocale(context.Background(), catalog.CreateLocaleRequest{
		Code:        code,
		Name:        strings.ToUpper(code),
		CLDRPlurals: []int{1, 5},
	})
	if err != nil {
		t.Fatalf("seed locale %s: %v", code, err)
	}
	return locale
}

func TestProjectRowsRenderInfoAndChart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	project := f.seedProject(t, "Firefox", nil)

	if _, err := f.progress.SetSnapshot(ctx, l10nprogress.ProjectScope(project.ID), progress.Snapshot{
		Total:    100,
		Approved: 75,
	}); err != nil {
		t.Fatalf("set snapshot: %v", err)
	}

	rows, err := f.dashboard.ProjectRows(ctx, dashboard.ProjectRowsRequest{ViewerIsAdmin: true})
	if err != nil {
		t.Fatalf("project rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	row := rows[0]
	if row.URL != "/projects/firefox" {
		t.Fatalf("expected fallback URL, got %q", row.URL)
	}
	if row.Chart.CompletionPercent != 75 {
		t.Fatalf("expected 75%% completion, got %d", row.Chart.CompletionPercent)
	}
	if !strings.Contains(row.InfoHTML, "<strong>tracking protection</strong>") {
		t.Fatalf("expected rendered markdown, got %q", row.InfoHTML)
	}
	if row.PriorityLabel != "High" {
		t.Fatalf("expected High priority label, got %q", row.PriorityLabel)
	}
}

func TestDeadlineStates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	past := testClock().Add(-24 * time.Hour)
	soon := testClock().Add(3 * 24 * time.Hour)
	far := testClock().Add(60 * 24 * time.Hour)

	f.seedProject(t, "Overdue", &past)
	f.seedProject(t, "Soon", &soon)
	f.seedProject(t, "Far", &far)

	rows, err := f.dashboard.ProjectRows(ctx, dashboard.ProjectRowsRequest{ViewerIsAdmin: true})
	if err != nil {
		t.Fatalf("project rows: %v", err)
	}

	states := map[string]dashboard.DeadlineState{}
	for _, row := range rows {
		states[row.Name] = row.DeadlineState
	}
	if states["Overdue"] != dashboard.DeadlineOverdue {
		t.Fatalf("expected overdue, got %s", states["Overdue"])
	}
	if states["Soon"] != dashboard.DeadlineApproaching {
		t.Fatalf("expected approaching, got %s", states["Soon"])
	}
	if states["Far"] != dashboard.DeadlineNone {
		t.Fatalf("expected none, got %s", states["Far"])
	}
}

func TestProjectDetailListsPairs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.seedLocale(t, "de")
	f.seedLocale(t, "sl")
	project := f.seedProject(t, "Firefox", nil)

	for _, code := range []string{"de", "sl"} {
		if _, err := f.catalog.EnableLocale(ctx, catalog.EnableLocaleRequest{
			ProjectID: project.ID,
			Locale:    code,
		}); err != nil {
			t.Fatalf("enable locale %s: %v", code, err)
		}
	}

	detail, err := f.dashboard.ProjectDetail(ctx, "firefox")
	if err != nil {
		t.Fatalf("project detail: %v", err)
	}
	if len(detail.Locales) != 2 {
		t.Fatalf("expected 2 pair rows, got %d", len(detail.Locales))
	}
	if detail.Locales[0].URL != "/projects/firefox/de" && detail.Locales[1].URL != "/projects/firefox/de" {
		t.Fatalf("expected pair URL for de, got %+v", detail.Locales)
	}
}

func TestTeamPageMembersAndProjects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	locale := f.seedLocale(t, "sl")
	project := f.seedProject(t, "Firefox", nil)
	if _, err := f.catalog.EnableLocale(ctx, catalog.EnableLocaleRequest{
		ProjectID: project.ID,
		Locale:    "sl",
	}); err != nil {
		t.Fatalf("enable locale: %v", err)
	}

	contributor, err := f.team.AddContributor(ctx, team.AddContributorRequest{
		Email: "matjaz@example.com",
		Name:  "Matjaz",
	})
	if err != nil {
		t.Fatalf("add contributor: %v", err)
	}
	if _, err := f.team.AssignRole(ctx, team.AssignRoleRequest{
		ContributorID: contributor.ID,
		LocaleID:      locale.ID,
		Role:          domain.RoleManager,
	}); err != nil {
		t.Fatalf("assign role: %v", err)
	}

	page, err := f.dashboard.TeamPage(ctx, "sl")
	if err != nil {
		t.Fatalf("team page: %v", err)
	}
	if page.URL != "/teams/sl" {
		t.Fatalf("expected team URL, got %q", page.URL)
	}
	if len(page.Members) != 1 || page.Members[0].Name != "Matjaz" {
		t.Fatalf("expected one member Matjaz, got %+v", page.Members)
	}
	if !strings.Contains(page.Members[0].AvatarURL, "secure.gravatar.com") {
		t.Fatalf("expected gravatar URL, got %q", page.Members[0].AvatarURL)
	}
	if len(page.Projects) != 1 || page.Projects[0].ProjectSlug != "firefox" {
		t.Fatalf("expected one project pair, got %+v", page.Projects)
	}
	if len(page.PluralNames) != 2 {
		t.Fatalf("expected 2 plural names, got %v", page.PluralNames)
	}
}

func TestOverviewRanksInstances(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	big := f.seedProject(t, "Big", nil)
	small := f.seedProject(t, "Small", nil)

	if _, err := f.progress.SetSnapshot(ctx, l10nprogress.ProjectScope(big.ID), progress.Snapshot{Total: 500, Approved: 100}); err != nil {
		t.Fatalf("set snapshot: %v", err)
	}
	if _, err := f.progress.SetSnapshot(ctx, l10nprogress.ProjectScope(small.ID), progress.Snapshot{Total: 50, Approved: 40}); err != nil {
		t.Fatalf("set snapshot: %v", err)
	}

	overview, err := f.dashboard.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.TotalProjects != 2 {
		t.Fatalf("expected 2 projects, got %d", overview.TotalProjects)
	}
	if overview.Projects.MostStrings.Name != "Big" {
		t.Fatalf("expected Big to lead strings, got %q", overview.Projects.MostStrings.Name)
	}
	if overview.Projects.MostMissing.Name != "Big" {
		t.Fatalf("expected Big to lead missing, got %q", overview.Projects.MostMissing.Name)
	}
}
