package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-l10n/internal/catalog"
	"github.com/goliatone/go-l10n/internal/domain"
	"github.com/goliatone/go-l10n/internal/progress"
	"github.com/goliatone/go-l10n/internal/team"
	"github.com/goliatone/go-l10n/internal/widgets"
	l10nprogress "github.com/goliatone/go-l10n/progress"
)

// DeadlineState flags how urgent a project deadline is for highlighting.
type DeadlineState string

const (
	DeadlineNone        DeadlineState = "none"
	DeadlineApproaching DeadlineState = "approaching"
	DeadlineOverdue     DeadlineState = "overdue"
)

// deadlineWarnWindow is how far ahead a deadline starts to be highlighted.
const deadlineWarnWindow = 7 * 24 * time.Hour

// ProjectRow is one project entry on the dashboard listing.
type ProjectRow struct {
	ID             string                      `json:"id"`
	Name           string                      `json:"name"`
	Slug           string                      `json:"slug"`
	URL            string                      `json:"url"`
	Priority       domain.Priority             `json:"priority"`
	PriorityLabel  string                      `json:"priority_label"`
	Deadline       *time.Time                  `json:"deadline,omitempty"`
	DeadlineState  DeadlineState               `json:"deadline_state"`
	Disabled       bool                        `json:"disabled"`
	InfoHTML       string                      `json:"info_html,omitempty"`
	Chart          progress.Chart              `json:"chart"`
	LatestActivity *l10nprogress.ActivityEntry `json:"latest_activity,omitempty"`
}

// PairRow is one project-locale entry on a detail or team page.
type PairRow struct {
	ProjectName          string         `json:"project_name"`
	ProjectSlug          string         `json:"project_slug"`
	LocaleCode           string         `json:"locale_code"`
	LocaleName           string         `json:"locale_name"`
	URL                  string         `json:"url"`
	Readonly             bool           `json:"readonly"`
	HasCustomTranslators bool           `json:"has_custom_translators"`
	Chart                progress.Chart `json:"chart"`
}

// ProjectDetail is the full dashboard page for one project.
type ProjectDetail struct {
	ProjectRow
	AvgStringCount int       `json:"avg_string_count"`
	Locales        []PairRow `json:"locales"`
}

// Member is a contributor entry on the team page.
type Member struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	Role      string `json:"role"`
}

// TeamPage is the dashboard page for one locale team.
type TeamPage struct {
	LocaleCode      string                      `json:"locale_code"`
	LocaleName      string                      `json:"locale_name"`
	Direction       domain.Direction            `json:"direction"`
	PluralNames     []string                    `json:"plural_names"`
	TeamDescription string                      `json:"team_description,omitempty"`
	URL             string                      `json:"url"`
	Chart           progress.Chart              `json:"chart"`
	Members         []Member                    `json:"members"`
	Projects        []PairRow                   `json:"projects"`
	LatestActivity  *l10nprogress.ActivityEntry `json:"latest_activity,omitempty"`
}

// Overview ranks projects and locales for the landing page.
type Overview struct {
	TotalProjects int                             `json:"total_projects"`
	TotalLocales  int                             `json:"total_locales"`
	Projects      l10nprogress.TopInstancesResult `json:"projects"`
	Locales       l10nprogress.TopInstancesResult `json:"locales"`
}

// ProjectRowsRequest filters the dashboard project listing.
type ProjectRowsRequest struct {
	IncludeDisabled bool
	IncludeSystem   bool
	ViewerIsAdmin   bool
}

// Service assembles dashboard view models from the catalog, progress, and
// team services.
type Service interface {
	ProjectRows(ctx context.Context, req ProjectRowsRequest) ([]ProjectRow, error)
	ProjectDetail(ctx context.Context, slug string) (*ProjectDetail, error)
	TeamPage(ctx context.Context, code string) (*TeamPage, error)
	Overview(ctx context.Context) (*Overview, error)
	AreaWidgets(ctx context.Context, areaCode string) ([]*widgets.Instance, error)
}

// ServiceOption configures the dashboard service.
type ServiceOption func(*service)

// WithClock overrides the time source used for deadline states.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithInfoRenderer overrides the markdown renderer for project info.
func WithInfoRenderer(renderer InfoRenderer) ServiceOption {
	return func(s *service) {
		if renderer != nil {
			s.info = renderer
		}
	}
}

// WithURLBuilder overrides the dashboard URL builder.
func WithURLBuilder(builder *URLBuilder) ServiceOption {
	return func(s *service) {
		if builder != nil {
			s.urls = builder
		}
	}
}

// WithWidgets attaches the optional widget service for dashboard areas.
func WithWidgets(svc widgets.Service) ServiceOption {
	return func(s *service) {
		s.widgets = svc
	}
}

type service struct {
	catalog  catalog.Service
	progress progress.Service
	team     team.Service
	widgets  widgets.Service
	info     InfoRenderer
	urls     *URLBuilder
	clock    func() time.Time
}

// NewService builds the dashboard service.
func NewService(catalogSvc catalog.Service, progressSvc progress.Service, teamSvc team.Service, opts ...ServiceOption) Service {
	svc := &service{
		catalog:  catalogSvc,
		progress: progressSvc,
		team:     teamSvc,
		info:     NewGoldmarkInfoRenderer(),
		urls:     NewURLBuilder(URLBuilderOptions{}),
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *service) ProjectRows(ctx context.Context, req ProjectRowsRequest) ([]ProjectRow, error) {
	projects, err := s.catalog.ListProjects(ctx, catalog.ListProjectsRequest{
		IncludeDisabled: req.IncludeDisabled,
		IncludeSystem:   req.IncludeSystem,
		ViewerIsAdmin:   req.ViewerIsAdmin,
	})
	if err != nil {
		return nil, err
	}

	rows := make([]ProjectRow, 0, len(projects))
	for _, project := range projects {
		row, err := s.projectRow(ctx, project)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *service) ProjectDetail(ctx context.Context, slug string) (*ProjectDetail, error) {
	project, err := s.catalog.GetProjectBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	row, err := s.projectRow(ctx, project)
	if err != nil {
		return nil, err
	}

	pairs, err := s.catalog.ListProjectLocales(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	detail := &ProjectDetail{ProjectRow: row}
	for _, pair := range pairs {
		locale, err := s.catalog.GetLocale(ctx, pair.LocaleID)
		if err != nil {
			return nil, err
		}
		chart, err := s.progress.Chart(ctx, l10nprogress.ProjectLocaleScope(pair.ProjectID, pair.LocaleID))
		if err != nil {
			return nil, err
		}
		detail.Locales = append(detail.Locales, PairRow{
			ProjectName:          project.Name,
			ProjectSlug:          project.Slug,
			LocaleCode:           locale.Code,
			LocaleName:           locale.Name,
			URL:                  s.urls.ProjectLocaleURL(project.Slug, locale.Code),
			Readonly:             pair.Readonly,
			HasCustomTranslators: pair.HasCustomTranslators,
			Chart:                chart,
		})
	}

	if avg, err := s.progress.AvgStringCount(ctx, project.ID); err == nil {
		detail.AvgStringCount = avg
	}
	return detail, nil
}

func (s *service) TeamPage(ctx context.Context, code string) (*TeamPage, error) {
	locale, err := s.catalog.GetLocaleByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	chart, err := s.progress.Chart(ctx, l10nprogress.LocaleScope(locale.ID))
	if err != nil {
		return nil, err
	}

	page := &TeamPage{
		LocaleCode:  locale.Code,
		LocaleName:  locale.Name,
		Direction:   locale.Direction,
		PluralNames: locale.PluralNames(),
		URL:         s.urls.TeamURL(locale.Code),
		Chart:       chart,
	}
	if locale.TeamDescription != nil {
		page.TeamDescription = *locale.TeamDescription
	}

	contributors, err := s.team.ListContributors(ctx, locale.ID)
	if err != nil {
		return nil, err
	}
	for _, contributor := range contributors {
		role, err := s.team.RoleSummary(ctx, contributor.ID)
		if err != nil {
			return nil, err
		}
		page.Members = append(page.Members, Member{
			Name:      contributor.DisplayName(),
			Email:     contributor.Email,
			AvatarURL: contributor.GravatarURL(44),
			Role:      role,
		})
	}

	pairs, err := s.catalog.ListLocaleProjects(ctx, locale.ID)
	if err != nil {
		return nil, err
	}
	for _, pair := range pairs {
		project, err := s.catalog.GetProject(ctx, pair.ProjectID)
		if err != nil {
			return nil, err
		}
		pairChart, err := s.progress.Chart(ctx, l10nprogress.ProjectLocaleScope(pair.ProjectID, pair.LocaleID))
		if err != nil {
			return nil, err
		}
		page.Projects = append(page.Projects, PairRow{
			ProjectName:          project.Name,
			ProjectSlug:          project.Slug,
			LocaleCode:           locale.Code,
			LocaleName:           locale.Name,
			URL:                  s.urls.ProjectLocaleURL(project.Slug, locale.Code),
			Readonly:             pair.Readonly,
			HasCustomTranslators: pair.HasCustomTranslators,
			Chart:                pairChart,
		})
	}

	if latest, err := s.progress.LatestActivity(ctx, l10nprogress.LocaleScope(locale.ID)); err == nil {
		page.LatestActivity = latest
	}
	return page, nil
}

func (s *service) Overview(ctx context.Context) (*Overview, error) {
	projects, err := s.catalog.ListProjects(ctx, catalog.ListProjectsRequest{})
	if err != nil {
		return nil, err
	}
	locales, err := s.catalog.ListLocales(ctx)
	if err != nil {
		return nil, err
	}

	rankedProjects := make([]l10nprogress.Ranked, 0, len(projects))
	for _, project := range projects {
		snapshot, err := s.progress.Snapshot(ctx, l10nprogress.ProjectScope(project.ID))
		if err != nil {
			return nil, err
		}
		rankedProjects = append(rankedProjects, l10nprogress.Ranked{Name: project.Name, Snapshot: snapshot})
	}

	rankedLocales := make([]l10nprogress.Ranked, 0, len(locales))
	for _, locale := range locales {
		snapshot, err := s.progress.Snapshot(ctx, l10nprogress.LocaleScope(locale.ID))
		if err != nil {
			return nil, err
		}
		rankedLocales = append(rankedLocales, l10nprogress.Ranked{Name: locale.Code, Snapshot: snapshot})
	}

	return &Overview{
		TotalProjects: len(projects),
		TotalLocales:  len(locales),
		Projects:      l10nprogress.TopInstances(rankedProjects),
		Locales:       l10nprogress.TopInstances(rankedLocales),
	}, nil
}

func (s *service) AreaWidgets(ctx context.Context, areaCode string) ([]*widgets.Instance, error) {
	if s.widgets == nil {
		return nil, nil
	}
	return s.widgets.ListInstancesByArea(ctx, areaCode)
}

func (s *service) projectRow(ctx context.Context, project *catalog.Project) (ProjectRow, error) {
	chart, err := s.progress.Chart(ctx, l10nprogress.ProjectScope(project.ID))
	if err != nil {
		return ProjectRow{}, err
	}

	infoHTML, err := s.info.RenderInfo(project.Info)
	if err != nil {
		return ProjectRow{}, fmt.Errorf("project %s: %w", project.Slug, err)
	}

	row := ProjectRow{
		ID:            project.ID.String(),
		Name:          project.Name,
		Slug:          project.Slug,
		URL:           s.urls.ProjectURL(project.Slug),
		Priority:      project.Priority,
		PriorityLabel: project.Priority.String(),
		Deadline:      project.Deadline,
		DeadlineState: s.deadlineState(project.Deadline),
		Disabled:      project.Disabled,
		InfoHTML:      infoHTML,
		Chart:         chart,
	}

	if latest, err := s.progress.LatestActivity(ctx, l10nprogress.ProjectScope(project.ID)); err == nil {
		row.LatestActivity = latest
	}
	return row, nil
}

func (s *service) deadlineState(deadline *time.Time) DeadlineState {
	if deadline == nil {
		return DeadlineNone
	}
	now := s.clock()
	if deadline.Before(now) {
		return DeadlineOverdue
	}
	if deadline.Sub(now) <= deadlineWarnWindow {
		return DeadlineApproaching
	}
	return DeadlineNone
}
