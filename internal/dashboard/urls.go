package dashboard

import (
	"fmt"
	"net/url"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"
)

// URLBuilderOptions configures the go-urlkit backed URL builder.
type URLBuilderOptions struct {
	Manager            *urlkit.RouteManager
	Group              string
	ProjectRoute       string
	TeamRoute          string
	ProjectLocaleRoute string
	SlugParam          string
	LocaleParam        string
}

// URLBuilder resolves dashboard URLs through a go-urlkit RouteManager and
// falls back to path templates when no manager is configured.
type URLBuilder struct {
	manager *urlkit.RouteManager

	group              string
	projectRoute       string
	teamRoute          string
	projectLocaleRoute string
	slugParam          string
	localeParam        string
}

// NewURLBuilder constructs a URL builder for dashboard links.
func NewURLBuilder(opts URLBuilderOptions) *URLBuilder {
	if opts.Group == "" {
		opts.Group = "dashboard"
	}
	if opts.ProjectRoute == "" {
		opts.ProjectRoute = "project"
	}
	if opts.TeamRoute == "" {
		opts.TeamRoute = "team"
	}
	if opts.ProjectLocaleRoute == "" {
		opts.ProjectLocaleRoute = "project_locale"
	}
	if opts.SlugParam == "" {
		opts.SlugParam = "slug"
	}
	if opts.LocaleParam == "" {
		opts.LocaleParam = "locale"
	}
	return &URLBuilder{
		manager:            opts.Manager,
		group:              opts.Group,
		projectRoute:       opts.ProjectRoute,
		teamRoute:          opts.TeamRoute,
		projectLocaleRoute: opts.ProjectLocaleRoute,
		slugParam:          opts.SlugParam,
		localeParam:        opts.LocaleParam,
	}
}

// ProjectURL links to a project dashboard page.
func (b *URLBuilder) ProjectURL(slug string) string {
	if built, ok := b.build(b.projectRoute, map[string]any{b.slugParam: slug}); ok {
		return built
	}
	return "/projects/" + url.PathEscape(slug)
}

// TeamURL links to a locale team page.
func (b *URLBuilder) TeamURL(code string) string {
	if built, ok := b.build(b.teamRoute, map[string]any{b.localeParam: code}); ok {
		return built
	}
	return "/teams/" + url.PathEscape(code)
}

// ProjectLocaleURL links to a single project and locale pair.
func (b *URLBuilder) ProjectLocaleURL(slug, code string) string {
	if built, ok := b.build(b.projectLocaleRoute, map[string]any{
		b.slugParam:   slug,
		b.localeParam: code,
	}); ok {
		return built
	}
	return fmt.Sprintf("/projects/%s/%s", url.PathEscape(slug), url.PathEscape(code))
}

func (b *URLBuilder) build(route string, params map[string]any) (string, bool) {
	if b == nil || b.manager == nil {
		return "", false
	}
	group, err := lookupGroup(b.manager, b.group)
	if err != nil || group == nil {
		return "", false
	}
	builder, err := safeBuilder(group, route)
	if err != nil || builder == nil {
		return "", false
	}
	for key, value := range params {
		builder.WithParam(key, value)
	}
	built, err := builder.Build()
	if err != nil {
		return "", false
	}
	return built, true
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("dashboard: route group %q not found", name)
		}
	}()
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("dashboard: route group name required")
	}
	group = manager.Group(name)
	return group, err
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("dashboard: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}
