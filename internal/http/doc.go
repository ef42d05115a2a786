// Package http exposes the admin API over net/http. Routes mount under a
// configurable base path (default "/admin/api"):
//
//	projects        CRUD, disable/enable, per-project locale management
//	locales         registry of locales and their enabled projects
//	contributors    contributor accounts and role memberships
//	teams           permission matrix (JSON and HTML form), changelog
//	stats           progress snapshots, adjustments, chart aggregates
//	activity        translation activity feed
//	widgets         widget definitions and placed instances
//	dashboard       assembled view models for dashboard pages
//
// Handlers enforce permission tokens from the request context and map
// service errors onto HTTP status codes. Form POSTs additionally require a
// valid CSRF token and a same-origin Origin or Referer header.
package http
