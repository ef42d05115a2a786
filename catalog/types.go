package catalog

import (
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-l10n/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Locale represents a translation team's target language.
type Locale struct {
	bun.BaseModel `bun:"table:locales,alias:l"`

	ID              uuid.UUID        `bun:",pk,type:uuid"         json:"id"`
	Code            string           `bun:"code,notnull"          json:"code"`
	Name            string           `bun:"name,notnull"          json:"name"`
	Direction       domain.Direction `bun:"direction,notnull,default:'ltr'" json:"direction"`
	Script          string           `bun:"script,notnull,default:'Latin'"  json:"script"`
	Population      int              `bun:"population,notnull,default:0"    json:"population"`
	CLDRPlurals     string           `bun:"cldr_plurals"          json:"cldr_plurals,omitempty"`
	TeamDescription *string          `bun:"team_description"      json:"team_description,omitempty"`
	CreatedAt       time.Time        `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// CLDRIDs returns the locale's plural categories as CLDR identifiers (0..5).
func (l *Locale) CLDRIDs() []int {
	if l == nil || strings.TrimSpace(l.CLDRPlurals) == "" {
		return nil
	}
	parts := strings.Split(l.CLDRPlurals, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || id < 0 || id > 5 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// Nplurals reports how many plural forms the locale uses.
func (l *Locale) Nplurals() int {
	return len(l.CLDRIDs())
}

// PluralNames maps the locale's CLDR ids to their category names.
func (l *Locale) PluralNames() []string {
	ids := l.CLDRIDs()
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, CLDRPluralName(id))
	}
	return names
}

// CLDRPluralName resolves a CLDR plural id to its category name.
func CLDRPluralName(id int) string {
	switch id {
	case 0:
		return "zero"
	case 1:
		return "one"
	case 2:
		return "two"
	case 3:
		return "few"
	case 4:
		return "many"
	case 5:
		return "other"
	default:
		return ""
	}
}

// Project is a piece of software undergoing localization.
type Project struct {
	bun.BaseModel `bun:"table:projects,alias:p"`

	ID            uuid.UUID         `bun:",pk,type:uuid"      json:"id"`
	Name          string            `bun:"name,notnull"       json:"name"`
	Slug          string            `bun:"slug,notnull"       json:"slug"`
	Info          string            `bun:"info"               json:"info,omitempty"`
	Deadline      *time.Time        `bun:"deadline,nullzero"  json:"deadline,omitempty"`
	Priority      domain.Priority   `bun:"priority,notnull,default:1" json:"priority"`
	ContactID     *uuid.UUID        `bun:"contact_id,type:uuid,nullzero" json:"contact_id,omitempty"`
	Visibility    domain.Visibility `bun:"visibility,notnull,default:'private'" json:"visibility"`
	Disabled      bool              `bun:"disabled,notnull,default:false" json:"disabled"`
	DateDisabled  *time.Time        `bun:"date_disabled,nullzero" json:"date_disabled,omitempty"`
	SystemProject bool              `bun:"system_project,notnull,default:false" json:"system_project"`
	CreatedAt     time.Time         `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time         `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	ProjectLocales []*ProjectLocale `bun:"rel:has-many,join:id=project_id" json:"project_locales,omitempty"`
}

// Available reports whether the project accepts translation work.
func (p *Project) Available() bool {
	return p != nil && !p.Disabled
}

// Visible reports whether the project shows up on public dashboards.
func (p *Project) Visible() bool {
	return p.Available() && !p.SystemProject
}

// ProjectLocale enables a locale for a project. The (project, locale) pair
// is unique; the readonly flag freezes submissions while keeping the
// dashboard row, and has_custom_translators narrows who may translate.
type ProjectLocale struct {
	bun.BaseModel `bun:"table:project_locales,alias:pl"`

	ID                   uuid.UUID `bun:",pk,type:uuid" json:"id"`
	ProjectID            uuid.UUID `bun:"project_id,notnull,type:uuid" json:"project_id"`
	LocaleID             uuid.UUID `bun:"locale_id,notnull,type:uuid"  json:"locale_id"`
	Readonly             bool      `bun:"readonly,notnull,default:false" json:"readonly"`
	HasCustomTranslators bool      `bun:"has_custom_translators,notnull,default:false" json:"has_custom_translators"`
	CreatedAt            time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`

	Project *Project `bun:"rel:belongs-to,join:project_id=id" json:"project,omitempty"`
	Locale  *Locale  `bun:"rel:belongs-to,join:locale_id=id"  json:"locale,omitempty"`
}
