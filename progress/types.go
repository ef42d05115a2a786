package progress

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ScopeKind names the aggregation level a snapshot belongs to.
type ScopeKind string

const (
	ScopeProject       ScopeKind = "project"
	ScopeLocale        ScopeKind = "locale"
	ScopeProjectLocale ScopeKind = "project_locale"
)

// Scope addresses one aggregation target.
type Scope struct {
	Kind      ScopeKind `json:"kind"`
	ProjectID uuid.UUID `json:"project_id,omitempty"`
	LocaleID  uuid.UUID `json:"locale_id,omitempty"`
}

// ProjectScope addresses a project-wide aggregate.
func ProjectScope(projectID uuid.UUID) Scope {
	return Scope{Kind: ScopeProject, ProjectID: projectID}
}

// LocaleScope addresses a locale-wide aggregate.
func LocaleScope(localeID uuid.UUID) Scope {
	return Scope{Kind: ScopeLocale, LocaleID: localeID}
}

// ProjectLocaleScope addresses one project-locale pairing.
func ProjectLocaleScope(projectID, localeID uuid.UUID) Scope {
	return Scope{Kind: ScopeProjectLocale, ProjectID: projectID, LocaleID: localeID}
}

// Snapshot holds denormalized string counts for one scope.
type Snapshot struct {
	Total         int `json:"total_strings"`
	Approved      int `json:"approved_strings"`
	Pretranslated int `json:"pretranslated_strings"`
	Errors        int `json:"strings_with_errors"`
	Warnings      int `json:"strings_with_warnings"`
	Unreviewed    int `json:"unreviewed_strings"`
}

// Missing counts strings with no translation attached at all.
func (s Snapshot) Missing() int {
	return s.Total - s.Approved - s.Pretranslated - s.Errors - s.Warnings
}

// CompletedStrings counts strings a translator no longer needs to touch.
// Strings with warnings count as completed since the translation is usable.
func (s Snapshot) CompletedStrings() int {
	return s.Approved + s.Pretranslated + s.Warnings
}

// Complete reports whether every string has a usable translation. Strings
// with errors keep the snapshot incomplete; pending suggestions do not.
func (s Snapshot) Complete() bool {
	return s.Total == s.CompletedStrings()
}

// CompletedPercent returns the completion ratio against the total.
func (s Snapshot) CompletedPercent() float64 {
	return s.percentOf(s.CompletedStrings())
}

// ApprovedPercent returns the floored share of approved strings.
func (s Snapshot) ApprovedPercent() int {
	return int(math.Floor(s.percentOf(s.Approved)))
}

func (s Snapshot) percentOf(part int) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(part) / float64(s.Total) * 100
}

// Add accumulates another snapshot into this one.
func (s Snapshot) Add(other Snapshot) Snapshot {
	return Snapshot{
		Total:         s.Total + other.Total,
		Approved:      s.Approved + other.Approved,
		Pretranslated: s.Pretranslated + other.Pretranslated,
		Errors:        s.Errors + other.Errors,
		Warnings:      s.Warnings + other.Warnings,
		Unreviewed:    s.Unreviewed + other.Unreviewed,
	}
}

// Diff captures signed deltas applied to a snapshot.
type Diff struct {
	Total         int `json:"total_strings,omitempty"`
	Approved      int `json:"approved_strings,omitempty"`
	Pretranslated int `json:"pretranslated_strings,omitempty"`
	Errors        int `json:"strings_with_errors,omitempty"`
	Warnings      int `json:"strings_with_warnings,omitempty"`
	Unreviewed    int `json:"unreviewed_strings,omitempty"`
}

// Apply returns the snapshot with the diff applied, clamping at zero.
func (s Snapshot) Apply(diff Diff) Snapshot {
	return Snapshot{
		Total:         clampZero(s.Total + diff.Total),
		Approved:      clampZero(s.Approved + diff.Approved),
		Pretranslated: clampZero(s.Pretranslated + diff.Pretranslated),
		Errors:        clampZero(s.Errors + diff.Errors),
		Warnings:      clampZero(s.Warnings + diff.Warnings),
		Unreviewed:    clampZero(s.Unreviewed + diff.Unreviewed),
	}
}

func clampZero(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// Chart is the dashboard-facing shape of a snapshot: rounded shares per
// category plus a floored completion percent.
type Chart struct {
	TotalStrings         int `json:"total_strings"`
	ApprovedStrings      int `json:"approved_strings"`
	PretranslatedStrings int `json:"pretranslated_strings"`
	StringsWithErrors    int `json:"strings_with_errors"`
	StringsWithWarnings  int `json:"strings_with_warnings"`
	UnreviewedStrings    int `json:"unreviewed_strings"`
	ApprovedShare        int `json:"approved_share"`
	PretranslatedShare   int `json:"pretranslated_share"`
	ErrorsShare          int `json:"errors_share"`
	WarningsShare        int `json:"warnings_share"`
	UnreviewedShare      int `json:"unreviewed_share"`
	CompletionPercent    int `json:"completion_percent"`
}

// ChartOf converts a snapshot into its dashboard chart form.
func ChartOf(s Snapshot) Chart {
	return Chart{
		TotalStrings:         s.Total,
		ApprovedStrings:      s.Approved,
		PretranslatedStrings: s.Pretranslated,
		StringsWithErrors:    s.Errors,
		StringsWithWarnings:  s.Warnings,
		UnreviewedStrings:    s.Unreviewed,
		ApprovedShare:        roundShare(s, s.Approved),
		PretranslatedShare:   roundShare(s, s.Pretranslated),
		ErrorsShare:          roundShare(s, s.Errors),
		WarningsShare:        roundShare(s, s.Warnings),
		UnreviewedShare:      roundShare(s, s.Unreviewed),
		CompletionPercent:    int(math.Floor(s.CompletedPercent())),
	}
}

func roundShare(s Snapshot, part int) int {
	if s.Total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(s.Total) * 100))
}

// StatsRow persists one snapshot per scope.
type StatsRow struct {
	bun.BaseModel `bun:"table:stats,alias:st"`

	ID            uuid.UUID `bun:",pk,type:uuid" json:"id"`
	ScopeKind     ScopeKind `bun:"scope_kind,notnull" json:"scope_kind"`
	ProjectID     uuid.UUID `bun:"project_id,type:uuid,nullzero" json:"project_id,omitempty"`
	LocaleID      uuid.UUID `bun:"locale_id,type:uuid,nullzero"  json:"locale_id,omitempty"`
	Total         int       `bun:"total_strings,notnull,default:0" json:"total_strings"`
	Approved      int       `bun:"approved_strings,notnull,default:0" json:"approved_strings"`
	Pretranslated int       `bun:"pretranslated_strings,notnull,default:0" json:"pretranslated_strings"`
	Errors        int       `bun:"strings_with_errors,notnull,default:0" json:"strings_with_errors"`
	Warnings      int       `bun:"strings_with_warnings,notnull,default:0" json:"strings_with_warnings"`
	Unreviewed    int       `bun:"unreviewed_strings,notnull,default:0" json:"unreviewed_strings"`
	UpdatedAt     time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Snapshot converts the stored row into its value form.
func (r *StatsRow) Snapshot() Snapshot {
	if r == nil {
		return Snapshot{}
	}
	return Snapshot{
		Total:         r.Total,
		Approved:      r.Approved,
		Pretranslated: r.Pretranslated,
		Errors:        r.Errors,
		Warnings:      r.Warnings,
		Unreviewed:    r.Unreviewed,
	}
}

// ActivityEntry records a translation event used for latest-activity display.
type ActivityEntry struct {
	bun.BaseModel `bun:"table:activity_entries,alias:ae"`

	ID         uuid.UUID `bun:",pk,type:uuid" json:"id"`
	ProjectID  uuid.UUID `bun:"project_id,notnull,type:uuid" json:"project_id"`
	LocaleID   uuid.UUID `bun:"locale_id,notnull,type:uuid"  json:"locale_id"`
	ActorID    uuid.UUID `bun:"actor_id,type:uuid,nullzero"  json:"actor_id,omitempty"`
	Verb       string    `bun:"verb,notnull" json:"verb"`
	OccurredAt time.Time `bun:"occurred_at,notnull" json:"occurred_at"`
}
