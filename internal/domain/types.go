package domain

import "strings"

// Priority ranks how urgently a project needs translation work.
type Priority int

const (
	PriorityLowest  Priority = 1
	PriorityLow     Priority = 2
	PriorityNormal  Priority = 3
	PriorityHigh    Priority = 4
	PriorityHighest Priority = 5
)

// String returns the display label used on dashboards.
func (p Priority) String() string {
	switch p {
	case PriorityLowest:
		return "Lowest"
	case PriorityLow:
		return "Low"
	case PriorityNormal:
		return "Normal"
	case PriorityHigh:
		return "High"
	case PriorityHighest:
		return "Highest"
	default:
		return "Unknown"
	}
}

// Valid reports whether the priority falls inside the supported range.
func (p Priority) Valid() bool {
	return p >= PriorityLowest && p <= PriorityHighest
}

// ParsePriority accepts either a numeric value ("3") or a label ("Normal").
func ParsePriority(input string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "1", "lowest":
		return PriorityLowest, true
	case "2", "low":
		return PriorityLow, true
	case "3", "normal", "":
		return PriorityNormal, true
	case "4", "high":
		return PriorityHigh, true
	case "5", "highest":
		return PriorityHighest, true
	default:
		return 0, false
	}
}

// Direction captures the writing direction of a locale's script.
type Direction string

const (
	DirectionLTR Direction = "ltr"
	DirectionRTL Direction = "rtl"
)

// NormalizeDirection coerces arbitrary direction strings, defaulting to LTR.
func NormalizeDirection(input string) Direction {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "rtl":
		return DirectionRTL
	default:
		return DirectionLTR
	}
}

// Visibility controls who can see a project on dashboards.
type Visibility string

const (
	// VisibilityPublic projects appear for every viewer.
	VisibilityPublic Visibility = "public"
	// VisibilityPrivate projects appear only for administrators.
	VisibilityPrivate Visibility = "private"
)

// NormalizeVisibility coerces arbitrary visibility strings, defaulting to private.
func NormalizeVisibility(input string) Visibility {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case string(VisibilityPublic):
		return VisibilityPublic
	default:
		return VisibilityPrivate
	}
}

// Role identifies what a contributor may do within a team.
type Role string

const (
	// RoleTranslator members can submit and edit translations directly.
	RoleTranslator Role = "translator"
	// RoleManager members can translate plus administer team permissions.
	RoleManager Role = "manager"
)

// ValidRole reports whether the string names a supported role.
func ValidRole(input string) bool {
	switch Role(strings.ToLower(strings.TrimSpace(input))) {
	case RoleTranslator, RoleManager:
		return true
	default:
		return false
	}
}

// ChangeAction records the direction of a permission mutation.
type ChangeAction string

const (
	ChangeActionAdded   ChangeAction = "added"
	ChangeActionRemoved ChangeAction = "removed"
)
