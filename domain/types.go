package domain

import internaldomain "github.com/goliatone/go-l10n/internal/domain"

// Priority ranks how urgently a project needs translation work.
type Priority = internaldomain.Priority

const (
	PriorityLowest  = internaldomain.PriorityLowest
	PriorityLow     = internaldomain.PriorityLow
	PriorityNormal  = internaldomain.PriorityNormal
	PriorityHigh    = internaldomain.PriorityHigh
	PriorityHighest = internaldomain.PriorityHighest
)

// ParsePriority accepts either a numeric value ("3") or a label ("Normal").
func ParsePriority(input string) (Priority, bool) {
	return internaldomain.ParsePriority(input)
}

// Direction captures the writing direction of a locale's script.
type Direction = internaldomain.Direction

const (
	DirectionLTR = internaldomain.DirectionLTR
	DirectionRTL = internaldomain.DirectionRTL
)

// Visibility controls who can see a project on dashboards.
type Visibility = internaldomain.Visibility

const (
	// VisibilityPublic projects appear for every viewer.
	VisibilityPublic = internaldomain.VisibilityPublic
	// VisibilityPrivate projects appear only for administrators.
	VisibilityPrivate = internaldomain.VisibilityPrivate
)

// Role identifies what a contributor may do within a team.
type Role = internaldomain.Role

const (
	RoleTranslator = internaldomain.RoleTranslator
	RoleManager    = internaldomain.RoleManager
)

// ChangeAction records the direction of a permission mutation.
type ChangeAction = internaldomain.ChangeAction

const (
	ChangeActionAdded   = internaldomain.ChangeActionAdded
	ChangeActionRemoved = internaldomain.ChangeActionRemoved
)
