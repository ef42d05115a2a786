package team

import (
	"crypto/md5"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-l10n/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Contributor is a person participating in localization work.
type Contributor struct {
	bun.BaseModel `bun:"table:contributors,alias:ct"`

	ID        uuid.UUID `bun:",pk,type:uuid"   json:"id"`
	Email     string    `bun:"email,notnull"   json:"email"`
	Name      string    `bun:"name"            json:"name,omitempty"`
	Active    bool      `bun:"active,notnull,default:true" json:"active"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// DisplayName falls back to the email local part when no name is set.
func (c *Contributor) DisplayName() string {
	if c == nil {
		return ""
	}
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}
	if at := strings.Index(c.Email, "@"); at > 0 {
		return c.Email[:at]
	}
	return c.Email
}

// GravatarURL builds the avatar URL for the contributor's email.
func (c *Contributor) GravatarURL(size int) string {
	if c == nil {
		return ""
	}
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(c.Email))))
	query := url.Values{}
	query.Set("s", fmt.Sprintf("%d", size))
	query.Set("d", "mp")
	return fmt.Sprintf("https://secure.gravatar.com/avatar/%x?%s", sum, query.Encode())
}

// Membership grants a contributor a role on a locale. When ProjectLocaleID
// is set the row belongs to a project-locale custom translator set instead
// of the team-wide group.
type Membership struct {
	bun.BaseModel `bun:"table:memberships,alias:m"`

	ID              uuid.UUID   `bun:",pk,type:uuid" json:"id"`
	ContributorID   uuid.UUID   `bun:"contributor_id,notnull,type:uuid" json:"contributor_id"`
	LocaleID        uuid.UUID   `bun:"locale_id,notnull,type:uuid"      json:"locale_id"`
	ProjectLocaleID *uuid.UUID  `bun:"project_locale_id,type:uuid,nullzero" json:"project_locale_id,omitempty"`
	Role            domain.Role `bun:"role,notnull" json:"role"`
	CreatedAt       time.Time   `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`

	Contributor *Contributor `bun:"rel:belongs-to,join:contributor_id=id" json:"contributor,omitempty"`
}

// TeamLevel reports whether the membership applies to the whole locale.
func (m *Membership) TeamLevel() bool {
	return m != nil && m.ProjectLocaleID == nil
}

// PermissionChange records a single add or remove in a permission group.
type PermissionChange struct {
	bun.BaseModel `bun:"table:permission_changes,alias:pc"`

	ID              uuid.UUID           `bun:",pk,type:uuid" json:"id"`
	Action          domain.ChangeAction `bun:"action,notnull" json:"action"`
	PerformedByID   uuid.UUID           `bun:"performed_by_id,notnull,type:uuid" json:"performed_by_id"`
	PerformedOnID   uuid.UUID           `bun:"performed_on_id,notnull,type:uuid" json:"performed_on_id"`
	LocaleID        uuid.UUID           `bun:"locale_id,notnull,type:uuid" json:"locale_id"`
	ProjectLocaleID *uuid.UUID          `bun:"project_locale_id,type:uuid,nullzero" json:"project_locale_id,omitempty"`
	Role            domain.Role         `bun:"role,notnull" json:"role"`
	CreatedAt       time.Time           `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}
