package activity

import "time"

// Event describes one auditable action inside the localization platform.
type Event struct {
	Verb           string         `json:"verb"`
	ActorID        string         `json:"actor_id,omitempty"`
	UserID         string         `json:"user_id,omitempty"`
	TenantID       string         `json:"tenant_id,omitempty"`
	ObjectType     string         `json:"object_type"`
	ObjectID       string         `json:"object_id"`
	Channel        string         `json:"channel,omitempty"`
	DefinitionCode string         `json:"definition_code,omitempty"`
	Recipients     []string       `json:"recipients,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	OccurredAt     time.Time      `json:"occurred_at"`
}

// Object types emitted by the services.
const (
	ObjectProject       = "project"
	ObjectLocale        = "locale"
	ObjectProjectLocale = "project_locale"
	ObjectContributor   = "contributor"
	ObjectMembership    = "membership"
	ObjectWidget        = "widget"
)
