package widgets

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Definition captures a dashboard widget type, its configuration schema,
// and default values.
type Definition struct {
	bun.BaseModel `bun:"table:widget_definitions,alias:wd"`

	ID          uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Name        string         `bun:"name,notnull,unique" json:"name"`
	Description *string        `bun:"description" json:"description,omitempty"`
	Schema      map[string]any `bun:"schema,type:jsonb,notnull" json:"schema"`
	Defaults    map[string]any `bun:"defaults,type:jsonb" json:"defaults,omitempty"`
	CreatedAt   time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Instances []*Instance `bun:"rel:has-many,join:id=definition_id" json:"instances,omitempty"`
}

// Instance places a widget definition on a dashboard area with concrete
// configuration.
type Instance struct {
	bun.BaseModel `bun:"table:widget_instances,alias:wi"`

	ID            uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	DefinitionID  uuid.UUID      `bun:"definition_id,notnull,type:uuid" json:"definition_id"`
	AreaCode      string         `bun:"area_code,notnull" json:"area_code"`
	Configuration map[string]any `bun:"configuration,type:jsonb,notnull,default:'{}'::jsonb" json:"configuration"`
	Position      int            `bun:"position,notnull,default:0" json:"position"`
	CreatedAt     time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Definition *Definition `bun:"rel:belongs-to,join:definition_id=id" json:"definition,omitempty"`
}

// Dashboard areas widget instances can attach to.
const (
	AreaProjectRow = "project_row"
	AreaTeamPage   = "team_page"
	AreaOverview   = "overview"
)
