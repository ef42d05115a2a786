package widgets

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewDefinitionRecordRepository(db *bun.DB) repository.Repository[*Definition] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Definition]{
		NewRecord: func() *Definition { return &Definition{} },
		GetID: func(d *Definition) uuid.UUID {
			return d.ID
		},
		SetID: func(d *Definition, id uuid.UUID) {
			d.ID = id
		},
		GetIdentifier: func() string {
			return "name"
		},
		GetIdentifierValue: func(d *Definition) string {
			return d.Name
		},
	})
}

func NewInstanceRecordRepository(db *bun.DB) repository.Repository[*Instance] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Instance]{
		NewRecord: func() *Instance { return &Instance{} },
		GetID: func(i *Instance) uuid.UUID {
			return i.ID
		},
		SetID: func(i *Instance, id uuid.UUID) {
			i.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(i *Instance) string {
			if i == nil {
				return ""
			}
			return i.ID.String()
		},
	})
}
