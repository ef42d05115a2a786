package team

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewContributorRecordRepository(db *bun.DB) repository.Repository[*Contributor] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Contributor]{
		NewRecord: func() *Contributor { return &Contributor{} },
		GetID: func(c *Contributor) uuid.UUID {
			return c.ID
		},
		SetID: func(c *Contributor, id uuid.UUID) {
			c.ID = id
		},
		GetIdentifier: func() string {
			return "email"
		},
		GetIdentifierValue: func(c *Contributor) string {
			return c.Email
		},
	})
}

func NewMembershipRecordRepository(db *bun.DB) repository.Repository[*Membership] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Membership]{
		NewRecord: func() *Membership { return &Membership{} },
		GetID: func(m *Membership) uuid.UUID {
			return m.ID
		},
		SetID: func(m *Membership, id uuid.UUID) {
			m.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(m *Membership) string {
			if m == nil {
				return ""
			}
			return m.ID.String()
		},
	})
}

func NewPermissionChangeRecordRepository(db *bun.DB) repository.Repository[*PermissionChange] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*PermissionChange]{
		NewRecord: func() *PermissionChange { return &PermissionChange{} },
		GetID: func(pc *PermissionChange) uuid.UUID {
			return pc.ID
		},
		SetID: func(pc *PermissionChange, id uuid.UUID) {
			pc.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(pc *PermissionChange) string {
			if pc == nil {
				return ""
			}
			return pc.ID.String()
		},
	})
}
