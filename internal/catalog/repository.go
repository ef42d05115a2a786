package catalog

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewProjectRecordRepository(db *bun.DB) repository.Repository[*Project] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Project]{
		NewRecord: func() *Project { return &Project{} },
		GetID: func(p *Project) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Project, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(p *Project) string {
			return p.Slug
		},
	})
}

func NewLocaleRecordRepository(db *bun.DB) repository.Repository[*Locale] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Locale]{
		NewRecord: func() *Locale { return &Locale{} },
		GetID: func(l *Locale) uuid.UUID {
			return l.ID
		},
		SetID: func(l *Locale, id uuid.UUID) {
			l.ID = id
		},
		GetIdentifier: func() string {
			return "code"
		},
		GetIdentifierValue: func(l *Locale) string {
			return l.Code
		},
	})
}

func NewProjectLocaleRecordRepository(db *bun.DB) repository.Repository[*ProjectLocale] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ProjectLocale]{
		NewRecord: func() *ProjectLocale { return &ProjectLocale{} },
		GetID: func(pl *ProjectLocale) uuid.UUID {
			return pl.ID
		},
		SetID: func(pl *ProjectLocale, id uuid.UUID) {
			pl.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(pl *ProjectLocale) string {
			if pl == nil {
				return ""
			}
			return pl.ID.String()
		},
	})
}
