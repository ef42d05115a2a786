package catalog

import l10ncatalog "github.com/goliatone/go-l10n/catalog"

type (
	Locale        = l10ncatalog.Locale
	Project       = l10ncatalog.Project
	ProjectLocale = l10ncatalog.ProjectLocale
)
