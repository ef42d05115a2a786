package widgets

import l10nwidgets "github.com/goliatone/go-l10n/widgets"

type Definition = l10nwidgets.Definition
type Instance = l10nwidgets.Instance

const (
	AreaProjectRow = l10nwidgets.AreaProjectRow
	AreaTeamPage   = l10nwidgets.AreaTeamPage
	AreaOverview   = l10nwidgets.AreaOverview
)
