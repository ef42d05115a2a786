package team

import l10nteam "github.com/goliatone/go-l10n/team"

type (
	Contributor      = l10nteam.Contributor
	Membership       = l10nteam.Membership
	PermissionChange = l10nteam.PermissionChange
)
