package progress

import l10nprogress "github.com/goliatone/go-l10n/progress"

type (
	Scope         = l10nprogress.Scope
	ScopeKind     = l10nprogress.ScopeKind
	Snapshot      = l10nprogress.Snapshot
	Diff          = l10nprogress.Diff
	Chart         = l10nprogress.Chart
	StatsRow      = l10nprogress.StatsRow
	ActivityEntry = l10nprogress.ActivityEntry
)
