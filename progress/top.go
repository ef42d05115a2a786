package progress

import "sort"

// Ranked pairs a display name with its snapshot for ranking.
type Ranked struct {
	Name     string
	Snapshot Snapshot
}

// TopInstances picks the standout rows for dashboard callouts. Ties break
// alphabetically so output stays stable across runs.
type TopInstancesResult struct {
	MostStrings      string
	MostTranslations string
	MostSuggestions  string
	MostMissing      string
}

// TopInstances ranks the supplied rows across the four dashboard callouts.
func TopInstances(rows []Ranked) TopInstancesResult {
	if len(rows) == 0 {
		return TopInstancesResult{}
	}

	sorted := make([]Ranked, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	pick := func(metric func(Snapshot) int) string {
		best := sorted[0]
		for _, row := range sorted[1:] {
			if metric(row.Snapshot) > metric(best.Snapshot) {
				best = row
			}
		}
		return best.Name
	}

	return TopInstancesResult{
		MostStrings:      pick(func(s Snapshot) int { return s.Total }),
		MostTranslations: pick(func(s Snapshot) int { return s.Approved }),
		MostSuggestions:  pick(func(s Snapshot) int { return s.Unreviewed }),
		MostMissing:      pick(func(s Snapshot) int { return s.Missing() }),
	}
}
