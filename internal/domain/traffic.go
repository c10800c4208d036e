// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"fmt"
	"strings"
)

// TrafficWindowDays is the fixed lookback period for which the GitHub API
// serves per-repository traffic history.
const TrafficWindowDays = 14

// RepoTraffic holds the traffic and popularity counts for a single repository.
// It is the core domain entity of this application. A record is built once,
// after the repository's traffic fetch completes, and is read-only afterwards.
type RepoTraffic struct {
	Name         string
	ViewsTotal   int
	ViewsUnique  int
	ClonesTotal  int
	ClonesUnique int
	Stars        int
	Forks        int

	// DateRange is the earliest-to-latest date covered by the per-day views
	// breakdown, e.g. "2026-08-17 to 2026-08-30". Empty when no view data
	// was returned.
	DateRange string

	// ViewsFailed and ClonesFailed mark a degraded record: the corresponding
	// counts were zeroed because the fetch failed, as opposed to the
	// repository genuinely having zero traffic.
	ViewsFailed  bool
	ClonesFailed bool
}

// CombinedMetric is the weighted score used to rank repositories.
// Stars and forks are weighted lower than views and clones so that actual
// traffic dominates the ranking.
func (r RepoTraffic) CombinedMetric() float64 {
	return float64(r.ViewsTotal)*1.0 +
		float64(r.ViewsUnique)*1.5 +
		float64(r.ClonesTotal)*2.0 +
		float64(r.ClonesUnique)*3.0 +
		float64(r.Stars)*0.5 +
		float64(r.Forks)*1.0
}

// SortKey identifies one of the numeric fields a result set can be ranked by.
type SortKey string

const (
	SortViewsTotal   SortKey = "views_total"
	SortViewsUnique  SortKey = "views_unique"
	SortClonesTotal  SortKey = "clones_total"
	SortClonesUnique SortKey = "clones_unique"
	SortStars        SortKey = "stars"
	SortForks        SortKey = "forks"
	SortCombined     SortKey = "combined_metrics"
)

var sortKeys = []SortKey{
	SortViewsTotal,
	SortViewsUnique,
	SortClonesTotal,
	SortClonesUnique,
	SortStars,
	SortForks,
	SortCombined,
}

// SortKeyNames returns the accepted --sort-by values, for flag help text and
// error messages.
func SortKeyNames() []string {
	names := make([]string, len(sortKeys))
	for i, k := range sortKeys {
		names[i] = string(k)
	}
	return names
}

// ParseSortKey validates a user-supplied sort key.
func ParseSortKey(s string) (SortKey, error) {
	for _, k := range sortKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q (valid keys: %s)", s, strings.Join(SortKeyNames(), ", "))
}

// Value extracts the field this key sorts by from a record.
func (k SortKey) Value(r RepoTraffic) float64 {
	switch k {
	case SortViewsTotal:
		return float64(r.ViewsTotal)
	case SortViewsUnique:
		return float64(r.ViewsUnique)
	case SortClonesTotal:
		return float64(r.ClonesTotal)
	case SortClonesUnique:
		return float64(r.ClonesUnique)
	case SortStars:
		return float64(r.Stars)
	case SortForks:
		return float64(r.Forks)
	case SortCombined:
		return r.CombinedMetric()
	}
	return 0
}

// ClampTimeframe limits a requested report timeframe to the traffic window
// the API actually serves. The second return value reports whether the
// request was clamped.
func ClampTimeframe(days int) (int, bool) {
	if days > TrafficWindowDays {
		return TrafficWindowDays, true
	}
	return days, false
}
