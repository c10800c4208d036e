package usecase

import (
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/ripred/github-traffic/internal/domain"
)

// RankOptions selects the sort key and the optional display filters.
type RankOptions struct {
	SortBy      domain.SortKey
	HideEmpty   bool
	NoZeroViews bool
}

// Rank returns the records sorted descending by the chosen key, then filtered.
// The sort is stable, so ties keep their listing order. HideEmpty removes
// exactly the rows whose combined metric is zero; NoZeroViews removes exactly
// the rows with zero total views. The two filters are independent and may
// both apply. The input slice is not modified.
func Rank(records []domain.RepoTraffic, opts RankOptions) []domain.RepoTraffic {
	ranked := make([]domain.RepoTraffic, len(records))
	copy(ranked, records)

	sort.SliceStable(ranked, func(i, j int) bool {
		return opts.SortBy.Value(ranked[i]) > opts.SortBy.Value(ranked[j])
	})

	if opts.HideEmpty {
		ranked = keep(ranked, func(r domain.RepoTraffic) bool { return r.CombinedMetric() != 0 })
	}
	if opts.NoZeroViews {
		ranked = keep(ranked, func(r domain.RepoTraffic) bool { return r.ViewsTotal != 0 })
	}
	return ranked
}

func keep(records []domain.RepoTraffic, pred func(domain.RepoTraffic) bool) []domain.RepoTraffic {
	out := records[:0:0]
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// Summary aggregates view and clone statistics across a result set.
type Summary struct {
	Repos        int
	ViewsTotal   int
	ClonesTotal  int
	ViewsMean    float64
	ViewsMedian  float64
	ClonesMean   float64
	ClonesMedian float64
}

// Summarize computes totals plus mean and median views/clones over the given
// records. An empty input yields a zero Summary.
func Summarize(records []domain.RepoTraffic) Summary {
	s := Summary{Repos: len(records)}
	if len(records) == 0 {
		return s
	}

	views := make([]float64, len(records))
	clones := make([]float64, len(records))
	for i, r := range records {
		views[i] = float64(r.ViewsTotal)
		clones[i] = float64(r.ClonesTotal)
		s.ViewsTotal += r.ViewsTotal
		s.ClonesTotal += r.ClonesTotal
	}

	// stats errors only on empty input, which is handled above.
	s.ViewsMean, _ = stats.Mean(views)
	s.ViewsMedian, _ = stats.Median(views)
	s.ClonesMean, _ = stats.Mean(clones)
	s.ClonesMedian, _ = stats.Median(clones)
	return s
}
