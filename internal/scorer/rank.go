package scorer

import (
	"sort"

	"github.com/aegean-group/property-cli/internal/model"
)

// Rank sorts scored listings by score descending. The sort is stable, so
// equal scores keep their catalog order.
func Rank(scored []model.ScoredListing) {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
}

// Filter returns the scored listings matching the criteria, preserving
// order. Filtering is a view over already-scored rows; it never reshapes
// the normalization bounds.
func Filter(scored []model.ScoredListing, crit model.FilterCriteria) []model.ScoredListing {
	out := make([]model.ScoredListing, 0, len(scored))
	for i := range scored {
		if crit.Matches(&scored[i].EnrichedListing) {
			out = append(out, scored[i])
		}
	}
	return out
}

// TopPick returns the highest-scoring listing of the full set, or nil
// when the set is empty. The pick is taken before any filtering, so it
// is the best of the whole catalog rather than of the current view.
func TopPick(scored []model.ScoredListing) *model.ScoredListing {
	if len(scored) == 0 {
		return nil
	}
	best := &scored[0]
	for i := 1; i < len(scored); i++ {
		if scored[i].Score > best.Score {
			best = &scored[i]
		}
	}
	return best
}
