package rank

import (
	"cmp"
	"slices"

	"github.com/nao1215/leaddeck/internal/model"
)

// Rank filters, scores and sorts leads according to spec.
//
// Empty Industry and Region are treated as model.All, so the zero
// FilterSpec keeps every lead.
//
// The returned slice is never nil, so callers can tell an empty result
// from an uncomputed one. Leads with equal scores keep their input order.
// The input slice is not modified.
func Rank(leads []model.Lead, spec model.FilterSpec) []model.ScoreSnapshot {
	snapshots := make([]model.ScoreSnapshot, 0, len(leads))

	for _, lead := range leads {
		if !MatchesCategory(lead, spec) {
			continue
		}
		if !MatchesSearch(lead, spec.SearchTerm) {
			continue
		}

		score := Score(lead)
		if spec.HighlightHighValueOnly && score < HighValueThreshold {
			continue
		}

		snapshots = append(snapshots, model.ScoreSnapshot{
			Lead:  lead.Clone(),
			Score: score,
		})
	}

	slices.SortStableFunc(snapshots, func(a, b model.ScoreSnapshot) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return snapshots
}

// Top returns the first n snapshots, or all of them when fewer exist.
// A non-positive n yields an empty, non-nil slice.
func Top(snapshots []model.ScoreSnapshot, n int) []model.ScoreSnapshot {
	if n <= 0 {
		return []model.ScoreSnapshot{}
	}
	n = min(n, len(snapshots))
	out := make([]model.ScoreSnapshot, n)
	copy(out, snapshots[:n])
	return out
}
