package rank

import (
	"github.com/nao1215/leaddeck/internal/model"
)

// Compare ranks both lead sets with spec and reports how the deck changed.
// Leads are matched by ID. Added and Moved follow the current rank order,
// Removed follows the previous rank order. Region deltas cover the
// unfiltered lead sets, previous regions first.
//
// Source and StoreDigest of both sides are left for the caller to fill.
func Compare(previous, current []model.Lead, spec model.FilterSpec) model.Comparison {
	spec = spec.Normalize()
	prevDeck := Rank(previous, spec)
	currDeck := Rank(current, spec)

	out := model.Comparison{
		Spec:     spec,
		Previous: deckMetadata(previous, prevDeck),
		Current:  deckMetadata(current, currDeck),
		Regions:  regionDeltas(Summarize(previous), Summarize(current)),
	}

	prevPos := positions(prevDeck)
	currPos := positions(currDeck)

	for i, s := range currDeck {
		j, ok := prevPos[s.Lead.ID]
		if !ok {
			out.Added = append(out.Added, s)
			continue
		}
		before := prevDeck[j]
		if before.Score == s.Score && j == i {
			out.UnchangedCount++
			continue
		}
		out.Moved = append(out.Moved, model.ScoreMovement{
			ID:            s.Lead.ID,
			Name:          s.Lead.Name,
			PreviousScore: before.Score,
			CurrentScore:  s.Score,
			PreviousRank:  j + 1,
			CurrentRank:   i + 1,
		})
	}

	for _, s := range prevDeck {
		if _, ok := currPos[s.Lead.ID]; !ok {
			out.Removed = append(out.Removed, s)
		}
	}

	switch {
	case out.Current.AvgScore > out.Previous.AvgScore:
		out.Trend = model.TrendImproved
	case out.Current.AvgScore < out.Previous.AvgScore:
		out.Trend = model.TrendDeclined
	default:
		out.Trend = model.TrendUnchanged
	}

	return out
}

func deckMetadata(leads []model.Lead, deck []model.ScoreSnapshot) model.DeckMetadata {
	meta := model.DeckMetadata{
		LeadCount:  len(leads),
		MatchCount: len(deck),
	}
	if len(deck) > 0 {
		var total float64
		for _, s := range deck {
			total += s.Score
		}
		meta.AvgScore = RoundScore(total / float64(len(deck)))
	}
	return meta
}

// positions maps lead IDs to their index in a ranked deck. Duplicate IDs
// keep the first position.
func positions(deck []model.ScoreSnapshot) map[string]int {
	out := make(map[string]int, len(deck))
	for i, s := range deck {
		if _, ok := out[s.Lead.ID]; !ok {
			out[s.Lead.ID] = i
		}
	}
	return out
}

func regionDeltas(previous, current []model.RegionSummary) []model.RegionDelta {
	deltas := make([]model.RegionDelta, 0, max(len(previous), len(current)))
	index := make(map[model.Region]int, cap(deltas))

	for _, s := range previous {
		index[s.Region] = len(deltas)
		deltas = append(deltas, model.RegionDelta{
			Region:           s.Region,
			PreviousCount:    s.Count,
			PreviousAvgScore: s.AvgScore,
		})
	}
	for _, s := range current {
		i, ok := index[s.Region]
		if !ok {
			i = len(deltas)
			index[s.Region] = i
			deltas = append(deltas, model.RegionDelta{Region: s.Region})
		}
		deltas[i].CurrentCount = s.Count
		deltas[i].CurrentAvgScore = s.AvgScore
	}
	return deltas
}
