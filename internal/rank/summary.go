package rank

import "github.com/nao1215/leaddeck/internal/model"

// Summarize returns one RegionSummary per distinct lead location, in order of
// first appearance. AvgScore is rounded with RoundScore.
//
// Only regions that occur in leads are reported, so every count is at least
// one and no average divides by zero.
func Summarize(leads []model.Lead) []model.RegionSummary {
	type acc struct {
		count int
		total float64
	}

	order := make([]model.Region, 0)
	totals := make(map[model.Region]*acc)

	for _, lead := range leads {
		a, ok := totals[lead.Location]
		if !ok {
			a = &acc{}
			totals[lead.Location] = a
			order = append(order, lead.Location)
		}
		a.count++
		a.total += Score(lead)
	}

	summaries := make([]model.RegionSummary, 0, len(order))
	for _, region := range order {
		a := totals[region]
		summaries = append(summaries, model.RegionSummary{
			Region:   region,
			Count:    a.count,
			AvgScore: RoundScore(a.total / float64(a.count)),
		})
	}
	return summaries
}
