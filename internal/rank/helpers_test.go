package rank

import "github.com/nao1215/leaddeck/internal/model"

// newLead builds a lead whose four metrics all equal avg.
func newLead(id string, industry model.Industry, region model.Region, avg float64) model.Lead {
	return model.Lead{
		ID:          id,
		Name:        "Brand " + id,
		Description: "A brand called " + id,
		Website:     "https://" + id + ".example.com",
		Industry:    industry,
		Location:    region,
		Metrics: model.Metrics{
			Design:         avg,
			Storytelling:   avg,
			Innovation:     avg,
			Responsiveness: avg,
		},
	}
}

func ids(snapshots []model.ScoreSnapshot) []string {
	out := make([]string, len(snapshots))
	for i, s := range snapshots {
		out[i] = s.Lead.ID
	}
	return out
}
