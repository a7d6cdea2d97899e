package rank

import (
	"math"

	"github.com/nao1215/leaddeck/internal/model"
)

const (
	// HighValueThreshold is the inclusive minimum score kept when
	// FilterSpec.HighlightHighValueOnly is set.
	HighValueThreshold = 8.5

	// TopOpportunities is the default size of the priority activation matrix.
	TopOpportunities = 4
)

// Score returns the composite fit score of a lead: the unweighted mean of
// design, storytelling, innovation and responsiveness, summed in that order.
func Score(lead model.Lead) float64 {
	m := lead.Metrics
	return (m.Design + m.Storytelling + m.Innovation + m.Responsiveness) / 4
}

// RoundScore rounds x to one decimal place, halves away from zero.
func RoundScore(x float64) float64 {
	return math.Round(x*10) / 10
}
