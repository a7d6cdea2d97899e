package model

// ScoreSnapshot pairs a lead with its composite fit score.
// Snapshots are recomputed on every ranking run and never persisted.
type ScoreSnapshot struct {
	Lead  Lead    `json:"lead"`
	Score float64 `json:"score"`
}

// RegionSummary is the per-region aggregate shown in the snapshot panel.
type RegionSummary struct {
	Region Region `json:"region"`

	// Count is the number of leads located in Region.
	Count int `json:"count"`

	// AvgScore is the mean fit score of those leads, rounded to one decimal.
	AvgScore float64 `json:"avgScore"`
}
