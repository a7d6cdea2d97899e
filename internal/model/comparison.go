package model

// Trend directions for a Comparison.
const (
	TrendImproved  = "improved"
	TrendDeclined  = "declined"
	TrendUnchanged = "unchanged"
)

// Comparison holds the difference between two decks ranked with the same
// filter, typically an older and a newer revision of the lead file.
type Comparison struct {
	Spec FilterSpec `json:"spec"`

	// Previous and Current summarize both sides.
	Previous DeckMetadata `json:"previous"`
	Current  DeckMetadata `json:"current"`

	// Added holds leads that match the filter now but did not before.
	Added []ScoreSnapshot `json:"added,omitempty"`

	// Removed holds leads that no longer match the filter.
	Removed []ScoreSnapshot `json:"removed,omitempty"`

	// Moved holds leads present on both sides whose score or rank changed.
	Moved []ScoreMovement `json:"moved,omitempty"`

	// UnchangedCount is the number of leads with identical score and rank.
	UnchangedCount int `json:"unchangedCount"`

	// Regions holds per-region deltas over the unfiltered stores.
	Regions []RegionDelta `json:"regions,omitempty"`

	// Trend is TrendImproved, TrendDeclined or TrendUnchanged, judged by
	// the average score of the ranked deck.
	Trend string `json:"trend"`
}

// DeckMetadata is the summary of one side of a comparison.
type DeckMetadata struct {
	Source      string  `json:"source"`
	StoreDigest string  `json:"storeDigest"`
	LeadCount   int     `json:"leadCount"`
	MatchCount  int     `json:"matchCount"`
	AvgScore    float64 `json:"avgScore"`
}

// ScoreMovement describes how one lead changed between two decks.
// Ranks are 1-based positions in the ranked deck.
type ScoreMovement struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	PreviousScore float64 `json:"previousScore"`
	CurrentScore  float64 `json:"currentScore"`
	PreviousRank  int     `json:"previousRank"`
	CurrentRank   int     `json:"currentRank"`
}

// ScoreDelta returns CurrentScore - PreviousScore.
func (m ScoreMovement) ScoreDelta() float64 {
	return m.CurrentScore - m.PreviousScore
}

// RankDelta returns how many places the lead climbed (positive) or fell.
func (m ScoreMovement) RankDelta() int {
	return m.PreviousRank - m.CurrentRank
}

// RegionDelta compares one region across two stores. A region missing on
// one side has a zero count there.
type RegionDelta struct {
	Region           Region  `json:"region"`
	PreviousCount    int     `json:"previousCount"`
	CurrentCount     int     `json:"currentCount"`
	PreviousAvgScore float64 `json:"previousAvgScore"`
	CurrentAvgScore  float64 `json:"currentAvgScore"`
}
