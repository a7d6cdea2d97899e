package model

import "time"

// Deck is the result of one ranking run over a lead store.
// It carries everything the report writers render: the full ranked deck,
// the top opportunities slice, the region snapshot and the category sets.
//
// A Deck starts out uncomputed. Snapshots stays nil until the rank step has
// run, so an empty result (non-nil, zero length) can be told apart from
// a deck that was never ranked.
type Deck struct {
	// Name identifies the run, e.g. the preset name. Empty for ad-hoc runs.
	Name string `json:"name,omitempty"`

	// Spec is the filter state the deck was ranked with.
	Spec FilterSpec `json:"spec"`

	// GeneratedAt is when the deck was created.
	GeneratedAt time.Time `json:"generatedAt"`

	// StoreDigest identifies the lead store the deck was computed from.
	StoreDigest string `json:"storeDigest,omitempty"`

	// LeadCount is the total number of leads in the store (unfiltered).
	LeadCount int `json:"leadCount"`

	// Industries and Regions are the category sets derived from the store.
	Industries []Industry `json:"industries,omitempty"`
	Regions    []Region   `json:"regions,omitempty"`

	// Snapshots is the full filtered, scored and sorted deck.
	Snapshots []ScoreSnapshot `json:"snapshots"`

	// Top is the leading slice of Snapshots used for the activation matrix.
	Top []ScoreSnapshot `json:"top"`

	// RegionSummaries is computed over the unfiltered store.
	RegionSummaries []RegionSummary `json:"regionSummaries,omitempty"`

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performedSteps,omitempty"`

	// Error is set when a step failed.
	Error error `json:"-"`

	// ErrorMessage mirrors Error for serialization.
	ErrorMessage string `json:"error,omitempty"`
}

// NewDeck creates an uncomputed deck for the given run name and filter.
func NewDeck(name string, spec FilterSpec) *Deck {
	return &Deck{
		Name:        name,
		Spec:        spec.Normalize(),
		GeneratedAt: time.Now().UTC(),
	}
}

// Computed reports whether the rank step has filled Snapshots.
func (d *Deck) Computed() bool {
	return d.Snapshots != nil
}

// IsEmpty reports whether the deck was computed and no lead survived the filters.
func (d *Deck) IsEmpty() bool {
	return d.Computed() && len(d.Snapshots) == 0
}

// MatchCount returns the number of leads in the ranked deck.
func (d *Deck) MatchCount() int {
	return len(d.Snapshots)
}

// HasError reports whether any step failed.
func (d *Deck) HasError() bool {
	return d.Error != nil || d.ErrorMessage != ""
}
