package model

import (
	"errors"
	"testing"
)

// TestNewDeck tests deck construction.
func TestNewDeck(t *testing.T) {
	t.Parallel()

	deck := NewDeck("uae", FilterSpec{Region: "UAE"})

	if deck.Name != "uae" {
		t.Errorf("expected name 'uae', got %q", deck.Name)
	}
	if deck.Spec.Industry != All {
		t.Errorf("expected normalized industry %q, got %q", All, deck.Spec.Industry)
	}
	if deck.GeneratedAt.IsZero() {
		t.Error("expected GeneratedAt to be set")
	}
	if deck.Computed() {
		t.Error("expected new deck to be uncomputed")
	}
	if deck.IsEmpty() {
		t.Error("uncomputed deck must not report empty")
	}
}

// TestDeckEmptyState tests telling "empty" from "not yet computed".
func TestDeckEmptyState(t *testing.T) {
	t.Parallel()

	t.Run("computed with no matches is empty", func(t *testing.T) {
		t.Parallel()
		deck := NewDeck("", DefaultFilterSpec())
		deck.Snapshots = []ScoreSnapshot{}

		if !deck.Computed() {
			t.Error("expected deck to be computed")
		}
		if !deck.IsEmpty() {
			t.Error("expected deck to be empty")
		}
		if deck.MatchCount() != 0 {
			t.Errorf("expected 0 matches, got %d", deck.MatchCount())
		}
	})

	t.Run("computed with matches is not empty", func(t *testing.T) {
		t.Parallel()
		deck := NewDeck("", DefaultFilterSpec())
		deck.Snapshots = []ScoreSnapshot{{Lead: Lead{ID: "a"}, Score: 7}}

		if deck.IsEmpty() {
			t.Error("expected deck not to be empty")
		}
		if deck.MatchCount() != 1 {
			t.Errorf("expected 1 match, got %d", deck.MatchCount())
		}
	})
}

// TestDeckHasError tests error detection.
func TestDeckHasError(t *testing.T) {
	t.Parallel()

	deck := NewDeck("", DefaultFilterSpec())
	if deck.HasError() {
		t.Error("expected no error on new deck")
	}

	deck.Error = errors.New("boom")
	if !deck.HasError() {
		t.Error("expected HasError after setting Error")
	}

	restored := &Deck{ErrorMessage: "boom"}
	if !restored.HasError() {
		t.Error("expected HasError when only ErrorMessage is set")
	}
}

// TestScoreMovement tests movement deltas.
func TestScoreMovement(t *testing.T) {
	t.Parallel()

	m := ScoreMovement{PreviousScore: 7.5, CurrentScore: 8.25, PreviousRank: 4, CurrentRank: 1}

	if got := m.ScoreDelta(); got != 0.75 {
		t.Errorf("expected score delta 0.75, got %v", got)
	}
	if got := m.RankDelta(); got != 3 {
		t.Errorf("expected rank delta 3, got %d", got)
	}
}
