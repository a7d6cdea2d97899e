package rank

import (
	"math"
	"testing"

	"github.com/nao1215/leaddeck/internal/model"
)

// TestScore tests the composite score.
func TestScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		metrics model.Metrics
		want    float64
	}{
		{
			name:    "uniform metrics",
			metrics: model.Metrics{Design: 8, Storytelling: 8, Innovation: 8, Responsiveness: 8},
			want:    8,
		},
		{
			name:    "mixed metrics",
			metrics: model.Metrics{Design: 9.4, Storytelling: 9.1, Innovation: 8.2, Responsiveness: 8.5},
			want:    8.8,
		},
		{
			name:    "all zero",
			metrics: model.Metrics{},
			want:    0,
		},
		{
			name:    "all ten",
			metrics: model.Metrics{Design: 10, Storytelling: 10, Innovation: 10, Responsiveness: 10},
			want:    10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Score(model.Lead{Metrics: tt.metrics})
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score() = %v, want %v", got, tt.want)
			}
			if got < model.MetricMin || got > model.MetricMax {
				t.Errorf("Score() = %v out of range", got)
			}
		})
	}
}

// TestRoundScore tests one-decimal rounding with halves away from zero.
func TestRoundScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want float64
	}{
		{in: 7.5, want: 7.5},
		{in: 8.25, want: 8.3},
		{in: 7.25, want: 7.3},
		{in: 8.349, want: 8.3},
		{in: 0, want: 0},
		{in: 10, want: 10},
		{in: 8.875, want: 8.9},
	}

	for _, tt := range tests {
		if got := RoundScore(tt.in); got != tt.want {
			t.Errorf("RoundScore(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
