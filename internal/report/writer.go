package report

import (
	"io"
	"strconv"

	"github.com/nao1215/leaddeck/internal/leadstore"
	"github.com/nao1215/leaddeck/internal/model"
	"github.com/nao1215/leaddeck/internal/rank"
)

// Section titles and empty-state messages shared by all writers.
const (
	titleMatrix = "Priority Activation Matrix"
	titleDeck   = "Lead Intelligence Deck"

	// EmptyMatrixMessage is shown in place of the matrix when no lead matches.
	EmptyMatrixMessage = "No leads match the current filters. Reset filters or adjust parameters."

	// EmptyDeckMessage is shown in place of the deck when no lead matches.
	EmptyDeckMessage = "No leads available. Try resetting filters or expanding search criteria."
)

// Writer defines the interface for deck output.
type Writer interface {
	// Write outputs a single ranked deck.
	// Returns the number of bytes written and any error encountered.
	Write(deck *model.Deck) (int, error)

	// WriteBatch outputs the decks of a batch run, in order.
	WriteBatch(decks []*model.Deck) (int, error)

	// WriteRegions outputs only the region snapshot.
	WriteRegions(leadCount int, summaries []model.RegionSummary) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the deck to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(deck *model.Deck) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.Write(deck) })
}

// WriteBatch outputs the decks to all configured Writers.
func (m *MultiWriter) WriteBatch(decks []*model.Deck) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteBatch(decks) })
}

// WriteRegions outputs the region snapshot to all configured Writers.
func (m *MultiWriter) WriteRegions(leadCount int, summaries []model.RegionSummary) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteRegions(leadCount, summaries) })
}

func (m *MultiWriter) each(fn func(Writer) (int, error)) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := fn(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// FormatScore renders a score rounded to one decimal, dropping a trailing
// ".0" (9 rather than 9.0).
func FormatScore(score float64) string {
	return strconv.FormatFloat(rank.RoundScore(score), 'f', -1, 64)
}

// activeLeadsLine renders the snapshot headline.
func activeLeadsLine(leadCount int) string {
	return strconv.Itoa(leadCount) + " Active Leads"
}

// regionLine renders the count and average of one region summary.
func regionLine(s model.RegionSummary) string {
	return strconv.Itoa(s.Count) + " leads • " + FormatScore(s.AvgScore) + "/10"
}

// filterDescription renders a filter spec for report headers.
func filterDescription(spec model.FilterSpec) [][2]string {
	search := spec.SearchTerm
	if search == "" {
		search = "-"
	}
	highValue := "off"
	if spec.HighlightHighValueOnly {
		highValue = "score >= " + FormatScore(rank.HighValueThreshold)
	}
	return [][2]string{
		{"Industry", spec.Industry},
		{"Region", spec.Region},
		{"Search", search},
		{"High value only", highValue},
	}
}

// instagramLabel renders an Instagram profile URL as "@handle (url)".
func instagramLabel(raw string) string {
	if handle, ok := leadstore.InstagramHandle(raw); ok {
		return "@" + handle + " (" + raw + ")"
	}
	return raw
}
