package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/nao1215/leaddeck/internal/model"
)

const (
	// ruleWidth is the width of section rules.
	ruleWidth = 78

	// hookWidth bounds the strategic hook column in the matrix.
	hookWidth = 36

	// barWidth is the width of a metric bar in lead cards.
	barWidth = 10
)

// SimpleWriter outputs human-readable text reports for terminal display.
// Columns are aligned by display width, so wide characters in brand names
// do not break the matrix layout.
type SimpleWriter struct {
	baseWriter

	// showMetrics adds per-metric bars to every lead card.
	showMetrics bool

	// deckLimit caps the number of lead cards printed. Zero means no cap.
	deckLimit int
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithMetrics adds metric bars to every lead card.
func WithMetrics(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showMetrics = show
	}
}

// WithDeckLimit caps the number of lead cards printed.
func WithDeckLimit(n int) SimpleWriterOption {
	return func(w *SimpleWriter) {
		if n >= 0 {
			w.deckLimit = n
		}
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the deck in human-readable format.
func (w *SimpleWriter) Write(deck *model.Deck) (int, error) {
	var sb strings.Builder
	w.writeDeck(&sb, deck)
	return w.output.Write([]byte(sb.String()))
}

// WriteBatch outputs every deck one after another.
func (w *SimpleWriter) WriteBatch(decks []*model.Deck) (int, error) {
	var sb strings.Builder
	for _, deck := range decks {
		if deck == nil {
			continue
		}
		w.writeDeck(&sb, deck)
	}
	return w.output.Write([]byte(sb.String()))
}

// WriteRegions outputs only the snapshot header.
func (w *SimpleWriter) WriteRegions(leadCount int, summaries []model.RegionSummary) (int, error) {
	var sb strings.Builder
	w.writeSnapshot(&sb, leadCount, summaries)
	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeDeck(sb *strings.Builder, deck *model.Deck) {
	w.writeHeader(sb, deck)
	w.writeSnapshot(sb, deck.LeadCount, deck.RegionSummaries)
	w.writeMatrix(sb, deck)
	w.writeCards(sb, deck)
}

// writeHeader writes the run header with the filter in effect.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, deck *model.Deck) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	title := "LEAD DECK"
	if deck.Name != "" {
		title += ": " + deck.Name
	}
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")

	for _, kv := range filterDescription(deck.Spec) {
		fmt.Fprintf(sb, "%-16s %s\n", kv[0]+":", kv[1])
	}
	fmt.Fprintf(sb, "%-16s %s\n", "Generated:", deck.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	if deck.HasError() {
		fmt.Fprintf(sb, "%-16s ERROR - %s\n", "Status:", deck.ErrorMessage)
	}
	sb.WriteString("\n")
}

// writeSnapshot writes the active lead count and per-region breakdown.
func (w *SimpleWriter) writeSnapshot(sb *strings.Builder, leadCount int, summaries []model.RegionSummary) {
	writeSection(sb, "SNAPSHOT")
	sb.WriteString("  " + activeLeadsLine(leadCount) + "\n\n")

	width := 0
	for _, s := range summaries {
		width = max(width, runewidth.StringWidth(string(s.Region)))
	}
	for _, s := range summaries {
		sb.WriteString("  ")
		sb.WriteString(runewidth.FillRight(string(s.Region), width))
		sb.WriteString("  ")
		sb.WriteString(regionLine(s))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// writeMatrix writes the top opportunities table.
func (w *SimpleWriter) writeMatrix(sb *strings.Builder, deck *model.Deck) {
	writeSection(sb, strings.ToUpper(titleMatrix))

	if len(deck.Top) == 0 {
		sb.WriteString("  " + EmptyMatrixMessage + "\n\n")
		return
	}

	header := []string{"Brand", "Region", "Industry", "Strategic Hook", "Fit Score"}
	rows := make([][]string, len(deck.Top))
	for i, s := range deck.Top {
		rows[i] = []string{
			s.Lead.Name,
			string(s.Lead.Location),
			string(s.Lead.Industry),
			runewidth.Truncate(s.Lead.CollaborationHook, hookWidth, "..."),
			FormatScore(s.Score),
		}
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	writeRow := func(cells []string) {
		sb.WriteString(" ")
		for i, cell := range cells {
			sb.WriteString(" ")
			if i == len(cells)-1 {
				sb.WriteString(runewidth.FillLeft(cell, widths[i]))
			} else {
				sb.WriteString(runewidth.FillRight(cell, widths[i]))
			}
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}

	writeRow(header)
	sep := make([]string, len(header))
	for i, width := range widths {
		sep[i] = strings.Repeat("-", width)
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
	sb.WriteString("\n")
}

// writeCards writes one card per lead in the ranked deck.
func (w *SimpleWriter) writeCards(sb *strings.Builder, deck *model.Deck) {
	writeSection(sb, strings.ToUpper(titleDeck))

	if len(deck.Snapshots) == 0 {
		sb.WriteString("  " + EmptyDeckMessage + "\n\n")
		return
	}

	snapshots := deck.Snapshots
	if w.deckLimit > 0 && len(snapshots) > w.deckLimit {
		snapshots = snapshots[:w.deckLimit]
	}

	for i, s := range snapshots {
		w.writeCard(sb, i+1, s)
	}

	if hidden := len(deck.Snapshots) - len(snapshots); hidden > 0 {
		fmt.Fprintf(sb, "  ... %d more lead(s) not shown\n\n", hidden)
	}
}

func (w *SimpleWriter) writeCard(sb *strings.Builder, pos int, s model.ScoreSnapshot) {
	lead := s.Lead

	fmt.Fprintf(sb, "[%d] %s  (%s, %s)  Fit Score %s/10\n", pos, lead.Name, lead.Industry, lead.Location, FormatScore(s.Score))
	if lead.Description != "" {
		sb.WriteString("    " + lead.Description + "\n")
	}

	field := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(sb, "    %-18s %s\n", label+":", value)
	}
	list := func(label string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(sb, "    %s:\n", label)
		for _, item := range items {
			sb.WriteString("      - " + item + "\n")
		}
	}

	field("Website", lead.Website)
	field("Instagram", instagramLabel(lead.Instagram))
	field("Audience", lead.Audience)
	field("Activity", lead.Activity)
	list("Signals", lead.Signals)
	field("Strategic hook", lead.CollaborationHook)
	field("Opportunity", lead.Opportunity)
	list("Content ideas", lead.ContentIdeas)
	field("Why it matters", lead.WhyItMatters)
	field("Notes", lead.Notes)

	if w.showMetrics {
		names := [4]string{"design", "storytelling", "innovation", "responsiveness"}
		for i, v := range lead.Metrics.Values() {
			fmt.Fprintf(sb, "    %-18s %s %s/10\n", names[i], metricBar(v), FormatScore(v))
		}
	}
	sb.WriteString("\n")
}

// metricBar renders a value in [0, 10] as a fixed-width bar.
func metricBar(v float64) string {
	filled := int(v/model.MetricMax*barWidth + 0.5)
	filled = min(max(filled, 0), barWidth)
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}

func writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}
