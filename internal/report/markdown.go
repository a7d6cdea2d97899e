package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/leaddeck/internal/model"
	"github.com/nao1215/leaddeck/internal/rank"
)

// MarkdownWriter outputs decks in GitHub-flavored Markdown.
// Lead cards are collapsed into details blocks so that long decks stay
// readable in a rendered view.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the deck in Markdown format.
func (w *MarkdownWriter) Write(deck *model.Deck) (int, error) {
	md := markdown.NewMarkdown(w.output)
	w.writeDeck(md, deck, "Lead Deck")
	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// WriteBatch outputs every deck under its own heading.
func (w *MarkdownWriter) WriteBatch(decks []*model.Deck) (int, error) {
	md := markdown.NewMarkdown(w.output)
	md.H1("Lead Deck Batch")
	md.PlainText("")
	md.PlainTextf("%d preset(s) ranked.", len(decks))
	md.PlainText("")
	for _, deck := range decks {
		if deck == nil {
			continue
		}
		md.HorizontalRule()
		md.PlainText("")
		w.writeDeck(md, deck, "Preset")
	}
	w.writeFooter(md)
	return len(md.String()), md.Build()
}

// WriteRegions outputs the region snapshot only.
func (w *MarkdownWriter) WriteRegions(leadCount int, summaries []model.RegionSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)
	md.H1("Regional Snapshot")
	md.PlainText("")
	w.writeSnapshot(md, leadCount, summaries)
	w.writeFooter(md)
	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeDeck(md *markdown.Markdown, deck *model.Deck, title string) {
	if deck.Name != "" {
		title += ": " + deck.Name
	}
	md.H1(title)
	md.PlainText("")

	rows := make([][]string, 0, 5)
	for _, kv := range filterDescription(deck.Spec) {
		rows = append(rows, []string{kv[0], kv[1]})
	}
	rows = append(rows, []string{"Generated", deck.GeneratedAt.Format("2006-01-02 15:04:05 MST")})
	md.Table(markdown.TableSet{
		Header: []string{"Filter", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	w.writeAlert(md, deck)

	md.H2("Snapshot")
	md.PlainText("")
	w.writeSnapshot(md, deck.LeadCount, deck.RegionSummaries)

	w.writeMatrix(md, deck)
	w.writeCards(md, deck)
}

// writeAlert writes an alert describing the state of the deck.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, deck *model.Deck) {
	switch {
	case deck.HasError():
		md.Cautionf("Ranking failed: %s", deck.ErrorMessage)
	case len(deck.Snapshots) == 0:
		md.Warningf("%s", EmptyDeckMessage)
	default:
		high := 0
		for _, s := range deck.Snapshots {
			if s.Score >= rank.HighValueThreshold {
				high++
			}
		}
		if high > 0 {
			md.Tip(fmt.Sprintf("%d of %d lead(s) score at least %s.", high, len(deck.Snapshots), FormatScore(rank.HighValueThreshold)))
		} else {
			md.Note("No lead in this deck clears the high-value threshold.")
		}
	}
	md.PlainText("")
}

// writeSnapshot writes the active lead count with a region table and chart.
func (w *MarkdownWriter) writeSnapshot(md *markdown.Markdown, leadCount int, summaries []model.RegionSummary) {
	md.PlainTextf("**%s**", activeLeadsLine(leadCount))
	md.PlainText("")

	if len(summaries) == 0 {
		return
	}

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{string(s.Region), strconv.Itoa(s.Count), FormatScore(s.AvgScore) + "/10"})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Region", "Leads", "Avg Score"},
		Rows:   rows,
	})

	w.writePieChart(md, summaries)
}

// writePieChart writes a mermaid pie chart of leads per region.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summaries []model.RegionSummary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Leads by Region"),
		piechart.WithShowData(true),
	)

	for _, s := range summaries {
		if s.Count > 0 {
			chart.LabelAndIntValue(string(s.Region), uint64(s.Count))
		}
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeMatrix writes the top opportunities table.
func (w *MarkdownWriter) writeMatrix(md *markdown.Markdown, deck *model.Deck) {
	md.H2(titleMatrix)
	md.PlainText("")

	if len(deck.Top) == 0 {
		md.PlainText(EmptyMatrixMessage)
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(deck.Top))
	for _, s := range deck.Top {
		rows = append(rows, []string{
			escapeCell(s.Lead.Name),
			string(s.Lead.Location),
			escapeCell(string(s.Lead.Industry)),
			escapeCell(s.Lead.CollaborationHook),
			FormatScore(s.Score),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Brand", "Region", "Industry", "Strategic Hook", "Fit Score"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeCards writes one collapsible card per lead.
func (w *MarkdownWriter) writeCards(md *markdown.Markdown, deck *model.Deck) {
	md.H2(titleDeck)
	md.PlainText("")

	if len(deck.Snapshots) == 0 {
		md.PlainText(EmptyDeckMessage)
		md.PlainText("")
		return
	}

	for _, s := range deck.Snapshots {
		summary := s.Lead.Name + " (" + FormatScore(s.Score) + "/10)"
		md.Details(summary, cardBody(s.Lead))
	}
	md.PlainText("")
}

// cardBody renders the sections of a lead card as Markdown text.
func cardBody(lead model.Lead) string {
	var sb strings.Builder

	line := func(s string) {
		sb.WriteString(s)
		sb.WriteString("\n")
	}
	section := func(title string) {
		line("")
		line("**" + title + "**")
		line("")
	}
	bullets := func(items []string) {
		for _, item := range items {
			line("- " + item)
		}
	}

	if lead.Description != "" {
		line(lead.Description)
		line("")
	}
	line("- Industry: " + string(lead.Industry))
	line("- Region: " + string(lead.Location))
	line("- Website: " + lead.Website)
	if lead.Instagram != "" {
		line("- Instagram: " + instagramLabel(lead.Instagram))
	}

	section("Audience Pulse")
	line(lead.Audience)

	section("Activity & Signals")
	line(lead.Activity)
	bullets(lead.Signals)

	section("Strategic Angle")
	line("- Collaboration hook: " + lead.CollaborationHook)
	line("- Opportunity: " + lead.Opportunity)
	bullets(lead.ContentIdeas)

	section("Why It Matters Now")
	line(lead.WhyItMatters)

	if lead.Notes != "" {
		section("Lead Notes")
		line(lead.Notes)
	}

	m := lead.Metrics
	section("Metrics")
	line("| Design | Storytelling | Innovation | Responsiveness |")
	line("|---|---|---|---|")
	line("| " + FormatScore(m.Design) + " | " + FormatScore(m.Storytelling) + " | " +
		FormatScore(m.Innovation) + " | " + FormatScore(m.Responsiveness) + " |")

	return sb.String()
}

// escapeCell keeps table cells on one line and away from column breaks.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [leaddeck](https://github.com/nao1215/leaddeck)*")
}
