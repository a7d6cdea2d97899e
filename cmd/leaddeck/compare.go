package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/leaddeck/internal/config"
	"github.com/nao1215/leaddeck/internal/leadstore"
	"github.com/nao1215/leaddeck/internal/model"
	"github.com/nao1215/leaddeck/internal/rank"
	"github.com/nao1215/leaddeck/internal/report"
)

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare OLD NEW",
		Short: "Compare two lead sources ranked with the same filter",
		Long: `Compare ranks two lead sources with the same filter and shows:
- leads that now match the filter and leads that no longer do
- score and rank changes of leads present on both sides
- per-region lead counts and average scores
- whether the average fit score of the deck improved or declined

OLD and NEW are lead files, or one of the special sources "sample"
(the embedded dataset) and "catalog" (the lead catalog).

Examples:
  # What changed since the catalog was imported
  leaddeck compare catalog leads.yaml

  # Compare two revisions of a lead file for UAE fashion brands
  leaddeck compare leads-v1.yaml leads-v2.yaml -i Fashion -r UAE

  # Markdown output
  leaddeck compare sample leads.yaml --markdown`,
		Args: cobra.ExactArgs(2),
		RunE: runCompareCmd,
	}

	cmd.Flags().StringP("industry", "i", "",
		`Industry filter (exact value or "All")`)
	cmd.Flags().StringP("region", "r", "",
		`Region filter (exact value or "All")`)
	cmd.Flags().StringP("search", "s", "",
		"Case-insensitive free-text search over lead details")
	cmd.Flags().BoolP("high-value", "H", false,
		"Only keep leads with a fit score of at least 8.5")
	cmd.Flags().String("db-dir", "",
		"Lead catalog directory (default: XDG data directory)")

	addFormatFlags(cmd)

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	flags := cmd.Flags()
	spec := model.DefaultFilterSpec()
	if spec.Industry, err = flags.GetString("industry"); err != nil {
		return err
	}
	if spec.Region, err = flags.GetString("region"); err != nil {
		return err
	}
	if spec.SearchTerm, err = flags.GetString("search"); err != nil {
		return err
	}
	if spec.HighlightHighValueOnly, err = flags.GetBool("high-value"); err != nil {
		return err
	}

	logger := newLogger(cmd)
	ctx := cmd.Context()

	previous, err := loadNamedSource(ctx, cfg, args[0], logger)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}
	current, err := loadNamedSource(ctx, cfg, args[1], logger)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[1], err)
	}

	result := rank.Compare(previous.Leads(), current.Leads(), spec)
	result.Previous.Source = args[0]
	result.Previous.StoreDigest = previous.Digest()
	result.Current.Source = args[1]
	result.Current.StoreDigest = current.Digest()

	logger.Info("compared lead sources",
		"previous", args[0],
		"current", args[1],
		"added", len(result.Added),
		"removed", len(result.Removed),
		"moved", len(result.Moved),
	)

	return withOutput(cmd, cfg, func(w io.Writer) error {
		switch {
		case cfg.JSONReport:
			var v any = &result
			if cfg.StampVersion {
				v = &comparisonReport{Version: getVersion(), Comparison: &result}
			}
			_, err := newJSONWriter(cfg, w).WriteValue(v)
			return err
		case cfg.MarkdownReport:
			writeComparisonMarkdown(w, &result)
		default:
			writeComparisonText(w, &result)
		}
		return nil
	})
}

// comparisonReport is the --with-version JSON shape of a comparison.
type comparisonReport struct {
	Version    string            `json:"version"`
	Comparison *model.Comparison `json:"comparison"`
}

// loadNamedSource loads a lead store from "sample", "catalog" or a lead file.
func loadNamedSource(ctx context.Context, cfg *config.Config, name string, logger *slog.Logger) (*leadstore.Store, error) {
	logger.Debug("loading lead source", "source", name)
	switch name {
	case sourceSample:
		return leadstore.Sample()
	case sourceCatalog:
		return loadCatalog(ctx, cfg.CatalogDir)
	default:
		return leadstore.LoadFile(name)
	}
}

// writeComparisonText writes the comparison in human-readable text format.
func writeComparisonText(w io.Writer, c *model.Comparison) {
	fmt.Fprintf(w, "Lead Comparison: %s -> %s\n", c.Previous.Source, c.Current.Source)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	fmt.Fprintf(w, "\nTrend: %s\n", formatTrend(c.Trend))
	fmt.Fprintf(w, "Filter: industry=%s region=%s search=%q high-value=%t\n",
		c.Spec.Industry, c.Spec.Region, c.Spec.SearchTerm, c.Spec.HighlightHighValueOnly)

	fmt.Fprintln(w, "\nSummary:")
	fmt.Fprintf(w, "  %-12s  %-10s  %-10s  %-10s\n", "Metric", "Previous", "Current", "Change")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 48))
	fmt.Fprintf(w, "  %-12s  %-10d  %-10d  %-10s\n", "Leads",
		c.Previous.LeadCount, c.Current.LeadCount, formatDelta(c.Current.LeadCount-c.Previous.LeadCount))
	fmt.Fprintf(w, "  %-12s  %-10d  %-10d  %-10s\n", "Matches",
		c.Previous.MatchCount, c.Current.MatchCount, formatDelta(c.Current.MatchCount-c.Previous.MatchCount))
	fmt.Fprintf(w, "  %-12s  %-10s  %-10s  %-10s\n", "Avg score",
		report.FormatScore(c.Previous.AvgScore), report.FormatScore(c.Current.AvgScore),
		formatScoreDelta(c.Current.AvgScore-c.Previous.AvgScore))

	if len(c.Added) > 0 {
		fmt.Fprintf(w, "\nAdded (%d):\n", len(c.Added))
		for _, s := range c.Added {
			fmt.Fprintf(w, "  [+] %s (%s, %s) %s/10\n", s.Lead.Name, s.Lead.Industry, s.Lead.Location, report.FormatScore(s.Score))
		}
	}

	if len(c.Removed) > 0 {
		fmt.Fprintf(w, "\nRemoved (%d):\n", len(c.Removed))
		for _, s := range c.Removed {
			fmt.Fprintf(w, "  [-] %s (%s, %s) %s/10\n", s.Lead.Name, s.Lead.Industry, s.Lead.Location, report.FormatScore(s.Score))
		}
	}

	if len(c.Moved) > 0 {
		fmt.Fprintf(w, "\nMoved (%d):\n", len(c.Moved))
		for _, m := range c.Moved {
			fmt.Fprintf(w, "  [~] %s: #%d -> #%d, %s -> %s (%s)\n", m.Name,
				m.PreviousRank, m.CurrentRank,
				report.FormatScore(m.PreviousScore), report.FormatScore(m.CurrentScore),
				formatScoreDelta(m.ScoreDelta()))
		}
	}

	if len(c.Regions) > 0 {
		fmt.Fprintln(w, "\nRegions:")
		for _, r := range c.Regions {
			fmt.Fprintf(w, "  %-14s  %d -> %d leads, %s -> %s avg\n", r.Region,
				r.PreviousCount, r.CurrentCount,
				report.FormatScore(r.PreviousAvgScore), report.FormatScore(r.CurrentAvgScore))
		}
	}

	if c.UnchangedCount > 0 {
		fmt.Fprintf(w, "\nUnchanged: %d leads\n", c.UnchangedCount)
	}
}

// writeComparisonMarkdown writes the comparison in Markdown format.
func writeComparisonMarkdown(w io.Writer, c *model.Comparison) {
	fmt.Fprintf(w, "# Lead Comparison: %s -> %s\n\n", c.Previous.Source, c.Current.Source)

	fmt.Fprintln(w, "## Summary")
	fmt.Fprintf(w, "\n**Trend:** %s\n\n", formatTrend(c.Trend))

	fmt.Fprintln(w, "| Metric | Previous | Current | Change |")
	fmt.Fprintln(w, "|--------|----------|---------|--------|")
	fmt.Fprintf(w, "| Leads | %d | %d | %s |\n",
		c.Previous.LeadCount, c.Current.LeadCount, formatDelta(c.Current.LeadCount-c.Previous.LeadCount))
	fmt.Fprintf(w, "| Matches | %d | %d | %s |\n",
		c.Previous.MatchCount, c.Current.MatchCount, formatDelta(c.Current.MatchCount-c.Previous.MatchCount))
	fmt.Fprintf(w, "| Avg score | %s | %s | %s |\n",
		report.FormatScore(c.Previous.AvgScore), report.FormatScore(c.Current.AvgScore),
		formatScoreDelta(c.Current.AvgScore-c.Previous.AvgScore))

	if len(c.Added) > 0 {
		fmt.Fprintf(w, "\n## Added Leads (%d)\n\n", len(c.Added))
		for _, s := range c.Added {
			fmt.Fprintf(w, "- **%s** (%s, %s): %s/10\n", s.Lead.Name, s.Lead.Industry, s.Lead.Location, report.FormatScore(s.Score))
		}
	}

	if len(c.Removed) > 0 {
		fmt.Fprintf(w, "\n## Removed Leads (%d)\n\n", len(c.Removed))
		for _, s := range c.Removed {
			fmt.Fprintf(w, "- ~~**%s** (%s, %s): %s/10~~\n", s.Lead.Name, s.Lead.Industry, s.Lead.Location, report.FormatScore(s.Score))
		}
	}

	if len(c.Moved) > 0 {
		fmt.Fprintf(w, "\n## Moved Leads (%d)\n\n", len(c.Moved))
		fmt.Fprintln(w, "| Brand | Rank | Score | Change |")
		fmt.Fprintln(w, "|-------|------|-------|--------|")
		for _, m := range c.Moved {
			fmt.Fprintf(w, "| %s | #%d -> #%d (%s) | %s -> %s | %s |\n", m.Name,
				m.PreviousRank, m.CurrentRank, formatRankDelta(m.RankDelta()),
				report.FormatScore(m.PreviousScore), report.FormatScore(m.CurrentScore),
				formatScoreDelta(m.ScoreDelta()))
		}
	}

	if len(c.Regions) > 0 {
		fmt.Fprintln(w, "\n## Regions")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Region | Leads | Avg Score |")
		fmt.Fprintln(w, "|--------|-------|-----------|")
		for _, r := range c.Regions {
			fmt.Fprintf(w, "| %s | %d -> %d | %s -> %s |\n", r.Region,
				r.PreviousCount, r.CurrentCount,
				report.FormatScore(r.PreviousAvgScore), report.FormatScore(r.CurrentAvgScore))
		}
	}

	if c.UnchangedCount > 0 {
		fmt.Fprintf(w, "\n---\n\n*%d leads unchanged*\n", c.UnchangedCount)
	}
}

// formatTrend formats the comparison trend for display.
func formatTrend(trend string) string {
	switch trend {
	case model.TrendImproved:
		return "IMPROVED (average fit score increased)"
	case model.TrendDeclined:
		return "DECLINED (average fit score decreased)"
	default:
		return "UNCHANGED"
	}
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}

// formatScoreDelta formats a score delta with sign, rounded to one decimal.
func formatScoreDelta(delta float64) string {
	s := report.FormatScore(delta)
	if rank.RoundScore(delta) > 0 {
		return "+" + s
	}
	if s == "-0" {
		return "0"
	}
	return s
}

// formatRankDelta renders places climbed as "+n", places fallen as "-n".
func formatRankDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}
