package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/leaddeck/internal/config"
	"github.com/nao1215/leaddeck/internal/leadstore"
	"github.com/nao1215/leaddeck/internal/model"
	"github.com/nao1215/leaddeck/internal/pipeline"
	"github.com/nao1215/leaddeck/internal/rank"
	"github.com/nao1215/leaddeck/internal/report"
)

// NewRankCmd creates the rank command.
func NewRankCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank leads and print the activation matrix and lead deck",
		Long: `Rank scores every lead, applies the filters and prints:
- the snapshot (active lead count and per-region averages)
- the priority activation matrix (top leads by fit score)
- the lead intelligence deck (every matching lead)

The fit score is the mean of design, storytelling, innovation and
responsiveness. Leads with equal scores keep their file order.

Examples:
  # Rank the embedded sample dataset
  leaddeck rank

  # Rank a lead file, fashion brands in the UAE only
  leaddeck rank -f leads.yaml -i Fashion -r UAE

  # Free-text search, high-value leads only (score >= 8.5)
  leaddeck rank -s heritage -H

  # Rank several presets from .leaddeck concurrently
  leaddeck rank -p uae-fashion -p high-value --batch 2

  # Write a Markdown report
  leaddeck rank --markdown -o reports/leads.md`,
		Args: cobra.NoArgs,
		RunE: runRankCmd,
	}

	addSourceFlags(cmd)

	cmd.Flags().StringP("industry", "i", "",
		`Industry filter (exact value or "All")`)
	cmd.Flags().StringP("region", "r", "",
		`Region filter (exact value or "All")`)
	cmd.Flags().StringP("search", "s", "",
		"Case-insensitive free-text search over lead details (an explicit \"\" clears a configured search)")
	cmd.Flags().BoolP("high-value", "H", false,
		"Only keep leads with a fit score of at least 8.5 (--high-value=false overrides the configuration file)")
	cmd.Flags().IntP("top", "n", config.DefaultTopN,
		"Number of leads in the priority activation matrix")
	cmd.Flags().Bool("reset", false,
		"Ignore the configuration file defaults and start from the reset filter (ad-hoc runs only)")
	cmd.Flags().Bool("strict", false,
		"Fail instead of warning when the industry or region is unknown")

	cmd.Flags().StringArrayP("preset", "p", nil,
		"Preset from the configuration file; repeat for batch mode")
	cmd.Flags().BoolP("all-presets", "A", false,
		"Rank every preset from the configuration file")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of presets ranked concurrently")
	cmd.Flags().Bool("metrics", false,
		"Show metric bars on lead cards (text output only)")
	cmd.Flags().Int("deck-limit", 0,
		"Maximum number of lead cards in the text deck; 0 prints all")

	addFormatFlags(cmd)
	addTeeFlag(cmd)

	return cmd
}

// rankOptions are rank flags that are not part of config.Config.
type rankOptions struct {
	strict    bool
	metrics   bool
	deckLimit int
}

// textOptions returns the SimpleWriter options selected by the rank flags.
func (o rankOptions) textOptions() []report.SimpleWriterOption {
	return []report.SimpleWriterOption{
		report.WithMetrics(o.metrics),
		report.WithDeckLimit(o.deckLimit),
	}
}

// runRankCmd executes the rank command.
func runRankCmd(cmd *cobra.Command, _ []string) error {
	cfg, opts, err := buildRankConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := newLogger(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runRank(ctx, cmd, cfg, opts, logger)
}

// buildRankConfig adds the filter, preset and batch flags to the shared config.
func buildRankConfig(cmd *cobra.Command) (*config.Config, rankOptions, error) {
	var opts rankOptions

	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, opts, err
	}

	flags := cmd.Flags()

	if cfg.Filter.Industry, err = flags.GetString("industry"); err != nil {
		return nil, opts, err
	}
	if cfg.Filter.Region, err = flags.GetString("region"); err != nil {
		return nil, opts, err
	}

	// Search and threshold replace configured values only when given, so
	// that --search "" and --high-value=false can switch them off.
	if flags.Changed("search") {
		search, err := flags.GetString("search")
		if err != nil {
			return nil, opts, err
		}
		cfg.SearchTerm = &search
	}
	if flags.Changed("high-value") {
		highValue, err := flags.GetBool("high-value")
		if err != nil {
			return nil, opts, err
		}
		cfg.HighValue = &highValue
	}

	// The file's topN applies unless --top was given explicitly.
	if flags.Changed("top") {
		if cfg.TopN, err = flags.GetInt("top"); err != nil {
			return nil, opts, err
		}
	}

	if cfg.Presets, err = flags.GetStringArray("preset"); err != nil {
		return nil, opts, err
	}
	if cfg.ResetFilter, err = flags.GetBool("reset"); err != nil {
		return nil, opts, err
	}
	if cfg.AllPresets, err = flags.GetBool("all-presets"); err != nil {
		return nil, opts, err
	}

	if cfg.BatchSize, err = flags.GetInt("batch"); err != nil {
		return nil, opts, err
	}
	if opts.strict, err = flags.GetBool("strict"); err != nil {
		return nil, opts, err
	}
	if opts.metrics, err = flags.GetBool("metrics"); err != nil {
		return nil, opts, err
	}
	if opts.deckLimit, err = flags.GetInt("deck-limit"); err != nil {
		return nil, opts, err
	}
	if opts.deckLimit < 0 {
		return nil, opts, fmt.Errorf("invalid deck limit %d: must not be negative", opts.deckLimit)
	}

	return cfg, opts, nil
}

// runRank loads the lead store and ranks every resolved preset.
func runRank(ctx context.Context, cmd *cobra.Command, cfg *config.Config, opts rankOptions, logger *slog.Logger) error {
	presets, err := cfg.ResolvePresets()
	if err != nil {
		return fmt.Errorf("failed to resolve presets: %w", err)
	}

	store, source, err := loadStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("ranking leads",
		"source", source,
		"leads", store.Len(),
		"digest", store.Digest(),
		"presets", len(presets),
		"topN", cfg.TopN,
	)

	// Presets that resolve to the same filter share one ranking.
	cache := rank.NewCache()
	factory := func() *pipeline.Pipeline {
		return newRankPipeline(store, cfg, opts, cache, logger)
	}

	start := time.Now()

	if len(presets) == 1 {
		preset := presets[0]
		deck := model.NewDeck(preset.Name, preset.Spec)
		if err := factory().Execute(ctx, deck); err != nil {
			return fmt.Errorf("failed to rank leads: %w", err)
		}
		if deck.IsEmpty() {
			logger.Info("no leads match the filters", "filtered", !preset.Spec.IsDefault())
		}
		logger.Debug("ranking complete", "matches", deck.MatchCount(), "elapsed", time.Since(start))
		return writeDecks(cmd, cfg, opts, []*model.Deck{deck})
	}

	bp := pipeline.NewBatchProcessor(factory,
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)
	decks, err := bp.ProcessBatch(ctx, presets)
	if err != nil {
		return fmt.Errorf("failed to rank presets: %w", err)
	}

	hits, misses := cache.Stats()
	logger.Debug("batch ranking complete",
		"presets", len(decks),
		"cache_hits", hits,
		"cache_misses", misses,
		"cache_entries", cache.Len(),
		"elapsed", time.Since(start),
	)

	if err := writeDecks(cmd, cfg, opts, decks); err != nil {
		return err
	}

	for _, deck := range decks {
		if deck.HasError() {
			return fmt.Errorf("preset %q failed: %s", deck.Name, deck.ErrorMessage)
		}
	}
	return nil
}

// newRankPipeline creates the ranking pipeline for one deck.
func newRankPipeline(store *leadstore.Store, cfg *config.Config, opts rankOptions, cache *rank.Cache, logger *slog.Logger) *pipeline.Pipeline {
	return pipeline.DefaultPipeline(store,
		[]pipeline.Option{pipeline.WithLogger(logger)},
		pipeline.WithPipelineTopN(cfg.TopN),
		pipeline.WithPipelineCache(cache),
		pipeline.WithPipelineStrictCategories(opts.strict),
		pipeline.WithPipelineLogger(logger),
	)
}

// writeDecks writes one deck, or a batch, in the configured format.
func writeDecks(cmd *cobra.Command, cfg *config.Config, opts rankOptions, decks []*model.Deck) error {
	return writeReport(cmd, cfg, opts.textOptions(), func(w report.Writer) (int, error) {
		if len(decks) == 1 {
			return w.Write(decks[0])
		}
		return w.WriteBatch(decks)
	})
}
