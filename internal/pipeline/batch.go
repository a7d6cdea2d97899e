package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/leaddeck/internal/model"
)

// DefaultConcurrency is the number of presets ranked at once when
// WithConcurrency is not given.
const DefaultConcurrency = 4

// BatchProcessor ranks several filter presets against the same store.
// Each preset gets its own pipeline from the factory; decks never share state.
type BatchProcessor struct {
	newPipeline func() *Pipeline
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets the logger for batch-level events.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency caps the number of presets ranked at once.
// Non-positive values are ignored.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor returns a BatchProcessor that builds one pipeline per
// preset with factory.
func NewBatchProcessor(factory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		newPipeline: factory,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(bp)
	}
	if bp.logger == nil {
		bp.logger = slog.Default()
	}
	return bp
}

// ProcessBatch ranks every preset and returns one deck per preset, in input
// order. A failed run does not stop the others; its error is recorded in
// its deck. The returned error is non-nil only when the batch was cancelled,
// in which case presets that never started have a nil deck.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, presets []model.Preset) ([]*model.Deck, error) {
	bp.logger.Info("starting batch",
		"presets", len(presets),
		"concurrency", bp.concurrency,
	)
	start := time.Now()

	// Each worker owns exactly one slot.
	decks := make([]*model.Deck, len(presets))
	err := bp.ProcessBatchWithCallback(ctx, presets, func(deck *model.Deck, i int) {
		decks[i] = deck
	})

	bp.logger.Info("batch complete",
		"presets", len(presets),
		"elapsed", time.Since(start),
	)
	return decks, err
}

// ProcessBatchWithCallback ranks every preset and hands each finished deck
// to callback along with the preset's index. callback runs on the worker
// goroutine and must be safe for concurrent use.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	presets []model.Preset,
	callback func(deck *model.Deck, index int),
) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, preset := range presets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			callback(bp.rankPreset(ctx, preset, i, len(presets)), i)
			return nil
		})
	}
	return g.Wait()
}

func (bp *BatchProcessor) rankPreset(ctx context.Context, preset model.Preset, i, total int) *model.Deck {
	logger := bp.logger.With("preset", preset.Name)
	logger.Debug("ranking preset", "index", i+1, "total", total)

	deck := model.NewDeck(preset.Name, preset.Spec)
	if err := bp.newPipeline().Execute(ctx, deck); err != nil {
		logger.Warn("preset failed", "error", err)
		return deck
	}

	logger.Info("preset ranked", "matches", deck.MatchCount())
	return deck
}
