package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/leaddeck/internal/leadstore"
	"github.com/nao1215/leaddeck/internal/model"
	"github.com/nao1215/leaddeck/internal/rank"
)

var (
	// ErrUnknownCategory is returned by a strict CategoryStep when the filter
	// names an industry or region no lead belongs to.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrNotRanked is returned by steps that need the ranked deck when the
	// rank step has not run yet.
	ErrNotRanked = errors.New("deck has not been ranked")
)

// CategoryStep records the store's identity and category sets in the deck and
// checks the filter's industry and region against them.
//
// An unknown category is not an error by default: the deck simply ends up
// empty, and a warning is logged. With WithStrictCategories it fails instead.
type CategoryStep struct {
	store  *leadstore.Store
	strict bool
	logger *slog.Logger
}

// CategoryStepOption configures a CategoryStep.
type CategoryStepOption func(*CategoryStep)

// WithStrictCategories makes unknown industries and regions fail the step.
func WithStrictCategories(strict bool) CategoryStepOption {
	return func(s *CategoryStep) {
		s.strict = strict
	}
}

// WithCategoryLogger sets a custom logger for the category step.
func WithCategoryLogger(logger *slog.Logger) CategoryStepOption {
	return func(s *CategoryStep) {
		s.logger = logger
	}
}

// NewCategoryStep creates a category step for store.
func NewCategoryStep(store *leadstore.Store, opts ...CategoryStepOption) *CategoryStep {
	s := &CategoryStep{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *CategoryStep) Name() string {
	return "categories"
}

// Do executes the category step.
func (s *CategoryStep) Do(_ context.Context, deck *model.Deck) error {
	deck.StoreDigest = s.store.Digest()
	deck.LeadCount = s.store.Len()
	deck.Industries = s.store.Industries()
	deck.Regions = s.store.Regions()

	var errs []error
	if deck.Spec.Industry != model.All && !s.store.HasIndustry(deck.Spec.Industry) {
		errs = append(errs, fmt.Errorf("%w: industry %q", ErrUnknownCategory, deck.Spec.Industry))
	}
	if deck.Spec.Region != model.All && !s.store.HasRegion(deck.Spec.Region) {
		errs = append(errs, fmt.Errorf("%w: region %q", ErrUnknownCategory, deck.Spec.Region))
	}

	if len(errs) == 0 {
		return nil
	}

	err := errors.Join(errs...)
	if s.strict {
		return err
	}
	s.logger.Warn("filter matches no category in the lead store",
		"deck", deck.Name,
		"error", err,
	)
	return nil
}

// RankStep filters, scores and sorts the store's leads into deck.Snapshots.
type RankStep struct {
	store *leadstore.Store
	cache *rank.Cache
}

// RankStepOption configures a RankStep.
type RankStepOption func(*RankStep)

// WithRankCache shares a rank cache between runs. Batch runs over
// overlapping presets hit the cache instead of ranking again.
func WithRankCache(cache *rank.Cache) RankStepOption {
	return func(s *RankStep) {
		s.cache = cache
	}
}

// NewRankStep creates a rank step for store.
func NewRankStep(store *leadstore.Store, opts ...RankStepOption) *RankStep {
	s := &RankStep{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step name.
func (s *RankStep) Name() string {
	return "rank"
}

// Do executes the rank step.
func (s *RankStep) Do(_ context.Context, deck *model.Deck) error {
	if s.cache != nil {
		deck.Snapshots = s.cache.Rank(s.store.Digest(), s.store.Leads(), deck.Spec)
		return nil
	}
	deck.Snapshots = rank.Rank(s.store.Leads(), deck.Spec)
	return nil
}

// TopStep copies the leading slice of the ranked deck into deck.Top.
type TopStep struct {
	n int
}

// NewTopStep creates a step selecting the first n snapshots.
// A non-positive n falls back to rank.TopOpportunities.
func NewTopStep(n int) *TopStep {
	if n <= 0 {
		n = rank.TopOpportunities
	}
	return &TopStep{n: n}
}

// Name returns the step name.
func (s *TopStep) Name() string {
	return "top"
}

// Do executes the top step.
func (s *TopStep) Do(_ context.Context, deck *model.Deck) error {
	if !deck.Computed() {
		return ErrNotRanked
	}
	deck.Top = rank.Top(deck.Snapshots, s.n)
	return nil
}

// SummaryStep computes the region snapshot over the whole, unfiltered store.
type SummaryStep struct {
	store *leadstore.Store
}

// NewSummaryStep creates a region summary step for store.
func NewSummaryStep(store *leadstore.Store) *SummaryStep {
	return &SummaryStep{store: store}
}

// Name returns the step name.
func (s *SummaryStep) Name() string {
	return "summary"
}

// Do executes the summary step.
func (s *SummaryStep) Do(_ context.Context, deck *model.Deck) error {
	deck.RegionSummaries = rank.Summarize(s.store.Leads())
	return nil
}

// DefaultPipelineConfig holds configuration for the default pipeline.
type DefaultPipelineConfig struct {
	// TopN is the size of the priority activation matrix.
	TopN int

	// Cache, when set, memoizes ranking across runs.
	Cache *rank.Cache

	// StrictCategories fails runs whose filter names an unknown category.
	StrictCategories bool

	// Logger is passed to steps that log.
	Logger *slog.Logger
}

// DefaultPipelineOption configures a DefaultPipelineConfig.
type DefaultPipelineOption func(*DefaultPipelineConfig)

// WithPipelineTopN sets the priority matrix size.
func WithPipelineTopN(n int) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.TopN = n
	}
}

// WithPipelineCache sets a shared rank cache.
func WithPipelineCache(cache *rank.Cache) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Cache = cache
	}
}

// WithPipelineStrictCategories enables strict category checking.
func WithPipelineStrictCategories(strict bool) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.StrictCategories = strict
	}
}

// WithPipelineLogger sets the logger handed to the steps.
func WithPipelineLogger(logger *slog.Logger) DefaultPipelineOption {
	return func(c *DefaultPipelineConfig) {
		c.Logger = logger
	}
}

// DefaultPipeline creates a pipeline with all ranking steps configured,
// in the order categories, rank, top, summary.
//
// The first parameter accepts pipeline options (WithLogger, etc).
// The variadic parameter accepts pipeline config options (WithPipelineTopN, etc).
func DefaultPipeline(store *leadstore.Store, pipelineOpts []Option, configOpts ...DefaultPipelineOption) *Pipeline {
	p := New(pipelineOpts...)

	cfg := &DefaultPipelineConfig{
		TopN:   rank.TopOpportunities,
		Logger: slog.Default(),
	}
	for _, opt := range configOpts {
		opt(cfg)
	}

	var rankOpts []RankStepOption
	if cfg.Cache != nil {
		rankOpts = append(rankOpts, WithRankCache(cfg.Cache))
	}

	p.AddStep(NewCategoryStep(store,
		WithStrictCategories(cfg.StrictCategories),
		WithCategoryLogger(cfg.Logger),
	))
	p.AddSteps(
		NewRankStep(store, rankOpts...),
		NewTopStep(cfg.TopN),
		NewSummaryStep(store),
	)

	return p
}
