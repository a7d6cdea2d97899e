package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/leaddeck/internal/model"
)

// Step is one stage of building a deck. Each step sees the deck as left by
// the steps before it.
type Step interface {
	// Do fills in its part of deck.
	Do(ctx context.Context, deck *model.Deck) error

	// Name identifies the step in logs and in Deck.PerformedSteps.
	Name() string
}

// Pipeline runs steps in order against a single deck.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New returns an empty pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends steps in order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs the steps against deck. Cancellation is checked before each
// step. The first failing step stops the run; its error is returned and
// recorded in the deck.
func (p *Pipeline) Execute(ctx context.Context, deck *model.Deck) error {
	logger := p.logger.With("deck", deck.Name)
	logger.Debug("running pipeline", "steps", p.StepNames())

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			logger.Warn("pipeline cancelled", "step", step.Name(), "reason", err)
			recordError(deck, err)
			return err
		}

		start := time.Now()
		if err := step.Do(ctx, deck); err != nil {
			logger.Error("step failed", "step", step.Name(), "error", err)
			recordError(deck, err)
			return err
		}
		logger.Debug("step completed", "step", step.Name(), "elapsed", time.Since(start))

		deck.PerformedSteps = append(deck.PerformedSteps, step.Name())
	}
	return nil
}

func recordError(deck *model.Deck, err error) {
	deck.Error = err
	deck.ErrorMessage = err.Error()
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
