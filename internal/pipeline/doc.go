// Package pipeline provides a framework for executing ranking steps in sequence.
//
// A ranking run turns a lead store and a filter spec into a model.Deck by
// passing the deck through a fixed series of steps: category extraction,
// ranking, top-opportunity selection and region aggregation. Each stage is
// implemented as a Step that receives the current deck and fills in its part.
//
// The pipeline supports both single runs and batch processing of several
// filter presets with concurrency control using errgroup.
package pipeline
