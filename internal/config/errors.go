package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and File lookups so callers
// can use errors.Is() while still getting human-readable messages.
var (
	// ErrInvalidTopN is returned when the priority matrix size is not positive.
	ErrInvalidTopN = errors.New("invalid top size: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no preset is ever evaluated.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrConflictingSources is returned when lead files and the catalog are
	// both requested as the lead source.
	ErrConflictingSources = errors.New("conflicting lead sources: --file and --catalog cannot be used together")

	// ErrInvalidJSONIndent is returned when the JSON indentation is negative.
	ErrInvalidJSONIndent = errors.New("invalid JSON indent: must not be negative")

	// ErrTeeWithoutOutput is returned when --tee is given without --output.
	ErrTeeWithoutOutput = errors.New("--tee requires --output")

	// ErrUnknownPreset is returned when a preset name is not defined in the
	// configuration file.
	ErrUnknownPreset = errors.New("unknown preset")
)
