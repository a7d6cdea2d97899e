package leadstore

import "errors"

// Lead store validation errors.
// Store construction joins every violation it finds, each wrapped with the
// offending lead, so callers can use errors.Is on the combined error.
var (
	// ErrEmptyStore is returned when a store is built from zero leads.
	ErrEmptyStore = errors.New("lead store is empty")

	// ErrDuplicateID is returned when two leads share an ID.
	ErrDuplicateID = errors.New("duplicate lead id")

	// ErrMissingField is returned when a required field (id, name, industry,
	// location) is empty.
	ErrMissingField = errors.New("missing required field")

	// ErrMetricRange is returned when a metric is NaN or outside [0, 10].
	ErrMetricRange = errors.New("metric out of range: must be between 0 and 10")

	// ErrInvalidURL is returned when the website or instagram URL is not an
	// absolute http(s) URL with a valid host name.
	ErrInvalidURL = errors.New("invalid url")

	// ErrUnsupportedFormat is returned when a lead file has an extension
	// other than .yaml, .yml or .json.
	ErrUnsupportedFormat = errors.New("unsupported lead file format: use .yaml, .yml or .json")
)
