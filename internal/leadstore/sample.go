package leadstore

import (
	_ "embed"
	"fmt"
)

//go:embed data/leads.yaml
var sampleData []byte

// Sample returns a store built from the embedded sample dataset.
// It is the lead source used when no lead file or catalog is given.
func Sample() (*Store, error) {
	leads, err := decodeYAML(sampleData)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sample leads: %w", err)
	}
	return New(leads)
}

// SampleData returns the raw embedded sample dataset in YAML form.
func SampleData() []byte {
	return append([]byte(nil), sampleData...)
}
