package model

// FilterSpec is the caller-owned filter state applied to a ranking run.
// The zero value is not the reset state; use DefaultFilterSpec.
type FilterSpec struct {
	// Industry restricts the deck to one industry, or All.
	Industry string `json:"industry" yaml:"industry,omitempty"`

	// Region restricts the deck to one location, or All.
	Region string `json:"region" yaml:"region,omitempty"`

	// SearchTerm is a free-text, case-insensitive substring filter.
	// Empty or whitespace-only matches everything.
	SearchTerm string `json:"searchTerm" yaml:"searchTerm,omitempty"`

	// HighlightHighValueOnly keeps only leads scoring at or above the
	// high-value threshold.
	HighlightHighValueOnly bool `json:"highlightHighValueOnly" yaml:"highlightHighValueOnly,omitempty"`
}

// DefaultFilterSpec returns the reset filter state:
// all industries, all regions, no search, no threshold.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		Industry: All,
		Region:   All,
	}
}

// Reset returns the reset filter state. The receiver is not modified;
// a FilterSpec is plain data owned by the caller.
func (FilterSpec) Reset() FilterSpec {
	return DefaultFilterSpec()
}

// Normalize fills empty Industry and Region with All.
func (f FilterSpec) Normalize() FilterSpec {
	if f.Industry == "" {
		f.Industry = All
	}
	if f.Region == "" {
		f.Region = All
	}
	return f
}

// IsDefault reports whether f is equivalent to the reset state.
func (f FilterSpec) IsDefault() bool {
	return f.Normalize() == DefaultFilterSpec()
}

// Merge overlays the non-empty fields of override onto f.
// HighlightHighValueOnly is only ever switched on by an override.
func (f FilterSpec) Merge(override FilterSpec) FilterSpec {
	result := f
	if override.Industry != "" {
		result.Industry = override.Industry
	}
	if override.Region != "" {
		result.Region = override.Region
	}
	if override.SearchTerm != "" {
		result.SearchTerm = override.SearchTerm
	}
	if override.HighlightHighValueOnly {
		result.HighlightHighValueOnly = true
	}
	return result
}

// Preset is a named FilterSpec, typically loaded from the configuration file.
type Preset struct {
	Name string     `json:"name" yaml:"name"`
	Spec FilterSpec `json:"spec" yaml:"spec"`
}
