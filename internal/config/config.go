package config

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/nao1215/leaddeck/internal/model"
)

// Default configuration values.
const (
	// DefaultTopN is the size of the priority activation matrix.
	DefaultTopN = 4

	// DefaultBatchSize is how many presets are ranked concurrently in batch mode.
	// Ranking is CPU-bound and cheap, so a small pool is enough.
	DefaultBatchSize = 4

	// DefaultJSONIndent is the JSON report indentation width.
	DefaultJSONIndent = 2

	// AppName is the application name used for XDG directory paths.
	AppName = "leaddeck"
)

// Config holds all configuration options for a leaddeck run.
// It is populated from CLI flags and the configuration file and passed
// through the application rather than kept in global state.
type Config struct {
	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// TopN is the number of leads in the priority activation matrix.
	TopN int

	// BatchSize is the number of presets ranked concurrently.
	BatchSize int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .leaddeck in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// File holds the loaded configuration file, if any.
	File *File

	// LeadFiles are YAML or JSON lead files to rank.
	// When empty and UseCatalog is false, the embedded sample dataset is used.
	LeadFiles []string

	// UseCatalog reads leads from the SQLite catalog in CatalogDir.
	UseCatalog bool

	// CatalogDir is the directory holding the lead catalog.
	// Defaults to the XDG data directory (~/.local/share/leaddeck on Linux).
	CatalogDir string

	// Filter is the ad-hoc filter spec built from CLI flags. Empty fields
	// leave the configuration file defaults in place.
	Filter model.FilterSpec

	// ResetFilter drops the configuration file defaults for ad-hoc runs.
	ResetFilter bool

	// SearchTerm and HighValue are set only when the flag was given
	// explicitly. They replace the preset and file values even when empty
	// or false, so a run can clear a search or threshold set in defaults.
	SearchTerm *string
	HighValue  *bool

	// Presets are the names of configuration file presets to rank.
	// More than one preset switches the rank command to batch mode.
	Presets []string

	// AllPresets ranks every preset of the configuration file.
	// It takes precedence over Presets.
	AllPresets bool

	// JSONReport enables JSON report output instead of the text report.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output with tables, alerts and
	// a region pie chart. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// Tee also prints the text report to stdout when ReportFile is set.
	Tee bool

	// JSONIndent is the number of spaces per JSON nesting level.
	// Zero writes compact JSON.
	JSONIndent int

	// StampVersion wraps JSON reports in an object carrying the version.
	StampVersion bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		TopN:       DefaultTopN,
		BatchSize:  DefaultBatchSize,
		CatalogDir: XDGDataDir(),
		JSONIndent: DefaultJSONIndent,
	}
}

// XDGDataDir returns the XDG data directory for leaddeck.
// On Linux: ~/.local/share/leaddeck
// On macOS: ~/Library/Application Support/leaddeck
// On Windows: %LOCALAPPDATA%\leaddeck
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for leaddeck.
// On Linux: ~/.config/leaddeck
// On macOS: ~/Library/Application Support/leaddeck
// On Windows: %APPDATA%\leaddeck
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found; fixing one often makes others irrelevant.
func (c *Config) Validate() error {
	if c.TopN <= 0 {
		return ErrInvalidTopN
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.UseCatalog && len(c.LeadFiles) > 0 {
		return ErrConflictingSources
	}

	if c.JSONIndent < 0 {
		return ErrInvalidJSONIndent
	}

	if c.Tee && c.ReportFile == "" {
		return ErrTeeWithoutOutput
	}

	return nil
}

// ResolvePresets returns the filter presets to rank.
//
// With no preset names, it returns a single unnamed preset holding the
// ad-hoc filter. Otherwise every named preset is looked up in the
// configuration file and the ad-hoc filter is applied on top of it.
func (c *Config) ResolvePresets() ([]model.Preset, error) {
	if c.AllPresets {
		if c.File == nil || len(c.File.Presets) == 0 {
			return nil, fmt.Errorf("%w: no presets defined in configuration file", ErrUnknownPreset)
		}
		presets := c.File.AllPresets()
		for i := range presets {
			presets[i].Spec = c.applyFilter(presets[i].Spec)
		}
		return presets, nil
	}

	if len(c.Presets) == 0 {
		base := model.DefaultFilterSpec()
		if c.File != nil {
			base = base.Merge(c.File.Defaults)
		}
		if c.ResetFilter {
			base = base.Reset()
		}
		return []model.Preset{{Spec: c.applyFilter(base)}}, nil
	}

	file := c.File
	if file == nil {
		file = &File{}
	}

	presets := make([]model.Preset, 0, len(c.Presets))
	for _, name := range c.Presets {
		p, err := file.Preset(name)
		if err != nil {
			return nil, err
		}
		p.Spec = c.applyFilter(p.Spec)
		presets = append(presets, p)
	}
	return presets, nil
}

// applyFilter overlays the ad-hoc filter, then the explicit overrides.
func (c *Config) applyFilter(spec model.FilterSpec) model.FilterSpec {
	spec = spec.Merge(c.Filter)
	if c.SearchTerm != nil {
		spec.SearchTerm = *c.SearchTerm
	}
	if c.HighValue != nil {
		spec.HighlightHighValueOnly = *c.HighValue
	}
	return spec.Normalize()
}
