package config

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/nao1215/leaddeck/internal/model"
)

// File represents the structure of the .leaddeck configuration file.
type File struct {
	// LeadFiles are lead files ranked when no --file flag is given.
	// Relative paths are resolved against the configuration file's directory.
	LeadFiles []string `yaml:"leadFiles,omitempty"`

	// TopN overrides the default priority matrix size when positive.
	TopN int `yaml:"topN,omitempty"`

	// Defaults is the filter every preset starts from.
	Defaults model.FilterSpec `yaml:"defaults,omitempty"`

	// Presets maps preset names to filter specs. Non-empty preset fields
	// override Defaults.
	Presets map[string]model.FilterSpec `yaml:"presets,omitempty"`

	// path is where the file was loaded from.
	path string
}

// Path returns the path the file was loaded from, or empty if it was not
// loaded from disk.
func (cf *File) Path() string {
	return cf.path
}

// Preset returns the named preset merged onto the file defaults.
func (cf *File) Preset(name string) (model.Preset, error) {
	spec, ok := cf.Presets[name]
	if !ok {
		return model.Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}

	merged := model.DefaultFilterSpec().Merge(cf.Defaults).Merge(spec)
	return model.Preset{Name: name, Spec: merged.Normalize()}, nil
}

// PresetNames returns the defined preset names in sorted order.
func (cf *File) PresetNames() []string {
	names := make([]string, 0, len(cf.Presets))
	for name := range cf.Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// AllPresets returns every defined preset in name order.
func (cf *File) AllPresets() []model.Preset {
	names := cf.PresetNames()
	presets := make([]model.Preset, 0, len(names))
	for _, name := range names {
		// name comes from the map, so lookup cannot fail
		p, _ := cf.Preset(name)
		presets = append(presets, p)
	}
	return presets
}

// ResolvedLeadFiles returns LeadFiles with relative paths resolved against
// the configuration file's directory.
func (cf *File) ResolvedLeadFiles() []string {
	base := "."
	if cf.path != "" {
		base = filepath.Dir(cf.path)
	}

	files := make([]string, 0, len(cf.LeadFiles))
	for _, f := range cf.LeadFiles {
		if filepath.IsAbs(f) {
			files = append(files, f)
			continue
		}
		files = append(files, filepath.Join(base, f))
	}
	return files
}
