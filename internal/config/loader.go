package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/leaddeck/internal/model"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".leaddeck"

// xdgConfigFile is the file name looked up inside XDGConfigDir.
const xdgConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// LoadConfigFile reads a .leaddeck file. Unknown keys are rejected so a
// misspelled preset field fails loudly instead of widening the filter.
// A missing file yields ErrConfigNotFound; callers decide whether that
// matters depending on whether the path was given explicitly.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cf := &File{path: path}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cf.Presets == nil {
		cf.Presets = make(map[string]model.FilterSpec)
	}
	return cf, nil
}

// FindConfigFile returns the configuration file to use, or "" when none
// exists. An explicit path is used as is. Otherwise the lookup order is
// ./.leaddeck, $XDG_CONFIG_HOME/leaddeck/config.yaml, then ~/.leaddeck.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if fileExists(configPath) {
			return configPath
		}
		return ""
	}

	for _, candidate := range searchPaths() {
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

func searchPaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, DefaultConfigFile))
	}
	paths = append(paths, filepath.Join(XDGConfigDir(), xdgConfigFile))
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, DefaultConfigFile))
	}
	return paths
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
