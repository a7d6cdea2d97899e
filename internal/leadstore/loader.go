package leadstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/nao1215/leaddeck/internal/model"
)

// maxConcurrentReads bounds how many lead files LoadFiles reads at once.
const maxConcurrentReads = 8

// leadFile is the wrapped lead file layout: a top-level "leads" key.
// A bare list of leads is accepted as well.
type leadFile struct {
	Leads []model.Lead `json:"leads" yaml:"leads"`
}

// ReadFile reads the leads in a YAML or JSON lead file without validating them.
// The format is chosen by extension.
func ReadFile(path string) ([]model.Lead, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided lead file path is intentional
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAML(data)
	case ".json":
		return decodeJSON(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// LoadFile reads a lead file and builds a store from it.
func LoadFile(path string) (*Store, error) {
	leads, err := ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lead file %s: %w", path, err)
	}
	return New(leads)
}

// LoadFiles reads several lead files concurrently and builds one store from
// their leads, concatenated in argument order.
func LoadFiles(ctx context.Context, paths []string) (*Store, error) {
	results := make([][]model.Lead, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			leads, err := ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read lead file %s: %w", path, err)
			}
			results[i] = leads
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []model.Lead
	for _, leads := range results {
		all = append(all, leads...)
	}
	return New(all)
}

func decodeYAML(data []byte) ([]model.Lead, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, nil
	}

	switch root.Content[0].Kind {
	case yaml.SequenceNode:
		var leads []model.Lead
		if err := root.Content[0].Decode(&leads); err != nil {
			return nil, err
		}
		return leads, nil
	case yaml.MappingNode:
		var lf leadFile
		if err := root.Content[0].Decode(&lf); err != nil {
			return nil, err
		}
		return lf.Leads, nil
	default:
		return nil, fmt.Errorf("%w: expected a list of leads or a leads key", ErrUnsupportedFormat)
	}
}

func decodeJSON(data []byte) ([]model.Lead, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var leads []model.Lead
		if err := json.Unmarshal(trimmed, &leads); err != nil {
			return nil, err
		}
		return leads, nil
	}

	var lf leadFile
	if err := json.Unmarshal(trimmed, &lf); err != nil {
		return nil, err
	}
	return lf.Leads, nil
}
