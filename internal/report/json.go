package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/leaddeck/internal/model"
)

// JSONWriter outputs decks in JSON format.
// This format is designed for tool integration and programmatic processing.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool

	indentPrefix string
	indentString string

	// version is stamped into wrapped output when non-empty.
	version string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithVersion wraps every document in a JSONReport carrying the version.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.version = version
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// JSONReport wraps decks with the version of the tool that produced them.
type JSONReport struct {
	Version string        `json:"version"`
	Decks   []*model.Deck `json:"decks"`
}

// RegionsReport is the JSON shape of a region snapshot.
type RegionsReport struct {
	LeadCount int                   `json:"leadCount"`
	Regions   []model.RegionSummary `json:"regions"`
}

// Write outputs the deck in JSON format.
func (w *JSONWriter) Write(deck *model.Deck) (int, error) {
	if w.version != "" {
		return w.writeJSON(&JSONReport{Version: w.version, Decks: []*model.Deck{deck}})
	}
	return w.writeJSON(deck)
}

// WriteBatch outputs the decks as a JSON array.
func (w *JSONWriter) WriteBatch(decks []*model.Deck) (int, error) {
	if decks == nil {
		decks = []*model.Deck{}
	}
	if w.version != "" {
		return w.writeJSON(&JSONReport{Version: w.version, Decks: decks})
	}
	return w.writeJSON(decks)
}

// WriteRegions outputs the region snapshot as a JSON object.
func (w *JSONWriter) WriteRegions(leadCount int, summaries []model.RegionSummary) (int, error) {
	if summaries == nil {
		summaries = []model.RegionSummary{}
	}
	return w.writeJSON(&RegionsReport{LeadCount: leadCount, Regions: summaries})
}

// WriteValue outputs an arbitrary value with the writer's formatting.
func (w *JSONWriter) WriteValue(v any) (int, error) {
	return w.writeJSON(v)
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error

	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return 0, err
	}

	// Trailing newline for terminal output
	data = append(data, '\n')

	return w.output.Write(data)
}
