package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/nao1215/leaddeck/internal/config"
	"github.com/nao1215/leaddeck/internal/database"
	"github.com/nao1215/leaddeck/internal/log"
	"github.com/nao1215/leaddeck/internal/model"
	"github.com/nao1215/leaddeck/internal/report"
)

// testLeadsYAML holds three leads: Alpha 9 (Fashion/India), Beta 8 (Beauty/UAE)
// and Gamma 7 (Fashion/UAE).
const testLeadsYAML = `
- id: alpha
  name: Alpha
  description: Handloom fashion label
  website: https://alpha.example.com
  industry: Fashion
  location: India
  collaborationHook: Heritage weave film
  metrics: {design: 9, storytelling: 9, innovation: 9, responsiveness: 9}
- id: beta
  name: Beta
  description: Clean skincare
  website: https://beta.example.com
  industry: Beauty
  location: UAE
  collaborationHook: Ingredient macro series
  metrics: {design: 8, storytelling: 8, innovation: 8, responsiveness: 8}
- id: gamma
  name: Gamma
  description: Streetwear collective
  website: https://gamma.example.com
  industry: Fashion
  location: UAE
  collaborationHook: Drop teaser loops
  metrics: {design: 7, storytelling: 7, innovation: 7, responsiveness: 7}
`

// testConfigYAML defines presets over testLeadsYAML.
const testConfigYAML = `
topN: 2
presets:
  fashion:
    industry: Fashion
  uae:
    region: UAE
  fashion-again:
    industry: Fashion
`

// writeFile writes content to name inside dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// emptyConfig writes a configuration file without presets so that tests do
// not pick up a .leaddeck from the home directory.
func emptyConfig(t *testing.T) string {
	t.Helper()
	return writeFile(t, t.TempDir(), ".leaddeck", "topN: 4\n")
}

// runCLI executes the root command with args and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func TestRankCmdSample(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, "rank", "--config", emptyConfig(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"10 Active Leads", "PRIORITY ACTIVATION MATRIX", "LEAD INTELLIGENCE DECK"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	if strings.Index(out, "Topicals") > strings.Index(out, "Subko") {
		t.Error("expected Topicals to rank above Subko")
	}
}

func TestRankCmdFiltersJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	leads := writeFile(t, dir, "leads.yaml", testLeadsYAML)

	tests := []struct {
		name    string
		args    []string
		wantIDs []string
		wantTop int
	}{
		{name: "no filter", args: nil, wantIDs: []string{"alpha", "beta", "gamma"}, wantTop: 3},
		{name: "industry", args: []string{"-i", "Fashion"}, wantIDs: []string{"alpha", "gamma"}, wantTop: 2},
		{name: "region", args: []string{"-r", "UAE"}, wantIDs: []string{"beta", "gamma"}, wantTop: 2},
		{name: "search", args: []string{"-s", "  SKINCARE "}, wantIDs: []string{"beta"}, wantTop: 1},
		{name: "high value", args: []string{"-H"}, wantIDs: []string{"alpha"}, wantTop: 1},
		{name: "top", args: []string{"-n", "1"}, wantIDs: []string{"alpha", "beta", "gamma"}, wantTop: 1},
		{name: "unknown industry", args: []string{"-i", "Aerospace"}, wantIDs: []string{}, wantTop: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"rank", "--config", emptyConfig(t), "-f", leads, "--json"}, tt.args...)
			out, err := runCLI(t, args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var deck model.Deck
			if err := json.Unmarshal([]byte(out), &deck); err != nil {
				t.Fatalf("invalid JSON: %v\n%s", err, out)
			}

			got := make([]string, 0, len(deck.Snapshots))
			for _, s := range deck.Snapshots {
				got = append(got, s.Lead.ID)
			}
			if strings.Join(got, ",") != strings.Join(tt.wantIDs, ",") {
				t.Errorf("ids = %v, want %v", got, tt.wantIDs)
			}
			if len(deck.Top) != tt.wantTop {
				t.Errorf("top = %d, want %d", len(deck.Top), tt.wantTop)
			}
			if deck.LeadCount != 3 {
				t.Errorf("LeadCount = %d, want 3", deck.LeadCount)
			}
		})
	}
}

func TestRankCmdStrictUnknownCategory(t *testing.T) {
	t.Parallel()

	leads := writeFile(t, t.TempDir(), "leads.yaml", testLeadsYAML)
	_, err := runCLI(t, "rank", "--config", emptyConfig(t), "-f", leads, "-r", "Mars", "--strict")
	if err == nil {
		t.Fatal("expected error for unknown region in strict mode")
	}
}

func TestRankCmdEmptyText(t *testing.T) {
	t.Parallel()

	leads := writeFile(t, t.TempDir(), "leads.yaml", testLeadsYAML)
	out, err := runCLI(t, "rank", "--config", emptyConfig(t), "-f", leads, "-s", "no such brand")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, report.EmptyMatrixMessage) || !strings.Contains(out, report.EmptyDeckMessage) {
		t.Errorf("expected empty messages, got:\n%s", out)
	}
}

func TestRankCmdPresets(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	leads := writeFile(t, dir, "leads.yaml", testLeadsYAML)
	cfgPath := writeFile(t, dir, ".leaddeck", testConfigYAML)

	t.Run("single preset uses file topN", func(t *testing.T) {
		t.Parallel()

		out, err := runCLI(t, "rank", "-c", cfgPath, "-f", leads, "-p", "uae", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var deck model.Deck
		if err := json.Unmarshal([]byte(out), &deck); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if deck.Name != "uae" || deck.Spec.Region != "UAE" || len(deck.Snapshots) != 2 {
			t.Errorf("unexpected deck: name=%q spec=%+v matches=%d", deck.Name, deck.Spec, len(deck.Snapshots))
		}
		if len(deck.Top) != 2 {
			t.Errorf("top = %d, want 2", len(deck.Top))
		}
	})

	t.Run("batch keeps preset order", func(t *testing.T) {
		t.Parallel()

		out, err := runCLI(t, "rank", "-c", cfgPath, "-f", leads, "-p", "uae", "-p", "fashion", "-b", "2", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var decks []model.Deck
		if err := json.Unmarshal([]byte(out), &decks); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(decks) != 2 || decks[0].Name != "uae" || decks[1].Name != "fashion" {
			t.Fatalf("unexpected decks: %+v", decks)
		}
	})

	t.Run("all presets with ad-hoc filter on top", func(t *testing.T) {
		t.Parallel()

		out, err := runCLI(t, "rank", "-c", cfgPath, "-f", leads, "-A", "-H", "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var decks []model.Deck
		if err := json.Unmarshal([]byte(out), &decks); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(decks) != 3 {
			t.Fatalf("decks = %d, want 3", len(decks))
		}
		for _, d := range decks {
			if !d.Spec.HighlightHighValueOnly {
				t.Errorf("preset %q lost the high-value flag", d.Name)
			}
		}
	})

	t.Run("unknown preset", func(t *testing.T) {
		t.Parallel()

		_, err := runCLI(t, "rank", "-c", cfgPath, "-f", leads, "-p", "nope")
		if !errors.Is(err, config.ErrUnknownPreset) {
			t.Errorf("expected ErrUnknownPreset, got %v", err)
		}
	})
}

func TestRankCmdConfigErrors(t *testing.T) {
	t.Parallel()

	leads := writeFile(t, t.TempDir(), "leads.yaml", testLeadsYAML)

	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "json and markdown", args: []string{"-f", leads, "-j", "-m"}, want: config.ErrConflictingReportFormats},
		{name: "file and catalog", args: []string{"-f", leads, "--catalog"}, want: config.ErrConflictingSources},
		{name: "zero top", args: []string{"-n", "0"}, want: config.ErrInvalidTopN},
		{name: "zero batch", args: []string{"-b", "0"}, want: config.ErrInvalidBatchSize},
		{name: "tee without output", args: []string{"--tee"}, want: config.ErrTeeWithoutOutput},
		{name: "negative json indent", args: []string{"--json-indent", "-1"}, want: config.ErrInvalidJSONIndent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"rank", "--config", emptyConfig(t)}, tt.args...)
			_, err := runCLI(t, args...)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	t.Run("missing explicit config", func(t *testing.T) {
		t.Parallel()

		_, err := runCLI(t, "rank", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})
}

func TestRankCmdConfigLeadFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "leads.yaml", testLeadsYAML)
	cfgPath := writeFile(t, dir, ".leaddeck", "leadFiles: [leads.yaml]\n")

	out, err := runCLI(t, "rank", "-c", cfgPath, "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var deck model.Deck
	if err := json.Unmarshal([]byte(out), &deck); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if deck.LeadCount != 3 {
		t.Errorf("LeadCount = %d, want 3 from config lead files", deck.LeadCount)
	}
}

func TestRankCmdOutputFile(t *testing.T) {
	t.Parallel()

	leads := writeFile(t, t.TempDir(), "leads.yaml", testLeadsYAML)
	outPath := filepath.Join(t.TempDir(), "reports", "deck.md")

	stdout, err := runCLI(t, "rank", "--config", emptyConfig(t), "-f", leads, "--markdown", "-o", outPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout != "" {
		t.Errorf("expected no stdout when writing to a file, got %q", stdout)
	}

	content, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	if !strings.Contains(string(content), "## Priority Activation Matrix") {
		t.Error("expected markdown report in output file")
	}
}

func TestRegionsCmd(t *testing.T) {
	t.Parallel()

	leads := writeFile(t, t.TempDir(), "leads.yaml", testLeadsYAML)

	out, err := runCLI(t, "regions", "--config", emptyConfig(t), "-f", leads, "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got report.RegionsReport
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	want := []model.RegionSummary{
		{Region: "India", Count: 1, AvgScore: 9},
		{Region: "UAE", Count: 2, AvgScore: 7.5},
	}
	if got.LeadCount != 3 || len(got.Regions) != len(want) {
		t.Fatalf("unexpected regions: %+v", got)
	}
	for i := range want {
		if got.Regions[i] != want[i] {
			t.Errorf("region %d = %+v, want %+v", i, got.Regions[i], want[i])
		}
	}

	text, err := runCLI(t, "regions", "--config", emptyConfig(t), "-f", leads)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "2 leads • 7.5/10") {
		t.Errorf("unexpected text output:\n%s", text)
	}
}

func TestCategoriesCmd(t *testing.T) {
	t.Parallel()

	leads := writeFile(t, t.TempDir(), "leads.yaml", testLeadsYAML)

	out, err := runCLI(t, "categories", "--config", emptyConfig(t), "-f", leads, "--json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got categoriesReport
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got.Industries) != 2 || got.Industries[0] != "Fashion" || got.Industries[1] != "Beauty" {
		t.Errorf("Industries = %v", got.Industries)
	}
	if len(got.Regions) != 2 || got.Regions[0] != "India" || got.Regions[1] != "UAE" {
		t.Errorf("Regions = %v", got.Regions)
	}

	text, err := runCLI(t, "categories", "--config", emptyConfig(t), "-f", leads)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "Industries (2):\n  All\n  Fashion\n  Beauty\n") {
		t.Errorf("unexpected text output:\n%s", text)
	}
}

func TestImportAndRankFromCatalog(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dbDir := filepath.Join(dir, "data")
	leads := writeFile(t, dir, "leads.yaml", testLeadsYAML)

	out, err := runCLI(t, "import", "--db-dir", dbDir, leads)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out, "Imported 3 leads") {
		t.Errorf("unexpected import output: %q", out)
	}

	info, err := runCLI(t, "import", "--db-dir", dbDir, "--info")
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	if !strings.Contains(info, "Leads:     3") || !strings.Contains(info, filepath.Join(dbDir, database.FileName)) {
		t.Errorf("unexpected info output:\n%s", info)
	}

	ranked, err := runCLI(t, "rank", "--config", emptyConfig(t), "--catalog", "--db-dir", dbDir, "--json")
	if err != nil {
		t.Fatalf("rank from catalog failed: %v", err)
	}
	var deck model.Deck
	if err := json.Unmarshal([]byte(ranked), &deck); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(deck.Snapshots) != 3 || deck.Snapshots[0].Lead.ID != "alpha" {
		t.Errorf("unexpected deck from catalog: %+v", deck.Snapshots)
	}
}

func TestImportCmdErrors(t *testing.T) {
	t.Parallel()

	t.Run("requires files or sample", func(t *testing.T) {
		t.Parallel()

		if _, err := runCLI(t, "import", "--db-dir", t.TempDir()); err == nil {
			t.Error("expected error without files")
		}
	})

	t.Run("files and sample are exclusive", func(t *testing.T) {
		t.Parallel()

		leads := writeFile(t, t.TempDir(), "leads.yaml", testLeadsYAML)
		if _, err := runCLI(t, "import", "--db-dir", t.TempDir(), "--sample", leads); err == nil {
			t.Error("expected error with both files and --sample")
		}
	})

	t.Run("invalid lead leaves catalog untouched", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		dbDir := filepath.Join(dir, "data")
		if _, err := runCLI(t, "import", "--db-dir", dbDir, "--sample"); err != nil {
			t.Fatalf("sample import failed: %v", err)
		}

		bad := writeFile(t, dir, "bad.yaml", "- id: x\n  name: X\n")
		if _, err := runCLI(t, "import", "--db-dir", dbDir, bad); err == nil {
			t.Fatal("expected validation error")
		}

		info, err := runCLI(t, "import", "--db-dir", dbDir, "--info")
		if err != nil {
			t.Fatalf("info failed: %v", err)
		}
		if !strings.Contains(info, "Leads:     10") || !strings.Contains(info, "Source:    sample") {
			t.Errorf("expected sample import to survive, got:\n%s", info)
		}
	})

	t.Run("missing catalog", func(t *testing.T) {
		t.Parallel()

		_, err := runCLI(t, "rank", "--config", emptyConfig(t), "--catalog", "--db-dir", t.TempDir())
		if !errors.Is(err, database.ErrCatalogNotFound) {
			t.Errorf("expected ErrCatalogNotFound, got %v", err)
		}
	})
}

func TestCompareCmd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	oldLeads := writeFile(t, dir, "old.yaml", testLeadsYAML)
	newLeads := writeFile(t, dir, "new.yaml", strings.Replace(
		strings.Replace(testLeadsYAML, "{design: 7, storytelling: 7", "{design: 10, storytelling: 10", 1),
		"- id: beta", "- id: delta", 1))

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		out, err := runCLI(t, "compare", oldLeads, newLeads, "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var got model.Comparison
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(got.Added) != 1 || got.Added[0].Lead.ID != "delta" {
			t.Errorf("Added = %+v", got.Added)
		}
		if len(got.Removed) != 1 || got.Removed[0].Lead.ID != "beta" {
			t.Errorf("Removed = %+v", got.Removed)
		}
		if got.Previous.Source != oldLeads || got.Current.Source != newLeads {
			t.Errorf("unexpected sources: %q %q", got.Previous.Source, got.Current.Source)
		}
		if got.Previous.StoreDigest == got.Current.StoreDigest {
			t.Error("expected different digests")
		}
		if got.Trend != model.TrendImproved {
			t.Errorf("Trend = %q, want improved", got.Trend)
		}
	})

	t.Run("text with filter", func(t *testing.T) {
		t.Parallel()

		out, err := runCLI(t, "compare", oldLeads, newLeads, "-i", "Fashion")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"Lead Comparison:", "IMPROVED", "Moved (1):", "Gamma: #2 -> #2, 7 -> 8.5 (+1.5)", "Unchanged: 1 leads"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q\n%s", want, out)
			}
		}
	})

	t.Run("markdown against sample", func(t *testing.T) {
		t.Parallel()

		out, err := runCLI(t, "compare", "sample", oldLeads, "--markdown")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "# Lead Comparison: sample -> ") || !strings.Contains(out, "## Removed Leads (10)") {
			t.Errorf("unexpected markdown:\n%s", out)
		}
	})

	t.Run("markdown moved ranks", func(t *testing.T) {
		t.Parallel()

		out, err := runCLI(t, "compare", oldLeads, newLeads, "--markdown")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "| Gamma | #3 -> #2 (+1) | 7 -> 8.5 | +1.5 |") {
			t.Errorf("unexpected markdown:\n%s", out)
		}
	})

	t.Run("json with version", func(t *testing.T) {
		t.Parallel()

		out, err := runCLI(t, "compare", oldLeads, newLeads, "--json", "--with-version")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var got comparisonReport
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got.Version != getVersion() || got.Comparison == nil || len(got.Comparison.Added) != 1 {
			t.Errorf("unexpected report: %+v", got)
		}
	})

	t.Run("requires two sources", func(t *testing.T) {
		t.Parallel()

		if _, err := runCLI(t, "compare", oldLeads); err == nil {
			t.Error("expected argument error")
		}
	})
}

func TestFormatScoreDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{1.5, "+1.5"},
		{-0.5, "-0.5"},
		{0, "0"},
		{-0.01, "0"},
		{0.01, "0"},
	}
	for _, tt := range tests {
		if got := formatScoreDelta(tt.in); got != tt.want {
			t.Errorf("formatScoreDelta(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatRankDelta(t *testing.T) {
	t.Parallel()

	for in, want := range map[int]string{2: "+2", 0: "0", -1: "-1"} {
		if got := formatRankDelta(in); got != want {
			t.Errorf("formatRankDelta(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestCategoriesCmdWithoutFlags(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cmd := NewCategoriesCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Industries (") || !strings.Contains(out, "Regions (") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRankCmdOverridesConfigDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	leads := writeFile(t, dir, "leads.yaml", testLeadsYAML)
	cfgPath := writeFile(t, dir, ".leaddeck",
		"defaults:\n  searchTerm: loops\n  highlightHighValueOnly: true\n")

	// Only Gamma (7) mentions loops; only Alpha (9) clears the threshold.
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "defaults apply", args: nil, want: []string{}},
		{name: "threshold switched off", args: []string{"--high-value=false"}, want: []string{"gamma"}},
		{name: "search cleared", args: []string{"--search", ""}, want: []string{"alpha"}},
		{name: "both cleared", args: []string{"--search", "", "--high-value=false"}, want: []string{"alpha", "beta", "gamma"}},
		{name: "reset drops defaults", args: []string{"--reset"}, want: []string{"alpha", "beta", "gamma"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"rank", "-c", cfgPath, "-f", leads, "--json"}, tt.args...)
			out, err := runCLI(t, args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var deck model.Deck
			if err := json.Unmarshal([]byte(out), &deck); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			got := make([]string, 0, len(deck.Snapshots))
			for _, snap := range deck.Snapshots {
				got = append(got, snap.Lead.ID)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRankCmdDeckLimit(t *testing.T) {
	t.Parallel()

	leads := writeFile(t, t.TempDir(), "leads.yaml", testLeadsYAML)

	out, err := runCLI(t, "rank", "--config", emptyConfig(t), "-f", leads, "--deck-limit", "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "[1] Alpha") {
		t.Errorf("expected first card, got:\n%s", out)
	}
	if strings.Contains(out, "[2] Beta") {
		t.Errorf("expected second card to be hidden, got:\n%s", out)
	}
	if !strings.Contains(out, "... 2 more lead(s) not shown") {
		t.Errorf("expected hidden lead notice, got:\n%s", out)
	}

	if _, err := runCLI(t, "rank", "--config", emptyConfig(t), "--deck-limit", "-1"); err == nil {
		t.Error("expected error for negative deck limit")
	}
}

func TestRankCmdTee(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	leads := writeFile(t, dir, "leads.yaml", testLeadsYAML)
	reportPath := filepath.Join(dir, "reports", "leads.md")

	out, err := runCLI(t, "rank", "--config", emptyConfig(t), "-f", leads, "-m", "-o", reportPath, "--tee")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "PRIORITY ACTIVATION MATRIX") {
		t.Errorf("expected text report on stdout, got:\n%s", out)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	if !strings.HasPrefix(string(data), "# ") || strings.Contains(string(data), "PRIORITY ACTIVATION MATRIX") {
		t.Errorf("expected markdown report in file, got:\n%s", data)
	}
}

func TestRegionsCmdTee(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	leads := writeFile(t, dir, "leads.yaml", testLeadsYAML)
	reportPath := filepath.Join(dir, "regions.json")

	out, err := runCLI(t, "regions", "--config", emptyConfig(t), "-f", leads, "-j", "-o", reportPath, "--tee")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "2 leads • 7.5/10") {
		t.Errorf("expected text regions on stdout, got:\n%s", out)
	}

	data, err := os.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("failed to read report: %v", err)
	}
	var got report.RegionsReport
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid JSON in report file: %v", err)
	}
	if got.LeadCount != 3 {
		t.Errorf("LeadCount = %d, want 3", got.LeadCount)
	}
}

func TestRankCmdJSONOptions(t *testing.T) {
	t.Parallel()

	leads := writeFile(t, t.TempDir(), "leads.yaml", testLeadsYAML)

	t.Run("compact", func(t *testing.T) {
		t.Parallel()

		out, err := runCLI(t, "rank", "--config", emptyConfig(t), "-f", leads, "-j", "--json-indent", "0")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Count(out, "\n") != 1 {
			t.Errorf("expected single-line JSON, got:\n%s", out)
		}
	})

	t.Run("indent width", func(t *testing.T) {
		t.Parallel()

		out, err := runCLI(t, "rank", "--config", emptyConfig(t), "-f", leads, "-j", "--json-indent", "4")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "\n    \"name\"") {
			t.Errorf("expected four-space indentation, got:\n%s", out)
		}
	})

	t.Run("with version", func(t *testing.T) {
		t.Parallel()

		out, err := runCLI(t, "rank", "--config", emptyConfig(t), "-f", leads, "-j", "--with-version")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var got report.JSONReport
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got.Version != getVersion() || len(got.Decks) != 1 {
			t.Errorf("unexpected report: version=%q decks=%d", got.Version, len(got.Decks))
		}
	})
}

func TestLogFormat(t *testing.T) {
	t.Parallel()

	leads := writeFile(t, t.TempDir(), "leads.yaml", testLeadsYAML)

	t.Run("json logs on stderr", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{"rank", "--log-format", "json", "--config", emptyConfig(t), "-f", leads, "-i", "Toys"})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		line, _, _ := strings.Cut(stderr.String(), "\n")
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("expected JSON log line, got %q: %v", stderr.String(), err)
		}
		if entry["level"] != "WARN" {
			t.Errorf("level = %v, want WARN", entry["level"])
		}
	})

	t.Run("extra redacted keys", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		cmd := NewRootCmd()
		cmd.SetOut(&stdout)
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{"rank", "-v", "--redact-key", "source", "--config", emptyConfig(t), "-f", leads})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		logs := stderr.String()
		if !strings.Contains(logs, "source="+log.MaskValue) {
			t.Errorf("expected source to be masked, got:\n%s", logs)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		_, err := runCLI(t, "rank", "--log-format", "xml", "--config", emptyConfig(t), "-f", leads)
		if err == nil || !strings.Contains(err.Error(), "invalid log format") {
			t.Errorf("expected invalid log format error, got %v", err)
		}
	})
}
