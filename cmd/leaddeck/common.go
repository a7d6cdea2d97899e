package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nao1215/leaddeck/internal/config"
	"github.com/nao1215/leaddeck/internal/database"
	"github.com/nao1215/leaddeck/internal/leadstore"
	"github.com/nao1215/leaddeck/internal/log"
	"github.com/nao1215/leaddeck/internal/report"
)

// Lead source names accepted by compare and reported in logs.
const (
	sourceSample  = "sample"
	sourceCatalog = "catalog"
)

// Values of the --log-format flag.
const (
	logFormatText = "text"
	logFormatJSON = "json"
)

// addSourceFlags registers the flags that select where leads come from.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("file", "f", nil,
		"Lead file (YAML or JSON); repeat to merge several files")
	cmd.Flags().Bool("catalog", false,
		"Read leads from the lead catalog (see 'leaddeck import')")
	cmd.Flags().String("db-dir", "",
		"Lead catalog directory (default: XDG data directory)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .leaddeck in current, XDG config or home directory)")
}

// addFormatFlags registers the report format flags.
func addFormatFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Int("json-indent", config.DefaultJSONIndent,
		"Spaces per JSON nesting level; 0 writes compact JSON")
	cmd.Flags().Bool("with-version", false,
		"Wrap JSON reports in an object carrying the leaddeck version")
}

// addTeeFlag registers --tee for commands whose reports go through a
// report.Writer.
func addTeeFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("tee", false,
		"With --output, also print the text report to stdout")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// newLogger creates the command logger on the command's error stream.
func newLogger(cmd *cobra.Command) *slog.Logger {
	var opts []log.RedactOption
	if keys := getRedactKeys(cmd); len(keys) > 0 {
		opts = append(opts, log.WithRedactedKeys(keys...))
	}
	if getLogFormat(cmd) == logFormatJSON {
		return log.NewJSONLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd), opts...)
	}
	return log.NewLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd), opts...)
}

// getRedactKeys retrieves the --redact-key values, if the flag exists.
func getRedactKeys(cmd *cobra.Command) []string {
	for _, fs := range []*pflag.FlagSet{cmd.Flags(), cmd.Root().PersistentFlags()} {
		if fs.Lookup("redact-key") == nil {
			continue
		}
		if keys, err := fs.GetStringArray("redact-key"); err == nil {
			return keys
		}
	}
	return nil
}

// getLogFormat retrieves --log-format, falling back to text when the
// command runs without the root command.
func getLogFormat(cmd *cobra.Command) string {
	if f := cmd.Flags().Lookup("log-format"); f != nil {
		return f.Value.String()
	}
	if f := cmd.Root().PersistentFlags().Lookup("log-format"); f != nil {
		return f.Value.String()
	}
	return logFormatText
}

// buildConfig creates a Config from the source and format flags and the
// configuration file. Flags that were not registered on cmd are skipped.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	flags := cmd.Flags()
	var err error

	if flags.Lookup("config") != nil {
		if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
			return nil, err
		}
	}

	// An explicit --config must exist; otherwise a missing file is fine.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		cfg.File, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if cfg.File.TopN > 0 {
			cfg.TopN = cfg.File.TopN
		}
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if flags.Lookup("file") != nil {
		if cfg.LeadFiles, err = flags.GetStringArray("file"); err != nil {
			return nil, err
		}
	}
	if flags.Lookup("db-dir") != nil {
		dir, err := flags.GetString("db-dir")
		if err != nil {
			return nil, err
		}
		if dir != "" {
			cfg.CatalogDir = dir
		}
	}
	if flags.Lookup("output") != nil {
		if cfg.ReportFile, err = flags.GetString("output"); err != nil {
			return nil, err
		}
	}
	if flags.Lookup("json-indent") != nil {
		if cfg.JSONIndent, err = flags.GetInt("json-indent"); err != nil {
			return nil, err
		}
	}

	// Commands register only the flags they support.
	for name, dst := range map[string]*bool{
		"catalog":      &cfg.UseCatalog,
		"json":         &cfg.JSONReport,
		"markdown":     &cfg.MarkdownReport,
		"tee":          &cfg.Tee,
		"with-version": &cfg.StampVersion,
	} {
		if flags.Lookup(name) == nil {
			continue
		}
		if *dst, err = flags.GetBool(name); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// loadStore resolves the lead source in order: --file, --catalog, the
// configuration file's leadFiles, then the embedded sample dataset.
// It returns the store and a short description of where it came from.
func loadStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*leadstore.Store, string, error) {
	switch {
	case len(cfg.LeadFiles) > 0:
		store, err := leadstore.LoadFiles(ctx, cfg.LeadFiles)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load lead files: %w", err)
		}
		return store, strings.Join(cfg.LeadFiles, ","), nil

	case cfg.UseCatalog:
		store, err := loadCatalog(ctx, cfg.CatalogDir)
		if err != nil {
			return nil, "", err
		}
		return store, sourceCatalog, nil

	case cfg.File != nil && len(cfg.File.LeadFiles) > 0:
		files := cfg.File.ResolvedLeadFiles()
		store, err := leadstore.LoadFiles(ctx, files)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load lead files from %s: %w", cfg.File.Path(), err)
		}
		return store, strings.Join(files, ","), nil
	}

	logger.Debug("no lead source given, using sample dataset")
	store, err := leadstore.Sample()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load sample dataset: %w", err)
	}
	return store, sourceSample, nil
}

// loadCatalog reads the lead store from a read-only catalog.
func loadCatalog(ctx context.Context, dir string) (*leadstore.Store, error) {
	catalog, err := database.Open(dir, database.ReadOnlyOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open lead catalog: %w", err)
	}
	defer catalog.Close()

	store, err := catalog.LoadStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load lead catalog: %w", err)
	}
	return store, nil
}

// openOutput returns the report destination: the report file when set,
// otherwise the command's output stream. The returned close function is
// always non-nil.
func openOutput(cmd *cobra.Command, cfg *config.Config) (io.Writer, func() error, error) {
	if cfg.ReportFile == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	// Reports carry lead contact details, so keep them owner-readable.
	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// newReportWriter returns the writer for the configured format. Text
// options only apply to the default text format.
func newReportWriter(cfg *config.Config, w io.Writer, textOpts ...report.SimpleWriterOption) report.Writer {
	switch {
	case cfg.JSONReport:
		return newJSONWriter(cfg, w)
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(w)
	default:
		return report.NewSimpleWriter(w, textOpts...)
	}
}

// newJSONWriter returns a JSONWriter honoring --json-indent and --with-version.
func newJSONWriter(cfg *config.Config, w io.Writer) *report.JSONWriter {
	var opts []report.JSONWriterOption
	if cfg.JSONIndent > 0 {
		opts = append(opts, report.WithIndent("", strings.Repeat(" ", cfg.JSONIndent)))
	}
	if cfg.StampVersion {
		opts = append(opts, report.WithVersion(getVersion()))
	}
	return report.NewJSONWriter(w, opts...)
}

// writeReport opens the report destination and hands fn the configured
// writer. With --tee the text report is also printed to stdout.
func writeReport(cmd *cobra.Command, cfg *config.Config, textOpts []report.SimpleWriterOption, fn func(report.Writer) (int, error)) error {
	return withOutput(cmd, cfg, func(w io.Writer) error {
		writer := newReportWriter(cfg, w, textOpts...)
		if cfg.Tee && cfg.ReportFile != "" {
			writer = report.NewMultiWriter(writer, report.NewSimpleWriter(cmd.OutOrStdout(), textOpts...))
		}
		if _, err := fn(writer); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		return nil
	})
}

// withOutput opens the report destination, runs fn and closes it, keeping
// the first error.
func withOutput(cmd *cobra.Command, cfg *config.Config, fn func(w io.Writer) error) (err error) {
	w, closeFn, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeFn())
	}()
	return fn(w)
}
