package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/leaddeck/internal/config"
	"github.com/nao1215/leaddeck/internal/database"
	"github.com/nao1215/leaddeck/internal/leadstore"
)

// NewImportCmd creates the import command.
func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [lead-file...]",
		Short: "Validate lead files and store them in the lead catalog",
		Long: `Import validates one or more lead files and replaces the contents of the
lead catalog with them. The catalog is a SQLite database in the XDG data
directory (~/.local/share/leaddeck/leaddeck.db on Linux) and is read with
'leaddeck rank --catalog'.

Files are merged in argument order. The import is rejected as a whole if
any lead is invalid, so a failed import leaves the catalog unchanged.

Examples:
  # Import a single file
  leaddeck import leads.yaml

  # Merge two files into the catalog
  leaddeck import fashion.yaml beauty.json

  # Use the embedded sample dataset
  leaddeck import --sample

  # Show what the catalog currently holds
  leaddeck import --info`,
		RunE: runImportCmd,
	}

	cmd.Flags().String("db-dir", "",
		"Lead catalog directory (default: XDG data directory)")
	cmd.Flags().Bool("sample", false,
		"Import the embedded sample dataset")
	cmd.Flags().Bool("info", false,
		"Print catalog information instead of importing")
	cmd.Flags().Duration("lock-timeout", database.DefaultOptions().LockTimeout,
		"How long to wait for another import to release the catalog")

	return cmd
}

// runImportCmd executes the import command.
func runImportCmd(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	dbDir, err := flags.GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	showInfo, err := flags.GetBool("info")
	if err != nil {
		return err
	}
	useSample, err := flags.GetBool("sample")
	if err != nil {
		return err
	}
	lockTimeout, err := flags.GetDuration("lock-timeout")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	if showInfo {
		catalog, err := database.Open(dbDir, database.ReadOnlyOptions())
		if err != nil {
			return fmt.Errorf("failed to open lead catalog: %w", err)
		}
		defer catalog.Close()

		info, err := catalog.Info(ctx)
		if err != nil {
			return fmt.Errorf("failed to read catalog info: %w", err)
		}
		writeCatalogInfo(out, info)
		return nil
	}

	if useSample == (len(args) > 0) {
		return errors.New("specify lead files or --sample (exactly one)")
	}

	logger := newLogger(cmd)

	var (
		store  *leadstore.Store
		source string
	)
	if useSample {
		store, err = leadstore.Sample()
		source = sourceSample
	} else {
		store, err = leadstore.LoadFiles(ctx, args)
		source = strings.Join(args, ",")
	}
	if err != nil {
		return fmt.Errorf("failed to load leads: %w", err)
	}

	opts := database.DefaultOptions()
	opts.LockTimeout = lockTimeout

	catalog, err := database.Open(dbDir, opts)
	if err != nil {
		return fmt.Errorf("failed to open lead catalog: %w", err)
	}
	defer catalog.Close()

	logger.Debug("replacing catalog contents", "path", catalog.Path(), "lock", catalog.LockPath(), "source", source)
	if err := catalog.ReplaceLeads(ctx, store, source); err != nil {
		return fmt.Errorf("failed to import leads: %w", err)
	}

	logger.Info("catalog updated", "path", catalog.Path(), "leads", store.Len(), "digest", store.Digest())

	fmt.Fprintf(out, "Imported %d leads into %s\n", store.Len(), catalog.Path())
	return nil
}

// writeCatalogInfo prints catalog metadata.
func writeCatalogInfo(w io.Writer, info *database.Info) {
	imported := "never"
	if !info.ImportedAt.IsZero() {
		imported = info.ImportedAt.Local().Format(time.DateTime)
	}
	fmt.Fprintf(w, "Catalog:   %s\n", info.Path)
	fmt.Fprintf(w, "Source:    %s\n", info.Source)
	fmt.Fprintf(w, "Imported:  %s\n", imported)
	fmt.Fprintf(w, "Leads:     %d\n", info.LeadCount)
	fmt.Fprintf(w, "Digest:    %s\n", info.Digest)
}
