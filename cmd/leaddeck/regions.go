package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/leaddeck/internal/rank"
	"github.com/nao1215/leaddeck/internal/report"
)

// NewRegionsCmd creates the regions command.
func NewRegionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regions",
		Short: "Print the lead count and average fit score per region",
		Long: `Regions prints the regional snapshot of the whole lead store:
the number of active leads, and for every region the lead count and the
average fit score rounded to one decimal.

Filters do not apply; regions are listed in order of first appearance.

Examples:
  leaddeck regions
  leaddeck regions --catalog --json`,
		Args: cobra.NoArgs,
		RunE: runRegionsCmd,
	}

	addSourceFlags(cmd)
	addFormatFlags(cmd)
	addTeeFlag(cmd)

	return cmd
}

// runRegionsCmd executes the regions command.
func runRegionsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	store, _, err := loadStore(cmd.Context(), cfg, newLogger(cmd))
	if err != nil {
		return err
	}

	summaries := rank.Summarize(store.Leads())

	return writeReport(cmd, cfg, nil, func(w report.Writer) (int, error) {
		return w.WriteRegions(store.Len(), summaries)
	})
}
