package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for leaddeck.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaddeck",
		Short: "Rank brand collaboration leads by fit score",
		Long: `leaddeck ranks brand collaboration leads by fit score.

Each lead carries four metrics (design, storytelling, innovation and
responsiveness). The fit score is their mean. Leads can be filtered by
industry, region, free-text search and a high-value threshold (8.5).

Leads are read from YAML or JSON files, from the local lead catalog
(see 'leaddeck import'), or from the embedded sample dataset.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch format := getLogFormat(cmd); format {
			case logFormatText, logFormatJSON:
				return nil
			default:
				return fmt.Errorf("invalid log format %q: must be %q or %q", format, logFormatText, logFormatJSON)
			}
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("log-format", logFormatText,
		"Log format on stderr: text or json")
	cmd.PersistentFlags().StringArray("redact-key", nil,
		"Additional log attribute key to mask; repeatable")

	cmd.AddCommand(NewRankCmd())
	cmd.AddCommand(NewRegionsCmd())
	cmd.AddCommand(NewCategoriesCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewImportCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
