package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/nao1215/leaddeck/internal/model"
)

// categoriesReport is the JSON shape of the categories command.
type categoriesReport struct {
	Industries []model.Industry `json:"industries"`
	Regions    []model.Region   `json:"regions"`
}

// NewCategoriesCmd creates the categories command.
func NewCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the industries and regions present in the lead store",
		Long: `Categories lists the distinct industries and regions of the lead store,
in order of first appearance. These are the values accepted by
'leaddeck rank --industry' and '--region' besides "All".

Examples:
  leaddeck categories
  leaddeck categories -f leads.yaml --json`,
		Args: cobra.NoArgs,
		RunE: runCategoriesCmd,
	}

	addSourceFlags(cmd)
	cmd.Flags().BoolP("json", "j", false, "Output JSON")

	return cmd
}

// runCategoriesCmd executes the categories command.
func runCategoriesCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	store, _, err := loadStore(cmd.Context(), cfg, newLogger(cmd))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		_, err := newJSONWriter(cfg, out).WriteValue(&categoriesReport{
			Industries: store.Industries(),
			Regions:    store.Regions(),
		})
		return err
	}

	writeCategoryList(out, "Industries", store.Industries())
	fmt.Fprintln(out)
	writeCategoryList(out, "Regions", store.Regions())
	return nil
}

func writeCategoryList[T ~string](w io.Writer, title string, values []T) {
	fmt.Fprintf(w, "%s (%d):\n", title, len(values))
	fmt.Fprintf(w, "  %s\n", model.All)
	for _, v := range values {
		fmt.Fprintf(w, "  %s\n", v)
	}
}
