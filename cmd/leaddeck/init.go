package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/leaddeck/internal/config"
	"github.com/nao1215/leaddeck/internal/leadstore"
)

//go:embed templates/leaddeck.yaml
var configTemplate embed.FS

// configFileName is the default configuration file name.
const configFileName = config.DefaultConfigFile

// sampleFileName is the lead file written next to the configuration by --with-sample.
const sampleFileName = "leads.yaml"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new leaddeck configuration file",
		Long: `Initialize creates a new .leaddeck configuration file in the current directory.

The generated file includes:
- The default priority matrix size
- Default filters and a high-value preset
- Commented examples for lead files and more presets

Examples:
  # Create .leaddeck in current directory
  leaddeck init

  # Also write the sample leads to leads.yaml next to the config
  leaddeck init --with-sample

  # Create config file at a specific path
  leaddeck init -o myconfig.yaml

  # Force overwrite existing file
  leaddeck init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing files")
	cmd.Flags().Bool("with-sample", false,
		"Also write the sample lead file next to the configuration")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	withSample, err := cmd.Flags().GetBool("with-sample")
	if err != nil {
		return err
	}

	content, err := configTemplate.ReadFile("templates/leaddeck.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	if withSample {
		content = append(content, []byte("\nleadFiles:\n  - "+sampleFileName+"\n")...)
	}

	if err := writeNewFile(outputPath, content, force); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)

	if withSample {
		samplePath := filepath.Join(filepath.Dir(outputPath), sampleFileName)
		if err := writeNewFile(samplePath, leadstore.SampleData(), force); err != nil {
			return err
		}
		fmt.Fprintf(out, "Created sample lead file: %s\n", samplePath)
	}

	fmt.Fprintln(out, "\nEdit this file to configure:")
	fmt.Fprintln(out, "  - Lead files to rank")
	fmt.Fprintln(out, "  - Default industry and region filters")
	fmt.Fprintln(out, "  - Named filter presets")

	return nil
}

// writeNewFile writes content to path, creating parent directories.
// An existing file is only replaced when force is set.
func writeNewFile(path string, content []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file already exists: %s (use -f to overwrite)", path)
		}
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
