package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/savedindex/internal/config"
)

//go:embed templates/savedindex.yaml
var configTemplate embed.FS

// configFileName is the default configuration file name.
const configFileName = config.DefaultConfigFile

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new savedindex configuration file",
		Long: `Initialize creates a new .savedindex configuration file in the current directory.

The generated file includes:
- The default input and output paths of both enrichers
- Run history settings
- Documentation for all available options

Examples:
  # Create .savedindex in current directory
  savedindex init

  # Create config file at a specific path
  savedindex init -o myconfig.yaml

  # Force overwrite existing file
  savedindex init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

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

	if !force && fileExists(outputPath) {
		return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
	}

	content, err := configTemplate.ReadFile("templates/savedindex.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to change:")
	fmt.Fprintln(out, "  - Input and output CSV paths")
	fmt.Fprintln(out, "  - The metadata directory and annotation store")
	fmt.Fprintln(out, "  - Run history recording")

	return nil
}
