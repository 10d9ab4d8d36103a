package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/savedindex/internal/config"
)

// NewLocationCmd creates the location command.
func NewLocationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "location",
		Short: "Add location columns from the per-post metadata documents",
		Long: `Location adds location_name, location_city and location_region to the saved index.

For each row the json_filename column names a compressed metadata document
under --saved-dir. The location name comes from node.location.name; city and
region are split from address_json.city_name ("San Francisco, California"),
falling back to address_json.region_name for the region.

Rows whose document is missing or unreadable get three empty columns.

Examples:
  # Use the default project layout
  savedindex location

  # Explicit paths
  savedindex location --input-csv export/saved_index.csv --saved-dir export/saved \
    --output-csv export/saved_index_with_location.csv`,
		Args: cobra.NoArgs,
		RunE: runLocationCmd,
	}

	cmd.Flags().String("input-csv", config.DefaultSavedIndexCSV,
		"Path to the existing saved index CSV")
	cmd.Flags().String("saved-dir", config.DefaultSavedDir,
		"Directory containing the *.json.xz files referenced by json_filename")
	cmd.Flags().String("output-csv", config.DefaultLocationOutputCSV,
		"Path to write the enriched CSV")
	cmd.Flags().StringP("report-file", "r", "",
		"Write a Markdown report of the run to this path")

	return cmd
}

// runLocationCmd executes the location command.
func runLocationCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	overrideFromFlag(cmd, "input-csv", &cfg.Location.InputCSV)
	overrideFromFlag(cmd, "saved-dir", &cfg.Location.SavedDir)
	overrideFromFlag(cmd, "output-csv", &cfg.Location.OutputCSV)
	overrideFromFlag(cmd, "report-file", &cfg.ReportFile)

	if err := cfg.ValidateLocation(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg.Verbose)

	summary, err := runLocation(cfg.Location, logger)
	if err != nil {
		return err
	}

	return finishRun(commandContext(cmd), cmd.OutOrStdout(), cfg, logger, summary)
}
