package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/savedindex/internal/config"
)

// NewEnrichCmd creates the enrich command.
// It chains the location and annotation enrichers through the intermediate
// location CSV, exactly as running both commands one after the other.
func NewEnrichCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Run the location and annotation enrichers in sequence",
		Long: `Enrich runs the location enricher and feeds its output to the annotation enricher.

The intermediate CSV (--location-csv) is kept on disk so the app can use it
on its own.

Examples:
  # Rebuild both enriched CSVs with the default project layout
  savedindex enrich

  # Write a combined Markdown report
  savedindex enrich -r reports/enrich.md`,
		Args: cobra.NoArgs,
		RunE: runEnrichCmd,
	}

	cmd.Flags().String("input-csv", config.DefaultSavedIndexCSV,
		"Path to the existing saved index CSV")
	cmd.Flags().String("saved-dir", config.DefaultSavedDir,
		"Directory containing the *.json.xz files referenced by json_filename")
	cmd.Flags().String("location-csv", config.DefaultLocationOutputCSV,
		"Intermediate CSV written by the location enricher")
	cmd.Flags().String("annotations-json", config.DefaultAnnotationsJSON,
		"Annotation store: a JSON object keyed by post id")
	cmd.Flags().String("output-csv", config.DefaultEnrichedOutputCSV,
		"Path to write the fully enriched CSV")
	cmd.Flags().StringP("report-file", "r", "",
		"Write a Markdown report of both runs to this path")

	return cmd
}

// runEnrichCmd executes the enrich command.
func runEnrichCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	overrideFromFlag(cmd, "input-csv", &cfg.Location.InputCSV)
	overrideFromFlag(cmd, "saved-dir", &cfg.Location.SavedDir)
	overrideFromFlag(cmd, "location-csv", &cfg.Location.OutputCSV)
	overrideFromFlag(cmd, "annotations-json", &cfg.Annotations.AnnotationsJSON)
	overrideFromFlag(cmd, "output-csv", &cfg.Annotations.OutputCSV)
	overrideFromFlag(cmd, "report-file", &cfg.ReportFile)

	// The second stage always reads what the first one wrote.
	cfg.Annotations.InputCSV = cfg.Location.OutputCSV
	cfg.Annotations.FallbackInputCSV = ""

	if err := cfg.ValidateLocation(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if err := cfg.ValidateAnnotations(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg.Verbose)

	locSummary, err := runLocation(cfg.Location, logger)
	if err != nil {
		return err
	}

	annSummary, err := runAnnotations(cfg.Annotations, logger)
	if err != nil {
		return err
	}

	return finishRun(commandContext(cmd), cmd.OutOrStdout(), cfg, logger, locSummary, annSummary)
}
