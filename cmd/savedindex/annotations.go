package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/savedindex/internal/config"
)

// NewAnnotationsCmd creates the annotations command.
func NewAnnotationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annotations",
		Short: "Merge the annotation store into the saved index",
		Long: `Annotations merges the annotation store exported from the app into the saved index,
adding my_tags, my_notes, my_northstar and my_lenses.

Each row is looked up by shortcode first and by json_filename second.
Tags and categories (lenses) are joined with commas; my_northstar is True,
False, or empty when the flag is missing or unrecognized.

The input is --input-csv when it exists, otherwise --fallback-input-csv.

Examples:
  # Use the default project layout
  savedindex annotations

  # Merge a specific export
  savedindex annotations --annotations-json ~/Downloads/annotations.json`,
		Args: cobra.NoArgs,
		RunE: runAnnotationsCmd,
	}

	cmd.Flags().String("input-csv", config.DefaultLocationOutputCSV,
		"Preferred input CSV (normally the location enricher's output)")
	cmd.Flags().String("fallback-input-csv", config.DefaultSavedIndexCSV,
		"Input CSV used when --input-csv does not exist")
	cmd.Flags().String("annotations-json", config.DefaultAnnotationsJSON,
		"Annotation store: a JSON object keyed by post id")
	cmd.Flags().String("output-csv", config.DefaultEnrichedOutputCSV,
		"Path to write the enriched CSV")
	cmd.Flags().StringP("report-file", "r", "",
		"Write a Markdown report of the run to this path")

	return cmd
}

// runAnnotationsCmd executes the annotations command.
func runAnnotationsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	overrideFromFlag(cmd, "input-csv", &cfg.Annotations.InputCSV)
	overrideFromFlag(cmd, "fallback-input-csv", &cfg.Annotations.FallbackInputCSV)
	overrideFromFlag(cmd, "annotations-json", &cfg.Annotations.AnnotationsJSON)
	overrideFromFlag(cmd, "output-csv", &cfg.Annotations.OutputCSV)
	overrideFromFlag(cmd, "report-file", &cfg.ReportFile)

	if err := cfg.ValidateAnnotations(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg.Verbose)

	summary, err := runAnnotations(cfg.Annotations, logger)
	if err != nil {
		return err
	}

	return finishRun(commandContext(cmd), cmd.OutOrStdout(), cfg, logger, summary)
}
