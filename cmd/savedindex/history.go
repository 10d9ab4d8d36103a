package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nao1215/savedindex/internal/config"
	"github.com/nao1215/savedindex/internal/database"
	"github.com/nao1215/savedindex/internal/report"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous enrichment runs",
		Long: `History lists the enrichment runs recorded in the history database,
newest first, with their row counts and output paths.

Examples:
  # Show the last 20 runs
  savedindex history

  # Only location runs, as Markdown
  savedindex history --command location --markdown

  # The most recent run as JSON
  savedindex history --latest --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", config.DefaultHistoryLimit,
		"Maximum number of runs to list")
	cmd.Flags().String("command", "",
		"Only list runs of this enricher (location or annotations)")
	cmd.Flags().Bool("latest", false,
		"Only show the most recent run")
	cmd.Flags().BoolP("json", "j", false,
		"Output history in JSON format (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output history in Markdown format (mutually exclusive with --json)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if v, changed := lookupFlag(cmd, "limit"); changed {
		if cfg.HistoryLimit, err = strconv.Atoi(v); err != nil {
			return fmt.Errorf("invalid --limit: %w", err)
		}
	}
	if err := cfg.ValidateHistory(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	command, err := cmd.Flags().GetString("command")
	if err != nil {
		return err
	}
	latest, err := cmd.Flags().GetBool("latest")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	asMarkdown, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if asJSON && asMarkdown {
		return errors.New("--json and --markdown cannot be used together")
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	runs, err := listRuns(commandContext(cmd), db, command, cfg.HistoryLimit, latest)
	if err != nil {
		return err
	}

	var w report.Writer
	switch {
	case asJSON:
		w = report.NewJSONWriter(cmd.OutOrStdout())
	case asMarkdown:
		w = report.NewMarkdownWriter(cmd.OutOrStdout())
	default:
		w = report.NewSimpleWriter(cmd.OutOrStdout())
	}

	_, err = w.WriteHistory(runs)
	return err
}

// listRuns loads the runs to display. With latest set, an empty history is
// reported as no runs rather than as an error.
func listRuns(ctx context.Context, db *database.HistoryDB, command string, limit int, latest bool) ([]database.Run, error) {
	if !latest {
		return db.ListRuns(ctx, command, limit)
	}

	run, err := db.LatestRun(ctx, command)
	if errors.Is(err, database.ErrNoRuns) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return []database.Run{*run}, nil
}
