package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for savedindex.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "savedindex",
		Short: "Enrich the saved-posts index CSV",
		Long: `savedindex enriches the saved-posts index CSV with auxiliary columns.

The location enricher reads each post's compressed metadata document and
appends location_name, location_city and location_region.
The annotation enricher merges the annotation store exported from the app
and appends my_tags, my_notes, my_northstar and my_lenses.

Both read the whole CSV, append their columns and write a new CSV, so they
can be chained: the location output is the annotation enricher's input.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .savedindex in current or home directory)")
	cmd.PersistentFlags().Bool("log-json", false, "Write logs to stderr as JSON")
	cmd.PersistentFlags().Bool("no-history", false, "Do not record this run in the history database")
	cmd.PersistentFlags().String("db-dir", "", "History database directory (default: XDG data directory)")

	cmd.AddCommand(NewLocationCmd())
	cmd.AddCommand(NewAnnotationsCmd())
	cmd.AddCommand(NewEnrichCmd())
	cmd.AddCommand(NewHistoryCmd())
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
