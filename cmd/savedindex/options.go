package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/savedindex/internal/config"
	applog "github.com/nao1215/savedindex/internal/log"
)

// lookupFlag finds a flag on the command or, when the command runs outside
// of the root command (as in tests), on the root's persistent flags.
func lookupFlag(cmd *cobra.Command, name string) (string, bool) {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Value.String(), f.Changed
	}
	if f := cmd.Root().PersistentFlags().Lookup(name); f != nil {
		return f.Value.String(), f.Changed
	}
	return "", false
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	v, _ := lookupFlag(cmd, "verbose")
	return v == "true"
}

// buildConfig creates a Config from defaults, the configuration file and
// the global flags. Command-specific flags are applied by each command.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	cfg.ConfigFilePath, _ = lookupFlag(cmd, "config")

	// If the user explicitly specified a config file path, error if not found.
	// If no path was specified, silently use the defaults.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	switch {
	case configPath != "":
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	case explicitConfigPath:
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if noHistory, _ := lookupFlag(cmd, "no-history"); noHistory == "true" {
		cfg.SaveHistory = false
	}
	if dbDir, changed := lookupFlag(cmd, "db-dir"); changed {
		cfg.DBDir = dbDir
	}

	return cfg, nil
}

// overrideFromFlag copies a string flag into dst when the user set it.
// Unset flags keep the value coming from defaults or the configuration file.
func overrideFromFlag(cmd *cobra.Command, name string, dst *string) {
	if v, changed := lookupFlag(cmd, name); changed {
		*dst = v
	}
}

// setupLogger creates a structured logger based on verbosity setting.
// User-authored text is masked before it reaches the log.
func setupLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	if v, _ := lookupFlag(cmd, "log-json"); v == "true" {
		return applog.NewJSONLogger(os.Stderr, verbose)
	}
	return applog.NewLogger(os.Stderr, verbose)
}

// commandContext returns the command's context, or Background when the
// command was invoked without Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// fileExists reports whether path names an existing file or directory.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
