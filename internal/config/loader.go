package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".savedindex"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// HistoryFile is the history section of the configuration file.
type HistoryFile struct {
	// Enabled toggles run-history recording. Nil means "not set".
	Enabled *bool `yaml:"enabled,omitempty"`

	// DBDir overrides the history database directory.
	DBDir string `yaml:"db_dir,omitempty"`

	// Limit overrides the number of runs listed by the history command.
	Limit int `yaml:"limit,omitempty"`
}

// File represents the structure of the .savedindex configuration file.
type File struct {
	Location    LocationPaths   `yaml:"location,omitempty"`
	Annotations AnnotationPaths `yaml:"annotations,omitempty"`
	History     HistoryFile     `yaml:"history,omitempty"`
}

// LoadConfigFile loads a configuration file from path.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .savedindex in the current directory
// 3. Look for .savedindex in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), "config.yaml"))

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

// Apply overrides c with every value set in the file.
// Empty values in the file leave the current configuration untouched.
func (cf *File) Apply(c *Config) {
	overrideString(&c.Location.InputCSV, cf.Location.InputCSV)
	overrideString(&c.Location.SavedDir, cf.Location.SavedDir)
	overrideString(&c.Location.OutputCSV, cf.Location.OutputCSV)

	overrideString(&c.Annotations.InputCSV, cf.Annotations.InputCSV)
	overrideString(&c.Annotations.FallbackInputCSV, cf.Annotations.FallbackInputCSV)
	overrideString(&c.Annotations.AnnotationsJSON, cf.Annotations.AnnotationsJSON)
	overrideString(&c.Annotations.OutputCSV, cf.Annotations.OutputCSV)

	if cf.History.Enabled != nil {
		c.SaveHistory = *cf.History.Enabled
	}
	overrideString(&c.DBDir, cf.History.DBDir)
	if cf.History.Limit != 0 {
		c.HistoryLimit = cf.History.Limit
	}
}

func overrideString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
