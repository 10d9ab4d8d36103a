package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
// The paths follow the layout of the saved-posts browser project, where the
// saved index and the downloaded metadata live under public/ and the
// annotation store is exported to the project root.
const (
	// DefaultSavedIndexCSV is the saved index produced by the export.
	DefaultSavedIndexCSV = "public/saved_index.csv"

	// DefaultSavedDir holds the *.json.xz documents referenced by json_filename.
	DefaultSavedDir = "public/saved"

	// DefaultLocationOutputCSV is where the location enricher writes.
	// It is also the annotation enricher's preferred input.
	DefaultLocationOutputCSV = "public/saved_index_with_location.csv"

	// DefaultAnnotationsJSON is the annotation store exported from the app.
	DefaultAnnotationsJSON = "annotations.json"

	// DefaultEnrichedOutputCSV is where the annotation enricher writes.
	DefaultEnrichedOutputCSV = "public/saved_index_enriched.csv"

	// DefaultHistoryLimit is the number of runs listed by the history command.
	DefaultHistoryLimit = 20

	// AppName is the application name used for XDG directory paths.
	AppName = "savedindex"
)

// LocationPaths configures the location enricher.
type LocationPaths struct {
	// InputCSV is the saved index to enrich.
	InputCSV string `yaml:"input_csv,omitempty"`

	// SavedDir is the directory containing the metadata documents.
	SavedDir string `yaml:"saved_dir,omitempty"`

	// OutputCSV is the enriched CSV to write.
	OutputCSV string `yaml:"output_csv,omitempty"`
}

// AnnotationPaths configures the annotation enricher.
type AnnotationPaths struct {
	// InputCSV is the preferred input, normally the location enricher's output.
	InputCSV string `yaml:"input_csv,omitempty"`

	// FallbackInputCSV is read when InputCSV does not exist.
	FallbackInputCSV string `yaml:"fallback_input_csv,omitempty"`

	// AnnotationsJSON is the annotation store keyed by post id.
	AnnotationsJSON string `yaml:"annotations_json,omitempty"`

	// OutputCSV is the enriched CSV to write.
	OutputCSV string `yaml:"output_csv,omitempty"`
}

// Config holds all configuration options for savedindex.
// It is populated from defaults, then the configuration file, then CLI flags,
// and passed through the application rather than kept in global state.
type Config struct {
	// Location holds the location enricher paths.
	Location LocationPaths

	// Annotations holds the annotation enricher paths.
	Annotations AnnotationPaths

	// Verbose enables debug logging, including per-row metadata failures.
	Verbose bool

	// ConfigFilePath is the explicit configuration file path, if any.
	ConfigFilePath string

	// ReportFile, when set, receives a Markdown report of the run.
	ReportFile string

	// SaveHistory records every successful run in the history database.
	SaveHistory bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory (~/.local/share/savedindex on Linux).
	DBDir string

	// HistoryLimit is the number of runs listed by the history command.
	HistoryLimit int
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Location: LocationPaths{
			InputCSV:  DefaultSavedIndexCSV,
			SavedDir:  DefaultSavedDir,
			OutputCSV: DefaultLocationOutputCSV,
		},
		Annotations: AnnotationPaths{
			InputCSV:         DefaultLocationOutputCSV,
			FallbackInputCSV: DefaultSavedIndexCSV,
			AnnotationsJSON:  DefaultAnnotationsJSON,
			OutputCSV:        DefaultEnrichedOutputCSV,
		},
		SaveHistory:  true,
		DBDir:        XDGDataDir(),
		HistoryLimit: DefaultHistoryLimit,
	}
}

// XDGDataDir returns the XDG data directory for savedindex.
// On Linux: ~/.local/share/savedindex
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for savedindex.
// On Linux: ~/.config/savedindex
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ValidateLocation checks the location enricher settings.
// It returns the first problem found.
func (c *Config) ValidateLocation() error {
	if c.Location.InputCSV == "" {
		return ErrEmptyInputCSV
	}
	if c.Location.SavedDir == "" {
		return ErrEmptySavedDir
	}
	if c.Location.OutputCSV == "" {
		return ErrEmptyOutputCSV
	}
	return nil
}

// ValidateAnnotations checks the annotation enricher settings.
// An empty fallback input is allowed; it only disables the fallback.
func (c *Config) ValidateAnnotations() error {
	if c.Annotations.InputCSV == "" {
		return ErrEmptyInputCSV
	}
	if c.Annotations.AnnotationsJSON == "" {
		return ErrEmptyAnnotationsJSON
	}
	if c.Annotations.OutputCSV == "" {
		return ErrEmptyOutputCSV
	}
	return nil
}

// ValidateHistory checks the history listing settings.
func (c *Config) ValidateHistory() error {
	if c.HistoryLimit <= 0 {
		return ErrInvalidHistoryLimit
	}
	return nil
}
