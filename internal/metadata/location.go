package metadata

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/savedindex/internal/model"
)

// Extractor resolves json_filename values under SavedDir and extracts
// location triples from them.
type Extractor struct {
	// SavedDir is the directory holding the compressed metadata documents.
	SavedDir string

	logger *slog.Logger
}

// NewExtractor creates an Extractor reading documents from savedDir.
// If logger is nil, slog.Default() is used.
func NewExtractor(savedDir string, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{SavedDir: savedDir, logger: logger}
}

// Extract returns the location triple for the document named jsonFilename.
// It never fails: every fault degrades to the empty triple.
func (e *Extractor) Extract(jsonFilename string) model.Location {
	jsonFilename = strings.TrimSpace(jsonFilename)
	if jsonFilename == "" {
		return model.Location{}
	}

	path := filepath.Join(e.SavedDir, jsonFilename)
	if _, err := os.Stat(path); err != nil {
		e.logger.Debug("metadata document not found", "path", path)
		return model.Location{}
	}

	doc, err := LoadDocument(path)
	if err != nil {
		e.logger.Debug("skipping unreadable metadata document", "path", path, "error", err)
		return model.Location{}
	}

	return LocationFromDocument(doc)
}

// LocationFromDocument navigates node.location of a decoded document.
func LocationFromDocument(doc any) model.Location {
	root, _ := doc.(map[string]any)
	node, _ := root["node"].(map[string]any)
	loc, ok := node["location"].(map[string]any)
	if !ok {
		return model.Location{}
	}

	result := model.Location{Name: stringField(loc, "name")}

	addr := ParseAddress(loc["address_json"])
	if addr == nil {
		return result
	}

	if cityName := stringField(addr, "city_name"); cityName != "" {
		result.City, result.Region = SplitCityRegion(cityName)
	}
	// region_name is rarely filled in; the comma heuristic above wins when it
	// produced anything.
	if result.Region == "" {
		result.Region = stringField(addr, "region_name")
	}

	return result
}

// ParseAddress accepts address_json either as an object or as a
// JSON-encoded string of one. Anything else yields nil.
func ParseAddress(value any) map[string]any {
	switch v := value.(type) {
	case map[string]any:
		return v
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		var addr map[string]any
		if err := json.Unmarshal([]byte(v), &addr); err != nil {
			return nil
		}
		return addr
	default:
		return nil
	}
}

// SplitCityRegion splits a free-text city name such as
// "San Francisco, California" into city and region.
// The first non-empty comma-separated segment is the city and the last one
// is the region; with a single segment the region is empty.
func SplitCityRegion(cityName string) (city, region string) {
	var parts []string
	for _, p := range strings.Split(cityName, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], parts[len(parts)-1]
	}
}

// stringField returns the trimmed string stored under key, or "".
func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}
