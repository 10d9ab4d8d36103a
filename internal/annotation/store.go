package annotation

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nao1215/savedindex/internal/model"
)

// Store maps post ids to raw annotation values.
type Store map[string]any

// Load reads and parses the annotation store at path.
// A missing file, malformed JSON or a non-object top level are all errors.
func Load(path string) (Store, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided store path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read annotations: %w", err)
	}
	return Parse(data)
}

// Parse decodes an annotation store from JSON.
func Parse(data []byte) (Store, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse annotations: %w", err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrStoreNotObject
	}
	return Store(obj), nil
}

// Resolve returns the annotation object for a post.
// The shortcode is tried first, then the metadata filename; a key only
// matches when its value is an object.
func (s Store) Resolve(shortcode, jsonFilename string) (map[string]any, bool) {
	for _, key := range []string{shortcode, jsonFilename} {
		if key == "" {
			continue
		}
		if ann, ok := s[key].(map[string]any); ok {
			return ann, true
		}
	}
	return nil, false
}

// Lookup resolves a post and flattens its annotation.
// It reports false when nothing matched or the matched annotation is empty.
func (s Store) Lookup(shortcode, jsonFilename string) (model.AnnotationFields, bool) {
	ann, ok := s.Resolve(shortcode, jsonFilename)
	if !ok || len(ann) == 0 {
		return model.AnnotationFields{}, false
	}
	return Fields(ann), true
}
