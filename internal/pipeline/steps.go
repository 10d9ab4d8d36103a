package pipeline

import (
	"github.com/nao1215/savedindex/internal/annotation"
	"github.com/nao1215/savedindex/internal/metadata"
	"github.com/nao1215/savedindex/internal/model"
)

// Step names, also recorded in run history.
const (
	LocationStepName   = "location"
	AnnotationStepName = "annotations"
)

// LocationStep appends location_name, location_city and location_region
// extracted from each row's metadata document.
type LocationStep struct {
	extractor *metadata.Extractor
}

// NewLocationStep creates a location step backed by extractor.
func NewLocationStep(extractor *metadata.Extractor) *LocationStep {
	return &LocationStep{extractor: extractor}
}

// Name returns the step name.
func (s *LocationStep) Name() string {
	return LocationStepName
}

// Columns returns the location columns.
func (s *LocationStep) Columns() []string {
	return model.LocationColumns()
}

// CounterLabel returns the summary counter label.
func (s *LocationStep) CounterLabel() string {
	return "rows_with_location"
}

// Enrich always overwrites the location columns, even with empty values.
func (s *LocationStep) Enrich(row model.Row) bool {
	loc := s.extractor.Extract(row.Get(model.ColumnJSONFilename))
	loc.Apply(row)
	return !loc.IsEmpty()
}

// AnnotationStep appends my_tags, my_notes, my_northstar and my_lenses from
// the annotation store.
type AnnotationStep struct {
	store annotation.Store
}

// NewAnnotationStep creates an annotation step backed by store.
func NewAnnotationStep(store annotation.Store) *AnnotationStep {
	return &AnnotationStep{store: store}
}

// Name returns the step name.
func (s *AnnotationStep) Name() string {
	return AnnotationStepName
}

// Columns returns the annotation columns.
func (s *AnnotationStep) Columns() []string {
	return model.AnnotationColumns()
}

// CounterLabel returns the summary counter label.
func (s *AnnotationStep) CounterLabel() string {
	return "rows_with_annotations"
}

// Enrich writes the flattened annotation for the row. When the post has no
// annotation the columns are filled with empty strings, but values already
// present in the input are kept.
func (s *AnnotationStep) Enrich(row model.Row) bool {
	fields, ok := s.store.Lookup(row.Get(model.ColumnShortcode), row.Get(model.ColumnJSONFilename))
	if !ok {
		model.ApplyMissing(row)
		return false
	}
	fields.Apply(row)
	return !fields.IsEmpty()
}
