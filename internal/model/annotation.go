package model

// Annotation columns appended by the annotation enricher, in output order.
const (
	ColumnMyTags      = "my_tags"
	ColumnMyNotes     = "my_notes"
	ColumnMyNorthstar = "my_northstar"
	ColumnMyLenses    = "my_lenses"
)

// AnnotationColumns returns the annotation columns in their declared order.
func AnnotationColumns() []string {
	return []string{ColumnMyTags, ColumnMyNotes, ColumnMyNorthstar, ColumnMyLenses}
}

// Tristate is a boolean that may also be unknown.
// The northstar flag keeps "unknown" distinct from an explicit false.
type Tristate int

const (
	// Unknown means the value was absent or not recognizable as a boolean.
	Unknown Tristate = iota
	// True is an explicit true.
	True
	// False is an explicit false.
	False
)

// String returns the CSV representation: "True", "False" or "".
func (t Tristate) String() string {
	switch t {
	case True:
		return "True"
	case False:
		return "False"
	default:
		return ""
	}
}

// AnnotationFields holds the flattened annotation values written to a row.
type AnnotationFields struct {
	Tags      string
	Notes     string
	Northstar Tristate
	Lenses    string
}

// IsEmpty reports whether no field carries a value.
func (f AnnotationFields) IsEmpty() bool {
	return f.Tags == "" && f.Notes == "" && f.Northstar == Unknown && f.Lenses == ""
}

// Apply overwrites the row's annotation columns with the fields.
func (f AnnotationFields) Apply(row Row) {
	row[ColumnMyTags] = f.Tags
	row[ColumnMyNotes] = f.Notes
	row[ColumnMyNorthstar] = f.Northstar.String()
	row[ColumnMyLenses] = f.Lenses
}

// ApplyMissing fills the annotation columns with empty strings, keeping any
// value the row already carries.
func ApplyMissing(row Row) {
	for _, col := range AnnotationColumns() {
		row.SetDefault(col, "")
	}
}
