package model

// Location columns appended by the location enricher, in output order.
const (
	ColumnLocationName   = "location_name"
	ColumnLocationCity   = "location_city"
	ColumnLocationRegion = "location_region"
)

// LocationColumns returns the location columns in their declared order.
func LocationColumns() []string {
	return []string{ColumnLocationName, ColumnLocationCity, ColumnLocationRegion}
}

// Location is the (name, city, region) triple derived from post metadata.
// The zero value is the empty triple used whenever metadata is unavailable.
type Location struct {
	Name   string
	City   string
	Region string
}

// IsEmpty reports whether every field of the triple is empty.
func (l Location) IsEmpty() bool {
	return l.Name == "" && l.City == "" && l.Region == ""
}

// Apply writes the triple into the row's location columns.
func (l Location) Apply(row Row) {
	row[ColumnLocationName] = l.Name
	row[ColumnLocationCity] = l.City
	row[ColumnLocationRegion] = l.Region
}
