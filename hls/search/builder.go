package search

import "time"

// Builder provides a fluent way to construct Params.
type Builder struct {
	params Params
}

// ParamsBuilder creates a new Builder with default Params.
func ParamsBuilder() Builder {
	return Builder{params: New()}
}

// AddConceptID appends a collection concept id to the query scope.
func (b Builder) AddConceptID(id string) Builder {
	b.params.ConceptIDs = append(b.params.ConceptIDs, id)
	return b
}

// BoundingBox sets a west/south/east/north spatial filter.
func (b Builder) BoundingBox(west, south, east, north float64) Builder {
	b.params.BoundingBox = &BoundingBox{West: west, South: south, East: east, North: north}
	return b
}

// Temporal sets the inclusive start and end of the temporal filter.
func (b Builder) Temporal(start, end time.Time) Builder {
	b.params.Start = start
	b.params.End = end
	return b
}

// Format sets the requested result format.
func (b Builder) Format(v string) Builder {
	b.params.Format = v
	return b
}

// Build returns the composed Params.
func (b Builder) Build() Params {
	return b.params
}
