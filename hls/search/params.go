package search

import (
	"fmt"
	"net/url"
	"time"
)

// ValidationError reports malformed query input, such as an inverted or
// out-of-range bounding box.
type ValidationError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("search: invalid %s: %s", e.Field, e.Reason)
}

// BoundingBox is a west/south/east/north spatial filter in degrees.
type BoundingBox struct {
	West  float64
	South float64
	East  float64
	North float64
}

// Validate checks coordinate ranges and orientation.
func (b BoundingBox) Validate() error {
	if b.West < -180 || b.West > 180 {
		return &ValidationError{Field: "bounding_box", Reason: fmt.Sprintf("west must be between -180 and 180, got %g", b.West)}
	}
	if b.East < -180 || b.East > 180 {
		return &ValidationError{Field: "bounding_box", Reason: fmt.Sprintf("east must be between -180 and 180, got %g", b.East)}
	}
	if b.South < -90 || b.South > 90 {
		return &ValidationError{Field: "bounding_box", Reason: fmt.Sprintf("south must be between -90 and 90, got %g", b.South)}
	}
	if b.North < -90 || b.North > 90 {
		return &ValidationError{Field: "bounding_box", Reason: fmt.Sprintf("north must be between -90 and 90, got %g", b.North)}
	}
	if b.West >= b.East {
		return &ValidationError{Field: "bounding_box", Reason: fmt.Sprintf("west (%g) must be less than east (%g)", b.West, b.East)}
	}
	if b.South >= b.North {
		return &ValidationError{Field: "bounding_box", Reason: fmt.Sprintf("south (%g) must be less than north (%g)", b.South, b.North)}
	}
	return nil
}

// String renders the box in CMR parameter order (west,south,east,north).
func (b BoundingBox) String() string {
	return fmt.Sprintf("%g,%g,%g,%g", b.West, b.South, b.East, b.North)
}

// Params represents a granule search query against the CMR catalog. A Params
// value is built once per invocation and never mutated afterwards.
type Params struct {
	ConceptIDs  []string
	BoundingBox *BoundingBox
	Start       time.Time
	End         time.Time
	Format      string
}

// New returns a Params scoped to the given collection concept ids.
func New(conceptIDs ...string) Params {
	return Params{
		ConceptIDs: append([]string{}, conceptIDs...),
		Format:     "json",
	}
}

// Encode validates the parameters and serialises them into the query string
// values expected by the CMR granule search endpoint.
func (p Params) Encode() (url.Values, error) {
	if len(p.ConceptIDs) == 0 {
		return nil, &ValidationError{Field: "concept_ids", Reason: "at least one collection concept id is required"}
	}
	if p.BoundingBox != nil {
		if err := p.BoundingBox.Validate(); err != nil {
			return nil, err
		}
	}
	if !p.Start.IsZero() && p.End.IsZero() {
		return nil, &ValidationError{Field: "temporal", Reason: "end time must be provided when start time is set"}
	}
	if !p.End.IsZero() && p.Start.After(p.End) {
		return nil, &ValidationError{Field: "temporal", Reason: "start time must be before end time"}
	}

	values := make(url.Values)
	for _, id := range p.ConceptIDs {
		if id != "" {
			values.Add("collection_concept_id[]", id)
		}
	}
	if p.BoundingBox != nil {
		values.Set("bounding_box", p.BoundingBox.String())
	}
	if !p.Start.IsZero() {
		values.Set("temporal", fmt.Sprintf("%s,%s",
			p.Start.UTC().Format(time.RFC3339),
			p.End.UTC().Format(time.RFC3339)))
	}
	return values, nil
}
