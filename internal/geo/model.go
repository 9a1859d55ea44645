// Package geo provides the static reference point index, great-circle
// distance math, the drive-time heuristic, and region classification.
package geo

import "github.com/aegean-group/property-cli/internal/model"

// PointKind tags a reference set.
type PointKind string

const (
	KindAirport PointKind = "airport"
	KindBeach   PointKind = "beach"
	KindCity    PointKind = "city"
)

// Point is one named reference location. Code and YearRound are set for
// airports, Population for cities.
type Point struct {
	Kind       PointKind `json:"kind" yaml:"-"`
	Code       string    `json:"code,omitempty" yaml:"code,omitempty"`
	Name       string    `json:"name" yaml:"name"`
	Lat        float64   `json:"lat" yaml:"lat"`
	Lng        float64   `json:"lng" yaml:"lng"`
	YearRound  bool      `json:"year_round,omitempty" yaml:"year_round,omitempty"`
	Population int       `json:"population,omitempty" yaml:"population,omitempty"`
}

// Coord returns the point's coordinate pair.
func (p Point) Coord() model.LatLng {
	return model.LatLng{Lat: p.Lat, Lng: p.Lng}
}

// ReferenceSet is an immutable, ordered collection of points of one kind.
// Insertion order is the canonical tie-break order for nearest queries, so
// sets must not be mutated after construction.
type ReferenceSet struct {
	kind   PointKind
	points []Point
}

// NewReferenceSet copies points into an immutable set.
func NewReferenceSet(kind PointKind, points []Point) *ReferenceSet {
	cp := make([]Point, len(points))
	copy(cp, points)
	for i := range cp {
		cp[i].Kind = kind
	}
	return &ReferenceSet{kind: kind, points: cp}
}

// Kind returns the set's point kind.
func (s *ReferenceSet) Kind() PointKind { return s.kind }

// Len returns the number of points in the set.
func (s *ReferenceSet) Len() int { return len(s.points) }

// Points returns a copy of the set's points in canonical order.
func (s *ReferenceSet) Points() []Point {
	cp := make([]Point, len(s.points))
	copy(cp, s.points)
	return cp
}
