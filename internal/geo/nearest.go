package geo

import (
	"github.com/rotisserie/eris"

	"github.com/aegean-group/property-cli/internal/model"
)

// ErrEmptyReferenceSet is returned when a nearest query runs against a set
// with no points. Callers must either supply reference data or leave the
// listing unenriched with explicit unknowns.
var ErrEmptyReferenceSet = eris.New("geo: reference set is empty")

// Match is the result of a nearest-point query.
type Match struct {
	Point      Point
	DistanceKm float64
}

// Nearest returns the closest point to the query coordinate. Ties resolve
// to the earlier point in the set's canonical order (strict < comparison
// during the scan), keeping results reproducible.
func (s *ReferenceSet) Nearest(q model.LatLng) (Match, error) {
	if len(s.points) == 0 {
		return Match{}, eris.Wrapf(ErrEmptyReferenceSet, "kind %s", s.kind)
	}

	best := 0
	bestDist := Haversine(q, s.points[0].Coord())
	for i := 1; i < len(s.points); i++ {
		d := Haversine(q, s.points[i].Coord())
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return Match{Point: s.points[best], DistanceKm: bestDist}, nil
}
