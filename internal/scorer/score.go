// Package scorer ranks enriched listings by a weighted multi-criteria
// score. Every metric is normalized to [0,1] against the bounds of the
// full catalog, so a listing's score only ever moves when the catalog or
// the weights do.
package scorer

import (
	"github.com/aegean-group/property-cli/internal/model"
)

// bounds is the observed [min,max] range of one metric across the
// catalog. Listings with an unknown value do not contribute.
type bounds struct {
	min, max float64
	known    bool
}

func (b *bounds) observe(v *float64) {
	if v == nil {
		return
	}
	if !b.known {
		b.min, b.max, b.known = *v, *v, true
		return
	}
	if *v < b.min {
		b.min = *v
	}
	if *v > b.max {
		b.max = *v
	}
}

// normalize maps v into [0,1]. higherBetter flips the direction: with it
// set, the catalog max normalizes to 1; without it, the catalog min does.
// A degenerate range, or an unknown value, yields the neutral 0.5.
func (b bounds) normalize(v *float64, higherBetter bool) float64 {
	if v == nil || !b.known || b.max == b.min {
		return 0.5
	}
	if higherBetter {
		return (*v - b.min) / (b.max - b.min)
	}
	return (b.max - *v) / (b.max - b.min)
}

// catalogBounds holds the per-metric ranges of one enriched catalog.
type catalogBounds struct {
	price   bounds
	airport bounds // drive minutes
	beach   bounds // distance km
	area    bounds
	yield   bounds
}

func computeBounds(listings []model.EnrichedListing) catalogBounds {
	var cb catalogBounds
	for i := range listings {
		l := &listings[i]
		cb.price.observe(l.Price)
		cb.area.observe(l.AreaSqm)
		cb.yield.observe(l.GrossYieldPct)
		if l.Airport != nil {
			cb.airport.observe(&l.Airport.DriveMinutes)
		}
		if l.Beach != nil {
			cb.beach.observe(&l.Beach.DistanceKm)
		}
	}
	return cb
}

// Scorer scores listings against the bounds of the catalog it was built
// from. Build it once per catalog; scoring individual listings against
// ad hoc bounds is not supported.
type Scorer struct {
	weights model.WeightVector
	bounds  catalogBounds
}

// New builds a Scorer over the full catalog. Bounds always come from the
// complete listing set, never from a filtered view, so filtering changes
// which rows appear but not what they score.
func New(listings []model.EnrichedListing, weights model.WeightVector) (*Scorer, error) {
	if err := ValidateWeights(weights); err != nil {
		return nil, err
	}
	return &Scorer{weights: weights, bounds: computeBounds(listings)}, nil
}

// Components computes the six normalized [0,1] component values for one
// listing.
func (s *Scorer) Components(l *model.EnrichedListing) map[string]float64 {
	var airportMin, beachKm *float64
	if l.Airport != nil {
		airportMin = &l.Airport.DriveMinutes
	}
	if l.Beach != nil {
		beachKm = &l.Beach.DistanceKm
	}
	reno := 1.0
	if l.NeedsRenovation {
		reno = 0.0
	}
	return map[string]float64{
		ComponentPrice:      s.bounds.price.normalize(l.Price, false),
		ComponentAirport:    s.bounds.airport.normalize(airportMin, false),
		ComponentBeach:      s.bounds.beach.normalize(beachKm, false),
		ComponentSize:       s.bounds.area.normalize(l.AreaSqm, true),
		ComponentYield:      s.bounds.yield.normalize(l.GrossYieldPct, true),
		ComponentRenovation: reno,
	}
}

// Score computes the 0-100 weighted score for one listing. An all-zero
// weight vector keeps the denominator at 1, so every score collapses
// to 0 instead of dividing by zero.
func (s *Scorer) Score(l *model.EnrichedListing) model.ScoredListing {
	c := s.Components(l)
	w := s.weights
	sum := w.Price*c[ComponentPrice] +
		w.Airport*c[ComponentAirport] +
		w.Beach*c[ComponentBeach] +
		w.Size*c[ComponentSize] +
		w.Yield*c[ComponentYield] +
		w.Renovation*c[ComponentRenovation]
	denom := w.Sum()
	if denom == 0 {
		denom = 1
	}
	return model.ScoredListing{
		EnrichedListing: *l,
		Score:           100 * sum / denom,
		Components:      c,
	}
}

// ScoreAll scores every listing, preserving input order.
func (s *Scorer) ScoreAll(listings []model.EnrichedListing) []model.ScoredListing {
	out := make([]model.ScoredListing, len(listings))
	for i := range listings {
		out[i] = s.Score(&listings[i])
	}
	return out
}
