package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegean-group/property-cli/internal/model"
)

func fptr(v float64) *float64 { return &v }

// listing builds an enriched listing with the metrics the scorer reads.
func listing(id string, price, area, airportMin, beachKm, yield *float64, reno bool) model.EnrichedListing {
	e := model.EnrichedListing{
		Listing: model.Listing{
			ID:      id,
			Title:   "Listing " + id,
			Price:   price,
			AreaSqm: area,
		},
		Region:          "ionian_islands",
		NeedsRenovation: reno,
		GrossYieldPct:   yield,
	}
	if airportMin != nil {
		e.Airport = &model.AirportProximity{Code: "CFU", Name: "Corfu", DriveMinutes: *airportMin}
	}
	if beachKm != nil {
		e.Beach = &model.BeachProximity{Name: "Glyfada", DistanceKm: *beachKm}
	}
	return e
}

func threeListings() []model.EnrichedListing {
	return []model.EnrichedListing{
		listing("a", fptr(50000), fptr(80), fptr(30), fptr(1.0), fptr(8.0), false),
		listing("b", fptr(70000), fptr(100), fptr(60), fptr(3.0), fptr(6.0), false),
		listing("c", fptr(90000), fptr(120), fptr(90), fptr(5.0), fptr(4.0), true),
	}
}

func TestScorer_PriceComponentSpread(t *testing.T) {
	listings := threeListings()
	sc, err := New(listings, DefaultWeights())
	require.NoError(t, err)

	// Prices 50k/70k/90k: cheapest normalizes to 1, dearest to 0, the
	// midpoint to exactly 0.5.
	scored := sc.ScoreAll(listings)
	assert.InDelta(t, 1.0, scored[0].Components[ComponentPrice], 1e-9)
	assert.InDelta(t, 0.5, scored[1].Components[ComponentPrice], 1e-9)
	assert.InDelta(t, 0.0, scored[2].Components[ComponentPrice], 1e-9)
}

func TestScorer_ScoresWithinBounds(t *testing.T) {
	listings := threeListings()
	sc, err := New(listings, DefaultWeights())
	require.NoError(t, err)

	for _, s := range sc.ScoreAll(listings) {
		assert.GreaterOrEqual(t, s.Score, 0.0)
		assert.LessOrEqual(t, s.Score, 100.0)
		for name, c := range s.Components {
			assert.GreaterOrEqual(t, c, 0.0, name)
			assert.LessOrEqual(t, c, 1.0, name)
		}
	}
}

func TestScorer_WeightScaleInvariance(t *testing.T) {
	listings := threeListings()

	base, err := New(listings, DefaultWeights())
	require.NoError(t, err)

	doubled := DefaultWeights()
	doubled.Price *= 2
	doubled.Airport *= 2
	doubled.Beach *= 2
	doubled.Size *= 2
	doubled.Yield *= 2
	doubled.Renovation *= 2
	scaled, err := New(listings, doubled)
	require.NoError(t, err)

	for i := range listings {
		assert.InDelta(t,
			base.Score(&listings[i]).Score,
			scaled.Score(&listings[i]).Score,
			1e-9)
	}
}

func TestScorer_AllZeroWeights(t *testing.T) {
	listings := threeListings()
	sc, err := New(listings, model.WeightVector{})
	require.NoError(t, err)

	for _, s := range sc.ScoreAll(listings) {
		assert.Zero(t, s.Score)
	}
}

func TestScorer_NegativeWeightRejected(t *testing.T) {
	_, err := New(threeListings(), model.WeightVector{Price: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-negative")
}

func TestScorer_DegenerateRangeIsNeutral(t *testing.T) {
	listings := []model.EnrichedListing{
		listing("a", fptr(60000), fptr(80), fptr(30), fptr(2.0), fptr(5.0), false),
		listing("b", fptr(60000), fptr(95), fptr(45), fptr(4.0), fptr(7.0), false),
	}
	sc, err := New(listings, DefaultWeights())
	require.NoError(t, err)

	for _, s := range sc.ScoreAll(listings) {
		assert.InDelta(t, 0.5, s.Components[ComponentPrice], 1e-9)
	}
}

func TestScorer_UnknownMetricIsNeutral(t *testing.T) {
	listings := []model.EnrichedListing{
		listing("known", fptr(50000), fptr(80), fptr(30), fptr(1.0), fptr(8.0), false),
		listing("bare", nil, nil, nil, nil, nil, false),
		listing("other", fptr(90000), fptr(120), fptr(90), fptr(5.0), fptr(4.0), false),
	}
	sc, err := New(listings, DefaultWeights())
	require.NoError(t, err)

	bare := sc.Score(&listings[1])
	for _, name := range []string{ComponentPrice, ComponentAirport, ComponentBeach, ComponentSize, ComponentYield} {
		assert.InDelta(t, 0.5, bare.Components[name], 1e-9, name)
	}

	// The unknown listing must not have stretched anyone else's range.
	known := sc.Score(&listings[0])
	assert.InDelta(t, 1.0, known.Components[ComponentPrice], 1e-9)
}

func TestScorer_CheaperDominates(t *testing.T) {
	cheap := listing("cheap", fptr(50000), fptr(100), fptr(40), fptr(2.0), fptr(6.0), false)
	dear := listing("dear", fptr(80000), fptr(100), fptr(40), fptr(2.0), fptr(6.0), false)
	listings := []model.EnrichedListing{cheap, dear}

	sc, err := New(listings, DefaultWeights())
	require.NoError(t, err)
	scored := sc.ScoreAll(listings)

	assert.Greater(t, scored[0].Score, scored[1].Score)
}

func TestScorer_RenovationBinary(t *testing.T) {
	fresh := listing("fresh", fptr(50000), fptr(100), fptr(40), fptr(2.0), fptr(6.0), false)
	fixer := listing("fixer", fptr(50000), fptr(100), fptr(40), fptr(2.0), fptr(6.0), true)
	listings := []model.EnrichedListing{fresh, fixer}

	sc, err := New(listings, DefaultWeights())
	require.NoError(t, err)
	scored := sc.ScoreAll(listings)

	assert.Equal(t, 1.0, scored[0].Components[ComponentRenovation])
	assert.Equal(t, 0.0, scored[1].Components[ComponentRenovation])
	assert.Greater(t, scored[0].Score, scored[1].Score)
}

func TestScorer_SingleComponentWeights(t *testing.T) {
	// With only the price weight set, score is the price component x100.
	listings := threeListings()
	sc, err := New(listings, model.WeightVector{Price: 10})
	require.NoError(t, err)

	scored := sc.ScoreAll(listings)
	assert.InDelta(t, 100.0, scored[0].Score, 1e-9)
	assert.InDelta(t, 50.0, scored[1].Score, 1e-9)
	assert.InDelta(t, 0.0, scored[2].Score, 1e-9)
}
