// Package estimate computes derived investment metrics for enriched
// listings: price-per-area, currency conversion, and short-term-rental
// income heuristics.
package estimate

import (
	"math"

	"github.com/aegean-group/property-cli/internal/model"
)

// RegionRates holds the base nightly rate (EUR) and base occupancy (%) for
// one region category. Values are regional comps, not per-listing data.
type RegionRates struct {
	NightlyBase   float64 `mapstructure:"nightly_base" yaml:"nightly_base"`
	OccupancyBase float64 `mapstructure:"occupancy_base" yaml:"occupancy_base"`
}

// regionRates keys region identifiers to their base constants. Regions not
// in the table use conservativeDefault: heuristics from scraped data
// should undersell, not oversell.
var regionRates = map[model.Region]RegionRates{
	"ionian_islands":  {NightlyBase: 55, OccupancyBase: 42},
	"crete":           {NightlyBase: 60, OccupancyBase: 48},
	"halkidiki":       {NightlyBase: 65, OccupancyBase: 45},
	"thessaloniki":    {NightlyBase: 50, OccupancyBase: 55},
	"attica":          {NightlyBase: 55, OccupancyBase: 60},
	"northern_greece": {NightlyBase: 35, OccupancyBase: 40},
	"pelion_sporades": {NightlyBase: 50, OccupancyBase: 38},
	"peloponnese":     {NightlyBase: 45, OccupancyBase: 40},
}

var conservativeDefault = RegionRates{NightlyBase: 40, OccupancyBase: 35}

const (
	// occupancyCeiling caps estimated occupancy. No heuristic built on
	// scraped comps gets to claim near-full occupancy.
	occupancyCeiling = 70.0

	bedroomNightlyStep = 10.0 // EUR per bedroom beyond the first
	studioNightlyCut   = 5.0

	nightsPerYear = 365
)

// Proximity adjustment thresholds (drive minutes).
const (
	beachNearMin = 10
	beachOKMin   = 20
	cityNearMin  = 15
)

// Config holds the calculator's fixed conversion rate. The rate is
// configuration, not a live feed: reproducible output matters more than
// intraday accuracy for a slow-moving asset class.
type Config struct {
	EURToCAD float64 `mapstructure:"eur_to_cad" yaml:"eur_to_cad"`
}

// DefaultConfig returns the default calculator configuration.
func DefaultConfig() Config {
	return Config{EURToCAD: 1.48}
}

// Inputs are the listing attributes the calculator consumes. Nil means
// unknown and is never coerced to zero.
type Inputs struct {
	Price        *float64
	AreaSqm      *float64
	Bedrooms     *int
	Region       model.Region
	BeachMinutes *float64
	CityMinutes  *float64
}

// Metrics is the calculator output. Nil fields mean "not applicable": no
// area means no price-per-m², no price means no yield.
type Metrics struct {
	PricePerSqm   *float64
	PriceCAD      *float64
	NightlyRate   *float64
	OccupancyPct  *float64
	AnnualIncome  *float64
	GrossYieldPct *float64
}

// RatesFor returns the base rates for a region, falling back to the
// conservative default for unlisted regions.
func RatesFor(region model.Region) RegionRates {
	if r, ok := regionRates[region]; ok {
		return r
	}
	return conservativeDefault
}

// Compute derives all investment metrics from the inputs. Pure function:
// identical inputs produce identical outputs.
func Compute(in Inputs, cfg Config) Metrics {
	var m Metrics

	if in.Price != nil {
		if in.AreaSqm != nil && *in.AreaSqm > 0 {
			psqm := math.Floor(*in.Price / *in.AreaSqm)
			m.PricePerSqm = &psqm
		}
		cad := math.Round(*in.Price * cfg.EURToCAD)
		m.PriceCAD = &cad
	}

	rates := RatesFor(in.Region)
	nightly := rates.NightlyBase
	occupancy := rates.OccupancyBase

	if in.Bedrooms != nil {
		switch {
		case *in.Bedrooms == 0:
			nightly -= studioNightlyCut
		case *in.Bedrooms > 1:
			nightly += float64(*in.Bedrooms-1) * bedroomNightlyStep
		}
	}

	if in.BeachMinutes != nil {
		switch {
		case *in.BeachMinutes <= beachNearMin:
			nightly += 15
			occupancy += 10
		case *in.BeachMinutes <= beachOKMin:
			nightly += 8
			occupancy += 5
		}
	}
	if in.CityMinutes != nil && *in.CityMinutes <= cityNearMin {
		nightly += 5
		occupancy += 8
	}

	occupancy = math.Min(occupancy, occupancyCeiling)
	nightly = math.Round(nightly)
	occupancy = math.Round(occupancy)
	m.NightlyRate = &nightly
	m.OccupancyPct = &occupancy

	income := math.Round(nightly * nightsPerYear * occupancy / 100)
	m.AnnualIncome = &income

	if in.Price != nil && *in.Price > 0 {
		yield := math.Round(income / *in.Price * 100 * 10) / 10
		m.GrossYieldPct = &yield
	}

	return m
}
