// Package model defines the listing record types shared across the pipeline.
package model

import "time"

// Region identifies one coarse geographic bucket. The closed set lives in
// internal/geo; OtherRegion is the catch-all for unmatched listings.
type Region string

// OtherRegion is returned by the classifier when no rule matches.
const OtherRegion Region = "other"

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Listing is one raw property record as produced by the scrape stage.
// Pointer fields distinguish "unknown" from legitimate zero values: a nil
// Bedrooms means the source did not say, while 0 means a studio.
type Listing struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Price        *float64 `json:"price"`    // EUR
	AreaSqm      *float64 `json:"area_sqm"` // floor area in m²
	Bedrooms     *int     `json:"bedrooms"`
	Coordinates  *LatLng  `json:"coordinates,omitempty"`
	Address      string   `json:"address"`
	Features     []string `json:"features,omitempty"`
	PropertyType string   `json:"property_type"`
	Source       string   `json:"source"`
	URL          string   `json:"url"`
	ImageURL     string   `json:"image_url,omitempty"`
	AreaPhotos   []string `json:"area_photos,omitempty"`
}

// HasCoordinates reports whether the listing can be geo-enriched.
func (l *Listing) HasCoordinates() bool {
	return l.Coordinates != nil
}

// AirportProximity describes the nearest airport to a listing.
type AirportProximity struct {
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	DistanceKm   float64 `json:"distance_km"`
	DriveMinutes float64 `json:"drive_minutes"`
}

// BeachProximity describes the nearest beach to a listing.
type BeachProximity struct {
	Name         string  `json:"name"`
	DistanceKm   float64 `json:"distance_km"`
	DriveMinutes float64 `json:"drive_minutes"`
}

// CityProximity describes the nearest population center to a listing.
type CityProximity struct {
	Name         string  `json:"name"`
	Population   int     `json:"population"`
	DistanceKm   float64 `json:"distance_km"`
	DriveMinutes float64 `json:"drive_minutes"`
}

// EnrichedListing is a Listing plus geospatial proximity, region, and
// rental-economics estimates. The three proximity blocks populate together
// or stay nil together: a listing without coordinates carries explicit
// unknowns, never fabricated distances.
type EnrichedListing struct {
	Listing

	Airport *AirportProximity `json:"airport,omitempty"`
	Beach   *BeachProximity   `json:"beach,omitempty"`
	City    *CityProximity    `json:"city,omitempty"`

	Region          Region `json:"region"`
	NeedsRenovation bool   `json:"needs_renovation"`

	PricePerSqm   *float64 `json:"price_per_sqm,omitempty"`  // floor(price/area), EUR
	PriceCAD      *float64 `json:"price_cad,omitempty"`      // fixed-rate conversion
	NightlyRate   *float64 `json:"nightly_rate,omitempty"`   // EUR per night
	OccupancyPct  *float64 `json:"occupancy_pct,omitempty"`  // 0-100
	AnnualIncome  *float64 `json:"annual_income,omitempty"`  // EUR per year
	GrossYieldPct *float64 `json:"gross_yield_pct,omitempty"` // one decimal
}

// GeoEnriched reports whether the proximity block was populated.
func (e *EnrichedListing) GeoEnriched() bool {
	return e.Airport != nil && e.Beach != nil && e.City != nil
}

// WeightVector holds the six user-tunable scoring weights. Weights are
// arbitrary non-negative reals; only their ratios matter. An all-zero
// vector is legal and collapses every score to 0.
type WeightVector struct {
	Price      float64 `json:"price"`
	Airport    float64 `json:"airport"`
	Beach      float64 `json:"beach"`
	Size       float64 `json:"size"`
	Yield      float64 `json:"yield"`
	Renovation float64 `json:"renovation"`
}

// Sum returns the total weight.
func (w WeightVector) Sum() float64 {
	return w.Price + w.Airport + w.Beach + w.Size + w.Yield + w.Renovation
}

// ScoredListing pairs an enriched listing with its catalog-relative score.
// Scores are recomputed on every weight change and never persisted.
type ScoredListing struct {
	EnrichedListing
	Score      float64            `json:"score"` // 0-100
	Components map[string]float64 `json:"component_scores"`
}

// FilterCriteria is a pure predicate over enriched listings. Zero values
// mean "no constraint".
type FilterCriteria struct {
	Region            Region   `json:"region,omitempty"`
	MaxPrice          *float64 `json:"max_price,omitempty"`
	MaxAirportMinutes *float64 `json:"max_airport_minutes,omitempty"`
}

// Matches reports whether the listing satisfies every set criterion.
// Listings with an unknown value for a constrained attribute do not match.
func (f FilterCriteria) Matches(e *EnrichedListing) bool {
	if f.Region != "" && e.Region != f.Region {
		return false
	}
	if f.MaxPrice != nil {
		if e.Price == nil || *e.Price > *f.MaxPrice {
			return false
		}
	}
	if f.MaxAirportMinutes != nil {
		if e.Airport == nil || e.Airport.DriveMinutes > *f.MaxAirportMinutes {
			return false
		}
	}
	return true
}

// RegionInfo carries display metadata for one region bucket, mirrored from
// the scraped catalog document.
type RegionInfo struct {
	Name           string  `json:"name"`
	AirportCode    string  `json:"airport_code,omitempty"`
	AirportMinutes float64 `json:"airport_drive_min,omitempty"`
	AvgPriceSqm    float64 `json:"avg_price_sqm,omitempty"`
	YieldMid       float64 `json:"rental_yield_mid,omitempty"`
}

// Catalog is the flat document exchanged with the scrape stage and the
// persistence layer.
type Catalog struct {
	ScrapedDate time.Time             `json:"scraped_date"`
	Regions     map[Region]RegionInfo `json:"regions,omitempty"`
	Listings    []Listing             `json:"properties"`
}

// EnrichedCatalog is a Catalog after the enrichment pass.
type EnrichedCatalog struct {
	ScrapedDate time.Time             `json:"scraped_date"`
	EnrichedAt  time.Time             `json:"enriched_at"`
	Regions     map[Region]RegionInfo `json:"regions,omitempty"`
	Listings    []EnrichedListing     `json:"properties"`
}
