// Package enrich runs the one-shot ingestion pass that attaches geospatial
// proximity, region, and investment estimates to raw listings.
package enrich

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aegean-group/property-cli/internal/estimate"
	"github.com/aegean-group/property-cli/internal/geo"
	"github.com/aegean-group/property-cli/internal/model"
)

// renovationKeywords mark a listing as needing work when found in the
// title or feature tags. Matching is case-insensitive substring, same as
// every other text rule in the pipeline.
var renovationKeywords = []string{
	"renovation", "renovate", "needs work", "fixer", "restore",
	"restoration", "unfinished", "to be completed", "in need of repair",
}

// Options configures an Enricher.
type Options struct {
	AirportTravel geo.TravelProfile
	BeachTravel   geo.TravelProfile
	CityTravel    geo.TravelProfile
	Estimate      estimate.Config
	Concurrency   int // listings enriched in parallel; <=0 means 4
}

// DefaultOptions returns the default enrichment options.
func DefaultOptions() Options {
	return Options{
		AirportTravel: geo.DefaultAirportTravel,
		BeachTravel:   geo.DefaultBeachTravel,
		CityTravel:    geo.DefaultCityTravel,
		Estimate:      estimate.DefaultConfig(),
		Concurrency:   4,
	}
}

// Enricher joins the reference index, region classifier, and metrics
// calculator into a single deterministic pass over a catalog.
type Enricher struct {
	airports *geo.ReferenceSet
	beaches  *geo.ReferenceSet
	cities   *geo.ReferenceSet
	opts     Options
}

// New creates an Enricher. All three reference sets must be non-empty;
// enrichment against an empty set is a configuration error, not a
// per-listing condition.
func New(airports, beaches, cities *geo.ReferenceSet, opts Options) (*Enricher, error) {
	if airports == nil || airports.Len() == 0 {
		return nil, eris.Wrap(geo.ErrEmptyReferenceSet, "enrich: airports")
	}
	if beaches == nil || beaches.Len() == 0 {
		return nil, eris.Wrap(geo.ErrEmptyReferenceSet, "enrich: beaches")
	}
	if cities == nil || cities.Len() == 0 {
		return nil, eris.Wrap(geo.ErrEmptyReferenceSet, "enrich: cities")
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	return &Enricher{airports: airports, beaches: beaches, cities: cities, opts: opts}, nil
}

// Enrich produces the enriched record for one listing. Listings without
// coordinates keep nil proximity blocks (explicit unknowns, never default
// distances) and still get region from address text plus estimates.
func (e *Enricher) Enrich(l model.Listing) (model.EnrichedListing, error) {
	out := model.EnrichedListing{Listing: l}

	var coord *model.LatLng
	if l.HasCoordinates() {
		coord = l.Coordinates
	}
	out.Region = geo.Classify(l.Address+" "+l.Title, coord)
	out.NeedsRenovation = needsRenovation(l)

	var beachMin, cityMin *float64
	if coord != nil {
		airport, err := e.airports.Nearest(*coord)
		if err != nil {
			return out, eris.Wrapf(err, "enrich: listing %s", l.ID)
		}
		beach, err := e.beaches.Nearest(*coord)
		if err != nil {
			return out, eris.Wrapf(err, "enrich: listing %s", l.ID)
		}
		city, err := e.cities.Nearest(*coord)
		if err != nil {
			return out, eris.Wrapf(err, "enrich: listing %s", l.ID)
		}

		out.Airport = &model.AirportProximity{
			Code:         airport.Point.Code,
			Name:         airport.Point.Name,
			DistanceKm:   round1(airport.DistanceKm),
			DriveMinutes: round1(e.opts.AirportTravel.DriveMinutes(airport.DistanceKm)),
		}
		out.Beach = &model.BeachProximity{
			Name:         beach.Point.Name,
			DistanceKm:   round1(beach.DistanceKm),
			DriveMinutes: round1(e.opts.BeachTravel.DriveMinutes(beach.DistanceKm)),
		}
		out.City = &model.CityProximity{
			Name:         city.Point.Name,
			Population:   city.Point.Population,
			DistanceKm:   round1(city.DistanceKm),
			DriveMinutes: round1(e.opts.CityTravel.DriveMinutes(city.DistanceKm)),
		}
		beachMin = &out.Beach.DriveMinutes
		cityMin = &out.City.DriveMinutes
	}

	metrics := estimate.Compute(estimate.Inputs{
		Price:        l.Price,
		AreaSqm:      l.AreaSqm,
		Bedrooms:     l.Bedrooms,
		Region:       out.Region,
		BeachMinutes: beachMin,
		CityMinutes:  cityMin,
	}, e.opts.Estimate)

	out.PricePerSqm = metrics.PricePerSqm
	out.PriceCAD = metrics.PriceCAD
	out.NightlyRate = metrics.NightlyRate
	out.OccupancyPct = metrics.OccupancyPct
	out.AnnualIncome = metrics.AnnualIncome
	out.GrossYieldPct = metrics.GrossYieldPct

	return out, nil
}

// EnrichCatalog enriches every listing in the catalog. Listings are
// independent, so the pass fans out across a bounded worker group; output
// order matches input order regardless of completion order.
func (e *Enricher) EnrichCatalog(ctx context.Context, c *model.Catalog) (*model.EnrichedCatalog, error) {
	if c == nil {
		return nil, eris.New("enrich: nil catalog")
	}

	out := &model.EnrichedCatalog{
		ScrapedDate: c.ScrapedDate,
		EnrichedAt:  time.Now().UTC(),
		Regions:     c.Regions,
		Listings:    make([]model.EnrichedListing, len(c.Listings)),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Concurrency)
	for i := range c.Listings {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			enriched, err := e.Enrich(c.Listings[i])
			if err != nil {
				return err
			}
			out.Listings[i] = enriched
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "enrich: catalog pass")
	}

	var geoEnriched int
	for i := range out.Listings {
		if out.Listings[i].GeoEnriched() {
			geoEnriched++
		}
	}
	zap.L().Info("enrich: catalog pass complete",
		zap.Int("listings", len(out.Listings)),
		zap.Int("geo_enriched", geoEnriched),
	)
	return out, nil
}

// needsRenovation reports whether the listing's title or feature tags
// carry a renovation keyword.
func needsRenovation(l model.Listing) bool {
	var sb strings.Builder
	sb.WriteString(strings.ToLower(l.Title))
	for _, f := range l.Features {
		sb.WriteString(" ")
		sb.WriteString(strings.ToLower(f))
	}
	text := sb.String()
	for _, kw := range renovationKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
