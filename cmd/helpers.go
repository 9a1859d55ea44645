package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/aegean-group/property-cli/internal/config"
	"github.com/aegean-group/property-cli/internal/enrich"
	"github.com/aegean-group/property-cli/internal/estimate"
	"github.com/aegean-group/property-cli/internal/geo"
	"github.com/aegean-group/property-cli/internal/model"
	"github.com/aegean-group/property-cli/internal/scorer"
	"github.com/aegean-group/property-cli/internal/store"
)

// openStore builds the configured store backend and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	var (
		s   store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "sqlite", "":
		s, err = store.NewSQLite(cfg.Store.DatabaseURL)
	case "postgres":
		s, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL, cfg.Store.Pool)
	default:
		return nil, eris.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// loadReferenceSets returns the three reference sets, from the configured
// YAML file when set, otherwise the built-in Greek tables.
func loadReferenceSets() (airports, beaches, cities *geo.ReferenceSet, err error) {
	if cfg.Reference.YAMLPath != "" {
		return geo.LoadYAML(cfg.Reference.YAMLPath)
	}
	return geo.DefaultAirports(), geo.DefaultBeaches(), geo.DefaultCities(), nil
}

// newEnricher wires the configured reference data and heuristics into an
// enrichment pass.
func newEnricher() (*enrich.Enricher, error) {
	airports, beaches, cities, err := loadReferenceSets()
	if err != nil {
		return nil, err
	}
	return enrich.New(airports, beaches, cities, enrich.Options{
		AirportTravel: cfg.Travel.Airport,
		BeachTravel:   cfg.Travel.Beach,
		CityTravel:    cfg.Travel.City,
		Estimate:      estimate.Config{EURToCAD: cfg.Estimate.EURToCAD},
		Concurrency:   cfg.Enrich.Concurrency,
	})
}

// weightsFromConfig converts the config weight map into a vector, falling
// back to the stock weights for missing keys.
func weightsFromConfig(c config.ScoreConfig) model.WeightVector {
	w := scorer.DefaultWeights()
	if c.Weights == nil {
		return w
	}
	if v, ok := c.Weights[scorer.ComponentPrice]; ok {
		w.Price = v
	}
	if v, ok := c.Weights[scorer.ComponentAirport]; ok {
		w.Airport = v
	}
	if v, ok := c.Weights[scorer.ComponentBeach]; ok {
		w.Beach = v
	}
	if v, ok := c.Weights[scorer.ComponentSize]; ok {
		w.Size = v
	}
	if v, ok := c.Weights[scorer.ComponentYield]; ok {
		w.Yield = v
	}
	if v, ok := c.Weights[scorer.ComponentRenovation]; ok {
		w.Renovation = v
	}
	return w
}
