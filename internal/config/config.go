package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aegean-group/property-cli/internal/geo"
	"github.com/aegean-group/property-cli/internal/store"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Feed      FeedConfig      `yaml:"feed" mapstructure:"feed"`
	Reference ReferenceConfig `yaml:"reference" mapstructure:"reference"`
	Travel    TravelConfig    `yaml:"travel" mapstructure:"travel"`
	Estimate  EstimateConfig  `yaml:"estimate" mapstructure:"estimate"`
	Enrich    EnrichConfig    `yaml:"enrich" mapstructure:"enrich"`
	Score     ScoreConfig     `yaml:"score" mapstructure:"score"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string            `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string            `yaml:"database_url" mapstructure:"database_url"`
	Pool        *store.PoolConfig `yaml:"pool" mapstructure:"pool"`
}

// FeedConfig configures the scraper export feed.
type FeedConfig struct {
	URL         string  `yaml:"url" mapstructure:"url"`
	UserAgent   string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int     `yaml:"max_retries" mapstructure:"max_retries"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// ReferenceConfig points at optional external reference data. Empty paths
// fall back to the built-in Greek reference tables.
type ReferenceConfig struct {
	YAMLPath       string `yaml:"yaml_path" mapstructure:"yaml_path"`
	BeachShapefile string `yaml:"beach_shapefile" mapstructure:"beach_shapefile"`
}

// TravelConfig holds the per-kind drive-time heuristics.
type TravelConfig struct {
	Airport geo.TravelProfile `yaml:"airport" mapstructure:"airport"`
	Beach   geo.TravelProfile `yaml:"beach" mapstructure:"beach"`
	City    geo.TravelProfile `yaml:"city" mapstructure:"city"`
}

// EstimateConfig configures the investment metrics calculator.
type EstimateConfig struct {
	EURToCAD float64 `yaml:"eur_to_cad" mapstructure:"eur_to_cad"`
}

// EnrichConfig configures the enrichment pass.
type EnrichConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// ScoreConfig holds the default scoring weights.
type ScoreConfig struct {
	Weights map[string]float64 `yaml:"weights" mapstructure:"weights"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PROPERTY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "property.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("feed.timeout_secs", 30)
	v.SetDefault("feed.max_retries", 3)
	v.SetDefault("feed.rate_limit", 2)
	v.SetDefault("enrich.concurrency", 4)
	v.SetDefault("estimate.eur_to_cad", 1.48)
	v.SetDefault("travel.airport.road_factor", geo.DefaultAirportTravel.RoadFactor)
	v.SetDefault("travel.airport.speed_kmh", geo.DefaultAirportTravel.SpeedKMH)
	v.SetDefault("travel.airport.min_minutes", geo.DefaultAirportTravel.MinMinutes)
	v.SetDefault("travel.airport.max_minutes", geo.DefaultAirportTravel.MaxMinutes)
	v.SetDefault("travel.beach.road_factor", geo.DefaultBeachTravel.RoadFactor)
	v.SetDefault("travel.beach.speed_kmh", geo.DefaultBeachTravel.SpeedKMH)
	v.SetDefault("travel.beach.min_minutes", geo.DefaultBeachTravel.MinMinutes)
	v.SetDefault("travel.beach.max_minutes", geo.DefaultBeachTravel.MaxMinutes)
	v.SetDefault("travel.city.road_factor", geo.DefaultCityTravel.RoadFactor)
	v.SetDefault("travel.city.speed_kmh", geo.DefaultCityTravel.SpeedKMH)
	v.SetDefault("travel.city.min_minutes", geo.DefaultCityTravel.MinMinutes)
	v.SetDefault("travel.city.max_minutes", geo.DefaultCityTravel.MaxMinutes)
	v.SetDefault("score.weights", map[string]float64{
		"price":      25,
		"airport":    20,
		"beach":      20,
		"size":       15,
		"yield":      15,
		"renovation": 5,
	})

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
