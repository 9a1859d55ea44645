package geo

import (
	"math"

	"github.com/aegean-group/property-cli/internal/model"
)

// earthRadiusKm is the spherical-earth approximation radius. Adequate here:
// drive-time estimates downstream are themselves heuristic.
const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance between two coordinates in
// kilometers.
func Haversine(a, b model.LatLng) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// TravelProfile converts straight-line distance into an estimated drive
// time. RoadFactor inflates the straight line to a plausible road distance;
// the clamp floor means "you're basically there" and the ceiling caps
// effectively-unreachable points for display.
type TravelProfile struct {
	RoadFactor float64 `mapstructure:"road_factor" yaml:"road_factor"`
	SpeedKMH   float64 `mapstructure:"speed_kmh" yaml:"speed_kmh"`
	MinMinutes float64 `mapstructure:"min_minutes" yaml:"min_minutes"`
	MaxMinutes float64 `mapstructure:"max_minutes" yaml:"max_minutes"`
}

// Per-kind defaults: airport runs assume faster, longer roads; beach access
// assumes short, slow local roads.
var (
	DefaultAirportTravel = TravelProfile{RoadFactor: 1.3, SpeedKMH: 75, MinMinutes: 10, MaxMinutes: 240}
	DefaultBeachTravel   = TravelProfile{RoadFactor: 1.5, SpeedKMH: 45, MinMinutes: 3, MaxMinutes: 120}
	DefaultCityTravel    = TravelProfile{RoadFactor: 1.4, SpeedKMH: 65, MinMinutes: 5, MaxMinutes: 180}
)

// DriveMinutes estimates drive time for a straight-line distance.
func (p TravelProfile) DriveMinutes(distanceKm float64) float64 {
	minutes := distanceKm * p.RoadFactor / p.SpeedKMH * 60
	if minutes < p.MinMinutes {
		return p.MinMinutes
	}
	if p.MaxMinutes > 0 && minutes > p.MaxMinutes {
		return p.MaxMinutes
	}
	return minutes
}

// DefaultTravel returns the default profile for a point kind.
func DefaultTravel(kind PointKind) TravelProfile {
	switch kind {
	case KindAirport:
		return DefaultAirportTravel
	case KindBeach:
		return DefaultBeachTravel
	default:
		return DefaultCityTravel
	}
}
