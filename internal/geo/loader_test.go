package geo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.yaml")
	doc := `airports:
  - code: CFU
    name: Corfu International
    lat: 39.6019
    lng: 19.9117
    year_round: true
  - code: EFL
    name: Cephalonia International
    lat: 38.1201
    lng: 20.5005
beaches:
  - name: Glyfada Beach
    lat: 39.6423
    lng: 19.7083
cities:
  - name: Corfu Town
    lat: 39.6243
    lng: 19.9217
    population: 32000
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	airports, beaches, cities, err := LoadYAML(path)
	require.NoError(t, err)

	assert.Equal(t, 2, airports.Len())
	assert.Equal(t, 1, beaches.Len())
	assert.Equal(t, 1, cities.Len())

	pts := airports.Points()
	assert.Equal(t, "CFU", pts[0].Code)
	assert.True(t, pts[0].YearRound)
	assert.False(t, pts[1].YearRound)
	assert.Equal(t, KindAirport, pts[0].Kind)

	assert.Equal(t, 32000, cities.Points()[0].Population)
}

func TestLoadYAML_MissingSectionFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.yaml")
	doc := `airports:
  - code: JSI
    name: Skiathos
    lat: 39.1771
    lng: 23.5037
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	airports, beaches, cities, err := LoadYAML(path)
	require.NoError(t, err)

	assert.Equal(t, 1, airports.Len())
	assert.Equal(t, DefaultBeaches().Len(), beaches.Len())
	assert.Equal(t, DefaultCities().Len(), cities.Len())
}

func TestLoadYAML_BadFile(t *testing.T) {
	_, _, _, err := LoadYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("airports: {not: [a, list"), 0o644))
	_, _, _, err = LoadYAML(path)
	require.Error(t, err)
}
