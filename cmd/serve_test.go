package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aegean-group/property-cli/internal/config"
	"github.com/aegean-group/property-cli/internal/model"
	"github.com/aegean-group/property-cli/internal/store"
)

func fptr(v float64) *float64 { return &v }

func testEnrichedCatalog() *model.EnrichedCatalog {
	mk := func(id string, price float64, airportMin float64, region model.Region) model.EnrichedListing {
		return model.EnrichedListing{
			Listing: model.Listing{
				ID:      id,
				Title:   "Villa " + id,
				Price:   fptr(price),
				AreaSqm: fptr(100),
			},
			Region: region,
			Airport: &model.AirportProximity{
				Code:         "CHQ",
				Name:         "Chania",
				DistanceKm:   30,
				DriveMinutes: airportMin,
			},
			Beach: &model.BeachProximity{Name: "Falassarna", DistanceKm: 5, DriveMinutes: 10},
			City:  &model.CityProximity{Name: "Chania", Population: 55000, DistanceKm: 12, DriveMinutes: 15},
		}
	}
	return &model.EnrichedCatalog{
		ScrapedDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		EnrichedAt:  time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC),
		Listings: []model.EnrichedListing{
			mk("p1", 250000, 35, "crete"),
			mk("p2", 120000, 20, "crete"),
			mk("p3", 480000, 90, "cyclades"),
		},
	}
}

// newTestRouter spins up an empty sqlite-backed router. The returned store
// is open for seeding; the test owns its lifecycle.
func newTestRouter(t *testing.T) (http.Handler, store.Store) {
	t.Helper()

	cfg = &config.Config{}

	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "serve.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))

	return buildRouter(s), s
}

func TestRouter_Health(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRouter_Catalog_NoSnapshot(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "no enriched snapshot")
}

func TestRouter_Catalog_ReturnsLatest(t *testing.T) {
	r, s := newTestRouter(t)
	_, err := s.SaveEnriched(context.Background(), testEnrichedCatalog())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/catalog", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var got model.EnrichedCatalog
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Len(t, got.Listings, 3)
	assert.Equal(t, "p1", got.Listings[0].ID)
}

func TestRouter_Snapshots(t *testing.T) {
	r, s := newTestRouter(t)
	_, err := s.SaveEnriched(context.Background(), testEnrichedCatalog())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/snapshots", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var snaps []store.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snaps))
	require.Len(t, snaps, 1)
	assert.Equal(t, store.SnapshotEnriched, snaps[0].Kind)
	assert.Equal(t, 3, snaps[0].ListingCount)
}

func TestRouter_Score_NoSnapshot(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/score", bytes.NewReader([]byte(`{}`)))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_Score_DefaultWeights(t *testing.T) {
	r, s := newTestRouter(t)
	_, err := s.SaveEnriched(context.Background(), testEnrichedCatalog())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/score", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp scoreResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 3, resp.Matched)
	require.Len(t, resp.Results, 3)
	require.NotNil(t, resp.TopPick)

	// Ranked descending.
	assert.GreaterOrEqual(t, resp.Results[0].Score, resp.Results[1].Score)
	assert.GreaterOrEqual(t, resp.Results[1].Score, resp.Results[2].Score)
	assert.Equal(t, resp.Results[0].ID, resp.TopPick.ID)
}

func TestRouter_Score_FilterAndLimit(t *testing.T) {
	r, s := newTestRouter(t)
	_, err := s.SaveEnriched(context.Background(), testEnrichedCatalog())
	require.NoError(t, err)

	body := []byte(`{"filter":{"region":"crete"},"limit":1}`)
	req := httptest.NewRequest(http.MethodPost, "/api/score", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp scoreResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 2, resp.Matched)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, model.Region("crete"), resp.Results[0].Region)
	// Top pick ignores the filter.
	require.NotNil(t, resp.TopPick)
}

func TestRouter_Score_UnknownWeight(t *testing.T) {
	r, s := newTestRouter(t)
	_, err := s.SaveEnriched(context.Background(), testEnrichedCatalog())
	require.NoError(t, err)

	body := []byte(`{"weights":{"charm":10}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/score", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "unknown weight")
}

func TestRouter_Score_NegativeWeight(t *testing.T) {
	r, s := newTestRouter(t)
	_, err := s.SaveEnriched(context.Background(), testEnrichedCatalog())
	require.NoError(t, err)

	body := []byte(`{"weights":{"price":-5}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/score", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_Score_InvalidBody(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/score", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid request body")
}
