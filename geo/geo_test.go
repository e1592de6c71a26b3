package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/nkoz/moodcharts/data"
	"github.com/nkoz/moodcharts/limiter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCountry(t *testing.T) {
	assert.Equal(t, "Germany", ResolveCountry("de"))
	assert.Equal(t, "United States", ResolveCountry("us"))
	assert.Equal(t, "France", ResolveCountry("France"))
}

func TestResolveCountryFallsThroughUnchanged(t *testing.T) {
	// An unresolvable region is passed to the geocoder as-is, not an error.
	assert.Equal(t, "global", ResolveCountry("global"))
	assert.Equal(t, "Middle Earth", ResolveCountry("Middle Earth"))
}

func testGeocoder(t *testing.T, handler http.HandlerFunc) *Geocoder {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Geocoder{
		baseURL: srv.URL,
		lim:     limiter.New(filepath.Join(t.TempDir(), "next-req"), 0),
	}
}

func TestGeocode(t *testing.T) {
	g := testGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Germany", r.URL.Query().Get("q"))
		json.NewEncoder(w).Encode([]map[string]string{
			{"lat": "51.1657", "lon": "10.4515"},
		})
	})

	lat, lon, err := g.Geocode(context.Background(), "Germany")
	require.NoError(t, err)
	assert.Equal(t, 51.1657, lat)
	assert.Equal(t, 10.4515, lon)
}

func TestGeocodeNoResult(t *testing.T) {
	g := testGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]string{})
	})

	_, _, err := g.Geocode(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestGeocodePacesFailedRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	delay := 50 * time.Millisecond
	g := &Geocoder{
		baseURL: srv.URL,
		lim:     limiter.New(filepath.Join(t.TempDir(), "next-req"), delay),
	}

	start := time.Now()
	for _, region := range []string{"de", "us", "ar"} {
		_, _, err := g.Geocode(context.Background(), region)
		require.Error(t, err)
	}
	// three failing attempts still wait out two pacing delays between them
	assert.GreaterOrEqual(t, time.Since(start), 2*delay)
}

func TestLocationsDropsFailuresAndKeepsRegionSpelling(t *testing.T) {
	g := testGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "global" {
			json.NewEncoder(w).Encode([]map[string]string{})
			return
		}
		json.NewEncoder(w).Encode([]map[string]string{
			{"lat": "1.5", "lon": "2.5"},
		})
	})

	locations, err := g.Locations(context.Background(), []string{"de", "global"})
	require.NoError(t, err)
	require.Len(t, locations, 1)
	// the original chart spelling stays the join key, not "Germany"
	assert.Equal(t, "de", locations[0].CountryName)
	assert.Equal(t, 1.5, locations[0].Latitude)
}

func TestDistinctRegions(t *testing.T) {
	entries := []data.ChartEntry{
		{Region: "us"}, {Region: "de"}, {Region: "us"}, {Region: " "}, {Region: "ar"},
	}
	assert.Equal(t, []string{"ar", "de", "us"}, DistinctRegions(entries))
}
