// Package geo resolves chart region strings to country names and geographic
// coordinates. Resolution is a local registry lookup with pass-through
// fallback; geocoding goes to Nominatim, paced at one request per second per
// its usage policy.
package geo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nkoz/moodcharts/data"
	"github.com/nkoz/moodcharts/limiter"
	"github.com/nkoz/moodcharts/request"
	"github.com/pariz/gountries"
)

var registry = gountries.New()

// ResolveCountry maps a free-text region string to an official country name.
// Chart regions are usually ISO codes ("us", "de") but sometimes full names;
// when neither lookup matches, the original string is returned unchanged so
// the geocoder can still take a shot at it.
func ResolveCountry(region string) string {
	region = strings.TrimSpace(region)
	if len(region) == 2 || len(region) == 3 {
		if country, err := registry.FindCountryByAlpha(region); err == nil {
			return country.Name.Common
		}
	}
	if country, err := registry.FindCountryByName(strings.ToLower(region)); err == nil {
		return country.Name.Common
	}
	return region
}

// ErrNoResult means the geocoder answered but found nothing for the place.
var ErrNoResult = errors.New("no geocode result")

const geocodeDelay = time.Second

func NewGeocoder() *Geocoder {
	return &Geocoder{
		baseURL: "https://nominatim.openstreetmap.org/search",
		lim:     limiter.New("geocode-next-req", geocodeDelay),
	}
}

type Geocoder struct {
	baseURL string
	lim     *limiter.Limiter
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves one place name to coordinates. Every attempt schedules
// the pacing delay, failed ones included; an erroring service is the worst
// time to start sending requests back-to-back.
func (g *Geocoder) Geocode(ctx context.Context, place string) (lat, lon float64, err error) {
	if err := g.lim.Wait(ctx); err != nil {
		return 0, 0, err
	}
	defer g.lim.Delay()

	query := url.Values{}
	query.Set("q", place)
	query.Set("format", "json")
	query.Set("limit", "1")
	query.Set("accept-language", "en")

	header := http.Header{}
	header.Set("User-Agent", "moodcharts")

	var results []nominatimResult
	if err := request.GetJSON(ctx, g.baseURL, query, header, &results); err != nil {
		return 0, 0, err
	}

	if len(results) == 0 {
		return 0, 0, ErrNoResult
	}
	lat, err = strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad latitude '%s': %w", results[0].Lat, err)
	}
	lon, err = strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad longitude '%s': %w", results[0].Lon, err)
	}
	return lat, lon, nil
}

// Locations resolves and geocodes each distinct region. Regions that fail to
// geocode are logged and dropped; without a coordinate they are unusable for
// mapping. The output keeps the original region spelling as the join key.
func (g *Geocoder) Locations(ctx context.Context, regions []string) ([]data.CountryLocation, error) {
	var locations []data.CountryLocation
	for _, region := range regions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		region = strings.TrimSpace(region)
		if region == "" {
			continue
		}
		lookup := ResolveCountry(region)

		lat, lon, err := g.Geocode(ctx, lookup)
		if errors.Is(err, ErrNoResult) {
			log.Printf("no geocode result: %s -> %s", region, lookup)
			continue
		} else if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("error geocoding '%s': %v", region, err)
			continue
		}

		log.Printf("%s -> %s (%.4f, %.4f)", region, lookup, lat, lon)
		locations = append(locations, data.CountryLocation{
			CountryName: region,
			Latitude:    lat,
			Longitude:   lon,
		})
	}
	return locations, nil
}

// DistinctRegions collects the unique region strings appearing in chart
// data, sorted for deterministic request order.
func DistinctRegions(entries []data.ChartEntry) []string {
	seen := map[string]struct{}{}
	var regions []string
	for _, entry := range entries {
		region := strings.TrimSpace(entry.Region)
		if region == "" {
			continue
		}
		if _, ok := seen[region]; ok {
			continue
		}
		seen[region] = struct{}{}
		regions = append(regions, region)
	}
	sort.Strings(regions)
	return regions
}
