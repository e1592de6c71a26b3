// Package pipeline drives the stages in dependency order: adapters, then
// cleaning, then the three enrichments, then the aggregations, clustering,
// and the database load. Data flows strictly forward; every stage rereads
// its inputs from the data directory (memoized) and rewrites its outputs
// from scratch, so any stage can be rerun at any time.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/nkoz/moodcharts/aggregate"
	"github.com/nkoz/moodcharts/clean"
	"github.com/nkoz/moodcharts/cluster"
	"github.com/nkoz/moodcharts/data"
	"github.com/nkoz/moodcharts/dataset"
	"github.com/nkoz/moodcharts/db"
	"github.com/nkoz/moodcharts/enrich"
	"github.com/nkoz/moodcharts/geo"
	"github.com/nkoz/moodcharts/lang"
	"github.com/nkoz/moodcharts/spotify"
)

type Config struct {
	DataDir string

	// fetch
	Year   int
	Market string
	Limit  int

	// trend window
	TrendStartYear int64
	TrendEndYear   int64
	TrendMinTotal  int64

	// clustering
	Clusters int
}

func New(cfg Config) *Pipeline {
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.Year == 0 {
		cfg.Year = 2020
	}
	if cfg.Market == "" {
		cfg.Market = "US"
	}
	if cfg.Limit == 0 {
		cfg.Limit = 50
	}
	if cfg.TrendStartYear == 0 {
		cfg.TrendStartYear = aggregate.TrendStartYear
	}
	if cfg.TrendEndYear == 0 {
		cfg.TrendEndYear = aggregate.TrendEndYear
	}
	if cfg.TrendMinTotal == 0 {
		cfg.TrendMinTotal = aggregate.MinTrendTotal
	}
	if cfg.Clusters == 0 {
		cfg.Clusters = cluster.DefaultClusters
	}
	return &Pipeline{cfg: cfg}
}

type Pipeline struct {
	cfg Config
}

func (p *Pipeline) path(name string) string {
	return filepath.Join(p.cfg.DataDir, name)
}

// source checks for an input file, logging and reporting absence so the
// stage can short-circuit without erroring.
func (p *Pipeline) source(name string) (string, bool) {
	path := p.path(name)
	if !dataset.Exists(path) {
		log.Printf("missing input file: %s", path)
		return path, false
	}
	return path, true
}

// Run executes the whole pipeline in order. Only authentication failures and
// I/O on our own artifacts abort it; per-item failures inside a stage are
// logged and skipped by the stage itself.
func (p *Pipeline) Run(ctx context.Context, spo *spotify.Client, geocoder *geo.Geocoder) error {
	if err := p.Fetch(ctx, spo); err != nil {
		return fmt.Errorf("fetch error: %w", err)
	}
	if err := p.Clean(); err != nil {
		return fmt.Errorf("clean error: %w", err)
	}
	if err := p.DetectLanguages(); err != nil {
		return fmt.Errorf("language detection error: %w", err)
	}
	if err := p.GeocodeCountries(ctx, geocoder); err != nil {
		return fmt.Errorf("geocoding error: %w", err)
	}
	if err := p.AttachGenreYears(); err != nil {
		return fmt.Errorf("genre/year enrichment error: %w", err)
	}
	if err := p.Aggregate(func(string) bool { return true }); err != nil {
		return fmt.Errorf("aggregation error: %w", err)
	}
	if _, err := p.Cluster(); err != nil {
		return fmt.Errorf("clustering error: %w", err)
	}
	if err := p.Load(); err != nil {
		return fmt.Errorf("load error: %w", err)
	}
	return nil
}

// Fetch searches Spotify for tracks of the configured year and fetches
// audio features for them in batches. An empty search result is not an
// error; a failed token exchange is, and aborts before any further network
// use.
func (p *Pipeline) Fetch(ctx context.Context, spo *spotify.Client) error {
	tracks, err := spo.SearchTracksByYear(ctx, p.cfg.Year, p.cfg.Market, p.cfg.Limit)
	if err != nil {
		return err
	}
	if len(tracks) == 0 {
		log.Printf("no tracks found for year %d in market %s", p.cfg.Year, p.cfg.Market)
	}
	if err := dataset.Save(p.path(dataset.TracksFile), tracks); err != nil {
		return err
	}
	log.Printf("saved %d tracks to %s", len(tracks), dataset.TracksFile)

	seen := map[string]struct{}{}
	var ids []string
	for _, track := range tracks {
		if track.TrackID == "" {
			continue
		}
		if _, ok := seen[track.TrackID]; ok {
			continue
		}
		seen[track.TrackID] = struct{}{}
		ids = append(ids, track.TrackID)
	}

	features, err := spo.FetchAudioFeatures(ctx, ids)
	if err != nil {
		return err
	}
	if err := dataset.Save(p.path(dataset.AudioFeaturesFile), features); err != nil {
		return err
	}
	log.Printf("saved %d audio features to %s", len(features), dataset.AudioFeaturesFile)
	return nil
}

// Clean canonicalizes the Kaggle audio-features and chart exports. Either
// source being absent skips just that table.
func (p *Pipeline) Clean() error {
	if path, ok := p.source(dataset.RawAudioFeaturesFile); ok {
		raw, err := dataset.Load[data.RawAudioFeatures](path)
		if err != nil {
			return err
		}
		tracks := clean.AudioFeatures(raw)
		if err := dataset.Save(p.path(dataset.CleanFeaturesFile), tracks); err != nil {
			return err
		}
		log.Printf("cleaned audio features: %d of %d rows kept", len(tracks), len(raw))
	}

	if path, ok := p.source(dataset.RawChartsFile); ok {
		raw, err := dataset.Load[data.RawChartEntry](path)
		if err != nil {
			return err
		}
		entries := clean.Charts(raw)
		if err := dataset.Save(p.path(dataset.CleanChartsFile), entries); err != nil {
			return err
		}
		log.Printf("cleaned charts: %d of %d rows kept", len(entries), len(raw))
	}

	return nil
}

// DetectLanguages runs language detection over every fetched track title.
func (p *Pipeline) DetectLanguages() error {
	path, ok := p.source(dataset.TracksFile)
	if !ok {
		return nil
	}
	tracks, err := dataset.Load[data.SearchedTrack](path)
	if err != nil {
		return err
	}

	observations := lang.DetectAll(tracks)
	if err := dataset.Save(p.path(dataset.LangDetectFile), observations); err != nil {
		return err
	}

	known := 0
	for _, obs := range observations {
		if obs.Known() {
			known++
		}
	}
	log.Printf("detected languages for %d of %d tracks", known, len(observations))
	return nil
}

// GeocodeCountries resolves and geocodes every distinct chart region.
func (p *Pipeline) GeocodeCountries(ctx context.Context, geocoder *geo.Geocoder) error {
	path, ok := p.source(dataset.CleanChartsFile)
	if !ok {
		return nil
	}
	entries, err := dataset.Load[data.ChartEntry](path)
	if err != nil {
		return err
	}

	regions := geo.DistinctRegions(entries)
	locations, err := geocoder.Locations(ctx, regions)
	if err != nil {
		return err
	}
	if err := dataset.Save(p.path(dataset.CountryUtilsFile), locations); err != nil {
		return err
	}
	log.Printf("geocoded %d of %d regions", len(locations), len(regions))
	return nil
}

// AttachGenreYears rewrites the cleaned charts with genre labels joined by
// (title, artist) name and years derived from chart dates.
func (p *Pipeline) AttachGenreYears() error {
	chartsPath, ok := p.source(dataset.CleanChartsFile)
	if !ok {
		return nil
	}
	featuresPath, ok := p.source(dataset.CleanFeaturesFile)
	if !ok {
		return nil
	}

	entries, err := dataset.Load[data.ChartEntry](chartsPath)
	if err != nil {
		return err
	}
	tracks, err := dataset.Load[data.Track](featuresPath)
	if err != nil {
		return err
	}

	enriched := enrich.AttachGenres(entries, tracks)
	return dataset.Save(chartsPath, enriched)
}

// Aggregate runs the selected reductions. Each one independently
// short-circuits when its inputs are missing.
func (p *Pipeline) Aggregate(selected func(string) bool) error {
	if selected("genre_trends") {
		if err := p.aggregateGenreTrends(); err != nil {
			return err
		}
	}
	if selected("mood") {
		if err := p.aggregateMood(); err != nil {
			return err
		}
	}
	if selected("entropy") {
		if err := p.aggregateEntropy(); err != nil {
			return err
		}
	}
	if selected("artist_counts") {
		if err := p.aggregateArtistCounts(); err != nil {
			return err
		}
	}
	if selected("region_trends") {
		if err := p.aggregateRegionTrends(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) aggregateGenreTrends() error {
	featuresPath, ok := p.source(dataset.CleanFeaturesFile)
	if !ok {
		return nil
	}
	tracksPath, ok := p.source(dataset.TracksFile)
	if !ok {
		return nil
	}

	tracks, err := dataset.Load[data.Track](featuresPath)
	if err != nil {
		return err
	}
	releases, err := dataset.Load[data.SearchedTrack](tracksPath)
	if err != nil {
		return err
	}

	counts := aggregate.GenreYearCounts(enrich.ReleaseYears(tracks, releases))
	if err := dataset.Save(p.path(dataset.GenreTrendsFile), counts); err != nil {
		return err
	}
	log.Printf("saved %d genre-year counts to %s", len(counts), dataset.GenreTrendsFile)
	return nil
}

func (p *Pipeline) aggregateMood() error {
	path, ok := p.source(dataset.CleanFeaturesFile)
	if !ok {
		return nil
	}
	tracks, err := dataset.Load[data.Track](path)
	if err != nil {
		return err
	}

	profiles := aggregate.MoodByGenre(tracks)
	if err := dataset.Save(p.path(dataset.MoodByGenreFile), profiles); err != nil {
		return err
	}
	log.Printf("saved mood profiles for %d genres to %s", len(profiles), dataset.MoodByGenreFile)
	return nil
}

func (p *Pipeline) aggregateEntropy() error {
	chartsPath, ok := p.source(dataset.CleanChartsFile)
	if !ok {
		return nil
	}
	langPath, ok := p.source(dataset.LangDetectFile)
	if !ok {
		return nil
	}

	entries, err := dataset.Load[data.ChartEntry](chartsPath)
	if err != nil {
		return err
	}
	observations, err := dataset.Load[data.LanguageObservation](langPath)
	if err != nil {
		return err
	}

	stats := aggregate.RegionEntropy(entries, observations)
	if err := dataset.Save(p.path(dataset.LanguageEntropyFile), stats); err != nil {
		return err
	}
	log.Printf("saved entropy scores for %d regions to %s", len(stats), dataset.LanguageEntropyFile)
	return nil
}

func (p *Pipeline) aggregateArtistCounts() error {
	chartsPath, ok := p.source(dataset.CleanChartsFile)
	if !ok {
		return nil
	}
	countryPath, ok := p.source(dataset.CountryUtilsFile)
	if !ok {
		return nil
	}

	entries, err := dataset.Load[data.ChartEntry](chartsPath)
	if err != nil {
		return err
	}
	locations, err := dataset.Load[data.CountryLocation](countryPath)
	if err != nil {
		return err
	}

	counts := aggregate.ArtistCountsByCountry(entries, locations)
	if err := dataset.Save(p.path(dataset.ArtistCountsFile), counts); err != nil {
		return err
	}
	log.Printf("saved artist counts for %d countries to %s", len(counts), dataset.ArtistCountsFile)
	return nil
}

func (p *Pipeline) aggregateRegionTrends() error {
	path, ok := p.source(dataset.CleanChartsFile)
	if !ok {
		return nil
	}
	entries, err := dataset.Load[data.ChartEntry](path)
	if err != nil {
		return err
	}

	trends := aggregate.GenreTrends(entries, p.cfg.TrendStartYear, p.cfg.TrendEndYear, p.cfg.TrendMinTotal)
	if err := dataset.Save(p.path(dataset.RegionTrendsFile), trends); err != nil {
		return err
	}
	log.Printf("saved %d region genre trends to %s", len(trends), dataset.RegionTrendsFile)
	return nil
}

// Cluster fits the k-means mood clusters over the genre profiles and returns
// the fitted model so callers can classify ad-hoc mood vectors against it.
// The model is nil when the profile file is missing.
func (p *Pipeline) Cluster() (*cluster.Model, error) {
	path, ok := p.source(dataset.MoodByGenreFile)
	if !ok {
		return nil, nil
	}
	profiles, err := dataset.Load[data.GenreMoodProfile](path)
	if err != nil {
		return nil, err
	}

	model, err := cluster.Fit(profiles, p.cfg.Clusters)
	if err != nil {
		return nil, err
	}
	assignments := model.Assignments()
	if err := dataset.Save(p.path(dataset.GenreClustersFile), assignments); err != nil {
		return nil, err
	}
	log.Printf("clustered %d genres into %d groups", len(assignments), p.cfg.Clusters)
	return model, nil
}

// Load builds the analytical store: create the schema, load each table only
// if it is empty, then apply the dashboard views.
func (p *Pipeline) Load() error {
	store, err := db.Open(p.path(dataset.DatabaseFile))
	if err != nil {
		return err
	}
	defer store.Close()

	if path, ok := p.source(dataset.CleanFeaturesFile); ok {
		rows, err := dataset.Load[data.Track](path)
		if err != nil {
			return err
		}
		if err := db.LoadIfEmpty(store, "audio_features", rows); err != nil {
			return err
		}
	}
	if path, ok := p.source(dataset.CleanChartsFile); ok {
		rows, err := dataset.Load[data.ChartEntry](path)
		if err != nil {
			return err
		}
		if err := db.LoadIfEmpty(store, "charts", rows); err != nil {
			return err
		}
	}
	if path, ok := p.source(dataset.CountryUtilsFile); ok {
		rows, err := dataset.Load[data.CountryLocation](path)
		if err != nil {
			return err
		}
		if err := db.LoadIfEmpty(store, "country_utils", rows); err != nil {
			return err
		}
	}
	if path, ok := p.source(dataset.LangDetectFile); ok {
		rows, err := dataset.Load[data.LanguageObservation](path)
		if err != nil {
			return err
		}
		if err := db.LoadIfEmpty(store, "lang_detect", rows); err != nil {
			return err
		}
	}

	store.ApplyViews()
	return nil
}
