// Package dataset reads and writes the pipeline's CSV artifacts. Loads are
// memoized by path for the life of the process; every run starts fresh, so
// there is no invalidation.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"
)

// File names of every artifact under the data directory. The aggregated
// outputs and music.db are the contract with the dashboard layer.
const (
	TracksFile           = "tracks.csv"
	AudioFeaturesFile    = "audio_features.csv"
	RawAudioFeaturesFile = "audio_features_kaggle.csv"
	CleanFeaturesFile    = "audio_features_cleaned.csv"
	RawChartsFile        = "charts_kaggle.csv"
	CleanChartsFile      = "charts_clean.csv"
	LangDetectFile       = "lang_detect.csv"
	CountryUtilsFile     = "country_utils.csv"
	MoodByGenreFile      = "mood_by_genre.csv"
	GenreTrendsFile      = "genre_trends.csv"
	LanguageEntropyFile  = "language_entropy.csv"
	ArtistCountsFile     = "artist_counts_by_country.csv"
	RegionTrendsFile     = "genre_trends_by_region.csv"
	GenreClustersFile    = "genre_clusters.csv"
	DatabaseFile         = "music.db"
)

var (
	mu   sync.Mutex
	memo = map[string]any{}
)

// Exists reports whether a source file is present; stages use this to
// short-circuit with a logged message instead of erroring.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Load parses the CSV at path into rows of T, serving repeat loads of the
// same path from memory.
func Load[T any](path string) ([]T, error) {
	mu.Lock()
	defer mu.Unlock()

	// a cached entry of a different row type (same path loaded two ways)
	// falls through to a re-parse instead of panicking
	if rows, ok := memo[path].([]T); ok {
		return rows, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening '%s': %w", path, err)
	}
	defer f.Close()

	var rows []T
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("error parsing csv '%s': %w", path, err)
	}

	memo[path] = rows
	return rows, nil
}

// Save writes rows as CSV at path, creating the directory if necessary, and
// replaces any memoized copy.
func Save[T any](path string, rows []T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating directory for '%s': %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating '%s': %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("error writing csv '%s': %w", path, err)
	}

	mu.Lock()
	memo[path] = rows
	mu.Unlock()

	return nil
}
