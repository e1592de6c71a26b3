package aggregate_test

import (
	"math"
	"testing"

	"github.com/nkoz/moodcharts/aggregate"
	"github.com/nkoz/moodcharts/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntropySingleLanguageIsZero(t *testing.T) {
	assert.Equal(t, 0.0, aggregate.Entropy(map[string]int64{"en": 42}))
}

func TestEntropyEqualProportionsIsLog2K(t *testing.T) {
	for k := 2; k <= 8; k++ {
		counts := map[string]int64{}
		for i := 0; i < k; i++ {
			counts[string(rune('a'+i))] = 10
		}
		assert.InDelta(t, math.Log2(float64(k)), aggregate.Entropy(counts), 1e-9)
	}
}

func TestEntropyIsNonNegative(t *testing.T) {
	distributions := []map[string]int64{
		{},
		{"en": 1},
		{"en": 99, "de": 1},
		{"en": 3, "de": 2, "fr": 1, "unknown": 7},
	}
	for _, counts := range distributions {
		assert.GreaterOrEqual(t, aggregate.Entropy(counts), 0.0)
	}
}

func TestRegionEntropy(t *testing.T) {
	observations := []data.LanguageObservation{
		{TrackName: "Sol", ArtistName: "A", Language: "es"},
		{TrackName: "Mond", ArtistName: "B", Language: "de"},
		{TrackName: "Sun", ArtistName: "C", Language: "en"},
	}
	entries := []data.ChartEntry{
		// "mixed" charts two languages equally, "mono" charts one
		{TrackName: "Sol", ArtistName: "A", Region: "mixed"},
		{TrackName: "Mond", ArtistName: "B", Region: "mixed"},
		{TrackName: "Sun", ArtistName: "C", Region: "mono"},
		{TrackName: "Sun", ArtistName: "C", Region: "mono"},
		// no language observation: excluded from the join
		{TrackName: "Ghost", ArtistName: "X", Region: "mono"},
		// no region: dropped
		{TrackName: "Sol", ArtistName: "A", Region: ""},
	}

	stats := aggregate.RegionEntropy(entries, observations)
	require.Len(t, stats, 2)

	// ranked descending by entropy
	assert.Equal(t, "mixed", stats[0].Region)
	assert.InDelta(t, 1.0, stats[0].EntropyScore, 1e-9)
	assert.Equal(t, int64(2), stats[0].TotalTracks)
	assert.Equal(t, int64(2), stats[0].UniqueLanguages)

	assert.Equal(t, "mono", stats[1].Region)
	assert.Equal(t, 0.0, stats[1].EntropyScore)
	assert.Equal(t, int64(2), stats[1].TotalTracks)
	assert.Equal(t, int64(1), stats[1].UniqueLanguages)
}
