package enrich_test

import (
	"testing"

	"github.com/nkoz/moodcharts/data"
	"github.com/nkoz/moodcharts/enrich"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseYears(t *testing.T) {
	tracks := []data.Track{
		{TrackID: "1", Genre: "pop"},
		{TrackID: "2", Genre: "pop"},
		{TrackID: "3", Genre: ""},     // no genre: dropped
		{TrackID: "4", Genre: "rock"}, // no release date: dropped
		{TrackID: "5", Genre: "rock"}, // unparseable date: dropped
		{TrackID: "6", Genre: "rock"}, // digits but not a year: dropped
	}
	releases := []data.SearchedTrack{
		{TrackID: "1", ReleaseDate: "2020-03-01"},
		{TrackID: "2", ReleaseDate: "2020"},
		{TrackID: "3", ReleaseDate: "2019-01-01"},
		{TrackID: "5", ReleaseDate: "sometime"},
		{TrackID: "6", ReleaseDate: "20200101"},
	}

	rows := enrich.ReleaseYears(tracks, releases)
	require.Len(t, rows, 2)
	assert.Equal(t, enrich.TrackRelease{TrackID: "1", Genre: "pop", Year: 2020}, rows[0])
	assert.Equal(t, enrich.TrackRelease{TrackID: "2", Genre: "pop", Year: 2020}, rows[1])
}

func TestAttachGenres(t *testing.T) {
	entries := []data.ChartEntry{
		{TrackName: "Sol", ArtistName: "A", Date: "2020-05-01", Region: "de"},
		{TrackName: "Sol", ArtistName: "Somebody Else", Date: "2020-05-01", Region: "de"},
	}
	tracks := []data.Track{
		{TrackID: "1", TrackName: "Sol", ArtistName: "A", Genre: "pop"},
	}

	out := enrich.AttachGenres(entries, tracks)
	require.Len(t, out, 2)

	assert.Equal(t, "pop", out[0].Genre)
	assert.Equal(t, int64(2020), out[0].Year)

	// same title, different artist: the name join must not match
	assert.Empty(t, out[1].Genre)
	assert.Equal(t, int64(2020), out[1].Year)
}

func TestAttachGenresSkipsUnlabeledDuplicates(t *testing.T) {
	entries := []data.ChartEntry{
		{TrackName: "Sol", ArtistName: "A", Date: "2020-05-01", Region: "de"},
	}
	// a re-release without a genre label must not shadow the labeled row
	tracks := []data.Track{
		{TrackID: "1", TrackName: "Sol", ArtistName: "A", Genre: ""},
		{TrackID: "2", TrackName: "Sol", ArtistName: "A", Genre: "pop"},
	}

	out := enrich.AttachGenres(entries, tracks)
	require.Len(t, out, 1)
	assert.Equal(t, "pop", out[0].Genre)
}
