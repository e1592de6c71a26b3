// Package clean turns raw source tables into the canonical tables every
// downstream stage consumes: source-specific columns are renamed, the output
// is projected to a fixed column list, and rows missing a required identifier
// are dropped. Missing optional columns are never an error; they come through
// as zero values.
package clean

import (
	"time"

	"github.com/nkoz/moodcharts/data"
)

// AudioFeatures canonicalizes the Kaggle audio-features table. Required
// identifiers are track id, title, and artist name; a row missing any of them
// is dropped. Output row count is always <= input row count.
func AudioFeatures(raw []data.RawAudioFeatures) []data.Track {
	tracks := make([]data.Track, 0, len(raw))
	for _, row := range raw {
		if row.TrackID == "" || row.TrackName == "" || row.ArtistName == "" {
			continue
		}
		tracks = append(tracks, data.Track{
			TrackID:    row.TrackID,
			TrackName:  row.TrackName,
			ArtistName: row.ArtistName,

			Popularity: row.Popularity,
			DurationMS: row.DurationMS,
			Explicit:   row.Explicit,

			Danceability:     row.Danceability,
			Energy:           row.Energy,
			Key:              row.Key,
			Loudness:         row.Loudness,
			Mode:             row.Mode,
			Speechiness:      row.Speechiness,
			Acousticness:     row.Acousticness,
			Instrumentalness: row.Instrumentalness,
			Liveness:         row.Liveness,
			Valence:          row.Valence,
			Tempo:            row.Tempo,
			TimeSignature:    row.TimeSignature,

			Genre: row.Genre,
		})
	}
	return tracks
}

// Charts canonicalizes the Kaggle chart export. Title and artist name are
// required (they are the only join key back to tracks); dates are normalized
// to YYYY-MM-DD where they parse, and passed through untouched where they
// don't.
func Charts(raw []data.RawChartEntry) []data.ChartEntry {
	entries := make([]data.ChartEntry, 0, len(raw))
	for _, row := range raw {
		if row.TrackName == "" || row.ArtistName == "" {
			continue
		}
		entries = append(entries, data.ChartEntry{
			TrackName:  row.TrackName,
			ArtistName: row.ArtistName,
			Date:       normalizeDate(row.Date),
			Region:     row.Region,
			Chart:      row.Chart,
			Trend:      row.Trend,
			Streams:    row.Streams,
			Position:   row.Position,
		})
	}
	return entries
}

var dateLayouts = []string{"2006-01-02", "2006/01/02", "01/02/2006"}

func normalizeDate(s string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}
