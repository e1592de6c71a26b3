// Package enrich derives the columns the aggregations group by: release
// years joined onto canonical tracks, and genre/year attached to chart
// entries. The chart join matches on (title, artist name) text because chart
// rows carry no track id; duplicate titles collide and name variants fail to
// match. That loss is inherent to the source data and documented rather than
// corrected.
package enrich

import (
	"log"
	"strconv"
	"time"

	"github.com/nkoz/moodcharts/data"
)

// TrackRelease is one canonical track with its parsed release year, the
// input row of the genre-by-year count.
type TrackRelease struct {
	TrackID string `csv:"track_id"`
	Genre   string `csv:"track_genre"`
	Year    int64  `csv:"year"`
}

// ReleaseYears joins canonical tracks to the release-date source on track id
// and parses the date into a year. Rows missing a year (including
// unparseable dates) or a genre are dropped before aggregation.
func ReleaseYears(tracks []data.Track, releases []data.SearchedTrack) []TrackRelease {
	dates := make(map[string]string, len(releases))
	for _, release := range releases {
		if release.TrackID == "" {
			continue
		}
		dates[release.TrackID] = release.ReleaseDate
	}

	var rows []TrackRelease
	for _, track := range tracks {
		if track.Genre == "" {
			continue
		}
		year, ok := parseYear(dates[track.TrackID])
		if !ok {
			continue
		}
		rows = append(rows, TrackRelease{
			TrackID: track.TrackID,
			Genre:   track.Genre,
			Year:    year,
		})
	}
	return rows
}

// AttachGenres copies genre labels from canonical tracks onto chart entries
// by (title, artist) name match, and derives each entry's chart year from
// its date. Unmatched entries keep an empty genre; the aggregations filter
// them out.
func AttachGenres(entries []data.ChartEntry, tracks []data.Track) []data.ChartEntry {
	genres := make(map[nameKey]string, len(tracks))
	for _, track := range tracks {
		if track.Genre == "" {
			continue
		}
		key := nameKey{track.TrackName, track.ArtistName}
		if _, ok := genres[key]; !ok {
			genres[key] = track.Genre
		}
	}

	matched := 0
	out := make([]data.ChartEntry, len(entries))
	for i, entry := range entries {
		if genre, ok := genres[nameKey{entry.TrackName, entry.ArtistName}]; ok {
			entry.Genre = genre
			matched++
		}
		if year, ok := parseYear(entry.Date); ok {
			entry.Year = year
		}
		out[i] = entry
	}

	if len(entries) > 0 {
		log.Printf("matched genres for %d of %d chart entries (%.1f%%)",
			matched, len(entries), 100*float64(matched)/float64(len(entries)))
	}
	return out
}

type nameKey struct {
	title  string
	artist string
}

var yearLayouts = []string{"2006-01-02", "2006-01", "2006"}

func parseYear(date string) (int64, bool) {
	if date == "" {
		return 0, false
	}
	for _, layout := range yearLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return int64(t.Year()), true
		}
	}
	// a bare 4-digit year still counts; anything longer is a malformed
	// date ("20200101"), not a year
	if year, err := strconv.ParseInt(date, 10, 64); err == nil && year >= 1000 && year <= 9999 {
		return year, true
	}
	return 0, false
}
