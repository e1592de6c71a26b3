// Package aggregate implements the pure group-by reductions that produce the
// analytical tables. Each function is a total recomputation over its inputs;
// nothing here mutates incrementally, so any table can be rebuilt at any
// time.
package aggregate

import (
	"sort"

	"github.com/nkoz/moodcharts/data"
	"github.com/nkoz/moodcharts/enrich"
)

// GenreYearCounts counts tracks per (year, genre) pair.
func GenreYearCounts(rows []enrich.TrackRelease) []data.GenreYearCount {
	type key struct {
		year  int64
		genre string
	}
	counts := map[key]int64{}
	for _, row := range rows {
		if row.Genre == "" || row.Year == 0 {
			continue
		}
		counts[key{row.Year, row.Genre}]++
	}

	out := make([]data.GenreYearCount, 0, len(counts))
	for k, count := range counts {
		out = append(out, data.GenreYearCount{
			Year:       k.year,
			Genre:      k.genre,
			TrackCount: count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Genre < out[j].Genre
	})
	return out
}

// MoodByGenre computes the arithmetic mean of each mood descriptor per
// genre, over rows with a non-empty genre label.
func MoodByGenre(tracks []data.Track) []data.GenreMoodProfile {
	sums := map[string]data.Vector{}
	counts := map[string]int64{}
	for i := range tracks {
		track := &tracks[i]
		if track.Genre == "" {
			continue
		}
		if sum, ok := sums[track.Genre]; ok {
			sums[track.Genre] = sum.Add(track.MoodVector())
		} else {
			sums[track.Genre] = track.MoodVector()
		}
		counts[track.Genre]++
	}

	genres := make([]string, 0, len(sums))
	for genre := range sums {
		genres = append(genres, genre)
	}
	sort.Strings(genres)

	out := make([]data.GenreMoodProfile, len(genres))
	for i, genre := range genres {
		out[i].Genre = genre
		out[i].SetMoodVector(sums[genre].Scale(1 / float64(counts[genre])))
	}
	return out
}

// ArtistCountsByCountry counts distinct artist names per chart region and
// merges in that region's coordinates. Regions without a resolved coordinate
// are excluded; they can't be mapped.
func ArtistCountsByCountry(entries []data.ChartEntry, locations []data.CountryLocation) []data.ArtistCountryCount {
	artists := map[string]map[string]struct{}{}
	for _, entry := range entries {
		if entry.Region == "" || entry.ArtistName == "" {
			continue
		}
		if artists[entry.Region] == nil {
			artists[entry.Region] = map[string]struct{}{}
		}
		artists[entry.Region][entry.ArtistName] = struct{}{}
	}

	coords := make(map[string]data.CountryLocation, len(locations))
	for _, location := range locations {
		coords[location.CountryName] = location
	}

	var out []data.ArtistCountryCount
	for region, names := range artists {
		location, ok := coords[region]
		if !ok {
			continue
		}
		out = append(out, data.ArtistCountryCount{
			Country:     region,
			ArtistCount: int64(len(names)),
			CountryName: location.CountryName,
			Latitude:    location.Latitude,
			Longitude:   location.Longitude,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Country < out[j].Country })
	return out
}
