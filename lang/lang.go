// Package lang detects the language of track titles. Detection is a pure
// per-row function; a title that can't be classified gets the "unknown"
// sentinel rather than an error, so one odd title never stops a run.
package lang

import (
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/nkoz/moodcharts/data"
)

// Detection is the named outcome of one detection attempt: either a language
// code, or the unknown sentinel with OK false.
type Detection struct {
	Code string
	OK   bool
}

// Detect attempts language identification on text. Empty or unclassifiable
// input yields the unknown sentinel. Codes are ISO 639-1 where one exists,
// ISO 639-3 otherwise.
func Detect(text string) Detection {
	text = strings.TrimSpace(text)
	if text == "" {
		return Detection{Code: data.LanguageUnknown}
	}

	info := whatlanggo.Detect(text)
	code := info.Lang.Iso6391()
	if code == "" {
		code = whatlanggo.LangToString(info.Lang)
	}
	if code == "" {
		return Detection{Code: data.LanguageUnknown}
	}
	return Detection{Code: code, OK: true}
}

// DetectAll runs Detect over every track title and returns one observation
// per track, keeping the (title, artist) pair as the downstream join key.
func DetectAll(tracks []data.SearchedTrack) []data.LanguageObservation {
	observations := make([]data.LanguageObservation, 0, len(tracks))
	for _, track := range tracks {
		if track.TrackID == "" || track.TrackName == "" || track.ArtistName == "" {
			continue
		}
		observations = append(observations, data.LanguageObservation{
			TrackID:    track.TrackID,
			TrackName:  track.TrackName,
			ArtistName: track.ArtistName,
			Language:   Detect(track.TrackName).Code,
		})
	}
	return observations
}
