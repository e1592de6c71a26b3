package data

// LanguageUnknown is the sentinel stored when detection fails; it is a
// documented default, not an error.
const LanguageUnknown = "unknown"

// LanguageObservation is one detected language per track, keyed by the same
// (title, artist) pair the chart join uses. Computed once per run and never
// updated incrementally.
type LanguageObservation struct {
	TrackID    string `csv:"track_id"`
	TrackName  string `csv:"track_name"`
	ArtistName string `csv:"artist_name"`
	Language   string `csv:"language"`
}

// Known reports whether detection actually produced a language code.
func (o LanguageObservation) Known() bool {
	return o.Language != "" && o.Language != LanguageUnknown
}
