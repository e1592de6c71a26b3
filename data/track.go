package data

// Track is the canonical per-track row produced by the cleaning stage and
// shared by every downstream stage. After cleaning, TrackID, TrackName, and
// ArtistName are always present; everything else may be zero.
type Track struct {
	TrackID    string `csv:"track_id"`
	TrackName  string `csv:"track_name"`
	ArtistName string `csv:"artist_name"`

	Popularity int64 `csv:"popularity"`
	DurationMS int64 `csv:"duration_ms"`
	Explicit   bool  `csv:"explicit"`

	Danceability     float64 `csv:"danceability"`
	Energy           float64 `csv:"energy"`
	Key              int64   `csv:"key"`
	Loudness         float64 `csv:"loudness"`
	Mode             int64   `csv:"mode"`
	Speechiness      float64 `csv:"speechiness"`
	Acousticness     float64 `csv:"acousticness"`
	Instrumentalness float64 `csv:"instrumentalness"`
	Liveness         float64 `csv:"liveness"`
	Valence          float64 `csv:"valence"`
	Tempo            float64 `csv:"tempo"`
	TimeSignature    int64   `csv:"time_signature"`

	Genre string `csv:"track_genre" gorm:"column:track_genre"`
}

// MoodFeatures lists the audio descriptors used for mood profiles, in the
// column order of the mood_by_genre table.
var MoodFeatures = []string{
	"valence", "energy", "danceability", "tempo",
	"acousticness", "instrumentalness", "liveness", "speechiness",
}

func (t *Track) MoodVector() Vector {
	return Vector{
		"valence":          t.Valence,
		"energy":           t.Energy,
		"danceability":     t.Danceability,
		"tempo":            t.Tempo,
		"acousticness":     t.Acousticness,
		"instrumentalness": t.Instrumentalness,
		"liveness":         t.Liveness,
		"speechiness":      t.Speechiness,
	}
}

// RawAudioFeatures mirrors the column names of the Kaggle audio-features
// dataset before cleaning. Only the columns on the keep-list appear here;
// gocsv leaves fields zero when a column is absent from the source file.
type RawAudioFeatures struct {
	TrackID    string `csv:"track_id"`
	TrackName  string `csv:"track_name"`
	ArtistName string `csv:"artists"`
	AlbumName  string `csv:"album_name"`

	Popularity int64 `csv:"popularity"`
	DurationMS int64 `csv:"duration_ms"`
	Explicit   bool  `csv:"explicit"`

	Danceability     float64 `csv:"danceability"`
	Energy           float64 `csv:"energy"`
	Key              int64   `csv:"key"`
	Loudness         float64 `csv:"loudness"`
	Mode             int64   `csv:"mode"`
	Speechiness      float64 `csv:"speechiness"`
	Acousticness     float64 `csv:"acousticness"`
	Instrumentalness float64 `csv:"instrumentalness"`
	Liveness         float64 `csv:"liveness"`
	Valence          float64 `csv:"valence"`
	Tempo            float64 `csv:"tempo"`
	TimeSignature    int64   `csv:"time_signature"`

	Genre string `csv:"track_genre"`
}

// SearchedTrack is one row of the Spotify search output: the identifier,
// title, artist, and release date we use for the year join. Genre is left
// empty; Spotify doesn't attach genres to tracks.
type SearchedTrack struct {
	TrackID     string `csv:"track_id"`
	TrackName   string `csv:"name"`
	ArtistID    string `csv:"artist_id"`
	ArtistName  string `csv:"artist_name"`
	ReleaseDate string `csv:"release_date"`
	Genre       string `csv:"genre"`
}
