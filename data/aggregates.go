package data

// GenreYearCount is one row of the genre_trends output: how many canonical
// tracks with a given genre were released in a given year.
type GenreYearCount struct {
	Year       int64  `csv:"year"`
	Genre      string `csv:"track_genre"`
	TrackCount int64  `csv:"track_count"`
}

// GenreMoodProfile holds the mean of each mood descriptor across every track
// carrying the genre label.
type GenreMoodProfile struct {
	Genre string `csv:"track_genre"`

	Valence          float64 `csv:"valence"`
	Energy           float64 `csv:"energy"`
	Danceability     float64 `csv:"danceability"`
	Tempo            float64 `csv:"tempo"`
	Acousticness     float64 `csv:"acousticness"`
	Instrumentalness float64 `csv:"instrumentalness"`
	Liveness         float64 `csv:"liveness"`
	Speechiness      float64 `csv:"speechiness"`
}

func (p *GenreMoodProfile) MoodVector() Vector {
	return Vector{
		"valence":          p.Valence,
		"energy":           p.Energy,
		"danceability":     p.Danceability,
		"tempo":            p.Tempo,
		"acousticness":     p.Acousticness,
		"instrumentalness": p.Instrumentalness,
		"liveness":         p.Liveness,
		"speechiness":      p.Speechiness,
	}
}

// SetMoodVector writes v back into the named descriptor fields.
func (p *GenreMoodProfile) SetMoodVector(v Vector) {
	p.Valence = v["valence"]
	p.Energy = v["energy"]
	p.Danceability = v["danceability"]
	p.Tempo = v["tempo"]
	p.Acousticness = v["acousticness"]
	p.Instrumentalness = v["instrumentalness"]
	p.Liveness = v["liveness"]
	p.Speechiness = v["speechiness"]
}

// RegionEntropyStat scores one chart region's language diversity: Shannon
// entropy in bits over the distribution of detected languages, with the
// supporting counts.
type RegionEntropyStat struct {
	Region          string  `csv:"region"`
	EntropyScore    float64 `csv:"entropy_score"`
	TotalTracks     int64   `csv:"total_tracks"`
	UniqueLanguages int64   `csv:"unique_languages"`
}

// ArtistCountryCount is the distinct-artist count for one chart region,
// merged with that region's resolved coordinates.
type ArtistCountryCount struct {
	Country     string  `csv:"country"`
	ArtistCount int64   `csv:"artist_count"`
	CountryName string  `csv:"country_name"`
	Latitude    float64 `csv:"latitude"`
	Longitude   float64 `csv:"longitude"`
}

// GenreTrend is the OLS slope of yearly chart counts for one (region, genre)
// pair across the trend window, labeled rising when the slope is positive.
type GenreTrend struct {
	Region    string  `csv:"region"`
	Genre     string  `csv:"genre"`
	Slope     float64 `csv:"slope"`
	TrendType string  `csv:"trend_type"`
}

// GenreCluster assigns a genre's mood profile to one of the k-means groups.
// ClusterName is the most frequent genre within the group, so the clusters
// read as "sounds like X".
type GenreCluster struct {
	GenreMoodProfile

	Cluster     int    `csv:"cluster"`
	ClusterName string `csv:"cluster_name"`
}
