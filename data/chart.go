package data

// RawChartEntry mirrors the headers of the Kaggle global charts export.
type RawChartEntry struct {
	TrackName  string `csv:"Track Name"`
	ArtistName string `csv:"Artist"`
	Date       string `csv:"Date"`
	Region     string `csv:"Region"`
	Chart      string `csv:"Chart"`
	Trend      string `csv:"Trend"`
	Streams    int64  `csv:"Streams"`
	Position   int64  `csv:"Rank"`
}

// ChartEntry is a cleaned chart observation: (title, artist, region, date)
// plus the observed stream count and rank. There is no foreign key to
// Track.TrackID; joins back to tracks go by (title, artist) name and are
// lossy. Year and Genre are filled by the enrichment stage and live only in
// the CSV, not in the charts base table.
type ChartEntry struct {
	TrackID    string `csv:"track_id"`
	TrackName  string `csv:"track_name"`
	ArtistName string `csv:"artist_name"`
	Date       string `csv:"date"`
	Region     string `csv:"region"`
	Chart      string `csv:"chart"`
	Trend      string `csv:"trend"`
	Streams    int64  `csv:"streams"`
	Position   int64  `csv:"position"`

	Year  int64  `csv:"year" gorm:"-"`
	Genre string `csv:"track_genre" gorm:"-"`
}
