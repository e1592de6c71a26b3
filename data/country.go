package data

// CountryLocation maps a region string, exactly as it appears in chart data,
// to geographic coordinates. CountryName keeps the original chart spelling so
// it stays a valid join key; the resolved registry name is only used for
// geocoding and is not persisted.
type CountryLocation struct {
	CountryName string  `csv:"country_name"`
	Latitude    float64 `csv:"latitude"`
	Longitude   float64 `csv:"longitude"`
}
