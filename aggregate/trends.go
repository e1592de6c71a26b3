package aggregate

import (
	"sort"

	"github.com/nkoz/moodcharts/data"
	"gonum.org/v1/gonum/stat"
)

// Trend-window defaults: the slope is fitted over this year range, and
// (region, genre) pairs with fewer than MinTrendTotal chart entries across
// the whole window are excluded as too sparse to call a trend.
const (
	TrendStartYear = 2018
	TrendEndYear   = 2023
	MinTrendTotal  = 10
)

// GenreTrends fits an ordinary-least-squares line of chart-entry count
// against year for each (region, genre) pair within [startYear, endYear].
// Years with no entries count as zero; the series is always complete, never
// gap-skipped. Slope > 0 labels the pair "rising", otherwise "falling".
func GenreTrends(entries []data.ChartEntry, startYear, endYear int64, minTotal int64) []data.GenreTrend {
	type key struct {
		region string
		genre  string
	}
	years := int(endYear - startYear + 1)

	counts := map[key][]float64{}
	for _, entry := range entries {
		if entry.Region == "" || entry.Genre == "" {
			continue
		}
		if entry.Year < startYear || entry.Year > endYear {
			continue
		}
		k := key{entry.Region, entry.Genre}
		if counts[k] == nil {
			counts[k] = make([]float64, years)
		}
		counts[k][entry.Year-startYear]++
	}

	xs := make([]float64, years)
	for i := range xs {
		xs[i] = float64(startYear) + float64(i)
	}

	var out []data.GenreTrend
	for k, series := range counts {
		var total float64
		for _, count := range series {
			total += count
		}
		if total < float64(minTotal) {
			continue
		}

		_, slope := stat.LinearRegression(xs, series, nil, false)

		trendType := "falling"
		if slope > 0 {
			trendType = "rising"
		}
		out = append(out, data.GenreTrend{
			Region:    k.region,
			Genre:     k.genre,
			Slope:     slope,
			TrendType: trendType,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Region != out[j].Region {
			return out[i].Region < out[j].Region
		}
		return out[i].Genre < out[j].Genre
	})
	return out
}
