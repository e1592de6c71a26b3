package main

import (
	"fmt"

	"github.com/nkoz/moodcharts/pipeline"
	"github.com/nkoz/moodcharts/setflag"
	"github.com/nkoz/moodcharts/subcmd"
)

func aggregate(args []string) error {
	subcmd := subcmd.New("aggregate", "reduce the cleaned and enriched csvs into trend, mood, entropy, and artist tables")
	var (
		dataDir    = subcmd.String("data", "data", "directory holding the csv artifacts")
		trendStart = subcmd.Int64("trend-start", 2018, "first chart year of the trend window")
		trendEnd   = subcmd.Int64("trend-end", 2023, "last chart year of the trend window")
		minTotal   = subcmd.Int64("trend-min-total", 10, "minimum chart appearances for a (region, genre) trend")
		reductions = setflag.New("genre_trends", "mood", "entropy", "artist_counts", "region_trends")
	)
	subcmd.Var(reductions, "only", "comma-separated subset of reductions to run: genre_trends, mood, entropy, artist_counts, region_trends")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	p := pipeline.New(pipeline.Config{
		DataDir:        *dataDir,
		TrendStartYear: *trendStart,
		TrendEndYear:   *trendEnd,
		TrendMinTotal:  *minTotal,
	})
	return p.Aggregate(reductions.Has)
}
