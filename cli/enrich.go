package main

import (
	"context"
	"fmt"

	"github.com/nkoz/moodcharts/geo"
	"github.com/nkoz/moodcharts/pipeline"
	"github.com/nkoz/moodcharts/setflag"
	"github.com/nkoz/moodcharts/subcmd"
)

func enrich(ctx context.Context, args []string) error {
	subcmd := subcmd.New("enrich", "derive track languages, region coordinates, and chart genre/year columns")
	var (
		dataDir = subcmd.String("data", "data", "directory holding the csv artifacts")
		stages  = setflag.New("lang", "country", "year")
	)
	subcmd.Var(stages, "only", "comma-separated subset of stages to run: lang, country, year")
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	p := pipeline.New(pipeline.Config{DataDir: *dataDir})

	if stages.Has("lang") {
		if err := p.DetectLanguages(); err != nil {
			return fmt.Errorf("language detection error: %w", err)
		}
	}
	if stages.Has("country") {
		if err := p.GeocodeCountries(ctx, geo.NewGeocoder()); err != nil {
			return fmt.Errorf("geocoding error: %w", err)
		}
	}
	if stages.Has("year") {
		if err := p.AttachGenreYears(); err != nil {
			return fmt.Errorf("genre/year enrichment error: %w", err)
		}
	}
	return nil
}
