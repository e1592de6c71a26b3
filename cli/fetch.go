package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nkoz/moodcharts/pipeline"
	"github.com/nkoz/moodcharts/spotify"
	"github.com/nkoz/moodcharts/subcmd"
)

func fetch(ctx context.Context, args []string) error {
	subcmd := subcmd.New("fetch", "fetch tracks and audio features from spotify\nrequires SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET")
	var (
		dataDir = subcmd.String("data", "data", "directory holding the csv artifacts")
		year    = subcmd.Int("year", 2020, "release year to search for")
		market  = subcmd.String("market", "US", "spotify market to scope the search to")
		limit   = subcmd.Int("limit", 50, "maximum number of search results")
	)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	clientID, clientSecret := os.Getenv("SPOTIFY_CLIENT_ID"), os.Getenv("SPOTIFY_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("must set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET")
	}
	spo := spotify.New(clientID, clientSecret)

	p := pipeline.New(pipeline.Config{
		DataDir: *dataDir,
		Year:    *year,
		Market:  *market,
		Limit:   *limit,
	})
	return p.Fetch(ctx, spo)
}
