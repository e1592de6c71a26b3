package main

import (
	"fmt"

	"github.com/nkoz/moodcharts/pipeline"
	"github.com/nkoz/moodcharts/subcmd"
)

func load(args []string) error {
	subcmd := subcmd.New("load", "populate music.db from the cleaned csvs and apply the dashboard views")
	var (
		dataDir = subcmd.String("data", "data", "directory holding the csv artifacts")
	)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	p := pipeline.New(pipeline.Config{DataDir: *dataDir})
	return p.Load()
}
