package main

import (
	"fmt"

	"github.com/nkoz/moodcharts/pipeline"
	"github.com/nkoz/moodcharts/subcmd"
)

func clean(args []string) error {
	subcmd := subcmd.New("clean", "canonicalize the raw kaggle audio-features and chart exports")
	var (
		dataDir = subcmd.String("data", "data", "directory holding the csv artifacts")
	)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	p := pipeline.New(pipeline.Config{DataDir: *dataDir})
	return p.Clean()
}
