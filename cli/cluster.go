package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nkoz/moodcharts/data"
	"github.com/nkoz/moodcharts/pipeline"
	"github.com/nkoz/moodcharts/subcmd"
)

func cluster(args []string) error {
	subcmd := subcmd.New("cluster", "group genres into mood clusters with k-means over their average audio features").
		SetArg("mood", "string", "optional mood vector to classify, eg 'valence=0.8,energy=0.3'")
	var (
		dataDir = subcmd.String("data", "data", "directory holding the csv artifacts")
		k       = subcmd.Int("k", 6, "number of clusters")
	)
	if err := subcmd.Parse(args); err != nil {
		return fmt.Errorf("flag parsing err: %w", err)
	}

	p := pipeline.New(pipeline.Config{DataDir: *dataDir, Clusters: *k})
	model, err := p.Cluster()
	if err != nil {
		return err
	}

	if mood := subcmd.Arg(0); mood != "" {
		if model == nil {
			return fmt.Errorf("no fitted model to classify against")
		}
		v, err := parseMoodVector(mood)
		if err != nil {
			return err
		}
		idx, name := model.Predict(v)
		fmt.Printf("cluster %d (%s)\n", idx, name)
	}
	return nil
}

// parseMoodVector parses 'feature=value' pairs; unmentioned features default
// to zero, unknown feature names are an error.
func parseMoodVector(s string) (data.Vector, error) {
	known := map[string]struct{}{}
	for _, feature := range data.MoodFeatures {
		known[feature] = struct{}{}
	}

	v := data.Vector{}
	for _, pair := range strings.Split(s, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, fmt.Errorf("bad mood component '%s': want feature=value", pair)
		}
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("unknown mood feature '%s'", name)
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("bad value for '%s': %w", name, err)
		}
		v[name] = f
	}
	return v, nil
}
