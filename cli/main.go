// this program turns Spotify chart exports and API responses into a sqlite3
// database of music trends: genre popularity over time, mood profiles,
// language diversity, artist geography, and k-means mood clusters.
//
// see db/schema.sql for info about the resulting database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/nkoz/moodcharts/sigctx"
)

func main() {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, flag.ErrHelp) {
		panic(err)
	}
}

var usage = strings.TrimSpace(`
usage: moodcharts $cmd
valid $cmd are 'fetch', 'clean', 'enrich', 'aggregate', 'cluster', 'load', 'all'
for help: moodcharts $cmd -help
`)

func run() error {
	ctx := sigctx.New()

	// credentials may come from a .env file or the process environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error loading .env: %w", err)
	}

	if len(os.Args) < 2 {
		return fmt.Errorf(usage)
	}
	cmd, args := os.Args[1], os.Args[2:]

	switch cmd {
	case "fetch":
		return fetch(ctx, args)

	case "clean":
		return clean(args)

	case "enrich":
		return enrich(ctx, args)

	case "aggregate":
		return aggregate(args)

	case "cluster":
		return cluster(args)

	case "load":
		return load(args)

	case "all":
		return all(ctx, args)

	default:
		return fmt.Errorf("unknown cmd: '%s'\n%s", cmd, usage)
	}
}
