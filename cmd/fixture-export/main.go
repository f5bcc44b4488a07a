package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ohana-garden/moral-manifold/internal/config"
	"github.com/ohana-garden/moral-manifold/internal/replay"
	"github.com/ohana-garden/moral-manifold/internal/trajectory"
)

// #region main

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	dbPath := flag.String("db", cfg.DBPath, "path to trajectory database")
	outPath := flag.String("out", "", "output fixture JSON path")
	start := flag.Float64("start", -1, "range start (unix seconds, -1 = unbounded)")
	end := flag.Float64("end", -1, "range end (unix seconds, -1 = unbounded)")
	description := flag.String("description", "exported trajectory fixture", "fixture description")
	flag.Parse()

	if *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --out path/to/fixture.json [--db path] [--start S --end E]")
		os.Exit(2)
	}

	if err := run(cfg, *dbPath, *outPath, *description, bound(*start), bound(*end)); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func bound(v float64) *float64 {
	if v < 0 {
		return nil
	}
	return &v
}

// #endregion main

// #region export

func run(cfg config.Config, dbPath, outPath, description string, start, end *float64) error {
	store, err := trajectory.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	points, agents, timestamps, err := store.StatesMatrix(start, end)
	if err != nil {
		return fmt.Errorf("query states: %w", err)
	}
	if len(points) == 0 {
		return fmt.Errorf("no points in range")
	}

	observations := make([]replay.FixtureObservation, len(points))
	for i, p := range points {
		observations[i] = replay.FixtureObservation{
			AgentID:   agents[i],
			Timestamp: timestamps[i],
			Values:    p.ToMap(),
		}
	}

	fixture := &replay.Fixture{
		Description: description,
		Config: replay.FixtureConfig{
			Strategy:      cfg.Strategy,
			MaxIterations: cfg.MaxIterations,
			Discovery: replay.FixtureDiscoveryConfig{
				Eps:        cfg.Eps,
				MinSamples: cfg.MinSamples,
				HighBand:   cfg.HighBand,
				MidBand:    cfg.MidBand,
			},
		},
		Observations: observations,
	}

	if err := replay.SaveFixture(outPath, fixture); err != nil {
		return err
	}
	fmt.Printf("exported %d observations to %s\n", len(observations), outPath)
	return nil
}

// #endregion export
