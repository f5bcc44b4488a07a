package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ohana-garden/moral-manifold/internal/attractor"
	"github.com/ohana-garden/moral-manifold/internal/config"
	"github.com/ohana-garden/moral-manifold/internal/logging"
	"github.com/ohana-garden/moral-manifold/internal/report"
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
	agent := flag.String("agent", "", "show one agent's trajectory")
	start := flag.Float64("start", -1, "range start (unix seconds, -1 = unbounded)")
	end := flag.Float64("end", -1, "range end (unix seconds, -1 = unbounded)")
	discover := flag.Bool("discover", false, "run attractor discovery over matching points")
	jsonOut := flag.Bool("json", false, "output as JSON instead of text")
	flag.Parse()

	if *agent == "" && !*discover {
		fmt.Fprintln(os.Stderr, "usage: inspect [--db path] --agent id | --discover [--start S --end E] [--json]")
		os.Exit(2)
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	store, err := trajectory.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	startPtr, endPtr := bound(*start), bound(*end)

	if *agent != "" {
		if err := runAgentMode(store, *agent, startPtr, endPtr, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	if *discover {
		discCfg := attractor.Config{
			Eps:        cfg.Eps,
			MinSamples: cfg.MinSamples,
			HighBand:   cfg.HighBand,
			MidBand:    cfg.MidBand,
		}
		if err := runDiscoverMode(store, discCfg, logger, startPtr, endPtr, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

func bound(v float64) *float64 {
	if v < 0 {
		return nil
	}
	return &v
}

// #endregion main

// #region agent-mode

type agentRow struct {
	Timestamp float64            `json:"timestamp"`
	Values    map[string]float64 `json:"values"`
}

func runAgentMode(store *trajectory.Store, agent string, start, end *float64, jsonOut bool) error {
	points, err := store.Trajectory(agent, start, end)
	if err != nil {
		return err
	}

	if jsonOut {
		rows := make([]agentRow, len(points))
		for i, tp := range points {
			rows[i] = agentRow{Timestamp: tp.Timestamp, Values: tp.Point.ToMap()}
		}
		return printJSON(rows)
	}

	fmt.Print(report.TrajectorySummary(agent, points))
	return nil
}

// #endregion agent-mode

// #region discover-mode

type discoverOutput struct {
	Attractors     []attractor.Attractor                        `json:"attractors"`
	Classification map[attractor.Category][]attractor.Attractor `json:"classification"`
}

func runDiscoverMode(store *trajectory.Store, cfg attractor.Config, logger *zap.Logger, start, end *float64, jsonOut bool) error {
	points, _, _, err := store.StatesMatrix(start, end)
	if err != nil {
		return err
	}

	discoverer := attractor.New(nil, cfg, logger)
	attractors := discoverer.Discover(points)
	buckets := discoverer.Classify(attractors)

	if jsonOut {
		return printJSON(discoverOutput{Attractors: attractors, Classification: buckets})
	}

	fmt.Printf("%d points, %d attractors\n\n", len(points), len(attractors))
	fmt.Print(report.AttractorTable(attractors))
	fmt.Println()
	fmt.Print(report.ClassificationBlock(buckets))
	for _, a := range attractors {
		fmt.Println()
		fmt.Print(report.StabilityBlock(a))
	}
	return nil
}

// #endregion discover-mode

// #region helpers

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// #endregion helpers
