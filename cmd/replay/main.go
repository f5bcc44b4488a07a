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
	"github.com/ohana-garden/moral-manifold/internal/replay"
	"github.com/ohana-garden/moral-manifold/internal/report"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to fixture JSON")
	jsonOut := flag.Bool("json", false, "output as JSON instead of text")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json [--json]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	logger, err := logging.New(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	os.Exit(run(*fixturePath, *jsonOut, logger))
}

// #endregion main

// #region run

type output struct {
	Description string                `json:"description"`
	Results     []replay.Result       `json:"results"`
	Summary     replay.Summary        `json:"summary"`
	Attractors  []attractor.Attractor `json:"attractors"`
	Mismatches  []string              `json:"mismatches,omitempty"`
}

func run(fixturePath string, jsonOut bool, logger *zap.Logger) int {
	fixture, err := replay.LoadFixture(fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	observations := make([]replay.Observation, 0, len(fixture.Observations))
	for _, fo := range fixture.Observations {
		obs, err := fo.ToObservation()
		if err != nil {
			fmt.Fprintf(os.Stderr, "bad observation: %v\n", err)
			return 2
		}
		observations = append(observations, obs)
	}

	results, attractors, err := replay.Replay(observations, fixture.Config.ToRunConfig(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "replay: %v\n", err)
		return 2
	}
	summary := replay.Summarize(results, attractors)
	mismatches := replay.CheckExpectations(results, fixture.ExpectedResults)

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(output{
			Description: fixture.Description,
			Results:     results,
			Summary:     summary,
			Attractors:  attractors,
			Mismatches:  mismatches,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "encode output: %v\n", err)
			return 2
		}
	} else {
		printText(fixture.Description, results, summary, attractors, mismatches)
	}

	if len(mismatches) > 0 {
		return 1
	}
	return 0
}

// #endregion run

// #region text-output

func printText(description string, results []replay.Result, summary replay.Summary, attractors []attractor.Attractor, mismatches []string) {
	if description != "" {
		fmt.Printf("%s\n\n", description)
	}

	fmt.Printf("%-6s  %-16s  %-12s  %6s  %6s  %6s\n",
		"Index", "Agent", "Action", "Before", "After", "Iters")
	fmt.Printf("%-6s  %-16s  %-12s  %6s  %6s  %6s\n",
		"------", "----------------", "------------", "------", "------", "------")
	for _, r := range results {
		fmt.Printf("%-6d  %-16s  %-12s  %6d  %6d  %6d\n",
			r.Index, r.AgentID, r.Action, r.ViolationsBefore, r.ViolationsAfter, r.Iterations)
	}

	fmt.Printf("\nrun %s: %d total, %d valid, %d corrected, %d unconverged\n",
		summary.RunID, summary.Total, summary.Valid, summary.Corrected, summary.Unconverged)

	if len(attractors) > 0 {
		fmt.Println()
		fmt.Print(report.AttractorTable(attractors))
	}

	for _, m := range mismatches {
		fmt.Printf("MISMATCH: %s\n", m)
	}
}

// #endregion text-output
