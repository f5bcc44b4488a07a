package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ohana-garden/moral-manifold/internal/audit"
	"github.com/ohana-garden/moral-manifold/internal/config"
	"github.com/ohana-garden/moral-manifold/internal/logging"
	"github.com/ohana-garden/moral-manifold/internal/manifold"
	"github.com/ohana-garden/moral-manifold/internal/projector"
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
	agent := flag.String("agent", "", "agent id to record under")
	timestamp := flag.Float64("timestamp", 0, "observation time (unix seconds, 0 = now)")
	flag.Parse()

	if *agent == "" || flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: record --agent id [--db path] [--timestamp T] dim=value [dim=value ...]")
		os.Exit(2)
	}

	overrides, err := parseOverrides(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	if err := run(cfg, *dbPath, *agent, *timestamp, overrides, logger); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// parseOverrides turns dim=value args into a name-keyed map.
func parseOverrides(args []string) (map[string]float64, error) {
	overrides := make(map[string]float64, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("expected dim=value, got %q", arg)
		}
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", arg, err)
		}
		overrides[name] = val
	}
	return overrides, nil
}

// #endregion main

// #region record

func run(cfg config.Config, dbPath, agent string, ts float64, overrides map[string]float64, logger *zap.Logger) error {
	point, err := manifold.NewPoint(overrides)
	if err != nil {
		return err
	}

	m := manifold.New()
	proj := projector.New(m, logger)

	valid, before := m.Validate(point)
	projected := point
	var outcome projector.Outcome
	if !valid {
		projected, outcome, err = proj.Project(point, projector.Strategy(cfg.Strategy), cfg.MaxIterations)
		if err != nil {
			return err
		}
	}

	store, err := trajectory.NewStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := audit.EnsureSchema(store.DB()); err != nil {
		return err
	}

	id, err := store.Record(agent, projected, ts)
	if err != nil {
		return err
	}

	if !valid {
		reason := ""
		if !outcome.Converged {
			reason = "did not converge"
		}
		if err := audit.LogProjection(store.DB(), audit.Entry{
			AgentID:          agent,
			Strategy:         cfg.Strategy,
			Iterations:       outcome.Iterations,
			Converged:        outcome.Converged,
			ViolationsBefore: len(before),
			ViolationsAfter:  len(outcome.Remaining),
			Reason:           reason,
		}); err != nil {
			return err
		}
		fmt.Printf("recorded row %d for %s (corrected in %d iterations, %d -> %d violations)\n",
			id, agent, outcome.Iterations, len(before), len(outcome.Remaining))
		return nil
	}

	fmt.Printf("recorded row %d for %s (valid as given)\n", id, agent)
	return nil
}

// #endregion record
