// Package replay runs recorded observations back through the projection
// pipeline deterministically, then discovers attractors over the
// projected batch. It is the offline counterpart of live recording: same
// code paths, fixed inputs, comparable outputs.
package replay

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ohana-garden/moral-manifold/internal/attractor"
	"github.com/ohana-garden/moral-manifold/internal/manifold"
	"github.com/ohana-garden/moral-manifold/internal/projector"
)

// #region types
// Observation is a single recorded point to replay.
type Observation struct {
	AgentID   string
	Timestamp float64
	Point     manifold.Vector
}

// RunConfig bundles projection and discovery settings for a replay run.
type RunConfig struct {
	Strategy      projector.Strategy
	MaxIterations int
	Discovery     attractor.Config
}

// DefaultRunConfig returns sensible defaults for both pipeline stages.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Strategy:      projector.StrategyBalanced,
		MaxIterations: projector.DefaultMaxIterations,
		Discovery:     attractor.DefaultConfig(),
	}
}

// Result captures the outcome of replaying one observation.
type Result struct {
	Index   int
	AgentID string
	Action  string // "valid" | "corrected" | "unconverged"

	ViolationsBefore int
	ViolationsAfter  int
	Iterations       int

	// Point after projection (equals the input when already valid).
	Point manifold.Vector
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	RunID       string
	Total       int
	Valid       int
	Corrected   int
	Unconverged int
	Attractors  int
}

// #endregion types

// #region replay
// Replay pushes each observation through validate → project-if-invalid,
// then clusters the projected batch. Operates entirely in-memory.
func Replay(observations []Observation, cfg RunConfig, logger *zap.Logger) ([]Result, []attractor.Attractor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	m := manifold.New()
	proj := projector.New(m, logger)

	results := make([]Result, 0, len(observations))
	points := make([]manifold.Vector, 0, len(observations))

	for i, obs := range observations {
		ok, violations := m.Validate(obs.Point)
		if ok {
			results = append(results, Result{
				Index:   i,
				AgentID: obs.AgentID,
				Action:  "valid",
				Point:   obs.Point,
			})
			points = append(points, obs.Point)
			continue
		}

		projected, outcome, err := proj.Project(obs.Point, cfg.Strategy, cfg.MaxIterations)
		if err != nil {
			return nil, nil, fmt.Errorf("project observation %d: %w", i, err)
		}

		action := "corrected"
		if !outcome.Converged {
			action = "unconverged"
		}
		results = append(results, Result{
			Index:            i,
			AgentID:          obs.AgentID,
			Action:           action,
			ViolationsBefore: len(violations),
			ViolationsAfter:  len(outcome.Remaining),
			Iterations:       outcome.Iterations,
			Point:            projected,
		})
		points = append(points, projected)
	}

	discoverer := attractor.New(nil, cfg.Discovery, logger)
	attractors := discoverer.Discover(points)

	return results, attractors, nil
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []Result, attractors []attractor.Attractor) Summary {
	s := Summary{
		RunID:      uuid.New().String(),
		Total:      len(results),
		Attractors: len(attractors),
	}
	for _, r := range results {
		switch r.Action {
		case "valid":
			s.Valid++
		case "corrected":
			s.Corrected++
		case "unconverged":
			s.Unconverged++
		}
	}
	return s
}

// CheckExpectations compares results against a fixture's expected
// actions, returning one message per mismatch.
func CheckExpectations(results []Result, expected []FixtureExpectedResult) []string {
	var mismatches []string
	for _, exp := range expected {
		if exp.Index < 0 || exp.Index >= len(results) {
			mismatches = append(mismatches, fmt.Sprintf("expected result index %d out of range", exp.Index))
			continue
		}
		if got := results[exp.Index].Action; got != exp.Action {
			mismatches = append(mismatches, fmt.Sprintf("observation %d: expected %q, got %q", exp.Index, exp.Action, got))
		}
	}
	return mismatches
}

// #endregion replay
