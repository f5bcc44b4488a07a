package replay

import (
	"testing"

	"go.uber.org/zap"

	"github.com/ohana-garden/moral-manifold/internal/manifold"
)

func obs(t *testing.T, agent string, ts float64, overrides map[string]float64) Observation {
	t.Helper()
	p, err := manifold.NewPoint(overrides)
	if err != nil {
		t.Fatalf("NewPoint: %v", err)
	}
	return Observation{AgentID: agent, Timestamp: ts, Point: p}
}

func TestReplayActions(t *testing.T) {
	observations := []Observation{
		obs(t, "agent-a", 1, nil), // neutral, valid
		obs(t, "agent-a", 2, map[string]float64{"truthfulness": 0.2, "love": 0.9}),
		obs(t, "agent-b", 3, map[string]float64{"truthfulness": 0.9, "wisdom": 0.75, "patience": 0.6}),
	}

	cfg := DefaultRunConfig()
	results, _, err := Replay(observations, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].Action != "valid" {
		t.Fatalf("expected valid, got %q", results[0].Action)
	}
	if results[1].Action != "corrected" {
		t.Fatalf("expected corrected, got %q", results[1].Action)
	}
	if results[1].ViolationsBefore == 0 || results[1].Iterations == 0 {
		t.Fatalf("corrected result missing stats: %+v", results[1])
	}
	if results[2].Action != "valid" {
		t.Fatalf("expected valid, got %q", results[2].Action)
	}

	m := manifold.New()
	for _, r := range results {
		if ok, violations := m.Validate(r.Point); !ok {
			t.Fatalf("result %d point invalid after replay: %v", r.Index, violations)
		}
	}
}

func TestReplayUnconverged(t *testing.T) {
	observations := []Observation{
		obs(t, "agent-a", 1, map[string]float64{"truthfulness": 0.2, "love": 0.9}),
	}
	cfg := DefaultRunConfig()
	cfg.MaxIterations = 0 // force budget exhaustion

	results, _, err := Replay(observations, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if results[0].Action != "unconverged" {
		t.Fatalf("expected unconverged, got %q", results[0].Action)
	}
	if results[0].ViolationsAfter == 0 {
		t.Fatalf("expected remaining violations, got %+v", results[0])
	}
}

func TestReplayDiscovery(t *testing.T) {
	// Ten near-identical neutral observations form one attractor.
	observations := make([]Observation, 10)
	for i := range observations {
		observations[i] = obs(t, "agent-a", float64(i), map[string]float64{
			"truthfulness": 0.5 + float64(i)*0.005,
		})
	}

	cfg := DefaultRunConfig()
	results, attractors, err := Replay(observations, cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if len(attractors) != 1 {
		t.Fatalf("expected 1 attractor, got %d", len(attractors))
	}

	summary := Summarize(results, attractors)
	if summary.Total != 10 || summary.Valid != 10 || summary.Attractors != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.RunID == "" {
		t.Fatal("expected non-empty run id")
	}
}

func TestCheckExpectations(t *testing.T) {
	results := []Result{
		{Index: 0, Action: "valid"},
		{Index: 1, Action: "corrected"},
	}

	if m := CheckExpectations(results, []FixtureExpectedResult{
		{Index: 0, Action: "valid"},
		{Index: 1, Action: "corrected"},
	}); len(m) != 0 {
		t.Fatalf("expected no mismatches, got %v", m)
	}

	mismatches := CheckExpectations(results, []FixtureExpectedResult{
		{Index: 1, Action: "valid"},
		{Index: 5, Action: "valid"},
	})
	if len(mismatches) != 2 {
		t.Fatalf("expected 2 mismatches, got %v", mismatches)
	}
}
