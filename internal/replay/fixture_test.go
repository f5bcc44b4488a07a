package replay

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ohana-garden/moral-manifold/internal/manifold"
	"github.com/ohana-garden/moral-manifold/internal/projector"
)

func TestFixtureRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.json")

	original := &Fixture{
		Description: "round trip",
		Config: FixtureConfig{
			Strategy:      "raise_dependencies",
			MaxIterations: 50,
			Discovery:     FixtureDiscoveryConfig{Eps: 0.2, MinSamples: 3, HighBand: 0.8, MidBand: 0.3},
		},
		Observations: []FixtureObservation{
			{AgentID: "agent-a", Timestamp: 100, Values: map[string]float64{"love": 0.9}},
		},
		ExpectedResults: []FixtureExpectedResult{{Index: 0, Action: "corrected"}},
	}

	if err := SaveFixture(path, original); err != nil {
		t.Fatalf("SaveFixture: %v", err)
	}
	loaded, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if diff := cmp.Diff(original, loaded); diff != "" {
		t.Fatalf("fixture mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFixtureMissingFile(t *testing.T) {
	if _, err := LoadFixture(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestToObservationDefaults(t *testing.T) {
	fo := FixtureObservation{
		AgentID:   "agent-a",
		Timestamp: 10,
		Values:    map[string]float64{"unity": 0.9},
	}
	obs, err := fo.ToObservation()
	if err != nil {
		t.Fatalf("ToObservation: %v", err)
	}
	if obs.Point[manifold.Unity] != 0.9 {
		t.Fatalf("override lost: %v", obs.Point[manifold.Unity])
	}
	if obs.Point[manifold.Love] != manifold.DefaultValue {
		t.Fatalf("expected default for omitted dimension, got %v", obs.Point[manifold.Love])
	}
}

func TestToObservationBadValues(t *testing.T) {
	fo := FixtureObservation{AgentID: "agent-a", Values: map[string]float64{"love": 2.0}}
	if _, err := fo.ToObservation(); !errors.Is(err, manifold.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

func TestToRunConfigDefaults(t *testing.T) {
	var fc FixtureConfig
	cfg := fc.ToRunConfig()

	if cfg.Strategy != projector.StrategyBalanced {
		t.Fatalf("expected balanced default, got %q", cfg.Strategy)
	}
	if cfg.MaxIterations != projector.DefaultMaxIterations {
		t.Fatalf("expected default budget, got %d", cfg.MaxIterations)
	}
	if cfg.Discovery.Eps != 0.3 || cfg.Discovery.MinSamples != 5 {
		t.Fatalf("expected default discovery config, got %+v", cfg.Discovery)
	}
}
