package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ohana-garden/moral-manifold/internal/attractor"
	"github.com/ohana-garden/moral-manifold/internal/manifold"
	"github.com/ohana-garden/moral-manifold/internal/projector"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description     string                  `json:"description"`
	Config          FixtureConfig           `json:"config"`
	Observations    []FixtureObservation    `json:"observations"`
	ExpectedResults []FixtureExpectedResult `json:"expected_results,omitempty"`
}

// FixtureObservation is one recorded point, keyed by dimension name so
// fixtures stay readable and survive dimension reordering.
type FixtureObservation struct {
	AgentID   string             `json:"agent_id"`
	Timestamp float64            `json:"timestamp"`
	Values    map[string]float64 `json:"values"`
}

// FixtureExpectedResult captures the expected action per observation.
type FixtureExpectedResult struct {
	Index  int    `json:"index"`
	Action string `json:"action"`
}

// FixtureConfig mirrors RunConfig with JSON tags.
type FixtureConfig struct {
	Strategy      string                 `json:"strategy"`
	MaxIterations int                    `json:"max_iterations"`
	Discovery     FixtureDiscoveryConfig `json:"discovery"`
}

// FixtureDiscoveryConfig mirrors attractor.Config with JSON tags.
type FixtureDiscoveryConfig struct {
	Eps        float64 `json:"eps"`
	MinSamples int     `json:"min_samples"`
	HighBand   float64 `json:"high_band"`
	MidBand    float64 `json:"mid_band"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// SaveFixture writes a fixture as indented JSON.
func SaveFixture(path string, f *Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// ToObservation converts a fixture observation to a domain Observation.
// Dimensions the fixture omits default to 0.5.
func (fo *FixtureObservation) ToObservation() (Observation, error) {
	point, err := manifold.NewPoint(fo.Values)
	if err != nil {
		return Observation{}, fmt.Errorf("observation for %s: %w", fo.AgentID, err)
	}
	return Observation{
		AgentID:   fo.AgentID,
		Timestamp: fo.Timestamp,
		Point:     point,
	}, nil
}

// ToRunConfig converts a FixtureConfig to a domain RunConfig, filling
// zero fields with defaults.
func (fc *FixtureConfig) ToRunConfig() RunConfig {
	cfg := RunConfig{
		Strategy:      projector.Strategy(fc.Strategy),
		MaxIterations: fc.MaxIterations,
		Discovery: attractor.Config{
			Eps:        fc.Discovery.Eps,
			MinSamples: fc.Discovery.MinSamples,
			HighBand:   fc.Discovery.HighBand,
			MidBand:    fc.Discovery.MidBand,
		},
	}
	if cfg.Strategy == "" {
		cfg.Strategy = projector.StrategyBalanced
	}
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = projector.DefaultMaxIterations
	}
	def := attractor.DefaultConfig()
	if cfg.Discovery.Eps == 0 {
		cfg.Discovery.Eps = def.Eps
	}
	if cfg.Discovery.MinSamples == 0 {
		cfg.Discovery.MinSamples = def.MinSamples
	}
	if cfg.Discovery.HighBand == 0 {
		cfg.Discovery.HighBand = def.HighBand
	}
	if cfg.Discovery.MidBand == 0 {
		cfg.Discovery.MidBand = def.MidBand
	}
	return cfg
}

// #endregion fixture-loader
