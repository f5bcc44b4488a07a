package report

import (
	"strings"
	"testing"

	"github.com/ohana-garden/moral-manifold/internal/attractor"
	"github.com/ohana-garden/moral-manifold/internal/manifold"
	"github.com/ohana-garden/moral-manifold/internal/trajectory"
)

func sample() attractor.Attractor {
	var centroid manifold.Vector
	for i := range centroid {
		centroid[i] = 0.5
	}
	centroid[manifold.Unity] = 0.8
	return attractor.Attractor{ClusterID: 3, Size: 12, Centroid: centroid, Radius: 0.2}
}

func TestAttractorTable(t *testing.T) {
	out := AttractorTable([]attractor.Attractor{sample()})
	for _, want := range []string{"Cluster", "12", "0.2000", "0.8000"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}

func TestStabilityBlock(t *testing.T) {
	out := StabilityBlock(sample())
	for _, want := range []string{"cluster 3 (12 members)", "radius", "coupling_density", "hub_centroid"} {
		if !strings.Contains(out, want) {
			t.Fatalf("block missing %q:\n%s", want, out)
		}
	}
}

func TestClassificationBlock(t *testing.T) {
	buckets := map[attractor.Category][]attractor.Attractor{
		attractor.CategoryIntegrated: {sample()},
	}
	out := ClassificationBlock(buckets)
	if !strings.Contains(out, "integrated") || !strings.Contains(out, "3") {
		t.Fatalf("missing integrated row:\n%s", out)
	}
	if !strings.Contains(out, "(none)") {
		t.Fatalf("empty buckets should render (none):\n%s", out)
	}
}

func TestTrajectorySummary(t *testing.T) {
	a, _ := manifold.NewPoint(map[string]float64{"love": 0.1})
	b, _ := manifold.NewPoint(map[string]float64{"love": 0.9})

	out := TrajectorySummary("agent-a", []trajectory.TimedPoint{
		{Timestamp: 0, Point: a},
		{Timestamp: 60, Point: b},
	})
	for _, want := range []string{"agent-a", "2 points", "span 60.0s", "0.8000"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}

	if out := TrajectorySummary("agent-b", nil); !strings.Contains(out, "no points") {
		t.Fatalf("expected no-points message:\n%s", out)
	}
}
