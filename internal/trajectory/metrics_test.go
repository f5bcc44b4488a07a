package trajectory

import (
	"math"
	"testing"

	"github.com/ohana-garden/moral-manifold/internal/manifold"
)

func TestDistanceIdentity(t *testing.T) {
	v, _ := manifold.NewPoint(map[string]float64{"love": 0.3, "wisdom": 0.8})
	if d := Distance(v, v); d != 0 {
		t.Fatalf("expected zero self-distance, got %v", d)
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a, _ := manifold.NewPoint(map[string]float64{"love": 0.1})
	b, _ := manifold.NewPoint(map[string]float64{"love": 0.9, "unity": 0.2})
	if Distance(a, b) != Distance(b, a) {
		t.Fatalf("distance not symmetric: %v vs %v", Distance(a, b), Distance(b, a))
	}
}

func TestDistanceKnownValue(t *testing.T) {
	a, _ := manifold.NewPoint(nil)
	b, _ := manifold.NewPoint(map[string]float64{"love": 0.8, "justice": 0.9})
	// Differs by 0.3 and 0.4 in two dimensions: distance 0.5.
	if d := Distance(a, b); math.Abs(d-0.5) > 1e-9 {
		t.Fatalf("expected 0.5, got %v", d)
	}
}

func TestPathLengthAdditivity(t *testing.T) {
	a, _ := manifold.NewPoint(map[string]float64{"love": 0.1})
	b, _ := manifold.NewPoint(map[string]float64{"love": 0.5})
	c, _ := manifold.NewPoint(map[string]float64{"love": 0.5, "unity": 0.9})

	seq := []TimedPoint{
		{Timestamp: 1, Point: a},
		{Timestamp: 2, Point: b},
		{Timestamp: 3, Point: c},
	}
	want := Distance(a, b) + Distance(b, c)
	if got := PathLength(seq); math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestPathLengthShortSequences(t *testing.T) {
	if got := PathLength(nil); got != 0 {
		t.Fatalf("expected 0 for empty sequence, got %v", got)
	}
	v, _ := manifold.NewPoint(nil)
	if got := PathLength([]TimedPoint{{Timestamp: 1, Point: v}}); got != 0 {
		t.Fatalf("expected 0 for single point, got %v", got)
	}
}
