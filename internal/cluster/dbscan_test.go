package cluster

import (
	"testing"

	"github.com/ohana-garden/moral-manifold/internal/manifold"
)

// group returns n points near base, spaced by step along one dimension.
func group(base manifold.Vector, dim manifold.Dimension, n int, step float64) []manifold.Vector {
	points := make([]manifold.Vector, n)
	for i := range points {
		p := base
		p[dim] = base[dim] + float64(i)*step
		points[i] = p
	}
	return points
}

func neutral() manifold.Vector {
	var v manifold.Vector
	for i := range v {
		v[i] = 0.5
	}
	return v
}

func TestClusterTwoGroups(t *testing.T) {
	far := neutral()
	far[manifold.Love] = 0.95

	points := append(group(neutral(), manifold.Truthfulness, 4, 0.01),
		group(far, manifold.Truthfulness, 4, 0.01)...)

	labels := DBSCAN{}.Cluster(points, 0.1, 3)
	if len(labels) != len(points) {
		t.Fatalf("expected %d labels, got %d", len(points), len(labels))
	}

	for i := 1; i < 4; i++ {
		if labels[i] != labels[0] {
			t.Fatalf("first group split: %v", labels)
		}
	}
	for i := 5; i < 8; i++ {
		if labels[i] != labels[4] {
			t.Fatalf("second group split: %v", labels)
		}
	}
	if labels[0] == labels[4] {
		t.Fatalf("groups merged: %v", labels)
	}
	if labels[0] == Noise || labels[4] == Noise {
		t.Fatalf("dense groups labeled noise: %v", labels)
	}
}

func TestClusterOutlierIsNoise(t *testing.T) {
	outlier := neutral()
	outlier[manifold.Wisdom] = 0.95

	points := append(group(neutral(), manifold.Truthfulness, 5, 0.01), outlier)
	labels := DBSCAN{}.Cluster(points, 0.1, 3)

	if labels[5] != Noise {
		t.Fatalf("expected outlier labeled noise, got %d", labels[5])
	}
}

func TestClusterAllSparse(t *testing.T) {
	// Pairwise distances of 0.3 exceed eps; everything is noise.
	points := group(neutral(), manifold.Love, 4, 0.3)
	labels := DBSCAN{}.Cluster(points, 0.1, 2)

	for i, label := range labels {
		if label != Noise {
			t.Fatalf("expected all noise, point %d got %d", i, label)
		}
	}
}

func TestClusterEmptyInput(t *testing.T) {
	if labels := (DBSCAN{}).Cluster(nil, 0.3, 5); len(labels) != 0 {
		t.Fatalf("expected no labels, got %v", labels)
	}
}
