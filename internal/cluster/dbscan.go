// Package cluster provides the density clustering primitive consumed by
// the attractor discoverer. The contract is the seam: any implementation
// with DBSCAN semantics can stand in for the bundled one.
package cluster

import (
	"math"

	"github.com/ohana-garden/moral-manifold/internal/manifold"
)

// #region clusterer
// Noise is the sentinel label for points that belong to no cluster.
const Noise = -1

// Clusterer assigns a cluster label to each point. Labels are opaque
// non-negative integers, not stable across runs; Noise marks unclustered
// points.
type Clusterer interface {
	Cluster(points []manifold.Vector, eps float64, minSamples int) []int
}

// #endregion clusterer

// #region dbscan
// DBSCAN is the bundled density-based clusterer: points with at least
// minSamples neighbors (self included) within eps Euclidean distance seed
// clusters, which grow through density-reachable neighbors.
type DBSCAN struct{}

const unvisited = -2

// Cluster labels every point. Runs in O(n^2) distance checks, which is
// fine at the batch sizes the discoverer feeds it.
func (DBSCAN) Cluster(points []manifold.Vector, eps float64, minSamples int) []int {
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = unvisited
	}

	nextLabel := 0
	for i := range points {
		if labels[i] != unvisited {
			continue
		}
		neighbors := regionQuery(points, i, eps)
		if len(neighbors) < minSamples {
			labels[i] = Noise
			continue
		}

		labels[i] = nextLabel
		// Seed set expansion; the queue grows as new core points join.
		queue := append([]int(nil), neighbors...)
		for qi := 0; qi < len(queue); qi++ {
			j := queue[qi]
			if labels[j] == Noise {
				labels[j] = nextLabel // border point reachable from a core
			}
			if labels[j] != unvisited {
				continue
			}
			labels[j] = nextLabel
			jNeighbors := regionQuery(points, j, eps)
			if len(jNeighbors) >= minSamples {
				queue = append(queue, jNeighbors...)
			}
		}
		nextLabel++
	}

	return labels
}

// regionQuery returns the indexes of all points within eps of point i,
// including i itself.
func regionQuery(points []manifold.Vector, i int, eps float64) []int {
	var neighbors []int
	for j := range points {
		if euclidean(points[i], points[j]) <= eps {
			neighbors = append(neighbors, j)
		}
	}
	return neighbors
}

func euclidean(a, b manifold.Vector) float64 {
	var sumSq float64
	for k := range a {
		d := a[k] - b[k]
		sumSq += d * d
	}
	return math.Sqrt(sumSq)
}

// #endregion dbscan
