package trajectory

import (
	"math"

	"github.com/ohana-garden/moral-manifold/internal/manifold"
)

// #region distance
// Distance is the unweighted L2 distance over all 14 dimensions.
func Distance(a, b manifold.Vector) float64 {
	var sumSq float64
	for i := range a {
		d := a[i] - b[i]
		sumSq += d * d
	}
	return math.Sqrt(sumSq)
}

// PathLength sums consecutive distances along a trajectory. Sequences of
// length <= 1 have length 0.
func PathLength(points []TimedPoint) float64 {
	var total float64
	for i := 1; i < len(points); i++ {
		total += Distance(points[i-1].Point, points[i].Point)
	}
	return total
}

// #endregion distance
