package trajectory

import "github.com/ohana-garden/moral-manifold/internal/manifold"

// #region timed-point
// TimedPoint is one stored observation: a manifold point at a unix
// timestamp (seconds). Immutable once recorded.
type TimedPoint struct {
	Timestamp float64
	Point     manifold.Vector
}

// #endregion timed-point
