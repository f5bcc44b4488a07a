// Package attractor clusters recorded manifold points into labeled
// regions and classifies them by the hub dimension. Insufficient or empty
// input degrades to empty results with a logged reason — never an error.
package attractor

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/ohana-garden/moral-manifold/internal/cluster"
	"github.com/ohana-garden/moral-manifold/internal/manifold"
	"github.com/ohana-garden/moral-manifold/internal/trajectory"
)

// couplingThreshold is the centroid level a dimension must exceed to
// count toward coupling density.
const couplingThreshold = 0.6

// #region discoverer
// Discoverer wraps a clustering primitive with attractor aggregation.
type Discoverer struct {
	clusterer cluster.Clusterer
	config    Config
	logger    *zap.Logger
}

// New creates a discoverer. A nil clusterer gets the bundled DBSCAN; a
// nil logger falls back to a no-op logger.
func New(clusterer cluster.Clusterer, config Config, logger *zap.Logger) *Discoverer {
	if clusterer == nil {
		clusterer = cluster.DBSCAN{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Discoverer{clusterer: clusterer, config: config, logger: logger}
}

// #endregion discoverer

// #region discover
// Discover clusters the points and aggregates each non-noise label into
// an Attractor. Results are ordered descending by member count, ties by
// cluster id. Fewer points than MinSamples yields an empty result and a
// warning.
func (d *Discoverer) Discover(points []manifold.Vector) []Attractor {
	if len(points) < d.config.MinSamples {
		d.logger.Warn("too few points for discovery",
			zap.Int("points", len(points)),
			zap.Int("min_samples", d.config.MinSamples),
		)
		return nil
	}

	labels := d.clusterer.Cluster(points, d.config.Eps, d.config.MinSamples)

	members := make(map[int][]manifold.Vector)
	for i, label := range labels {
		if label == cluster.Noise {
			continue
		}
		members[label] = append(members[label], points[i])
	}
	if len(members) == 0 {
		d.logger.Warn("no clusters found",
			zap.Int("points", len(points)),
			zap.Float64("eps", d.config.Eps),
		)
		return nil
	}

	attractors := make([]Attractor, 0, len(members))
	for label, pts := range members {
		attractors = append(attractors, aggregate(label, pts))
	}
	sort.Slice(attractors, func(i, j int) bool {
		if attractors[i].Size != attractors[j].Size {
			return attractors[i].Size > attractors[j].Size
		}
		return attractors[i].ClusterID < attractors[j].ClusterID
	})
	return attractors
}

// aggregate computes centroid, per-dimension spread, and radius for one
// cluster's members.
func aggregate(label int, pts []manifold.Vector) Attractor {
	n := float64(len(pts))

	var centroid manifold.Vector
	for _, p := range pts {
		for i := range p {
			centroid[i] += p[i]
		}
	}
	for i := range centroid {
		centroid[i] /= n
	}

	var spread manifold.Vector
	for _, p := range pts {
		for i := range p {
			d := p[i] - centroid[i]
			spread[i] += d * d
		}
	}
	for i := range spread {
		spread[i] = math.Sqrt(spread[i] / n)
	}

	var radius float64
	for _, p := range pts {
		if dist := trajectory.Distance(centroid, p); dist > radius {
			radius = dist
		}
	}

	return Attractor{
		ClusterID: label,
		Size:      len(pts),
		Centroid:  centroid,
		Spread:    spread,
		Radius:    radius,
	}
}

// #endregion discover

// #region classify
// Classify partitions attractors into the three hub-centroid bands. Every
// attractor lands in exactly one bucket.
func (d *Discoverer) Classify(attractors []Attractor) map[Category][]Attractor {
	buckets := map[Category][]Attractor{
		CategoryIntegrated: nil,
		CategoryDeveloping: nil,
		CategoryFragmented: nil,
	}
	for _, a := range attractors {
		hub := a.Centroid[manifold.Unity]
		switch {
		case hub >= d.config.HighBand:
			buckets[CategoryIntegrated] = append(buckets[CategoryIntegrated], a)
		case hub >= d.config.MidBand:
			buckets[CategoryDeveloping] = append(buckets[CategoryDeveloping], a)
		default:
			buckets[CategoryFragmented] = append(buckets[CategoryFragmented], a)
		}
	}
	return buckets
}

// #endregion classify

// #region metrics
// StabilityMetrics summarizes one attractor: radius, mean spread across
// dimensions, hub and foundation centroid levels, and coupling density —
// the fraction of dimensions whose centroid exceeds the coupling
// threshold.
func StabilityMetrics(a Attractor) map[string]float64 {
	var spreadSum float64
	for _, s := range a.Spread {
		spreadSum += s
	}

	coupled := 0
	for _, c := range a.Centroid {
		if c > couplingThreshold {
			coupled++
		}
	}

	return map[string]float64{
		"radius":              a.Radius,
		"mean_spread":         spreadSum / manifold.NumDimensions,
		"hub_centroid":        a.Centroid[manifold.Unity],
		"foundation_centroid": a.Centroid[manifold.Truthfulness],
		"coupling_density":    float64(coupled) / manifold.NumDimensions,
	}
}

// #endregion metrics

// #region basin
// BasinOfAttraction marks which points lie within radiusMultiplier times
// the attractor's radius of its centroid.
func BasinOfAttraction(a Attractor, points []manifold.Vector, radiusMultiplier float64) []bool {
	mask := make([]bool, len(points))
	limit := a.Radius * radiusMultiplier
	for i, p := range points {
		mask[i] = trajectory.Distance(a.Centroid, p) <= limit
	}
	return mask
}

// Nearest returns the attractor whose centroid is closest to the point.
// Ties keep the first encountered, which is stable given Discover's sort
// order. ok is false when the list is empty.
func Nearest(point manifold.Vector, attractors []Attractor) (nearest Attractor, dist float64, ok bool) {
	if len(attractors) == 0 {
		return Attractor{}, 0, false
	}
	nearest = attractors[0]
	dist = trajectory.Distance(point, attractors[0].Centroid)
	for _, a := range attractors[1:] {
		if d := trajectory.Distance(point, a.Centroid); d < dist {
			nearest, dist = a, d
		}
	}
	return nearest, dist, true
}

// #endregion basin
