package attractor

import "github.com/ohana-garden/moral-manifold/internal/manifold"

// #region attractor
// Attractor is a read-only aggregate over the points sharing one cluster
// label. Computed fresh on each discovery call, never persisted or
// updated incrementally.
type Attractor struct {
	ClusterID int // clustering-primitive-assigned; not stable across runs
	Size      int
	Centroid  manifold.Vector // per-dimension mean
	Spread    manifold.Vector // per-dimension standard deviation
	Radius    float64         // max distance from centroid to any member
}

// #endregion attractor

// #region category
// Category is one of the three bands an attractor falls into based on its
// hub (unity) centroid.
type Category string

const (
	CategoryIntegrated Category = "integrated" // hub centroid >= HighBand
	CategoryDeveloping Category = "developing" // hub centroid >= MidBand
	CategoryFragmented Category = "fragmented" // below MidBand
)

// #endregion category

// #region config
// Config holds discovery and classification thresholds.
type Config struct {
	Eps        float64 // DBSCAN neighborhood radius
	MinSamples int     // DBSCAN core-point density
	HighBand   float64 // hub centroid band for "integrated"
	MidBand    float64 // hub centroid band for "developing"
}

// DefaultConfig returns the standard discovery thresholds.
func DefaultConfig() Config {
	return Config{
		Eps:        0.3,
		MinSamples: 5,
		HighBand:   0.7,
		MidBand:    0.4,
	}
}

// #endregion config
