package manifold

import (
	"errors"
	"fmt"
	"math"
)

// #region dimensions
// Dimension indexes one of the 14 virtue axes. The index order is the
// serialization order for vectors and the column order on disk.
type Dimension int

const (
	Truthfulness Dimension = iota // foundation
	Love
	Justice
	Unity   // hub
	Service // bridge
	Detachment
	Humility
	Trustworthiness
	Patience
	Compassion
	Wisdom
	Courage
	Generosity
	Forgiveness

	NumDimensions = 14
)

var dimensionNames = [NumDimensions]string{
	"truthfulness",
	"love",
	"justice",
	"unity",
	"service",
	"detachment",
	"humility",
	"trustworthiness",
	"patience",
	"compassion",
	"wisdom",
	"courage",
	"generosity",
	"forgiveness",
}

// String returns the dimension's canonical name.
func (d Dimension) String() string {
	if d < 0 || d >= NumDimensions {
		return fmt.Sprintf("dimension(%d)", int(d))
	}
	return dimensionNames[d]
}

// Names returns the 14 dimension names in index order.
func Names() []string {
	names := make([]string, NumDimensions)
	copy(names, dimensionNames[:])
	return names
}

// DimensionByName resolves a name to its Dimension index.
func DimensionByName(name string) (Dimension, bool) {
	for i, n := range dimensionNames {
		if n == name {
			return Dimension(i), true
		}
	}
	return 0, false
}

// #endregion dimensions

// #region vector
// Vector is a point on the manifold: one value in [0,1] per dimension.
type Vector [NumDimensions]float64

// ToMap converts the vector to a name-keyed map for the I/O boundary.
func (v Vector) ToMap() map[string]float64 {
	m := make(map[string]float64, NumDimensions)
	for i, name := range dimensionNames {
		m[name] = v[i]
	}
	return m
}

// #endregion vector

// #region errors
var (
	// ErrUnknownDimension is returned when an override key is not one of
	// the 14 dimension names.
	ErrUnknownDimension = errors.New("unknown dimension")

	// ErrOutOfRange is returned when a value falls outside [0,1].
	ErrOutOfRange = errors.New("value out of range [0,1]")
)

// #endregion errors

// #region new-point
// DefaultValue is the neutral starting value for every dimension.
const DefaultValue = 0.5

// NewPoint builds a vector with every dimension at DefaultValue, then
// applies the given overrides. Override keys must be dimension names and
// values must lie in [0,1].
func NewPoint(overrides map[string]float64) (Vector, error) {
	var v Vector
	for i := range v {
		v[i] = DefaultValue
	}
	for name, val := range overrides {
		d, ok := DimensionByName(name)
		if !ok {
			return Vector{}, fmt.Errorf("%w: %q", ErrUnknownDimension, name)
		}
		if val < 0 || val > 1 || math.IsNaN(val) {
			return Vector{}, fmt.Errorf("%w: %s=%v", ErrOutOfRange, name, val)
		}
		v[d] = val
	}
	return v, nil
}

// #endregion new-point
