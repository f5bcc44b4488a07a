// Package manifold defines the 14-dimensional virtue space and its fixed
// tiered constraint table. Validation is pure: it reports violations as
// values and never mutates the point — correction belongs to the
// projector.
package manifold

import "math"

// #region manifold
// Manifold holds the constraint table. It is immutable after New and safe
// for concurrent readers; construct one explicitly and pass it around
// rather than sharing a package-level instance.
type Manifold struct {
	constraints []Constraint
}

// New returns a manifold with the fixed default constraint table.
func New() *Manifold {
	return &Manifold{constraints: defaultConstraints()}
}

// Constraints returns the constraint table in declaration order.
func (m *Manifold) Constraints() []Constraint {
	return m.constraints
}

// #endregion manifold

// #region validate
// Validate checks the vector structurally and then against each
// constraint tier in priority order. Structural violations short-circuit:
// if any value is out of range, only structural violations are returned.
// The violation list order is deterministic — tier order, then
// constraint declaration order, then requirement order.
func (m *Manifold) Validate(v Vector) (bool, []Violation) {
	var violations []Violation

	for d := Dimension(0); d < NumDimensions; d++ {
		if v[d] < 0 || v[d] > 1 || math.IsNaN(v[d]) {
			violations = append(violations, Violation{
				Kind:       KindStructural,
				Constraint: -1,
				Dimension:  d,
				Actual:     v[d],
			})
		}
	}
	if len(violations) > 0 {
		return false, violations
	}

	for tier := 1; tier <= 4; tier++ {
		for ci, c := range m.constraints {
			if c.Tier != tier || v[c.Dependent] <= c.Trigger {
				continue
			}
			for _, req := range c.Requirements {
				if v[req.Dim] >= req.Min {
					continue
				}
				violations = append(violations, Violation{
					Kind:        KindConstraint,
					Tier:        c.Tier,
					Constraint:  ci,
					Dimension:   c.Dependent,
					Trigger:     c.Trigger,
					Counterpart: req.Dim,
					RequiredMin: req.Min,
					Actual:      v[req.Dim],
				})
			}
		}
	}

	return len(violations) == 0, violations
}

// #endregion validate

// #region coupling-graph
// CouplingGraph returns, for each dimension, the dimensions its direct
// non-foundation constraints depend on. Introspection only; the projector
// works from the constraint table itself.
func (m *Manifold) CouplingGraph() map[Dimension][]Dimension {
	graph := make(map[Dimension][]Dimension)
	for _, c := range m.constraints {
		if c.Tier == 1 {
			continue
		}
		for _, req := range c.Requirements {
			graph[c.Dependent] = append(graph[c.Dependent], req.Dim)
		}
	}
	return graph
}

// #endregion coupling-graph
