// Package projector repairs invalid manifold points by iterating
// tier-ordered greedy corrections until the constraint table is satisfied
// or an iteration budget runs out. The repair is not a nearest-point
// projection in Euclidean distance: different strategies can land on
// different valid corrections of the same input, and neither is
// guaranteed closer.
package projector

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/ohana-garden/moral-manifold/internal/manifold"
)

// #region projector
// Projector applies correction strategies against one manifold.
type Projector struct {
	manifold *manifold.Manifold
	logger   *zap.Logger
}

// New creates a projector. A nil logger falls back to a no-op logger.
func New(m *manifold.Manifold, logger *zap.Logger) *Projector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Projector{manifold: m, logger: logger}
}

// Validate delegates to the manifold.
func (p *Projector) Validate(v manifold.Vector) (bool, []manifold.Violation) {
	return p.manifold.Validate(v)
}

// #endregion projector

// #region project
// Project re-validates and corrects the vector up to maxIterations times.
// Projecting an already-valid vector returns it unchanged, and projecting
// a projected vector again yields no further change.
//
// Malformed input (any value outside [0,1]) and unknown strategies fail
// fast before any correction. Exhausting the budget is not an error: the
// best-effort vector is returned with Outcome.Converged=false and a
// warning is logged.
func (p *Projector) Project(v manifold.Vector, strategy Strategy, maxIterations int) (manifold.Vector, Outcome, error) {
	if !strategy.valid() {
		return manifold.Vector{}, Outcome{}, fmt.Errorf("unknown strategy %q", strategy)
	}
	if err := structuralCheck(v); err != nil {
		return manifold.Vector{}, Outcome{}, err
	}

	outcome := Outcome{Strategy: strategy}

	ok, violations := p.manifold.Validate(v)
	for !ok && outcome.Iterations < maxIterations {
		v = applyCorrections(v, violations, strategy)
		outcome.Iterations++
		ok, violations = p.manifold.Validate(v)
	}

	outcome.Converged = ok
	outcome.Remaining = violations
	if !ok {
		p.logger.Warn("projection did not converge",
			zap.String("strategy", string(strategy)),
			zap.Int("iterations", outcome.Iterations),
			zap.Int("remaining_violations", len(violations)),
		)
	}
	return v, outcome, nil
}

// ValidateAndCorrect returns the vector unchanged and false when it is
// already valid, else the projected vector and true. Uses the default
// iteration budget.
func (p *Projector) ValidateAndCorrect(v manifold.Vector, strategy Strategy) (manifold.Vector, bool, error) {
	if ok, _ := p.manifold.Validate(v); ok {
		return v, false, nil
	}
	projected, _, err := p.Project(v, strategy, DefaultMaxIterations)
	if err != nil {
		return manifold.Vector{}, false, err
	}
	return projected, true, nil
}

// #endregion project

// #region corrections
// applyCorrections runs one full correction pass: violations are grouped
// by constraint, then corrected in tier order and declaration order.
// Corrections within a pass are sequential, so a later correction may
// re-violate an earlier constraint — the outer loop absorbs that.
func applyCorrections(v manifold.Vector, violations []manifold.Violation, strategy Strategy) manifold.Vector {
	// Violations arrive tier-then-declaration ordered; collapse them into
	// one group per constraint, preserving that order.
	var order []int
	groups := make(map[int][]manifold.Violation)
	for _, viol := range violations {
		if viol.Kind != manifold.KindConstraint {
			continue
		}
		if _, seen := groups[viol.Constraint]; !seen {
			order = append(order, viol.Constraint)
		}
		groups[viol.Constraint] = append(groups[viol.Constraint], viol)
	}

	for _, ci := range order {
		group := groups[ci]
		switch strategy {
		case StrategyRaiseDependencies:
			v = raiseDependencies(v, group)
		case StrategyLowerDependents:
			v = lowerDependent(v, group[0])
		case StrategyBalanced:
			v = balanced(v, group)
		}
	}
	return v
}

// raiseDependencies lifts each unsatisfied counterpart to its required
// minimum. Values already above the minimum are left alone.
func raiseDependencies(v manifold.Vector, group []manifold.Violation) manifold.Vector {
	for _, viol := range group {
		if v[viol.Counterpart] < viol.RequiredMin {
			v[viol.Counterpart] = viol.RequiredMin
		}
	}
	return v
}

// lowerDependent drops the gated dimension to its trigger threshold, the
// highest value compatible with the current dependency values. One move
// resolves every requirement of the constraint.
func lowerDependent(v manifold.Vector, viol manifold.Violation) manifold.Vector {
	if v[viol.Dimension] > viol.Trigger {
		v[viol.Dimension] = viol.Trigger
	}
	return v
}

// balanced compares the total raise against the single lowering move for
// one constraint and applies the smaller change. Ties favor raising.
func balanced(v manifold.Vector, group []manifold.Violation) manifold.Vector {
	var raiseCost float64
	for _, viol := range group {
		if shortfall := viol.RequiredMin - v[viol.Counterpart]; shortfall > 0 {
			raiseCost += shortfall
		}
	}
	lowerCost := v[group[0].Dimension] - group[0].Trigger

	if raiseCost <= lowerCost {
		return raiseDependencies(v, group)
	}
	return lowerDependent(v, group[0])
}

// structuralCheck rejects malformed vectors before any correction.
func structuralCheck(v manifold.Vector) error {
	for d := manifold.Dimension(0); d < manifold.NumDimensions; d++ {
		if v[d] < 0 || v[d] > 1 || math.IsNaN(v[d]) {
			return fmt.Errorf("%w: %s=%v", manifold.ErrOutOfRange, d, v[d])
		}
	}
	return nil
}

// #endregion corrections
