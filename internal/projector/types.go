package projector

import (
	"github.com/ohana-garden/moral-manifold/internal/manifold"
)

// #region strategy
// Strategy names a correction policy for constraint repair.
type Strategy string

const (
	// StrategyRaiseDependencies lifts dependency dimensions up to the
	// minimum that satisfies each violated constraint. Never lowers.
	StrategyRaiseDependencies Strategy = "raise_dependencies"
	// StrategyLowerDependents drops the gated dimension down to the
	// highest value compatible with current dependencies. Never raises.
	StrategyLowerDependents Strategy = "lower_dependents"
	// StrategyBalanced applies whichever of the two moves is smaller per
	// violated constraint; ties favor raising.
	StrategyBalanced Strategy = "balanced"
)

// valid reports whether the strategy is one of the three known policies.
func (s Strategy) valid() bool {
	switch s {
	case StrategyRaiseDependencies, StrategyLowerDependents, StrategyBalanced:
		return true
	}
	return false
}

// #endregion strategy

// #region outcome
// DefaultMaxIterations bounds the correction loop when callers don't
// supply a budget.
const DefaultMaxIterations = 100

// Outcome reports how a projection run ended. A non-converged outcome is
// a degraded result, not an error: the returned vector is best-effort and
// Remaining lists what still fails.
type Outcome struct {
	Strategy   Strategy
	Iterations int
	Converged  bool
	Remaining  []manifold.Violation
}

// #endregion outcome
