package manifold

import "fmt"

// #region constraint
// Requirement is one dependency of a constraint: the counterpart
// dimension must be at least Min while the constraint is active.
type Requirement struct {
	Dim Dimension
	Min float64
}

// Constraint activates when the dependent dimension exceeds Trigger;
// while active, every requirement must hold.
type Constraint struct {
	Tier         int
	Dependent    Dimension
	Trigger      float64
	Requirements []Requirement
}

// #endregion constraint

// #region constraint-table
// defaultConstraints is the fixed constraint table, declared in priority
// order. Correction order within a tier follows declaration order.
//
// Tier 1: truthfulness gates every other virtue.
// Tier 2: unity (hub) rests on love and justice.
// Tier 3: service (bridge) rests on love and humility.
// Tier 4: remaining pairwise couplings.
func defaultConstraints() []Constraint {
	cs := make([]Constraint, 0, 21)

	// Tier 1: any virtue above 0.6 requires truthfulness >= 0.7.
	for d := Dimension(0); d < NumDimensions; d++ {
		if d == Truthfulness {
			continue
		}
		cs = append(cs, Constraint{
			Tier:      1,
			Dependent: d,
			Trigger:   0.6,
			Requirements: []Requirement{
				{Dim: Truthfulness, Min: 0.7},
			},
		})
	}

	cs = append(cs,
		Constraint{
			Tier:      2,
			Dependent: Unity,
			Trigger:   0.6,
			Requirements: []Requirement{
				{Dim: Love, Min: 0.5},
				{Dim: Justice, Min: 0.5},
			},
		},
		Constraint{
			Tier:      3,
			Dependent: Service,
			Trigger:   0.6,
			Requirements: []Requirement{
				{Dim: Love, Min: 0.5},
				{Dim: Humility, Min: 0.4},
			},
		},
		Constraint{Tier: 4, Dependent: Justice, Trigger: 0.7, Requirements: []Requirement{{Dim: Courage, Min: 0.5}}},
		Constraint{Tier: 4, Dependent: Trustworthiness, Trigger: 0.7, Requirements: []Requirement{{Dim: Truthfulness, Min: 0.8}}},
		Constraint{Tier: 4, Dependent: Compassion, Trigger: 0.7, Requirements: []Requirement{{Dim: Love, Min: 0.6}}},
		Constraint{Tier: 4, Dependent: Wisdom, Trigger: 0.7, Requirements: []Requirement{{Dim: Patience, Min: 0.5}}},
		Constraint{Tier: 4, Dependent: Generosity, Trigger: 0.7, Requirements: []Requirement{{Dim: Detachment, Min: 0.5}}},
		Constraint{Tier: 4, Dependent: Forgiveness, Trigger: 0.7, Requirements: []Requirement{{Dim: Compassion, Min: 0.5}}},
		Constraint{Tier: 4, Dependent: Courage, Trigger: 0.8, Requirements: []Requirement{{Dim: Wisdom, Min: 0.4}}},
		Constraint{Tier: 4, Dependent: Humility, Trigger: 0.8, Requirements: []Requirement{{Dim: Detachment, Min: 0.4}}},
	)

	return cs
}

// #endregion constraint-table

// #region violation
// ViolationKind separates structural failures from constraint misses.
type ViolationKind string

const (
	// KindStructural marks an out-of-range or NaN value. Structural
	// violations short-circuit constraint checking.
	KindStructural ViolationKind = "structural"
	// KindConstraint marks one unsatisfied (constraint, requirement) pair.
	KindConstraint ViolationKind = "constraint"
)

// Violation is a structured record of a single failed check. For
// constraint violations it carries everything a corrector needs: the
// dependent dimension and its trigger, the counterpart dimension, the
// required minimum, and the counterpart's actual value.
type Violation struct {
	Kind        ViolationKind
	Tier        int
	Constraint  int // index into the constraint table; -1 for structural
	Dimension   Dimension
	Trigger     float64
	Counterpart Dimension
	RequiredMin float64
	Actual      float64
}

// String renders the violation for logs and reports.
func (v Violation) String() string {
	if v.Kind == KindStructural {
		return fmt.Sprintf("%s=%v outside [0,1]", v.Dimension, v.Actual)
	}
	return fmt.Sprintf("tier %d: %s>%.2f requires %s>=%.2f (actual %.3f)",
		v.Tier, v.Dimension, v.Trigger, v.Counterpart, v.RequiredMin, v.Actual)
}

// #endregion violation
