package mrf

import (
	"math"
	"sort"
)

// Literal is a signed ground-atom reference: a positive value means "this
// atom must be true to satisfy the clause", a negative value means "this
// atom must be false" (spec §3 Glossary). Its magnitude is always a valid
// atom id.
type Literal int

// Atom returns the atom id this literal refers to, regardless of sign.
func (l Literal) Atom() int {
	if l < 0 {
		return int(-l)
	}
	return int(l)
}

// IsPositive reports whether this literal requires its atom to be true.
func (l Literal) IsPositive() bool { return l > 0 }

// Negate returns the complementary literal.
func (l Literal) Negate() Literal { return -l }

// Satisfied reports whether this literal evaluates to true given state.
func (l Literal) Satisfied(state bool) bool { return state == l.IsPositive() }

// NoConstraint is the reserved sentinel meaning "no constraint".
const NoConstraint = -1

// ConstraintMode selects per-constraint cost semantics (spec §3, §9
// "Dispatch over solver mode"): an enum branch, not virtual dispatch.
type ConstraintMode uint8

const (
	// ModeMWS: cost of an unsatisfied-as-required constraint is |weight|.
	ModeMWS ConstraintMode = iota
	// ModeSampleSat: cost of an unsatisfied-as-required constraint is 1.
	ModeSampleSat
)

// Constraint is one ground clause (spec §3): immutable identity, weight,
// and sorted literal array, plus the mutable bookkeeping MRFState maintains.
type Constraint struct {
	// ID is this constraint's identifier (its index in MRF.Constraints).
	ID int

	// Weight is the (possibly negative) clause weight. Its sign determines
	// IsPositive; in ModeMWS its magnitude is what gets added to total_cost
	// (in ModeSampleSat the cost is 1, see CostUnit).
	Weight Cost

	// Hard marks the effective-infinite weight sentinel (weight_hard or a
	// non-finite weight), per spec §3 "is_hard".
	Hard bool

	// Literals is the sorted signed-literal array (sorted by atom id for
	// deterministic iteration and stable watch selection).
	Literals []Literal

	// Threshold is the precomputed per-constraint probability used by
	// select_some_sat_constraints (spec §4.1), typically 1 − e^(−|w|).
	// It is meaningless (and unused) for hard constraints.
	Threshold float64

	// Nsat is the number of currently-true literals.
	Nsat int

	// Inactive excludes this constraint from the current MC-SAT slice.
	Inactive bool

	// IsSatisfiedByFixed is set when a pinned atom already satisfies this
	// constraint; solvers then skip it entirely.
	IsSatisfiedByFixed bool

	// Mode selects the cost formula (spec §3 cost table).
	Mode ConstraintMode

	// Watch1, Watch2 are indices into Literals of up to two satisfying
	// literals, maintained opportunistically for fast rescans (spec §3).
	// -1 means unset.
	Watch1 int
	Watch2 int
}

// NewConstraint builds a Constraint from its weight and literal list. It
// sorts literals by atom id (stable watch selection) and precomputes
// Threshold. It does not validate the literals: MRF construction does that
// once, up front, per spec §7 "Malformed constraint".
func NewConstraint(id int, weight Cost, lits []Literal, hard bool) *Constraint {
	sorted := make([]Literal, len(lits))
	copy(sorted, lits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Atom() < sorted[j].Atom() })
	c := &Constraint{
		ID:       id,
		Weight:   weight,
		Hard:     hard,
		Literals: sorted,
		Watch1:   -1,
		Watch2:   -1,
	}
	c.Threshold = satPotentialThreshold(weight)
	return c
}

// satPotentialThreshold computes 1 − e^(−|w|) via math; kept as a plain
// function (not a Cost method) since this is a probability, not a cost, and
// float64 precision is more than enough for a slice-selection coin flip.
func satPotentialThreshold(w Cost) float64 {
	mag := w.Abs().Float64()
	return 1 - math.Exp(-mag)
}

// IsPositive reports whether Weight > 0.
func (c *Constraint) IsPositive() bool { return c.Weight.Sign() > 0 }

// IsUnit reports whether this constraint has exactly one literal.
func (c *Constraint) IsUnit() bool { return len(c.Literals) == 1 }

// IsSatisfied reports whether Nsat > 0.
func (c *Constraint) IsSatisfied() bool { return c.Nsat > 0 }

// AbsWeight returns |Weight|.
func (c *Constraint) AbsWeight() Cost { return c.Weight.Abs() }

// CostUnit returns the per-constraint cost that MWS/SampleSAT would apply
// if this constraint is in violated state right now (i.e. it contributes
// its cost). It does not itself decide whether the constraint is violated;
// callers combine it with the cost table's nsat branch (spec §3 "Cost of a
// constraint").
func (c *Constraint) CostUnit() Cost {
	if c.Mode == ModeSampleSat {
		return OneCost
	}
	return c.AbsWeight()
}

// Cost returns this constraint's current contribution to total_cost, per
// the spec §3 cost table: a positive-weight constraint costs when nsat==0,
// a negative-weight constraint costs when nsat>0.
func (c *Constraint) Cost() Cost {
	violated := (c.IsPositive() && c.Nsat == 0) || (!c.IsPositive() && c.Nsat > 0)
	if !violated {
		return ZeroCost
	}
	return c.CostUnit()
}
