package mrf

import "math"

// MRF is the immutable ground network: every constraint and atom the
// solvers will ever touch, plus the adjacency needed to find, for any
// atom, every constraint it appears in (spec §3).
//
// MRF is built once (by an external grounder, out of scope for this
// package — see Builder for the minimal in-repo construction helper) and
// is read-only for its lifetime; any number of MRFState instances may share
// one MRF, each owning its own mutable atom/constraint scratch state (spec
// §3 "Ownership & lifecycle", §5 "Shared-resource policy").
//
// Atoms and Constraints are stored in flat, id-indexed slices rather than
// maps (spec §9 "Mutation via polymorphic collection iteration ... target
// language should use integer-indexed primitive arrays"). Index 0 of Atoms
// is an unused placeholder so that atom id i lives at Atoms[i], matching
// the reserved NoAtom=0 sentinel.
type MRF struct {
	// Atoms holds every ground atom, indexed by id (Atoms[0] is unused).
	Atoms []Atom

	// Constraints holds every ground clause, indexed by id (0-based, no
	// reserved slot: NoConstraint is -1, not 0, since constraint ids are
	// valid starting at 0).
	Constraints []*Constraint

	// PosAdj[aid] lists the ids of constraints where atom aid appears
	// positively; NegAdj[aid] lists where it appears negatively.
	PosAdj [][]int
	NegAdj [][]int

	// QueryStartID, QueryEndID mark the inclusive range of atom ids the
	// caller wants results for.
	QueryStartID int
	QueryEndID   int

	// WeightHard is the effective weight used for hard constraints (spec
	// §6: grounder computes it as ceil(10 + sum of achievable soft
	// weight)), so that it strictly dominates any achievable soft sum.
	WeightHard Cost

	// MaxLiteralsPerConstraint bounds the size of per-flip scratch buffers
	// (spec §3).
	MaxLiteralsPerConstraint int
}

// NbAtoms returns the number of ground atoms (ids 1..NbAtoms).
func (m *MRF) NbAtoms() int { return len(m.Atoms) - 1 }

// NbConstraints returns the number of ground constraints.
func (m *MRF) NbConstraints() int { return len(m.Constraints) }

// QueryAtoms returns the inclusive range of query atom ids.
func (m *MRF) QueryAtoms() (start, end int) { return m.QueryStartID, m.QueryEndID }

// rawConstraint is the input shape Builder accepts before validation: a
// float64 weight (as delivered by an external grounder) and a signed
// literal list.
type rawConstraint struct {
	weight float64
	lits   []Literal
}

// Builder incrementally assembles an MRF. It is a deliberately minimal
// constructor: it does not parse rule syntax or ground anything (that is
// explicitly out of scope, spec §1) — it only turns an already-ground atom
// count, literal lists, and a query range into the indexed MRF structure
// spec §3 describes, validating per spec §7 ("Malformed constraint",
// "Empty MRF") as it goes.
type Builder struct {
	nbAtoms       int
	constraints   []rawConstraint
	queryStart    int
	queryEnd      int
	weightHard    float64
	hasWeightHard bool
}

// NewBuilder starts a Builder for a network with nbAtoms ground atoms
// (valid ids 1..nbAtoms).
func NewBuilder(nbAtoms int) *Builder {
	return &Builder{nbAtoms: nbAtoms}
}

// AddConstraint appends one ground clause with the given weight and signed
// literals (positive id = atom, negative id = negated atom). It returns the
// new constraint's id (its index, assigned in insertion order).
func (b *Builder) AddConstraint(weight float64, lits []Literal) int {
	id := len(b.constraints)
	litsCopy := make([]Literal, len(lits))
	copy(litsCopy, lits)
	b.constraints = append(b.constraints, rawConstraint{weight: weight, lits: litsCopy})
	return id
}

// SetQueryRange records the inclusive [start, end] atom id range the
// caller wants results for.
func (b *Builder) SetQueryRange(start, end int) {
	b.queryStart, b.queryEnd = start, end
}

// SetWeightHard records the effective hard-constraint weight (spec §6). If
// never called, Build derives one as 10 + the sum of |weight| over all
// finite-weight soft constraints, rounded up, which dominates any achievable soft sum
// the way the grounder's own formula (spec §6) is designed to.
func (b *Builder) SetWeightHard(w float64) {
	b.weightHard = w
	b.hasWeightHard = true
}

// Build validates and assembles the MRF. Malformed constraints (NaN
// weight, empty literal array, zero literal id, or an out-of-range atom
// id) and empty networks (zero atoms) are fatal per spec §7: Build returns
// the matching sentinel error and no MRF. A constraint with an infinite
// weight is marked hard and stored with weight ±WeightHard.
func (b *Builder) Build() (*MRF, error) {
	if b.nbAtoms <= 0 {
		return nil, ErrEmptyMRF
	}
	softSum := 0.0
	for _, rc := range b.constraints {
		if math.IsNaN(rc.weight) {
			return nil, ErrMalformedConstraint
		}
		if len(rc.lits) == 0 {
			return nil, ErrMalformedConstraint
		}
		for _, l := range rc.lits {
			if l == 0 {
				return nil, ErrMalformedConstraint
			}
			if l.Atom() < 1 || l.Atom() > b.nbAtoms {
				return nil, ErrUnknownAtom
			}
		}
		if !math.IsInf(rc.weight, 0) {
			softSum += math.Abs(rc.weight)
		}
	}
	weightHard := b.weightHard
	if !b.hasWeightHard {
		weightHard = math.Ceil(10 + softSum)
	}

	m := &MRF{
		Atoms:        make([]Atom, b.nbAtoms+1),
		Constraints:  make([]*Constraint, len(b.constraints)),
		PosAdj:       make([][]int, b.nbAtoms+1),
		NegAdj:       make([][]int, b.nbAtoms+1),
		QueryStartID: b.queryStart,
		QueryEndID:   b.queryEnd,
		WeightHard:   CostFromFloat(weightHard),
	}
	for i := 1; i <= b.nbAtoms; i++ {
		m.Atoms[i] = Atom{ID: i, Fixed: Free}
	}
	maxLits := 0
	for id, rc := range b.constraints {
		hard := math.IsInf(rc.weight, 0) || rc.weight == weightHard
		w := rc.weight
		if math.IsInf(w, 0) {
			w = math.Copysign(weightHard, w)
		}
		c := NewConstraint(id, CostFromFloat(w), rc.lits, hard)
		m.Constraints[id] = c
		if len(c.Literals) > maxLits {
			maxLits = len(c.Literals)
		}
		for _, l := range c.Literals {
			aid := l.Atom()
			if l.IsPositive() {
				m.PosAdj[aid] = append(m.PosAdj[aid], id)
			} else {
				m.NegAdj[aid] = append(m.NegAdj[aid], id)
			}
		}
	}
	m.MaxLiteralsPerConstraint = maxLits
	return m, nil
}
