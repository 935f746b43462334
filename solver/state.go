package solver

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"gophermln/mrf"
)

// ErrContradiction is returned by unit propagation when it is asked to pin
// an atom to a value opposite to its existing pin, or when a hard
// constraint ends up with every literal pinned to a value that does not
// satisfy it (spec §7 "Contradiction"). Reset, MaxWalkSAT and MCSAT return
// it to their caller unchanged. ConstraintID is -1 when the contradiction was detected at
// the pin itself rather than while checking a fully-pinned constraint.
type ErrContradiction struct {
	AtomID       int
	ConstraintID int
}

func (e *ErrContradiction) Error() string {
	if e.ConstraintID < 0 {
		return fmt.Sprintf("solver: unit propagation contradiction pinning atom %d", e.AtomID)
	}
	return fmt.Sprintf("solver: unit propagation contradiction, constraint %d unsatisfiable under current pins", e.ConstraintID)
}

// Option configures an MRFState at construction time.
type Option func(*MRFState)

// WithSeed sets the deterministic PRNG seed for this state (spec §5
// "random-number draws MUST use a per-state random generator so runs with
// the same seed replay identically").
func WithSeed(seed int64) Option {
	return func(s *MRFState) { s.rng = newRand(seed) }
}

// WithRand installs an already-constructed PRNG, e.g. one derived via
// deriveRand for an independent sample stream.
func WithRand(rng *rand.Rand) Option {
	return func(s *MRFState) { s.rng = rng }
}

// WithLogger installs a zerolog.Logger for progress/warning output. The
// default is zerolog.Nop() (silent), matching gophersat's Verbose=false
// default.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *MRFState) { s.logger = logger }
}

// MRFState is the mutable heart of the engine (spec §4.1): it owns one
// private copy of every Atom and Constraint's mutable bookkeeping, and
// exposes flip as its single mutation entry point. Any number of MRFStates
// may share the same read-only MRF (spec §3 "Ownership & lifecycle").
type MRFState struct {
	net *mrf.MRF

	atoms       []mrf.Atom
	constraints []*mrf.Constraint

	unsat     *UnsatIndex
	totalCost mrf.Cost
	lowCost   mrf.Cost

	dirty      []int
	dirtySeen  []bool
	priorityBuf []int

	hardPriority bool // sat_hard_priority: selection policy (set by caller, not by state itself)

	rng    *rand.Rand
	logger zerolog.Logger
}

// NewMRFState clones net's atoms and constraints into fresh mutable scratch
// state, ready for evaluate_costs/reset.
func NewMRFState(net *mrf.MRF, opts ...Option) *MRFState {
	s := &MRFState{
		net:       net,
		atoms:     make([]mrf.Atom, len(net.Atoms)),
		dirtySeen: make([]bool, len(net.Atoms)),
		lowCost:   mrf.MaxCost,
		logger:    defaultLogger(),
	}
	copy(s.atoms, net.Atoms)
	s.constraints = make([]*mrf.Constraint, len(net.Constraints))
	for i, c := range net.Constraints {
		clone := *c
		clone.Literals = append([]mrf.Literal(nil), c.Literals...)
		s.constraints[i] = &clone
	}
	s.unsat = NewUnsatIndex(len(net.Constraints))
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = newRand(0)
	}
	return s
}

// MRF returns the read-only network this state was built from.
func (s *MRFState) MRF() *mrf.MRF { return s.net }

// Atom returns a pointer to this state's mutable copy of atom id.
func (s *MRFState) Atom(id int) *mrf.Atom { return &s.atoms[id] }

// Constraint returns this state's mutable copy of constraint id.
func (s *MRFState) Constraint(id int) *mrf.Constraint { return s.constraints[id] }

// Cost returns the current total_cost.
func (s *MRFState) Cost() mrf.Cost { return s.totalCost }

// LowCost returns the lowest total_cost observed since the last reset.
func (s *MRFState) LowCost() mrf.Cost { return s.lowCost }

// SetHardPriority toggles the sat_hard_priority selection policy used by
// GetRandomUnsatConstraint.
func (s *MRFState) SetHardPriority(on bool) { s.hardPriority = on }

// Rand exposes this state's PRNG, e.g. so a solver can draw its own random
// numbers (move-type coin flips) from the same reproducible stream.
func (s *MRFState) Rand() *rand.Rand { return s.rng }

func (s *MRFState) markDirty(atomID int) {
	if s.dirtySeen[atomID] {
		return
	}
	s.dirtySeen[atomID] = true
	s.dirty = append(s.dirty, atomID)
}

func (s *MRFState) clearDirty() {
	for _, aid := range s.dirty {
		s.dirtySeen[aid] = false
	}
	s.dirty = s.dirty[:0]
}

// countSatisfied scans c's literals against current atom states, returning
// how many are satisfied and the index of the first two that are (for
// watch bookkeeping); unused watch slots are -1.
func (s *MRFState) countSatisfied(c *mrf.Constraint) (nsat, watch1, watch2 int) {
	watch1, watch2 = -1, -1
	for i, l := range c.Literals {
		if l.Satisfied(s.atoms[l.Atom()].State) {
			nsat++
			if watch1 == -1 {
				watch1 = i
			} else if watch2 == -1 {
				watch2 = i
			}
		}
	}
	return
}

// EvaluateCosts is the initial full pass (spec §4.1 "evaluate_costs()"): it
// recomputes nsat/watches for every active, not-fixed-satisfied
// constraint, rebuilds total_cost and the UnsatIndex from scratch, and
// assigns the initial per-atom break/make potentials. It does not
// randomise anything; callers that want a fresh random start use Reset.
func (s *MRFState) EvaluateCosts() {
	s.totalCost = mrf.ZeroCost
	s.unsat = NewUnsatIndex(len(s.constraints))
	s.priorityBuf = s.priorityBuf[:0]
	for i := range s.atoms {
		s.atoms[i].BreakCost = mrf.ZeroCost
		s.atoms[i].MakeCost = mrf.ZeroCost
	}
	for _, c := range s.constraints {
		if c.Inactive || c.IsSatisfiedByFixed {
			continue
		}
		nsat, w1, w2 := s.countSatisfied(c)
		c.Nsat, c.Watch1, c.Watch2 = nsat, w1, w2
		cost := c.Cost()
		s.totalCost = s.totalCost.Add(cost)
		if !cost.IsZero() {
			s.unsat.Add(c.ID, c.Hard)
		}
		switch nsat {
		case 0:
			for _, l := range c.Literals {
				a := &s.atoms[l.Atom()]
				a.MakeCost = a.MakeCost.Add(c.CostUnit())
			}
		case 1:
			solo := c.Literals[w1].Atom()
			s.atoms[solo].BreakCost = s.atoms[solo].BreakCost.Add(c.CostUnit())
		}
	}
}

// findOtherSatisfyingAtom scans c's literals for one, other than exclude,
// that currently satisfies c. Returns mrf.NoAtom if none is found.
func (s *MRFState) findOtherSatisfyingAtom(c *mrf.Constraint, exclude int) int {
	for _, l := range c.Literals {
		aid := l.Atom()
		if aid == exclude {
			continue
		}
		if l.Satisfied(s.atoms[aid].State) {
			return aid
		}
	}
	return mrf.NoAtom
}

func (s *MRFState) literalIndex(c *mrf.Constraint, atomID int) int {
	for i, l := range c.Literals {
		if l.Atom() == atomID {
			return i
		}
	}
	return -1
}

// onBecomingSatisfied applies the spec §4.1 flip-step-3 bookkeeping for one
// constraint whose literal for atomID just became true.
func (s *MRFState) onBecomingSatisfied(c *mrf.Constraint, atomID int) {
	c.Nsat++
	switch c.Nsat {
	case 1:
		if c.IsPositive() {
			s.unsat.Remove(c.ID, c.Hard)
			s.totalCost = s.totalCost.Sub(c.CostUnit())
			if c.Hard {
				s.removeFromPriorityBuf(c.ID)
			}
		} else {
			s.unsat.Add(c.ID, c.Hard)
			s.totalCost = s.totalCost.Add(c.CostUnit())
		}
		for _, l := range c.Literals {
			a := &s.atoms[l.Atom()]
			a.MakeCost = a.MakeCost.Sub(c.CostUnit())
		}
		s.atoms[atomID].BreakCost = s.atoms[atomID].BreakCost.Add(c.CostUnit())
		c.Watch1 = s.literalIndex(c, atomID)
	case 2:
		if other := s.findOtherSatisfyingAtom(c, atomID); other != mrf.NoAtom {
			s.atoms[other].BreakCost = s.atoms[other].BreakCost.Sub(c.CostUnit())
		}
		c.Watch2 = s.literalIndex(c, atomID)
	}
}

// onBecomingUnsatisfied applies the spec §4.1 flip-step-4 bookkeeping for
// one constraint whose literal for atomID just became false.
func (s *MRFState) onBecomingUnsatisfied(c *mrf.Constraint, atomID int) {
	c.Nsat--
	switch c.Nsat {
	case 0:
		if c.IsPositive() {
			s.unsat.Add(c.ID, c.Hard)
			s.totalCost = s.totalCost.Add(c.CostUnit())
			if c.Hard {
				s.priorityBuf = append(s.priorityBuf, c.ID)
			}
		} else {
			s.unsat.Remove(c.ID, c.Hard)
			s.totalCost = s.totalCost.Sub(c.CostUnit())
		}
		for _, l := range c.Literals {
			a := &s.atoms[l.Atom()]
			a.MakeCost = a.MakeCost.Add(c.CostUnit())
		}
		s.atoms[atomID].BreakCost = s.atoms[atomID].BreakCost.Sub(c.CostUnit())
		c.Watch1, c.Watch2 = -1, -1
	case 1:
		if other := s.findOtherSatisfyingAtom(c, atomID); other != mrf.NoAtom {
			s.atoms[other].BreakCost = s.atoms[other].BreakCost.Add(c.CostUnit())
			c.Watch1 = s.literalIndex(c, other)
			c.Watch2 = -1
		}
	}
}

func (s *MRFState) removeFromPriorityBuf(cid int) {
	for i, id := range s.priorityBuf {
		if id == cid {
			s.priorityBuf = append(s.priorityBuf[:i], s.priorityBuf[i+1:]...)
			return
		}
	}
}

// Flip toggles atomID's state and incrementally repairs every invariant
// described in spec §4.1: per-constraint nsat, total_cost, the UnsatIndex,
// every affected atom's break_cost/make_cost, and (if this is a new best)
// the low-state snapshot. Complexity is O(degree of atomID): only
// constraints adjacent to atomID are touched.
func (s *MRFState) Flip(atomID int, iteration int) {
	a := &s.atoms[atomID]
	old := a.State
	a.flip(iteration)
	s.markDirty(atomID)

	for _, cid := range s.net.PosAdj[atomID] {
		c := s.constraints[cid]
		if c.Inactive || c.IsSatisfiedByFixed {
			continue
		}
		if !old {
			s.onBecomingSatisfied(c, atomID)
		} else {
			s.onBecomingUnsatisfied(c, atomID)
		}
	}
	for _, cid := range s.net.NegAdj[atomID] {
		c := s.constraints[cid]
		if c.Inactive || c.IsSatisfiedByFixed {
			continue
		}
		if old {
			s.onBecomingSatisfied(c, atomID)
		} else {
			s.onBecomingUnsatisfied(c, atomID)
		}
	}

	if s.totalCost.LessThan(s.lowCost) {
		for _, aid := range s.dirty {
			s.atoms[aid].LowState = s.atoms[aid].State
		}
		s.lowCost = s.totalCost
		s.clearDirty()
	}
}

// RestoreLowState writes every atom's LowState back into State, undoing any
// flips since the best cost was recorded, and resyncs total_cost to the
// recorded low cost so Cost() reflects the restored assignment.
func (s *MRFState) RestoreLowState() {
	for i := range s.atoms {
		s.atoms[i].State = s.atoms[i].LowState
	}
	s.totalCost = s.lowCost
}

// Reset randomises every unfixed atom's state, clears per-atom deltas and
// tabu bookkeeping, optionally runs unit propagation, then evaluates costs
// and records the result as the new low state (spec §4.1 "reset()").
func (s *MRFState) Reset(tabuLength int, withUnitPropagation bool) error {
	for i := 1; i < len(s.atoms); i++ {
		a := &s.atoms[i]
		if a.Fixed == mrf.Free {
			a.State = s.rng.Intn(2) == 1
		}
		a.BreakCost, a.MakeCost = mrf.ZeroCost, mrf.ZeroCost
		a.HasFlipped = false
		a.LastFlip = 0
	}
	_ = tabuLength // tabu is enforced via HasFlipped/LastFlip at query time, not stored here
	if withUnitPropagation {
		if err := s.UnitPropagate(); err != nil {
			return err
		}
	}
	s.EvaluateCosts()
	for i := range s.atoms {
		s.atoms[i].LowState = s.atoms[i].State
	}
	s.lowCost = s.totalCost
	s.clearDirty()
	s.priorityBuf = s.priorityBuf[:0]
	return nil
}

// SelectOnlyHardConstraints deactivates every soft constraint, leaving only
// hard ones active (spec §4.1 "select_only_hard_constraints()").
func (s *MRFState) SelectOnlyHardConstraints() {
	for _, c := range s.constraints {
		c.Inactive = !c.Hard
	}
}

// SelectAllConstraints reactivates every constraint (spec §4.1
// "select_all_constraints()").
func (s *MRFState) SelectAllConstraints() {
	for _, c := range s.constraints {
		c.Inactive = false
	}
}

// SelectSomeSatConstraints slices the active set for one MC-SAT sample
// (spec §4.1 "select_some_sat_constraints()"): every hard constraint
// stays active; a currently-satisfied soft constraint stays active with
// probability constraint.Threshold; anything else (unsatisfied soft
// constraints) is deactivated for this round.
func (s *MRFState) SelectSomeSatConstraints() {
	for _, c := range s.constraints {
		switch {
		case c.Hard:
			c.Inactive = false
		case c.IsSatisfied():
			c.Inactive = s.rng.Float64() > c.Threshold
		default:
			c.Inactive = true
		}
	}
}

// SetMode sets every constraint's cost-semantics mode (MWS vs SampleSAT).
func (s *MRFState) SetMode(mode mrf.ConstraintMode) {
	for _, c := range s.constraints {
		c.Mode = mode
	}
}

// GetRandomUnsatConstraint implements spec §4.1's selection policy:
// without hard priority, uniform sample from the UnsatIndex; with hard
// priority, prefer a just-broken hard constraint from the priority queue,
// then any hard member of the UnsatIndex, then fall back to uniform.
func (s *MRFState) GetRandomUnsatConstraint() int {
	if !s.hardPriority {
		if cid, ok := s.unsat.RandomAny(s.rng); ok {
			return cid
		}
		return mrf.NoConstraint
	}
	if len(s.priorityBuf) > 0 {
		cid := s.priorityBuf[0]
		s.priorityBuf = s.priorityBuf[1:]
		return cid
	}
	if s.unsat.NumHard() > 0 {
		if cid, ok := s.unsat.RandomHard(s.rng, func(cid int) bool { return s.constraints[cid].Hard }); ok {
			return cid
		}
	}
	if cid, ok := s.unsat.RandomAny(s.rng); ok {
		return cid
	}
	return mrf.NoConstraint
}
