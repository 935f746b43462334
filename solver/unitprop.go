package solver

import (
	"fmt"

	"gophermln/mrf"
)

// pin forces atomID to the value that makes literal l true. It returns an
// error if atomID is already pinned to the opposite value (spec §4.1
// "Contradictions ... abort with a fatal error").
func (s *MRFState) pin(l mrf.Literal) error {
	atomID := l.Atom()
	want := mrf.PinnedFalse
	if l.IsPositive() {
		want = mrf.PinnedTrue
	}
	a := &s.atoms[atomID]
	if a.Fixed != mrf.Free && a.Fixed != want {
		return &ErrContradiction{AtomID: atomID, ConstraintID: -1}
	}
	a.Fixed = want
	a.State = l.IsPositive()
	return nil
}

// UnitPropagate is the fix-point described in spec §4.1 "unit_propagation()":
// it first unfixes every atom and clears every constraint's
// IsSatisfiedByFixed flag, then forces every literal of an unsatisfied
// negative-weight constraint false, then repeatedly scans positive
// constraints for unit implications until no more are found. It returns
// *ErrContradiction if two derivations disagree on an atom's value.
func (s *MRFState) UnitPropagate() error {
	for i := 1; i < len(s.atoms); i++ {
		s.atoms[i].Fixed = mrf.Free
	}
	for _, c := range s.constraints {
		c.IsSatisfiedByFixed = false
	}

	for _, c := range s.constraints {
		if c.Inactive || c.IsPositive() {
			continue
		}
		nsat, _, _ := s.countSatisfied(c)
		if nsat != 0 {
			continue
		}
		for _, l := range c.Literals {
			if err := s.pin(l.Negate()); err != nil {
				return err
			}
		}
	}

	for {
		changed := false
		for _, c := range s.constraints {
			if c.Inactive || c.IsSatisfiedByFixed || !c.IsPositive() {
				continue
			}
			satisfiedByFixed := false
			unpinnedIdx := -1
			unpinnedCount := 0
			for i, l := range c.Literals {
				a := &s.atoms[l.Atom()]
				if a.Fixed == mrf.Free {
					unpinnedCount++
					unpinnedIdx = i
					continue
				}
				pinnedTrue := a.Fixed == mrf.PinnedTrue
				if l.Satisfied(pinnedTrue) {
					satisfiedByFixed = true
					break
				}
			}
			switch {
			case satisfiedByFixed:
				c.IsSatisfiedByFixed = true
				changed = true
			case unpinnedCount == 1:
				if err := s.pin(c.Literals[unpinnedIdx]); err != nil {
					return err
				}
				changed = true
			case unpinnedCount == 0 && c.Hard:
				// Every literal is pinned and none satisfies c: the
				// current pins make this hard constraint unsatisfiable,
				// a genuine contradiction. A soft positive constraint in
				// the same state is merely a cost to pay later, not a
				// logical impossibility, so it is left unresolved here.
				return &ErrContradiction{AtomID: c.Literals[0].Atom(), ConstraintID: c.ID}
			}
		}
		if !changed {
			break
		}
	}
	return nil
}
