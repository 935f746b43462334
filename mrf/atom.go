package mrf

// FixedValue is the trinary pin state of an Atom (spec §3, §9 "Tagged
// variants for Atom states"). Only unit propagation or the caller may move
// an atom out of Free; once pinned, a solver's flip() must not touch it.
type FixedValue uint8

const (
	// Free means the atom may be flipped by a solver.
	Free FixedValue = iota
	// PinnedTrue means the atom is fixed to true.
	PinnedTrue
	// PinnedFalse means the atom is fixed to false.
	PinnedFalse
)

// String renders the pin state for logging/debugging.
func (f FixedValue) String() string {
	switch f {
	case PinnedTrue:
		return "PINNED_TRUE"
	case PinnedFalse:
		return "PINNED_FALSE"
	default:
		return "FREE"
	}
}

// NoAtom is the reserved sentinel meaning "no atom" (atom ids are strictly
// positive, spec §6).
const NoAtom = 0

// Atom is one ground Boolean variable together with the mutable bookkeeping
// the local-search solvers maintain incrementally (spec §3).
//
// An Atom does not hold its adjacency: that lives in the MRF and is looked
// up by id. Besides its ID, Atom only holds the per-run mutable state that
// an MRFState drives through flip().
type Atom struct {
	// ID is this atom's strictly positive identifier.
	ID int

	// State is the current Boolean truth value.
	State bool

	// LowState is the truth value recorded the last time the running
	// total_cost reached a new minimum.
	LowState bool

	// Fixed is this atom's pin state.
	Fixed FixedValue

	// BreakCost is the sum of |weight| over constraints currently
	// satisfied only by this atom's literal: flipping would violate them.
	BreakCost Cost

	// MakeCost is the sum of |weight| over constraints currently violated
	// that flipping this atom would satisfy.
	MakeCost Cost

	// LastFlip is the iteration at which this atom was last flipped, used
	// for the tabu window. HasFlipped distinguishes "never flipped" from
	// "flipped at iteration 0" (spec §9: split the −(tabu+1) sentinel into
	// an explicit bool rather than relying on a magic iteration number).
	LastFlip   int
	HasFlipped bool

	// TruesCounter accumulates, across MC-SAT samples, how many times this
	// atom's post-restore state was true; used to estimate its marginal.
	TruesCounter int
}

// Delta is break_cost − make_cost: the change in total_cost if this atom
// were flipped right now (spec §3).
func (a *Atom) Delta() Cost {
	return a.BreakCost.Sub(a.MakeCost)
}

// Eligible reports whether a is flippable at all: unpinned.
func (a *Atom) Eligible() bool {
	return a.Fixed == Free
}

// OutOfTabu reports whether a's tabu window has elapsed as of iteration,
// given tabuLength. An atom that has never flipped is always out of tabu.
func (a *Atom) OutOfTabu(iteration, tabuLength int) bool {
	if !a.HasFlipped {
		return true
	}
	return iteration-a.LastFlip > tabuLength
}

// Flippable reports whether a may be chosen by a local-search step: it must
// be unpinned, and either its break cost is zero or its tabu window has
// elapsed (spec §4.3 "Eligibility filter").
func (a *Atom) Flippable(iteration, tabuLength int) bool {
	return a.Eligible() && (a.BreakCost.IsZero() || a.OutOfTabu(iteration, tabuLength))
}

// flip toggles the Boolean state and tabu bookkeeping. It does not touch
// BreakCost/MakeCost: those are the caller's (MRFState.flip's)
// responsibility, since they depend on the atom's constraint adjacency.
func (a *Atom) flip(iteration int) {
	a.State = !a.State
	a.LastFlip = iteration
	a.HasFlipped = true
}
