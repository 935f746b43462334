package ilp

// Status reports how the underlying LP solver concluded.
type Status int

const (
	// StatusOptimal means the solver found a provably optimal solution.
	StatusOptimal Status = iota
	// StatusNonConvergent covers every other outcome (infeasible,
	// unbounded, suboptimal, numerical failure, ...) — spec §7
	// "LP non-convergence" folds all of these into one warn-and-zero path.
	StatusNonConvergent
)

// Result is the LP relaxation's solution (spec §6 "(status, objective,
// assignment[])").
type Result struct {
	Status    Status
	Objective float64

	// Y holds the fractional atom assignment, indexed 0..NbAtoms-1 for
	// atom ids 1..NbAtoms. On StatusNonConvergent this is the zero vector
	// (spec §7).
	Y []float64
}

// Threshold maps the fractional assignment back to atoms (spec §4.5
// "y_a ≥ cutoff → true"). There is no default cutoff: the caller chooses it
// (0.5 gives the plain threshold rule), per the spec's open
// "fractional-to-integral mapping" question.
func (r *Result) Threshold(cutoff float64) map[int]bool {
	out := make(map[int]bool, len(r.Y))
	for i, y := range r.Y {
		out[i+1] = y >= cutoff
	}
	return out
}
