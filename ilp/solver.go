package ilp

import (
	golp "github.com/draffensperger/golp"
	"github.com/rs/zerolog"
)

// Solve hands p to lp_solve via golp and reads back a (status, objective,
// assignment) tuple (spec §6 "LP solver boundary"). On infeasibility or
// any non-optimal status it warns via logger and returns the zero vector
// (spec §7 "LP non-convergence").
func Solve(p *Problem, logger zerolog.Logger) (*Result, error) {
	lp := golp.NewLP(0, p.NbCols())
	defer lp.Delete()

	for _, r := range p.rows {
		ct := golp.GE
		if r.op == opLE {
			ct = golp.LE
		}
		lp.AddConstraint(r.coeffs, ct, r.rhs)
	}
	lp.SetObjFn(p.obj)
	lp.SetMaximize()

	status := lp.Solve()
	if status != golp.OPTIMAL {
		logger.Warn().Int("lp_status", int(status)).Msg("LP solver did not converge to an optimum")
		return &Result{Status: StatusNonConvergent, Y: make([]float64, p.nbAtoms)}, nil
	}

	vars := make([]float64, p.NbCols())
	lp.Variables(vars)
	y := make([]float64, p.nbAtoms)
	copy(y, vars[:p.nbAtoms])

	return &Result{Status: StatusOptimal, Objective: lp.Objective(), Y: y}, nil
}
