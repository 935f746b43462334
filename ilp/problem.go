// Package ilp builds and solves the LP relaxation of MAP inference (spec
// §4.5): every atom gets a continuous y_a ∈ [0,1], every eligible
// constraint gets a continuous z_c ∈ [0,1], and the resulting linear
// program's optimum is an upper bound on the true MAP objective (property
// 8, spec §8). The LP is handed to github.com/draffensperger/golp, a thin
// Go wrapper around lp_solve.
package ilp

import "gophermln/mrf"

// op is an LP constraint's comparison operator.
type op int

const (
	opGE op = iota
	opLE
)

// row is one dense LP constraint: coeffs op rhs.
type row struct {
	coeffs []float64
	op     op
	rhs    float64
}

// Problem is a fully-built LP relaxation, ready to hand to an LP solver. It
// is immutable once built; Solve may be called repeatedly (e.g. after
// perturbing nothing — it always returns the same result, since the
// network driving it is read-only).
type Problem struct {
	net *mrf.MRF

	nbAtoms int
	// zCol[cid] is this constraint's z_c column (1-based, within the
	// post-atom column range), or 0 if c got no z variable (hard, unit, or
	// zero-weight constraints don't need one).
	zCol []int
	nbZ  int

	obj  []float64 // length nbAtoms+nbZ, 0-indexed by (column-1)
	rows []row
}

// NbCols returns the total number of LP columns (atoms plus z-variables).
func (p *Problem) NbCols() int { return p.nbAtoms + p.nbZ }

// NbAtoms returns how many of the leading columns are atom variables y_a.
func (p *Problem) NbAtoms() int { return p.nbAtoms }

// NbZVars returns how many z_c columns the relaxation needed.
func (p *Problem) NbZVars() int { return p.nbZ }

// ZColumn returns constraint cid's 1-based z_c column, or 0 if it got none.
func (p *Problem) ZColumn(cid int) int { return p.zCol[cid] }

// ObjCoeff returns the objective coefficient of column col (0-indexed).
func (p *Problem) ObjCoeff(col int) float64 { return p.obj[col] }

// NbRows returns how many constraint rows the relaxation produced,
// including the per-column [0,1] upper-bound rows appended at the end.
func (p *Problem) NbRows() int { return len(p.rows) }

// RowCoeff returns row i's coefficient for column col (0-indexed).
func (p *Problem) RowCoeff(i, col int) float64 { return p.rows[i].coeffs[col] }

// RowIsGE reports whether row i is a ≥ constraint (every row built by Build
// is ≥ except the trailing per-column upper-bound rows, which are ≤).
func (p *Problem) RowIsGE(i int) bool { return p.rows[i].op == opGE }

// RowRHS returns row i's right-hand side.
func (p *Problem) RowRHS(i int) float64 { return p.rows[i].rhs }

func needsZVar(c *mrf.Constraint) bool {
	return !c.Hard && !c.IsUnit() && !c.AbsWeight().IsZero()
}

// buildChi accumulates one clause's Σ_ℓ χ(ℓ) into coeffs (y_a coefficient
// +1 for a positive literal, −1 for a negative one) and returns the
// constant term contributed by negated literals (χ(¬a) = 1 − y_a).
func buildChi(lits []mrf.Literal, coeffs []float64) float64 {
	constant := 0.0
	for _, l := range lits {
		col := l.Atom() - 1
		if l.IsPositive() {
			coeffs[col] += 1
		} else {
			coeffs[col] -= 1
			constant += 1
		}
	}
	return constant
}

// Build translates net into its LP relaxation (spec §4.5).
func Build(net *mrf.MRF) (*Problem, error) {
	if net.NbAtoms() == 0 {
		return nil, mrf.ErrEmptyMRF
	}
	p := &Problem{net: net, nbAtoms: net.NbAtoms(), zCol: make([]int, len(net.Constraints))}
	for _, c := range net.Constraints {
		if needsZVar(c) {
			p.nbZ++
			p.zCol[c.ID] = p.nbAtoms + p.nbZ
		}
	}
	total := p.NbCols()
	p.obj = make([]float64, total)

	for _, c := range net.Constraints {
		if !c.Hard {
			switch {
			case c.IsUnit():
				l := c.Literals[0]
				w := c.Weight.Float64()
				if !l.IsPositive() {
					w = -w
				}
				p.obj[l.Atom()-1] += w
			case needsZVar(c):
				p.obj[p.zCol[c.ID]-1] += c.AbsWeight().Float64()
			}
		}

		switch {
		case c.Hard:
			coeffs := make([]float64, total)
			constant := buildChi(c.Literals, coeffs)
			p.rows = append(p.rows, row{coeffs: coeffs, op: opGE, rhs: 1 - constant})
		case c.IsPositive() && !c.IsUnit() && needsZVar(c):
			coeffs := make([]float64, total)
			constant := buildChi(c.Literals, coeffs)
			coeffs[p.zCol[c.ID]-1] -= 1
			p.rows = append(p.rows, row{coeffs: coeffs, op: opGE, rhs: -constant})
		case !c.IsPositive() && !c.IsUnit() && needsZVar(c):
			for _, l := range c.Literals {
				coeffs := make([]float64, total)
				constant := 0.0
				if l.IsPositive() {
					coeffs[l.Atom()-1] = 1
				} else {
					coeffs[l.Atom()-1] = -1
					constant = 1
				}
				coeffs[p.zCol[c.ID]-1] -= 1
				p.rows = append(p.rows, row{coeffs: coeffs, op: opGE, rhs: -constant})
			}
		}
	}

	for col := 0; col < total; col++ {
		upper := make([]float64, total)
		upper[col] = 1
		p.rows = append(p.rows, row{coeffs: upper, op: opLE, rhs: 1})
	}
	return p, nil
}
