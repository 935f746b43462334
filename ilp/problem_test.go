package ilp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"gophermln/ilp"
	"gophermln/mrf"
)

func TestBuildEmptyMRF(t *testing.T) {
	r := require.New(t)
	// Atoms[0] is the reserved unused placeholder slot, so a 1-element
	// Atoms slice means zero real atoms (NbAtoms() == 0) without going
	// through Builder, which itself refuses to construct an empty network.
	net := &mrf.MRF{Atoms: make([]mrf.Atom, 1)}
	_, err := ilp.Build(net)
	r.ErrorIs(err, mrf.ErrEmptyMRF)
}

func TestBuildHardConstraintRow(t *testing.T) {
	r := require.New(t)
	b := mrf.NewBuilder(2)
	b.AddConstraint(math.Inf(1), []mrf.Literal{1, -2}) // hard: atom1 OR NOT atom2
	net, err := b.Build()
	r.NoError(err)

	p, err := ilp.Build(net)
	r.NoError(err)
	r.Equal(2, p.NbAtoms())
	r.Equal(0, p.NbZVars(), "hard constraints never need a z variable")

	// Row 0 is the hard clause's Σχ(ℓ) ≥ 1 - constant row.
	r.True(p.RowIsGE(0))
	r.InDelta(1.0, p.RowCoeff(0, 0), 1e-9)  // +y_1 for literal 1
	r.InDelta(-1.0, p.RowCoeff(0, 1), 1e-9) // -y_2 for literal -2
	r.InDelta(0.0, p.RowRHS(0), 1e-9)       // rhs = 1 - constant(1) = 0
}

func TestBuildPositiveSoftConstraintGetsZVarAndObjective(t *testing.T) {
	r := require.New(t)
	b := mrf.NewBuilder(2)
	b.AddConstraint(4, []mrf.Literal{1, 2}) // positive soft, non-unit
	net, err := b.Build()
	r.NoError(err)

	p, err := ilp.Build(net)
	r.NoError(err)
	r.Equal(1, p.NbZVars())

	zCol := p.ZColumn(0)
	r.Greater(zCol, 0)
	r.InDelta(4.0, p.ObjCoeff(zCol-1), 1e-9, "objective gets |weight|*z_c for the soft clause")

	// The Σχ(ℓ) ≥ z_c row is rewritten Σχ(ℓ) - z_c ≥ 0.
	r.True(p.RowIsGE(0))
	r.InDelta(1.0, p.RowCoeff(0, 0), 1e-9)
	r.InDelta(1.0, p.RowCoeff(0, 1), 1e-9)
	r.InDelta(-1.0, p.RowCoeff(0, zCol-1), 1e-9)
	r.InDelta(0.0, p.RowRHS(0), 1e-9)
}

func TestBuildNegativeSoftConstraintGetsPerLiteralRows(t *testing.T) {
	r := require.New(t)
	b := mrf.NewBuilder(2)
	b.AddConstraint(-3, []mrf.Literal{1, -2}) // negative soft, non-unit
	net, err := b.Build()
	r.NoError(err)

	p, err := ilp.Build(net)
	r.NoError(err)
	zCol := p.ZColumn(0)
	r.Greater(zCol, 0)
	r.InDelta(3.0, p.ObjCoeff(zCol-1), 1e-9)

	// Two per-literal rows: χ(1) - z_c ≥ 0, and χ(-2) - z_c ≥ -1 (since
	// χ(-2) = 1 - y_2, rearranged as -y_2 - z_c ≥ -1).
	r.True(p.RowIsGE(0))
	r.InDelta(1.0, p.RowCoeff(0, 0), 1e-9)
	r.InDelta(-1.0, p.RowCoeff(0, zCol-1), 1e-9)
	r.InDelta(0.0, p.RowRHS(0), 1e-9)

	r.True(p.RowIsGE(1))
	r.InDelta(-1.0, p.RowCoeff(1, 1), 1e-9)
	r.InDelta(-1.0, p.RowCoeff(1, zCol-1), 1e-9)
	r.InDelta(-1.0, p.RowRHS(1), 1e-9)
}

func TestBuildUnitSoftConstraintContributesObjectiveNotZVar(t *testing.T) {
	r := require.New(t)
	b := mrf.NewBuilder(2)
	b.AddConstraint(6, []mrf.Literal{1})  // positive unit soft
	b.AddConstraint(-2, []mrf.Literal{2}) // negative unit soft
	net, err := b.Build()
	r.NoError(err)

	p, err := ilp.Build(net)
	r.NoError(err)
	r.Equal(0, p.NbZVars(), "unit constraints never need a z variable")
	r.InDelta(6.0, p.ObjCoeff(0), 1e-9, "positive unit literal contributes weight*y_a")
	r.InDelta(-2.0, p.ObjCoeff(1), 1e-9, "unit literal is positive, so its weight (negative) contributes directly")
}

func TestBuildAppendsUpperBoundRowsPerColumn(t *testing.T) {
	r := require.New(t)
	b := mrf.NewBuilder(1)
	b.AddConstraint(5, []mrf.Literal{1})
	net, err := b.Build()
	r.NoError(err)

	p, err := ilp.Build(net)
	r.NoError(err)
	last := p.NbRows() - 1
	r.False(p.RowIsGE(last), "the trailing bound rows are ≤ 1, not ≥")
	r.InDelta(1.0, p.RowRHS(last), 1e-9)
}
