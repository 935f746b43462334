package mrf_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gophermln/mrf"
)

func TestConstraintCostTablePositive(t *testing.T) {
	r := require.New(t)
	c := mrf.NewConstraint(0, mrf.CostFromFloat(4), []mrf.Literal{1, -2}, false)
	r.True(c.IsPositive())

	c.Nsat = 0
	r.True(c.Cost().Cmp(mrf.CostFromFloat(4)) == 0, "positive weight costs when nsat==0")

	c.Nsat = 1
	r.True(c.Cost().IsZero(), "positive weight is free once satisfied")
}

func TestConstraintCostTableNegative(t *testing.T) {
	r := require.New(t)
	c := mrf.NewConstraint(0, mrf.CostFromFloat(-4), []mrf.Literal{1, 2}, false)
	r.False(c.IsPositive())

	c.Nsat = 0
	r.True(c.Cost().IsZero(), "negative weight is free when nsat==0")

	c.Nsat = 1
	r.True(c.Cost().Cmp(mrf.CostFromFloat(4)) == 0, "negative weight costs once any literal is true")
}

func TestConstraintSampleSatMode(t *testing.T) {
	r := require.New(t)
	c := mrf.NewConstraint(0, mrf.CostFromFloat(100), []mrf.Literal{1}, false)
	c.Mode = mrf.ModeSampleSat
	c.Nsat = 0
	r.True(c.Cost().Cmp(mrf.OneCost) == 0, "SampleSAT mode costs exactly 1 regardless of weight magnitude")
}

func TestConstraintLiteralsSortedByAtom(t *testing.T) {
	r := require.New(t)
	c := mrf.NewConstraint(0, mrf.CostFromFloat(1), []mrf.Literal{3, -1, 2}, false)
	r.Equal([]mrf.Literal{-1, 2, 3}, c.Literals)
}

func TestLiteralSatisfied(t *testing.T) {
	r := require.New(t)
	var pos mrf.Literal = 3
	var neg mrf.Literal = -3
	r.Equal(3, pos.Atom())
	r.Equal(3, neg.Atom())
	r.True(pos.Satisfied(true))
	r.False(pos.Satisfied(false))
	r.True(neg.Satisfied(false))
	r.False(neg.Satisfied(true))
	r.Equal(neg, pos.Negate())
}
