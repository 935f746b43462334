package mrf_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gophermln/mrf"
)

func TestBuilderEmptyMRF(t *testing.T) {
	r := require.New(t)
	_, err := mrf.NewBuilder(0).Build()
	r.ErrorIs(err, mrf.ErrEmptyMRF)
}

func TestBuilderMalformedConstraint(t *testing.T) {
	r := require.New(t)

	b := mrf.NewBuilder(2)
	b.AddConstraint(1, nil)
	_, err := b.Build()
	r.ErrorIs(err, mrf.ErrMalformedConstraint)

	b = mrf.NewBuilder(2)
	b.AddConstraint(1, []mrf.Literal{0})
	_, err = b.Build()
	r.ErrorIs(err, mrf.ErrMalformedConstraint)
}

func TestBuilderUnknownAtom(t *testing.T) {
	r := require.New(t)
	b := mrf.NewBuilder(2)
	b.AddConstraint(1, []mrf.Literal{5})
	_, err := b.Build()
	r.ErrorIs(err, mrf.ErrUnknownAtom)
}

func TestBuilderDerivesWeightHard(t *testing.T) {
	r := require.New(t)
	b := mrf.NewBuilder(2)
	b.AddConstraint(3, []mrf.Literal{1})
	b.AddConstraint(-2, []mrf.Literal{2})
	m, err := b.Build()
	r.NoError(err)
	// 10 + (3 + 2) = 15
	r.True(m.WeightHard.Cmp(mrf.CostFromFloat(15)) == 0)
}

func TestBuilderAdjacencyAndQueryRange(t *testing.T) {
	r := require.New(t)
	b := mrf.NewBuilder(3)
	b.AddConstraint(2, []mrf.Literal{1, -2})
	b.AddConstraint(5, []mrf.Literal{2, 3})
	b.SetQueryRange(1, 2)
	m, err := b.Build()
	r.NoError(err)

	r.Equal(3, m.NbAtoms())
	r.Equal(2, m.NbConstraints())
	r.Equal([]int{0}, m.PosAdj[1])
	r.Equal([]int{0}, m.NegAdj[2])
	r.Equal([]int{1}, m.PosAdj[2])
	r.Equal([]int{1}, m.PosAdj[3])

	start, end := m.QueryAtoms()
	r.Equal(1, start)
	r.Equal(2, end)
}

func TestBuilderExplicitHardWeight(t *testing.T) {
	r := require.New(t)
	b := mrf.NewBuilder(1)
	b.SetWeightHard(42)
	b.AddConstraint(42, []mrf.Literal{1})
	m, err := b.Build()
	r.NoError(err)
	r.True(m.Constraints[0].Hard)
}
