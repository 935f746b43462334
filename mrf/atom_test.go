package mrf_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gophermln/mrf"
)

func TestAtomFlippability(t *testing.T) {
	r := require.New(t)
	a := &mrf.Atom{ID: 1, Fixed: mrf.Free}

	r.True(a.Eligible())
	r.True(a.Flippable(0, 10), "never-flipped atom is always flippable")

	a.BreakCost = mrf.CostFromFloat(5)
	a.MakeCost = mrf.CostFromFloat(2)
	r.True(a.Delta().Cmp(mrf.CostFromFloat(3)) == 0)

	// Mark as flipped at iteration 5 with a nonzero break cost: tabu until
	// the window elapses.
	a.LastFlip, a.HasFlipped = 5, true
	r.False(a.Flippable(6, 10), "within tabu window with nonzero break cost")
	r.True(a.Flippable(16, 10), "tabu window elapsed")

	// A zero-break-cost atom escapes tabu immediately (spec §4.3
	// eligibility filter).
	a.BreakCost = mrf.ZeroCost
	r.True(a.Flippable(6, 10))
}

func TestAtomFixedNotEligible(t *testing.T) {
	r := require.New(t)
	a := &mrf.Atom{ID: 1, Fixed: mrf.PinnedTrue}
	r.False(a.Eligible())
	r.False(a.Flippable(0, 10))
}
