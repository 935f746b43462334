package solver_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"gophermln/solver"
)

func TestUnsatIndexAddRemoveIdempotent(t *testing.T) {
	r := require.New(t)
	u := solver.NewUnsatIndex(5)

	u.Add(2, false)
	u.Add(2, false) // idempotent
	r.Equal(1, u.Len())
	r.True(u.Contains(2))

	u.Add(3, true)
	r.Equal(1, u.NumHard())

	u.Remove(2, false)
	u.Remove(2, false) // no-op when absent
	r.Equal(1, u.Len())
	r.False(u.Contains(2))

	u.Remove(3, true)
	r.Equal(0, u.NumHard())
	r.Equal(0, u.Len())
}

func TestUnsatIndexRandomAny(t *testing.T) {
	r := require.New(t)
	u := solver.NewUnsatIndex(3)
	rng := rand.New(rand.NewSource(1))

	_, ok := u.RandomAny(rng)
	r.False(ok, "empty index has no member")

	u.Add(0, false)
	u.Add(1, false)
	cid, ok := u.RandomAny(rng)
	r.True(ok)
	r.Contains([]int{0, 1}, cid)
}

func TestUnsatIndexRandomHard(t *testing.T) {
	r := require.New(t)
	u := solver.NewUnsatIndex(4)
	rng := rand.New(rand.NewSource(1))

	u.Add(0, false)
	u.Add(1, true)
	u.Add(2, true)

	isHard := func(cid int) bool { return cid == 1 || cid == 2 }
	for i := 0; i < 20; i++ {
		cid, ok := u.RandomHard(rng, isHard)
		r.True(ok)
		r.Contains([]int{1, 2}, cid)
	}
}

func TestUnsatIndexClear(t *testing.T) {
	r := require.New(t)
	u := solver.NewUnsatIndex(2)
	u.Add(0, true)
	u.Clear()
	r.Equal(0, u.Len())
	r.Equal(0, u.NumHard())
	r.False(u.Contains(0))
}
