package solver

import "math/rand"

// UnsatIndex is the mutable ordered set of currently-unsatisfied constraint
// ids (spec §4.2). Insertion and deletion are idempotent/no-op-on-absence
// respectively and amortized O(1): deleting an element moves the last
// element of the dense id array into the freed slot, so "position" is kept
// consistent via a parallel position array indexed by constraint id (spec
// §9: flat integer-indexed arrays, not a map).
//
// A secondary counter, numHard, tracks how many of the current members are
// hard constraints, enabling get_random_hard to pick uniformly among just
// the hard subset without a second container.
type UnsatIndex struct {
	ids     []int // dense array of unsatisfied constraint ids
	pos     []int // pos[cid] = index into ids, or -1 if cid is absent
	numHard int
}

// NewUnsatIndex allocates an UnsatIndex sized for nbConstraints constraint
// ids (0..nbConstraints-1).
func NewUnsatIndex(nbConstraints int) *UnsatIndex {
	pos := make([]int, nbConstraints)
	for i := range pos {
		pos[i] = -1
	}
	return &UnsatIndex{pos: pos}
}

// Len returns the number of currently-unsatisfied constraints.
func (u *UnsatIndex) Len() int { return len(u.ids) }

// NumHard returns how many members are hard constraints.
func (u *UnsatIndex) NumHard() int { return u.numHard }

// Contains reports whether cid is currently a member.
func (u *UnsatIndex) Contains(cid int) bool { return u.pos[cid] >= 0 }

// Add inserts cid, marking it hard if hard is true. Re-adding an already
// present id is a no-op (idempotent insertion, spec §4.2 contract).
func (u *UnsatIndex) Add(cid int, hard bool) {
	if u.pos[cid] >= 0 {
		return
	}
	u.pos[cid] = len(u.ids)
	u.ids = append(u.ids, cid)
	if hard {
		u.numHard++
	}
}

// Remove deletes cid if present (a no-op if absent, spec §4.2 contract),
// moving the last element into the freed slot to keep operations O(1).
func (u *UnsatIndex) Remove(cid int, hard bool) {
	i := u.pos[cid]
	if i < 0 {
		return
	}
	last := len(u.ids) - 1
	lastID := u.ids[last]
	u.ids[i] = lastID
	u.pos[lastID] = i
	u.ids = u.ids[:last]
	u.pos[cid] = -1
	if hard {
		u.numHard--
	}
}

// At returns the constraint id stored at position i (spec §4.2 "apply(i)").
func (u *UnsatIndex) At(i int) int { return u.ids[i] }

// RandomAny returns a uniformly random member, or (0, false) if empty.
func (u *UnsatIndex) RandomAny(rng *rand.Rand) (int, bool) {
	if len(u.ids) == 0 {
		return 0, false
	}
	return u.ids[rng.Intn(len(u.ids))], true
}

// RandomHard returns a uniformly random hard member, or (0, false) if none
// are hard, by walking the id array until the k-th hard constraint is found
// (k uniform in [1, numHard]) — spec §4.2.
func (u *UnsatIndex) RandomHard(rng *rand.Rand, isHard func(cid int) bool) (int, bool) {
	if u.numHard == 0 {
		return 0, false
	}
	k := rng.Intn(u.numHard) + 1
	seen := 0
	for _, cid := range u.ids {
		if isHard(cid) {
			seen++
			if seen == k {
				return cid, true
			}
		}
	}
	return 0, false
}

// Clear empties the index.
func (u *UnsatIndex) Clear() {
	for _, cid := range u.ids {
		u.pos[cid] = -1
	}
	u.ids = u.ids[:0]
	u.numHard = 0
}
