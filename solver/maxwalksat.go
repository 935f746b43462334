package solver

import (
	"github.com/rs/zerolog"

	"gophermln/mrf"
)

// debugTickInterval bounds how often the per-flip Debug tick fires, so the
// level check happens once per tick instead of once per flip on the hot
// path (spec §2.2 logging).
const debugTickInterval = 10_000

// MaxWalkSATParams configures one MaxWalkSAT run (spec §4.3). Zero-value
// params are invalid; use DefaultMaxWalkSATParams and override selectively.
type MaxWalkSATParams struct {
	// PBest is the probability of taking the greedy (lowest-delta) move
	// instead of a uniform-random noisy move at each flip.
	PBest float64
	// MaxFlips bounds how many flips a single try may spend.
	MaxFlips int
	// MaxTries is how many independent random restarts to attempt.
	MaxTries int
	// TargetCost is the cost at or below which a try is considered solved.
	TargetCost float64
	// TabuLength is how many iterations a just-flipped atom with nonzero
	// break cost is forbidden from flipping back.
	TabuLength int
	// SatHardUnit trivially satisfies every hard unit clause right after
	// reset, before the flip loop begins.
	SatHardUnit bool
	// SatHardPriority prefers repairing a just-broken hard constraint over
	// a uniform draw from the unsatisfied set.
	SatHardPriority bool
	// OutputAll controls result emission only (spec §6 "Output"): when
	// true, EmitMAP writes every query atom; when false, only atoms whose
	// final state is true. It has no effect on the search loop itself.
	OutputAll bool
}

// DefaultMaxWalkSATParams returns the spec §4.3 defaults.
func DefaultMaxWalkSATParams() MaxWalkSATParams {
	return MaxWalkSATParams{
		PBest:           0.5,
		MaxFlips:        1_000_000,
		MaxTries:        1,
		TargetCost:      0.001,
		TabuLength:      10,
		SatHardUnit:     false,
		SatHardPriority: false,
		OutputAll:       true,
	}
}

// MaxWalkSAT runs stochastic local search for MAP inference (spec §4.3): it
// repeatedly resets to a random assignment and greedily/noisily flips atoms
// that repair unsatisfied constraints, keeping track of the lowest-cost
// assignment seen within the current try. Each try's reset discards the
// previous try's best; at the end the last try's lowest-cost assignment is
// restored. It reports whether any try reached TargetCost.
func MaxWalkSAT(state *MRFState, params MaxWalkSATParams) (bool, error) {
	state.SetHardPriority(params.SatHardPriority)
	found := false

	for try := 0; try < params.MaxTries; try++ {
		if err := state.Reset(params.TabuLength, false); err != nil {
			return false, err
		}
		if params.SatHardUnit {
			satHardUnit(state)
		}
		state.logger.Debug().Int("try", try).Msg("trial start")
		for iteration := 1; iteration <= params.MaxFlips; iteration++ {
			if state.Cost().Float64() <= params.TargetCost {
				found = true
				break
			}
			if atomID := walksatStep(state, iteration, params.PBest, params.TabuLength); atomID != mrf.NoAtom {
				state.Flip(atomID, iteration)
			}
			if iteration%debugTickInterval == 0 && state.logger.GetLevel() <= zerolog.DebugLevel {
				state.logger.Debug().Int("try", try).Int("iteration", iteration).
					Str("total_cost", state.Cost().String()).Msg("flip tick")
			}
		}
		if state.Cost().Float64() <= params.TargetCost {
			found = true
		}
		state.logger.Info().Int("try", try).Str("total_cost", state.Cost().String()).
			Bool("found", found).Msg("trial end")
		if found {
			break
		}
	}

	state.RestoreLowState()
	return found, nil
}

// satHardUnit forces every hard unit clause's sole literal true, via an
// ordinary flip (not a pin), seeding the search instead of waiting for it
// to be discovered (spec §4.3 "sat_hard_unit").
func satHardUnit(state *MRFState) {
	for _, c := range state.constraints {
		if !c.Hard || c.Inactive || !c.IsUnit() {
			continue
		}
		lit := c.Literals[0]
		atomID := lit.Atom()
		if a := state.Atom(atomID); a.Eligible() && a.State != lit.IsPositive() {
			state.Flip(atomID, 0)
		}
	}
}

// walksatStep performs one MaxWalkSAT move: pick an unsatisfied constraint,
// then either the lowest-delta eligible atom (greedy, probability pBest) or
// a uniformly random eligible atom (noisy). It returns mrf.NoAtom if no
// unsatisfied constraint or no eligible atom is available.
func walksatStep(state *MRFState, iteration int, pBest float64, tabuLength int) int {
	cid := state.GetRandomUnsatConstraint()
	if cid == mrf.NoConstraint {
		return mrf.NoAtom
	}
	c := state.Constraint(cid)
	candidates := eligibleCandidates(state, c, iteration, tabuLength)
	if len(candidates) == 0 {
		return mrf.NoAtom
	}
	if state.Rand().Float64() < pBest {
		return bestDelta(state, candidates)
	}
	return candidates[state.Rand().Intn(len(candidates))]
}

// eligibleCandidates returns the atom ids of c's literals that Flippable
// allows flipping. For a negative-weight c, only atoms whose literal
// currently satisfies c are considered: those are the only ones whose flip
// can reduce c's nsat back toward the constraint's good (nsat==0) state.
func eligibleCandidates(state *MRFState, c *mrf.Constraint, iteration, tabuLength int) []int {
	restrictToSatisfying := !c.IsPositive()
	candidates := make([]int, 0, len(c.Literals))
	for _, l := range c.Literals {
		aid := l.Atom()
		a := state.Atom(aid)
		if restrictToSatisfying && !l.Satisfied(a.State) {
			continue
		}
		if a.Flippable(iteration, tabuLength) {
			candidates = append(candidates, aid)
		}
	}
	return candidates
}

// bestDelta returns the candidate with the lowest Delta() (break−make),
// breaking ties uniformly at random.
func bestDelta(state *MRFState, candidates []int) int {
	best := []int{candidates[0]}
	bestDelta := state.Atom(candidates[0]).Delta()
	for _, aid := range candidates[1:] {
		d := state.Atom(aid).Delta()
		switch {
		case d.LessThan(bestDelta):
			bestDelta = d
			best = []int{aid}
		case d.Cmp(bestDelta) == 0:
			best = append(best, aid)
		}
	}
	if len(best) == 1 {
		return best[0]
	}
	return best[state.Rand().Intn(len(best))]
}
