package solver

import (
	"math"

	"github.com/rs/zerolog"

	"gophermln/mrf"
)

// MCSATParams configures one MC-SAT run (spec §4.4). Zero-value params are
// invalid; use DefaultMCSATParams and override selectively.
type MCSATParams struct {
	// PBest, MaxFlips, MaxTries, TargetCost, TabuLength, SatHardPriority
	// mean the same as in MaxWalkSATParams, and govern the WalkSAT step
	// used inside each sample's inner loop.
	PBest           float64
	MaxFlips        int
	MaxTries        int
	TargetCost      float64
	TabuLength      int
	SatHardPriority bool

	// PSa is the probability of taking a simulated-annealing move instead
	// of a WalkSAT move while the cost is above target. It is only consulted
	// when LateSA is false; at or below target an SA move is always taken.
	PSa float64
	// SaTemperature is the simulated-annealing acceptance temperature.
	SaTemperature float64
	// NumSolutions is how many times a sample's inner loop must re-reach
	// TargetCost before the sample is considered settled.
	NumSolutions int
	// Samples is how many MC-SAT samples to draw.
	Samples int
	// LateSA, when true, only takes SA moves once the cost has already
	// reached TargetCost (polishing a solution instead of searching);
	// when false, a move above target is additionally a PSa-weighted coin
	// flip between SA and WalkSAT.
	LateSA bool
	// UnitPropagation enables unit propagation inside each sample's reset.
	UnitPropagation bool
}

// DefaultMCSATParams returns the spec §4.4 defaults.
func DefaultMCSATParams() MCSATParams {
	return MCSATParams{
		PBest:           0.5,
		PSa:             0.1,
		MaxFlips:        100_000,
		MaxTries:        1,
		TargetCost:      0.001,
		NumSolutions:    10,
		SaTemperature:   0.1,
		Samples:         1000,
		LateSA:          true,
		UnitPropagation: true,
		SatHardPriority: false,
		TabuLength:      10,
	}
}

// MCSAT estimates marginals via slice-sampled MCMC (spec §4.4): it first
// drives state to satisfy every hard constraint with MaxWalkSAT, then
// repeatedly slices in a random subset of the currently-satisfied soft
// constraints, resets and searches within that slice, and accumulates each
// query atom's TruesCounter across Samples draws.
func MCSAT(state *MRFState, params MCSATParams) error {
	state.SetHardPriority(params.SatHardPriority)

	state.SelectOnlyHardConstraints()
	if _, err := MaxWalkSAT(state, MaxWalkSATParams{
		PBest:           params.PBest,
		MaxFlips:        params.MaxFlips,
		MaxTries:        params.MaxTries,
		TargetCost:      0,
		TabuLength:      params.TabuLength,
		SatHardPriority: params.SatHardPriority,
		OutputAll:       true,
	}); err != nil {
		return err
	}

	state.SelectAllConstraints()
	state.EvaluateCosts()
	state.SetMode(mrf.ModeSampleSat)

	for sample := 0; sample < params.Samples; sample++ {
		state.SelectSomeSatConstraints()
		if err := state.Reset(params.TabuLength, params.UnitPropagation); err != nil {
			return err
		}

		solutionCount := 0
		maxIterations := params.MaxTries * params.MaxFlips
		for iteration := 1; iteration <= maxIterations; iteration++ {
			atTarget := state.Cost().Float64() <= params.TargetCost
			useSA := atTarget || (!params.LateSA && state.Rand().Float64() < params.PSa)
			if useSA {
				saStep(state, iteration, params.SaTemperature)
			} else if atomID := walksatStep(state, iteration, params.PBest, params.TabuLength); atomID != mrf.NoAtom {
				state.Flip(atomID, iteration)
			}
			if state.Cost().Float64() <= params.TargetCost {
				solutionCount++
				if solutionCount >= params.NumSolutions {
					break
				}
			}
			if iteration%debugTickInterval == 0 && state.logger.GetLevel() <= zerolog.DebugLevel {
				state.logger.Debug().Int("sample", sample).Int("iteration", iteration).
					Str("total_cost", state.Cost().String()).Msg("flip tick")
			}
		}

		state.RestoreLowState()
		state.EvaluateCosts()
		countQueryAtoms(state)
		state.logger.Info().Int("sample", sample).Str("total_cost", state.Cost().String()).
			Msg("sample boundary")
	}
	return nil
}

func countQueryAtoms(state *MRFState) {
	start, end := state.net.QueryAtoms()
	for aid := start; aid <= end; aid++ {
		a := state.Atom(aid)
		if a.State {
			a.TruesCounter++
		}
	}
}

// saStep takes one simulated-annealing move (spec §4.4): pick a uniformly
// random atom; flip it only if it is unpinned, flipping it would not
// violate a hard constraint, and the Metropolis criterion accepts its
// delta at SaTemperature.
func saStep(state *MRFState, iteration int, temperature float64) {
	nbAtoms := state.net.NbAtoms()
	if nbAtoms == 0 {
		return
	}
	atomID := state.Rand().Intn(nbAtoms) + 1
	a := state.Atom(atomID)
	if !a.Eligible() || wouldBreakHardConstraint(state, atomID) {
		return
	}
	delta := a.Delta().Float64()
	if delta <= 0 || state.Rand().Float64() < math.Exp(-delta/temperature) {
		state.Flip(atomID, iteration)
	}
}

// wouldBreakHardConstraint reports whether flipping atomID would drop a
// currently-satisfied hard constraint's nsat to zero.
func wouldBreakHardConstraint(state *MRFState, atomID int) bool {
	a := state.Atom(atomID)
	for _, cid := range state.net.PosAdj[atomID] {
		c := state.Constraint(cid)
		if c.Hard && !c.Inactive && c.Nsat == 1 && a.State {
			return true
		}
	}
	for _, cid := range state.net.NegAdj[atomID] {
		c := state.Constraint(cid)
		if c.Hard && !c.Inactive && c.Nsat == 1 && !a.State {
			return true
		}
	}
	return false
}
