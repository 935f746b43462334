package solver

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// AtomNamer decodes a ground atom id back into the external identity the
// grounder assigned it (spec §6 "atom decoding is delegated to the external
// identity-function facility"). A non-nil error means that id could not be
// decoded; the emitters treat this as non-fatal (spec §7 "decode failure ->
// logged error, skip that atom, do not abort").
type AtomNamer func(id int) (string, error)

// EmitMAP writes one line per query atom in state to w: "<decoded-atom>
// 0|1\n" (spec §6 "Output"). When outputAll is true every query atom is
// written; otherwise only atoms whose final state is true. Atoms that fail
// to decode are logged via logger.Warn and skipped, mirroring gophersat's
// OutputModel (solver.go) which prints one line per variable straight from
// the model slice.
func EmitMAP(w io.Writer, state *MRFState, namer AtomNamer, outputAll bool, logger zerolog.Logger) error {
	start, end := state.net.QueryAtoms()
	for aid := start; aid <= end; aid++ {
		val := state.Atom(aid).State
		if !outputAll && !val {
			continue
		}
		name, err := namer(aid)
		if err != nil {
			logger.Warn().Int("atom_id", aid).Err(err).Msg("atom decode failed, skipping")
			continue
		}
		bit := 0
		if val {
			bit = 1
		}
		if _, err := fmt.Fprintf(w, "%s %d\n", name, bit); err != nil {
			return err
		}
	}
	return nil
}

// EmitMarginal writes one line per query atom in state to w: "<decoded-atom>
// <probability>\n", with probability formatted to seven digits after the
// decimal point (spec §6 "0.0######"), computed as TruesCounter/samples.
// Decode failures are handled exactly as in EmitMAP.
func EmitMarginal(w io.Writer, state *MRFState, namer AtomNamer, samples int, logger zerolog.Logger) error {
	start, end := state.net.QueryAtoms()
	for aid := start; aid <= end; aid++ {
		name, err := namer(aid)
		if err != nil {
			logger.Warn().Int("atom_id", aid).Err(err).Msg("atom decode failed, skipping")
			continue
		}
		p := 0.0
		if samples > 0 {
			p = float64(state.Atom(aid).TruesCounter) / float64(samples)
		}
		if _, err := fmt.Fprintf(w, "%s %.7f\n", name, p); err != nil {
			return err
		}
	}
	return nil
}
