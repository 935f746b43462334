package solver_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"gophermln/mrf"
	"gophermln/solver"
)

func buildEmitMRF(t *testing.T) *mrf.MRF {
	t.Helper()
	b := mrf.NewBuilder(2)
	b.AddConstraint(1, []mrf.Literal{1})
	b.SetQueryRange(1, 2)
	net, err := b.Build()
	require.NoError(t, err)
	return net
}

func TestEmitMAPOutputAllFiltersOnState(t *testing.T) {
	r := require.New(t)
	net := buildEmitMRF(t)
	st := solver.NewMRFState(net, solver.WithSeed(1))
	st.EvaluateCosts()
	st.Flip(1, 1) // atom 1 true, atom 2 stays false

	namer := func(id int) (string, error) { return "a" + string(rune('0'+id)), nil }

	var buf bytes.Buffer
	r.NoError(solver.EmitMAP(&buf, st, namer, true, zerolog.Nop()))
	r.Equal("a1 1\na2 0\n", buf.String())

	buf.Reset()
	r.NoError(solver.EmitMAP(&buf, st, namer, false, zerolog.Nop()))
	r.Equal("a1 1\n", buf.String())
}

func TestEmitMAPSkipsDecodeFailureWithoutAborting(t *testing.T) {
	r := require.New(t)
	net := buildEmitMRF(t)
	st := solver.NewMRFState(net, solver.WithSeed(1))
	st.EvaluateCosts()
	st.Flip(1, 1)
	st.Flip(2, 2)

	namer := func(id int) (string, error) {
		if id == 1 {
			return "", errors.New("unknown grounding")
		}
		return "a2", nil
	}

	var buf bytes.Buffer
	r.NoError(solver.EmitMAP(&buf, st, namer, true, zerolog.Nop()))
	r.Equal("a2 1\n", buf.String())
}

func TestEmitMarginalFormatsSevenDecimalDigits(t *testing.T) {
	r := require.New(t)
	net := buildEmitMRF(t)
	st := solver.NewMRFState(net, solver.WithSeed(1))
	st.EvaluateCosts()
	st.Atom(1).TruesCounter = 3
	st.Atom(2).TruesCounter = 0

	namer := func(id int) (string, error) { return "a" + string(rune('0'+id)), nil }

	var buf bytes.Buffer
	r.NoError(solver.EmitMarginal(&buf, st, namer, 4, zerolog.Nop()))
	r.Equal("a1 0.7500000\na2 0.0000000\n", buf.String())
}
