package logic_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gophermln/logic"
)

func atomP(pred string, args ...logic.Term) logic.Atom {
	return logic.Atom{Predicate: pred, Args: args}
}

func lit(pred string, args ...logic.Term) logic.Literal {
	return logic.Literal{Atom: atomP(pred, args...)}
}

func TestCompleteStandardSingleLiteralBody(t *testing.T) {
	r := require.New(t)
	x := v("X")
	clauses := []logic.DefiniteClause{
		{Head: atomP("smokes", x), Body: []logic.Literal{lit("influences", x)}},
	}
	res, err := logic.Complete(clauses, logic.ModeStandard, nil, nil)
	r.NoError(err)

	// One forward implication (body => head) plus one completion clause
	// (head => body-disjunction); no auxiliary predicate for a
	// single-literal body.
	r.Len(res.Clauses, 2)
	for _, c := range res.Clauses {
		for _, l := range c.Literals {
			r.NotContains(l.Atom.Predicate, "BODYAUX_")
		}
	}
}

func TestCompleteStandardMultiLiteralBodyGetsAux(t *testing.T) {
	r := require.New(t)
	x := v("X")
	clauses := []logic.DefiniteClause{
		{Head: atomP("smokes", x), Body: []logic.Literal{lit("friends", x), lit("influences", x)}},
	}
	res, err := logic.Complete(clauses, logic.ModeStandard, nil, nil)
	r.NoError(err)

	foundAux := false
	for _, c := range res.Clauses {
		for _, l := range c.Literals {
			if l.Atom.Predicate == "BODYAUX_smokes_0" {
				foundAux = true
			}
		}
	}
	r.True(foundAux, "a multi-literal body is encoded behind a Tseitin auxiliary predicate")
}

func TestCompleteDecomposedAddsUncoveredNegatedUnits(t *testing.T) {
	r := require.New(t)
	x := v("X")
	clauses := []logic.DefiniteClause{
		{Head: atomP("smokes", x), Body: []logic.Literal{lit("influences", x)}},
	}
	uncovered := []logic.Atom{atomP("smokes", logic.Const{Name: "bob"})}
	res, err := logic.Complete(clauses, logic.ModeDecomposed, nil, uncovered)
	r.NoError(err)

	found := false
	for _, c := range res.Clauses {
		if len(c.Literals) == 1 && c.Literals[0].Negated && c.Literals[0].Atom.Predicate == "smokes" {
			found = true
		}
	}
	r.True(found, "an uncovered grounding gets an explicit negated-unit clause")
}

func TestCompleteSimplificationSubstitutesPositiveOccurrence(t *testing.T) {
	r := require.New(t)
	x := v("X")
	clauses := []logic.DefiniteClause{
		{Head: atomP("smokes", x), Body: []logic.Literal{lit("influences", x)}},
	}
	bob := logic.Const{Name: "bob"}
	kb := []logic.Clause{
		{Weight: 1, Literals: []logic.Literal{lit("smokes", bob), lit("happy", bob)}},
	}
	res, err := logic.Complete(clauses, logic.ModeSimplification, kb, nil)
	r.NoError(err)

	foundSubstituted := false
	for _, c := range res.Clauses {
		for _, l := range c.Literals {
			if l.Atom.Predicate == "influences" {
				foundSubstituted = true
			}
		}
	}
	r.True(foundSubstituted, "the KB clause's positive smokes(bob) occurrence is replaced by its body disjunct")
}

func TestCompleteSimplificationFailsOnUnsafeNegatedOccurrence(t *testing.T) {
	r := require.New(t)
	x := v("X")
	clauses := []logic.DefiniteClause{
		{Head: atomP("smokes", x), Body: []logic.Literal{lit("friends", x), lit("influences", x)}},
	}
	bob := logic.Const{Name: "bob"}
	kb := []logic.Clause{
		// A negated head occurrence alongside another literal cannot be
		// safely substituted without distributing a conjunction.
		{Weight: 1, Literals: []logic.Literal{lit("smokes", bob).Negate(), lit("happy", bob)}},
	}
	_, err := logic.Complete(clauses, logic.ModeSimplification, kb, nil)
	r.Error(err)
	var simErr *logic.SimplificationError
	r.ErrorAs(err, &simErr)
}

func TestCompleteSimplificationAllowsSoleNegatedOccurrence(t *testing.T) {
	r := require.New(t)
	x := v("X")
	clauses := []logic.DefiniteClause{
		{Head: atomP("smokes", x), Body: []logic.Literal{lit("influences", x)}},
	}
	bob := logic.Const{Name: "bob"}
	kb := []logic.Clause{
		{Weight: 1, Literals: []logic.Literal{lit("smokes", bob).Negate()}},
	}
	_, err := logic.Complete(clauses, logic.ModeSimplification, kb, nil)
	r.NoError(err)
}

func TestCompleteRejectsEmptyClauseSet(t *testing.T) {
	r := require.New(t)
	_, err := logic.Complete(nil, logic.ModeStandard, nil, nil)
	r.Error(err)
}
