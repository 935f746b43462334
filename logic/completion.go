package logic

import (
	"fmt"
	"math"
)

// Mode selects a predicate-completion strategy (spec §4.7).
type Mode int

const (
	// ModeStandard produces "head ⇔ body-disjunction" as a self-contained
	// set of clauses, introducing one auxiliary predicate per multi-literal
	// body.
	ModeStandard Mode = iota
	// ModeSimplification additionally substitutes the equivalence into
	// every other KB formula that mentions the head predicate, eliminating
	// it entirely; substitution that would require distributing a
	// conjunction across an already multi-literal clause is a fatal error
	// (spec §4.7 "fatal error if substitution fails").
	ModeSimplification
	// ModeDecomposed keeps the forward per-clause implications undecorated
	// (no completion-only equivalence is asserted as one clause) and adds
	// explicit negated-unit clauses for head groundings the caller reports
	// as uncovered by any body.
	ModeDecomposed
)

// completionWeight marks every clause predicate completion emits as
// definitional (hard), feeding mrf.Builder's IsInf-based hard detection.
const completionWeight = math.Inf(1)

// DefiniteClause is one "head :- body" rule: body is a (possibly empty)
// conjunction, represented as a slice of literals that must all hold.
type DefiniteClause struct {
	Head Atom
	Body []Literal
}

// CompletionResult is the clause set predicate completion produced.
type CompletionResult struct {
	Clauses []Clause
}

// SimplificationError reports that ModeSimplification could not fold the
// completion equivalence into kbClause without distributing a conjunction
// across an already multi-literal clause.
type SimplificationError struct {
	Predicate string
}

func (e *SimplificationError) Error() string {
	return fmt.Sprintf("logic: predicate completion could not simplify a negated occurrence of %q into a multi-literal clause", e.Predicate)
}

func substituteLiteralVar(l Literal, v Var, replacement Term) Literal {
	args := make([]Term, len(l.Atom.Args))
	for i, a := range l.Atom.Args {
		args[i] = substitute(a, v, replacement)
	}
	return Literal{Atom: Atom{Predicate: l.Atom.Predicate, Args: args}, Negated: l.Negated}
}

func bodyAuxName(head string, idx int) string {
	return fmt.Sprintf("BODYAUX_%s_%d", head, idx)
}

// disjunct is one completion disjunct: either a raw single-literal body
// (no auxiliary predicate needed) or a reference to an auxiliary predicate
// standing for a multi-literal body.
type disjunct struct {
	literal Literal // valid when aux == ""
	aux     string
}

// Complete builds the Clark completion of one predicate from its definite
// clauses (spec §4.7). All clauses must share the same head predicate and
// arity; Complete unifies each clause's head arguments against a canonical
// variable tuple before processing its body. kb and uncoveredGroundings are
// only consulted by ModeSimplification and ModeDecomposed respectively.
func Complete(clauses []DefiniteClause, mode Mode, kb []Clause, uncoveredGroundings []Atom) (CompletionResult, error) {
	if len(clauses) == 0 {
		return CompletionResult{}, fmt.Errorf("logic: predicate completion requires at least one definite clause")
	}
	headPred := clauses[0].Head.Predicate
	arity := len(clauses[0].Head.Args)
	canonical := make([]Term, arity)
	for i := range canonical {
		canonical[i] = Var{Name: fmt.Sprintf("X%d", i+1)}
	}
	headAtom := Atom{Predicate: headPred, Args: canonical}

	var out []Clause
	disjuncts := make([]disjunct, len(clauses))
	unifiedBodies := make([][]Literal, len(clauses))

	for idx, dc := range clauses {
		body := append([]Literal(nil), dc.Body...)
		for i, a := range dc.Head.Args {
			if v, ok := a.(Var); ok {
				for j := range body {
					body[j] = substituteLiteralVar(body[j], v, canonical[i])
				}
			}
		}
		unifiedBodies[idx] = body

		dir1 := make([]Literal, 0, len(body)+1)
		for _, l := range body {
			dir1 = append(dir1, l.Negate())
		}
		dir1 = append(dir1, Literal{Atom: headAtom})
		out = append(out, Clause{Literals: dir1, Weight: completionWeight})

		switch {
		case len(body) == 0:
			// This clause alone makes head unconditionally true; dir1
			// above is already the unit fact [head].
			disjuncts[idx] = disjunct{literal: Literal{Atom: headAtom}}
		case len(body) == 1:
			// A single-literal body never needs an auxiliary predicate.
			disjuncts[idx] = disjunct{literal: body[0]}
		default:
			auxName := bodyAuxName(headPred, idx)
			auxAtom := Atom{Predicate: auxName, Args: canonical}
			for _, l := range body {
				out = append(out, Clause{Literals: []Literal{{Atom: auxAtom, Negated: true}, l}, Weight: completionWeight})
			}
			neg := make([]Literal, 0, len(body)+1)
			for _, l := range body {
				neg = append(neg, l.Negate())
			}
			neg = append(neg, Literal{Atom: auxAtom})
			out = append(out, Clause{Literals: neg, Weight: completionWeight})
			disjuncts[idx] = disjunct{aux: auxName}
		}
	}

	headImpliesBody := []Literal{{Atom: headAtom, Negated: true}}
	for _, d := range disjuncts {
		if d.aux != "" {
			headImpliesBody = append(headImpliesBody, Literal{Atom: Atom{Predicate: d.aux, Args: canonical}})
		} else {
			headImpliesBody = append(headImpliesBody, d.literal)
		}
	}
	out = append(out, Clause{Literals: headImpliesBody, Weight: completionWeight})

	switch mode {
	case ModeStandard, ModeDecomposed:
		if mode == ModeDecomposed {
			for _, g := range uncoveredGroundings {
				out = append(out, Clause{Literals: []Literal{{Atom: g, Negated: true}}, Weight: completionWeight})
			}
		}
		return CompletionResult{Clauses: out}, nil
	case ModeSimplification:
		simplified, err := simplifyKB(kb, headPred, canonical, disjuncts)
		if err != nil {
			return CompletionResult{}, err
		}
		return CompletionResult{Clauses: append(out, simplified...)}, nil
	default:
		return CompletionResult{}, fmt.Errorf("logic: unknown completion mode %d", mode)
	}
}

// simplifyKB substitutes every occurrence of headPred in kb with its
// completion disjunction (spec §4.7 ModeSimplification). A positive
// occurrence flattens in place (the disjunction is already a flat list of
// literals). A negative occurrence only simplifies safely when it is the
// clause's sole literal — otherwise folding ¬head ⇔ AND(¬disjuncts) would
// require distributing a conjunction across the clause's other literals,
// which Complete refuses (spec's "fatal error if substitution fails").
func simplifyKB(kb []Clause, headPred string, canonical []Term, disjuncts []disjunct) ([]Clause, error) {
	var out []Clause
	for _, c := range kb {
		mentions := false
		for _, l := range c.Literals {
			if l.Atom.Predicate == headPred {
				mentions = true
				break
			}
		}
		if !mentions {
			out = append(out, c)
			continue
		}
		if err := checkSimplifiable(c, headPred); err != nil {
			return nil, err
		}
		var lits []Literal
		for _, l := range c.Literals {
			if l.Atom.Predicate != headPred {
				lits = append(lits, l)
				continue
			}
			subst := instantiateDisjuncts(disjuncts, canonical, l.Atom.Args)
			if !l.Negated {
				lits = append(lits, subst...)
				continue
			}
			for _, d := range subst {
				lits = append(lits, d.Negate())
			}
		}
		out = append(out, Clause{Literals: lits, Weight: c.Weight})
	}
	return out, nil
}

func checkSimplifiable(c Clause, headPred string) error {
	for _, l := range c.Literals {
		if l.Atom.Predicate == headPred && l.Negated && len(c.Literals) > 1 {
			return &SimplificationError{Predicate: headPred}
		}
	}
	return nil
}

// instantiateDisjuncts substitutes the canonical head variables with args
// in every completion disjunct, returning the positive literals to splice
// into a KB clause in place of a head occurrence.
func instantiateDisjuncts(disjuncts []disjunct, canonical []Term, args []Term) []Literal {
	lits := make([]Literal, len(disjuncts))
	for i, d := range disjuncts {
		var l Literal
		if d.aux != "" {
			l = Literal{Atom: Atom{Predicate: d.aux, Args: append([]Term(nil), canonical...)}}
		} else {
			l = d.literal
		}
		for j, cv := range canonical {
			if v, ok := cv.(Var); ok {
				l = substituteLiteralVar(l, v, args[j])
			}
		}
		lits[i] = l
	}
	return lits
}
