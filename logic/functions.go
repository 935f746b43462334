package logic

import (
	"fmt"
	"strings"

	"gophermln/mrf"
)

// applyNegUnitEdgeRule implements the §4.6 edge rule: a unit clause with
// negative weight is rewritten by negating its single literal and flipping
// the sign of its weight, before either transformation runs.
func applyNegUnitEdgeRule(c Clause) Clause {
	if len(c.Literals) == 1 && c.Weight < 0 {
		return Clause{Literals: []Literal{c.Literals[0].Negate()}, Weight: -c.Weight}
	}
	return c
}

// FuncCounter hands out unique function return-variable suffixes across a
// whole run of EliminateFunctions calls, so two clauses processed by the
// same grounder pass never collide on funcRetVar names.
type FuncCounter struct{ n int }

func (c *FuncCounter) next() int {
	c.n++
	return c.n
}

// EliminateFunctions replaces every term-function occurrence in c with a
// fresh return variable and an appended negated auxiliary literal (spec
// §4.6 "Function elimination"). Nested functions are eliminated
// inside-out, so an argument that is itself a function application gets
// its own auxiliary literal before the function containing it does.
func EliminateFunctions(c Clause, counter *FuncCounter) Clause {
	c = applyNegUnitEdgeRule(c)
	var aux []Literal
	lits := make([]Literal, len(c.Literals))
	for i, l := range c.Literals {
		args := make([]Term, len(l.Atom.Args))
		for j, a := range l.Atom.Args {
			args[j], aux = eliminateTerm(a, counter, aux)
		}
		lits[i] = Literal{Atom: Atom{Predicate: l.Atom.Predicate, Args: args}, Negated: l.Negated}
	}
	return Clause{Literals: append(lits, aux...), Weight: c.Weight}
}

func eliminateTerm(t Term, counter *FuncCounter, aux []Literal) (Term, []Literal) {
	ft, ok := t.(FuncTerm)
	if !ok {
		return t, aux
	}
	args := make([]Term, len(ft.Args))
	for i, a := range ft.Args {
		args[i], aux = eliminateTerm(a, counter, aux)
	}
	v := Var{Name: fmt.Sprintf("%s%d", mrf.FuncRetVarPrefix, counter.next())}
	auxArgs := append([]Term{v}, args...)
	aux = append(aux, Literal{
		Atom:    Atom{Predicate: mrf.AuxPredicatePrefix + ft.Name, Args: auxArgs},
		Negated: true,
	})
	return v, aux
}

// IntroduceFunctions is the inverse of EliminateFunctions (spec §4.6
// "Function introduction"): for every negated auxiliary literal, it
// rebuilds the function term from arguments 2..n (argument 1 is the
// return slot), substitutes the return variable everywhere else in the
// clause, and drops the auxiliary literal. Auxiliary literals that
// reference each other's return variables (nested functions) are resolved
// before substitution so the reconstructed term is fully expanded.
func IntroduceFunctions(c Clause) Clause {
	reps := make(map[string]FuncTerm)
	var nonAux []Literal
	for _, l := range c.Literals {
		if l.Negated && strings.HasPrefix(l.Atom.Predicate, mrf.AuxPredicatePrefix) && len(l.Atom.Args) >= 1 {
			if v, ok := l.Atom.Args[0].(Var); ok {
				name := strings.TrimPrefix(l.Atom.Predicate, mrf.AuxPredicatePrefix)
				reps[v.Name] = FuncTerm{Name: name, Args: append([]Term(nil), l.Atom.Args[1:]...)}
				continue
			}
		}
		nonAux = append(nonAux, l)
	}

	resolved := make(map[string]Term, len(reps))
	var resolve func(name string) Term
	resolve = func(name string) Term {
		if t, ok := resolved[name]; ok {
			return t
		}
		ft := reps[name]
		args := make([]Term, len(ft.Args))
		for i, a := range ft.Args {
			if v, ok := a.(Var); ok {
				if _, isAux := reps[v.Name]; isAux {
					args[i] = resolve(v.Name)
					continue
				}
			}
			args[i] = a
		}
		result := FuncTerm{Name: ft.Name, Args: args}
		resolved[name] = result
		return result
	}
	for name := range reps {
		resolve(name)
	}

	out := make([]Literal, len(nonAux))
	for i, l := range nonAux {
		args := make([]Term, len(l.Atom.Args))
		for j, a := range l.Atom.Args {
			if v, ok := a.(Var); ok {
				if t, isAux := resolved[v.Name]; isAux {
					args[j] = t
					continue
				}
			}
			args[j] = a
		}
		out[i] = Literal{Atom: Atom{Predicate: l.Atom.Predicate, Args: args}, Negated: l.Negated}
	}
	return Clause{Literals: out, Weight: c.Weight}
}
