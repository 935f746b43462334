// Package logic implements the auxiliary logic formatter (spec §4.6, §4.7):
// function elimination/introduction, which defines the encoding of
// function terms the MRF builder expects, and predicate completion. Both
// operate on a small first-order term/clause AST modeled, in its recursive
// type-switch style, on gophersat's bf package.
package logic

import (
	"fmt"
	"strings"
)

// Term is any first-order term: a variable, a constant, or a function
// application.
type Term interface {
	isTerm()
	String() string
}

// Var is a first-order variable, conventionally upper-case in clause text.
type Var struct{ Name string }

func (Var) isTerm()          {}
func (v Var) String() string { return v.Name }

// Const is a ground constant, conventionally lower-case in clause text.
type Const struct{ Name string }

func (Const) isTerm()          {}
func (c Const) String() string { return c.Name }

// FuncTerm is a function application f(args...). Its first logical "slot"
// when eliminated becomes an auxiliary predicate's return argument (spec
// §4.6).
type FuncTerm struct {
	Name string
	Args []Term
}

func (FuncTerm) isTerm() {}
func (f FuncTerm) String() string {
	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", f.Name, strings.Join(args, ", "))
}

// Atom is a predicate application over terms.
type Atom struct {
	Predicate string
	Args      []Term
}

func (a Atom) String() string {
	args := make([]string, len(a.Args))
	for i, t := range a.Args {
		args[i] = t.String()
	}
	return fmt.Sprintf("%s(%s)", a.Predicate, strings.Join(args, ", "))
}

// Literal is a signed Atom.
type Literal struct {
	Atom    Atom
	Negated bool
}

func (l Literal) String() string {
	if l.Negated {
		return "!" + l.Atom.String()
	}
	return l.Atom.String()
}

// Negate returns the complementary literal.
func (l Literal) Negate() Literal {
	return Literal{Atom: l.Atom, Negated: !l.Negated}
}

// Clause is one weighted formula: a disjunction of Literals (spec §4.6,
// §4.9's weight feeds the grounder, not this package — Weight is carried
// through transformations so the edge rule in §4.6 can flip its sign).
type Clause struct {
	Literals []Literal
	Weight   float64
}

func (c Clause) String() string {
	lits := make([]string, len(c.Literals))
	for i, l := range c.Literals {
		lits[i] = l.String()
	}
	return fmt.Sprintf("%g %s", c.Weight, strings.Join(lits, " v "))
}

// containsVar reports whether t (or any sub-term of t) is the variable v.
func containsVar(t Term, v Var) bool {
	switch t := t.(type) {
	case Var:
		return t.Name == v.Name
	case FuncTerm:
		for _, a := range t.Args {
			if containsVar(a, v) {
				return true
			}
		}
	}
	return false
}

// substitute returns t with every occurrence of old replaced by replacement.
func substitute(t Term, old Var, replacement Term) Term {
	switch t := t.(type) {
	case Var:
		if t.Name == old.Name {
			return replacement
		}
		return t
	case FuncTerm:
		args := make([]Term, len(t.Args))
		for i, a := range t.Args {
			args[i] = substitute(a, old, replacement)
		}
		return FuncTerm{Name: t.Name, Args: args}
	default:
		return t
	}
}
