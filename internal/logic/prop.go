// Package logic implements the propositional layer of the assumption
// engine: formula trees over abstract atoms, conversion to conjunctive
// normal form, and satisfiability plus entailment checks backed by the
// gini SAT solver.
//
// Atoms are anything carrying a stable identity string. Two atoms with
// the same identity are the same variable to the solver, which lets
// predicate keys defined in one package and applied predicates defined
// in another meet inside a single formula.
package logic

import "strings"

// Atom is a propositional variable. Implementations outside this
// package supply the identity; equal identity strings mean equal
// atoms.
type Atom interface {
	// LogicID returns the stable identity of this atom. It doubles as
	// the print form.
	LogicID() string
}

// Prop is a propositional formula tree. The concrete node types are
// Truth, Leaf, Neg, Conj, Disj, Cond, and Iff. Build formulas with the
// constructor functions, which flatten and fold away trivialities, and
// inspect them by type switch.
type Prop interface {
	isProp()
	String() string
}

// Truth is a constant truth value.
type Truth bool

// The two constant formulas. And() with no operands returns Top, Or()
// with no operands returns Bottom.
const (
	Top    = Truth(true)
	Bottom = Truth(false)
)

// Leaf wraps an atom as a formula.
type Leaf struct {
	Atom Atom
}

// Neg is a negated formula.
type Neg struct {
	Operand Prop
}

// Conj is an n-ary conjunction with at least two operands.
type Conj struct {
	Operands []Prop
}

// Disj is an n-ary disjunction with at least two operands.
type Disj struct {
	Operands []Prop
}

// Cond is a material implication.
type Cond struct {
	Premise, Conclusion Prop
}

// Iff is a biconditional.
type Iff struct {
	L, R Prop
}

func (Truth) isProp() {}
func (Leaf) isProp()  {}
func (Neg) isProp()   {}
func (Conj) isProp()  {}
func (Disj) isProp()  {}
func (Cond) isProp()  {}
func (Iff) isProp()   {}

// AtomOf lifts an atom into a formula.
func AtomOf(a Atom) Prop { return Leaf{Atom: a} }

// Not negates p. Constants fold and double negations cancel.
func Not(p Prop) Prop {
	switch t := p.(type) {
	case Truth:
		return Truth(!bool(t))
	case Neg:
		return t.Operand
	}
	return Neg{Operand: p}
}

// And conjoins the operands. Nested conjunctions flatten, duplicate
// operands collapse, Top operands drop out, and any Bottom operand
// makes the whole formula Bottom. No operands yields Top and a single
// surviving operand is returned unwrapped.
func And(ps ...Prop) Prop {
	flat, short := gather(ps, true)
	if short {
		return Bottom
	}
	switch len(flat) {
	case 0:
		return Top
	case 1:
		return flat[0]
	}
	return Conj{Operands: flat}
}

// Or disjoins the operands, dually to And: Bottom operands drop out
// and any Top operand makes the whole formula Top. No operands yields
// Bottom.
func Or(ps ...Prop) Prop {
	flat, short := gather(ps, false)
	if short {
		return Top
	}
	switch len(flat) {
	case 0:
		return Bottom
	case 1:
		return flat[0]
	}
	return Disj{Operands: flat}
}

// Implies builds the material implication premise -> conclusion.
func Implies(premise, conclusion Prop) Prop {
	return Cond{Premise: premise, Conclusion: conclusion}
}

// Equiv builds the biconditional l <-> r.
func Equiv(l, r Prop) Prop {
	return Iff{L: l, R: r}
}

// gather flattens same-kind operands for And (conj true) or Or,
// dropping the identity constant and deduplicating by print form. It
// reports short=true when the absorbing constant was seen.
func gather(ps []Prop, conj bool) (flat []Prop, short bool) {
	seen := make(map[string]struct{}, len(ps))
	var walk func(p Prop) bool
	walk = func(p Prop) bool {
		switch t := p.(type) {
		case Truth:
			if bool(t) == conj {
				return false
			}
			return true
		case Conj:
			if conj {
				for _, op := range t.Operands {
					if walk(op) {
						return true
					}
				}
				return false
			}
		case Disj:
			if !conj {
				for _, op := range t.Operands {
					if walk(op) {
						return true
					}
				}
				return false
			}
		}
		key := p.String()
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			flat = append(flat, p)
		}
		return false
	}
	for _, p := range ps {
		if walk(p) {
			return nil, true
		}
	}
	return flat, false
}

// Rendering precedence, loosest first: <-> then -> then | then & then ~.
const (
	precIff = iota
	precCond
	precOr
	precAnd
	precNeg
)

func (t Truth) String() string {
	if t {
		return "true"
	}
	return "false"
}

func (l Leaf) String() string { return l.Atom.LogicID() }

func (n Neg) String() string { return "~" + renderProp(n.Operand, precNeg) }

func (c Conj) String() string { return renderList(c.Operands, " & ", precAnd) }

func (d Disj) String() string { return renderList(d.Operands, " | ", precOr) }

func (c Cond) String() string {
	return renderProp(c.Premise, precCond) + " -> " + renderProp(c.Conclusion, precCond-1)
}

func (i Iff) String() string {
	return renderProp(i.L, precIff) + " <-> " + renderProp(i.R, precIff)
}

func renderList(ops []Prop, sep string, prec int) string {
	var sb strings.Builder
	for i, op := range ops {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(renderProp(op, prec-1))
	}
	return sb.String()
}

func renderProp(p Prop, outer int) string {
	var inner int
	switch p.(type) {
	case Truth, Leaf, Neg:
		return p.String()
	case Conj:
		inner = precAnd
	case Disj:
		inner = precOr
	case Cond:
		inner = precCond
	case Iff:
		inner = precIff
	}
	if outer >= inner {
		return "(" + p.String() + ")"
	}
	return p.String()
}
