package logic

import "fmt"

// Literal is an atom or its negation, the building block of clause
// form.
type Literal struct {
	Atom    Atom
	Negated bool
}

func (l Literal) String() string {
	if l.Negated {
		return "~" + l.Atom.LogicID()
	}
	return l.Atom.LogicID()
}

// Prop returns the literal as a formula.
func (l Literal) Prop() Prop {
	if l.Negated {
		return Neg{Operand: Leaf{Atom: l.Atom}}
	}
	return Leaf{Atom: l.Atom}
}

// CNF converts p to conjunctive normal form: a conjunction of
// disjunctions of literals, possibly degenerate (a single clause, a
// single literal, or a truth constant). The conversion is by
// distribution, which can grow exponentially in pathological cases;
// the knowledge bases this package serves stay far below that.
func CNF(p Prop) Prop {
	return distribute(toNNF(desugar(p), false))
}

// desugar rewrites implications and biconditionals into and/or/not
// form, bottom up.
func desugar(p Prop) Prop {
	switch t := p.(type) {
	case Neg:
		return Not(desugar(t.Operand))
	case Conj:
		return And(desugarAll(t.Operands)...)
	case Disj:
		return Or(desugarAll(t.Operands)...)
	case Cond:
		return Or(Not(desugar(t.Premise)), desugar(t.Conclusion))
	case Iff:
		l, r := desugar(t.L), desugar(t.R)
		return And(Or(Not(l), r), Or(Not(r), l))
	}
	return p
}

func desugarAll(ops []Prop) []Prop {
	out := make([]Prop, len(ops))
	for i, op := range ops {
		out[i] = desugar(op)
	}
	return out
}

// toNNF pushes negations down to the leaves of a desugared formula.
// neg tracks whether the current subtree sits under an odd number of
// negations.
func toNNF(p Prop, neg bool) Prop {
	switch t := p.(type) {
	case Truth:
		return Truth(bool(t) != neg)
	case Leaf:
		if neg {
			return Neg{Operand: t}
		}
		return t
	case Neg:
		return toNNF(t.Operand, !neg)
	case Conj:
		ops := nnfAll(t.Operands, neg)
		if neg {
			return Or(ops...)
		}
		return And(ops...)
	case Disj:
		ops := nnfAll(t.Operands, neg)
		if neg {
			return And(ops...)
		}
		return Or(ops...)
	}
	panic(fmt.Sprintf("logic: %T survived desugaring", p))
}

func nnfAll(ops []Prop, neg bool) []Prop {
	out := make([]Prop, len(ops))
	for i, op := range ops {
		out[i] = toNNF(op, neg)
	}
	return out
}

// distribute rewrites an NNF formula into CNF by distributing
// disjunction over conjunction.
func distribute(p Prop) Prop {
	switch t := p.(type) {
	case Conj:
		out := make([]Prop, len(t.Operands))
		for i, op := range t.Operands {
			out[i] = distribute(op)
		}
		return And(out...)
	case Disj:
		ops := make([]Prop, len(t.Operands))
		for i, op := range t.Operands {
			ops[i] = distribute(op)
		}
		for i, op := range ops {
			conj, ok := op.(Conj)
			if !ok {
				continue
			}
			split := make([]Prop, len(conj.Operands))
			for j, c := range conj.Operands {
				args := make([]Prop, 0, len(ops))
				args = append(args, ops[:i]...)
				args = append(args, c)
				args = append(args, ops[i+1:]...)
				split[j] = distribute(Or(args...))
			}
			return And(split...)
		}
		return Or(ops...)
	}
	return p
}

// Clauses flattens a CNF formula into its clause list. Each inner
// slice is one disjunction. A true constant yields no clauses; a false
// constant yields a single empty clause.
func Clauses(p Prop) ([][]Literal, error) {
	switch t := p.(type) {
	case Truth:
		if bool(t) {
			return nil, nil
		}
		return [][]Literal{nil}, nil
	case Conj:
		out := make([][]Literal, 0, len(t.Operands))
		for _, op := range t.Operands {
			cl, err := clause(op)
			if err != nil {
				return nil, err
			}
			out = append(out, cl)
		}
		return out, nil
	}
	cl, err := clause(p)
	if err != nil {
		return nil, err
	}
	return [][]Literal{cl}, nil
}

func clause(p Prop) ([]Literal, error) {
	if d, ok := p.(Disj); ok {
		out := make([]Literal, 0, len(d.Operands))
		for _, op := range d.Operands {
			lit, err := literal(op)
			if err != nil {
				return nil, err
			}
			out = append(out, lit)
		}
		return out, nil
	}
	lit, err := literal(p)
	if err != nil {
		return nil, err
	}
	return []Literal{lit}, nil
}

func literal(p Prop) (Literal, error) {
	switch t := p.(type) {
	case Leaf:
		return Literal{Atom: t.Atom}, nil
	case Neg:
		if leaf, ok := t.Operand.(Leaf); ok {
			return Literal{Atom: leaf.Atom, Negated: true}, nil
		}
	}
	return Literal{}, fmt.Errorf("logic: %q is not in clause form", p)
}
