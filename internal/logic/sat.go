package logic

import (
	"errors"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// ErrSolveTimeout reports that the SAT solver exhausted its time
// budget before reaching an answer.
var ErrSolveTimeout = errors.New("logic: solve timed out")

// problem is a formula loaded into a fresh solver instance together
// with the atom numbering used to load it. Solvers are cheap to build
// and are never shared, so every query gets its own.
type problem struct {
	g    *gini.Gini
	vars map[string]z.Var
	ids  []string
}

func load(p Prop) *problem {
	clauses, err := Clauses(CNF(p))
	if err != nil {
		// CNF output is clause form by construction.
		panic(err)
	}
	pr := &problem{g: gini.New(), vars: make(map[string]z.Var)}
	for _, cl := range clauses {
		for _, lit := range cl {
			m := pr.lit(lit.Atom)
			if lit.Negated {
				m = m.Not()
			}
			pr.g.Add(m)
		}
		pr.g.Add(z.LitNull)
	}
	return pr
}

// lit returns the solver literal for a positive occurrence of atom,
// assigning variables in first-seen order so numbering is
// deterministic for a given formula.
func (pr *problem) lit(a Atom) z.Lit {
	id := a.LogicID()
	v, ok := pr.vars[id]
	if !ok {
		v = z.Var(len(pr.vars) + 1)
		pr.vars[id] = v
		pr.ids = append(pr.ids, id)
	}
	return v.Pos()
}

// Satisfiable reports whether p has a model.
func Satisfiable(p Prop) bool {
	return load(p).g.Solve() == 1
}

// SatisfiableWithin is Satisfiable with a time budget. It returns
// ErrSolveTimeout if the solver does not finish within d.
func SatisfiableWithin(p Prop, d time.Duration) (bool, error) {
	switch load(p).g.GoSolve().Try(d) {
	case 1:
		return true, nil
	case -1:
		return false, nil
	}
	return false, ErrSolveTimeout
}

// Model returns a satisfying assignment for p keyed by atom identity,
// or ok=false if p is unsatisfiable. Atoms absent from the map are
// unconstrained.
func Model(p Prop) (map[string]bool, bool) {
	pr := load(p)
	if pr.g.Solve() != 1 {
		return nil, false
	}
	m := make(map[string]bool, len(pr.ids))
	for _, id := range pr.ids {
		m[id] = pr.g.Value(pr.vars[id].Pos())
	}
	return m, true
}

// Infer reports whether prop follows from the premises: True when the
// premises entail it, False when they refute it, Unknown when the
// premises admit models both ways. An unsatisfiable premise set
// reports False for every prop.
func Infer(premises, prop Prop) Ternary {
	if !Satisfiable(And(premises, prop)) {
		return False
	}
	if !Satisfiable(And(premises, Not(prop))) {
		return True
	}
	return Unknown
}

// InferWithin is Infer with a time budget shared across the underlying
// solver runs. On timeout it returns Unknown alongside
// ErrSolveTimeout.
func InferWithin(premises, prop Prop, d time.Duration) (Ternary, error) {
	sat, err := SatisfiableWithin(And(premises, prop), d)
	if err != nil {
		return Unknown, err
	}
	if !sat {
		return False, nil
	}
	sat, err = SatisfiableWithin(And(premises, Not(prop)), d)
	if err != nil {
		return Unknown, err
	}
	if !sat {
		return True, nil
	}
	return Unknown, nil
}
