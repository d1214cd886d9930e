package assume

import (
	"presage/internal/expr"
	"presage/internal/logic"
)

// Predicate is a named property that can be asked about an expression.
// Values are created and owned by a Registry; the zero value is not
// usable. A bare predicate is itself a propositional atom, which is
// how it appears inside axioms and extracted assumption skeletons.
type Predicate struct {
	name string
}

// Name returns the registered name.
func (p *Predicate) Name() string { return p.name }

// LogicID returns the atom identity of the bare predicate, which is
// its name.
func (p *Predicate) LogicID() string { return p.name }

func (p *Predicate) String() string { return p.name }

// Of builds the proposition that p holds of target.
func (p *Predicate) Of(target expr.Expr) logic.Prop {
	return logic.AtomOf(&Applied{Pred: p, Target: target})
}

// Applied is a predicate applied to one expression, the atomic
// proposition of user-facing queries and assumptions.
type Applied struct {
	Pred   *Predicate
	Target expr.Expr
}

// LogicID renders the application, e.g. "even(x*y)". Applications of
// the same predicate to structurally equal expressions are the same
// atom.
func (a *Applied) LogicID() string {
	return a.Pred.Name() + "(" + a.Target.String() + ")"
}

func (a *Applied) String() string { return a.LogicID() }
