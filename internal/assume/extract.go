package assume

import (
	"presage/internal/expr"
	"presage/internal/logic"
)

// extractFacts projects an assumption formula onto the bare predicate
// skeleton relevant to target. An applied-predicate atom is relevant
// when target occurs anywhere inside its argument; it contributes its
// bare predicate. Everything else is dropped, with connectives rebuilt
// over the surviving parts: a conjunction or disjunction keeps its
// surviving branches, a negation survives with its operand, and
// implications and biconditionals are rewritten into and/or/not form
// first. The result is nil when nothing relevant survives.
//
// The projection is the reference relevance filter, not an exact one:
// a disjunction that loses a branch strengthens into the remainder.
// Tier three and four answers are therefore relative to the projected
// facts, matching the behavior this engine reproduces.
func extractFacts(p logic.Prop, target expr.Expr) logic.Prop {
	switch t := p.(type) {
	case logic.Leaf:
		ap, ok := t.Atom.(*Applied)
		if !ok || !ap.Target.Has(target) {
			return nil
		}
		return logic.AtomOf(ap.Pred)
	case logic.Neg:
		inner := extractFacts(t.Operand, target)
		if inner == nil {
			return nil
		}
		return logic.Not(inner)
	case logic.Conj:
		return extractList(t.Operands, target, logic.And)
	case logic.Disj:
		return extractList(t.Operands, target, logic.Or)
	case logic.Cond:
		return extractFacts(logic.Or(logic.Not(t.Premise), t.Conclusion), target)
	case logic.Iff:
		both := logic.And(
			logic.Or(logic.Not(t.L), t.R),
			logic.Or(logic.Not(t.R), t.L),
		)
		return extractFacts(both, target)
	}
	return nil
}

func extractList(ops []logic.Prop, target expr.Expr, join func(...logic.Prop) logic.Prop) logic.Prop {
	var kept []logic.Prop
	for _, op := range ops {
		if f := extractFacts(op, target); f != nil {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return join(kept...)
}
