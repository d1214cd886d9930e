package handlers

import (
	"presage/internal/assume"
	"presage/internal/expr"
	"presage/internal/logic"
)

// Commutative reports whether the target commutes. Everything in the
// numeric model does unless an assumption explicitly denies it for a
// symbol, mirroring the reference default.
func Commutative() assume.Handler {
	literal := func(expr.Expr, *assume.Query) (assume.Ternary, error) {
		return assume.True, nil
	}
	return assume.Handler{
		Name: "common.commutative",
		Cases: map[expr.Kind]assume.EvalFunc{
			expr.KindInteger:  literal,
			expr.KindRational: literal,
			expr.KindConstant: literal,
			expr.KindSymbol: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
				switch assumedSign(q.Assumptions(), "commutative", target) {
				case assume.False:
					return assume.False, nil
				default:
					return assume.True, nil
				}
			},
		},
		Any: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
			ok, err := allOf(q, "commutative", target.Args())
			if err != nil {
				return assume.Unknown, err
			}
			if ok {
				return assume.True, nil
			}
			return assume.Unknown, nil
		},
	}
}

// assumedSign scans the top-level conjuncts of an assumption formula
// for the application of the named predicate to exactly this target,
// reporting True for a positive occurrence, False for a negated one,
// and Unknown when neither appears.
func assumedSign(assumptions logic.Prop, key string, target expr.Expr) assume.Ternary {
	check := func(p logic.Prop) assume.Ternary {
		negated := false
		if n, ok := p.(logic.Neg); ok {
			negated = true
			p = n.Operand
		}
		leaf, ok := p.(logic.Leaf)
		if !ok {
			return assume.Unknown
		}
		ap, ok := leaf.Atom.(*assume.Applied)
		if !ok || ap.Pred.Name() != key || !ap.Target.Equal(target) {
			return assume.Unknown
		}
		if negated {
			return assume.False
		}
		return assume.True
	}
	if conj, ok := assumptions.(logic.Conj); ok {
		for _, op := range conj.Operands {
			if res := check(op); res.Known() {
				return res
			}
		}
		return assume.Unknown
	}
	return check(assumptions)
}
