package handlers

import (
	"presage/internal/assume"
	"presage/internal/expr"
)

// Bounded resolves boundedness; every literal is finite and the
// arithmetic connectives preserve boundedness.
func Bounded() assume.Handler {
	closed := closedUnder("bounded")
	return assume.Handler{
		Name: "calculus.bounded",
		Cases: map[expr.Kind]assume.EvalFunc{
			expr.KindInteger:  constTrue,
			expr.KindRational: constTrue,
			expr.KindConstant: constTrue,
			expr.KindAdd:      closed,
			expr.KindMul:      closed,
			expr.KindPow:      closed,
		},
	}
}

// Infinitesimal resolves closeness to zero: only the zero literal and
// structures built to vanish qualify.
func Infinitesimal() assume.Handler {
	return assume.Handler{
		Name: "calculus.infinitesimal",
		Cases: map[expr.Kind]assume.EvalFunc{
			expr.KindInteger: func(target expr.Expr, _ *assume.Query) (assume.Ternary, error) {
				return signAnswer(target.(expr.Integer).N == 0), nil
			},
			expr.KindRational: constFalse,
			expr.KindConstant: constFalse,
			expr.KindAdd:      closedUnder("infinitesimal"),
			expr.KindMul: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
				// One vanishing factor with the rest bounded drags
				// the product to zero.
				anySmall := false
				for _, f := range target.Args() {
					small, err := q.AskAbout("infinitesimal", f)
					if err != nil {
						return assume.Unknown, err
					}
					if small == assume.True {
						anySmall = true
						continue
					}
					bounded, err := q.AskAbout("bounded", f)
					if err != nil {
						return assume.Unknown, err
					}
					if bounded != assume.True {
						return assume.Unknown, nil
					}
				}
				if anySmall {
					return assume.True, nil
				}
				return assume.Unknown, nil
			},
		},
	}
}
