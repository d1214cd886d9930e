package handlers

import (
	"presage/internal/assume"
	"presage/internal/expr"
)

// Positive resolves strict positivity over the reals.
func Positive() assume.Handler {
	return assume.Handler{
		Name: "order.positive",
		Cases: map[expr.Kind]assume.EvalFunc{
			expr.KindInteger: func(target expr.Expr, _ *assume.Query) (assume.Ternary, error) {
				return signAnswer(target.(expr.Integer).N > 0), nil
			},
			expr.KindRational: func(target expr.Expr, _ *assume.Query) (assume.Ternary, error) {
				return signAnswer(target.(expr.Rational).P > 0), nil
			},
			expr.KindConstant: constTrue,
			expr.KindAdd: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
				return addSign(q, target.Args(), +1)
			},
			expr.KindMul: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
				sign, known, err := mulSign(q, target.Args())
				if err != nil || !known {
					return assume.Unknown, err
				}
				return signAnswer(sign > 0), nil
			},
			expr.KindPow: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
				p := target.(expr.Pow)
				basePos, err := q.AskAbout("positive", p.Base)
				if err != nil {
					return assume.Unknown, err
				}
				if basePos == assume.True {
					expReal, err := q.AskAbout("real", p.Exp)
					if err != nil {
						return assume.Unknown, err
					}
					if expReal == assume.True {
						return assume.True, nil
					}
					return assume.Unknown, nil
				}
				baseNeg, err := q.AskAbout("negative", p.Base)
				if err != nil {
					return assume.Unknown, err
				}
				if baseNeg == assume.True {
					if e, ok := p.Exp.(expr.Integer); ok {
						return signAnswer(e.N%2 == 0), nil
					}
				}
				return assume.Unknown, nil
			},
		},
	}
}

// Negative resolves strict negativity over the reals.
func Negative() assume.Handler {
	return assume.Handler{
		Name: "order.negative",
		Cases: map[expr.Kind]assume.EvalFunc{
			expr.KindInteger: func(target expr.Expr, _ *assume.Query) (assume.Ternary, error) {
				return signAnswer(target.(expr.Integer).N < 0), nil
			},
			expr.KindRational: func(target expr.Expr, _ *assume.Query) (assume.Ternary, error) {
				return signAnswer(target.(expr.Rational).P < 0), nil
			},
			expr.KindConstant: constFalse,
			expr.KindAdd: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
				return addSign(q, target.Args(), -1)
			},
			expr.KindMul: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
				sign, known, err := mulSign(q, target.Args())
				if err != nil || !known {
					return assume.Unknown, err
				}
				return signAnswer(sign < 0), nil
			},
			expr.KindPow: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
				p := target.(expr.Pow)
				basePos, err := q.AskAbout("positive", p.Base)
				if err != nil {
					return assume.Unknown, err
				}
				// A positive base raised to anything is never
				// negative: real exponents keep it positive and the
				// rest leaves the reals entirely.
				if basePos == assume.True {
					return assume.False, nil
				}
				baseNeg, err := q.AskAbout("negative", p.Base)
				if err != nil {
					return assume.Unknown, err
				}
				if baseNeg == assume.True {
					if e, ok := p.Exp.(expr.Integer); ok {
						return signAnswer(e.N%2 != 0), nil
					}
				}
				return assume.Unknown, nil
			},
		},
	}
}

// Nonzero resolves whether the target is a nonzero real.
func Nonzero() assume.Handler {
	return assume.Handler{
		Name: "order.nonzero",
		Cases: map[expr.Kind]assume.EvalFunc{
			expr.KindInteger: func(target expr.Expr, _ *assume.Query) (assume.Ternary, error) {
				return signAnswer(target.(expr.Integer).N != 0), nil
			},
			expr.KindRational: constTrue,
			expr.KindConstant: constTrue,
			expr.KindAdd: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
				pos, err := addSign(q, target.Args(), +1)
				if err != nil {
					return assume.Unknown, err
				}
				if pos == assume.True {
					return assume.True, nil
				}
				neg, err := addSign(q, target.Args(), -1)
				if err != nil {
					return assume.Unknown, err
				}
				if neg == assume.True {
					return assume.True, nil
				}
				return assume.Unknown, nil
			},
			expr.KindMul: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
				ok, err := allOf(q, "nonzero", target.Args())
				if err != nil {
					return assume.Unknown, err
				}
				if ok {
					return assume.True, nil
				}
				return assume.Unknown, nil
			},
			expr.KindPow: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
				p := target.(expr.Pow)
				if _, ok := p.Exp.(expr.Integer); ok {
					nz, err := q.AskAbout("nonzero", p.Base)
					if err != nil {
						return assume.Unknown, err
					}
					if nz == assume.True {
						return assume.True, nil
					}
					return assume.Unknown, nil
				}
				basePos, err := q.AskAbout("positive", p.Base)
				if err != nil {
					return assume.Unknown, err
				}
				expReal, err := q.AskAbout("real", p.Exp)
				if err != nil {
					return assume.Unknown, err
				}
				if basePos == assume.True && expReal == assume.True {
					return assume.True, nil
				}
				return assume.Unknown, nil
			},
		},
	}
}

func signAnswer(yes bool) assume.Ternary {
	if yes {
		return assume.True
	}
	return assume.False
}

// addSign answers whether a sum is definitely positive (want > 0) or
// definitely negative (want < 0): true when every term has the wanted
// sign, false when every term has the opposite sign.
func addSign(q *assume.Query, terms []expr.Expr, want int) (assume.Ternary, error) {
	same, opposite := "positive", "negative"
	if want < 0 {
		same, opposite = "negative", "positive"
	}
	allSame, err := allOf(q, same, terms)
	if err != nil {
		return assume.Unknown, err
	}
	if allSame {
		return assume.True, nil
	}
	allOpp, err := allOf(q, opposite, terms)
	if err != nil {
		return assume.Unknown, err
	}
	if allOpp {
		return assume.False, nil
	}
	return assume.Unknown, nil
}

// mulSign resolves the sign of a product when every factor has a known
// sign. known=false otherwise.
func mulSign(q *assume.Query, factors []expr.Expr) (sign int, known bool, err error) {
	sign = +1
	for _, f := range factors {
		pos, err := q.AskAbout("positive", f)
		if err != nil {
			return 0, false, err
		}
		if pos == assume.True {
			continue
		}
		neg, err := q.AskAbout("negative", f)
		if err != nil {
			return 0, false, err
		}
		if neg != assume.True {
			return 0, false, nil
		}
		sign = -sign
	}
	return sign, true, nil
}
