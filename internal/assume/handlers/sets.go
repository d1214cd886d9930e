package handlers

import (
	"presage/internal/assume"
	"presage/internal/expr"
)

// Integer resolves membership in the integers.
func Integer() assume.Handler {
	return assume.Handler{
		Name: "sets.integer",
		Cases: map[expr.Kind]assume.EvalFunc{
			expr.KindInteger:  constTrue,
			expr.KindRational: constFalse,
			expr.KindConstant: constFalse,
			expr.KindAdd:      closedUnder("integer"),
			expr.KindMul:      closedUnder("integer"),
			expr.KindPow: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
				p := target.(expr.Pow)
				e, ok := p.Exp.(expr.Integer)
				if !ok || e.N < 1 {
					return assume.Unknown, nil
				}
				baseInt, err := q.AskAbout("integer", p.Base)
				if err != nil {
					return assume.Unknown, err
				}
				if baseInt == assume.True {
					return assume.True, nil
				}
				return assume.Unknown, nil
			},
		},
	}
}

// Rational resolves membership in the rationals. A sum with exactly
// one irrational term is irrational; a product of one irrational with
// nonzero rationals is irrational.
func Rational() assume.Handler {
	return assume.Handler{
		Name: "sets.rational",
		Cases: map[expr.Kind]assume.EvalFunc{
			expr.KindInteger:  constTrue,
			expr.KindRational: constTrue,
			expr.KindConstant: constFalse,
			expr.KindAdd: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
				irrationals := 0
				for _, term := range target.Args() {
					res, err := q.AskAbout("rational", term)
					if err != nil {
						return assume.Unknown, err
					}
					if res == assume.True {
						continue
					}
					irr, err := q.AskAbout("irrational", term)
					if err != nil {
						return assume.Unknown, err
					}
					if irr != assume.True {
						return assume.Unknown, nil
					}
					irrationals++
				}
				switch irrationals {
				case 0:
					return assume.True, nil
				case 1:
					return assume.False, nil
				}
				return assume.Unknown, nil
			},
			expr.KindMul: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
				irrationals := 0
				nonzeroRationals := 0
				args := target.Args()
				for _, f := range args {
					res, err := q.AskAbout("rational", f)
					if err != nil {
						return assume.Unknown, err
					}
					if res == assume.True {
						nz, err := q.AskAbout("nonzero", f)
						if err != nil {
							return assume.Unknown, err
						}
						if nz == assume.True {
							nonzeroRationals++
						}
						continue
					}
					irr, err := q.AskAbout("irrational", f)
					if err != nil {
						return assume.Unknown, err
					}
					if irr != assume.True {
						return assume.Unknown, nil
					}
					irrationals++
				}
				rationals := len(args) - irrationals
				switch {
				case irrationals == 0 && rationals == len(args):
					return assume.True, nil
				case irrationals == 1 && nonzeroRationals == rationals:
					return assume.False, nil
				}
				return assume.Unknown, nil
			},
			expr.KindPow: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
				p := target.(expr.Pow)
				e, ok := p.Exp.(expr.Integer)
				if !ok {
					return assume.Unknown, nil
				}
				baseRat, err := q.AskAbout("rational", p.Base)
				if err != nil {
					return assume.Unknown, err
				}
				if baseRat != assume.True {
					return assume.Unknown, nil
				}
				if e.N >= 0 {
					return assume.True, nil
				}
				nz, err := q.AskAbout("nonzero", p.Base)
				if err != nil {
					return assume.Unknown, err
				}
				if nz == assume.True {
					return assume.True, nil
				}
				return assume.Unknown, nil
			},
		},
	}
}

// Irrational derives from rational and real: a real that is not
// rational is irrational.
func Irrational() assume.Handler {
	return assume.Handler{
		Name: "sets.irrational",
		Cases: map[expr.Kind]assume.EvalFunc{
			expr.KindInteger:  constFalse,
			expr.KindRational: constFalse,
			expr.KindConstant: constTrue,
		},
		Any: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
			rat, err := q.AskAbout("rational", target)
			if err != nil {
				return assume.Unknown, err
			}
			switch rat {
			case assume.True:
				return assume.False, nil
			case assume.False:
				re, err := q.AskAbout("real", target)
				if err != nil {
					return assume.Unknown, err
				}
				if re == assume.True {
					return assume.True, nil
				}
			}
			return assume.Unknown, nil
		},
	}
}

// Real resolves membership in the reals.
func Real() assume.Handler {
	return assume.Handler{
		Name: "sets.real",
		Cases: map[expr.Kind]assume.EvalFunc{
			expr.KindInteger:  constTrue,
			expr.KindRational: constTrue,
			expr.KindConstant: constTrue,
			expr.KindAdd:      closedUnder("real"),
			expr.KindMul:      closedUnder("real"),
			expr.KindPow:      realPow,
		},
	}
}

// realPow: integer powers of reals are real, as is any real power of
// a positive base.
func realPow(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
	p := target.(expr.Pow)
	if e, ok := p.Exp.(expr.Integer); ok {
		baseReal, err := q.AskAbout("real", p.Base)
		if err != nil {
			return assume.Unknown, err
		}
		if baseReal != assume.True {
			return assume.Unknown, nil
		}
		if e.N >= 0 {
			return assume.True, nil
		}
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
}

// ExtendedReal accepts reals and leaves the rest to the infinity
// axiom.
func ExtendedReal() assume.Handler {
	return assume.Handler{
		Name: "sets.extended_real",
		Cases: map[expr.Kind]assume.EvalFunc{
			expr.KindInteger:  constTrue,
			expr.KindRational: constTrue,
			expr.KindConstant: constTrue,
		},
		Any: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
			re, err := q.AskAbout("real", target)
			if err != nil {
				return assume.Unknown, err
			}
			if re == assume.True {
				return assume.True, nil
			}
			return assume.Unknown, nil
		},
	}
}

// Complex resolves membership in the complex numbers, which the whole
// arithmetic fragment is closed under.
func Complex() assume.Handler {
	closed := closedUnder("complex")
	return assume.Handler{
		Name: "sets.complex",
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

// Imaginary rejects the numeric literals; the expression model has no
// imaginary unit, so everything else rests on assumptions.
func Imaginary() assume.Handler {
	return assume.Handler{
		Name: "sets.imaginary",
		Cases: map[expr.Kind]assume.EvalFunc{
			expr.KindInteger:  constFalse,
			expr.KindRational: constFalse,
			expr.KindConstant: constFalse,
		},
	}
}

// Hermitian accepts sums of hermitian parts and anything real.
func Hermitian() assume.Handler {
	realBased := func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
		re, err := q.AskAbout("real", target)
		if err != nil {
			return assume.Unknown, err
		}
		if re == assume.True {
			return assume.True, nil
		}
		return assume.Unknown, nil
	}
	return assume.Handler{
		Name: "sets.hermitian",
		Cases: map[expr.Kind]assume.EvalFunc{
			expr.KindInteger:  constTrue,
			expr.KindRational: constTrue,
			expr.KindConstant: constTrue,
			expr.KindAdd: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
				ok, err := allOf(q, "hermitian", target.Args())
				if err != nil {
					return assume.Unknown, err
				}
				if ok {
					return assume.True, nil
				}
				return realBased(target, q)
			},
		},
		Any: realBased,
	}
}

// Antihermitian rejects the numeric literals and accepts anything
// imaginary.
func Antihermitian() assume.Handler {
	return assume.Handler{
		Name: "sets.antihermitian",
		Cases: map[expr.Kind]assume.EvalFunc{
			expr.KindInteger:  constFalse,
			expr.KindRational: constFalse,
			expr.KindConstant: constFalse,
		},
		Any: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
			im, err := q.AskAbout("imaginary", target)
			if err != nil {
				return assume.Unknown, err
			}
			if im == assume.True {
				return assume.True, nil
			}
			return assume.Unknown, nil
		},
	}
}

// Algebraic resolves algebraicity; the named constants are the
// transcendental ones.
func Algebraic() assume.Handler {
	closed := closedUnder("algebraic")
	return assume.Handler{
		Name: "sets.algebraic",
		Cases: map[expr.Kind]assume.EvalFunc{
			expr.KindInteger:  constTrue,
			expr.KindRational: constTrue,
			expr.KindConstant: constFalse,
			expr.KindAdd:      closed,
			expr.KindMul:      closed,
			expr.KindPow: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
				p := target.(expr.Pow)
				switch p.Exp.Kind() {
				case expr.KindInteger, expr.KindRational:
				default:
					return assume.Unknown, nil
				}
				baseAlg, err := q.AskAbout("algebraic", p.Base)
				if err != nil {
					return assume.Unknown, err
				}
				if baseAlg != assume.True {
					return assume.Unknown, nil
				}
				if expNonNegative(p.Exp) {
					return assume.True, nil
				}
				nz, err := q.AskAbout("nonzero", p.Base)
				if err != nil {
					return assume.Unknown, err
				}
				if nz == assume.True {
					return assume.True, nil
				}
				return assume.Unknown, nil
			},
		},
	}
}

// Infinity rejects every finite literal; nothing structural produces
// an infinite value in this model.
func Infinity() assume.Handler {
	return assume.Handler{
		Name: "sets.infinity",
		Cases: map[expr.Kind]assume.EvalFunc{
			expr.KindInteger:  constFalse,
			expr.KindRational: constFalse,
			expr.KindConstant: constFalse,
		},
	}
}

// closedUnder answers True when every argument of the target is known
// to satisfy key, reflecting closure of the set under the operation.
func closedUnder(key string) assume.EvalFunc {
	return func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
		ok, err := allOf(q, key, target.Args())
		if err != nil {
			return assume.Unknown, err
		}
		if ok {
			return assume.True, nil
		}
		return assume.Unknown, nil
	}
}

func expNonNegative(e expr.Expr) bool {
	switch t := e.(type) {
	case expr.Integer:
		return t.N >= 0
	case expr.Rational:
		return t.P >= 0
	}
	return false
}
