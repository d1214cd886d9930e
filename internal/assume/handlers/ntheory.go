package handlers

import (
	"presage/internal/assume"
	"presage/internal/expr"
)

// Even resolves evenness of integer-valued expressions.
func Even() assume.Handler {
	return assume.Handler{
		Name: "ntheory.even",
		Cases: map[expr.Kind]assume.EvalFunc{
			expr.KindInteger: func(target expr.Expr, _ *assume.Query) (assume.Ternary, error) {
				if target.(expr.Integer).N%2 == 0 {
					return assume.True, nil
				}
				return assume.False, nil
			},
			expr.KindRational: constFalse,
			expr.KindConstant: constFalse,
			expr.KindMul:      evenMul,
			expr.KindAdd:      evenAdd,
			expr.KindPow:      evenPow,
		},
	}
}

// evenMul: a product of integers with an even factor is even; a
// product of odd integers is odd.
func evenMul(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
	allInt, anyEven, allOdd := true, false, true
	for _, f := range target.Args() {
		intRes, err := q.AskAbout("integer", f)
		if err != nil {
			return assume.Unknown, err
		}
		if intRes != assume.True {
			allInt = false
		}
		evenRes, err := q.AskAbout("even", f)
		if err != nil {
			return assume.Unknown, err
		}
		if evenRes == assume.True {
			anyEven = true
		}
		oddRes, err := q.AskAbout("odd", f)
		if err != nil {
			return assume.Unknown, err
		}
		if oddRes != assume.True {
			allOdd = false
		}
	}
	switch {
	case allInt && anyEven:
		return assume.True, nil
	case allOdd:
		return assume.False, nil
	}
	return assume.Unknown, nil
}

// evenAdd: when every term has known parity, the sum's parity is the
// parity of the count of odd terms.
func evenAdd(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
	odds := 0
	for _, term := range target.Args() {
		evenRes, err := q.AskAbout("even", term)
		if err != nil {
			return assume.Unknown, err
		}
		if evenRes == assume.True {
			continue
		}
		oddRes, err := q.AskAbout("odd", term)
		if err != nil {
			return assume.Unknown, err
		}
		if oddRes != assume.True {
			return assume.Unknown, nil
		}
		odds++
	}
	if odds%2 == 0 {
		return assume.True, nil
	}
	return assume.False, nil
}

// evenPow: a positive integer power preserves the base's parity.
func evenPow(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
	p := target.(expr.Pow)
	e, ok := p.Exp.(expr.Integer)
	if !ok || e.N < 1 {
		return assume.Unknown, nil
	}
	return q.AskAbout("even", p.Base)
}

// Odd resolves oddness: an odd value is an integer that is not even.
func Odd() assume.Handler {
	return assume.Handler{
		Name: "ntheory.odd",
		Cases: map[expr.Kind]assume.EvalFunc{
			expr.KindInteger: func(target expr.Expr, _ *assume.Query) (assume.Ternary, error) {
				if target.(expr.Integer).N%2 != 0 {
					return assume.True, nil
				}
				return assume.False, nil
			},
			expr.KindRational: constFalse,
			expr.KindConstant: constFalse,
		},
		Any: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
			intRes, err := q.AskAbout("integer", target)
			if err != nil {
				return assume.Unknown, err
			}
			if intRes == assume.False {
				return assume.False, nil
			}
			evenRes, err := q.AskAbout("even", target)
			if err != nil {
				return assume.Unknown, err
			}
			if evenRes == assume.True {
				return assume.False, nil
			}
			if evenRes == assume.False && intRes == assume.True {
				return assume.True, nil
			}
			return assume.Unknown, nil
		},
	}
}

// Prime resolves primality. The product and power rules reproduce the
// reference engine: a product of integers is reported non-prime
// without checking for unit factors.
func Prime() assume.Handler {
	return assume.Handler{
		Name: "ntheory.prime",
		Cases: map[expr.Kind]assume.EvalFunc{
			expr.KindInteger: func(target expr.Expr, _ *assume.Query) (assume.Ternary, error) {
				if isPrime(target.(expr.Integer).N) {
					return assume.True, nil
				}
				return assume.False, nil
			},
			expr.KindRational: constFalse,
			expr.KindConstant: constFalse,
			expr.KindMul: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
				ok, err := allOf(q, "integer", target.Args())
				if err != nil {
					return assume.Unknown, err
				}
				if ok {
					return assume.False, nil
				}
				return assume.Unknown, nil
			},
			expr.KindPow: func(target expr.Expr, q *assume.Query) (assume.Ternary, error) {
				p := target.(expr.Pow)
				e, ok := p.Exp.(expr.Integer)
				if !ok || e.N < 2 {
					return assume.Unknown, nil
				}
				baseInt, err := q.AskAbout("integer", p.Base)
				if err != nil {
					return assume.Unknown, err
				}
				if baseInt == assume.True {
					return assume.False, nil
				}
				return assume.Unknown, nil
			},
		},
	}
}

// Composite resolves compositeness of literals; everything else ends
// up with the assumption tiers and the prime axiom.
func Composite() assume.Handler {
	return assume.Handler{
		Name: "ntheory.composite",
		Cases: map[expr.Kind]assume.EvalFunc{
			expr.KindInteger: func(target expr.Expr, _ *assume.Query) (assume.Ternary, error) {
				n := target.(expr.Integer).N
				if n > 1 && !isPrime(n) {
					return assume.True, nil
				}
				return assume.False, nil
			},
			expr.KindRational: constFalse,
			expr.KindConstant: constFalse,
		},
	}
}

// isPrime is trial division; literals in queries stay small.
func isPrime(n int64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := int64(3); d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}
