// Package handlers supplies the built-in structural evaluation rules
// for the predicate vocabulary and installs them into a registry. Each
// handler answers from the shape of the target expression, recursing
// into subexpressions through the query; anything structure cannot
// settle is left to the assumption tiers of the resolver.
//
// The rules only ever return definitive answers that the axiom set
// also licenses, so tier one never disagrees with the SAT fallback.
package handlers

import (
	"presage/internal/assume"
	"presage/internal/expr"
)

// Install attaches the built-in handler set to reg, registering any
// missing vocabulary names on the way. Attach once per registry;
// repeated installs stack duplicate handlers, which changes no answers
// but wastes work.
func Install(reg *assume.Registry) {
	reg.AddHandler("commutative", Commutative())

	reg.AddHandler("even", Even())
	reg.AddHandler("odd", Odd())
	reg.AddHandler("prime", Prime())
	reg.AddHandler("composite", Composite())

	reg.AddHandler("integer", Integer())
	reg.AddHandler("rational", Rational())
	reg.AddHandler("irrational", Irrational())
	reg.AddHandler("real", Real())
	reg.AddHandler("extended_real", ExtendedReal())
	reg.AddHandler("complex", Complex())
	reg.AddHandler("imaginary", Imaginary())
	reg.AddHandler("hermitian", Hermitian())
	reg.AddHandler("antihermitian", Antihermitian())
	reg.AddHandler("algebraic", Algebraic())
	reg.AddHandler("infinity", Infinity())

	reg.AddHandler("positive", Positive())
	reg.AddHandler("negative", Negative())
	reg.AddHandler("nonzero", Nonzero())

	reg.AddHandler("bounded", Bounded())
	reg.AddHandler("infinitesimal", Infinitesimal())
}

// allOf reports whether every arg is known to satisfy key.
func allOf(q *assume.Query, key string, args []expr.Expr) (bool, error) {
	for _, a := range args {
		res, err := q.AskAbout(key, a)
		if err != nil || res != assume.True {
			return false, err
		}
	}
	return true, nil
}

// constTrue answers True regardless of structure.
func constTrue(expr.Expr, *assume.Query) (assume.Ternary, error) {
	return assume.True, nil
}

// constFalse answers False regardless of structure.
func constFalse(expr.Expr, *assume.Query) (assume.Ternary, error) {
	return assume.False, nil
}
