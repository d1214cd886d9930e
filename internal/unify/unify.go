// Package unify implements structural pattern matching over
// expressions and the rewrite rules built on top of it. A pattern is
// an ordinary expression in which some symbol names are declared as
// variables; matching binds each variable to the subexpression it
// lines up with. Matching is purely structural: argument order in sums
// and products is taken as written, and no algebraic identities are
// consulted.
package unify

import "presage/internal/expr"

// Binding maps pattern-variable names to the expressions they
// captured.
type Binding map[string]expr.Expr

// Unify matches pattern against target with the named symbols acting
// as variables. A variable binds whatever subexpression it faces, and
// a repeated variable must face structurally equal subexpressions
// everywhere it occurs. The result holds one binding per match and is
// empty when the shapes do not line up.
func Unify(pattern, target expr.Expr, vars ...string) []Binding {
	isVar := make(map[string]bool, len(vars))
	for _, v := range vars {
		isVar[v] = true
	}
	b := make(Binding)
	if !match(pattern, target, isVar, b) {
		return nil
	}
	return []Binding{b}
}

func match(pattern, target expr.Expr, isVar map[string]bool, b Binding) bool {
	if s, ok := pattern.(expr.Symbol); ok && isVar[s.Name] {
		if bound, seen := b[s.Name]; seen {
			return bound.Equal(target)
		}
		b[s.Name] = target
		return true
	}
	if pattern.Kind() != target.Kind() {
		return false
	}
	pArgs, tArgs := pattern.Args(), target.Args()
	if len(pArgs) == 0 {
		return pattern.Equal(target)
	}
	if len(pArgs) != len(tArgs) {
		return false
	}
	for i := range pArgs {
		if !match(pArgs[i], tArgs[i], isVar, b) {
			return false
		}
	}
	return true
}

// Subst replaces every symbol in e that b binds with its bound
// expression, bottom up. Spines without any bound symbol are returned
// as is rather than rebuilt.
func Subst(e expr.Expr, b Binding) expr.Expr {
	out, _ := subst(e, b)
	return out
}

func subst(e expr.Expr, b Binding) (expr.Expr, bool) {
	switch t := e.(type) {
	case expr.Symbol:
		if r, ok := b[t.Name]; ok {
			return r, true
		}
	case expr.Add:
		if args, changed := substAll(t.Terms, b); changed {
			return expr.NewAdd(args...), true
		}
	case expr.Mul:
		if args, changed := substAll(t.Factors, b); changed {
			return expr.NewMul(args...), true
		}
	case expr.Pow:
		base, bc := subst(t.Base, b)
		exp, ec := subst(t.Exp, b)
		if bc || ec {
			return expr.NewPow(base, exp), true
		}
	}
	return e, false
}

func substAll(args []expr.Expr, b Binding) ([]expr.Expr, bool) {
	changed := false
	out := make([]expr.Expr, len(args))
	for i, a := range args {
		var c bool
		out[i], c = subst(a, b)
		changed = changed || c
	}
	if !changed {
		return nil, false
	}
	return out, true
}

// RewriteFunc applies a rewrite rule to an expression, yielding one
// rewritten expression per match and nothing when the rule does not
// apply.
type RewriteFunc func(expr.Expr) []expr.Expr

// Rewrite builds the rule "lhs becomes rhs" with the named symbols as
// pattern variables. Applying the rule unifies lhs against the input
// and instantiates rhs under each resulting binding.
func Rewrite(lhs, rhs expr.Expr, vars ...string) RewriteFunc {
	return func(e expr.Expr) []expr.Expr {
		matches := Unify(lhs, e, vars...)
		if len(matches) == 0 {
			return nil
		}
		out := make([]expr.Expr, len(matches))
		for i, b := range matches {
			out[i] = Subst(rhs, b)
		}
		return out
	}
}
