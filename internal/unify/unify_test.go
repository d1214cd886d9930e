package unify

import (
	"testing"

	"presage/internal/expr"
)

var (
	x = expr.NewSymbol("x")
	y = expr.NewSymbol("y")
	a = expr.NewSymbol("a")
	b = expr.NewSymbol("b")
)

func TestUnifyBindsVariables(t *testing.T) {
	pattern := expr.NewMul(a, b)
	target := expr.NewMul(expr.NewInt(2), expr.NewAdd(x, y))

	matches := Unify(pattern, target, "a", "b")
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	got := matches[0]
	if !got["a"].Equal(expr.NewInt(2)) {
		t.Errorf("a bound to %s", got["a"])
	}
	if !got["b"].Equal(expr.NewAdd(x, y)) {
		t.Errorf("b bound to %s", got["b"])
	}
}

func TestUnifyRepeatedVariable(t *testing.T) {
	pattern := expr.NewMul(a, a)
	if m := Unify(pattern, expr.NewMul(x, x), "a"); len(m) != 1 {
		t.Errorf("a*a against x*x: %d matches, want 1", len(m))
	}
	if m := Unify(pattern, expr.NewMul(x, y), "a"); len(m) != 0 {
		t.Errorf("a*a against x*y: %d matches, want 0", len(m))
	}
}

func TestUnifyMismatches(t *testing.T) {
	tests := []struct {
		name            string
		pattern, target expr.Expr
		vars            []string
	}{
		{"kind", expr.NewMul(a, b), expr.NewAdd(x, y), []string{"a", "b"}},
		{"arity", expr.NewMul(a, b), expr.NewMul(x, y, x), []string{"a", "b"}},
		{"literal", expr.NewPow(a, expr.NewInt(2)), expr.NewPow(x, expr.NewInt(3)), []string{"a"}},
		{"non-variable symbol", expr.NewMul(x, a), expr.NewMul(y, y), []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if m := Unify(tt.pattern, tt.target, tt.vars...); len(m) != 0 {
				t.Errorf("got %d matches, want 0", len(m))
			}
		})
	}
}

func TestUnifyVariableAgainstWholeTarget(t *testing.T) {
	target := expr.NewPow(x, expr.NewAdd(y, expr.NewInt(1)))
	matches := Unify(a, target, "a")
	if len(matches) != 1 || !matches[0]["a"].Equal(target) {
		t.Fatalf("bare variable should capture the whole target, got %v", matches)
	}
}

func TestSubst(t *testing.T) {
	b := Binding{"a": expr.NewInt(3), "b": x}
	in := expr.NewAdd(expr.NewMul(a, expr.NewSymbol("b")), expr.NewPow(a, expr.NewInt(2)))
	got := Subst(in, b)
	want := expr.NewAdd(expr.NewMul(expr.NewInt(3), x), expr.NewPow(expr.NewInt(3), expr.NewInt(2)))
	if !got.Equal(want) {
		t.Errorf("Subst = %s, want %s", got, want)
	}
}

func TestSubstUnboundUnchanged(t *testing.T) {
	in := expr.NewMul(x, expr.NewPow(y, expr.NewInt(2)))
	got := Subst(in, Binding{"a": expr.NewInt(7)})
	if !got.Equal(in) {
		t.Errorf("Subst rewrote an expression with no bound symbols: %s", got)
	}
}

func TestRewrite(t *testing.T) {
	// a^2 becomes a*a.
	rule := Rewrite(
		expr.NewPow(a, expr.NewInt(2)),
		expr.NewMul(a, a),
		"a",
	)

	got := rule(expr.NewPow(expr.NewAdd(x, y), expr.NewInt(2)))
	if len(got) != 1 {
		t.Fatalf("got %d rewrites, want 1", len(got))
	}
	want := expr.NewMul(expr.NewAdd(x, y), expr.NewAdd(x, y))
	if !got[0].Equal(want) {
		t.Errorf("rewrite = %s, want %s", got[0], want)
	}

	if got := rule(expr.NewPow(x, expr.NewInt(3))); len(got) != 0 {
		t.Errorf("rule applied to a non-matching power: %v", got)
	}
	if got := rule(x); len(got) != 0 {
		t.Errorf("rule applied to a bare symbol: %v", got)
	}
}

func TestRewriteSwapsOperands(t *testing.T) {
	rule := Rewrite(expr.NewPow(a, b), expr.NewPow(b, a), "a", "b")
	got := rule(expr.NewPow(x, expr.NewInt(5)))
	if len(got) != 1 {
		t.Fatalf("got %d rewrites, want 1", len(got))
	}
	if want := expr.NewPow(expr.NewInt(5), x); !got[0].Equal(want) {
		t.Errorf("rewrite = %s, want %s", got[0], want)
	}
}
