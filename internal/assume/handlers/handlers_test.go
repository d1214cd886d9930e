package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presage/internal/assume"
	"presage/internal/expr"
	"presage/internal/kb"
	"presage/internal/logic"
)

// newResolver builds a resolver with the built-in handlers installed,
// a private context, and the shared default knowledge base.
func newResolver(t *testing.T) *assume.Resolver {
	t.Helper()
	reg := assume.NewRegistry()
	for _, name := range kb.DefaultKeys() {
		reg.Register(name)
	}
	Install(reg)
	compiled, err := kb.Default()
	require.NoError(t, err)
	r, err := assume.New(assume.Config{
		Registry:  reg,
		Knowledge: compiled,
		Context:   assume.NewAssumptionSet(),
	})
	require.NoError(t, err)
	return r
}

func ask(t *testing.T, r *assume.Resolver, key string, target expr.Expr, assumptions ...logic.Prop) assume.Ternary {
	t.Helper()
	p, err := r.Registry().Lookup(key)
	require.NoError(t, err)
	res, err := r.Ask(p.Of(target), assumptions...)
	require.NoError(t, err)
	return res
}

func TestLiteralEvaluation(t *testing.T) {
	r := newResolver(t)
	tests := []struct {
		key    string
		target expr.Expr
		want   assume.Ternary
	}{
		{"even", expr.NewInt(4), assume.True},
		{"even", expr.NewInt(7), assume.False},
		{"even", expr.NewRat(1, 2), assume.False},
		{"odd", expr.NewInt(7), assume.True},
		{"odd", expr.NewInt(-4), assume.False},
		{"prime", expr.NewInt(13), assume.True},
		{"prime", expr.NewInt(14), assume.False},
		{"prime", expr.NewInt(1), assume.False},
		{"prime", expr.NewInt(-7), assume.False},
		{"composite", expr.NewInt(14), assume.True},
		{"composite", expr.NewInt(13), assume.False},
		{"integer", expr.NewInt(3), assume.True},
		{"integer", expr.NewRat(1, 2), assume.False},
		{"integer", expr.Pi, assume.False},
		{"rational", expr.NewRat(22, 7), assume.True},
		{"rational", expr.Pi, assume.False},
		{"irrational", expr.Pi, assume.True},
		{"irrational", expr.NewInt(2), assume.False},
		{"real", expr.Pi, assume.True},
		{"complex", expr.E, assume.True},
		{"imaginary", expr.NewInt(5), assume.False},
		{"algebraic", expr.NewRat(3, 4), assume.True},
		{"algebraic", expr.E, assume.False},
		{"positive", expr.NewInt(3), assume.True},
		{"positive", expr.NewInt(-3), assume.False},
		{"positive", expr.NewInt(0), assume.False},
		{"negative", expr.NewRat(-1, 2), assume.True},
		{"negative", expr.Pi, assume.False},
		{"nonzero", expr.NewInt(0), assume.False},
		{"nonzero", expr.NewRat(1, 3), assume.True},
		{"bounded", expr.NewInt(1000000), assume.True},
		{"infinitesimal", expr.NewInt(0), assume.True},
		{"infinitesimal", expr.NewInt(1), assume.False},
		{"infinity", expr.NewInt(3), assume.False},
		{"commutative", expr.NewInt(3), assume.True},
	}
	for _, tt := range tests {
		t.Run(tt.key+"/"+tt.target.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ask(t, r, tt.key, tt.target))
		})
	}
}

func TestCompositeEvaluation(t *testing.T) {
	r := newResolver(t)
	x := expr.NewSymbol("x")
	y := expr.NewSymbol("y")
	two := expr.NewInt(2)
	three := expr.NewInt(3)

	tests := []struct {
		name   string
		key    string
		target expr.Expr
		want   assume.Ternary
	}{
		{"sum of integers", "integer", expr.NewAdd(two, three), assume.True},
		{"product of integers", "integer", expr.NewMul(two, three), assume.True},
		{"integer power", "integer", expr.NewPow(three, two), assume.True},
		{"even times anything integer", "even", expr.NewMul(two, three), assume.True},
		{"odd product", "even", expr.NewMul(three, expr.NewInt(5)), assume.False},
		{"odd plus odd", "even", expr.NewAdd(three, three), assume.True},
		{"odd plus even", "odd", expr.NewAdd(three, two), assume.True},
		{"pi plus rational", "rational", expr.NewAdd(expr.Pi, two), assume.False},
		{"pi plus rational is irrational", "irrational", expr.NewAdd(expr.Pi, two), assume.True},
		{"two irrationals", "rational", expr.NewAdd(expr.Pi, expr.E), assume.Unknown},
		{"pi times nonzero rational", "rational", expr.NewMul(expr.Pi, two), assume.False},
		{"sum of positives", "positive", expr.NewAdd(two, expr.Pi), assume.True},
		{"negative times negative", "positive", expr.NewMul(expr.NewInt(-2), expr.NewInt(-3)), assume.True},
		{"negative times positive", "negative", expr.NewMul(expr.NewInt(-2), three), assume.True},
		{"negative square", "positive", expr.NewPow(expr.NewInt(-3), two), assume.True},
		{"negative cube", "negative", expr.NewPow(expr.NewInt(-3), three), assume.True},
		{"product with symbol", "positive", expr.NewMul(two, x), assume.Unknown},
		{"bounded sum", "bounded", expr.NewAdd(two, expr.NewMul(three, expr.Pi)), assume.True},
		{"vanishing product", "infinitesimal", expr.NewMul(expr.NewInt(0), three), assume.True},
		{"symbols commute by default", "commutative", expr.NewMul(x, y), assume.True},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ask(t, r, tt.key, tt.target))
		})
	}
}

func TestEvaluationUnderAssumptions(t *testing.T) {
	r := newResolver(t)
	reg := r.Registry()
	x := expr.NewSymbol("x")
	y := expr.NewSymbol("y")
	integer, err := reg.Lookup("integer")
	require.NoError(t, err)
	even, err := reg.Lookup("even")
	require.NoError(t, err)
	positive, err := reg.Lookup("positive")
	require.NoError(t, err)
	commutative, err := reg.Lookup("commutative")
	require.NoError(t, err)

	// The product of assumed integers is an integer, and assumed
	// evenness of one factor spreads to the product.
	assert.Equal(t, assume.True,
		ask(t, r, "integer", expr.NewMul(x, y), integer.Of(x), integer.Of(y)))
	assert.Equal(t, assume.True,
		ask(t, r, "even", expr.NewMul(x, y), integer.Of(x), integer.Of(y), even.Of(x)))

	// Sign propagation from assumptions through a product.
	assert.Equal(t, assume.True,
		ask(t, r, "positive", expr.NewMul(x, y), positive.Of(x), positive.Of(y)))
	assert.Equal(t, assume.False,
		ask(t, r, "positive", expr.NewMul(x, y), positive.Of(x), logic.Not(positive.Of(y)), pred2(t, reg, "nonzero").Of(y)))

	// A denied commutativity assumption overrides the default.
	assert.Equal(t, assume.False,
		ask(t, r, "commutative", x, logic.Not(commutative.Of(x))))
}

func pred2(t *testing.T, reg *assume.Registry, name string) *assume.Predicate {
	t.Helper()
	p, err := reg.Lookup(name)
	require.NoError(t, err)
	return p
}

// TestPrimeOfProductOfIntegers pins the reference behavior: a product
// of assumed integers is reported non-prime by the structural rule
// alone.
func TestPrimeOfProductOfIntegers(t *testing.T) {
	r := newResolver(t)
	x := expr.NewSymbol("x")
	y := expr.NewSymbol("y")
	integer, err := r.Registry().Lookup("integer")
	require.NoError(t, err)

	got := ask(t, r, "prime", expr.NewMul(x, y), integer.Of(x), integer.Of(y))
	assert.Equal(t, assume.False, got)
}

// TestRationalOfPiSkipsInference gives the resolver a knowledge base
// with no axioms at all, so the only possible source of the answer is
// the structural handler tier.
func TestRationalOfPiSkipsInference(t *testing.T) {
	reg := assume.NewRegistry()
	for _, name := range kb.DefaultKeys() {
		reg.Register(name)
	}
	Install(reg)
	empty := &kb.Compiled{CNF: logic.Top, Closure: map[string]kb.Entailments{}}
	r, err := assume.New(assume.Config{
		Registry:  reg,
		Knowledge: empty,
		Context:   assume.NewAssumptionSet(),
	})
	require.NoError(t, err)

	assert.Equal(t, assume.False, ask(t, r, "rational", expr.Pi))
	assert.Equal(t, assume.True, ask(t, r, "irrational", expr.Pi))
}

// TestHandlersAgreeWithAxioms is the tier-one soundness property over
// literals: any definitive structural answer must be consistent with
// full inference from the corresponding closure facts.
func TestHandlersAgreeWithAxioms(t *testing.T) {
	r := newResolver(t)
	compiled := r.Knowledge()
	targets := []expr.Expr{
		expr.NewInt(-3), expr.NewInt(0), expr.NewInt(2), expr.NewInt(7),
		expr.NewRat(1, 2), expr.NewRat(-22, 7), expr.Pi, expr.E,
	}
	for _, target := range targets {
		// Collect every definitive structural answer for this target.
		decided := map[string]assume.Ternary{}
		for _, key := range compiled.Keys {
			res := ask(t, r, key, target)
			if res.Known() {
				decided[key] = res
			}
		}
		// The conjunction of all decided facts must satisfy the
		// axioms; a contradiction here means a handler lied.
		facts := []logic.Prop{compiled.CNF}
		for key, res := range decided {
			atom := logic.Prop(logic.AtomOf(kb.Key(key)))
			if res == assume.False {
				atom = logic.Not(atom)
			}
			facts = append(facts, atom)
		}
		if !logic.Satisfiable(logic.And(facts...)) {
			t.Errorf("structural answers for %s contradict the axioms: %v", target, decided)
		}
	}
}

func TestRemoveHandlerScenarios(t *testing.T) {
	reg := assume.NewRegistry()
	Install(reg)

	// Removing an attached handler works once.
	require.NoError(t, reg.RemoveHandler("even", "ntheory.even"))
	// Removing it again is the documented error.
	assert.Error(t, reg.RemoveHandler("even", "ntheory.even"))
	// As is removing from a predicate never registered.
	assert.Error(t, reg.RemoveHandler("never_registered", "ntheory.even"))
}

func TestInstallTwiceChangesNoAnswers(t *testing.T) {
	r := newResolver(t)
	before := ask(t, r, "even", expr.NewInt(4))
	Install(r.Registry())
	after := ask(t, r, "even", expr.NewInt(4))
	assert.Equal(t, before, after)

	beforeU := ask(t, r, "even", expr.NewSymbol("x"))
	assert.Equal(t, assume.Unknown, beforeU)
}
