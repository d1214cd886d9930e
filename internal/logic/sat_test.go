package logic

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestSatisfiable(t *testing.T) {
	a, b := atom("a"), atom("b")
	tests := []struct {
		name string
		p    Prop
		want bool
	}{
		{"constant true", Top, true},
		{"constant false", Bottom, false},
		{"free atom", a, true},
		{"contradiction", And(a, Not(a)), false},
		{"contingent", And(Implies(a, b), a), true},
		{"modus tollens", And(Implies(a, b), Not(b), a), false},
		{"chain", And(Implies(a, b), Implies(b, atom("c")), a, Not(atom("c"))), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Satisfiable(tt.p); got != tt.want {
				t.Errorf("Satisfiable(%s) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestModel(t *testing.T) {
	a, b := atom("a"), atom("b")
	m, ok := Model(And(a, Not(b)))
	if !ok {
		t.Fatal("satisfiable formula reported unsat")
	}
	if !m["a"] || m["b"] {
		t.Errorf("model %v does not satisfy a & ~b", m)
	}
	if _, ok := Model(And(a, Not(a))); ok {
		t.Error("unsatisfiable formula produced a model")
	}
}

func TestInfer(t *testing.T) {
	a, b, c := atom("a"), atom("b"), atom("c")
	premises := And(Implies(a, b), Implies(b, c), a)
	tests := []struct {
		name string
		prop Prop
		want Ternary
	}{
		{"entailed directly", b, True},
		{"entailed transitively", c, True},
		{"refuted", Not(b), False},
		{"free atom", atom("d"), Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Infer(premises, tt.prop); got != tt.want {
				t.Errorf("Infer(%s) = %s, want %s", tt.prop, got, tt.want)
			}
		})
	}
}

func TestInferContradictoryPremises(t *testing.T) {
	a := atom("a")
	if got := Infer(And(a, Not(a)), atom("b")); got != False {
		t.Errorf("contradictory premises inferred %s, want false", got)
	}
}

// pigeonhole builds the unsatisfiable claim that pigeons many pigeons
// fit injectively into holes many holes. Hard for CDCL solvers once
// the counts grow, which makes it a reliable timeout fixture.
func pigeonhole(pigeons, holes int) Prop {
	in := func(p, h int) Prop { return atom(fmt.Sprintf("p%d_%d", p, h)) }
	var all []Prop
	for p := 0; p < pigeons; p++ {
		var somewhere []Prop
		for h := 0; h < holes; h++ {
			somewhere = append(somewhere, in(p, h))
		}
		all = append(all, Or(somewhere...))
	}
	for h := 0; h < holes; h++ {
		for p := 0; p < pigeons; p++ {
			for q := p + 1; q < pigeons; q++ {
				all = append(all, Or(Not(in(p, h)), Not(in(q, h))))
			}
		}
	}
	return And(all...)
}

func TestSatisfiableWithin(t *testing.T) {
	sat, err := SatisfiableWithin(pigeonhole(3, 3), time.Second)
	if err != nil || !sat {
		t.Errorf("3 pigeons in 3 holes: sat=%v err=%v", sat, err)
	}
	sat, err = SatisfiableWithin(pigeonhole(4, 3), time.Second)
	if err != nil || sat {
		t.Errorf("4 pigeons in 3 holes: sat=%v err=%v", sat, err)
	}
}

func TestSatisfiableWithinTimeout(t *testing.T) {
	if testing.Short() {
		t.Skip("hard instance")
	}
	_, err := SatisfiableWithin(pigeonhole(15, 14), 20*time.Millisecond)
	if !errors.Is(err, ErrSolveTimeout) {
		t.Fatalf("hard instance finished inside 20ms budget: err=%v", err)
	}
}

func TestInferWithinTimeout(t *testing.T) {
	if testing.Short() {
		t.Skip("hard instance")
	}
	got, err := InferWithin(pigeonhole(15, 14), atom("p0_0"), 20*time.Millisecond)
	if !errors.Is(err, ErrSolveTimeout) {
		t.Fatalf("expected timeout, got %s, %v", got, err)
	}
	if got != Unknown {
		t.Errorf("timed out answer must be unknown, got %s", got)
	}
}

func TestDeterministicNumbering(t *testing.T) {
	p := And(Or(atom("x"), atom("y")), Not(atom("z")))
	first := load(p)
	second := load(p)
	for id, v := range first.vars {
		if second.vars[id] != v {
			t.Fatalf("atom %q numbered %d then %d", id, v, second.vars[id])
		}
	}
}
