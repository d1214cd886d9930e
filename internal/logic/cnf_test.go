package logic

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// clauseStrings renders each clause of a CNF formula for comparison.
func clauseStrings(t *testing.T, p Prop) [][]string {
	t.Helper()
	clauses, err := Clauses(p)
	if err != nil {
		t.Fatalf("Clauses(%s): %v", p, err)
	}
	out := make([][]string, len(clauses))
	for i, cl := range clauses {
		out[i] = make([]string, len(cl))
		for j, lit := range cl {
			out[i][j] = lit.String()
		}
	}
	return out
}

func TestCNF(t *testing.T) {
	a, b, c, d := atom("a"), atom("b"), atom("c"), atom("d")
	tests := []struct {
		name string
		p    Prop
		want [][]string
	}{
		{"atom", a, [][]string{{"a"}}},
		{"negation", Not(a), [][]string{{"~a"}}},
		{"clause passes through", Or(a, Not(b)), [][]string{{"a", "~b"}}},
		{"implication", Implies(a, b), [][]string{{"~a", "b"}}},
		{
			"biconditional",
			Equiv(a, b),
			[][]string{{"~a", "b"}, {"~b", "a"}},
		},
		{
			"negated conjunction",
			Not(And(a, b)),
			[][]string{{"~a", "~b"}},
		},
		{
			"negated disjunction",
			Not(Or(a, b)),
			[][]string{{"~a"}, {"~b"}},
		},
		{
			"distribute right",
			Or(a, And(b, c)),
			[][]string{{"a", "b"}, {"a", "c"}},
		},
		{
			"distribute both",
			Or(And(a, b), And(c, d)),
			[][]string{{"a", "c"}, {"a", "d"}, {"b", "c"}, {"b", "d"}},
		},
		{
			"equivalence with disjunction",
			Equiv(a, Or(b, c)),
			[][]string{{"~a", "b", "c"}, {"~b", "a"}, {"~c", "a"}},
		},
		{
			"implication of conjunction",
			Implies(a, And(b, c)),
			[][]string{{"~a", "b"}, {"~a", "c"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clauseStrings(t, CNF(tt.p))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("CNF(%s) clauses mismatch (-want +got):\n%s", tt.p, diff)
			}
		})
	}
}

func TestCNFConstants(t *testing.T) {
	if got := CNF(Top); got != Top {
		t.Errorf("CNF(true) = %s", got)
	}
	clauses, err := Clauses(CNF(Top))
	if err != nil || len(clauses) != 0 {
		t.Errorf("Clauses(true) = %v, %v", clauses, err)
	}
	clauses, err = Clauses(CNF(Bottom))
	if err != nil || len(clauses) != 1 || len(clauses[0]) != 0 {
		t.Errorf("Clauses(false) = %v, %v; want one empty clause", clauses, err)
	}
}

func TestClausesRejectsNonCNF(t *testing.T) {
	a, b := atom("a"), atom("b")
	for _, p := range []Prop{Implies(a, b), Not(And(a, b)), And(a, Implies(a, b))} {
		if _, err := Clauses(p); err == nil {
			t.Errorf("Clauses(%s) accepted a non-CNF formula", p)
		}
	}
}

func TestLiteralProp(t *testing.T) {
	pos := Literal{Atom: key("a")}
	neg := Literal{Atom: key("a"), Negated: true}
	if pos.Prop().String() != "a" || neg.Prop().String() != "~a" {
		t.Errorf("literal round trip: %s, %s", pos.Prop(), neg.Prop())
	}
}
