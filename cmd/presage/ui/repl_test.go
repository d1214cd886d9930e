package ui

import (
	"strings"
	"testing"

	"presage/internal/assume"
	"presage/internal/assume/handlers"
	"presage/internal/kb"
)

func testModel(t *testing.T) model {
	t.Helper()
	reg := assume.NewRegistry()
	for _, name := range kb.DefaultKeys() {
		reg.Register(name)
	}
	handlers.Install(reg)
	compiled, err := kb.Default()
	if err != nil {
		t.Fatalf("kb.Default: %v", err)
	}
	resolver, err := assume.New(assume.Config{
		Registry:  reg,
		Knowledge: compiled,
		Context:   assume.NewAssumptionSet(),
	})
	if err != nil {
		t.Fatalf("assume.New: %v", err)
	}
	return newModel(resolver)
}

func plain(lines []string) string {
	// Styles are inert without a TTY, but strip spaces for stable
	// matching anyway.
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func TestEvalProposition(t *testing.T) {
	m := testModel(t)
	if got := plain(m.eval("even(4)")); !strings.Contains(got, "true") {
		t.Errorf("even(4) = %q", got)
	}
	if got := plain(m.eval("even(7)")); !strings.Contains(got, "false") {
		t.Errorf("even(7) = %q", got)
	}
	if got := plain(m.eval("even(x)")); !strings.Contains(got, "unknown") {
		t.Errorf("even(x) = %q", got)
	}
	if got := plain(m.eval("evenn(x)")); !strings.Contains(got, "not registered") {
		t.Errorf("unknown predicate produced %q", got)
	}
}

func TestSessionAssumptions(t *testing.T) {
	m := testModel(t)

	m.eval(":assume integer(x)")
	if got := plain(m.eval("rational(x)")); !strings.Contains(got, "true") {
		t.Errorf("rational(x) under session assumption = %q", got)
	}

	if got := plain(m.eval(":global")); !strings.Contains(got, "integer(x)") {
		t.Errorf(":global = %q", got)
	}

	m.eval(":clear")
	if got := plain(m.eval("rational(x)")); !strings.Contains(got, "unknown") {
		t.Errorf("rational(x) after :clear = %q", got)
	}

	if got := plain(m.eval(":forget integer(x)")); !strings.Contains(got, "not assumed") {
		t.Errorf(":forget of an absent assumption = %q", got)
	}
}

func TestSessionCommands(t *testing.T) {
	m := testModel(t)

	if got := plain(m.eval(":facts odd")); !strings.Contains(got, "integer") || !strings.Contains(got, "even") {
		t.Errorf(":facts odd = %q", got)
	}
	if got := plain(m.eval(":facts nosuchkey")); !strings.Contains(got, "no closure row") {
		t.Errorf(":facts nosuchkey = %q", got)
	}
	if got := plain(m.eval(":dance")); !strings.Contains(got, "unknown command") {
		t.Errorf(":dance = %q", got)
	}
}
