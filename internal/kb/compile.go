package kb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"presage/internal/logic"
)

// ErrContradiction reports that an axiom set has no model at all, so
// every query against it would be vacuously decided.
var ErrContradiction = errors.New("kb: axiom set is unsatisfiable")

// Entailments is one row of the closure map: everything a single
// asserted key settles about the other keys. Implies always contains
// the key itself.
type Entailments struct {
	Implies  map[string]bool
	Excludes map[string]bool
}

// Compiled is a knowledge base ready for querying: the axioms in
// clause form plus the closure map derived from them.
type Compiled struct {
	// ID identifies one compilation run.
	ID string
	// CompiledAt is the UTC time of compilation.
	CompiledAt time.Time
	// CNF is the axiom set as a conjunction of clauses over Key atoms.
	CNF logic.Prop
	// Closure maps each vocabulary key to its entailment row.
	Closure map[string]Entailments
	// Keys is the sorted vocabulary the closure was computed over.
	Keys []string
	// AxiomCount records how many axioms went in.
	AxiomCount int
}

// Compile converts the axioms to clause form, rejects contradictory
// sets, and derives the closure row for every key by running the
// two-sided entailment check against each other key. Rows are computed
// concurrently; each check runs its own solver.
func Compile(ctx context.Context, axioms []logic.Prop, keys []string) (*Compiled, error) {
	cnf := logic.CNF(logic.And(axioms...))
	if !logic.Satisfiable(cnf) {
		return nil, ErrContradiction
	}

	sorted := dedupeSorted(keys)
	rows := make([]Entailments, len(sorted))
	g, ctx := errgroup.WithContext(ctx)
	for i, key := range sorted {
		i, key := i, key
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows[i] = closureRow(cnf, key, sorted)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("kb: compile closure: %w", err)
	}

	closure := make(map[string]Entailments, len(sorted))
	for i, key := range sorted {
		closure[key] = rows[i]
	}
	return &Compiled{
		ID:         uuid.NewString(),
		CompiledAt: time.Now().UTC(),
		CNF:        cnf,
		Closure:    closure,
		Keys:       sorted,
		AxiomCount: len(axioms),
	}, nil
}

// closureRow computes what asserting key alone settles about every
// other key under the axioms.
func closureRow(cnf logic.Prop, key string, keys []string) Entailments {
	ent := Entailments{
		Implies:  map[string]bool{key: true},
		Excludes: map[string]bool{},
	}
	premise := logic.And(cnf, logic.AtomOf(Key(key)))
	for _, other := range keys {
		if other == key {
			continue
		}
		switch logic.Infer(premise, logic.AtomOf(Key(other))) {
		case logic.True:
			ent.Implies[other] = true
		case logic.False:
			ent.Excludes[other] = true
		}
	}
	return ent
}

func dedupeSorted(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Same reports whether two compiled bases carry identical knowledge,
// ignoring compilation metadata. Used to check a stored artifact
// against a fresh compile.
func Same(a, b *Compiled) bool {
	if a.AxiomCount != b.AxiomCount || len(a.Keys) != len(b.Keys) {
		return false
	}
	for i := range a.Keys {
		if a.Keys[i] != b.Keys[i] {
			return false
		}
	}
	if a.CNF.String() != b.CNF.String() {
		return false
	}
	if len(a.Closure) != len(b.Closure) {
		return false
	}
	for key, ea := range a.Closure {
		eb, ok := b.Closure[key]
		if !ok || !sameSet(ea.Implies, eb.Implies) || !sameSet(ea.Excludes, eb.Excludes) {
			return false
		}
	}
	return true
}

func sameSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
