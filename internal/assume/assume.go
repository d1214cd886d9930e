// Package assume implements the predicate query engine: a vocabulary
// of named predicates, ternary-valued queries about expressions under
// assumption formulas, and the resolution ladder that answers them.
//
// A query asks whether a predicate holds of an expression, given an
// optional assumption formula and the process-wide Global context. The
// resolver answers in escalating tiers: structural handlers attached
// to the predicate, projection of the assumptions onto the queried
// expression, lookup in the precompiled entailment closure, and
// finally full SAT inference against the compiled axioms. Every tier
// is sound with respect to the axioms; they differ only in cost and
// completeness.
//
// Answers are three-valued. Unknown is not failure: it is the honest
// report that the assumptions do not settle the question.
package assume

import (
	"sync"

	"presage/internal/kb"
	"presage/internal/logic"
)

// Ternary re-exports the three-valued answer type for callers that
// only deal with this package.
type Ternary = logic.Ternary

const (
	True    = logic.True
	False   = logic.False
	Unknown = logic.Unknown
)

var (
	registryOnce    sync.Once
	defaultRegistry *Registry

	resolverOnce       sync.Once
	defaultResolver    *Resolver
	defaultResolverErr error
)

// DefaultRegistry returns the process-wide registry, created on first
// use with the built-in vocabulary registered and no handlers
// attached. The handlers package installs the structural evaluation
// rules into it.
func DefaultRegistry() *Registry {
	registryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		for _, name := range kb.DefaultKeys() {
			defaultRegistry.Register(name)
		}
	})
	return defaultRegistry
}

// DefaultResolver returns the process-wide resolver over the default
// registry, knowledge base, and Global context. Compilation of the
// default knowledge base happens on first use; its error, if any, is
// returned on every call.
func DefaultResolver() (*Resolver, error) {
	resolverOnce.Do(func() {
		defaultResolver, defaultResolverErr = New(Config{})
	})
	return defaultResolver, defaultResolverErr
}

// Ask resolves prop under the given assumptions and the Global context
// using the default resolver.
func Ask(prop logic.Prop, assumptions ...logic.Prop) (Ternary, error) {
	r, err := DefaultResolver()
	if err != nil {
		return Unknown, err
	}
	return r.Ask(prop, assumptions...)
}
