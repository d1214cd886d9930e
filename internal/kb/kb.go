// Package kb builds and serves the compiled knowledge base: the axiom
// set relating predicate keys, its conjunctive normal form for SAT
// queries, and the per-key closure map of entailments precomputed from
// it. Compilation is an offline step; the resolver only reads the
// result. A compiled base can be serialized to a YAML artifact and
// loaded back without recompiling.
package kb

// Key is a bare predicate name acting as a propositional atom. Keys
// unify with applied predicates from other packages through the shared
// identity string, so a formula can mix both.
type Key string

// LogicID returns the key name.
func (k Key) LogicID() string { return string(k) }

// DefaultKeys returns the built-in predicate vocabulary. The matrix
// predicates participate in axioms only; the scalar ones also have
// kind handlers installed by the handlers package.
func DefaultKeys() []string {
	return []string{
		"algebraic",
		"antihermitian",
		"bounded",
		"commutative",
		"complex",
		"composite",
		"diagonal",
		"even",
		"extended_real",
		"hermitian",
		"imaginary",
		"infinitesimal",
		"infinity",
		"integer",
		"invertible",
		"irrational",
		"is_true",
		"lower_triangular",
		"negative",
		"nonzero",
		"odd",
		"orthogonal",
		"positive",
		"positive_definite",
		"prime",
		"rational",
		"real",
		"symmetric",
		"upper_triangular",
	}
}
