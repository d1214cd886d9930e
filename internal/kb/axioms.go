package kb

import "presage/internal/logic"

// DefaultAxioms returns the built-in axiom set relating the default
// vocabulary. Every fact is stated over bare keys; applied predicates
// never appear here.
func DefaultAxioms() []logic.Prop {
	k := func(name string) logic.Prop { return logic.AtomOf(Key(name)) }
	not := logic.Not
	return []logic.Prop{
		logic.Implies(k("real"), k("complex")),
		logic.Implies(k("real"), k("hermitian")),
		logic.Equiv(k("even"), logic.And(k("integer"), not(k("odd")))),
		logic.Equiv(k("extended_real"), logic.Or(k("real"), k("infinity"))),
		logic.Equiv(k("odd"), logic.And(k("integer"), not(k("even")))),
		logic.Equiv(k("prime"), logic.And(k("integer"), k("positive"), not(k("composite")))),
		logic.Implies(k("integer"), k("rational")),
		logic.Implies(k("imaginary"), logic.And(k("complex"), not(k("real")))),
		logic.Implies(k("imaginary"), k("antihermitian")),
		logic.Implies(k("antihermitian"), not(k("hermitian"))),
		logic.Equiv(k("negative"), logic.And(k("nonzero"), not(k("positive")))),
		logic.Equiv(k("positive"), logic.And(k("nonzero"), not(k("negative")))),
		logic.Equiv(k("rational"), logic.And(k("real"), not(k("irrational")))),
		logic.Equiv(k("real"), logic.Or(k("rational"), k("irrational"))),
		logic.Implies(k("nonzero"), k("real")),
		logic.Equiv(k("nonzero"), logic.Or(k("positive"), k("negative"))),
		logic.Implies(k("orthogonal"), k("positive_definite")),
		logic.Implies(k("positive_definite"), k("invertible")),
		logic.Implies(k("diagonal"), k("upper_triangular")),
		logic.Implies(k("diagonal"), k("lower_triangular")),
	}
}
