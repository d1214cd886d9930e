package assume

import (
	"presage/internal/expr"
	"presage/internal/logic"
)

// EvalFunc decides whether the handled predicate holds of target,
// returning Unknown when the structure alone does not settle it.
type EvalFunc func(target expr.Expr, q *Query) (Ternary, error)

// Handler resolves applications of one predicate from the structure of
// the target expression. Dispatch is by expression kind: the matching
// case owns the answer, and Any is consulted only when no case
// matches. A handler with neither yields Unknown.
type Handler struct {
	// Name labels the handler for removal and diagnostics, e.g.
	// "ntheory.even".
	Name string
	// Cases maps expression kinds to their evaluation rules.
	Cases map[expr.Kind]EvalFunc
	// Any runs for kinds absent from Cases.
	Any EvalFunc
}

// Eval dispatches target to the handler's rule for its kind.
func (h Handler) Eval(target expr.Expr, q *Query) (Ternary, error) {
	if fn, ok := h.Cases[target.Kind()]; ok {
		return fn(target, q)
	}
	if h.Any != nil {
		return h.Any(target, q)
	}
	return Unknown, nil
}

// Query carries one resolution in progress. Handlers use it to ask
// follow-up questions about subexpressions under the same combined
// assumptions, which recurse through the full resolution ladder.
type Query struct {
	r           *Resolver
	assumptions logic.Prop
}

// Ask resolves prop under this query's combined assumptions.
func (q *Query) Ask(prop logic.Prop) (Ternary, error) {
	return q.r.resolve(prop, q.assumptions)
}

// AskAbout resolves the application of the named predicate to target.
// The name must be registered.
func (q *Query) AskAbout(key string, target expr.Expr) (Ternary, error) {
	pred, err := q.r.reg.Lookup(key)
	if err != nil {
		return Unknown, err
	}
	return q.r.resolve(pred.Of(target), q.assumptions)
}

// Assumptions returns the combined assumption formula of the query,
// explicit arguments conjoined with the context snapshot.
func (q *Query) Assumptions() logic.Prop { return q.assumptions }
