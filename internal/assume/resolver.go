package assume

import (
	"errors"
	"fmt"
	"time"

	"presage/internal/kb"
	"presage/internal/logic"
)

// Config assembles a Resolver. Zero fields fall back to the defaults:
// the process registry, the default knowledge base, the Global
// context, and unbounded solving.
type Config struct {
	Registry *Registry
	// Knowledge is the compiled base consulted by tiers three and
	// four.
	Knowledge *kb.Compiled
	// Context contributes background assumptions to every query.
	Context *AssumptionSet
	// SolveTimeout caps each SAT fallback run. Exceeding it yields
	// Unknown, never a wrong answer. Zero means no cap.
	SolveTimeout time.Duration
}

// Resolver answers predicate queries. It is immutable after New and
// safe for concurrent use; mutation happens in the registry and the
// context it reads from.
type Resolver struct {
	reg          *Registry
	kb           *kb.Compiled
	context      *AssumptionSet
	solveTimeout time.Duration
}

// New builds a resolver from cfg, compiling the default knowledge base
// if none is supplied.
func New(cfg Config) (*Resolver, error) {
	if cfg.Registry == nil {
		cfg.Registry = DefaultRegistry()
	}
	if cfg.Knowledge == nil {
		compiled, err := kb.Default()
		if err != nil {
			return nil, fmt.Errorf("assume: default knowledge: %w", err)
		}
		cfg.Knowledge = compiled
	}
	if cfg.Context == nil {
		cfg.Context = Global
	}
	return &Resolver{
		reg:          cfg.Registry,
		kb:           cfg.Knowledge,
		context:      cfg.Context,
		solveTimeout: cfg.SolveTimeout,
	}, nil
}

// Registry returns the registry this resolver consults.
func (r *Resolver) Registry() *Registry { return r.reg }

// Knowledge returns the compiled base this resolver consults.
func (r *Resolver) Knowledge() *kb.Compiled { return r.kb }

// Context returns the background assumption set.
func (r *Resolver) Context() *AssumptionSet { return r.context }

// Ask resolves prop under the conjunction of the explicit assumptions
// and a snapshot of the context. The answer is one of the three truth
// values; Unknown means the assumptions do not settle the question.
// The only error conditions are an unregistered predicate key and
// handler failures.
func (r *Resolver) Ask(prop logic.Prop, assumptions ...logic.Prop) (Ternary, error) {
	all := make([]logic.Prop, 0, len(assumptions)+r.context.Len())
	all = append(all, assumptions...)
	for _, p := range r.context.Snapshot() {
		all = append(all, p)
	}
	return r.resolve(prop, logic.And(all...))
}

// resolve dispatches on the shape of the proposition. Applications of
// a predicate to an expression take the tiered ladder; every other
// shape is decomposed truth-functionally with the atoms resolved
// recursively.
func (r *Resolver) resolve(prop logic.Prop, combined logic.Prop) (Ternary, error) {
	if leaf, ok := prop.(logic.Leaf); ok {
		if ap, ok := leaf.Atom.(*Applied); ok {
			return r.resolveApplied(ap, combined)
		}
		// A bare predicate atom has no target expression to project
		// assumptions onto.
		return Unknown, nil
	}
	return r.resolveCompound(prop, combined)
}

func (r *Resolver) resolveApplied(ap *Applied, combined logic.Prop) (Ternary, error) {
	key := ap.Pred
	if _, err := r.reg.Lookup(key.Name()); err != nil {
		return Unknown, err
	}

	// Tier one: structural handlers, in attachment order. The first
	// definitive answer wins.
	q := &Query{r: r, assumptions: combined}
	for _, h := range r.reg.Handlers(key.Name()) {
		res, err := h.Eval(ap.Target, q)
		if err != nil {
			return Unknown, fmt.Errorf("assume: handler %s: %w", h.Name, err)
		}
		if res.Known() {
			return res, nil
		}
	}

	// Tier two: project the assumptions onto the target. No relevant
	// facts means no grounds for any answer.
	if truth, ok := combined.(logic.Truth); ok && bool(truth) {
		return Unknown, nil
	}
	facts := extractFacts(combined, ap.Target)
	if facts == nil {
		return Unknown, nil
	}

	// Tier three: closure lookup for the shapes it covers.
	if res, ok := r.closureLookup(key, facts); ok {
		return res, nil
	}

	// Tier four: full inference against the compiled axioms.
	return r.fullInference(key, facts)
}

// closureLookup answers from the precompiled entailment map when the
// extracted facts are a bare key, a negated bare key, or a conjunction
// of such. ok=false falls through to SAT, never to a final answer.
func (r *Resolver) closureLookup(key *Predicate, facts logic.Prop) (Ternary, bool) {
	closure := r.kb.Closure
	keyEnt, keyCompiled := closure[key.Name()]

	switch f := facts.(type) {
	case logic.Leaf:
		name, ok := bareName(f)
		if !ok {
			return Unknown, false
		}
		ent, ok := closure[name]
		if !ok {
			return Unknown, false
		}
		if ent.Implies[key.Name()] {
			return True, true
		}
		if ent.Excludes[key.Name()] {
			return False, true
		}

	case logic.Neg:
		name, ok := bareName(f.Operand)
		if !ok {
			return Unknown, false
		}
		// Contraposition: key entailing the denied fact refutes key.
		if keyCompiled && keyEnt.Implies[name] {
			return False, true
		}

	case logic.Conj:
		type conjunct struct {
			name    string
			negated bool
		}
		parts := make([]conjunct, 0, len(f.Operands))
		for _, op := range f.Operands {
			switch c := op.(type) {
			case logic.Leaf:
				name, ok := bareName(c)
				if !ok {
					return Unknown, false
				}
				parts = append(parts, conjunct{name: name})
			case logic.Neg:
				name, ok := bareName(c.Operand)
				if !ok {
					return Unknown, false
				}
				parts = append(parts, conjunct{name: name, negated: true})
			default:
				return Unknown, false
			}
		}
		// Every conjunct must be a compiled key, or the closure has
		// nothing to say about the combination.
		for _, c := range parts {
			if _, ok := closure[c.name]; !ok {
				return Unknown, false
			}
		}
		for _, c := range parts {
			if c.negated {
				if keyCompiled && keyEnt.Implies[c.name] {
					return False, true
				}
				continue
			}
			ent := closure[c.name]
			if ent.Implies[key.Name()] {
				return True, true
			}
			if ent.Excludes[key.Name()] {
				return False, true
			}
		}
	}
	return Unknown, false
}

func bareName(p logic.Prop) (string, bool) {
	leaf, ok := p.(logic.Leaf)
	if !ok {
		return "", false
	}
	pred, ok := leaf.Atom.(*Predicate)
	if !ok {
		return "", false
	}
	return pred.Name(), true
}

// fullInference runs the two-sided SAT check: the extracted facts plus
// the axioms either refute the key, entail it, or leave it open. A
// solver timeout degrades to Unknown.
func (r *Resolver) fullInference(key *Predicate, facts logic.Prop) (Ternary, error) {
	premises := logic.And(r.kb.CNF, facts)
	goal := logic.AtomOf(key)
	if r.solveTimeout <= 0 {
		return logic.Infer(premises, goal), nil
	}
	res, err := logic.InferWithin(premises, goal, r.solveTimeout)
	if errors.Is(err, logic.ErrSolveTimeout) {
		return Unknown, nil
	}
	return res, err
}

// resolveCompound decomposes non-atomic propositions by truth tables
// over recursively resolved parts.
func (r *Resolver) resolveCompound(prop logic.Prop, combined logic.Prop) (Ternary, error) {
	switch t := prop.(type) {
	case logic.Truth:
		if bool(t) {
			return True, nil
		}
		return False, nil
	case logic.Neg:
		res, err := r.resolve(t.Operand, combined)
		return res.Not(), err
	case logic.Conj:
		all := True
		for _, op := range t.Operands {
			res, err := r.resolve(op, combined)
			if err != nil {
				return Unknown, err
			}
			if res == False {
				return False, nil
			}
			if res == Unknown {
				all = Unknown
			}
		}
		return all, nil
	case logic.Disj:
		all := False
		for _, op := range t.Operands {
			res, err := r.resolve(op, combined)
			if err != nil {
				return Unknown, err
			}
			if res == True {
				return True, nil
			}
			if res == Unknown {
				all = Unknown
			}
		}
		return all, nil
	case logic.Cond:
		return r.resolve(logic.Or(logic.Not(t.Premise), t.Conclusion), combined)
	case logic.Iff:
		return r.resolve(logic.And(
			logic.Or(logic.Not(t.L), t.R),
			logic.Or(logic.Not(t.R), t.L),
		), combined)
	}
	return Unknown, nil
}
