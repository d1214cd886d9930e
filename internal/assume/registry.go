package assume

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Registry errors. Both are wrapped with the offending name, so test
// with errors.Is.
var (
	ErrNotFound        = errors.New("assume: predicate not registered")
	ErrHandlerNotFound = errors.New("assume: handler not attached")
)

// Registry is the mutable vocabulary: it maps predicate names to their
// canonical Predicate values and per-predicate handler chains. All
// methods are safe for concurrent use. Registration is independent of
// knowledge compilation; a freshly registered predicate participates
// in queries immediately, it just has no axioms relating it to
// anything.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*registryEntry
}

type registryEntry struct {
	pred     *Predicate
	handlers []Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*registryEntry)}
}

// Register returns the predicate with the given name, creating it if
// this is the first mention. Registering an existing name returns the
// original value unchanged.
func (r *Registry) Register(name string) *Predicate {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ensure(name)
}

func (r *Registry) ensure(name string) *Predicate {
	if e, ok := r.entries[name]; ok {
		return e.pred
	}
	e := &registryEntry{pred: &Predicate{name: name}}
	r.entries[name] = e
	return e.pred
}

// Lookup returns the predicate registered under name or ErrNotFound.
func (r *Registry) Lookup(name string) (*Predicate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return e.pred, nil
}

// AddHandler appends h to the handler chain for name, registering the
// predicate first if it does not exist yet. Handlers are consulted in
// attachment order.
func (r *Registry) AddHandler(name string, h Handler) *Predicate {
	r.mu.Lock()
	defer r.mu.Unlock()
	pred := r.ensure(name)
	r.entries[name].handlers = append(r.entries[name].handlers, h)
	return pred
}

// RemoveHandler detaches the handler with the given label from name.
// It returns ErrNotFound for an unregistered predicate and
// ErrHandlerNotFound when no attached handler carries that label.
func (r *Registry) RemoveHandler(name, handlerName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	for i, h := range e.handlers {
		if h.Name == handlerName {
			e.handlers = append(e.handlers[:i], e.handlers[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %q on %q", ErrHandlerNotFound, handlerName, name)
}

// Handlers returns a snapshot of the handler chain for name, nil when
// the predicate is unknown or bare.
func (r *Registry) Handlers(name string) []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok || len(e.handlers) == 0 {
		return nil
	}
	out := make([]Handler, len(e.handlers))
	copy(out, e.handlers)
	return out
}

// Names returns the sorted registered predicate names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.entries))
	for name := range r.entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
