package assume

import (
	"sync"

	"presage/internal/logic"
)

// AssumptionSet is a mutable collection of background assumptions,
// conjoined into every query that consults it. Safe for concurrent
// use. Membership is by printed form, so structurally equal formulas
// collide as intended.
type AssumptionSet struct {
	mu    sync.RWMutex
	props []logic.Prop
}

// Global is the process-wide assumption context, consulted by every
// resolver that is not given its own.
var Global = NewAssumptionSet()

// NewAssumptionSet returns a set holding the given assumptions.
func NewAssumptionSet(ps ...logic.Prop) *AssumptionSet {
	s := &AssumptionSet{}
	s.Add(ps...)
	return s
}

// Add appends assumptions, skipping ones already present.
func (s *AssumptionSet) Add(ps ...logic.Prop) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range ps {
		if s.index(p) < 0 {
			s.props = append(s.props, p)
		}
	}
}

// Remove deletes p and reports whether it was present.
func (s *AssumptionSet) Remove(p logic.Prop) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(p)
	if i < 0 {
		return false
	}
	s.props = append(s.props[:i], s.props[i+1:]...)
	return true
}

// Clear empties the set.
func (s *AssumptionSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.props = nil
}

// Snapshot returns a copy of the current assumptions in insertion
// order.
func (s *AssumptionSet) Snapshot() []logic.Prop {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]logic.Prop, len(s.props))
	copy(out, s.props)
	return out
}

// Len reports how many assumptions are held.
func (s *AssumptionSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.props)
}

func (s *AssumptionSet) index(p logic.Prop) int {
	want := p.String()
	for i, held := range s.props {
		if held.String() == want {
			return i
		}
	}
	return -1
}
