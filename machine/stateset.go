package machine

import (
	"strings"

	"golang.org/x/exp/slices"
)

// StateSet is a set of states with content-based identity: two sets holding
// the same members produce the same Key regardless of insertion order. The
// empty set is valid and stands for the dead composite state in subset
// construction.
type StateSet struct {
	members map[State]struct{}
}

// NewStateSet returns a set containing the given states.
func NewStateSet(states ...State) *StateSet {
	s := &StateSet{members: make(map[State]struct{}, len(states))}
	for _, st := range states {
		s.members[st] = struct{}{}
	}
	return s
}

// Add inserts a state into the set.
func (s *StateSet) Add(st State) {
	s.members[st] = struct{}{}
}

// AddAll inserts every member of other into the set.
func (s *StateSet) AddAll(other *StateSet) {
	for st := range other.members {
		s.members[st] = struct{}{}
	}
}

// Contains reports whether st is a member.
func (s *StateSet) Contains(st State) bool {
	_, ok := s.members[st]
	return ok
}

// Len returns the number of members.
func (s *StateSet) Len() int { return len(s.members) }

// Sorted returns the members in lexicographic order.
func (s *StateSet) Sorted() []State {
	out := make([]State, 0, len(s.members))
	for st := range s.members {
		out = append(out, st)
	}
	slices.Sort(out)
	return out
}

// Key returns the canonical identity of the set: its sorted members joined
// with commas. Equal sets always produce equal keys; the empty set's key is
// the empty string.
func (s *StateSet) Key() string {
	sorted := s.Sorted()
	parts := make([]string, len(sorted))
	for i, st := range sorted {
		parts[i] = string(st)
	}
	return strings.Join(parts, ",")
}

// Any reports whether any member satisfies pred.
func (s *StateSet) Any(pred func(State) bool) bool {
	for st := range s.members {
		if pred(st) {
			return true
		}
	}
	return false
}
