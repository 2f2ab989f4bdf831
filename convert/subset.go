package convert

import (
	"fmt"

	"github.com/Hardvan/ToC-EL/machine"
)

// NFAToDFA builds an equivalent DFA by powerset construction. The result's
// states are canonical labels S0, S1, ... assigned in worklist discovery
// order, its transition function is total (the empty composite state is the
// dead state and self-loops on every symbol), and a composite state is
// accepting iff it contains an accepting NFA state. Two runs over the same
// NFA produce byte-identical labels and transition tables.
func NFAToDFA(n *machine.NFA) *machine.DFA {
	b := &subsetBuilder{
		alphabet:  n.Alphabet,
		image:     n.Image,
		accepting: n.IsAccepting,
	}
	return b.build(machine.NewStateSet(n.Start))
}

// ENFAToDFA is NFAToDFA for ε-NFAs: epsilon closures are applied to the
// start set and after every symbol move instead of being baked into the
// relation.
func ENFAToDFA(e *machine.ENFA) *machine.DFA {
	closures := EpsilonClosures(e)
	b := &subsetBuilder{
		alphabet:  e.Alphabet,
		image:     e.Image,
		accepting: e.IsAccepting,
		closures:  closures,
	}
	return b.build(machine.NewStateSet(e.Start))
}

// subsetBuilder owns the in-progress powerset construction for one call.
// Composite-state identity is the canonical StateSet key, interned into a
// label on first sight and reused thereafter; distinct composite sets never
// collapse to one label.
type subsetBuilder struct {
	alphabet  []machine.Symbol
	image     func(machine.State, machine.Symbol) []machine.State
	accepting func(machine.State) bool
	closures  map[machine.State]*machine.StateSet // nil for plain NFAs

	labels map[string]machine.State
	next   int
}

func (b *subsetBuilder) build(start *machine.StateSet) *machine.DFA {
	b.labels = make(map[string]machine.State)
	start = b.close(start)
	b.label(start)

	var (
		states      []machine.State
		accepting   []machine.State
		transitions = make(map[machine.Key]machine.State)
		worklist    = []*machine.StateSet{start}
	)
	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]
		curLabel := b.labels[cur.Key()]
		states = append(states, curLabel)
		if cur.Any(b.accepting) {
			accepting = append(accepting, curLabel)
		}
		for _, sym := range b.alphabet {
			next := b.close(b.move(cur, sym))
			label, seen := b.labels[next.Key()]
			if !seen {
				label = b.label(next)
				worklist = append(worklist, next)
			}
			transitions[machine.Key{From: curLabel, On: sym}] = label
		}
	}

	d, err := machine.NewDFA(states, b.alphabet, transitions, b.labels[start.Key()], accepting)
	if err != nil {
		panic(fmt.Sprintf("convert: subset construction produced an invalid DFA: %v", err))
	}
	return d
}

// move computes the union image of the composite state under sym.
func (b *subsetBuilder) move(set *machine.StateSet, sym machine.Symbol) *machine.StateSet {
	out := machine.NewStateSet()
	for _, s := range set.Sorted() {
		for _, to := range b.image(s, sym) {
			out.Add(to)
		}
	}
	return out
}

// close replaces the set with the union of its members' epsilon closures.
// For plain NFAs it is the identity.
func (b *subsetBuilder) close(set *machine.StateSet) *machine.StateSet {
	if b.closures == nil {
		return set
	}
	out := machine.NewStateSet()
	for _, s := range set.Sorted() {
		out.AddAll(b.closures[s])
	}
	return out
}

// label interns the composite set under the next canonical label.
func (b *subsetBuilder) label(set *machine.StateSet) machine.State {
	l := machine.State(fmt.Sprintf("S%d", b.next))
	b.next++
	b.labels[set.Key()] = l
	return l
}
