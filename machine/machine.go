// Package machine holds the automaton, grammar, and pushdown models: their
// construction from hand-entered records, eager validation, and the
// deterministic simulator. Every model is an immutable value once its
// constructor returns; algorithms consume models read-only and build fresh
// outputs.
package machine

import (
	"fmt"

	"go.uber.org/multierr"
)

// Key addresses one finite-automaton transition: what happens in state From
// on reading symbol On.
type Key struct {
	From State
	On   Symbol
}

// DFA is a deterministic finite automaton. The transition function may be
// partial; the simulator treats a missing entry as an immediate rejection.
// Fields are read-only after construction.
type DFA struct {
	States      []State
	Alphabet    []Symbol
	Transitions map[Key]State
	Start       State
	Accepting   []State

	accepting map[State]struct{}
}

// NewDFA validates declarations and references and returns the model, or an
// aggregate of every problem found.
func NewDFA(states []State, alphabet []Symbol, transitions map[Key]State, start State, accepting []State) (*DFA, error) {
	v, err := newDeclarations(states, alphabet)
	for key, to := range transitions {
		entry := fmt.Sprintf("%s,%s,%s", key.From, key.On, to)
		if key.On.IsEpsilon() {
			err = multierr.Append(err, &ModelError{
				Message: "epsilon transitions are not allowed in a DFA",
				Field:   "transitions",
				Entry:   entry,
			})
			continue
		}
		err = multierr.Append(err, v.checkKey(key, entry))
		err = multierr.Append(err, v.checkState(to, entry))
	}
	err = multierr.Append(err, v.checkEndpoints(start, accepting))
	if err != nil {
		return nil, err
	}
	return &DFA{
		States:      states,
		Alphabet:    alphabet,
		Transitions: transitions,
		Start:       start,
		Accepting:   accepting,
		accepting:   stateIndex(accepting),
	}, nil
}

// Step looks up the transition for (from, on). The second result is false
// when the transition function is undefined there.
func (d *DFA) Step(from State, on Symbol) (State, bool) {
	to, ok := d.Transitions[Key{From: from, On: on}]
	return to, ok
}

// IsAccepting reports whether s is an accepting state.
func (d *DFA) IsAccepting(s State) bool {
	_, ok := d.accepting[s]
	return ok
}

// NFA is a nondeterministic finite automaton without epsilon transitions.
// A key may map to any number of destinations, including zero. Fields are
// read-only after construction.
type NFA struct {
	States      []State
	Alphabet    []Symbol
	Transitions map[Key][]State
	Start       State
	Accepting   []State

	accepting map[State]struct{}
}

// NewNFA validates declarations and references and returns the model, or an
// aggregate of every problem found.
func NewNFA(states []State, alphabet []Symbol, transitions map[Key][]State, start State, accepting []State) (*NFA, error) {
	v, err := newDeclarations(states, alphabet)
	for key, targets := range transitions {
		entry := relationEntry(key, targets)
		if key.On.IsEpsilon() {
			err = multierr.Append(err, &ModelError{
				Message: "epsilon transitions are not allowed in an NFA; use an ε-NFA",
				Field:   "transitions",
				Entry:   entry,
			})
			continue
		}
		err = multierr.Append(err, v.checkKey(key, entry))
		for _, to := range targets {
			err = multierr.Append(err, v.checkState(to, entry))
		}
	}
	err = multierr.Append(err, v.checkEndpoints(start, accepting))
	if err != nil {
		return nil, err
	}
	return &NFA{
		States:      states,
		Alphabet:    alphabet,
		Transitions: transitions,
		Start:       start,
		Accepting:   accepting,
		accepting:   stateIndex(accepting),
	}, nil
}

// Image returns the destinations reachable from (from, on). The result may
// be empty and must not be mutated.
func (n *NFA) Image(from State, on Symbol) []State {
	return n.Transitions[Key{From: from, On: on}]
}

// IsAccepting reports whether s is an accepting state.
func (n *NFA) IsAccepting(s State) bool {
	_, ok := n.accepting[s]
	return ok
}

// ENFA is a nondeterministic finite automaton with epsilon transitions.
// Epsilon is implicit: it is never declared in Alphabet but may appear as a
// transition key symbol. Fields are read-only after construction.
type ENFA struct {
	States      []State
	Alphabet    []Symbol
	Transitions map[Key][]State
	Start       State
	Accepting   []State

	accepting map[State]struct{}
}

// NewENFA validates declarations and references and returns the model, or an
// aggregate of every problem found.
func NewENFA(states []State, alphabet []Symbol, transitions map[Key][]State, start State, accepting []State) (*ENFA, error) {
	v, err := newDeclarations(states, alphabet)
	for key, targets := range transitions {
		entry := relationEntry(key, targets)
		if key.On.IsEpsilon() {
			err = multierr.Append(err, v.checkState(key.From, entry))
		} else {
			err = multierr.Append(err, v.checkKey(key, entry))
		}
		for _, to := range targets {
			err = multierr.Append(err, v.checkState(to, entry))
		}
	}
	err = multierr.Append(err, v.checkEndpoints(start, accepting))
	if err != nil {
		return nil, err
	}
	return &ENFA{
		States:      states,
		Alphabet:    alphabet,
		Transitions: transitions,
		Start:       start,
		Accepting:   accepting,
		accepting:   stateIndex(accepting),
	}, nil
}

// Image returns the destinations reachable from (from, on); on may be
// Epsilon. The result may be empty and must not be mutated.
func (e *ENFA) Image(from State, on Symbol) []State {
	return e.Transitions[Key{From: from, On: on}]
}

// IsAccepting reports whether s is an accepting state.
func (e *ENFA) IsAccepting(s State) bool {
	_, ok := e.accepting[s]
	return ok
}

// --- shared declaration checking ---

// declarations tracks the declared state and symbol sets of one machine
// while its constructor checks references against them.
type declarations struct {
	states  map[State]struct{}
	symbols map[Symbol]struct{}
}

func newDeclarations(states []State, alphabet []Symbol) (*declarations, error) {
	var err error
	v := &declarations{
		states:  make(map[State]struct{}, len(states)),
		symbols: make(map[Symbol]struct{}, len(alphabet)),
	}
	for _, s := range states {
		if _, dup := v.states[s]; dup {
			err = multierr.Append(err, &ModelError{
				Message: fmt.Sprintf("duplicate state %q", s),
				Field:   "states",
			})
		}
		v.states[s] = struct{}{}
	}
	for _, a := range alphabet {
		if a.IsEpsilon() {
			err = multierr.Append(err, &ModelError{
				Message: "the epsilon sentinel must not be declared as an alphabet symbol",
				Field:   "alphabet",
			})
			continue
		}
		if _, dup := v.symbols[a]; dup {
			err = multierr.Append(err, &ModelError{
				Message: fmt.Sprintf("duplicate symbol %q", a),
				Field:   "alphabet",
			})
		}
		v.symbols[a] = struct{}{}
	}
	return v, err
}

func (v *declarations) checkState(s State, entry string) error {
	if _, ok := v.states[s]; !ok {
		return undeclared("transitions", "state", string(s), entry)
	}
	return nil
}

func (v *declarations) checkKey(key Key, entry string) error {
	var err error
	err = multierr.Append(err, v.checkState(key.From, entry))
	if _, ok := v.symbols[key.On]; !ok {
		err = multierr.Append(err, undeclared("transitions", "symbol", string(key.On), entry))
	}
	return err
}

func (v *declarations) checkEndpoints(start State, accepting []State) error {
	var err error
	if _, ok := v.states[start]; !ok {
		err = multierr.Append(err, undeclared("start", "state", string(start), ""))
	}
	for _, a := range accepting {
		if _, ok := v.states[a]; !ok {
			err = multierr.Append(err, undeclared("accepting", "state", string(a), ""))
		}
	}
	return err
}

func stateIndex(states []State) map[State]struct{} {
	idx := make(map[State]struct{}, len(states))
	for _, s := range states {
		idx[s] = struct{}{}
	}
	return idx
}

func relationEntry(key Key, targets []State) string {
	entry := fmt.Sprintf("%s,%s", key.From, key.On)
	for _, to := range targets {
		entry += "," + string(to)
	}
	return entry
}
