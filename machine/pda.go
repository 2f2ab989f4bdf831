package machine

import (
	"fmt"

	"go.uber.org/multierr"
)

// PDAKey addresses one entry of the pushdown transition relation: state,
// input symbol (possibly Epsilon), and the stack symbol on top.
type PDAKey struct {
	From State
	On   Symbol
	Top  StackSymbol
}

// PDAMove is one nondeterministic option: enter To and replace the matched
// stack top with Push, whose first element becomes the new top. An empty
// Push pops the matched symbol.
type PDAMove struct {
	To   State
	Push []StackSymbol
}

// PDA is a pushdown automaton. It is modeled and validated structurally
// only; execution is out of scope, the model exists to be checked and
// rendered. Fields are read-only after construction.
type PDA struct {
	States        []State
	InputAlphabet []Symbol
	StackAlphabet []StackSymbol
	Transitions   map[PDAKey][]PDAMove
	Start         State
	InitialStack  StackSymbol
	Accepting     []State

	accepting map[State]struct{}
}

// NewPDA validates declarations and references and returns the model, or an
// aggregate of every problem found.
func NewPDA(states []State, input []Symbol, stack []StackSymbol, transitions map[PDAKey][]PDAMove, start State, initialStack StackSymbol, accepting []State) (*PDA, error) {
	v, err := newDeclarations(states, input)
	stackSet := make(map[StackSymbol]struct{}, len(stack))
	for _, s := range stack {
		if _, dup := stackSet[s]; dup {
			err = multierr.Append(err, &ModelError{
				Message: fmt.Sprintf("duplicate stack symbol %q", s),
				Field:   "stack alphabet",
			})
		}
		stackSet[s] = struct{}{}
	}

	for key, moves := range transitions {
		for _, m := range moves {
			entry := pdaEntry(key, m)
			err = multierr.Append(err, v.checkState(key.From, entry))
			if !key.On.IsEpsilon() {
				if _, ok := v.symbols[key.On]; !ok {
					err = multierr.Append(err, undeclared("transitions", "symbol", string(key.On), entry))
				}
			}
			if _, ok := stackSet[key.Top]; !ok {
				err = multierr.Append(err, undeclared("transitions", "stack symbol", string(key.Top), entry))
			}
			err = multierr.Append(err, v.checkState(m.To, entry))
			for _, push := range m.Push {
				if _, ok := stackSet[push]; !ok {
					err = multierr.Append(err, undeclared("transitions", "stack symbol", string(push), entry))
				}
			}
		}
	}
	if _, ok := stackSet[initialStack]; !ok {
		err = multierr.Append(err, undeclared("initial stack symbol", "stack symbol", string(initialStack), ""))
	}
	err = multierr.Append(err, v.checkEndpoints(start, accepting))
	if err != nil {
		return nil, err
	}
	return &PDA{
		States:        states,
		InputAlphabet: input,
		StackAlphabet: stack,
		Transitions:   transitions,
		Start:         start,
		InitialStack:  initialStack,
		Accepting:     accepting,
		accepting:     stateIndex(accepting),
	}, nil
}

// Moves returns the nondeterministic options for key, in input order. The
// result may be empty and must not be mutated.
func (p *PDA) Moves(key PDAKey) []PDAMove {
	return p.Transitions[key]
}

// IsAccepting reports whether s is an accepting state.
func (p *PDA) IsAccepting(s State) bool {
	_, ok := p.accepting[s]
	return ok
}

func pdaEntry(key PDAKey, m PDAMove) string {
	push := ""
	for _, s := range m.Push {
		push += string(s)
	}
	if push == "" {
		push = string(Epsilon)
	}
	return fmt.Sprintf("%s,%s,%s,%s,%s", key.From, key.On, key.Top, m.To, push)
}
