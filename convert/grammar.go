package convert

import (
	"fmt"

	"github.com/Hardvan/ToC-EL/machine"
)

// GrammarToDFA re-encodes a deterministic right-linear grammar as a DFA.
// Each variable reachable from the start variable becomes a state; a
// production `V → tV'` becomes the transition (V,t)→V'; a terminal-only
// production `V → t` transitions into one synthesized accepting sink; an
// ε-production marks V itself accepting. The transition function stays
// partial — a missing entry rejects during simulation.
//
// Returns a NonDeterministicGrammarError when any variable carries two
// productions starting with the same terminal: the conversion requires an
// already-deterministic grammar.
func GrammarToDFA(g *machine.RegularGrammar) (*machine.DFA, error) {
	sink := acceptSink(g)

	var (
		states      []machine.State
		accepting   []machine.State
		acceptSeen  = make(map[machine.State]struct{})
		transitions = make(map[machine.Key]machine.State)
		seen        = map[machine.Variable]struct{}{g.Start: {}}
		worklist    = []machine.Variable{g.Start}
		sinkUsed    = false
	)
	for len(worklist) > 0 {
		v := worklist[0]
		worklist = worklist[1:]
		states = append(states, machine.State(v))

		taken := make(map[machine.Symbol]struct{})
		for _, body := range g.BodiesOf(v) {
			if body.IsEpsilon() {
				if _, dup := acceptSeen[machine.State(v)]; !dup {
					acceptSeen[machine.State(v)] = struct{}{}
					accepting = append(accepting, machine.State(v))
				}
				continue
			}
			if _, dup := taken[body.Terminal]; dup {
				return nil, &machine.NonDeterministicGrammarError{Variable: v, Terminal: body.Terminal}
			}
			taken[body.Terminal] = struct{}{}

			key := machine.Key{From: machine.State(v), On: body.Terminal}
			if body.Next == "" {
				transitions[key] = sink
				sinkUsed = true
				continue
			}
			transitions[key] = machine.State(body.Next)
			if _, ok := seen[body.Next]; !ok {
				seen[body.Next] = struct{}{}
				worklist = append(worklist, body.Next)
			}
		}
	}
	if sinkUsed {
		states = append(states, sink)
		accepting = append(accepting, sink)
	}

	return machine.NewDFA(states, g.Terminals, transitions, machine.State(g.Start), accepting)
}

// DFAToGrammar re-encodes a DFA as a right-linear grammar: each state
// becomes a variable, every transition (S,a)→S' becomes `S → aS'`, and
// every accepting state additionally gets `S → ε`. The start variable is
// the DFA start state. Converting the result back with GrammarToDFA yields
// a language-equivalent DFA.
func DFAToGrammar(d *machine.DFA) *machine.RegularGrammar {
	variables := make([]machine.Variable, len(d.States))
	for i, s := range d.States {
		variables[i] = machine.Variable(s)
	}

	productions := make(map[machine.Variable][]machine.ProductionBody, len(d.States))
	for _, s := range d.States {
		for _, sym := range d.Alphabet {
			to, ok := d.Step(s, sym)
			if !ok {
				continue
			}
			productions[machine.Variable(s)] = append(productions[machine.Variable(s)],
				machine.ProductionBody{Terminal: sym, Next: machine.Variable(to)})
		}
		if d.IsAccepting(s) {
			productions[machine.Variable(s)] = append(productions[machine.Variable(s)],
				machine.ProductionBody{Terminal: machine.Epsilon})
		}
	}

	g, err := machine.NewRegularGrammar(variables, d.Alphabet, productions, machine.Variable(d.Start))
	if err != nil {
		panic(fmt.Sprintf("convert: DFA re-encoding produced an invalid grammar: %v", err))
	}
	return g
}

// acceptSink picks a state label for the synthesized accepting sink that
// cannot collide with any declared variable.
func acceptSink(g *machine.RegularGrammar) machine.State {
	label := "qf"
	for {
		collides := false
		for _, v := range g.Variables {
			if string(v) == label {
				collides = true
				break
			}
		}
		if !collides {
			return machine.State(label)
		}
		label += "'"
	}
}
