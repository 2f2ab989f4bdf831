// Package convert implements the classical conversions over the machine
// models: epsilon closures, subset construction from nondeterministic
// automata into deterministic ones, and the bidirectional re-encoding
// between right-linear regular grammars and DFAs. Every conversion is a pure
// function of its input and owns its own in-progress build state.
package convert

import "github.com/Hardvan/ToC-EL/machine"

// EpsilonClosures computes, for every state of e, the set of states
// reachable through zero or more ε-transitions. Every closure contains its
// own state. Only set membership is meaningful to callers; iterate through
// StateSet.Sorted for stable output.
func EpsilonClosures(e *machine.ENFA) map[machine.State]*machine.StateSet {
	closures := make(map[machine.State]*machine.StateSet, len(e.States))
	for _, s := range e.States {
		closures[s] = closureOf(e, s)
	}
	return closures
}

// closureOf walks the ε-relation from start with an explicit stack. Each
// state enters the stack at most once, so ε-cycles terminate.
func closureOf(e *machine.ENFA, start machine.State) *machine.StateSet {
	closure := machine.NewStateSet(start)
	stack := []machine.State{start}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range e.Image(top, machine.Epsilon) {
			if closure.Contains(next) {
				continue
			}
			closure.Add(next)
			stack = append(stack, next)
		}
	}
	return closure
}
