package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hardvan/ToC-EL/machine"
)

func mustENFA(t *testing.T, in machine.Input) *machine.ENFA {
	t.Helper()
	e, err := machine.ParseENFA(in)
	require.NoError(t, err)
	return e
}

func sorted(s *machine.StateSet) []machine.State {
	return s.Sorted()
}

func TestEpsilonClosuresReflexive(t *testing.T) {
	e := mustENFA(t, machine.Input{
		States:      "q0, q1",
		Alphabet:    "a",
		Transitions: "q0,a,q1",
		Start:       "q0",
		Accepting:   "q1",
	})
	closures := EpsilonClosures(e)
	assert.Equal(t, []machine.State{"q0"}, sorted(closures["q0"]))
	assert.Equal(t, []machine.State{"q1"}, sorted(closures["q1"]))
}

func TestEpsilonClosuresTransitive(t *testing.T) {
	// q0 ε→ q1 ε→ q2: the closure of q0 must include q2 even though no
	// direct ε-edge exists.
	e := mustENFA(t, machine.Input{
		States:      "q0, q1, q2",
		Alphabet:    "a",
		Transitions: "q0,λ,q1; q1,λ,q2",
		Start:       "q0",
		Accepting:   "q2",
	})
	closures := EpsilonClosures(e)
	assert.Equal(t, []machine.State{"q0", "q1", "q2"}, sorted(closures["q0"]))
	assert.Equal(t, []machine.State{"q1", "q2"}, sorted(closures["q1"]))
	assert.Equal(t, []machine.State{"q2"}, sorted(closures["q2"]))
}

func TestEpsilonClosuresCycleTerminates(t *testing.T) {
	e := mustENFA(t, machine.Input{
		States:      "q0, q1, q2",
		Alphabet:    "a",
		Transitions: "q0,λ,q1; q1,λ,q2; q2,λ,q0",
		Start:       "q0",
		Accepting:   "q2",
	})
	closures := EpsilonClosures(e)
	all := []machine.State{"q0", "q1", "q2"}
	for _, s := range e.States {
		assert.Equal(t, all, sorted(closures[s]), "closure of %s", s)
	}
}

func TestEpsilonClosuresBranching(t *testing.T) {
	e := mustENFA(t, machine.Input{
		States:      "q0, q1, q2, q3",
		Alphabet:    "a, b",
		Transitions: "q0,λ,q1,q3; q1,a,q2; q2,b,q0; q3,b,q2",
		Start:       "q0",
		Accepting:   "q2",
	})
	closures := EpsilonClosures(e)
	assert.Equal(t, []machine.State{"q0", "q1", "q3"}, sorted(closures["q0"]))
	assert.Equal(t, []machine.State{"q1"}, sorted(closures["q1"]))
}
