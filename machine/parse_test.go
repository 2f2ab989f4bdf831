package machine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

// --- helpers ---

func mustDFA(t *testing.T, in Input) *DFA {
	t.Helper()
	d, err := ParseDFA(in)
	require.NoError(t, err)
	return d
}

func mustNFA(t *testing.T, in Input) *NFA {
	t.Helper()
	n, err := ParseNFA(in)
	require.NoError(t, err)
	return n
}

func mustENFA(t *testing.T, in Input) *ENFA {
	t.Helper()
	e, err := ParseENFA(in)
	require.NoError(t, err)
	return e
}

// validDFA is the worked example from the source forms.
var validDFA = Input{
	States:      "q0, q1, q2",
	Alphabet:    "0, 1",
	Transitions: "q0,0,q0; q0,1,q1; q1,0,q2; q1,1,q0; q2,0,q1; q2,1,q2",
	Start:       "q0",
	Accepting:   "q2",
}

// --- DFA parsing ---

func TestParseDFATrimsFields(t *testing.T) {
	d := mustDFA(t, Input{
		States:      "  q0 ,q1 ",
		Alphabet:    " a , b",
		Transitions: " q0 , a , q1 ;  q1,b,q0 ",
		Start:       " q0 ",
		Accepting:   " q1 ",
	})
	assert.Equal(t, []State{"q0", "q1"}, d.States)
	assert.Equal(t, []Symbol{"a", "b"}, d.Alphabet)
	assert.Equal(t, State("q0"), d.Start)
	to, ok := d.Step("q0", "a")
	require.True(t, ok)
	assert.Equal(t, State("q1"), to)
	assert.True(t, d.IsAccepting("q1"))
	assert.False(t, d.IsAccepting("q0"))
}

func TestParseDFAMalformedEntry(t *testing.T) {
	in := validDFA
	in.Transitions = "q0,0; q1,0,q2"
	_, err := ParseDFA(in)
	require.Error(t, err)
	var me *MalformedInputError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 3, me.Want)
	assert.Equal(t, 2, me.Got)
	assert.Equal(t, "transitions", me.Field)
	assert.Equal(t, "q0,0", me.Entry)
}

func TestParseDFADuplicateTransitionRejected(t *testing.T) {
	in := validDFA
	in.Transitions = "q0,0,q0; q0,0,q1"
	_, err := ParseDFA(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate transition")
}

func TestParseDFAPartialFunctionAllowed(t *testing.T) {
	d := mustDFA(t, Input{
		States:      "q0, q1",
		Alphabet:    "a, b",
		Transitions: "q0,a,q1",
		Start:       "q0",
		Accepting:   "q1",
	})
	_, ok := d.Step("q1", "a")
	assert.False(t, ok)
}

func TestEpsilonNotAllowedInAlphabet(t *testing.T) {
	in := validDFA
	in.Alphabet = "0, 1, λ"
	_, err := ParseDFA(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "epsilon sentinel")
}

func TestEpsilonTransitionRejectedOutsideENFA(t *testing.T) {
	dfaIn := validDFA
	dfaIn.Transitions = "q0,λ,q1"
	_, err := ParseDFA(dfaIn)
	require.Error(t, err)

	nfaIn := validDFA
	nfaIn.Transitions = "q0,λ,q1,q2"
	_, err = ParseNFA(nfaIn)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ε-NFA")
}

// --- undeclared references, one per constructor ---

func TestUndeclaredStateRejectedEverywhere(t *testing.T) {
	t.Run("dfa", func(t *testing.T) {
		in := validDFA
		in.Transitions = "q0,0,q9"
		_, err := ParseDFA(in)
		requireUndeclared(t, err, "state", "q9")
	})
	t.Run("nfa", func(t *testing.T) {
		in := validDFA
		in.Transitions = "q0,0,q0,q9"
		_, err := ParseNFA(in)
		requireUndeclared(t, err, "state", "q9")
	})
	t.Run("enfa", func(t *testing.T) {
		in := validDFA
		in.Transitions = "q0,λ,q9"
		_, err := ParseENFA(in)
		requireUndeclared(t, err, "state", "q9")
	})
	t.Run("grammar", func(t *testing.T) {
		_, err := ParseGrammar(GrammarInput{
			Variables:   "S",
			Terminals:   "a",
			Productions: "S,aT",
			Start:       "S",
		})
		// aT does not decompose into a declared terminal plus declared
		// variable, so the body itself is the undeclared reference.
		requireUndeclared(t, err, "terminal", "aT")
	})
	t.Run("pda", func(t *testing.T) {
		_, err := ParsePDA(PDAInput{
			States:        "q0",
			InputAlphabet: "a",
			StackAlphabet: "Z",
			Transitions:   "q0,a,Z,q9,Z",
			Start:         "q0",
			InitialStack:  "Z",
			Accepting:     "q0",
		})
		requireUndeclared(t, err, "state", "q9")
	})
}

func requireUndeclared(t *testing.T, err error, kind, ref string) {
	t.Helper()
	require.Error(t, err)
	var ue *UndeclaredReferenceError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, kind, ue.Kind)
	assert.Equal(t, ref, ue.Ref)
}

func TestUndeclaredStartAndAccepting(t *testing.T) {
	in := validDFA
	in.Start = "qx"
	in.Accepting = "q2, qy"
	_, err := ParseDFA(in)
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
}

func TestValidationAggregatesAllFindings(t *testing.T) {
	in := validDFA
	in.Transitions = "q0,0,q8; q0,9,q1; q1,1,q9"
	_, err := ParseDFA(in)
	require.Error(t, err)
	assert.GreaterOrEqual(t, len(multierr.Errors(err)), 3)
}

// --- NFA / ε-NFA relations ---

func TestParseNFAEmptyImage(t *testing.T) {
	n := mustNFA(t, Input{
		States:      "q0, q1",
		Alphabet:    "a",
		Transitions: "q0,a",
		Start:       "q0",
		Accepting:   "q1",
	})
	assert.Empty(t, n.Image("q0", "a"))
	assert.Nil(t, n.Image("q1", "a"))
}

func TestParseNFAMergesRepeatedKeys(t *testing.T) {
	n := mustNFA(t, Input{
		States:      "q0, q1, q2",
		Alphabet:    "a",
		Transitions: "q0,a,q1; q0,a,q2",
		Start:       "q0",
		Accepting:   "q2",
	})
	assert.Equal(t, []State{"q1", "q2"}, n.Image("q0", "a"))
}

func TestParseENFAEpsilonTransitions(t *testing.T) {
	e := mustENFA(t, Input{
		States:      "q0, q1, q2, q3",
		Alphabet:    "a, b",
		Transitions: "q0,λ,q1,q3; q1,a,q2; q2,b,q0; q3,b,q2",
		Start:       "q0",
		Accepting:   "q2",
	})
	assert.Equal(t, []State{"q1", "q3"}, e.Image("q0", Epsilon))
	assert.Equal(t, []State{"q2"}, e.Image("q1", "a"))
}

// --- grammar parsing ---

func TestParseGrammarBodies(t *testing.T) {
	g, err := ParseGrammar(GrammarInput{
		Variables:   "S, A",
		Terminals:   "a, b",
		Productions: "S,aS,bA; A,b,λ",
		Start:       "S",
	})
	require.NoError(t, err)
	assert.Equal(t, []ProductionBody{
		{Terminal: "a", Next: "S"},
		{Terminal: "b", Next: "A"},
	}, g.BodiesOf("S"))
	assert.Equal(t, []ProductionBody{
		{Terminal: "b"},
		{Terminal: Epsilon},
	}, g.BodiesOf("A"))
}

func TestParseGrammarMultiCharacterNames(t *testing.T) {
	g, err := ParseGrammar(GrammarInput{
		Variables:   "Expr",
		Terminals:   "ab",
		Productions: "Expr,abExpr,ab",
		Start:       "Expr",
	})
	require.NoError(t, err)
	assert.Equal(t, []ProductionBody{
		{Terminal: "ab", Next: "Expr"},
		{Terminal: "ab"},
	}, g.BodiesOf("Expr"))
}

func TestParseGrammarUndeclaredStart(t *testing.T) {
	_, err := ParseGrammar(GrammarInput{
		Variables:   "S",
		Terminals:   "a",
		Productions: "S,a",
		Start:       "T",
	})
	requireUndeclared(t, err, "variable", "T")
}

func TestGrammarStringUsesDisplayGlyph(t *testing.T) {
	g, err := ParseGrammar(GrammarInput{
		Variables:   "S",
		Terminals:   "a",
		Productions: "S,aS,λ",
		Start:       "S",
	})
	require.NoError(t, err)
	assert.Equal(t, "S → aS | ε\n", g.String())
}

// --- PDA parsing ---

func TestParsePDA(t *testing.T) {
	p, err := ParsePDA(PDAInput{
		States:        "q0, q1",
		InputAlphabet: "a, b",
		StackAlphabet: "Z, A",
		Transitions:   "q0,a,Z,q0,AZ; q0,b,A,q0,λ; q0,λ,Z,q1,Z",
		Start:         "q0",
		InitialStack:  "Z",
		Accepting:     "q1",
	})
	require.NoError(t, err)

	moves := p.Moves(PDAKey{From: "q0", On: "a", Top: "Z"})
	require.Len(t, moves, 1)
	assert.Equal(t, State("q0"), moves[0].To)
	assert.Equal(t, []StackSymbol{"A", "Z"}, moves[0].Push)

	pops := p.Moves(PDAKey{From: "q0", On: "b", Top: "A"})
	require.Len(t, pops, 1)
	assert.Empty(t, pops[0].Push)

	eps := p.Moves(PDAKey{From: "q0", On: Epsilon, Top: "Z"})
	require.Len(t, eps, 1)
	assert.Equal(t, State("q1"), eps[0].To)
}

func TestParsePDAWrongTokenCount(t *testing.T) {
	_, err := ParsePDA(PDAInput{
		States:        "q0",
		InputAlphabet: "a",
		StackAlphabet: "Z",
		Transitions:   "q0,a,Z,q0",
		Start:         "q0",
		InitialStack:  "Z",
	})
	require.Error(t, err)
	var me *MalformedInputError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 5, me.Want)
	assert.Equal(t, 4, me.Got)
}

func TestParsePDAUndeclaredPushSymbol(t *testing.T) {
	_, err := ParsePDA(PDAInput{
		States:        "q0",
		InputAlphabet: "a",
		StackAlphabet: "Z",
		Transitions:   "q0,a,Z,q0,XZ",
		Start:         "q0",
		InitialStack:  "Z",
	})
	requireUndeclared(t, err, "stack symbol", "XZ")
}
