package machine

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Input is the raw record for a finite automaton, exactly as entered:
// comma-separated lists, a semicolon-separated transition list, and single
// identifiers for the start state. Fields are trimmed of whitespace during
// parsing.
type Input struct {
	States      string // "q0, q1, q2"
	Alphabet    string // "a, b"
	Transitions string // DFA: "q0,a,q1; q1,b,q2" — NFA/ε-NFA: "q0,a,q1,q2; q1,b"
	Start       string // "q0"
	Accepting   string // "q2"
}

// GrammarInput is the raw record for a right-linear regular grammar.
type GrammarInput struct {
	Variables   string // "S, A"
	Terminals   string // "a, b"
	Productions string // "S,aS,bA; A,b,λ"
	Start       string // "S"
}

// PDAInput is the raw record for a pushdown automaton.
type PDAInput struct {
	States        string // "q0, q1"
	InputAlphabet string // "a, b"
	StackAlphabet string // "Z, A"
	Transitions   string // "q0,a,Z,q0,AZ; q0,λ,Z,q1,λ"
	Start         string // "q0"
	InitialStack  string // "Z"
	Accepting     string // "q1"
}

// ParseDFA builds a DFA from an input record. Each transition entry must be
// exactly `from,symbol,to`; a repeated (from, symbol) pair is rejected
// because it would make the machine nondeterministic.
func ParseDFA(in Input) (*DFA, error) {
	var err error
	transitions := make(map[Key]State)
	for _, entry := range splitEntries(in.Transitions) {
		tokens := splitList(entry)
		if len(tokens) != 3 {
			err = multierr.Append(err, malformed("transitions", entry, 3, len(tokens)))
			continue
		}
		key := Key{From: State(tokens[0]), On: Symbol(tokens[1])}
		if _, dup := transitions[key]; dup {
			err = multierr.Append(err, &ModelError{
				Message: fmt.Sprintf("duplicate transition for (%s, %s)", key.From, key.On),
				Field:   "transitions",
				Entry:   entry,
			})
			continue
		}
		transitions[key] = State(tokens[2])
	}
	if err != nil {
		return nil, err
	}
	return NewDFA(states(in.States), symbols(in.Alphabet), transitions, State(strings.TrimSpace(in.Start)), states(in.Accepting))
}

// ParseNFA builds an NFA from an input record. Each transition entry is
// `from,symbol,to1,to2,...` with zero or more destinations; entries sharing
// a (from, symbol) pair merge their destinations.
func ParseNFA(in Input) (*NFA, error) {
	transitions, err := parseRelation(in.Transitions)
	if err != nil {
		return nil, err
	}
	return NewNFA(states(in.States), symbols(in.Alphabet), transitions, State(strings.TrimSpace(in.Start)), states(in.Accepting))
}

// ParseENFA builds an ε-NFA from an input record. The entry format matches
// ParseNFA; the symbol position may hold the λ sentinel.
func ParseENFA(in Input) (*ENFA, error) {
	transitions, err := parseRelation(in.Transitions)
	if err != nil {
		return nil, err
	}
	return NewENFA(states(in.States), symbols(in.Alphabet), transitions, State(strings.TrimSpace(in.Start)), states(in.Accepting))
}

// ParseGrammar builds a regular grammar from an input record. Each
// production entry is `variable,body1,body2,...`; a body is the λ sentinel,
// a declared terminal, or a declared terminal immediately followed by a
// declared variable.
func ParseGrammar(in GrammarInput) (*RegularGrammar, error) {
	variables := make([]Variable, 0)
	for _, v := range splitList(in.Variables) {
		variables = append(variables, Variable(v))
	}
	terminals := symbols(in.Terminals)

	var err error
	productions := make(map[Variable][]ProductionBody)
	for _, entry := range splitEntries(in.Productions) {
		tokens := splitList(entry)
		if len(tokens) < 2 {
			err = multierr.Append(err, atLeast("productions", entry, 2, len(tokens)))
			continue
		}
		v := Variable(tokens[0])
		for _, raw := range tokens[1:] {
			body, bodyErr := parseBody(raw, entry, terminals, variables)
			if bodyErr != nil {
				err = multierr.Append(err, bodyErr)
				continue
			}
			productions[v] = append(productions[v], body)
		}
	}
	if err != nil {
		return nil, err
	}
	return NewRegularGrammar(variables, terminals, productions, Variable(strings.TrimSpace(in.Start)))
}

// ParsePDA builds a pushdown automaton from an input record. Each transition
// entry is exactly `from,input,stack-top,to,stack-push`; input and
// stack-push may be the λ sentinel, and stack-push is otherwise a sequence
// of declared stack symbols, leftmost on top.
func ParsePDA(in PDAInput) (*PDA, error) {
	stack := make([]StackSymbol, 0)
	for _, s := range splitList(in.StackAlphabet) {
		stack = append(stack, StackSymbol(s))
	}

	var err error
	transitions := make(map[PDAKey][]PDAMove)
	for _, entry := range splitEntries(in.Transitions) {
		tokens := splitList(entry)
		if len(tokens) != 5 {
			err = multierr.Append(err, malformed("transitions", entry, 5, len(tokens)))
			continue
		}
		push, pushErr := parsePush(tokens[4], entry, stack)
		if pushErr != nil {
			err = multierr.Append(err, pushErr)
			continue
		}
		key := PDAKey{From: State(tokens[0]), On: Symbol(tokens[1]), Top: StackSymbol(tokens[2])}
		transitions[key] = append(transitions[key], PDAMove{To: State(tokens[3]), Push: push})
	}
	if err != nil {
		return nil, err
	}
	return NewPDA(states(in.States), symbols(in.InputAlphabet), stack, transitions,
		State(strings.TrimSpace(in.Start)), StackSymbol(strings.TrimSpace(in.InitialStack)), states(in.Accepting))
}

// --- record helpers ---

// splitList splits a comma list, trims each item, and drops empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// splitEntries splits a semicolon list, trims each entry, and drops empty
// entries.
func splitEntries(s string) []string {
	var out []string
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			out = append(out, entry)
		}
	}
	return out
}

func states(s string) []State {
	items := splitList(s)
	out := make([]State, len(items))
	for i, item := range items {
		out[i] = State(item)
	}
	return out
}

func symbols(s string) []Symbol {
	items := splitList(s)
	out := make([]Symbol, len(items))
	for i, item := range items {
		out[i] = Symbol(item)
	}
	return out
}

// parseRelation parses NFA/ε-NFA transition entries. An entry with only
// `from,symbol` declares an empty image for that pair.
func parseRelation(raw string) (map[Key][]State, error) {
	var err error
	transitions := make(map[Key][]State)
	for _, entry := range splitEntries(raw) {
		tokens := splitList(entry)
		if len(tokens) < 2 {
			err = multierr.Append(err, atLeast("transitions", entry, 2, len(tokens)))
			continue
		}
		key := Key{From: State(tokens[0]), On: Symbol(tokens[1])}
		if _, ok := transitions[key]; !ok {
			transitions[key] = []State{}
		}
		for _, to := range tokens[2:] {
			transitions[key] = append(transitions[key], State(to))
		}
	}
	if err != nil {
		return nil, err
	}
	return transitions, nil
}

// parseBody decomposes a production body token. The terminal is matched as
// the longest declared terminal prefix whose remainder is empty or a
// declared variable, so multi-character terminals and variables work.
func parseBody(raw, entry string, terminals []Symbol, variables []Variable) (ProductionBody, error) {
	if Symbol(raw).IsEpsilon() {
		return ProductionBody{Terminal: Epsilon}, nil
	}
	var best ProductionBody
	bestLen := -1
	for _, t := range terminals {
		rest, ok := strings.CutPrefix(raw, string(t))
		if !ok || len(t) <= bestLen {
			continue
		}
		if rest == "" {
			best = ProductionBody{Terminal: t}
			bestLen = len(t)
			continue
		}
		for _, v := range variables {
			if rest == string(v) {
				best = ProductionBody{Terminal: t, Next: v}
				bestLen = len(t)
				break
			}
		}
	}
	if bestLen < 0 {
		return ProductionBody{}, undeclared("productions", "terminal", raw, entry)
	}
	return best, nil
}

// parsePush decomposes a stack-push token into declared stack symbols,
// longest declared prefix first. The λ sentinel pushes nothing.
func parsePush(raw, entry string, stack []StackSymbol) ([]StackSymbol, error) {
	if Symbol(raw).IsEpsilon() {
		return nil, nil
	}
	var out []StackSymbol
	rest := raw
	for rest != "" {
		matched := ""
		for _, s := range stack {
			if strings.HasPrefix(rest, string(s)) && len(s) > len(matched) {
				matched = string(s)
			}
		}
		if matched == "" {
			return nil, undeclared("transitions", "stack symbol", rest, entry)
		}
		out = append(out, StackSymbol(matched))
		rest = rest[len(matched):]
	}
	return out, nil
}

func atLeast(field, entry string, want, got int) error {
	return &MalformedInputError{
		ModelError: ModelError{
			Message: fmt.Sprintf("expected at least %d comma-separated tokens, got %d", want, got),
			Field:   field,
			Entry:   entry,
		},
		Want: want,
		Got:  got,
	}
}
