package machine

import "fmt"

// ModelError is the base error type for machine construction errors. Field
// names the input field the problem was found in; Entry is the offending
// entry text when the problem is tied to one transition or production.
type ModelError struct {
	Message string
	Field   string
	Entry   string
	Cause   error
}

func (e *ModelError) Error() string {
	switch {
	case e.Field != "" && e.Entry != "":
		return fmt.Sprintf("%s: %s (in entry %q)", e.Field, e.Message, e.Entry)
	case e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ModelError) Unwrap() error { return e.Cause }

// MalformedInputError reports a token-count mismatch in a transition or
// production entry.
type MalformedInputError struct {
	ModelError
	Want int // expected token count (minimum for relation entries)
	Got  int
}

// UndeclaredReferenceError reports a state, symbol, variable, terminal, or
// stack symbol that is used but never declared.
type UndeclaredReferenceError struct {
	ModelError
	Kind string // "state", "symbol", "variable", "terminal", "stack symbol"
	Ref  string
}

// NonDeterministicGrammarError reports a grammar variable with two
// productions starting on the same terminal, which blocks grammar→DFA
// conversion.
type NonDeterministicGrammarError struct {
	Variable Variable
	Terminal Symbol
}

func (e *NonDeterministicGrammarError) Error() string {
	return fmt.Sprintf("grammar is not deterministic: variable %q has multiple productions starting with terminal %q",
		string(e.Variable), e.Terminal.Display())
}

func undeclared(field, kind, ref, entry string) error {
	return &UndeclaredReferenceError{
		ModelError: ModelError{
			Message: fmt.Sprintf("undeclared %s %q", kind, ref),
			Field:   field,
			Entry:   entry,
		},
		Kind: kind,
		Ref:  ref,
	}
}

func malformed(field, entry string, want, got int) error {
	return &MalformedInputError{
		ModelError: ModelError{
			Message: fmt.Sprintf("expected %d comma-separated tokens, got %d", want, got),
			Field:   field,
			Entry:   entry,
		},
		Want: want,
		Got:  got,
	}
}
