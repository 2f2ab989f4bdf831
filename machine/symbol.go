package machine

// Symbol is an atomic input label.
type Symbol string

// Epsilon is the reserved sentinel for a transition that consumes no input.
// It matches the λ glyph used in hand-entered transition records and is
// distinct from every real alphabet symbol.
const Epsilon Symbol = "λ"

// EpsilonGlyph is the display form of Epsilon in emitted diagrams.
const EpsilonGlyph = "ε"

// IsEpsilon reports whether s is the epsilon sentinel.
func (s Symbol) IsEpsilon() bool { return s == Epsilon }

// Display returns the rendering form of the symbol: the ε glyph for the
// epsilon sentinel, the symbol text otherwise.
func (s Symbol) Display() string {
	if s.IsEpsilon() {
		return EpsilonGlyph
	}
	return string(s)
}

// SymbolsOf splits a raw input string into one Symbol per rune.
func SymbolsOf(s string) []Symbol {
	syms := make([]Symbol, 0, len(s))
	for _, r := range s {
		syms = append(syms, Symbol(r))
	}
	return syms
}

// State is an opaque automaton state identifier. States within one machine
// are pairwise distinct.
type State string

// Variable is a grammar nonterminal identifier.
type Variable string

// StackSymbol is a pushdown-automaton stack alphabet element.
type StackSymbol string
