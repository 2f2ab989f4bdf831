package machine

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// ProductionBody is the right-hand side of a right-linear production:
// Epsilon, a single terminal, or a terminal followed by exactly one
// variable. This shape is what makes the grammar↔DFA correspondence exact.
type ProductionBody struct {
	Terminal Symbol   // Epsilon for an ε-production
	Next     Variable // empty when the body ends at the terminal
}

// IsEpsilon reports whether the body is an ε-production.
func (b ProductionBody) IsEpsilon() bool { return b.Terminal.IsEpsilon() }

func (b ProductionBody) String() string {
	if b.IsEpsilon() {
		return EpsilonGlyph
	}
	return string(b.Terminal) + string(b.Next)
}

// RegularGrammar is a right-linear regular grammar. Productions holds an
// ordered slice per variable, in input order; every consumer iterates that
// slice, never map order — the ordering is a contract, not an accident.
// Fields are read-only after construction.
type RegularGrammar struct {
	Variables   []Variable
	Terminals   []Symbol
	Productions map[Variable][]ProductionBody
	Start       Variable

	variables map[Variable]struct{}
	terminals map[Symbol]struct{}
}

// NewRegularGrammar validates declarations and production references and
// returns the model, or an aggregate of every problem found.
func NewRegularGrammar(variables []Variable, terminals []Symbol, productions map[Variable][]ProductionBody, start Variable) (*RegularGrammar, error) {
	var err error
	vars := make(map[Variable]struct{}, len(variables))
	for _, v := range variables {
		if _, dup := vars[v]; dup {
			err = multierr.Append(err, &ModelError{
				Message: fmt.Sprintf("duplicate variable %q", v),
				Field:   "variables",
			})
		}
		vars[v] = struct{}{}
	}
	terms := make(map[Symbol]struct{}, len(terminals))
	for _, t := range terminals {
		if t.IsEpsilon() {
			err = multierr.Append(err, &ModelError{
				Message: "the epsilon sentinel must not be declared as a terminal",
				Field:   "terminals",
			})
			continue
		}
		terms[t] = struct{}{}
	}

	for v, bodies := range productions {
		if _, ok := vars[v]; !ok {
			err = multierr.Append(err, undeclared("productions", "variable", string(v), ""))
		}
		for _, b := range bodies {
			entry := fmt.Sprintf("%s,%s", v, b)
			if b.IsEpsilon() {
				if b.Next != "" {
					err = multierr.Append(err, &ModelError{
						Message: "an ε-production cannot continue into a variable",
						Field:   "productions",
						Entry:   entry,
					})
				}
				continue
			}
			if _, ok := terms[b.Terminal]; !ok {
				err = multierr.Append(err, undeclared("productions", "terminal", string(b.Terminal), entry))
			}
			if b.Next != "" {
				if _, ok := vars[b.Next]; !ok {
					err = multierr.Append(err, undeclared("productions", "variable", string(b.Next), entry))
				}
			}
		}
	}
	if _, ok := vars[start]; !ok {
		err = multierr.Append(err, undeclared("start", "variable", string(start), ""))
	}
	if err != nil {
		return nil, err
	}
	return &RegularGrammar{
		Variables:   variables,
		Terminals:   terminals,
		Productions: productions,
		Start:       start,
		variables:   vars,
		terminals:   terms,
	}, nil
}

// BodiesOf returns the productions of v in input order. The result must not
// be mutated.
func (g *RegularGrammar) BodiesOf(v Variable) []ProductionBody {
	return g.Productions[v]
}

// String renders the grammar one variable per line, start variable first,
// in the conventional pipe-separated form.
func (g *RegularGrammar) String() string {
	var b strings.Builder
	ordered := make([]Variable, 0, len(g.Variables))
	ordered = append(ordered, g.Start)
	for _, v := range g.Variables {
		if v != g.Start {
			ordered = append(ordered, v)
		}
	}
	for _, v := range ordered {
		bodies := g.Productions[v]
		if len(bodies) == 0 {
			continue
		}
		parts := make([]string, len(bodies))
		for i, body := range bodies {
			parts[i] = body.String()
		}
		fmt.Fprintf(&b, "%s → %s\n", v, strings.Join(parts, " | "))
	}
	return b.String()
}
