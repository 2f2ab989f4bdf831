// Package diagram emits machine-independent graph descriptions — node and
// edge records with highlight state — for the rendering collaborator, plus
// a Graphviz DOT serialization of the same record. Emitters walk models in
// declaration order so a given model always produces the same record.
package diagram

import (
	"github.com/Hardvan/ToC-EL/machine"
)

// Node is one rendered automaton state.
type Node struct {
	ID          string `json:"id"`
	IsAccepting bool   `json:"isAccepting"`
	IsStart     bool   `json:"isStart"`
	OnPath      bool   `json:"onPath,omitempty"`
}

// Edge is one rendered transition.
type Edge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Label  string `json:"label"`
	OnPath bool   `json:"onPath,omitempty"`
}

// RunInfo carries simulation results alongside the graph description.
type RunInfo struct {
	Input    []string `json:"input"`
	Path     []string `json:"path"`
	Accepted bool     `json:"accepted"`
}

// Diagram is the graph-description record handed to the rendering
// collaborator.
type Diagram struct {
	Name  string   `json:"name"`
	Nodes []Node   `json:"nodes"`
	Edges []Edge   `json:"edges"`
	Run   *RunInfo `json:"run,omitempty"`
}

// FromDFA describes a DFA: one node per state in declaration order, one
// edge per defined transition in state-then-alphabet order.
func FromDFA(d *machine.DFA, name string) *Diagram {
	dia := &Diagram{Name: name}
	for _, s := range d.States {
		dia.Nodes = append(dia.Nodes, Node{
			ID:          string(s),
			IsAccepting: d.IsAccepting(s),
			IsStart:     s == d.Start,
		})
	}
	for _, s := range d.States {
		for _, sym := range d.Alphabet {
			to, ok := d.Step(s, sym)
			if !ok {
				continue
			}
			dia.Edges = append(dia.Edges, Edge{From: string(s), To: string(to), Label: sym.Display()})
		}
	}
	return dia
}

// FromNFA describes an NFA: one edge per (state, symbol, destination)
// triple, destinations in entry order.
func FromNFA(n *machine.NFA, name string) *Diagram {
	dia := &Diagram{Name: name}
	for _, s := range n.States {
		dia.Nodes = append(dia.Nodes, Node{
			ID:          string(s),
			IsAccepting: n.IsAccepting(s),
			IsStart:     s == n.Start,
		})
	}
	for _, s := range n.States {
		for _, sym := range n.Alphabet {
			for _, to := range n.Image(s, sym) {
				dia.Edges = append(dia.Edges, Edge{From: string(s), To: string(to), Label: sym.Display()})
			}
		}
	}
	return dia
}

// FromENFA describes an ε-NFA. Epsilon edges come after the real-symbol
// edges of each state and carry the ε display glyph.
func FromENFA(e *machine.ENFA, name string) *Diagram {
	dia := &Diagram{Name: name}
	for _, s := range e.States {
		dia.Nodes = append(dia.Nodes, Node{
			ID:          string(s),
			IsAccepting: e.IsAccepting(s),
			IsStart:     s == e.Start,
		})
	}
	symbols := append(append([]machine.Symbol{}, e.Alphabet...), machine.Epsilon)
	for _, s := range e.States {
		for _, sym := range symbols {
			for _, to := range e.Image(s, sym) {
				dia.Edges = append(dia.Edges, Edge{From: string(s), To: string(to), Label: sym.Display()})
			}
		}
	}
	return dia
}

// FromPDA describes a pushdown automaton. Edge labels use the conventional
// `input, top/push` notation with ε for the empty push.
func FromPDA(p *machine.PDA, name string) *Diagram {
	dia := &Diagram{Name: name}
	for _, s := range p.States {
		dia.Nodes = append(dia.Nodes, Node{
			ID:          string(s),
			IsAccepting: p.IsAccepting(s),
			IsStart:     s == p.Start,
		})
	}
	symbols := append(append([]machine.Symbol{}, p.InputAlphabet...), machine.Epsilon)
	for _, s := range p.States {
		for _, sym := range symbols {
			for _, top := range p.StackAlphabet {
				key := machine.PDAKey{From: s, On: sym, Top: top}
				for _, m := range p.Moves(key) {
					dia.Edges = append(dia.Edges, Edge{
						From:  string(s),
						To:    string(m.To),
						Label: pdaLabel(sym, top, m.Push),
					})
				}
			}
		}
	}
	return dia
}

func pdaLabel(sym machine.Symbol, top machine.StackSymbol, push []machine.StackSymbol) string {
	pushed := ""
	for _, s := range push {
		pushed += string(s)
	}
	if pushed == "" {
		pushed = machine.EpsilonGlyph
	}
	return sym.Display() + ", " + string(top) + "/" + pushed
}

// FromGrammar describes a right-linear grammar as a graph: variables become
// nodes, `V → tV'` becomes an edge labeled t, and a variable with an
// ε-production is accepting. Terminal-only productions point at a
// synthesized accepting node so they stay visible.
func FromGrammar(g *machine.RegularGrammar, name string) *Diagram {
	dia := &Diagram{Name: name}

	sink := sinkLabel(g)
	sinkUsed := false
	for _, v := range g.Variables {
		accepting := false
		for _, body := range g.BodiesOf(v) {
			if body.IsEpsilon() {
				accepting = true
			}
		}
		dia.Nodes = append(dia.Nodes, Node{
			ID:          string(v),
			IsAccepting: accepting,
			IsStart:     v == g.Start,
		})
	}
	for _, v := range g.Variables {
		for _, body := range g.BodiesOf(v) {
			if body.IsEpsilon() {
				continue
			}
			to := string(body.Next)
			if body.Next == "" {
				to = sink
				sinkUsed = true
			}
			dia.Edges = append(dia.Edges, Edge{From: string(v), To: to, Label: body.Terminal.Display()})
		}
	}
	if sinkUsed {
		dia.Nodes = append(dia.Nodes, Node{ID: sink, IsAccepting: true})
	}
	return dia
}

func sinkLabel(g *machine.RegularGrammar) string {
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
			return label
		}
		label += "'"
	}
}

// FromRun describes a DFA together with one simulation over it. The visited
// path is zipped against the consumed symbols to mark each traversed node
// and edge.
func FromRun(d *machine.DFA, r *machine.Run, name string) *Diagram {
	dia := FromDFA(d, name)

	input := make([]string, len(r.Input))
	for i, sym := range r.Input {
		input[i] = sym.Display()
	}
	path := make([]string, len(r.Path))
	for i, s := range r.Path {
		path[i] = string(s)
	}
	dia.Run = &RunInfo{Input: input, Path: path, Accepted: r.Accepted}

	onNode := make(map[string]bool, len(r.Path))
	for _, s := range r.Path {
		onNode[string(s)] = true
	}
	for i := range dia.Nodes {
		if onNode[dia.Nodes[i].ID] {
			dia.Nodes[i].OnPath = true
		}
	}
	for i := 0; i < r.Consumed; i++ {
		from, to := string(r.Path[i]), string(r.Path[i+1])
		label := r.Input[i].Display()
		for j := range dia.Edges {
			e := &dia.Edges[j]
			if e.From == from && e.To == to && e.Label == label {
				e.OnPath = true
				break
			}
		}
	}
	return dia
}
