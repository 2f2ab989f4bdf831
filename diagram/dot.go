package diagram

import (
	"fmt"
	"strings"
)

// DOT serializes the diagram as a Graphviz digraph: doublecircle for
// accepting states, a lightblue fill for the start state, labeled edges,
// and red highlighting for path-marked nodes and edges. Output is
// byte-stable for a given diagram.
func (d *Diagram) DOT() string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %q {\n", dotName(d.Name))
	b.WriteString("\trankdir=LR;\n")

	for _, n := range d.Nodes {
		shape := "circle"
		if n.IsAccepting {
			shape = "doublecircle"
		}
		attrs := []string{"shape=" + shape}
		if n.IsStart {
			attrs = append(attrs, "style=filled", "fillcolor=lightblue")
		}
		if n.OnPath {
			attrs = append(attrs, "color=red")
		}
		fmt.Fprintf(&b, "\t%q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}
	for _, e := range d.Edges {
		attrs := []string{fmt.Sprintf("label=%q", e.Label)}
		if e.OnPath {
			attrs = append(attrs, "color=red", "penwidth=2")
		}
		fmt.Fprintf(&b, "\t%q -> %q [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}
	b.WriteString("}\n")
	return b.String()
}

func dotName(name string) string {
	if name == "" {
		return "G"
	}
	return name
}
