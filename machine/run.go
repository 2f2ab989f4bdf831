package machine

// Run is the outcome of one deterministic simulation: the visited states in
// order, starting at the DFA start state, and whether the machine accepted.
// Consumed counts input symbols actually read; the trace always has length
// 1+Consumed. When the run halts on a missing transition entry, Consumed is
// short of len(Input) and Accepted is false — an ordinary rejection, not an
// error.
type Run struct {
	Input    []Symbol
	Path     []State
	Consumed int
	Accepted bool
}

// Run simulates the DFA over input. No backtracking and no implicit dead
// state: a partial transition function simply stops the run where it is
// undefined.
func (d *DFA) Run(input []Symbol) *Run {
	r := &Run{Input: input, Path: []State{d.Start}}
	cur := d.Start
	for _, sym := range input {
		next, ok := d.Step(cur, sym)
		if !ok {
			return r
		}
		cur = next
		r.Path = append(r.Path, cur)
		r.Consumed++
	}
	r.Accepted = d.IsAccepting(cur)
	return r
}
