package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Hardvan/ToC-EL/convert"
	"github.com/Hardvan/ToC-EL/diagram"
	"github.com/Hardvan/ToC-EL/machine"
)

var enfaCmd = &cobra.Command{
	Use:   "enfa",
	Short: "Build an ε-NFA, print closures, and determinize",
	Long:  "Build an ε-NFA from a hand-entered record (λ marks epsilon transitions), print every state's epsilon closure, emit its diagram, and emit the DFA produced by subset construction with closures applied.",
	RunE:  runENFA,
}

func init() {
	enfaCmd.Flags().String("states", "", "Comma-separated states")
	enfaCmd.Flags().String("alphabet", "", "Comma-separated alphabet symbols")
	enfaCmd.Flags().String("transitions", "", "Semicolon-separated transitions \"from,symbol,to1,to2,...\" (symbol may be λ)")
	enfaCmd.Flags().String("start", "", "Start state")
	enfaCmd.Flags().String("accepting", "", "Comma-separated accepting states")
	_ = enfaCmd.MarkFlagRequired("states")
	_ = enfaCmd.MarkFlagRequired("alphabet")
	_ = enfaCmd.MarkFlagRequired("transitions")
	_ = enfaCmd.MarkFlagRequired("start")

	rootCmd.AddCommand(enfaCmd)
}

func runENFA(cmd *cobra.Command, args []string) error {
	log := newLogger()
	in := machine.Input{
		States:      flagString(cmd, "states"),
		Alphabet:    flagString(cmd, "alphabet"),
		Transitions: flagString(cmd, "transitions"),
		Start:       flagString(cmd, "start"),
		Accepting:   flagString(cmd, "accepting"),
	}

	e, err := machine.ParseENFA(in)
	if err != nil {
		return fmt.Errorf("building ε-NFA: %w", err)
	}

	closures := convert.EpsilonClosures(e)
	for _, s := range e.States {
		members := closures[s].Sorted()
		parts := make([]string, len(members))
		for i, m := range members {
			parts[i] = string(m)
		}
		fmt.Fprintf(os.Stdout, "%s(%s) = {%s}\n", machine.EpsilonGlyph+"-closure", s, strings.Join(parts, ", "))
	}

	d := convert.ENFAToDFA(e)
	log.V(1).Info("determinized ε-NFA", "enfaStates", len(e.States), "dfaStates", len(d.States))

	id := renderID()
	var g errgroup.Group
	g.Go(func() error {
		path, err := writeDiagram("enfa_"+id, diagram.FromENFA(e, "enfa"))
		if err != nil {
			return err
		}
		log.Info("wrote ε-NFA diagram", "path", path)
		return nil
	})
	g.Go(func() error {
		path, err := writeDiagram("enfa_to_dfa_"+id, diagram.FromDFA(d, "enfa_to_dfa"))
		if err != nil {
			return err
		}
		log.Info("wrote determinized DFA diagram", "path", path)
		return nil
	})
	return g.Wait()
}
