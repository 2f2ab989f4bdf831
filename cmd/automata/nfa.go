package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Hardvan/ToC-EL/convert"
	"github.com/Hardvan/ToC-EL/diagram"
	"github.com/Hardvan/ToC-EL/machine"
)

var nfaCmd = &cobra.Command{
	Use:   "nfa",
	Short: "Build an NFA and its determinized DFA",
	Long:  "Build an NFA from a hand-entered record, emit its diagram, and emit the DFA produced by subset construction.",
	RunE:  runNFA,
}

func init() {
	nfaCmd.Flags().String("states", "", "Comma-separated states")
	nfaCmd.Flags().String("alphabet", "", "Comma-separated alphabet symbols")
	nfaCmd.Flags().String("transitions", "", "Semicolon-separated transitions \"from,symbol,to1,to2,...\"")
	nfaCmd.Flags().String("start", "", "Start state")
	nfaCmd.Flags().String("accepting", "", "Comma-separated accepting states")
	_ = nfaCmd.MarkFlagRequired("states")
	_ = nfaCmd.MarkFlagRequired("alphabet")
	_ = nfaCmd.MarkFlagRequired("transitions")
	_ = nfaCmd.MarkFlagRequired("start")

	rootCmd.AddCommand(nfaCmd)
}

func runNFA(cmd *cobra.Command, args []string) error {
	log := newLogger()
	in := machine.Input{
		States:      flagString(cmd, "states"),
		Alphabet:    flagString(cmd, "alphabet"),
		Transitions: flagString(cmd, "transitions"),
		Start:       flagString(cmd, "start"),
		Accepting:   flagString(cmd, "accepting"),
	}

	n, err := machine.ParseNFA(in)
	if err != nil {
		return fmt.Errorf("building NFA: %w", err)
	}
	d := convert.NFAToDFA(n)
	log.V(1).Info("determinized NFA", "nfaStates", len(n.States), "dfaStates", len(d.States))

	id := renderID()
	var g errgroup.Group
	g.Go(func() error {
		path, err := writeDiagram("nfa_"+id, diagram.FromNFA(n, "nfa"))
		if err != nil {
			return err
		}
		log.Info("wrote NFA diagram", "path", path)
		return nil
	})
	g.Go(func() error {
		path, err := writeDiagram("nfa_to_dfa_"+id, diagram.FromDFA(d, "nfa_to_dfa"))
		if err != nil {
			return err
		}
		log.Info("wrote determinized DFA diagram", "path", path)
		return nil
	})
	return g.Wait()
}
