package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Hardvan/ToC-EL/convert"
	"github.com/Hardvan/ToC-EL/diagram"
	"github.com/Hardvan/ToC-EL/machine"
)

var grammarCmd = &cobra.Command{
	Use:   "grammar",
	Short: "Build a regular grammar and its equivalent DFA",
	Long:  "Build a right-linear regular grammar from a hand-entered record, emit its diagram, and emit the DFA it converts to. The grammar must be deterministic: no variable may have two productions starting with the same terminal.",
	RunE:  runGrammar,
}

func init() {
	grammarCmd.Flags().String("variables", "", "Comma-separated variables")
	grammarCmd.Flags().String("terminals", "", "Comma-separated terminals")
	grammarCmd.Flags().String("productions", "", "Semicolon-separated productions \"variable,body1,body2,...\" (λ for an ε-production)")
	grammarCmd.Flags().String("start", "", "Start variable")
	_ = grammarCmd.MarkFlagRequired("variables")
	_ = grammarCmd.MarkFlagRequired("terminals")
	_ = grammarCmd.MarkFlagRequired("productions")
	_ = grammarCmd.MarkFlagRequired("start")

	rootCmd.AddCommand(grammarCmd)
}

func runGrammar(cmd *cobra.Command, args []string) error {
	log := newLogger()
	in := machine.GrammarInput{
		Variables:   flagString(cmd, "variables"),
		Terminals:   flagString(cmd, "terminals"),
		Productions: flagString(cmd, "productions"),
		Start:       flagString(cmd, "start"),
	}

	gr, err := machine.ParseGrammar(in)
	if err != nil {
		return fmt.Errorf("building grammar: %w", err)
	}
	d, err := convert.GrammarToDFA(gr)
	if err != nil {
		return fmt.Errorf("converting grammar: %w", err)
	}
	log.V(1).Info("converted grammar", "variables", len(gr.Variables), "dfaStates", len(d.States))

	id := renderID()
	var g errgroup.Group
	g.Go(func() error {
		path, err := writeDiagram("grammar_"+id, diagram.FromGrammar(gr, "grammar"))
		if err != nil {
			return err
		}
		log.Info("wrote grammar diagram", "path", path)
		return nil
	})
	g.Go(func() error {
		path, err := writeDiagram("grammar_to_dfa_"+id, diagram.FromDFA(d, "grammar_to_dfa"))
		if err != nil {
			return err
		}
		log.Info("wrote converted DFA diagram", "path", path)
		return nil
	})
	return g.Wait()
}
