package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Hardvan/ToC-EL/diagram"
	"github.com/Hardvan/ToC-EL/machine"
)

var pdaCmd = &cobra.Command{
	Use:   "pda",
	Short: "Build and render a pushdown automaton",
	Long:  "Build a pushdown automaton from a hand-entered record, validate it structurally, and emit its diagram. PDAs are never simulated.",
	RunE:  runPDA,
}

func init() {
	pdaCmd.Flags().String("states", "", "Comma-separated states")
	pdaCmd.Flags().String("input-alphabet", "", "Comma-separated input symbols")
	pdaCmd.Flags().String("stack-alphabet", "", "Comma-separated stack symbols")
	pdaCmd.Flags().String("transitions", "", "Semicolon-separated transitions \"from,input,stack-top,to,stack-push\"")
	pdaCmd.Flags().String("start", "", "Start state")
	pdaCmd.Flags().String("initial-stack", "", "Initial stack symbol")
	pdaCmd.Flags().String("accepting", "", "Comma-separated accepting states")
	_ = pdaCmd.MarkFlagRequired("states")
	_ = pdaCmd.MarkFlagRequired("input-alphabet")
	_ = pdaCmd.MarkFlagRequired("stack-alphabet")
	_ = pdaCmd.MarkFlagRequired("transitions")
	_ = pdaCmd.MarkFlagRequired("start")
	_ = pdaCmd.MarkFlagRequired("initial-stack")

	rootCmd.AddCommand(pdaCmd)
}

func runPDA(cmd *cobra.Command, args []string) error {
	log := newLogger()
	in := machine.PDAInput{
		States:        flagString(cmd, "states"),
		InputAlphabet: flagString(cmd, "input-alphabet"),
		StackAlphabet: flagString(cmd, "stack-alphabet"),
		Transitions:   flagString(cmd, "transitions"),
		Start:         flagString(cmd, "start"),
		InitialStack:  flagString(cmd, "initial-stack"),
		Accepting:     flagString(cmd, "accepting"),
	}

	p, err := machine.ParsePDA(in)
	if err != nil {
		return fmt.Errorf("building PDA: %w", err)
	}
	log.V(1).Info("built PDA", "states", len(p.States), "transitions", len(p.Transitions))

	path, err := writeDiagram("pda_"+renderID(), diagram.FromPDA(p, "pda"))
	if err != nil {
		return err
	}
	log.Info("wrote PDA diagram", "path", path)
	return nil
}
