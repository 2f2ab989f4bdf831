package main

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Automata-theory toolkit",
	Long:  "Automata builds finite-state machines, pushdown automata, and regular grammars from hand-entered records, runs the classical conversions over them, and emits graph descriptions for rendering.",
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("format", "f", "dot", "Output format: dot or json")
	rootCmd.PersistentFlags().StringP("out", "o", "output", "Output directory for emitted diagrams")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("out", rootCmd.PersistentFlags().Lookup("out"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	viper.SetEnvPrefix("AUTOMATA")
	viper.AutomaticEnv()
}

// newLogger builds the CLI logger. Verbose runs raise the V-level so the
// per-step messages show; the library packages stay silent either way.
func newLogger() logr.Logger {
	verbosity := 0
	if viper.GetBool("verbose") {
		verbosity = 1
	}
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(os.Stderr, args)
	}, funcr.Options{Verbosity: verbosity}).WithName("automata")
}
