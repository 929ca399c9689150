// Package main is the entry point for the vaultrunner CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version     = "0.1.0"
	langVersion = "1.0"
)

// Global flags.
var (
	historyFile   string
	verbose       bool
	correlationID string
)

const defaultHistoryFile = ".vaultrunner.history.json"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vaultrunner",
		Short: "Vault Runner program interpreter",
		Long: `Vault Runner parses and executes bot programs (.runner files),
driving a simulated agent through a bounded grid world. Programs are
tokenized, parsed against static ceilings, and executed under a global
step budget; the run either reaches the exit or it does not.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&historyFile, "history-file", defaultHistoryFile, "Path to run history file")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")
	root.PersistentFlags().StringVar(&correlationID, "correlation-id", "", "Set explicit correlation ID")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newFmtCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newTokensCmd())
	root.AddCommand(newMapsCmd())
	root.AddCommand(newExamplesCmd())
	root.AddCommand(newEvalCmd())
	root.AddCommand(newHistoryCmd())

	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
