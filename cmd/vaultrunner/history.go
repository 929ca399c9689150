package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/TheCYPER/TheVaultRunner/internal/state"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded runs",
	}
	cmd.AddCommand(newHistoryListCmd())
	cmd.AddCommand(newHistoryShowCmd())
	return cmd
}

func newHistoryListCmd() *cobra.Command {
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend := state.NewLocalBackend(historyFile)

			var filter *state.Status
			if statusFilter != "" {
				s := state.Status(statusFilter)
				switch s {
				case state.StatusSolved, state.StatusFailed, state.StatusFault:
					filter = &s
				default:
					return fmt.Errorf("unknown status %q (solved, failed, fault)", statusFilter)
				}
			}

			entries, err := backend.List(filter)
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}
			if len(entries) == 0 {
				fmt.Println("No recorded runs.")
				return nil
			}

			for _, e := range entries {
				fmt.Printf("%s  %-7s %-18s %-14s %5d steps  %s\n",
					e.ID, e.Status, e.Program, e.Map, e.Steps,
					e.RanAt.Format(time.RFC3339))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Filter by status: solved, failed, fault")

	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend := state.NewLocalBackend(historyFile)
			entry, err := backend.Get(args[0])
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}
			if entry == nil {
				return fmt.Errorf("no run with id %q", args[0])
			}

			fmt.Printf("ID:       %s\n", entry.ID)
			fmt.Printf("Program:  %s\n", entry.Program)
			fmt.Printf("Map:      %s\n", entry.Map)
			fmt.Printf("Status:   %s\n", entry.Status)
			fmt.Printf("Steps:    %d\n", entry.Steps)
			fmt.Printf("Ran at:   %s\n", entry.RanAt.Format(time.RFC3339))
			fmt.Printf("Duration: %s\n", entry.Duration)
			if entry.Diagnostic != "" {
				fmt.Printf("Fault:    %s\n", entry.Diagnostic)
			}
			return nil
		},
	}
}
