package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TheCYPER/TheVaultRunner/internal/examples"
	"github.com/TheCYPER/TheVaultRunner/internal/interp"
	"github.com/TheCYPER/TheVaultRunner/internal/world"
)

func newExamplesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "examples",
		Short: "Work with the built-in example programs",
	}
	cmd.AddCommand(newExamplesListCmd())
	cmd.AddCommand(newExamplesShowCmd())
	cmd.AddCommand(newExamplesRunCmd())
	return cmd
}

func newExamplesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the example programs",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := examples.All()
			if err != nil {
				return err
			}
			for _, e := range all {
				fmt.Printf("%-18s %-14s %s\n", e.Name, e.Map, e.Description)
			}
			return nil
		},
	}
}

func newExamplesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Print an example program and its map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := examples.Get(args[0])
			if err != nil {
				return err
			}
			src, err := examples.Source(e)
			if err != nil {
				return err
			}
			grid, err := world.ParseMap(world.BuiltinMaps()[e.Map]())
			if err != nil {
				return err
			}
			bot := world.NewBot(grid, e.Start.X, e.Start.Y, mustDirection(e.Facing))

			fmt.Printf("%s: %s\n\n", e.Name, e.Description)
			fmt.Print(src)
			fmt.Printf("\nMap %q, start %d,%d facing %s:\n\n", e.Map, e.Start.X, e.Start.Y, e.Facing)
			fmt.Print(grid.Render(bot))
			return nil
		},
	}
}

func newExamplesRunCmd() *cobra.Command {
	var show bool

	cmd := &cobra.Command{
		Use:   "run [name]",
		Short: "Run an example program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := examples.Get(args[0])
			if err != nil {
				return err
			}
			src, err := examples.Source(e)
			if err != nil {
				return err
			}
			grid, err := world.ParseMap(world.BuiltinMaps()[e.Map]())
			if err != nil {
				return err
			}
			bot := world.NewBot(grid, e.Start.X, e.Start.Y, mustDirection(e.Facing))

			logger := newRunLogger(cmd.Context(), e.SourceFile, e.Map)
			res := interp.New(bot, interp.WithLogger(logger)).Run(src, e.SourceFile)
			printResult(res)
			if show {
				fmt.Print(grid.Render(bot))
			}
			if !res.Success {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&show, "show", false, "Render the world after the run")

	return cmd
}

// mustDirection is for catalog entries, which are validated by tests.
func mustDirection(s string) world.Direction {
	dir, err := world.ParseDirection(s)
	if err != nil {
		panic(err)
	}
	return dir
}
