package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/TheCYPER/TheVaultRunner/internal/world"
)

func newMapsCmd() *cobra.Command {
	var show string

	cmd := &cobra.Command{
		Use:   "maps",
		Short: "List the built-in maps",
		RunE: func(cmd *cobra.Command, args []string) error {
			builtin := world.BuiltinMaps()

			if show != "" {
				build, ok := builtin[show]
				if !ok {
					return fmt.Errorf("unknown map %q", show)
				}
				grid, err := world.ParseMap(build())
				if err != nil {
					return err
				}
				fmt.Print(grid.Render(nil))
				return nil
			}

			names := make([]string, 0, len(builtin))
			for name := range builtin {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&show, "show", "", "Render one map instead of listing")

	return cmd
}
