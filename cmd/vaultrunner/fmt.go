package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/TheCYPER/TheVaultRunner/internal/formatter"
	"github.com/TheCYPER/TheVaultRunner/internal/parser"
)

func newFmtCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "fmt [files...]",
		Short: "Format programs to canonical style",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := resolveRunnerFiles(args)
			if err != nil {
				return err
			}

			anyChanged := false
			for _, file := range files {
				changed, err := formatFile(file, check)
				if err != nil {
					return fmt.Errorf("formatting %s: %w", file, err)
				}
				if changed {
					anyChanged = true
				}
			}

			if check && anyChanged {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Report whether files need formatting without writing")

	return cmd
}

func formatFile(path string, check bool) (bool, error) {
	input, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	prog, err := parser.ParseSource(string(input), filepath.Base(path))
	if err != nil {
		return false, err
	}

	formatted := formatter.Format(prog)
	if string(input) == formatted {
		return false, nil
	}

	if check {
		fmt.Printf("%s needs formatting\n", path)
		return true, nil
	}

	if err := os.WriteFile(path, []byte(formatted), 0644); err != nil {
		return true, err
	}
	fmt.Printf("formatted %s\n", path)
	return true, nil
}

func resolveRunnerFiles(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}
		if info.IsDir() {
			matches, err := filepath.Glob(filepath.Join(arg, "*.runner"))
			if err != nil {
				return nil, err
			}
			files = append(files, matches...)
		} else {
			files = append(files, arg)
		}
	}
	return files, nil
}
