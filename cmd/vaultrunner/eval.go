package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TheCYPER/TheVaultRunner/internal/evaluation"
	"github.com/TheCYPER/TheVaultRunner/internal/telemetry"
)

func newEvalCmd() *cobra.Command {
	var (
		workers     int
		output      string
		format      string
		showMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Run the example catalog as an evaluation suite",
		Long: `Run every catalog example against its map and check that it produces
the outcome it advertises. Cases run concurrently; each owns its own
world, so ordering never affects results.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cases, err := evaluation.CasesFromCatalog()
			if err != nil {
				return err
			}

			metrics := telemetry.NewMetrics()
			runner := evaluation.NewRunner(evaluation.RunnerOptions{
				Workers: workers,
				Metrics: metrics,
			})
			result, err := runner.Run(cmd.Context(), cases)
			if err != nil {
				return fmt.Errorf("eval failed: %w", err)
			}

			report, err := evaluation.FormatReport(result, format)
			if err != nil {
				return fmt.Errorf("formatting report: %w", err)
			}

			if output != "" {
				if err := os.WriteFile(output, []byte(report), 0644); err != nil {
					return fmt.Errorf("writing report: %w", err)
				}
				fmt.Printf("Report written to %s\n", output)
			} else {
				fmt.Print(report)
			}

			if showMetrics {
				fmt.Println()
				fmt.Print(metrics.Render())
			}

			if result.FailedCases > 0 {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 4, "Concurrent evaluation workers (0 = unbounded)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write report to file")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, json, markdown")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Dump Prometheus-text metrics after the report")

	return cmd
}
