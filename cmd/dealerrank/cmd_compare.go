package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spboyer/dealerrank/internal/reporting"
)

func newCompareCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "compare <report-a.json> <report-b.json>",
		Short: "Compare the rankings of two JSON reports",
		Long: `Compare two reports written by 'score --format json'.

Shows, per entity, its rank and score in each report and how far it moved.
Entities present in only one report are shown as n/a on the other side.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("unsupported format %q: must be table or json", format)
			}

			a, err := reporting.LoadReport(args[0])
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", args[0], err)
			}
			b, err := reporting.LoadReport(args[1])
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", args[1], err)
			}

			c := reporting.CompareReports(a, b)
			c.A, c.B = args[0], args[1]
			if format == "json" {
				return reporting.RenderComparisonJSON(cmd.OutOrStdout(), c)
			}
			return reporting.RenderComparisonTable(cmd.OutOrStdout(), c)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table or json")
	return cmd
}
