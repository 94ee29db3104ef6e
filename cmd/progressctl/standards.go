package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/noah-isme/progress-dashboard-api/internal/scoring"
	"github.com/noah-isme/progress-dashboard-api/internal/service"
)

func newStandardsCmd() *cobra.Command {
	var gender string

	cmd := &cobra.Command{
		Use:   "standards",
		Short: "Print the built-in fitness standards.",
		Long: `Print the raw ranges each exercise is scored against.

Without --gender both tables are printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			genders := []scoring.Gender{scoring.GenderMale, scoring.GenderFemale}
			if gender != "" {
				g, err := service.ResolveGender(gender, "")
				if err != nil {
					return err
				}
				genders = []scoring.Gender{g}
			}
			for _, g := range genders {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", g)
				if err := writeStandardsTable(cmd.OutOrStdout(), g); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&gender, "gender", "", "male or female")
	return cmd
}

func writeStandardsTable(writer io.Writer, gender scoring.Gender) error {
	table := tablewriter.NewWriter(writer)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Exercise", "Unit", "Scores 0 at", "Scores 100 at", "Better"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, row := range service.StandardsTable(gender) {
		better := "higher"
		if row.Reversed {
			better = "lower"
		}
		data = append(data, []string{
			string(row.Exercise),
			row.Unit,
			formatFloat(row.Min),
			formatFloat(row.Max),
			better,
		})
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("standards table: %w", err)
	}
	return table.Render()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
