package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "progressctl",
		Short: "Operate the progress dashboard: schema migrations and scoring lookups.",
		Long: `progressctl is the operator companion to the progress dashboard API.

It reads the same environment (.env, DB_*, LOG_*) as the API and can:
- apply or roll back schema migrations
- print the built-in fitness standards
- score a single measurement or percentage without a running server`,
		SilenceUsage: true,
	}

	root.AddCommand(newMigrateCmd())
	root.AddCommand(newStandardsCmd())
	root.AddCommand(newScoreCmd())
	root.AddCommand(newGradeCmd())
	return root
}
