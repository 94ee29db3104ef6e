package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/progress-dashboard-api/pkg/config"
	"github.com/noah-isme/progress-dashboard-api/pkg/database"
	"github.com/noah-isme/progress-dashboard-api/pkg/logger"
)

func newMigrateCmd() *cobra.Command {
	var version int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations.",
		Long: `Migrate the database to the latest schema, or to --version N.

--version 0 rolls every migration back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logr, err := logger.New(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer logr.Sync() //nolint:errcheck

			db, err := database.NewPostgres(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			result, err := database.Migrate(db.DB, version, logr)
			if err != nil {
				return err
			}
			if !result.Changed {
				fmt.Fprintf(cmd.OutOrStdout(), "schema already at version %d\n", result.To)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated schema from version %d to %d\n", result.From, result.To)
			return nil
		},
	}

	cmd.Flags().IntVar(&version, "version", database.LatestVersion, "target schema version (negative for latest)")
	return cmd
}
