package main

import (
	"errors"
	"fmt"

	"github.com/AgentTarik/gosat-api/internal/config"
	"github.com/AgentTarik/gosat-api/internal/storage"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the postgres migrations",
		Long: `Apply the embedded SQL migrations to DATABASE_URL.

Migrations already recorded in schema_migrations are skipped.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if cfg.Database.URL == "" {
				return errors.New("DATABASE_URL is required")
			}

			pg, err := storage.NewPostgres(cfg.Database.URL)
			if err != nil {
				return err
			}
			defer pg.Close()

			applied, err := pg.Migrate(cmd.Context())
			for _, name := range applied {
				fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", name)
			}
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to migrate")
			}
			return nil
		},
	}
}
