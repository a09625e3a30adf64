package main

import (
	"errors"

	"github.com/spf13/cobra"

	"customercore/internal/platform/config"
	"customercore/internal/platform/logger"
	"customercore/internal/platform/postgres"
)

func newMigrateCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded PostgreSQL schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			if cfg.Database.URL == "" {
				return errors.New("database.url is required for migrate")
			}
			log := logger.New(cfg.Log)
			ctx := cmd.Context()
			db, err := postgres.Open(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()
			return postgres.Migrate(ctx, db, log)
		},
	}
}
