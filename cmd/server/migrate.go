package main

import (
	"kpi-dashboard/internal/adapters/persistence/models"
	"kpi-dashboard/internal/config"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := config.ConnectDatabase(cfg, log)
		if err != nil {
			return err
		}
		defer config.CloseDatabase(db)

		if err := models.AutoMigrate(db); err != nil {
			return err
		}
		log.Info("Database migration completed")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the initial super admin from SEED_SUPER_ADMIN_EMAIL/PASSWORD",
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := config.ConnectDatabase(cfg, log)
		if err != nil {
			return err
		}
		defer config.CloseDatabase(db)

		if err := models.AutoMigrate(db); err != nil {
			return err
		}
		return config.NewSeeder(db, cfg.Seed, log).Run(cmd.Context())
	},
}
