package main

import (
	"fmt"
	"os"

	"kpi-dashboard/internal/config"
	"kpi-dashboard/internal/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Shared by every sub-command, set in PersistentPreRunE
var (
	cfg *config.Config
	log *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "kpi-dashboard",
	Short: "KPI Dashboard API server",
	Long: `kpi-dashboard serves the KPI dashboard REST API: authentication,
users, teams, branches, goals, performance reviews and score reports.

Running it without a sub-command starts the server.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	RunE:              runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log = logger.New(cfg.AppMode)
	return nil
}
