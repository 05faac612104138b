package main

import (
	"github.com/spf13/cobra"

	"github.com/artyatra/artyatra/config"
	"github.com/artyatra/artyatra/internal/server"
)

var (
	migrateDir       string
	migrateDirection string
	migrateSteps     int
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations (postgres driver only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig(cfgPath)
		dsn, err := cfg.Storage.Postgres.DSN()
		if err != nil {
			return err
		}
		return server.Migrate(migrateDir, dsn, migrateDirection, migrateSteps)
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDir, "dir", "file://migrations", "migrations source URL")
	migrateCmd.Flags().StringVar(&migrateDirection, "direction", "up", "up or down")
	migrateCmd.Flags().IntVar(&migrateSteps, "steps", 0, "number of steps (0 = all)")
}
