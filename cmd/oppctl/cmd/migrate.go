package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fastopp/fastopp/internal/config"
	"github.com/fastopp/fastopp/internal/db"
	"github.com/fastopp/fastopp/internal/logger"
)

func MigrateCmd() *cobra.Command {
	var down bool

	c := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations (or roll back one with --down)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

			database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return err
			}
			defer database.Close()

			if down {
				return db.MigrateDown(database.DB, cfg.DBDriver)
			}
			return db.RunMigrations(database.DB, cfg.DBDriver)
		},
	}

	c.Flags().BoolVar(&down, "down", false, "roll back the most recent migration")
	return c
}
