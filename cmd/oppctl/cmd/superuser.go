package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fastopp/fastopp/internal/config"
	"github.com/fastopp/fastopp/internal/db"
	"github.com/fastopp/fastopp/internal/logger"
	"github.com/fastopp/fastopp/internal/repository"
	"github.com/fastopp/fastopp/internal/service"
)

func SuperuserCmd() *cobra.Command {
	var email, password string

	c := &cobra.Command{
		Use:   "superuser",
		Short: "Create an admin account (no-op if the email already exists)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)

			database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
			if err != nil {
				return err
			}
			defer database.Close()

			err = db.RunMigrations(database.DB, cfg.DBDriver)
			if err != nil {
				return err
			}

			userService := service.NewUserService(repository.NewUserRepository(database))

			user, created, err := userService.CreateSuperuser(email, password)
			if err != nil {
				return err
			}

			if !created {
				fmt.Printf("superuser already exists: %s\n", user.Email)
				return nil
			}

			fmt.Printf("superuser created: %s\n", user.Email)
			return nil
		},
	}

	c.Flags().StringVar(&email, "email", "admin@example.com", "superuser email")
	c.Flags().StringVar(&password, "password", "", "superuser password (required)")
	_ = c.MarkFlagRequired("password")
	return c
}
