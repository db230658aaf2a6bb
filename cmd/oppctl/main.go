package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fastopp/fastopp/cmd/oppctl/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "oppctl",
		Short: "Operational tools for the FastOpp demo app",
	}

	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.SuperuserCmd())
	rootCmd.AddCommand(cmd.BackupCmd())
	rootCmd.AddCommand(cmd.RestoreCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
