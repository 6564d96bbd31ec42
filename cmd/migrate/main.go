package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/N4171k/45DOC/internal/config"
	"github.com/N4171k/45DOC/internal/database"
	"github.com/N4171k/45DOC/internal/migrations"
	"github.com/N4171k/45DOC/pkg/logger"
	"github.com/spf13/cobra"
)

func connect() *migrations.Migrator {
	config.LoadConfig()
	logger.Init(config.AppConfig.Env, config.AppConfig.LogLevel)
	database.Connect()
	return migrations.NewMigrator(database.DB)
}

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Inspect and apply CodeStreak schema migrations",
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List migrations and whether they have been applied",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := connect().Status()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tAPPLIED")
		for _, s := range st {
			applied := "pending"
			if s.Applied {
				applied = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", s.ID, s.Name, applied)
		}
		return w.Flush()
	},
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Create tables and apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		m := connect()
		if err := database.AutoMigrate(database.DB); err != nil {
			return err
		}
		return m.Run()
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recently applied migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return connect().Rollback()
	},
}

func main() {
	rootCmd.AddCommand(statusCmd, upCmd, downCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
