package main

import (
	"fmt"
	"os"
	"time"

	"github.com/N4171k/45DOC/internal/config"
	"github.com/N4171k/45DOC/internal/database"
	"github.com/N4171k/45DOC/internal/migrations"
	"github.com/N4171k/45DOC/internal/seeds"
	"github.com/N4171k/45DOC/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	startDate     string
	adminName     string
	adminEmail    string
	adminPassword string
)

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Seed the 45-day challenge calendar and an optional admin account",
	RunE:  runSeed,
}

func init() {
	rootCmd.Flags().StringVar(&startDate, "start", "", "date of day 1 as YYYY-MM-DD (default today)")
	rootCmd.Flags().StringVar(&adminName, "admin-name", "CodeStreak Admin", "name for a created admin account")
	rootCmd.Flags().StringVar(&adminEmail, "admin-email", "", "create or promote this admin account")
	rootCmd.Flags().StringVar(&adminPassword, "admin-password", os.Getenv("SEED_ADMIN_PASSWORD"), "password for a created admin account")
}

func parseStart(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --start %q: %w", s, err)
	}
	return t, nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	start, err := parseStart(startDate)
	if err != nil {
		return err
	}

	config.LoadConfig()
	logger.Init(config.AppConfig.Env, config.AppConfig.LogLevel)
	database.Connect()

	if err := database.AutoMigrate(database.DB); err != nil {
		return fmt.Errorf("migrate tables: %w", err)
	}
	if err := migrations.NewMigrator(database.DB).Run(); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	created, err := seeds.SeedChallenges(database.DB, start)
	if err != nil {
		return fmt.Errorf("seed challenges: %w", err)
	}
	logger.Info().Int("created", created).Str("start", start.Format("2006-01-02")).Msg("Challenge calendar seeded")

	if adminEmail != "" {
		if _, err := seeds.SeedAdmin(database.DB, adminName, adminEmail, adminPassword); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	}

	fmt.Printf("Seeding complete: %d new challenge days.\n", created)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
