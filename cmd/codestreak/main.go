package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/N4171k/45DOC/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "codestreak",
	Short: "Daily coding practice from your terminal",
	Long: `codestreak signs you in to a CodeStreak server, shows the daily challenge,
submits solutions and tracks your streak. Completions are cached on this
machine so the streak is available offline.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.InitWriter(os.Stderr, viper.GetString("log_level"))
	},
}

func defaultHome() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "codestreak")
	}
	return ".codestreak"
}

func init() {
	viper.SetEnvPrefix("CODESTREAK")
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().String("api-url", "http://localhost:8080", "CodeStreak server URL (CODESTREAK_API_URL)")
	rootCmd.PersistentFlags().String("home", defaultHome(), "directory for the local cache (CODESTREAK_HOME)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level for diagnostics on stderr")
	_ = viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag("home", rootCmd.PersistentFlags().Lookup("home"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	registerCommands(rootCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", describeError(err))
		os.Exit(1)
	}
}
