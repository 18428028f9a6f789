package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kithwatch",
	Short: "Behavioral isolation risk engine",
	Long: "Fuses calendar-derived social signals and listening-derived mood signals\n" +
		"into a bounded risk score and drives a graded, human-facing intervention.",
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config YAML (default ~/.kithwatch/config.yaml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
