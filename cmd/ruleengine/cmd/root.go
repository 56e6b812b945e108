package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "ruleengine",
	Short: "URL rule-classification engine",
	Long:  `ruleengine evaluates URLs against a priority-ordered set of part-matching rules.`,
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", getenv("RULEENGINE_LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")
}

// Execute runs the CLI's selected subcommand.
func Execute() error {
	return rootCmd.Execute()
}
