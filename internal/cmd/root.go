package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skillsphere",
	Short: "Terminal client for the Skillsphere learning platform",
	Long: `skillsphere is the terminal client for the Skillsphere learning platform.
Run it without arguments to open the interactive interface: sign in,
set up your organisation, answer the skills questionnaire and browse
your dashboard, with the session gate deciding which screens you can
reach.

Subcommands cover the same session operations non-interactively for
scripting: login, logout, status.`,
	RunE:          runApp,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagConfig     string
	flagBackendURL string
	flagLogLevel   string
	flagLogFormat  string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default is $HOME/.skillsphere/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagBackendURL, "backend-url", "", "backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: text or json")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a cancellable context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
