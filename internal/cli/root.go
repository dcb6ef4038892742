package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "duelctl",
		Short: "CLI tool for the digit duel API",
		Long: `duelctl is a CLI tool for interacting with the digit duel JSON API.

It supports session management, live event watching, and playing a full
game from the terminal over a websocket connection.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: DIGITDUEL_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
