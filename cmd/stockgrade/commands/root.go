package commands

import (
	"github.com/spf13/cobra"

	"github.com/wonny/stockgrade/pkg/config"
)

var (
	// Global flags
	env     string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stockgrade",
	Short: "Stock grading API - S&P 500 snapshots, five-factor grades, market indices",
	Long: `stockgrade serves cached stock data and five-factor grades over HTTP.

Usage:
  go run ./cmd/stockgrade [command]

Examples:
  go run ./cmd/stockgrade api
  go run ./cmd/stockgrade warm
  go run ./cmd/stockgrade grade --sharpe 1.2 --roe 25 --peg 1.5 --current-ratio 1.1 --de 0.8`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "environment override (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// loadConfig loads the environment and applies global flag overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if env != "" {
		cfg.Env = env
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}
