package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var warmTimeout time.Duration

// warmCmd refreshes the hot cache keys once
var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Refresh the S&P 500 list and indices cache once",
	Long: `Recomputes the default S&P 500 list and the market indices and overwrites
their cache entries. Useful from an external scheduler when the API runs with --no-warm.

Example:
  go run ./cmd/stockgrade warm --timeout 3m`,
	RunE: runWarm,
}

func init() {
	rootCmd.AddCommand(warmCmd)

	warmCmd.Flags().DurationVar(&warmTimeout, "timeout", 2*time.Minute, "overall timeout")
}

func runWarm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), warmTimeout)
	defer cancel()

	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.service.Warm(ctx); err != nil {
		return fmt.Errorf("warm cache: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "cache warmed")
	return nil
}
