package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aegean-group/property-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "property-cli",
	Short: "Greek coastal property enrichment and scoring",
	Long:  "Imports scraped listing catalogs, attaches airport/beach/city proximity and investment estimates, and ranks listings by a weighted multi-criteria score.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
