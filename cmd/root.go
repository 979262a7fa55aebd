package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "prospect-cli",
	Short: "Competitor website prospecting scanner",
	Long:  "Scans candidate clinic websites for competitor platform signatures and extracts business metadata (provider names, credentials, location, contact info) into CSV/JSON prospect lists.",
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
