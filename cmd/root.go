package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DhaatuTheGamer/dealdigger-ai/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "dealdigger",
	Short: "AI-powered deal discovery backend",
	Long:  "Generates, verifies, and serves e-commerce deals via a Gemini or Claude oracle, with an offline placeholder catalog when no credential is configured.",
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
