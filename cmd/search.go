package main

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DhaatuTheGamer/dealdigger-ai/internal/deals"
	"github.com/DhaatuTheGamer/dealdigger-ai/internal/model"
	"github.com/DhaatuTheGamer/dealdigger-ai/internal/oracle"
)

var (
	searchKeywords   string
	searchCategories []string
	searchLocation   string
	searchGrounded   bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Generate a batch of deals and print them as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := deals.NewService(oracle.NewGate(cfg), cfg.Deals)

		prefs := model.UserPreferences{
			Keywords:   searchKeywords,
			Categories: searchCategories,
			Location:   searchLocation,
		}

		result, err := svc.GenerateDeals(cmd.Context(), prefs, searchGrounded)
		if errors.Is(err, oracle.ErrCredentialsMissing) {
			zap.L().Warn("no AI credential configured, serving placeholder catalog")
			result = &deals.GenerationResult{Deals: svc.PlaceholderDeals()}
		} else if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchKeywords, "keywords", "", "free-text product keywords")
	searchCmd.Flags().StringSliceVar(&searchCategories, "category", nil, "restrict to these categories (repeatable)")
	searchCmd.Flags().StringVar(&searchLocation, "location", "", "shopper location for regional offers")
	searchCmd.Flags().BoolVar(&searchGrounded, "grounded", false, "ground deals in live web search results")
	rootCmd.AddCommand(searchCmd)
}
