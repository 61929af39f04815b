package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/DhaatuTheGamer/dealdigger-ai/internal/deals"
	"github.com/DhaatuTheGamer/dealdigger-ai/internal/model"
	"github.com/DhaatuTheGamer/dealdigger-ai/internal/oracle"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [deal.json]",
	Short: "Assess a deal's trustworthiness",
	Long:  "Reads a deal as JSON from the given file (or stdin when omitted) and prints a summary with a 1-5 trust score. Score 0 means the check could not run.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var in io.Reader = os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return eris.Wrap(err, "open deal file")
			}
			defer f.Close()
			in = f
		}

		var deal model.Deal
		if err := json.NewDecoder(in).Decode(&deal); err != nil {
			return eris.Wrap(err, "decode deal")
		}

		svc := deals.NewService(oracle.NewGate(cfg), cfg.Deals)
		v := svc.VerifyDeal(cmd.Context(), deal)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
