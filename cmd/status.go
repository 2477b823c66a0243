package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pumpline/pumpline/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pumpline configuration status",
	RunE:  runStatus,
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfgPath := config.ConfigPath()

	fmt.Printf("%s pumpline Status\n\n", logo)

	_, statErr := os.Stat(cfgPath)
	cfgMark := "✗"
	if statErr == nil {
		cfgMark = "✓"
	}
	fmt.Printf("Config:  %s %s\n\n", cfgPath, cfgMark)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("  (could not load config: %v)\n", err)
		return nil
	}

	mark := func(ok bool) string {
		if ok {
			return "✓"
		}
		return "(not set)"
	}

	fmt.Println("Wallet:")
	fmt.Printf("  %-22s %s\n", "public key", mark(cfg.Wallet.PublicKey != ""))
	fmt.Printf("  %-22s %s\n", "private key (trading)", mark(cfg.TradingEnabled()))
	fmt.Printf("  %-22s %s\n", "rpc endpoint", cfg.Solana.RPCURL)

	fmt.Println("\nProviders:")
	fmt.Printf("  %-22s %s\n", "pumpportal", cfg.PumpPortal.TradeURL)
	fmt.Printf("  %-22s %s\n", "moralis (metadata)", mark(cfg.Moralis.APIKey != ""))
	fmt.Printf("  %-22s %s\n", "twitter search", mark(cfg.Twitter.HasAppCredentials()))
	fmt.Printf("  %-22s %s\n", "twitter posting", mark(cfg.Twitter.HasUserCredentials()))

	if !cfg.TradingEnabled() {
		fmt.Println("\nbuy_token/sell_token will report trading as unavailable until a private key is set.")
	}
	if cfg.Moralis.APIKey == "" {
		fmt.Println("Token info/price/listings will return placeholder data until MORALIS_API_KEY is set.")
	}
	return nil
}
