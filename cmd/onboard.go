package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pumpline/pumpline/internal/config"
)

var onboardForce bool

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Write a starter config file",
	RunE:  runOnboard,
}

func init() {
	onboardCmd.Flags().BoolVarP(&onboardForce, "force", "f", false, "Overwrite an existing config")
}

func runOnboard(_ *cobra.Command, _ []string) error {
	path := config.ConfigPath()
	if _, err := os.Stat(path); err == nil && !onboardForce {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}

	cfg := config.DefaultConfig()
	if err := config.Save(&cfg, path); err != nil {
		return err
	}

	fmt.Printf("%s Wrote starter config to %s\n\n", logo, path)
	fmt.Println("Fill in wallet.publicKey (required) and the optional credentials:")
	fmt.Println("  wallet.privateKey      enables buy_token / sell_token")
	fmt.Println("  moralis.apiKey         enables live token info/price/listings")
	fmt.Println("  twitter.*              enables search_tweets / post_tweet")
	fmt.Println("\nEvery field can also be set via environment variables; see the README.")
	return nil
}
