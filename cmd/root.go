// Package cmd implements the pumpline CLI using cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"
const logo = "🚀"

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "pumpline",
	Short: logo + " pumpline — pump.fun trading tools over MCP",
	Long: logo + ` pumpline — an MCP stdio server exposing pump.fun token search,
price lookup, buy/sell and Twitter operations as agent tools`,
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(wrapCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(toolsCmd)
}
