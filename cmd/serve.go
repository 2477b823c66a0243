package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pumpline/pumpline/internal/config"
	"github.com/pumpline/pumpline/internal/dependency"
	"github.com/pumpline/pumpline/internal/server"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdin/stdout",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Config file path (default ~/.pumpline/config.json)")
}

func runServe(_ *cobra.Command, _ []string) error {
	// Stdout carries the protocol; all logging goes to stderr.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load(serveConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	c, err := dependency.New(cfg)
	if err != nil {
		return err
	}

	slog.Info("pumpline serving",
		"wallet", cfg.Wallet.PublicKey,
		"trading", cfg.TradingEnabled(),
		"metadata", cfg.Moralis.APIKey != "",
		"tools", len(c.Registry().Specs()),
	)

	// ServeStdio returns on EOF or a signal; both are a graceful shutdown.
	if err := server.ServeStdio(c.MCPServer()); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
