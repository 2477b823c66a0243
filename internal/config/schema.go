// Package config defines the configuration schema for pumpline.
//
// JSON keys use camelCase. Every field can also be supplied through an
// environment variable (see ApplyEnv), which is how MCP hosts usually
// configure stdio servers.
package config

import (
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
)

// WalletConfig holds the Solana keypair used for trading.
// PrivateKey is optional; without it the buy/sell tools are disabled.
type WalletConfig struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey,omitempty"`
}

// SolanaConfig holds the RPC endpoint used for transaction submission.
type SolanaConfig struct {
	RPCURL string `json:"rpcUrl"`
}

func defaultSolanaConfig() SolanaConfig {
	return SolanaConfig{RPCURL: "https://api.mainnet-beta.solana.com"}
}

// PumpPortalConfig holds the trading-data provider endpoints.
type PumpPortalConfig struct {
	TradeURL  string `json:"tradeUrl"`
	SearchURL string `json:"searchUrl"`
	DataURL   string `json:"dataUrl"`
}

func defaultPumpPortalConfig() PumpPortalConfig {
	return PumpPortalConfig{
		TradeURL:  "https://pumpportal.fun/api/trade-local",
		SearchURL: "https://frontend-api.pump.fun/coins",
		DataURL:   "wss://pumpportal.fun/api/data",
	}
}

// MoralisConfig holds the token metadata/price provider credentials.
// APIKey is optional; without it the metadata-backed reads degrade to
// placeholder responses.
type MoralisConfig struct {
	APIKey  string `json:"apiKey,omitempty"`
	BaseURL string `json:"baseUrl"`
}

func defaultMoralisConfig() MoralisConfig {
	return MoralisConfig{BaseURL: "https://solana-gateway.moralis.io"}
}

// TwitterConfig holds the Twitter/X credentials in two tiers:
// app credentials (APIKey/APISecret or BearerToken) enable search,
// the user access token pair additionally enables posting.
type TwitterConfig struct {
	APIKey            string `json:"apiKey,omitempty"`
	APISecret         string `json:"apiSecret,omitempty"`
	AccessToken       string `json:"accessToken,omitempty"`
	AccessTokenSecret string `json:"accessTokenSecret,omitempty"`
	BearerToken       string `json:"bearerToken,omitempty"`
}

// HasAppCredentials reports whether tweet search is possible.
func (t TwitterConfig) HasAppCredentials() bool {
	return t.BearerToken != "" || (t.APIKey != "" && t.APISecret != "")
}

// HasUserCredentials reports whether tweet posting is possible.
func (t TwitterConfig) HasUserCredentials() bool {
	return t.APIKey != "" && t.APISecret != "" &&
		t.AccessToken != "" && t.AccessTokenSecret != ""
}

// Config is the process-wide pumpline configuration. It is loaded once at
// startup and treated as immutable afterwards.
type Config struct {
	Wallet     WalletConfig     `json:"wallet"`
	Solana     SolanaConfig     `json:"solana"`
	PumpPortal PumpPortalConfig `json:"pumpPortal"`
	Moralis    MoralisConfig    `json:"moralis"`
	Twitter    TwitterConfig    `json:"twitter"`
}

// DefaultConfig returns a Config with all endpoint defaults filled in and no
// credentials set.
func DefaultConfig() Config {
	return Config{
		Solana:     defaultSolanaConfig(),
		PumpPortal: defaultPumpPortalConfig(),
		Moralis:    defaultMoralisConfig(),
	}
}

// envVars maps environment variables onto config fields. Env always wins over
// the file so hosts can override a checked-in config.
var envVars = []struct {
	name string
	dst  func(*Config) *string
}{
	{"WALLET_PUBLIC_KEY", func(c *Config) *string { return &c.Wallet.PublicKey }},
	{"WALLET_PRIVATE_KEY", func(c *Config) *string { return &c.Wallet.PrivateKey }},
	{"SOLANA_RPC_URL", func(c *Config) *string { return &c.Solana.RPCURL }},
	{"PUMPPORTAL_TRADE_URL", func(c *Config) *string { return &c.PumpPortal.TradeURL }},
	{"PUMPPORTAL_SEARCH_URL", func(c *Config) *string { return &c.PumpPortal.SearchURL }},
	{"PUMPPORTAL_DATA_URL", func(c *Config) *string { return &c.PumpPortal.DataURL }},
	{"MORALIS_API_KEY", func(c *Config) *string { return &c.Moralis.APIKey }},
	{"TWITTER_API_KEY", func(c *Config) *string { return &c.Twitter.APIKey }},
	{"TWITTER_API_SECRET", func(c *Config) *string { return &c.Twitter.APISecret }},
	{"TWITTER_ACCESS_TOKEN", func(c *Config) *string { return &c.Twitter.AccessToken }},
	{"TWITTER_ACCESS_TOKEN_SECRET", func(c *Config) *string { return &c.Twitter.AccessTokenSecret }},
	{"TWITTER_BEARER_TOKEN", func(c *Config) *string { return &c.Twitter.BearerToken }},
}

// ApplyEnv overlays environment variables onto cfg.
func (c *Config) ApplyEnv() {
	for _, v := range envVars {
		if val := os.Getenv(v.name); val != "" {
			*v.dst(c) = val
		}
	}
}

// Validate checks the loaded configuration. The wallet public key is the only
// hard requirement; every other credential is optional and merely disables the
// tools that depend on it.
func (c *Config) Validate() error {
	if c.Wallet.PublicKey == "" {
		return fmt.Errorf("wallet.publicKey is required (set WALLET_PUBLIC_KEY)")
	}
	if _, err := solana.PublicKeyFromBase58(c.Wallet.PublicKey); err != nil {
		return fmt.Errorf("wallet.publicKey is not a valid base58 public key: %w", err)
	}
	if c.Wallet.PrivateKey != "" {
		if _, err := solana.PrivateKeyFromBase58(c.Wallet.PrivateKey); err != nil {
			return fmt.Errorf("wallet.privateKey is not a valid base58 private key: %w", err)
		}
	}
	return nil
}

// TradingEnabled reports whether a signing key is configured.
func (c *Config) TradingEnabled() bool { return c.Wallet.PrivateKey != "" }
