package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

const (
	testPubKey  = "9C6hybhQ6Aycep9jaUnP6uL9ZYvDjUp1aSkFWPUFJtpj"
	testPrivKey = "2Ana1pUpv2ZbMVkwF5FXapYeBEjdxDatLn7nvJkhgTSdZd8hbDHTd21as7EAsg7ypityqfsw2pMQKJcVDVcAEsd"
)

func writeConfig(t *testing.T, dir string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	def := DefaultConfig()
	if cfg.Solana.RPCURL != def.Solana.RPCURL {
		t.Errorf("expected default RPC URL %q, got %q", def.Solana.RPCURL, cfg.Solana.RPCURL)
	}
	if cfg.PumpPortal.TradeURL != def.PumpPortal.TradeURL {
		t.Errorf("expected default trade URL %q, got %q", def.PumpPortal.TradeURL, cfg.PumpPortal.TradeURL)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), map[string]any{
		"wallet": map[string]any{"publicKey": testPubKey},
		"solana": map[string]any{"rpcUrl": "https://rpc.example.com"},
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Wallet.PublicKey != testPubKey {
		t.Errorf("expected public key %q, got %q", testPubKey, cfg.Wallet.PublicKey)
	}
	if cfg.Solana.RPCURL != "https://rpc.example.com" {
		t.Errorf("expected custom RPC URL, got %q", cfg.Solana.RPCURL)
	}
	// Unset sections keep their defaults.
	if cfg.Moralis.BaseURL != DefaultConfig().Moralis.BaseURL {
		t.Errorf("expected default moralis base URL, got %q", cfg.Moralis.BaseURL)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not valid json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, t.TempDir(), map[string]any{
		"wallet": map[string]any{"publicKey": "file-key"},
	})
	t.Setenv("WALLET_PUBLIC_KEY", testPubKey)
	t.Setenv("MORALIS_API_KEY", "env-moralis")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Wallet.PublicKey != testPubKey {
		t.Errorf("env should override file, got %q", cfg.Wallet.PublicKey)
	}
	if cfg.Moralis.APIKey != "env-moralis" {
		t.Errorf("expected moralis key from env, got %q", cfg.Moralis.APIKey)
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing public key")
	}

	cfg.Wallet.PublicKey = "not-base58!!!"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for malformed public key")
	}

	cfg.Wallet.PublicKey = testPubKey
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error for valid public key: %v", err)
	}
	if cfg.TradingEnabled() {
		t.Error("trading should be disabled without a private key")
	}

	cfg.Wallet.PrivateKey = "bogus"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for malformed private key")
	}

	cfg.Wallet.PrivateKey = testPrivKey
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error for valid private key: %v", err)
	}
	if !cfg.TradingEnabled() {
		t.Error("trading should be enabled with a private key")
	}
}

func TestTwitterCredentialTiers(t *testing.T) {
	var tw TwitterConfig
	if tw.HasAppCredentials() || tw.HasUserCredentials() {
		t.Error("empty config should have no credential tier")
	}

	tw.BearerToken = "b"
	if !tw.HasAppCredentials() {
		t.Error("bearer token alone should enable search")
	}
	if tw.HasUserCredentials() {
		t.Error("bearer token alone should not enable posting")
	}

	tw = TwitterConfig{APIKey: "k", APISecret: "s"}
	if !tw.HasAppCredentials() {
		t.Error("app key/secret should enable search")
	}

	tw.AccessToken = "at"
	tw.AccessTokenSecret = "ats"
	if !tw.HasUserCredentials() {
		t.Error("full credential set should enable posting")
	}
}
