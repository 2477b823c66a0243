// Package dependency wires the pumpline services using go.uber.org/dig.
package dependency

import (
	"fmt"

	"github.com/gagliardetto/solana-go/rpc"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/dig"

	"github.com/pumpline/pumpline/internal/config"
	"github.com/pumpline/pumpline/internal/moralis"
	"github.com/pumpline/pumpline/internal/pumpportal"
	"github.com/pumpline/pumpline/internal/server"
	"github.com/pumpline/pumpline/internal/tools"
	"github.com/pumpline/pumpline/internal/trading"
	"github.com/pumpline/pumpline/internal/twitter"
	"github.com/pumpline/pumpline/internal/wallet"
)

// ServerName and ServerVersion identify the MCP server to hosts.
const (
	ServerName    = "pumpline"
	ServerVersion = "0.1.0"
)

// Container holds the resolved service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	registry *tools.Registry
	mcp      *mcpserver.MCPServer
	trading  *trading.Service
	twitter  *twitter.Client
}

func (c *Container) Registry() *tools.Registry      { return c.registry }
func (c *Container) MCPServer() *mcpserver.MCPServer { return c.mcp }
func (c *Container) Trading() *trading.Service      { return c.trading }
func (c *Container) Twitter() *twitter.Client       { return c.twitter }

// New builds and wires all services from cfg.
func New(cfg *config.Config) (*Container, error) {
	d := dig.New()

	if err := d.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := d.Provide(newPortalClient); err != nil {
		return nil, err
	}
	if err := d.Provide(newMetadataClient); err != nil {
		return nil, err
	}
	if err := d.Provide(newWallet); err != nil {
		return nil, err
	}
	if err := d.Provide(newTradingService); err != nil {
		return nil, err
	}
	if err := d.Provide(newTwitterClient); err != nil {
		return nil, err
	}
	if err := d.Provide(newRegistry); err != nil {
		return nil, err
	}
	if err := d.Provide(newMCPServer); err != nil {
		return nil, err
	}

	c := &Container{}
	err := d.Invoke(func(reg *tools.Registry, mcp *mcpserver.MCPServer, svc *trading.Service, tw *twitter.Client) {
		c.registry = reg
		c.mcp = mcp
		c.trading = svc
		c.twitter = tw
	})
	if err != nil {
		return nil, fmt.Errorf("wire services: %w", err)
	}
	return c, nil
}

func newPortalClient(cfg *config.Config) *pumpportal.Client {
	return pumpportal.NewClient(cfg.PumpPortal.TradeURL, cfg.PumpPortal.SearchURL)
}

// newMetadataClient returns nil when no API key is configured; the trading
// service treats a nil provider as the degraded mode.
func newMetadataClient(cfg *config.Config) *moralis.Client {
	if cfg.Moralis.APIKey == "" {
		return nil
	}
	return moralis.NewClient(cfg.Moralis.APIKey, cfg.Moralis.BaseURL)
}

func newWallet(cfg *config.Config) (*wallet.Wallet, error) {
	return wallet.New(cfg.Wallet.PublicKey, cfg.Wallet.PrivateKey, rpc.New(cfg.Solana.RPCURL))
}

func newTradingService(cfg *config.Config, portal *pumpportal.Client, meta *moralis.Client, w *wallet.Wallet) *trading.Service {
	// A typed nil *moralis.Client must become a nil interface.
	var api trading.MetadataAPI
	if meta != nil {
		api = meta
	}
	return trading.NewService(portal, api, w, cfg.Wallet.PublicKey)
}

func newTwitterClient(cfg *config.Config) *twitter.Client {
	return twitter.NewClient(twitter.Credentials{
		APIKey:            cfg.Twitter.APIKey,
		APISecret:         cfg.Twitter.APISecret,
		AccessToken:       cfg.Twitter.AccessToken,
		AccessTokenSecret: cfg.Twitter.AccessTokenSecret,
		BearerToken:       cfg.Twitter.BearerToken,
	}, "https://api.twitter.com")
}

func newRegistry(svc *trading.Service, tw *twitter.Client) (*tools.Registry, error) {
	reg := tools.NewRegistry()
	if err := server.RegisterTrading(reg, svc); err != nil {
		return nil, err
	}
	if err := server.RegisterTwitter(reg, tw); err != nil {
		return nil, err
	}
	return reg, nil
}

func newMCPServer(reg *tools.Registry) *mcpserver.MCPServer {
	return server.New(ServerName, ServerVersion, reg)
}
