// Package trading composes the trading-data provider, the optional metadata
// provider and the wallet into the token operation set: search, lifecycle
// listings, info/price lookups and buy/sell.
//
// Read operations degrade to annotated placeholder data when the metadata
// provider is missing or failing; write operations never degrade and surface
// every pipeline failure verbatim.
package trading

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/pumpline/pumpline/internal/moralis"
	"github.com/pumpline/pumpline/internal/pumpportal"
)

// ErrTradingUnavailable is returned by Buy/Sell when no signing key is
// configured. The check runs before any network call. The message text is
// part of the tool contract, hence the full sentence.
var ErrTradingUnavailable = errors.New("Wallet private key is not configured. Trading is not available.")

// PortalAPI is the trading-data provider surface the service needs.
type PortalAPI interface {
	SearchTokens(ctx context.Context, query string) ([]pumpportal.Token, error)
	BuildTrade(ctx context.Context, tr pumpportal.TradeRequest) ([]byte, error)
}

// MetadataAPI is the metadata/price provider surface the service needs.
type MetadataAPI interface {
	TokenMetadata(ctx context.Context, mint string) (*moralis.Metadata, error)
	TokenPrice(ctx context.Context, mint string) (*moralis.Price, error)
	ListByStage(ctx context.Context, stage moralis.Stage, limit int, cursor string) (*moralis.Page, error)
}

// Signer is the wallet surface the service needs.
type Signer interface {
	Configured() bool
	SignAndSend(ctx context.Context, raw []byte) (string, error)
}

// Service is the trading orchestrator.
type Service struct {
	portal    PortalAPI
	meta      MetadataAPI // nil when the metadata provider is unconfigured
	signer    Signer
	publicKey string
}

// NewService creates a Service. meta may be nil: the read operations then
// return placeholder data with an explanatory note.
func NewService(portal PortalAPI, meta MetadataAPI, signer Signer, publicKey string) *Service {
	return &Service{portal: portal, meta: meta, signer: signer, publicKey: publicKey}
}

// SearchTokens searches the trading-data provider. No local filtering or
// ranking is applied.
func (s *Service) SearchTokens(ctx context.Context, query string) ([]TokenInfo, error) {
	tokens, err := s.portal.SearchTokens(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]TokenInfo, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, TokenInfo{
			Address:   t.Mint,
			Name:      t.Name,
			Symbol:    t.Symbol,
			Decimals:  9,
			MarketCap: t.USDMarketCap,
			Image:     t.ImageURI,
		})
	}
	return out, nil
}

// ListByStage returns one page of tokens in the given lifecycle stage. When
// the metadata provider is missing or fails, it returns a single synthetic
// entry annotated with the reason instead of an error.
func (s *Service) ListByStage(ctx context.Context, stage moralis.Stage, limit int, cursor string) (*StagePage, error) {
	if limit <= 0 {
		limit = 100
	}
	if s.meta == nil {
		return placeholderPage(stage, "metadata provider not configured; set MORALIS_API_KEY for live listings"), nil
	}

	page, err := s.meta.ListByStage(ctx, stage, limit, cursor)
	if err != nil {
		slog.Warn("stage listing failed, returning placeholder", "stage", stage, "err", err)
		return placeholderPage(stage, fmt.Sprintf("metadata provider unavailable: %v", err)), nil
	}

	out := &StagePage{Stage: string(stage), Cursor: page.Cursor}
	for _, t := range page.Result {
		out.Tokens = append(out.Tokens, StageToken{
			Address:              t.TokenAddress,
			Name:                 t.Name,
			Symbol:               t.Symbol,
			Logo:                 t.Logo,
			PriceUSD:             t.PriceUSD,
			Liquidity:            t.Liquidity,
			FullyDilutedValue:    t.FullyDilutedValue,
			BondingCurveProgress: t.BondingCurveProgress,
			GraduatedAt:          t.GraduatedAt,
		})
	}
	return out, nil
}

func placeholderPage(stage moralis.Stage, note string) *StagePage {
	return &StagePage{
		Stage: string(stage),
		Tokens: []StageToken{{
			Address: "placeholder",
			Name:    "Example Token",
			Symbol:  "EXAMPLE",
		}},
		Note: note,
	}
}

// TokenInfo looks up metadata for one mint, falling back to a minimal
// annotated record when the provider is missing or fails.
func (s *Service) TokenInfo(ctx context.Context, mint string) (*TokenInfo, error) {
	if s.meta == nil {
		return placeholderInfo(mint, "metadata provider not configured; set MORALIS_API_KEY for live metadata"), nil
	}
	m, err := s.meta.TokenMetadata(ctx, mint)
	if err != nil {
		slog.Warn("token metadata lookup failed, returning placeholder", "mint", mint, "err", err)
		return placeholderInfo(mint, fmt.Sprintf("metadata provider unavailable: %v", err)), nil
	}
	return &TokenInfo{
		Address:  mint,
		Name:     m.Name,
		Symbol:   m.Symbol,
		Decimals: m.DecimalsInt(),
		Image:    m.Logo,
	}, nil
}

func placeholderInfo(mint, note string) *TokenInfo {
	return &TokenInfo{
		Address:  mint,
		Name:     "Unknown Token",
		Symbol:   "UNKNOWN",
		Decimals: 9,
		Note:     note,
	}
}

// TokenPrice looks up the price for one mint, with the same fallback pattern
// as TokenInfo.
func (s *Service) TokenPrice(ctx context.Context, mint string) (*PriceInfo, error) {
	if s.meta == nil {
		return &PriceInfo{Address: mint, Note: "metadata provider not configured; set MORALIS_API_KEY for live prices"}, nil
	}
	p, err := s.meta.TokenPrice(ctx, mint)
	if err != nil {
		slog.Warn("token price lookup failed, returning placeholder", "mint", mint, "err", err)
		return &PriceInfo{Address: mint, Note: fmt.Sprintf("metadata provider unavailable: %v", err)}, nil
	}
	return &PriceInfo{
		Address:     mint,
		USDPrice:    p.USDPrice,
		NativePrice: p.NativePrice.Value,
		Exchange:    p.ExchangeName,
	}, nil
}

// Buy spends solAmount SOL on the given mint. The pipeline is build → sign →
// submit; every stage surfaces its own failure. Status "sent" means submitted,
// not confirmed.
func (s *Service) Buy(ctx context.Context, mint string, solAmount float64, opts TradeOpts) (*TxResult, error) {
	if !s.signer.Configured() {
		return nil, ErrTradingUnavailable
	}
	amount := strconv.FormatFloat(solAmount, 'f', -1, 64)
	sig, err := s.executeTrade(ctx, "buy", mint, amount, true, opts)
	if err != nil {
		return nil, err
	}
	slog.Info("buy submitted", "mint", mint, "solAmount", solAmount, "signature", sig)
	return &TxResult{
		Success:     true,
		Signature:   sig,
		Mint:        mint,
		Amount:      amount,
		AmountSol:   solAmount,
		Status:      "sent",
		ExplorerURL: "https://solscan.io/tx/" + sig,
	}, nil
}

// Sell sells tokenAmount of the given mint. tokenAmount is denominated in the
// token and may be a percentage string such as "100%", which is passed through
// to the provider unmodified; the percentage is resolved remotely against the
// held balance.
func (s *Service) Sell(ctx context.Context, mint, tokenAmount string, opts TradeOpts) (*TxResult, error) {
	if !s.signer.Configured() {
		return nil, ErrTradingUnavailable
	}
	sig, err := s.executeTrade(ctx, "sell", mint, tokenAmount, false, opts)
	if err != nil {
		return nil, err
	}
	slog.Info("sell submitted", "mint", mint, "tokenAmount", tokenAmount, "signature", sig)
	return &TxResult{
		Success:     true,
		Signature:   sig,
		Mint:        mint,
		Amount:      tokenAmount,
		Status:      "sent",
		ExplorerURL: "https://solscan.io/tx/" + sig,
	}, nil
}

func (s *Service) executeTrade(ctx context.Context, action, mint, amount string, inSol bool, opts TradeOpts) (string, error) {
	raw, err := s.portal.BuildTrade(ctx, pumpportal.TradeRequest{
		PublicKey:        s.publicKey,
		Action:           action,
		Mint:             mint,
		Amount:           amount,
		DenominatedInSol: inSol,
		SlippagePct:      opts.SlippagePct,
		PriorityFee:      opts.PriorityFee,
		Pool:             opts.Pool,
	})
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", action, mint, err)
	}
	sig, err := s.signer.SignAndSend(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", action, mint, err)
	}
	return sig, nil
}
