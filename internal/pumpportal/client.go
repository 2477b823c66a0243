// Package pumpportal is the client for the pump.fun trading-data provider:
// token search against the frontend API and local (unsigned) trade
// transaction construction against PumpPortal.
package pumpportal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrMalformedResponse marks a provider response whose shape could not be
// decoded into the expected type.
var ErrMalformedResponse = errors.New("malformed provider response")

// Token is one search result from the frontend API.
type Token struct {
	Mint         string  `json:"mint"`
	Name         string  `json:"name"`
	Symbol       string  `json:"symbol"`
	Description  string  `json:"description,omitempty"`
	ImageURI     string  `json:"image_uri,omitempty"`
	USDMarketCap float64 `json:"usd_market_cap,omitempty"`
	Complete     bool    `json:"complete,omitempty"`
}

// TradeRequest parameterizes an unsigned trade transaction.
// Amount is a string on purpose: sell orders accept percentage amounts like
// "100%" which the provider resolves against the held balance remotely.
type TradeRequest struct {
	PublicKey        string
	Action           string // "buy" or "sell"
	Mint             string
	Amount           string
	DenominatedInSol bool
	SlippagePct      float64
	PriorityFee      float64
	Pool             string
}

// Client calls the trading-data provider over HTTP.
type Client struct {
	tradeURL   string
	searchURL  string
	httpClient *http.Client
}

// NewClient creates a Client for the given endpoints.
func NewClient(tradeURL, searchURL string) *Client {
	return &Client{
		tradeURL:   tradeURL,
		searchURL:  searchURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SearchTokens queries the frontend API for tokens matching query.
func (c *Client) SearchTokens(ctx context.Context, query string) ([]Token, error) {
	u := fmt.Sprintf("%s?searchTerm=%s&limit=10", c.searchURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("token search: status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var tokens []Token
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("token search: %w: %v", ErrMalformedResponse, err)
	}
	return tokens, nil
}

// BuildTrade requests an unsigned, serialized trade transaction from the
// provider and returns its raw bytes. The caller deserializes, signs and
// submits it; this call has no side effect on chain.
func (c *Client) BuildTrade(ctx context.Context, tr TradeRequest) ([]byte, error) {
	payload := map[string]any{
		"publicKey":        tr.PublicKey,
		"action":           tr.Action,
		"mint":             tr.Mint,
		"amount":           tradeAmount(tr.Amount),
		"denominatedInSol": strconv.FormatBool(tr.DenominatedInSol),
		"slippage":         tr.SlippagePct,
		"priorityFee":      tr.PriorityFee,
		"pool":             tr.Pool,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tradeURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("build trade: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("build trade: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("build trade: status %d: %s", resp.StatusCode, bytes.TrimSpace(raw))
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("build trade: %w: empty transaction", ErrMalformedResponse)
	}
	return raw, nil
}

// tradeAmount sends numeric amounts as numbers and everything else (notably
// percentage strings) verbatim.
func tradeAmount(s string) any {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
