// Package moralis is the client for the token metadata/price provider.
// All calls hit the Solana gateway with an X-API-Key header.
package moralis

import (
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

// Stage is a token's lifecycle stage on the bonding curve.
type Stage string

const (
	StageBonding   Stage = "bonding"
	StageGraduated Stage = "graduated"
)

// Metadata is the token metadata record.
type Metadata struct {
	Mint     string `json:"mint"`
	Standard string `json:"standard,omitempty"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals string `json:"decimals"`
	Logo     string `json:"logo,omitempty"`
}

// DecimalsInt parses the provider's string-typed decimals field, defaulting
// to 9 when absent or unparseable (the SPL norm for pump.fun tokens).
func (m Metadata) DecimalsInt() int {
	if d, err := strconv.Atoi(m.Decimals); err == nil {
		return d
	}
	return 9
}

// Price is the token price record.
type Price struct {
	USDPrice     float64 `json:"usdPrice"`
	ExchangeName string  `json:"exchangeName,omitempty"`
	NativePrice  struct {
		Value    string `json:"value"`
		Decimals int    `json:"decimals"`
		Symbol   string `json:"symbol"`
	} `json:"nativePrice"`
}

// ListedToken is one entry of a lifecycle-stage listing page.
type ListedToken struct {
	TokenAddress         string `json:"tokenAddress"`
	Name                 string `json:"name"`
	Symbol               string `json:"symbol"`
	Logo                 string `json:"logo,omitempty"`
	Decimals             string `json:"decimals"`
	PriceNative          string `json:"priceNative,omitempty"`
	PriceUSD             string `json:"priceUsd,omitempty"`
	Liquidity            string `json:"liquidity,omitempty"`
	FullyDilutedValue    string `json:"fullyDilutedValuation,omitempty"`
	BondingCurveProgress string `json:"bondingCurveProgress,omitempty"`
	GraduatedAt          string `json:"graduatedAt,omitempty"`
}

// Page is one page of a lifecycle-stage listing.
type Page struct {
	Cursor   string        `json:"cursor,omitempty"`
	Page     int           `json:"page,omitempty"`
	PageSize int           `json:"pageSize,omitempty"`
	Result   []ListedToken `json:"result"`
}

// Client calls the metadata/price provider over HTTP.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client. apiKey must be non-empty; callers model an
// unconfigured provider as a nil client, not an empty key.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// TokenMetadata fetches metadata for one mint.
func (c *Client) TokenMetadata(ctx context.Context, mint string) (*Metadata, error) {
	var m Metadata
	path := fmt.Sprintf("/token/mainnet/%s/metadata", url.PathEscape(mint))
	if err := c.get(ctx, path, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// TokenPrice fetches the current price for one mint.
func (c *Client) TokenPrice(ctx context.Context, mint string) (*Price, error) {
	var p Price
	path := fmt.Sprintf("/token/mainnet/%s/price", url.PathEscape(mint))
	if err := c.get(ctx, path, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByStage fetches one page of tokens in the given lifecycle stage.
// cursor may be empty for the first page.
func (c *Client) ListByStage(ctx context.Context, stage Stage, limit int, cursor string) (*Page, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	path := fmt.Sprintf("/token/mainnet/exchange/pumpfun/%s?%s", stage, q.Encode())

	var p Page
	if err := c.get(ctx, path, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("metadata provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("metadata provider: status %d: %s", resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("metadata provider: %w: %v", ErrMalformedResponse, err)
	}
	return nil
}
