// Package twitter is the client for the social-media provider: recent tweet
// search with app-only auth and tweet posting with OAuth1 user context.
package twitter

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dghubble/oauth1"
)

// ErrNoCredential is returned when an operation's credential tier is not
// configured: app credentials for search, the user access token for posting.
var ErrNoCredential = errors.New("twitter credentials are not configured")

// Tweet is one tweet's metadata.
type Tweet struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	AuthorID string `json:"author_id,omitempty"`
}

// Credentials are the two credential tiers for the provider.
type Credentials struct {
	APIKey            string
	APISecret         string
	AccessToken       string
	AccessTokenSecret string
	BearerToken       string
}

// Client calls the Twitter v2 API.
type Client struct {
	creds      Credentials
	baseURL    string
	httpClient *http.Client
	userClient *http.Client // OAuth1-signing client, nil without user credentials

	mu     sync.Mutex
	bearer string // app-only token, fetched lazily when not configured directly
}

// NewClient creates a Client for the given credentials. baseURL is the API
// root (https://api.twitter.com in production; tests point it at a stub).
func NewClient(creds Credentials, baseURL string) *Client {
	c := &Client{
		creds:      creds,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		bearer:     creds.BearerToken,
	}
	if creds.APIKey != "" && creds.APISecret != "" && creds.AccessToken != "" && creds.AccessTokenSecret != "" {
		cfg := oauth1.NewConfig(creds.APIKey, creds.APISecret)
		token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)
		c.userClient = cfg.Client(oauth1.NoContext, token)
		c.userClient.Timeout = 30 * time.Second
	}
	return c
}

// CanSearch reports whether the search credential tier is configured.
func (c *Client) CanSearch() bool {
	return c.creds.BearerToken != "" || (c.creds.APIKey != "" && c.creds.APISecret != "")
}

// CanPost reports whether the posting credential tier is configured.
func (c *Client) CanPost() bool { return c.userClient != nil }

// SearchTweets returns up to count recent tweets matching query.
func (c *Client) SearchTweets(ctx context.Context, query string, count int) ([]Tweet, error) {
	if !c.CanSearch() {
		return nil, fmt.Errorf("%w: app key/secret or bearer token required for search", ErrNoCredential)
	}
	bearer, err := c.appBearer(ctx)
	if err != nil {
		return nil, err
	}

	// The recent-search endpoint accepts max_results in [10, 100].
	if count < 10 {
		count = 10
	}
	if count > 100 {
		count = 100
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("max_results", strconv.Itoa(count))
	q.Set("tweet.fields", "author_id")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/2/tweets/search/recent?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tweet search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("tweet search: status %d: %s", resp.StatusCode, body)
	}

	var out struct {
		Data []Tweet `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("tweet search: decode response: %w", err)
	}
	return out.Data, nil
}

// PostTweet posts text from the configured user account and returns the
// created tweet.
func (c *Client) PostTweet(ctx context.Context, text string) (*Tweet, error) {
	if c.userClient == nil {
		return nil, fmt.Errorf("%w: access token required for posting", ErrNoCredential)
	}

	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/2/tweets", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.userClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post tweet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("post tweet: status %d: %s", resp.StatusCode, respBody)
	}

	var out struct {
		Data Tweet `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("post tweet: decode response: %w", err)
	}
	return &out.Data, nil
}

// appBearer returns the app-only bearer token, fetching it once from the
// token endpoint when only key/secret are configured.
func (c *Client) appBearer(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bearer != "" {
		return c.bearer, nil
	}

	form := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oauth2/token", form)
	if err != nil {
		return "", err
	}
	basic := base64.StdEncoding.EncodeToString(
		[]byte(url.QueryEscape(c.creds.APIKey) + ":" + url.QueryEscape(c.creds.APISecret)))
	req.Header.Set("Authorization", "Basic "+basic)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("app token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("app token: status %d: %s", resp.StatusCode, body)
	}

	var out struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("app token: decode response: %w", err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("app token: empty access_token in response")
	}
	c.bearer = out.AccessToken
	return c.bearer, nil
}
