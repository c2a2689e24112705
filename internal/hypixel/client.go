// Package hypixel is a small client for the Hypixel SkyBlock bazaar price feed.
package hypixel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/keshon/bazaar-bot/pkg/retrylimit"
)

// DefaultBaseURL is the public Hypixel API.
const DefaultBaseURL = "https://api.hypixel.net"

// ErrNoAPIKey is returned when the client is used without a key.
var ErrNoAPIKey = errors.New("hypixel API key is not configured")

// StatusError is a non-2xx answer from the feed.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string   { return fmt.Sprintf("hypixel: unexpected status %s", e.Status) }
func (e *StatusError) StatusCode() int { return e.Code }

// StatusText returns the reason phrase without the numeric prefix.
func (e *StatusError) StatusText() string {
	if _, text, ok := strings.Cut(e.Status, " "); ok {
		return text
	}
	if text := http.StatusText(e.Code); text != "" {
		return text
	}
	return e.Status
}

// Config configures a Client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
	Retry   retrylimit.Config
}

// Client fetches bazaar data.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *retrylimit.AdaptiveLimiter
	retry   retrylimit.Config
}

// NewClient returns a client. Zero config fields fall back to defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry = retrylimit.DefaultConfig()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: retrylimit.NewAdaptiveLimiter(2, 1, 5, 1, 0.5),
		retry:   cfg.Retry,
	}
}

// HasKey reports whether an API key is configured.
func (c *Client) HasKey() bool {
	return c.apiKey != ""
}

// Bazaar fetches the full bazaar snapshot.
func (c *Client) Bazaar(ctx context.Context) (*BazaarData, error) {
	if !c.HasKey() {
		return nil, ErrNoAPIKey
	}

	endpoint := c.baseURL + "/skyblock/bazaar?" + url.Values{"key": {c.apiKey}}.Encode()

	var data BazaarData
	err := retrylimit.Do(ctx, c.limiter, c.retry, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return retrylimit.Fatal(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			_, _ = io.Copy(io.Discard, resp.Body)
			return &StatusError{Code: resp.StatusCode, Status: resp.Status}
		}

		data = BazaarData{}
		if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
			return retrylimit.Fatal(fmt.Errorf("decode bazaar response: %w", err))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch bazaar: %w", err)
	}
	return &data, nil
}
