package twitter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kotovdv/tweetwatch/internal/metrics"
	"github.com/kotovdv/tweetwatch/internal/search"
)

const (
	defaultBaseURL = "https://api.twitter.com/2"
	defaultTimeout = 30 * time.Second

	// Field selection is fixed per request; it is not configurable per call.
	tweetFields = "created_at,author_id,public_metrics,referenced_tweets"
)

type Config struct {
	BearerToken string
	BaseURL     string
	Timeout     time.Duration
}

type Client struct {
	bearerToken string
	baseURL     string
	client      *http.Client
	logger      *zap.Logger
	metrics     *metrics.Metrics
}

// New builds the production client. An absent bearer token is a
// construction-time fault, not deferred to the first call.
func New(cfg Config, logger *zap.Logger, m *metrics.Metrics) (*Client, error) {
	if cfg.BearerToken == "" {
		return nil, search.ErrMissingToken
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	return &Client{
		bearerToken: cfg.BearerToken,
		baseURL:     cfg.BaseURL,
		client:      &http.Client{Timeout: cfg.Timeout},
		logger:      logger,
		metrics:     m,
	}, nil
}

// Fetch runs one recent-search request and returns the provider body as-is.
// Exactly one dispatch, no retry; resilience belongs to the caller. Every
// failing path passes through HandleError and then propagates the identical
// error, unwrapped.
func (c *Client) Fetch(ctx context.Context, query string, limit int) (*search.RawResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		c.HandleError(search.ErrEmptyQuery)
		return nil, search.ErrEmptyQuery
	}
	if limit <= 0 {
		c.HandleError(search.ErrInvalidLimit)
		return nil, search.ErrInvalidLimit
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("max_results", strconv.Itoa(limit))
	params.Set("tweet.fields", tweetFields)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/tweets/search/recent?"+params.Encode(), nil)
	if err != nil {
		err = fmt.Errorf("create request: %w", err)
		c.HandleError(err)
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	if c.metrics != nil {
		c.metrics.IncRequestsInFlight()
		defer c.metrics.DecRequestsInFlight()
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.recordRequest("error", start)
		c.HandleError(err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &search.APIError{
			StatusCode: resp.StatusCode,
			Reason:     reasonPhrase(resp),
		}
		c.recordRequest(strconv.Itoa(resp.StatusCode), start)
		c.HandleError(apiErr)
		return nil, apiErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("read response: %w", err)
		c.recordRequest("error", start)
		c.HandleError(err)
		return nil, err
	}

	var raw search.RawResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		err = fmt.Errorf("unmarshal response: %w", err)
		c.recordRequest("error", start)
		c.HandleError(err)
		return nil, err
	}

	c.recordRequest("ok", start)
	return &raw, nil
}

// HandleError is strictly observational: it logs the raw error, adds a
// category-specific diagnostic for auth and rate-limit failures, and counts
// the failure. It never suppresses propagation.
func (c *Client) HandleError(err error) {
	if err == nil {
		return
	}

	c.logger.Error("search request failed", zap.Error(err))

	category := search.Classify(err)
	switch category {
	case search.CategoryUnauthorized:
		c.logger.Error("Authentication failed — check API credentials.")
	case search.CategoryRateLimited:
		c.logger.Error("Rate limit exceeded — retry later.")
	}

	if c.metrics != nil {
		c.metrics.RecordSearchError(string(category))
	}
}

func (c *Client) Normalize(raw *search.RawResponse) []search.Post {
	return search.Normalize(raw)
}

func (c *Client) recordRequest(status string, start time.Time) {
	if c.metrics != nil {
		c.metrics.RecordSearchRequest(status, time.Since(start))
	}
}

// reasonPhrase extracts the provider-supplied reason from the status line,
// falling back to the standard text when the line carries none.
func reasonPhrase(resp *http.Response) string {
	prefix := strconv.Itoa(resp.StatusCode) + " "
	if strings.HasPrefix(resp.Status, prefix) {
		if reason := resp.Status[len(prefix):]; reason != "" {
			return reason
		}
	}
	return http.StatusText(resp.StatusCode)
}
