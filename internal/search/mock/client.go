package mock

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/kotovdv/tweetwatch/internal/search"
)

// Client is a deterministic search.Client for tests and offline runs.
type Client struct {
	Response *search.RawResponse
	Error    error
	Delay    time.Duration

	CallCount     int
	LastQuery     string
	LastLimit     int
	HandledErrors []error

	mu sync.Mutex
}

func New() *Client {
	return &Client{}
}

func (c *Client) WithResponse(resp *search.RawResponse) *Client {
	c.Response = resp
	return c
}

func (c *Client) WithError(err error) *Client {
	c.Error = err
	return c
}

func (c *Client) WithDelay(delay time.Duration) *Client {
	c.Delay = delay
	return c
}

func (c *Client) Fetch(ctx context.Context, query string, limit int) (*search.RawResponse, error) {
	c.mu.Lock()
	c.CallCount++
	c.LastQuery = query
	c.LastLimit = limit
	delay := c.Delay
	err := c.Error
	resp := c.Response
	c.mu.Unlock()

	// Same validation contract as the production client.
	if strings.TrimSpace(query) == "" {
		c.HandleError(search.ErrEmptyQuery)
		return nil, search.ErrEmptyQuery
	}
	if limit <= 0 {
		c.HandleError(search.ErrInvalidLimit)
		return nil, search.ErrInvalidLimit
	}

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	if err != nil {
		c.HandleError(err)
		return nil, err
	}

	if resp == nil {
		resp = &search.RawResponse{}
	}
	return resp, nil
}

func (c *Client) HandleError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.HandledErrors = append(c.HandledErrors, err)
}

func (c *Client) Normalize(raw *search.RawResponse) []search.Post {
	return search.Normalize(raw)
}

func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CallCount = 0
	c.LastQuery = ""
	c.LastLimit = 0
	c.HandledErrors = nil
}
