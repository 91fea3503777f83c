package search

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	ErrEmptyQuery   = errors.New("query must not be empty")
	ErrInvalidLimit = errors.New("limit must be positive")
	ErrMissingToken = errors.New("bearer token is required")
)

// Client is the contract shared by the production Twitter client and the
// deterministic mock. Implementations validate their own inputs; Fetch
// returns the provider response as-is, normalization is a separate step.
type Client interface {
	Fetch(ctx context.Context, query string, limit int) (*RawResponse, error)
	HandleError(err error)
	Normalize(raw *RawResponse) []Post
}

// RawResponse is the provider's recent-search body, decoded but untouched.
// Data may be absent entirely; that is a valid empty result, not a fault.
type RawResponse struct {
	Data []RawPost `json:"data"`
}

type RawPost struct {
	ID               string           `json:"id"`
	Text             string           `json:"text"`
	CreatedAt        string           `json:"created_at"`
	AuthorID         string           `json:"author_id"`
	PublicMetrics    json.RawMessage  `json:"public_metrics"`
	ReferencedTweets []ReferencedPost `json:"referenced_tweets,omitempty"`
}

type ReferencedPost struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// Post is the normalized internal representation, decoupled from provider
// field naming. ReferencedPosts is never nil.
type Post struct {
	ID              string           `json:"id"`
	Text            string           `json:"text"`
	CreatedAt       string           `json:"createdAt"`
	AuthorID        string           `json:"authorId"`
	Metrics         json.RawMessage  `json:"metrics"`
	ReferencedPosts []ReferencedPost `json:"referencedPosts"`
}

// Normalize maps a raw provider response to the stable internal shape. Pure:
// no side effects, safe to call repeatedly on the same input. A nil response
// or missing data collection yields an empty slice, never an error.
func Normalize(raw *RawResponse) []Post {
	if raw == nil || raw.Data == nil {
		return []Post{}
	}

	posts := make([]Post, len(raw.Data))
	for i, r := range raw.Data {
		refs := r.ReferencedTweets
		if refs == nil {
			refs = []ReferencedPost{}
		}
		posts[i] = Post{
			ID:              r.ID,
			Text:            r.Text,
			CreatedAt:       r.CreatedAt,
			AuthorID:        r.AuthorID,
			Metrics:         r.PublicMetrics,
			ReferencedPosts: refs,
		}
	}
	return posts
}
