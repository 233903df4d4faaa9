// Package outline implements a minimal client for the Outline knowledge-base
// API. All endpoints are JSON-over-POST; responses share an envelope with an
// ok flag and a data payload.
package outline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"git.home.luguber.info/inful/outbook/internal/foundation/errors"
)

const maxResponseBytes = 20 * 1024 * 1024

// RetryPolicy defines retry behavior for failed API calls.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// DefaultRetryPolicy provides sensible defaults: 3 attempts, exponential backoff starting at 1s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		Backoff:     time.Second,
	}
}

// Client talks to one Outline instance with a fixed API key.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	retry   RetryPolicy
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (used by tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRetryPolicy overrides the default retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

// NewClient creates a client for the given API base URL and key.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		retry: DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the shared response wrapper for all Outline endpoints.
type envelope struct {
	OK     *bool           `json:"ok"`
	Error  string          `json:"error"`
	Data   json.RawMessage `json:"data"`
	Status int             `json:"status"`
}

// CollectionInfo fetches collection metadata.
func (c *Client) CollectionInfo(ctx context.Context, collectionID string) (*Collection, error) {
	var col Collection
	if err := c.post(ctx, "collections.info", map[string]string{"id": collectionID}, &col); err != nil {
		return nil, err
	}
	return &col, nil
}

// CollectionTree fetches the navigation structure for a collection.
func (c *Client) CollectionTree(ctx context.Context, collectionID string) ([]NavigationNode, error) {
	var nodes []NavigationNode
	if err := c.post(ctx, "collections.documents", map[string]string{"id": collectionID}, &nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// DocumentInfo fetches the full content record for one document.
func (c *Client) DocumentInfo(ctx context.Context, documentID string) (*Document, error) {
	var doc Document
	if err := c.post(ctx, "documents.info", map[string]string{"id": documentID}, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Auth verifies the API key by asking who it belongs to.
func (c *Client) Auth(ctx context.Context) (*AuthInfo, error) {
	var info AuthInfo
	if err := c.post(ctx, "auth.info", map[string]string{}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// post performs one logical API call, retrying transient failures according to
// the client's retry policy. Auth (401) and application (ok:false) failures
// are never retried.
func (c *Client) post(ctx context.Context, endpoint string, payload any, out any) error {
	var lastErr error
	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		lastErr = c.postOnce(ctx, endpoint, payload, out)
		if lastErr == nil {
			return nil
		}
		if errors.GetRetryStrategy(lastErr) != errors.RetryBackoff {
			return lastErr
		}
		if attempt < c.retry.MaxAttempts {
			backoff := c.retry.Backoff * time.Duration(1<<uint(attempt-1)) // exponential
			slog.Debug("Retrying after failure",
				slog.String("endpoint", endpoint),
				slog.Int("attempt", attempt),
				slog.Duration("backoff", backoff),
				slog.Any("error", lastErr))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return errors.WrapError(ctx.Err(), errors.CategoryNetwork, "request canceled").Build()
			}
		}
	}
	return lastErr
}

func (c *Client) postOnce(ctx context.Context, endpoint string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "marshal request payload").Build()
	}

	url := c.baseURL + "/" + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "build request").Build()
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WrapError(err, errors.CategoryNetwork, fmt.Sprintf("request to %s failed", endpoint)).
			Retryable().
			WithContext("url", url).
			Build()
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.WrapError(err, errors.CategoryNetwork, fmt.Sprintf("read response from %s", endpoint)).
			Retryable().
			Build()
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return errors.AuthError("authentication failed (HTTP 401)").
			WithContext("endpoint", endpoint).
			Build()
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return errors.NetworkError(fmt.Sprintf("%s returned HTTP %d", endpoint, resp.StatusCode)).Build()
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return errors.APIError(fmt.Sprintf("%s returned HTTP %d", endpoint, resp.StatusCode)).Build()
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return errors.WrapError(err, errors.CategoryAPI, fmt.Sprintf("decode response from %s", endpoint)).Build()
	}
	// ok is absent on some endpoints; only an explicit false signals failure.
	if env.OK != nil && !*env.OK {
		msg := env.Error
		if msg == "" {
			msg = "unknown error"
		}
		return errors.APIError(fmt.Sprintf("%s: %s", endpoint, msg)).Build()
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.WrapError(err, errors.CategoryAPI, fmt.Sprintf("decode %s data", endpoint)).Build()
		}
	}
	return nil
}
