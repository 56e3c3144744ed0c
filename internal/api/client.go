// Package api implements the client for the upstream smecert REST API.
//
// Every request carries the current access token when one is present. A 401
// on a first attempt triggers the refresh flow: the refresh token is traded
// for a new access token and the original request is replayed exactly once.
// The attempt counter travels through the call chain instead of being set on
// a shared request descriptor, so a 401 on the replay simply surfaces.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/me/smecert/internal/logging"
	"github.com/me/smecert/internal/token"
	"github.com/me/smecert/pkg/model"
)

// DefaultTimeout matches the transport default of the original web client.
const DefaultTimeout = 10 * time.Second

// Client talks to the upstream REST API on behalf of one token source.
// The web app binds a fresh Client per request (cheap struct, shared
// http.Client); the CLI holds one for the whole run.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     token.Source
	logger     *slog.Logger
}

// Option configures optional Client dependencies.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the transport timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a client for the API at baseURL, reading and persisting
// tokens through src.
func NewClient(baseURL string, src token.Source, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = logging.Discard()
	}
	c := &Client{
		baseURL:    trimSlash(baseURL),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		tokens:     src,
		logger:     logger.With("component", "api-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured upstream base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

// do executes one API call, decoding a 2xx JSON body into out (may be nil).
// attempt 0 is the original request; after a successful refresh the request
// is replayed with attempt 1, which never refreshes again.
func (c *Client) do(ctx context.Context, method, path string, body, out any, attempt int) error {
	data, err := c.roundTrip(ctx, method, path, body, attempt)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// roundTrip performs the request/refresh/replay cycle and returns the raw
// 2xx body.
func (c *Client) roundTrip(ctx context.Context, method, path string, body any, attempt int) ([]byte, error) {
	resp, data, err := c.send(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && attempt == 0 {
		if retried, rdata, rerr := c.refreshAndReplay(ctx, method, path, body, resp, data); retried {
			return rdata, rerr
		}
		// No refresh token: nothing to retry with. The original 401
		// surfaces, tagged so callers can tell "never logged in" apart
		// from a failed refresh.
		return nil, fmt.Errorf("%w: %w", model.ErrNotAuthenticated, newAPIError(resp.StatusCode, data))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, data)
	}
	return data, nil
}

// send issues a single HTTP request with the current access token attached.
func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, []byte, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	pair, err := c.tokens.Pair()
	if err != nil {
		return nil, nil, fmt.Errorf("load tokens: %w", err)
	}
	if pair.Access != "" {
		req.Header.Set("Authorization", "Bearer "+pair.Access)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, &model.NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &model.NetworkError{Op: method + " " + path, Err: err}
	}
	return resp, data, nil
}

// refreshAndReplay runs the refresh flow for a 401 response. It reports
// whether a refresh was attempted at all; when no refresh token exists the
// caller surfaces the original error.
func (c *Client) refreshAndReplay(ctx context.Context, method, path string, body any, orig *http.Response, origBody []byte) (bool, []byte, error) {
	pair, err := c.tokens.Pair()
	if err != nil {
		return true, nil, fmt.Errorf("load tokens: %w", err)
	}
	if pair.Refresh == "" {
		return false, nil, nil
	}

	c.logger.Debug("access token rejected, refreshing", "path", path)

	access, err := c.Refresh(ctx, pair.Refresh)
	if err != nil {
		// The pair is spent: clear it so the caller ends up anonymous
		// instead of retrying with a dead access token.
		if cerr := c.tokens.Clear(); cerr != nil {
			c.logger.Error("clear tokens after failed refresh", "error", cerr)
		}
		return true, nil, fmt.Errorf("%w: %w", model.ErrSessionExpired, err)
	}
	if err := c.tokens.SetAccess(access); err != nil {
		return true, nil, fmt.Errorf("persist refreshed token: %w", err)
	}

	data, err := c.roundTrip(ctx, method, path, body, 1)
	return true, data, err
}

// get is a convenience wrapper for GET endpoints.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, 0)
}

// post is a convenience wrapper for POST endpoints.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, 0)
}

// listEnvelope is the paginated list shape used by the upstream API.
type listEnvelope[T any] struct {
	Count   int `json:"count"`
	Results []T `json:"results"`
}

// decodeList accepts both flat arrays and paginated envelopes, the way the
// original client handled `data.results || data`.
func decodeList[T any](data []byte) ([]T, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var flat []T
	if err := json.Unmarshal(data, &flat); err == nil {
		return flat, nil
	}
	var env listEnvelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}
	return env.Results, nil
}
