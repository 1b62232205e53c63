// Package gateway issues authenticated HTTP requests against the reservation
// API. Every response body is parsed and returned together with the ok flag;
// callers must check Result.OK before trusting the body as success data.
// Interpretation of failures is left entirely to the caller: the gateway
// never retries and sets no timeout of its own.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/example/reserva/internal/common"
	"github.com/example/reserva/internal/logging"
)

// TokenSource supplies the current session credential. An empty string means
// no credential is attached.
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a plain function to TokenSource.
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Result is the outcome of a single request that reached the server.
// Body holds the raw response JSON regardless of status.
type Result struct {
	OK     bool
	Status int
	Body   json.RawMessage
}

// Decode unmarshals the response body into v.
func (r *Result) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}

// ErrorMessage extracts the server's {erro} message, falling back to the
// provided text when the body carries none.
func (r *Result) ErrorMessage(fallback string) string {
	var payload struct {
		Erro string `json:"erro"`
	}
	if err := json.Unmarshal(r.Body, &payload); err == nil && strings.TrimSpace(payload.Erro) != "" {
		return payload.Erro
	}
	return fallback
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     logging.Logger
}

// NewClient builds a gateway client for the given base URL. The underlying
// http.Client carries no timeout: a call ends only on response, transport
// failure, or ctx cancellation.
func NewClient(baseURL string, logger logging.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger.With("module", "gateway"),
	}
}

// SetTokenSource installs the credential supplier. Requests made while the
// source yields an empty string go out unauthenticated.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

// Do performs one request. body (when non-nil) is serialized as JSON. The
// returned error is non-nil only for transport-level failures, mapped to
// ErrUnavailable; any HTTP response, success or not, yields a Result.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (*Result, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(common.AccessTokenHeaderName, token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	res := &Result{
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status: resp.StatusCode,
		Body:   json.RawMessage(data),
	}
	if !res.OK {
		c.logger.Debug(ctx, "non-ok response", "method", method, "path", path, "status", resp.StatusCode)
	}
	return res, nil
}
