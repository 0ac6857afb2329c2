// Package api is the typed client for the study platform backend. Operations
// are grouped by resource family and translate one-to-one into HTTP calls
// against a configured base address. The client keeps no cross-call state:
// callers own whatever caching or staleness policy they need.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/prbarprep/barprep-go/internal/observability"
)

// Client issues requests against the backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	authToken  string
	validate   *validator.Validate
	logger     zerolog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the transport timeout. Zero keeps the transport default,
// which means a hung call blocks until the server gives up.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithAuthToken attaches a bearer token to every request.
func WithAuthToken(token string) Option {
	return func(c *Client) {
		c.authToken = token
	}
}

// New creates a client for the given base address.
func New(baseURL string, validate *validator.Validate, logger zerolog.Logger, opts ...Option) *Client {
	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		validate:   validate,
		logger:     logger.With().Str("component", "api_client").Logger(),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// errorBody matches the backend's error payload shape.
type errorBody struct {
	Detail string `json:"detail"`
}

func (c *Client) validatePayload(payload any) error {
	if err := c.validate.Struct(payload); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// do performs one request/response round trip. A nil out skips body decoding.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, resource, operation string) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &ValidationError{Err: fmt.Errorf("encode request body: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out, resource, operation)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, &ValidationError{Err: err}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Correlation-ID", uuid.NewString())
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	return req, nil
}

func (c *Client) send(req *http.Request, out any, resource, operation string) error {
	opName := resource + "." + operation
	started := time.Now()

	resp, err := c.httpClient.Do(req)
	observability.ClientRequestLatency().WithLabelValues(resource, operation).Observe(time.Since(started).Seconds())
	if err != nil {
		observability.ClientRequests().WithLabelValues(resource, operation, "transport_error").Inc()
		c.logger.Debug().Err(err).Str("operation", opName).Msg("request failed before a response was obtained")
		return &TransportError{Operation: opName, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	observability.ClientRequests().WithLabelValues(resource, operation, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Operation: opName, StatusCode: resp.StatusCode}
		var parsed errorBody
		if decodeErr := json.NewDecoder(resp.Body).Decode(&parsed); decodeErr == nil {
			apiErr.Message = parsed.Detail
		}
		c.logger.Debug().Int("status", resp.StatusCode).Str("operation", opName).Str("detail", apiErr.Message).Msg("server rejected request")
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Operation: opName, Err: fmt.Errorf("decode response body: %w", err)}
	}

	return nil
}
