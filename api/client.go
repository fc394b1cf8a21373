package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"intranet/metrics"
)

// Client issues JSON requests against the intranet backend. It adds no
// timeout and no retry; cancellation comes from the caller's context.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient builds a client resolving endpoints against baseURL. An empty
// baseURL means endpoints must be absolute URLs.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		httpClient: http.DefaultClient,
		logger:     zap.NewNop(),
	}
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
		}
		c.baseURL = u
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c, nil
}

func Get[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	return do[T](ctx, c, http.MethodGet, endpoint, nil, false)
}

func Post[T any](ctx context.Context, c *Client, endpoint string, data any) (T, error) {
	return do[T](ctx, c, http.MethodPost, endpoint, data, true)
}

func Patch[T any](ctx context.Context, c *Client, endpoint string, data any) (T, error) {
	return do[T](ctx, c, http.MethodPatch, endpoint, data, true)
}

func Delete[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	return do[T](ctx, c, http.MethodDelete, endpoint, nil, false)
}

func (c *Client) resolve(endpoint string) (string, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	if c.baseURL == nil {
		return ref.String(), nil
	}
	return c.baseURL.ResolveReference(ref).String(), nil
}

func do[T any](ctx context.Context, c *Client, method, endpoint string, data any, withBody bool) (T, error) {
	var out T

	target, err := c.resolve(endpoint)
	if err != nil {
		return out, err
	}

	var body io.Reader
	if withBody {
		payload, err := json.Marshal(data)
		if err != nil {
			return out, fmt.Errorf("encode %s %s body: %w", method, endpoint, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return out, fmt.Errorf("build %s %s request: %w", method, endpoint, err)
	}
	if withBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.APIRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(method, "transport_error").Inc()
		c.logger.Warn("api request failed",
			zap.String("method", method), zap.String("endpoint", endpoint), zap.Error(err))
		return out, &RequestError{Method: method, Endpoint: endpoint, Message: FallbackMessage, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(method, "transport_error").Inc()
		return out, &RequestError{Method: method, Endpoint: endpoint, Message: FallbackMessage, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.APIRequestsTotal.WithLabelValues(method, "http_error").Inc()
		reqErr := &RequestError{
			Method:     method,
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    FallbackMessage,
		}
		if method != http.MethodGet {
			reqErr.Body = raw
			reqErr.Message = detailMessage(raw)
		}
		c.logger.Warn("api request rejected",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("message", reqErr.Message))
		return out, reqErr
	}

	metrics.APIRequestsTotal.WithLabelValues(method, "ok").Inc()
	c.logger.Debug("api request",
		zap.String("method", method), zap.String("endpoint", endpoint), zap.Int("status", resp.StatusCode))

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %s %s response: %w", method, endpoint, err)
	}
	return out, nil
}
