package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lybic/lybic-sdk-go/internal/log"
)

const (
	// DefaultEndpoint is the Lybic API endpoint.
	DefaultEndpoint = "https://api.lybic.cn"
	// DefaultTimeout is the default timeout of non streaming requests.
	DefaultTimeout = 10 * time.Second

	// TrialSessionTokenHeader authenticates trial sessions instead of the API key.
	TrialSessionTokenHeader = "x-trial-session-token"
	apiKeyHeader            = "x-api-key"
)

// Requester sends requests to the Lybic API.
type Requester interface {
	// Do sends a request with in as JSON body (if not nil) and decodes the JSON response into out (if not nil).
	Do(ctx context.Context, method, path string, in, out any) error
	// Stream sends a request and returns the response body without timeout, the caller must close it.
	Stream(ctx context.Context, method, path string, in any) (io.ReadCloser, error)
	// Fetch downloads an absolute URL without API credentials.
	Fetch(ctx context.Context, url string) (data []byte, contentType string, err error)
}

// ClientConfig is the configuration of the API client.
type ClientConfig struct {
	Endpoint     string
	APIKey       string
	ExtraHeaders map[string]string
	// Timeout is applied to every non streaming request.
	Timeout time.Duration
	// MaxRetries is the number of retries of idempotent requests that fail
	// with a network error or a 5xx status.
	MaxRetries int
	RetryDelay time.Duration
	HTTPClient *http.Client
	Logger     log.Logger
}

func (c *ClientConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "api.Client"})

	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	c.Endpoint = strings.TrimSuffix(c.Endpoint, "/")

	if c.APIKey == "" && !hasHeader(c.ExtraHeaders, TrialSessionTokenHeader) {
		return fmt.Errorf("api key is required when %s header is not provided", TrialSessionTokenHeader)
	}

	if c.Timeout < 0 {
		c.Logger.Warningf("Timeout can't be negative, using %s", DefaultTimeout)
		c.Timeout = DefaultTimeout
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}

	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries can't be negative")
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = 500 * time.Millisecond
	}

	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{}
	}

	return nil
}

// Client is the HTTP implementation of Requester. It's safe for concurrent use.
type Client struct {
	endpoint   string
	headers    http.Header
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	httpClient *http.Client
	logger     log.Logger
}

// NewClient returns a new API client.
func NewClient(cfg ClientConfig) (*Client, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	headers := http.Header{}
	for k, v := range cfg.ExtraHeaders {
		headers.Set(k, v)
	}
	if !hasHeader(cfg.ExtraHeaders, TrialSessionTokenHeader) {
		headers.Set(apiKeyHeader, cfg.APIKey)
	}

	return &Client{
		endpoint:   cfg.Endpoint,
		headers:    headers,
		timeout:    cfg.Timeout,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		httpClient: cfg.HTTPClient,
		logger:     cfg.Logger,
	}, nil
}

// Endpoint returns the API endpoint without trailing slash.
func (c *Client) Endpoint() string { return c.endpoint }

// Headers returns a copy of the headers sent on every request.
func (c *Client) Headers() http.Header { return c.headers.Clone() }

func (c *Client) Do(ctx context.Context, method, path string, in, out any) error {
	body, err := encodeBody(in)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Err: err}
	}
	c.logger.Debugf("%s %s: %d", method, path, resp.StatusCode)

	if resp.StatusCode >= 400 {
		return newResponseError(resp.StatusCode, resp.Header.Get("Content-Type"), data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("could not decode %s %s response: %w", method, path, err)
	}

	return nil
}

func (c *Client) Stream(ctx context.Context, method, path string, in any) (io.ReadCloser, error) {
	body, err := encodeBody(in)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		defer resp.Body.Close()
		data, _ := io.ReadAll(resp.Body)
		return nil, newResponseError(resp.StatusCode, resp.Header.Get("Content-Type"), data)
	}

	return resp.Body, nil
}

func (c *Client) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("could not create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &NetworkError{Err: err}
	}
	if resp.StatusCode >= 400 {
		return nil, "", newResponseError(resp.StatusCode, resp.Header.Get("Content-Type"), data)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

// send executes the request retrying idempotent requests on network errors and 5xx responses.
func (c *Client) send(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		req, err := c.newRequest(ctx, method, path, body)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		retry := isIdempotent(method) && attempt < c.maxRetries && (err != nil || resp.StatusCode >= 500)
		if !retry {
			if err != nil {
				return nil, &NetworkError{Err: err}
			}
			return resp, nil
		}

		if resp != nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}
		c.logger.Debugf("Retrying %s %s (attempt %d)", method, path, attempt+1)

		select {
		case <-ctx.Done():
			return nil, &NetworkError{Err: ctx.Err()}
		case <-time.After(c.retryDelay * time.Duration(attempt+1)):
		}
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, r)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	req.Header = c.headers.Clone()
	req.Header.Set("Accept", "application/json")
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

func encodeBody(in any) ([]byte, error) {
	if in == nil {
		return nil, nil
	}
	data, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("could not encode request body: %w", err)
	}
	return data, nil
}

func isIdempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

func hasHeader(headers map[string]string, name string) bool {
	for k := range headers {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}
