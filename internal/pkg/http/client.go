package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/mashaweer/mashaweer/internal/pkg/logger"
	nr "github.com/mashaweer/mashaweer/internal/pkg/newrelic"
)

// DefaultTimeout for HTTP requests
const DefaultTimeout = 30 * time.Second

// Config configures a Client
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	ServiceName string
	// Headers are sent with every request, typically credentials
	Headers map[string]string
}

// StatusError is returned when the remote answers with a 4xx or 5xx status
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error: %d %s", e.StatusCode, strings.TrimSpace(string(e.Body)))
}

// Client is an HTTP client for JSON and upload calls to a single remote API
type Client struct {
	baseURL     string
	serviceName string
	headers     map[string]string
	httpClient  *nethttp.Client
}

// NewClient creates a new HTTP client
func NewClient(config Config) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL:     strings.TrimRight(config.BaseURL, "/"),
		serviceName: config.ServiceName,
		headers:     config.Headers,
		httpClient:  &nethttp.Client{Timeout: timeout},
	}
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PostJSON posts body as JSON and decodes the JSON response into result
func (c *Client) PostJSON(ctx context.Context, endpoint string, body interface{}, result interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	respBody, err := c.Do(ctx, nethttp.MethodPost, endpoint, "application/json", bytes.NewReader(payload), nil)
	if err != nil {
		return err
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// Do sends a request with the given content type and returns the response body.
// Statuses of 400 and above are returned as *StatusError.
func (c *Client) Do(ctx context.Context, method, endpoint, contentType string, body io.Reader, headers map[string]string) ([]byte, error) {
	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")

	req, err := nethttp.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	logger.Debug("Making HTTP request",
		logger.String("method", method),
		logger.String("url", url),
		logger.String("service", c.serviceName))

	resp, err := nr.InstrumentHTTPRequest(ctx, req, func() (*nethttp.Response, error) {
		return c.httpClient.Do(req)
	})
	if err != nil {
		logger.Error("HTTP request failed",
			logger.String("method", method),
			logger.String("url", url),
			logger.String("service", c.serviceName),
			logger.ErrorField(err))
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	logger.Debug("HTTP request completed",
		logger.String("method", method),
		logger.String("url", url),
		logger.Int("status_code", resp.StatusCode))

	if resp.StatusCode >= 400 {
		return respBody, &StatusError{StatusCode: resp.StatusCode, Body: respBody}
	}
	return respBody, nil
}
