// HTTP client for the content-automation backend API
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/desertthunder/tubeflow/internal/shared"
	"golang.org/x/time/rate"
)

const defaultBaseURL string = "http://localhost:8000"

// APIClient implements [Backend] over HTTP.
type APIClient struct {
	baseURL       string
	httpClient    *http.Client
	tokens        TokenSource
	limiter       *rate.Limiter
	timeout       time.Duration
	uploadTimeout time.Duration
}

var _ Backend = (*APIClient)(nil)

// APIClientOpts contains configuration options for creating an [APIClient].
type APIClientOpts struct {
	BaseURL       string
	HTTPClient    *http.Client
	Tokens        TokenSource
	RateLimit     float64 // Generation requests per second
	Timeout       time.Duration
	UploadTimeout time.Duration
}

// NewAPIClient creates a new backend API client.
func NewAPIClient(opts APIClientOpts) *APIClient {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UploadTimeout <= 0 {
		opts.UploadTimeout = 10 * time.Minute
	}

	return &APIClient{
		baseURL:       opts.BaseURL,
		httpClient:    opts.HTTPClient,
		tokens:        opts.Tokens,
		limiter:       rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
		timeout:       opts.Timeout,
		uploadTimeout: opts.UploadTimeout,
	}
}

// bearerToken resolves the credential, failing fast when it is absent so no
// network call is attempted without authentication.
func (c *APIClient) bearerToken() (string, error) {
	if c.tokens == nil {
		return "", fmt.Errorf("%w: no token source configured", shared.ErrAuthFailed)
	}
	token, err := c.tokens.Token()
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	if token == "" {
		return "", fmt.Errorf("%w: not signed in", shared.ErrAuthFailed)
	}
	return token, nil
}

// classifyStatus maps an HTTP status code onto a shared error sentinel.
func classifyStatus(status int, detail string) error {
	var class error
	switch {
	case status == http.StatusUnauthorized:
		class = shared.ErrAuthFailed
	case status == http.StatusNotFound:
		class = shared.ErrNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		class = shared.ErrValidation
	case status >= 500:
		class = shared.ErrServer
	default:
		class = shared.ErrServer
	}

	if detail != "" {
		return fmt.Errorf("%w (status %d): %s", class, status, detail)
	}
	return fmt.Errorf("%w: status %d", class, status)
}

// doRequest performs a JSON request against the backend and decodes the
// response into result when non-nil.
//
// Timeouts and transport failures surface as [shared.ErrNetwork].
func (c *APIClient) doRequest(ctx context.Context, method, endpoint string, payload, result any) error {
	return c.doRequestTimeout(ctx, method, endpoint, payload, result, c.timeout)
}

func (c *APIClient) doRequestTimeout(ctx context.Context, method, endpoint string, payload, result any, timeout time.Duration) error {
	token, err := c.bearerToken()
	if err != nil {
		return err
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-ID", shared.GenerateID())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Detail != "" {
			return classifyStatus(resp.StatusCode, errResp.Detail)
		}
		return classifyStatus(resp.StatusCode, "")
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// doGeneration is doRequest behind the generation rate limiter.
func (c *APIClient) doGeneration(ctx context.Context, method, endpoint string, payload, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	return c.doRequest(ctx, method, endpoint, payload, result)
}
