package skypoint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/skypointsocial/skypoint/domain"
	"github.com/skypointsocial/skypoint/infra/auth"
)

const (
	requestsPerSecond = 10
	requestBurst      = 20
)

// Client is a thin HTTP wrapper for the SkyPoint API.
// It handles base URL construction, bearer token injection, request ids and
// outbound throttling.
type Client struct {
	baseURL       string
	tokenProvider auth.TokenProvider
	http          *http.Client
	limiter       *rate.Limiter
	logger        *slog.Logger
}

// NewClient creates a SkyPoint API client. The HTTP client carries no
// timeout of its own; callers bound requests through their context.
func NewClient(baseURL string, tp auth.TokenProvider, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		tokenProvider: tp,
		http:          &http.Client{},
		limiter:       rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
		logger:        logger,
	}
}

// Get performs a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post sends in as a JSON body and decodes the response into out.
// Either may be nil.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	if c.tokenProvider != nil {
		token, err := c.tokenProvider.AccessToken()
		if err != nil {
			return fmt.Errorf("auth: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rate limiter: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("api request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("request_id", requestID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("request to %s: %w", path, errors.Join(domain.ErrTransport, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", errors.Join(domain.ErrTransport, err))
	}

	c.logger.Debug("api request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)),
		slog.String("request_id", requestID),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(method, path, resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing response from %s: %w", path, err)
	}
	return nil
}

// parseAPIError turns a non-2xx response into *domain.APIError. Bodies that
// are not JSON objects are kept as Raw only.
func parseAPIError(method, path string, status int, data []byte) error {
	apiErr := &domain.APIError{
		StatusCode: status,
		Method:     method,
		Path:       path,
		Raw:        strings.TrimSpace(string(data)),
	}
	_ = json.Unmarshal(data, apiErr)
	apiErr.Message = sanitizeForTerminal(apiErr.Message)
	apiErr.Err = sanitizeForTerminal(apiErr.Err)
	apiErr.Title = sanitizeForTerminal(apiErr.Title)
	for i := range apiErr.Errors {
		apiErr.Errors[i].Description = sanitizeForTerminal(apiErr.Errors[i].Description)
	}
	return apiErr
}
