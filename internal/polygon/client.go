package polygon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/weabreus/investing-mcp/internal/logger"
)

const (
	// DefaultBaseURL is the public Polygon.io API endpoint.
	DefaultBaseURL = "https://api.polygon.io"

	defaultUserAgent = "InvestingMCP/0.1"
	defaultTimeout   = 15 * time.Second

	// maxErrorBodyBytes caps how much of an error response is kept.
	maxErrorBodyBytes = int64(4096)
)

// Client issues authenticated GET requests against the Polygon API.
// It is immutable after construction and safe for concurrent use.
type Client struct {
	baseURL   string
	apiKey    string
	userAgent string
	client    *http.Client
}

// NewClient creates a Polygon API client.
func NewClient(apiKey, baseURL, userAgent string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if strings.TrimSpace(userAgent) == "" {
		userAgent = defaultUserAgent
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// StatusError is a non-200 response from the Polygon API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Body)
}

// Get performs a GET against <base-url><endpoint> with the given query
// parameters. The API key is always injected, overwriting any caller-supplied
// value. A 200 response is decoded as JSON; anything else returns *StatusError.
func (c *Client) Get(ctx context.Context, endpoint string, params map[string]string) (Document, error) {
	target, err := url.Parse(c.baseURL + endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %s: %w", endpoint, err)
	}

	query := url.Values{}
	for key, value := range params {
		query.Set(key, value)
	}
	query.Set("apikey", c.apiKey)
	target.RawQuery = query.Encode()

	requestID := uuid.NewString()[:8]
	logger.Debug("polygon request %s: GET %s", requestID, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Warn("polygon request %s failed: %v", requestID, err)
		return nil, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		logger.Warn("polygon request %s returned status %d", requestID, resp.StatusCode)
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	logger.Debug("polygon request %s completed", requestID)
	return doc, nil
}
