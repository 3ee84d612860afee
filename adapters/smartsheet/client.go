// Package smartsheet fetches raw sheet payloads from the Smartsheet REST API.
package smartsheet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"smartsheetsvc/internal"
	"smartsheetsvc/internal/errors"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/semaphore"
)

// DefaultBaseURL is the public Smartsheet API root.
const DefaultBaseURL = "https://api.smartsheet.com/2.0"

// Config holds the client settings
type Config struct {
	BaseURL        string
	AccessToken    string
	UserAgent      string
	MaxConnections int
	Timeout        time.Duration
}

// APIError is a non-200 answer from Smartsheet. ErrorCode, Message and RefID
// come from the JSON error body when it has one.
type APIError struct {
	StatusCode int
	ErrorCode  int64
	Message    string
	RefID      string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("smartsheet returned status %d", e.StatusCode)
	if e.ErrorCode != 0 {
		msg += fmt.Sprintf(" (errorCode %d)", e.ErrorCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.RefID != "" {
		msg += " [refId " + e.RefID + "]"
	}
	return msg
}

// Client implements ports.SheetFetcher against the REST API
type Client struct {
	config     Config
	httpClient *http.Client
	sem        *semaphore.Weighted
	logger     *internal.Logger
}

// NewClient creates a client. MaxConnections bounds concurrent upstream calls.
func NewClient(config Config, logger *internal.Logger) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.MaxConnections < 1 {
		config.MaxConnections = 1
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
			Transport: &http.Transport{
				MaxConnsPerHost:     config.MaxConnections,
				MaxIdleConnsPerHost: config.MaxConnections,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		sem:    semaphore.NewWeighted(int64(config.MaxConnections)),
		logger: logger.Named("Smartsheet"),
	}
}

// FetchSheet downloads the full JSON payload of one sheet
func (c *Client) FetchSheet(ctx context.Context, sheetID int64) ([]byte, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, errors.ExternalServiceError("smartsheet", err)
	}
	defer c.sem.Release(1)

	url := fmt.Sprintf("%s/sheets/%d", c.config.BaseURL, sheetID)
	req, err := c.buildRequest(ctx, url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.ExternalServiceError("smartsheet", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.ExternalServiceError("smartsheet", fmt.Errorf("failed to read response: %w", err))
	}
	c.logger.Debug("GET %s -> %d (%d bytes, %s)", url, resp.StatusCode, len(body), time.Since(start))

	if resp.StatusCode != http.StatusOK {
		apiErr := parseAPIError(resp.StatusCode, body)
		c.logger.Warn("sheet %d: %v", sheetID, apiErr)
		return nil, errors.ExternalServiceError("smartsheet", apiErr)
	}

	return body, nil
}

// buildRequest creates an HTTP request with authentication
func (c *Client) buildRequest(ctx context.Context, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)
	req.Header.Set("Accept", "application/json")
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	return req, nil
}

func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	if !gjson.ValidBytes(body) {
		apiErr.Message = strings.TrimSpace(truncate(string(body), 200))
		return apiErr
	}
	result := gjson.ParseBytes(body)
	apiErr.ErrorCode = result.Get("errorCode").Int()
	apiErr.Message = result.Get("message").String()
	apiErr.RefID = result.Get("refId").String()
	return apiErr
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
