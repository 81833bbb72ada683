package giphy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gifgrid/internal/domain"
)

const (
	defaultBaseURL = "https://api.giphy.com"
	defaultTimeout = 30 * time.Second
	userAgent      = "gifgrid/1.0"
	searchPath     = "/v1/gifs/search"
)

// MaxOffset is the largest search offset the API accepts
const MaxOffset = 4999

// Client implements domain.SearchClient for the Giphy API
type Client struct {
	baseURL    string
	apiKey     string
	rating     string
	lang       string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the API base URL
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithRating sets the content rating filter (g, pg, pg-13, r)
func WithRating(rating string) Option {
	return func(c *Client) { c.rating = rating }
}

// WithLang sets the query language
func WithLang(lang string) Option {
	return func(c *Client) { c.lang = lang }
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new Giphy API client
func NewClient(apiKey string, logger *slog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, domain.ErrMissingAPIKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Search runs one search request. Every failure wraps domain.ErrSearchFailed.
func (c *Client) Search(ctx context.Context, query domain.SearchQuery) (*domain.SearchPage, error) {
	params := url.Values{}
	params.Set("q", query.Term)
	params.Set("limit", strconv.Itoa(query.Limit))
	params.Set("offset", strconv.Itoa(query.Offset))
	if c.rating != "" {
		params.Set("rating", c.rating)
	}
	if c.lang != "" {
		params.Set("lang", c.lang)
	}

	body, err := c.doRequest(ctx, searchPath, params)
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: failed to parse response: %v", domain.ErrSearchFailed, err)
	}

	page := MapSearchPage(&resp)
	c.logger.Debug("giphy search complete",
		"term", query.Term,
		"offset", query.Offset,
		"count", len(page.Items),
		"total", page.TotalCount,
	)
	return page, nil
}

// doRequest performs an authenticated GET request
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	// Logged URL omits the API key
	logURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	query.Set("api_key", c.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrSearchFailed, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("giphy request", "url", logURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("giphy request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrSearchFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("giphy request error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: unexpected status code: %d", domain.ErrSearchFailed, resp.StatusCode)
	}

	return body, nil
}
