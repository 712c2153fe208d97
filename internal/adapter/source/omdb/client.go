package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/mmcdole/cinesearch/internal/domain"
)

const (
	DefaultBaseURL = "https://www.omdbapi.com/"
	defaultTimeout = 30 * time.Second
	userAgent      = "cinesearch/1.0"

	// maxBodySize caps how much of a response we read
	maxBodySize = 2 << 20
)

// Client implements domain.MovieSource for the OMDb API
type Client struct {
	baseURL    string
	apiKey     string
	plot       string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the request timeout on the HTTP client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRateLimit spaces requests to at most perSecond. Zero disables limiting.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithPlot selects "short" or "full" plot text for detail lookups
func WithPlot(plot string) Option {
	return func(c *Client) {
		if plot == "short" || plot == "full" {
			c.plot = plot
		}
	}
}

// NewClient creates a new OMDb API client
func NewClient(baseURL, apiKey string, logger *slog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("OMDb API key is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		plot:    "short",
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(5), 1),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Search returns one page of results for query
func (c *Client) Search(ctx context.Context, query string, page int) (*domain.SearchPage, error) {
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("s", query)
	params.Set("page", strconv.Itoa(page))

	var resp SearchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}

	result, err := MapSearchPage(&resp, query, page)
	if err != nil {
		c.logger.Error("omdb search payload rejected", "query", query, "page", page, "error", err)
		return nil, err
	}

	c.logger.Debug("omdb search", "query", query, "page", page, "found", result.Found,
		"results", len(result.Results), "total", result.TotalResults)
	return result, nil
}

// GetDetail returns the full record for id
func (c *Client) GetDetail(ctx context.Context, id string) (*domain.MovieDetail, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty identifier", domain.ErrMovieNotFound)
	}

	params := url.Values{}
	params.Set("i", id)
	params.Set("plot", c.plot)

	var resp DetailResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, err
	}

	return MapDetail(&resp)
}

// get performs a rate-limited GET and decodes the JSON body into dest
func (c *Client) get(ctx context.Context, params url.Values, dest interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
		}
	}

	params.Set("apikey", c.apiKey)
	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	// Never log the API key
	c.logger.Debug("omdb request", "params", redact(params))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("omdb request failed", "error", err)
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %v", domain.ErrNetwork, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return unauthorizedError(body)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("omdb request error", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("%w: unexpected status code: %d", domain.ErrNetwork, resp.StatusCode)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return nil
}

// unauthorizedError tells a spent daily quota apart from a bad key; OMDb
// answers both with 401.
func unauthorizedError(body []byte) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil || env.Error == "" {
		return domain.ErrInvalidAPIKey
	}
	if strings.Contains(strings.ToLower(env.Error), "limit") {
		return fmt.Errorf("%w: %s", domain.ErrRequestLimit, env.Error)
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidAPIKey, env.Error)
}

func redact(params url.Values) string {
	clean := url.Values{}
	for k, v := range params {
		if k == "apikey" {
			continue
		}
		clean[k] = v
	}
	return clean.Encode()
}
