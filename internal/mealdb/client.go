// Package mealdb provides an HTTP client for TheMealDB's public JSON API.
package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	filterEndpoint = "filter.php"
	lookupEndpoint = "lookup.php"

	// maxBodySize bounds how much of a response body is read.
	maxBodySize = 4 << 20
)

// Config holds configuration for creating a client.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client issues read-only requests against TheMealDB. It is safe for
// concurrent use.
type Client struct {
	baseURL     string
	userAgent   string
	httpClient  *http.Client
	logger      *slog.Logger
	concurrency int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger sets the logger for the client.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient replaces the underlying HTTP client. The caller's client
// timeout applies instead of Config.Timeout.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithConcurrency sets the number of parallel lookups used by LookupMeals.
func WithConcurrency(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// New creates a new client.
func New(cfg Config, opts ...ClientOption) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	parsedURL, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("base URL scheme must be http or https, got: %s", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return nil, fmt.Errorf("base URL must include a host")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	c := &Client{
		baseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		userAgent:   cfg.UserAgent,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      slog.Default(),
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root requests are issued against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// mealsEnvelope is the shape shared by both endpoints. The list is kept raw
// because the API sends null (and occasionally a string) instead of [].
type mealsEnvelope struct {
	Meals json.RawMessage `json:"meals"`
}

// get issues a GET for endpoint?i=value and returns the raw "meals" field.
// A nil return with nil error means the list was null, absent, or not an array.
func (c *Client) get(ctx context.Context, endpoint, value string) (json.RawMessage, error) {
	reqURL := c.baseURL + "/" + endpoint + "?i=" + url.QueryEscape(value)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("mealdb request failed", "endpoint", endpoint, "error", err)
		return nil, fmt.Errorf("%s: request failed: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("mealdb request",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", endpoint, err)
	}

	var env mealsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}
	raw := json.RawMessage(strings.TrimSpace(string(env.Meals)))
	if len(raw) == 0 || raw[0] != '[' {
		return nil, nil
	}
	return raw, nil
}

// FilterByIngredient returns the summaries of meals using ingredient.
// A null list from the API is an empty, successful result.
func (c *Client) FilterByIngredient(ctx context.Context, ingredient string) ([]MealSummary, error) {
	ingredient = strings.TrimSpace(ingredient)
	if ingredient == "" {
		return nil, ErrEmptyQuery
	}

	raw, err := c.get(ctx, filterEndpoint, ingredient)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return []MealSummary{}, nil
	}

	var meals []MealSummary
	if err := json.Unmarshal(raw, &meals); err != nil {
		return nil, &DecodeError{Endpoint: filterEndpoint, Err: err}
	}
	if meals == nil {
		meals = []MealSummary{}
	}
	return meals, nil
}

// LookupMeal returns the full record for id. A null or empty list yields a
// *NotFoundError; only the first element is used when several are returned.
func (c *Client) LookupMeal(ctx context.Context, id string) (*MealDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyID
	}

	raw, err := c.get(ctx, lookupEndpoint, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, &NotFoundError{ID: id}
	}

	var meals []json.RawMessage
	if err := json.Unmarshal(raw, &meals); err != nil {
		return nil, &DecodeError{Endpoint: lookupEndpoint, Err: err}
	}
	if len(meals) == 0 {
		return nil, &NotFoundError{ID: id}
	}

	var detail MealDetail
	if err := json.Unmarshal(meals[0], &detail); err != nil {
		return nil, &DecodeError{Endpoint: lookupEndpoint, Err: err}
	}
	return &detail, nil
}

// LookupMeals fetches several records in parallel, bounded by the client's
// concurrency. Results are in the order of ids. The first error cancels the
// remaining lookups and is returned.
func (c *Client) LookupMeals(ctx context.Context, ids []string) ([]*MealDetail, error) {
	results := make([]*MealDetail, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			detail, err := c.LookupMeal(gctx, id)
			if err != nil {
				return fmt.Errorf("lookup %q: %w", id, err)
			}
			results[i] = detail
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
