// Package catalog provides the artwork catalog HTTP client with paging,
// caching, request pacing, and error handling.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/articat/articat/pkg/cache"
	"github.com/articat/articat/pkg/ratelimit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for catalog client operations.
var (
	catalogRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_requests_total",
		Help: "Total catalog requests by status",
	}, []string{"status"})

	catalogRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_request_duration_seconds",
		Help:    "Catalog request duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	}, []string{"endpoint"})

	catalogErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_errors_total",
		Help: "Total catalog errors by class",
	}, []string{"class"})
)

// recordFields is the field list requested from the catalog for every page.
const recordFields = "id,title,place_of_origin,artist_display,inscriptions,date_start,date_end"

// ErrorClass represents a classification of fetch errors.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassNetwork represents network/timeout errors.
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassDecode represents response decode errors.
	ErrorClassDecode ErrorClass = "decode"
)

// Client is the artwork catalog client.
type Client struct {
	httpClient *http.Client
	cache      *cache.Manager
	pacer      *ratelimit.Pacer
	config     Config
	logger     zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL of the catalog API, without trailing slash.
	BaseURL string

	// User-Agent header sent with every request. Public catalog APIs ask
	// clients to identify themselves.
	UserAgent string

	// PageSize is the page size requested from the catalog. The actual
	// size is read back from each response's pagination block.
	PageSize int

	// Timeout per HTTP request.
	Timeout time.Duration

	// MinRequestInterval is the minimum spacing between requests to the
	// catalog. Zero disables pacing.
	MinRequestInterval time.Duration

	// Redis enables the page cache when non-nil.
	Redis *redis.Client

	// CacheTTL is how long a fetched page stays cached.
	CacheTTL time.Duration
}

// DefaultConfig returns a safe default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:            "https://api.artic.edu/api/v1",
		UserAgent:          "articat/0.1.0 (https://github.com/articat/articat)",
		PageSize:           12,
		Timeout:            30 * time.Second,
		MinRequestInterval: 200 * time.Millisecond,
		CacheTTL:           60 * time.Second,
	}
}

// New creates a new catalog client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	if cfg.PageSize < 1 {
		return nil, fmt.Errorf("page size must be >= 1 (got %d)", cfg.PageSize)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	logger := log.With().Str("component", "catalog-client").Logger()

	// Page cache is optional; without Redis every fetch goes to the API.
	var pageCache *cache.Manager
	if cfg.Redis != nil {
		pageCache = cache.NewManager(cfg.Redis)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache:  pageCache,
		pacer:  ratelimit.NewPacer(cfg.MinRequestInterval, logger),
		config: cfg,
		logger: logger,
	}, nil
}

// FetchPage fetches one page of artwork records from the catalog.
//
// Callers that must not distinguish failure from exhaustion (the selection
// accumulator, the page store) log the error and treat it as an empty page.
func (c *Client) FetchPage(ctx context.Context, pageNumber int) (Page, error) {
	if pageNumber < 1 {
		return Page{}, ErrInvalidPage
	}

	endpoint := "/artworks"

	startTime := time.Now()
	defer func() {
		catalogRequestDuration.WithLabelValues(endpoint).Observe(time.Since(startTime).Seconds())
	}()

	key := cache.Key{
		Endpoint: endpoint,
		Page:     pageNumber,
		Limit:    c.config.PageSize,
	}

	// Step 1: Check the page cache.
	if c.cache != nil {
		entry, err := c.cache.Get(ctx, key)
		if err != nil && err != cache.ErrCacheMiss {
			c.logger.Warn().Err(err).Int("page", pageNumber).Msg("Cache get error")
		}
		if entry != nil {
			page, err := decodePage(entry.Data)
			if err == nil {
				c.logger.Debug().
					Int("page", pageNumber).
					Int("records", page.Size()).
					Msg("Page served from cache")
				return page, nil
			}
			c.logger.Warn().Err(err).Int("page", pageNumber).Msg("Invalid cached page, refetching")
		}
	}

	// Step 2: Pace the request.
	if err := c.pacer.Wait(ctx); err != nil {
		return Page{}, fmt.Errorf("request pacing: %w", err)
	}

	// Step 3: Build and execute the request.
	req, err := c.newPageRequest(ctx, pageNumber)
	if err != nil {
		return Page{}, fmt.Errorf("create request: %w", err)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Int("page", pageNumber).
		Msg("Fetching catalog page")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		catalogErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		catalogRequestsTotal.WithLabelValues("network_error").Inc()
		c.logger.Error().Err(err).Int("page", pageNumber).Msg("Catalog request failed")
		return Page{}, &CatalogError{
			ErrorClass: ErrorClassNetwork,
			Message:    "catalog request failed",
			Err:        err,
		}
	}
	defer resp.Body.Close()

	catalogRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		errClass := classifyStatus(resp.StatusCode)
		catalogErrorsTotal.WithLabelValues(string(errClass)).Inc()
		c.logger.Warn().
			Int("page", pageNumber).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Msg("Catalog request error")
		return Page{}, &CatalogError{
			StatusCode: resp.StatusCode,
			ErrorClass: errClass,
			Message:    resp.Status,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		catalogErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return Page{}, &CatalogError{
			ErrorClass: ErrorClassNetwork,
			Message:    "read response body",
			Err:        err,
		}
	}

	page, err := decodePage(body)
	if err != nil {
		catalogErrorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		c.logger.Error().Err(err).Int("page", pageNumber).Msg("Catalog response decode failed")
		return Page{}, &CatalogError{
			StatusCode: resp.StatusCode,
			ErrorClass: ErrorClassDecode,
			Message:    "decode catalog response",
			Err:        err,
		}
	}

	// Step 4: Update the cache on success.
	if c.cache != nil && c.config.CacheTTL > 0 {
		entry := cache.NewEntry(body)
		if err := c.cache.Set(ctx, key, entry, c.config.CacheTTL); err != nil {
			c.logger.Warn().Err(err).Int("page", pageNumber).Msg("Failed to cache page")
		}
	}

	c.logger.Debug().
		Int("page", pageNumber).
		Int("records", page.Size()).
		Int("total_pages", page.Pagination.TotalPages).
		Msg("Catalog page fetched")

	return page, nil
}

// newPageRequest builds the GET request for one catalog page.
func (c *Client) newPageRequest(ctx context.Context, pageNumber int) (*http.Request, error) {
	u, err := url.Parse(c.config.BaseURL + "/artworks")
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("page", strconv.Itoa(pageNumber))
	q.Set("limit", strconv.Itoa(c.config.PageSize))
	q.Set("fields", recordFields)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	return req, nil
}

// decodePage unmarshals a catalog list response body into a Page.
func decodePage(body []byte) (Page, error) {
	var resp artworksResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return Page{}, err
	}
	return Page{
		Records:    resp.Data,
		Pagination: resp.Pagination,
	}, nil
}

// classifyStatus categorizes a non-200 HTTP status for observability.
func classifyStatus(statusCode int) ErrorClass {
	switch {
	case statusCode >= 400 && statusCode < 500:
		return ErrorClassClient
	case statusCode >= 500:
		return ErrorClassServer
	default:
		return ""
	}
}

// PageSize returns the configured (requested) page size.
func (c *Client) PageSize() int {
	return c.config.PageSize
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
