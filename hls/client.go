package hls

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	internalhttp "github.com/example/go-hls/hls/internal/http"
	"github.com/example/go-hls/hls/model"
	"github.com/example/go-hls/hls/search"
)

const (
	defaultBaseURL   = "https://cmr.earthdata.nasa.gov"
	defaultUserAgent = "go-hls-archive"

	searchAfterHeader = "CMR-Search-After"

	// CMR caps granule pages at 2000 entries.
	minPageSize = 1
	maxPageSize = 2000
)

// Client queries the CMR granule search endpoint.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
	retry      internalhttp.RetryPolicy
}

// Option configures a Client.
type Option func(*Client) error

// WithBaseURL overrides the default CMR base URL.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		if raw == "" {
			return fmt.Errorf("hls: base url cannot be empty")
		}
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("hls: parse base url: %w", err)
		}
		c.baseURL = u
		return nil
	}
}

// WithHTTPClient allows providing a custom HTTP client implementation.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("hls: http client cannot be nil")
		}
		c.httpClient = hc
		return nil
	}
}

// WithUserAgent sets a custom client identification header for outbound
// requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		if ua != "" {
			c.userAgent = ua
		}
		return nil
	}
}

// WithRetryPolicy sets a retry policy for page requests. The default is no
// retry: pagination failures surface as UpstreamError and the caller owns
// retry and backoff.
func WithRetryPolicy(policy internalhttp.RetryPolicy) Option {
	return func(c *Client) error {
		if policy == nil {
			return fmt.Errorf("hls: retry policy cannot be nil")
		}
		c.retry = policy
		return nil
	}
}

// NewClient creates a Client with sensible defaults.
func NewClient(opts ...Option) (*Client, error) {
	base, _ := url.Parse(defaultBaseURL)
	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  defaultUserAgent,
		retry:      internalhttp.NoRetryPolicy{},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Granules returns an iterator over every granule matching params. The
// iterator follows the cmr-search-after cursor until exhausted; a fresh
// iterator reissues the query from the first page.
func (c *Client) Granules(params search.Params, pageSize int) *GranuleIterator {
	return newGranuleIterator(c, params, pageSize)
}

// CollectGranules drains a granule iterator into a slice.
func (c *Client) CollectGranules(ctx context.Context, params search.Params, pageSize int) ([]model.Granule, error) {
	it := c.Granules(params, pageSize)
	var granules []model.Granule
	for it.Next(ctx) {
		granules = append(granules, it.Granule())
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return granules, nil
}

// searchPage issues one granule search request. searchAfter carries the
// cursor from the previous page and is empty for the first request.
func (c *Client) searchPage(ctx context.Context, query url.Values, format string, pageSize int, searchAfter string) (*model.Page, error) {
	endpoint := *c.baseURL
	if format == "" {
		format = "json"
	}
	endpoint.Path = "/search/granules." + format

	q := cloneValues(query)
	q.Set("page_size", strconv.Itoa(pageSize))
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("hls: create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if searchAfter != "" {
		req.Header.Set(searchAfterHeader, searchAfter)
	}

	resp, err := internalhttp.Do(ctx, c.httpClient, req, c.retry)
	if err != nil {
		return nil, fmt.Errorf("hls: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, upstreamError(resp)
	}

	var payload feedResponse
	if err := internalhttp.DecodeJSON(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("hls: decode response: %w", err)
	}

	return &model.Page{
		Entries:     payload.Feed.Entry,
		SearchAfter: resp.Header.Get(searchAfterHeader),
	}, nil
}

type feedResponse struct {
	Feed struct {
		Entry []model.Granule `json:"entry"`
	} `json:"feed"`
}

func upstreamError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &UpstreamError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(body)),
	}
}

func clampPageSize(n int) int {
	if n < minPageSize {
		return minPageSize
	}
	if n > maxPageSize {
		return maxPageSize
	}
	return n
}

func cloneValues(v url.Values) url.Values {
	cp := make(url.Values, len(v))
	for k, vals := range v {
		dup := make([]string, len(vals))
		copy(dup, vals)
		cp[k] = dup
	}
	return cp
}
