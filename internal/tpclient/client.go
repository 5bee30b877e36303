package tpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yeager/tp-lint/internal/config"
	"github.com/yeager/tp-lint/internal/model"
	"github.com/yeager/tp-lint/internal/scrape"
)

// Site page paths relative to the base URL.
const (
	indexPath  = "/team/index.html"
	teamPath   = "/team/%s.html"
	matrixPath = "/extra/matrix.html"
)

// DefaultMaxBodySize caps how many bytes are read from any response body.
// The matrix page, the largest document the site serves, is well under a
// megabyte; 32 MiB leaves ample room while bounding memory on a bad
// response.
const DefaultMaxBodySize = 32 << 20

// Client fetches Translation Project pages.
//
// Design decision: We use a struct with the http.Client rather than
// passing the client on each call because:
//  1. Client configuration (timeout, User-Agent) should be consistent
//  2. Connection pooling works better with a shared client
//  3. Easier to test against httptest servers
type Client struct {
	// client is the underlying HTTP client.
	client *http.Client

	// baseURL is the site root without trailing slash.
	baseURL string

	// userAgent is the User-Agent header sent with every request.
	userAgent string

	// maxBodySize bounds response body reads.
	maxBodySize int64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Used in tests and
// when the caller needs custom transport settings.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

// WithBaseURL points the client at a different site root, such as a
// mirror or a test server.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(base, "/")
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithTimeout sets the per-request timeout on the underlying client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

// WithMaxBodySize changes the response body read limit.
func WithMaxBodySize(n int64) Option {
	return func(c *Client) {
		c.maxBodySize = n
	}
}

// New creates a Client with default settings, applying any options.
func New(opts ...Option) *Client {
	c := &Client{
		client:      &http.Client{Timeout: config.DefaultTimeout},
		baseURL:     config.DefaultBaseURL,
		userAgent:   config.DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured site root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Languages fetches and parses the team index page.
func (c *Client) Languages(ctx context.Context) ([]model.LanguageEntry, error) {
	body, err := c.get(ctx, c.baseURL+indexPath)
	if err != nil {
		return nil, fmt.Errorf("fetch team index: %w", err)
	}
	defer body.Close()

	entries, err := scrape.Languages(body)
	if err != nil {
		return nil, fmt.Errorf("parse team index: %w", err)
	}
	return entries, nil
}

// TeamPage fetches and parses one language's team page. A 404 response
// yields ErrLanguageNotFound so callers can suggest valid codes.
func (c *Client) TeamPage(ctx context.Context, code string) (*model.TeamPage, error) {
	url := c.baseURL + fmt.Sprintf(teamPath, code)
	body, err := c.get(ctx, url)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, fmt.Errorf("team %q: %w", code, ErrLanguageNotFound)
		}
		return nil, fmt.Errorf("fetch team page: %w", err)
	}
	defer body.Close()

	page, err := scrape.TeamPage(body, c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse team page: %w", err)
	}
	return page, nil
}

// Matrix fetches and parses the global coverage matrix page.
func (c *Client) Matrix(ctx context.Context) (*model.Matrix, error) {
	body, err := c.get(ctx, c.baseURL+matrixPath)
	if err != nil {
		return nil, fmt.Errorf("fetch matrix: %w", err)
	}
	defer body.Close()

	m, err := scrape.Matrix(body)
	if err != nil {
		return nil, fmt.Errorf("parse matrix: %w", err)
	}
	return m, nil
}

// get performs a GET request and returns the body for a 200 response.
// The caller owns the returned ReadCloser.
func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", errNotFound, url)
		}
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnexpectedStatus, resp.Status, url)
	}

	return &limitedBody{
		Reader: io.LimitReader(resp.Body, c.maxBodySize),
		body:   resp.Body,
	}, nil
}

// limitedBody bounds reads from a response body while keeping Close
// reachable.
type limitedBody struct {
	io.Reader
	body io.ReadCloser
}

func (l *limitedBody) Close() error {
	return l.body.Close()
}
