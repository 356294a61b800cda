// Package backend is the JSON-over-HTTP transport to the charging network's
// REST service. It knows nothing about individual resources: callers pass
// ordered candidate endpoints to Probe and decide which responses are usable.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/ohler55/ojg/oj"

	"github.com/ionenergy/ionctl/internal/logging"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 16 << 20

// Transport errors.
var (
	ErrTransport        = errors.New("backend request failed")
	ErrNotJSON          = errors.New("response is not JSON")
	ErrStatus           = errors.New("unexpected HTTP status")
	ErrNoUsableResponse = errors.New("no endpoint returned a usable response")
)

// Endpoint is one candidate URL shape: an HTTP method, a path relative to the
// base URL and optional query parameters.
type Endpoint struct {
	Method string
	Path   string
	Query  url.Values
}

// Get builds a GET endpoint. Query parameters are given as key/value pairs.
func Get(path string, query ...string) Endpoint {
	return Endpoint{Method: http.MethodGet, Path: path, Query: pairs(query)}
}

// Post builds a POST endpoint.
func Post(path string, query ...string) Endpoint {
	return Endpoint{Method: http.MethodPost, Path: path, Query: pairs(query)}
}

// Put builds a PUT endpoint.
func Put(path string) Endpoint {
	return Endpoint{Method: http.MethodPut, Path: path}
}

func pairs(kv []string) url.Values {
	if len(kv) == 0 {
		return nil
	}
	v := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}
	return v
}

// Target returns the path with its encoded query string.
func (e Endpoint) Target() string {
	if len(e.Query) == 0 {
		return e.Path
	}
	return e.Path + "?" + e.Query.Encode()
}

// String renders the endpoint as "METHOD /path?query".
func (e Endpoint) String() string {
	return e.Method + " " + e.Target()
}

// Cache stores raw GET response bodies by URL.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, data []byte)
	Clear()
}

// Response is a decoded backend reply.
type Response struct {
	StatusCode int
	// Body is the decoded JSON document: map[string]any, []any or a scalar.
	Body any
	// Cached is true when the body came from the cache.
	Cached bool
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Client performs JSON requests against one base URL.
type Client struct {
	// HTTPClient is exported so tests can swap in httptest clients.
	HTTPClient *http.Client

	baseURL string
	cache   Cache
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// WithTimeout sets the per-request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.HTTPClient.Timeout = d }
}

// WithCache enables response caching for GET requests.
func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// NewClient returns a client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		HTTPClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL returns the absolute URL of ep.
func (c *Client) URL(ep Endpoint) string {
	path := ep.Target()
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// InvalidateCache drops every cached response.
func (c *Client) InvalidateCache() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Do sends one request. A nil body sends no payload, and neither does a GET;
// any other body is encoded as JSON. A response whose body is not JSON yields ErrNotJSON along
// with the status code; non-2xx statuses are not errors at this level.
func (c *Client) Do(ctx context.Context, ep Endpoint, body any) (*Response, error) {
	target := c.URL(ep)

	if ep.Method == http.MethodGet && c.cache != nil {
		if raw, ok := c.cache.Get(target); ok {
			if doc, err := oj.Parse(raw); err == nil {
				return &Response{StatusCode: http.StatusOK, Body: doc, Cached: true}, nil
			}
		}
	}

	if ep.Method == http.MethodGet {
		body = nil
	}
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, ep.Method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &Response{StatusCode: resp.StatusCode}, fmt.Errorf("%w: reading body: %w", ErrTransport, err)
	}

	out := &Response{StatusCode: resp.StatusCode}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, ErrNotJSON
	}
	doc, err := oj.Parse(raw)
	if err != nil {
		return out, fmt.Errorf("%w: %w", ErrNotJSON, err)
	}
	out.Body = doc

	if ep.Method == http.MethodGet && c.cache != nil && out.OK() {
		c.cache.Set(target, raw)
	}
	return out, nil
}

// AcceptFunc decides whether a response is usable and converts it.
type AcceptFunc[T any] func(resp *Response) (T, error)

// Probe tries candidates in order and returns the converted value of the first
// response accept takes, plus the endpoint that produced it. Failures are
// logged at debug level and the next candidate is tried; once every candidate
// failed the result wraps ErrNoUsableResponse and the last failure.
// Candidates after the first usable one are never requested. body goes to
// every candidate except GETs.
func Probe[T any](
	ctx context.Context,
	c *Client,
	operation string,
	candidates []Endpoint,
	body any,
	accept AcceptFunc[T],
) (T, Endpoint, error) {
	log := logging.FromContext(ctx)
	var zero T
	var lastErr error

	for _, ep := range candidates {
		if err := ctx.Err(); err != nil {
			return zero, Endpoint{}, err
		}

		resp, err := c.Do(ctx, ep, body)
		if err == nil {
			var value T
			value, err = accept(resp)
			if err == nil {
				log.Debug().
					Ctx(ctx).
					Str("component", "backend").
					Str("operation", operation).
					Str("endpoint", ep.String()).
					Bool("cached", resp.Cached).
					Msg("endpoint accepted")
				return value, ep, nil
			}
		}

		lastErr = err
		log.Debug().
			Ctx(ctx).
			Str("component", "backend").
			Str("operation", operation).
			Str("endpoint", ep.String()).
			Err(err).
			Msg("endpoint unusable, trying next")
	}

	if lastErr == nil {
		return zero, Endpoint{}, ErrNoUsableResponse
	}
	return zero, Endpoint{}, fmt.Errorf("%w: %w", ErrNoUsableResponse, lastErr)
}

// RequireOK wraps a converter so that non-2xx responses are rejected first.
func RequireOK[T any](convert AcceptFunc[T]) AcceptFunc[T] {
	return func(resp *Response) (T, error) {
		if !resp.OK() {
			var zero T
			return zero, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
		}
		return convert(resp)
	}
}

// sortedKeys returns the keys of m in lexical order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
