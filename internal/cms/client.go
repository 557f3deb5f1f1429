package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"esselab.org/esse-web/internal/cache"
	"esselab.org/esse-web/internal/observability"
)

// ErrNotFound indicates the requested record does not exist or could not be loaded.
var ErrNotFound = errors.New("cms: not found")

const (
	defaultTimeout = 5 * time.Second
	maxBodyBytes   = 8 << 20
)

// StatusError reports a non-success response from the CMS.
type StatusError struct {
	Resource   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cms: %s returned status %d", e.Resource, e.StatusCode)
}

// Client reads content from the CMS REST API. It only issues GET requests.
type Client struct {
	baseURL   string
	mediaBase string
	token     string
	http      *http.Client
	cache     cache.Cache
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d, Transport: c.http.Transport}
		}
	}
}

// WithToken sends a bearer token with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithMediaBase sets the host that relative media paths are joined with.
func WithMediaBase(base string) Option {
	return func(c *Client) {
		if base = strings.TrimRight(strings.TrimSpace(base), "/"); base != "" {
			c.mediaBase = base
		}
	}
}

// WithCache stores successful response bodies for ttl.
func WithCache(store cache.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		if store != nil && ttl > 0 {
			c.cache = store
			c.cacheTTL = ttl
		}
	}
}

// WithLogger sets the logger used when the request context carries none.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient constructs a client for the CMS rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	c := &Client{
		baseURL:   base,
		mediaBase: base,
		http:      &http.Client{Timeout: defaultTimeout},
		cache:     cache.NewNoop(),
		logger:    observability.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the CMS root URL.
func (c *Client) BaseURL() string { return c.baseURL }

// MediaBase returns the host used for relative media paths.
func (c *Client) MediaBase() string { return c.mediaBase }

// MediaURL resolves a media path against the client's media host.
func (c *Client) MediaURL(path string) string { return MediaURL(c.mediaBase, path) }

func (c *Client) log(ctx context.Context) *zap.Logger {
	if l := observability.FromContext(ctx); l != observability.Nop() {
		return l
	}
	return c.logger
}

// Get issues GET /api/{resource}?{query} and returns the raw body. The resource
// may carry an inline query string which is kept ahead of q.
func (c *Client) Get(ctx context.Context, resource string, q Query) ([]byte, error) {
	name, inline, _ := strings.Cut(strings.Trim(resource, "/"), "?")
	if name == "" {
		return nil, fmt.Errorf("cms: empty resource")
	}
	encoded, err := q.Encode()
	if err != nil {
		return nil, err
	}
	var parts []string
	for _, p := range []string{inline, encoded} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	endpoint := c.baseURL + "/api/" + name
	if len(parts) > 0 {
		endpoint += "?" + strings.Join(parts, "&")
	}

	ctx, span := observability.Tracer().Start(ctx, "cms.get "+name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("cms.resource", name)),
	)
	defer span.End()

	if body, ok, err := c.cache.Get(ctx, endpoint); err == nil && ok {
		span.SetAttributes(attribute.Bool("cms.cache_hit", true))
		observability.RecordBackendCall(ctx, name, "cache_hit")
		return body, nil
	} else if err != nil {
		c.log(ctx).Warn("cms cache read failed", zap.String("resource", name), zap.Error(err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("cms: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		observability.RecordBackendCall(ctx, name, "error")
		return nil, fmt.Errorf("cms: get %s: %w", name, err)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode == http.StatusNotFound {
		observability.RecordBackendCall(ctx, name, "not_found")
		return nil, ErrNotFound
	}
	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, resp.Status)
		observability.RecordBackendCall(ctx, name, "error")
		return nil, &StatusError{Resource: name, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		observability.RecordBackendCall(ctx, name, "error")
		return nil, fmt.Errorf("cms: read %s: %w", name, err)
	}
	observability.RecordBackendCall(ctx, name, "ok")

	if err := c.cache.Set(ctx, endpoint, body, c.cacheTTL); err != nil {
		c.log(ctx).Warn("cms cache write failed", zap.String("resource", name), zap.Error(err))
	}
	return body, nil
}

// FetchCollection decodes the envelope of a collection request. A missing
// resource yields an empty envelope.
func FetchCollection[T any](ctx context.Context, c *Client, resource string, q Query) (Envelope[[]T], error) {
	var env Envelope[[]T]
	body, err := c.Get(ctx, resource, q)
	if errors.Is(err, ErrNotFound) {
		env.Meta.Pagination = Pagination{}.normalize(q.Pagination)
		return env, nil
	}
	if err != nil {
		return env, err
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return Envelope[[]T]{}, fmt.Errorf("cms: decode %s: %w", resource, err)
	}
	env.Meta.Pagination = env.Meta.Pagination.normalize(q.Pagination)
	return env, nil
}

// FetchSingle returns the single record carried by a response, or nil when the
// response holds none.
func FetchSingle[T any](ctx context.Context, c *Client, resource string, q Query) (*T, error) {
	body, err := c.Get(ctx, resource, q)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var env Envelope[json.RawMessage]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("cms: decode %s: %w", resource, err)
	}
	raw, err := spread(env.Data)
	if err != nil || raw == nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("cms: decode %s record: %w", resource, err)
	}
	return &out, nil
}

// MediaURL joins root-relative media paths with base. Absolute URLs are returned unchanged.
func MediaURL(base, path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//") {
		return strings.TrimRight(base, "/") + path
	}
	return path
}
