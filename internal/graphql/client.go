package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// Config holds transport settings.
type Config struct {
	// Endpoint is the absolute GraphQL URL requests are POSTed to.
	Endpoint string

	// Timeout bounds each HTTP round trip.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// Headers are added to every request (e.g. Authorization).
	Headers map[string]string

	// CacheSize is the number of query results kept by Query.
	// Zero disables caching.
	CacheSize int
}

// Request is one GraphQL operation.
type Request struct {
	// Query is the GraphQL document.
	Query string `json:"query"`

	// OperationName labels the operation in logs and on the wire.
	OperationName string `json:"operationName,omitempty"`

	// Variables are sent as the variables object.
	Variables map[string]any `json:"variables,omitempty"`
}

// Client executes GraphQL queries and mutations over HTTP.
//
// Client provides:
//   - Configured User-Agent and static headers
//   - A fresh X-Request-ID per call
//   - Timeout handling
//   - Cache-first queries (Query), network-only refetches (Refetch) and
//     uncached mutations (Mutate)
//
// Example usage:
//
//	client, err := NewClient(cfg, WithLogger(logger))
//
//	var data struct{ Artists []model.Artist }
//	err = client.Query(ctx, Request{Query: "query { artists { id firstName lastName } }"}, &data)
//
//	// After a mutation, read the authoritative list again
//	err = client.Refetch(ctx, req, &data)
type Client struct {
	httpClient *http.Client
	endpoint   string
	userAgent  string
	headers    map[string]string
	cache      *lru.Cache[string, []byte]
	logger     *zap.Logger
	newID      func() string
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for per-operation debug lines.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new GraphQL client.
//
// The client is configured with:
//   - cfg.Timeout (60 seconds when unset)
//   - cfg.UserAgent ("MusicCatalog" when unset)
//   - an LRU query cache of cfg.CacheSize entries
func NewClient(cfg *Config, opts ...Option) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("graphql: endpoint is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "MusicCatalog"
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   cfg.Endpoint,
		userAgent:  userAgent,
		headers:    cfg.Headers,
		logger:     zap.NewNop(),
		newID:      uuid.NewString,
	}

	if cfg.CacheSize > 0 {
		cache, err := lru.New[string, []byte](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("graphql: create cache: %w", err)
		}
		c.cache = cache
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Query runs a read operation, answering from the cache when possible.
func (c *Client) Query(ctx context.Context, req Request, out any) error {
	if c.cache != nil {
		key, err := cacheKey(req)
		if err == nil {
			if data, ok := c.cache.Get(key); ok {
				c.logger.Debug("graphql cache hit", zap.String("operation", req.OperationName))
				return decodeData(req, data, out)
			}
		}
	}
	return c.Refetch(ctx, req, out)
}

// Refetch runs a read operation against the server, bypassing the cache,
// and stores the result for later Query calls.
//
// A failed refetch leaves any cached result untouched.
func (c *Client) Refetch(ctx context.Context, req Request, out any) error {
	data, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	if c.cache != nil {
		if key, err := cacheKey(req); err == nil {
			c.cache.Add(key, data)
		}
	}
	return decodeData(req, data, out)
}

// Mutate runs a write operation. Results are never cached.
func (c *Client) Mutate(ctx context.Context, req Request, out any) error {
	data, err := c.do(ctx, req)
	if err != nil {
		return err
	}
	return decodeData(req, data, out)
}

// do performs the HTTP round trip and returns the raw data member.
func (c *Client) do(ctx context.Context, req Request) ([]byte, error) {
	start := time.Now()
	requestID := c.newID()
	op := operationName(req)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, &RemoteError{Operation: op, Err: fmt.Errorf("encode request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &RemoteError{Operation: op, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", requestID)
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Debug("graphql request failed",
			zap.String("operation", op),
			zap.String("request_id", requestID),
			zap.Error(err))
		return nil, &RemoteError{Operation: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RemoteError{Operation: op, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	var envelope response
	decodeErr := json.Unmarshal(raw, &envelope)

	c.logger.Debug("graphql request",
		zap.String("operation", op),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rerr := &RemoteError{Operation: op, Status: resp.StatusCode}
		if decodeErr == nil {
			rerr.Messages = envelope.messages()
		}
		return nil, rerr
	}
	if decodeErr != nil {
		return nil, &RemoteError{Operation: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", decodeErr)}
	}
	if len(envelope.Errors) > 0 {
		return nil, &RemoteError{Operation: op, Status: resp.StatusCode, Messages: envelope.messages()}
	}

	return envelope.Data, nil
}

// response is the GraphQL response envelope.
type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []Error         `json:"errors"`
}

func (r response) messages() []string {
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

// Error is one entry of the errors array.
type Error struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

func decodeData(req Request, data []byte, out any) error {
	if out == nil || len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &RemoteError{Operation: operationName(req), Err: fmt.Errorf("decode data: %w", err)}
	}
	return nil
}

// cacheKey identifies a query by document and variables. json.Marshal sorts
// map keys, so equal variable sets produce equal keys.
func cacheKey(req Request) (string, error) {
	vars, err := json.Marshal(req.Variables)
	if err != nil {
		return "", err
	}
	return req.Query + "\x00" + string(vars), nil
}

func operationName(req Request) string {
	if req.OperationName != "" {
		return req.OperationName
	}
	return "anonymous"
}
