package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/nucleus/cmis-core/pkg/cmis"
)

// RequestIDHeader carries a per-request uuid. Retries reuse the id.
const RequestIDHeader = "X-Request-ID"

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig configures the HTTP client behavior.
type ClientConfig struct {
	// BaseURL prefixes requests that only set a Path.
	BaseURL string

	// Auth configures authentication.
	Auth AuthConfig

	// Timeout for individual requests (default: 30s).
	Timeout time.Duration

	// MaxRetries for failed GET requests (default: 3).
	MaxRetries int

	// RetryBackoff is the first backoff delay, doubled per attempt (default: 100ms).
	RetryBackoff time.Duration

	// RateLimit requests per second (default: 10).
	RateLimit float64

	// RateBurst maximum burst size (default: 5).
	RateBurst int

	// Headers to add to all requests.
	Headers map[string]string

	// UserAgent string (default: "cmis-core/1.0").
	UserAgent string

	// Transport allows injecting a custom HTTP transport (for tests/stubs).
	Transport http.RoundTripper

	Logger *slog.Logger
}

// DefaultClientConfig returns a client config with sensible defaults.
func DefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		Auth:         NoAuth{},
		Timeout:      30 * time.Second,
		MaxRetries:   3,
		RetryBackoff: 100 * time.Millisecond,
		RateLimit:    10.0,
		RateBurst:    5,
		UserAgent:    "cmis-core/1.0",
		Headers:      make(map[string]string),
	}
}

// =============================================================================
// HTTP CLIENT
// =============================================================================

// Client is a rate-limited HTTP client that retries idempotent reads.
type Client struct {
	config      *ClientConfig
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// NewClient creates a new HTTP client with the given configuration.
// Redirects are not followed; they surface as connection failures.
func NewClient(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultClientConfig()
	}
	if config.Auth == nil {
		config.Auth = NoAuth{}
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.RetryBackoff == 0 {
		config.RetryBackoff = 100 * time.Millisecond
	}
	if config.RateLimit == 0 {
		config.RateLimit = 10.0
	}
	if config.RateBurst == 0 {
		config.RateBurst = 5
	}
	if config.UserAgent == "" {
		config.UserAgent = "cmis-core/1.0"
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: config.Transport,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		rateLimiter: rate.NewLimiter(rate.Limit(config.RateLimit), config.RateBurst),
		logger:      logger.With(slog.String("component", "cmis_transport")),
	}
}

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// Request represents an HTTP request to be made.
type Request struct {
	Method string
	// URL is an absolute URL. When empty, BaseURL and Path are joined.
	URL     string
	Path    string
	Query   url.Values
	Headers map[string]string
	Body    io.Reader
}

func (r *Request) method() string {
	if r.Method == "" {
		return http.MethodGet
	}
	return r.Method
}

// Response wraps an HTTP response with convenience methods.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// JSON unmarshals the response body into the given target.
func (r *Response) JSON(target any) error {
	return json.Unmarshal(r.Body, target)
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.Class() == StatusSuccess
}

// Class returns the status class of the response.
func (r *Response) Class() StatusClass {
	return ClassOf(r.StatusCode)
}

// =============================================================================
// CLIENT METHODS
// =============================================================================

// Do executes a request with rate limiting. GET requests are retried with
// exponential backoff; other methods are sent once since their bodies
// cannot be replayed. Error responses come back together with a
// *cmis.Error built by ToCMISError; network failures are ErrConnectionFailure.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	target, err := c.buildURL(req)
	if err != nil {
		return nil, cmis.WrapError(cmis.ErrInvalidArgument, "request url", err)
	}
	method := req.method()
	requestID := uuid.NewString()

	attempts := 1
	if method == http.MethodGet {
		attempts += c.config.MaxRetries
	}

	var (
		lastResp *Response
		lastErr  error
	)
	for attempt := 0; attempt < attempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, cmis.WrapError(cmis.ErrConnectionFailure, "rate limiter", err)
		}

		resp, err := c.doOnce(ctx, method, target, requestID, req)
		if err == nil {
			return resp, nil
		}
		lastResp, lastErr = resp, err

		if attempt == attempts-1 || !isRetryable(err) {
			break
		}

		backoff := time.Duration(1<<uint(attempt)) * c.config.RetryBackoff
		retriesTotal.Inc()
		c.logger.Debug("retrying request",
			slog.String("method", method),
			slog.String("url", target),
			slog.String("request_id", requestID),
			slog.Int("attempt", attempt+1),
			slog.Duration("backoff", backoff),
			slog.Any("error", err))

		select {
		case <-ctx.Done():
			return nil, cmis.WrapError(cmis.ErrConnectionFailure, method+" "+target, ctx.Err())
		case <-time.After(backoff):
		}
	}

	var httpErr *HTTPError
	if errors.As(lastErr, &httpErr) {
		return lastResp, ToCMISError(lastResp)
	}
	return nil, cmis.WrapError(cmis.ErrConnectionFailure, method+" "+target, lastErr)
}

func (c *Client) buildURL(req *Request) (string, error) {
	target := req.URL
	if target == "" {
		target = c.config.BaseURL
		if req.Path != "" {
			target = strings.TrimSuffix(target, "/") + "/" + strings.TrimPrefix(req.Path, "/")
		}
	}
	if target == "" {
		return "", errors.New("no URL")
	}
	if _, err := url.Parse(target); err != nil {
		return "", err
	}
	if len(req.Query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + req.Query.Encode()
	}
	return target, nil
}

// doOnce executes a single request attempt.
func (c *Client) doOnce(ctx context.Context, method, target, requestID string, req *Request) (*Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, method, target, req.Body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("User-Agent", c.config.UserAgent)
	httpReq.Header.Set(RequestIDHeader, requestID)
	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	c.config.Auth.Apply(httpReq)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	requestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(method, "error").Inc()
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		requestsTotal.WithLabelValues(method, "error").Inc()
		return nil, fmt.Errorf("read body: %w", err)
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}
	requestsTotal.WithLabelValues(method, string(response.Class())).Inc()

	if !response.IsSuccess() {
		return response, &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}
	}
	return response, nil
}

// Get performs a GET request against an absolute URL.
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, URL: rawURL})
}

// PostForm posts an encoded form body against an absolute URL.
func (c *Client) PostForm(ctx context.Context, rawURL, contentType string, body io.Reader) (*Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		URL:    rawURL,
		Body:   body,
		Headers: map[string]string{
			"Content-Type": contentType,
		},
	})
}

// isRetryable reports whether a failed attempt may be repeated: network
// errors, timeouts, throttling and server errors. Client errors such as
// 403 and 404 are final.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.IsRateLimited() || httpErr.IsServerError() ||
			httpErr.StatusCode == http.StatusRequestTimeout
	}
	return true
}
