package kitchen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	"github.com/five82/kitchen/internal/i18n"
	"github.com/five82/kitchen/internal/session"
)

// Page is a navigation target raised by the client and the auth adapter.
type Page int

const (
	// PageEntry is the unauthenticated entry (login) page.
	PageEntry Page = iota
	// PageMain is the main authenticated view.
	PageMain
)

// Navigator performs full-page navigation on behalf of the core.
type Navigator interface {
	Navigate(Page)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(Page)

// Navigate calls f.
func (f NavigatorFunc) Navigate(p Page) { f(p) }

type noopNavigator struct{}

func (noopNavigator) Navigate(Page) {}

// Recorder receives per-request measurements. Status is 0 for network failures.
type Recorder interface {
	ObserveRequest(method string, status int, elapsed time.Duration)
	SessionExpired()
}

// Transport selects how the session credential travels.
type Transport string

const (
	// TransportBearer sends the stored token as an Authorization header.
	TransportBearer Transport = "bearer"
	// TransportCookie relies on server-set cookies kept in a cookie jar.
	TransportCookie Transport = "cookie"
)

const (
	defaultUserAgent = "kitchen/1.0"
	requestTimeout   = 30 * time.Second
)

// Options configure a Client.
type Options struct {
	BaseURL    string
	Session    *session.Session
	Navigator  Navigator
	Transport  Transport
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Metrics    Recorder
	Logger     *slog.Logger
}

// Client talks to the KitchenHelper REST API.
type Client struct {
	base      string
	http      *http.Client
	session   *session.Session
	nav       Navigator
	transport Transport
	limiter   *rate.Limiter
	metrics   Recorder
	logger    *slog.Logger
	userAgent string
}

// NewClient builds a Client. BaseURL must be absolute; it is used as a
// plain prefix for every request path.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	transport := opts.Transport
	switch transport {
	case "":
		transport = TransportBearer
	case TransportBearer, TransportCookie:
	default:
		return nil, fmt.Errorf("unknown auth transport %q", transport)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	if transport == TransportCookie && httpClient.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		httpClient.Jar = jar
	}

	sess := opts.Session
	if sess == nil {
		sess = session.New(nil)
	}
	nav := opts.Navigator
	if nav == nil {
		nav = noopNavigator{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		base:      base,
		http:      httpClient,
		session:   sess,
		nav:       nav,
		transport: transport,
		limiter:   opts.Limiter,
		metrics:   opts.Metrics,
		logger:    logger,
		userAgent: defaultUserAgent,
	}, nil
}

// Session returns the session the client reads credentials from.
func (c *Client) Session() *session.Session {
	return c.session
}

// Transport returns the configured credential transport.
func (c *Client) Transport() Transport {
	return c.transport
}

// BaseURL returns the resolved API prefix.
func (c *Client) BaseURL() string {
	return c.base
}

// Request performs one API call. body, when non-nil, is sent as JSON; the
// response is decoded into out unless out is nil or the status is 204.
func (c *Client) Request(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return c.expire(ctx, path)
	case http.StatusNoContent:
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return requestFailed(resp.StatusCode, data)
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{
			Kind:    KindRequestFailed,
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("decode response: %v", err),
			Err:     err,
		}
	}
	return nil
}

// Get issues a GET without body.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Request(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Request(ctx, http.MethodPost, path, body, out)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.Request(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE without body.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Request(ctx, http.MethodDelete, path, nil, out)
}

// Download returns the raw response body for file exports. The JSON
// response path is skipped; credentials are attached as usual.
func (c *Client) Download(ctx context.Context, method, path string, body any) ([]byte, error) {
	resp, err := c.send(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, c.expire(ctx, path)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, requestFailed(resp.StatusCode, data)
	}
	return data, nil
}

func (c *Client) send(ctx context.Context, method, path string, body any) (*http.Response, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("path %q must be backend-relative", path)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if c.transport == TransportBearer {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.observe(method, 0, elapsed)
		c.logger.WarnContext(ctx, "api unreachable",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("request_id", requestID),
			slog.String("error", err.Error()),
		)
		return nil, &Error{
			Kind:    KindNetwork,
			Message: i18n.Message(c.session.Locale(), i18n.KeyServerUnreachable),
			Err:     err,
		}
	}
	c.observe(method, resp.StatusCode, elapsed)
	if resp.StatusCode >= 400 {
		c.logger.InfoContext(ctx, "api error status",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("request_id", requestID),
			slog.Int("status", resp.StatusCode),
		)
	}
	return resp, nil
}

// expire handles a 401: drop the session, send the user to the entry page
// and report the fixed session-expired message.
func (c *Client) expire(ctx context.Context, path string) error {
	if err := c.session.Clear(); err != nil {
		c.logger.ErrorContext(ctx, "clear session failed", slog.String("error", err.Error()))
	}
	if c.metrics != nil {
		c.metrics.SessionExpired()
	}
	c.logger.InfoContext(ctx, "session expired", slog.String("path", path))
	c.nav.Navigate(PageEntry)
	return &Error{
		Kind:    KindSessionExpired,
		Status:  http.StatusUnauthorized,
		Message: i18n.Message(c.session.Locale(), i18n.KeySessionExpired),
	}
}

func (c *Client) observe(method string, status int, elapsed time.Duration) {
	if c.metrics != nil {
		c.metrics.ObserveRequest(method, status, elapsed)
	}
}

func parseBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New("base url is empty")
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base url %q must be absolute", raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return strings.TrimRight(u.String(), "/"), nil
}
