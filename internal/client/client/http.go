package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophblog/internal/client/router"
	"github.com/dmitrijs2005/gophblog/internal/common"
	"github.com/dmitrijs2005/gophblog/internal/logging"
)

const defaultTimeout = 10 * time.Second

// HTTPClient is the shared transport of all resource clients.
type HTTPClient struct {
	baseURL  *url.URL
	http     *http.Client
	session  Session
	nav      router.Navigator
	log      logging.Logger
	schedule func(func())
	newID    func() string
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithNavigator enables the redirect to the login view on 401.
func WithNavigator(nav router.Navigator) Option {
	return func(c *HTTPClient) { c.nav = nav }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.log = l
		}
	}
}

// WithScheduler replaces the zero-delay timer used to defer the 401
// redirect. Tests pass a function that runs fn inline.
func WithScheduler(s func(fn func())) Option {
	return func(c *HTTPClient) { c.schedule = s }
}

func NewHTTPClient(baseURL string, session Session, opts ...Option) (*HTTPClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("base URL is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}

	c := &HTTPClient{
		baseURL:  u,
		http:     &http.Client{Timeout: defaultTimeout},
		session:  session,
		log:      logging.NewNop(),
		schedule: func(fn func()) { time.AfterFunc(0, fn) },
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With("component", "http")
	return c, nil
}

// BaseURL returns the API root every path is joined to.
func (c *HTTPClient) BaseURL() string { return c.baseURL.String() }

// do sends one request. A non-nil body is sent as JSON; a 2xx response
// body is decoded into out when out is non-nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	ctx = logging.WithRequestID(ctx, c.prepare(ctx, req))

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "request done",
		"method", method, "path", path, "status", resp.StatusCode,
		"duration", time.Since(start))

	return c.handle(ctx, resp.StatusCode, data, out)
}

// prepare is the request interceptor.
func (c *HTTPClient) prepare(ctx context.Context, req *http.Request) string {
	req.Header.Set("Accept", common.ContentTypeJSON)
	if req.Body != nil {
		req.Header.Set("Content-Type", common.ContentTypeJSON)
	}
	if c.session != nil {
		if token := c.session.Token(ctx); token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}
	id := c.newID()
	req.Header.Set(common.RequestIDHeaderName, id)
	return id
}

// handle is the response interceptor.
func (c *HTTPClient) handle(ctx context.Context, status int, data []byte, out any) error {
	if status == http.StatusUnauthorized {
		c.onUnauthorized(ctx)
	}
	if status < 200 || status > 299 {
		return newAPIError(status, data)
	}

	c.captureToken(ctx, data)

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) captureToken(ctx context.Context, data []byte) {
	if c.session == nil || len(data) == 0 || data[0] != '{' {
		return
	}
	var peek struct {
		AccessToken string `json:"access_token"`
	}
	if json.Unmarshal(data, &peek) == nil && peek.AccessToken != "" {
		c.session.SetToken(ctx, peek.AccessToken)
	}
}

func (c *HTTPClient) onUnauthorized(ctx context.Context) {
	if c.session != nil {
		c.session.Logout(ctx)
	}
	if c.nav == nil || router.IsAuthView(c.nav.Current()) {
		return
	}
	c.log.Info(ctx, "session rejected, redirecting to login")
	nav := c.nav
	c.schedule(func() {
		if !router.IsAuthView(nav.Current()) {
			nav.Navigate(router.ViewLogin)
		}
	})
}
