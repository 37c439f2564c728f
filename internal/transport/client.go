// Package transport is the JSON-over-HTTP client used to talk to Starburst
// Enterprise. It applies authentication and the Trino user header to every
// request and turns non-2xx responses into *errors.APIError.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/agentstation/sepdpc/pkg/constants"
	"github.com/agentstation/sepdpc/pkg/errors"
	"github.com/agentstation/sepdpc/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Client provides HTTP client functionality with authentication.
type Client struct {
	http      *http.Client
	auth      Authenticator
	baseURL   string
	user      string
	token     string
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = timeout
	}
}

// WithAuthenticator overrides the authenticator chosen by AuthFor.
func WithAuthenticator(auth Authenticator) Option {
	return func(c *Client) {
		c.auth = auth
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a client for the server at baseURL. A host without a scheme
// is reached over https.
func New(baseURL, user, token string, opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: DefaultHTTPTimeout},
		auth:      AuthFor(user, token),
		baseURL:   NormalizeBaseURL(baseURL),
		user:      user,
		token:     token,
		userAgent: constants.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized server URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends a JSON request and decodes the JSON response into target. body
// and target may be nil. path is relative to the base URL.
func (c *Client) Do(ctx context.Context, method, path string, body, target any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.WrapParse("json", method+" "+path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.WrapAPI(method, path, err)
	}

	// Set common headers
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.user != "" {
		req.Header.Set(constants.TrinoUserHeader, c.user)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	c.auth.Apply(req, c.token)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WrapAPI(method, path, err)
	}

	logging.FromContext(ctx).Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Remote request")

	return decodeResponse(resp, method, path, target)
}

// NormalizeBaseURL adds https:// to a bare host and drops trailing slashes.
func NormalizeBaseURL(host string) string {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host == "" {
		return ""
	}
	if !strings.Contains(host, "://") {
		host = "https://" + host
	}
	return host
}
