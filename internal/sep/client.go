// Package sep implements remote.Client against the Starburst Enterprise
// data product REST API.
package sep

import (
	"github.com/agentstation/sepdpc/internal/transport"
	"github.com/agentstation/sepdpc/pkg/constants"
	"github.com/agentstation/sepdpc/pkg/remote"
)

// Client talks to one Starburst Enterprise server.
type Client struct {
	http *transport.Client
}

var _ remote.Client = (*Client)(nil)

// New creates a client for host, acting as user. See transport.AuthFor for
// how token is sent.
func New(host, user, token string, opts ...transport.Option) *Client {
	return &Client{http: transport.New(host, user, token, opts...)}
}

// Host returns the normalized server URL.
func (c *Client) Host() string {
	return c.http.BaseURL()
}

// Domains implements remote.Client.
func (c *Client) Domains() remote.DomainService {
	return &domainService{http: c.http}
}

// Products implements remote.Client.
func (c *Client) Products() remote.ProductService {
	return &productService{http: c.http}
}

func endpoint(segments ...string) string {
	return transport.Path(constants.APIBasePath, segments...)
}
