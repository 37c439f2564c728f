package transport

import (
	"net/http"
	"strings"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request, credential string)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request, _ string) {
	// No authentication applied
}

// BasicAuth sends the credential as the password of User.
type BasicAuth struct {
	User string
}

// Apply implements the Authenticator interface for BasicAuth.
func (a *BasicAuth) Apply(req *http.Request, password string) {
	req.SetBasicAuth(a.User, password)
}

// BearerAuth implements Bearer token authentication.
type BearerAuth struct{}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request, token string) {
	req.Header.Set("Authorization", "Bearer "+token)
}

// HeaderAuth sends the credential verbatim in Header.
type HeaderAuth struct {
	Header string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request, value string) {
	req.Header.Set(a.Header, value)
}

// AuthFor picks the authenticator for a user and token pair. A token that
// already carries a scheme ("Basic ..." or "Bearer ...") is sent as the
// Authorization header unchanged; any other token is the user's password.
func AuthFor(user, token string) Authenticator {
	if token == "" {
		return &NoAuth{}
	}
	if hasScheme(token, "Basic") || hasScheme(token, "Bearer") {
		return &HeaderAuth{Header: "Authorization"}
	}
	return &BasicAuth{User: user}
}

func hasScheme(token, scheme string) bool {
	return len(token) > len(scheme) &&
		strings.EqualFold(token[:len(scheme)], scheme) &&
		token[len(scheme)] == ' '
}
