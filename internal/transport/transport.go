// ABOUTME: HTTP round tripper chain for the authenticated API client
// ABOUTME: Composable wrappers mirroring the web client's interceptor stack

package transport

import (
	"context"
	"crypto/tls"
	"net/http"
	"strings"

	"github.com/GramosTV/zelqora-client/internal/models"
)

// TokenSource provides the current access token. An empty string means
// no token is available and the request proceeds unauthenticated.
type TokenSource interface {
	AccessToken() string
}

// Refresher exchanges the stored refresh token for a new pair. Concurrent
// callers must be coalesced into one in-flight exchange.
type Refresher interface {
	Refresh(ctx context.Context) (models.TokenPair, error)
}

// RefresherFunc adapts a function to the Refresher interface.
type RefresherFunc func(ctx context.Context) (models.TokenPair, error)

func (f RefresherFunc) Refresh(ctx context.Context) (models.TokenPair, error) {
	return f(ctx)
}

// authPaths are endpoints that must never carry a bearer token and never
// trigger a refresh, to avoid a circular dependency on the session.
// Matched by substring, like the web client's interceptor.
var authPaths = []string{
	"/auth/login",
	"/auth/register",
	"/auth/refresh-token",
	"/auth/request-password-reset",
	"/auth/reset-password",
}

func isAuthPath(path string) bool {
	for _, p := range authPaths {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}

// Chain applies round tripper wrappers to a base transport in order.
// The first wrapper in the list is the outermost (observes first).
func Chain(base http.RoundTripper, wrappers ...func(http.RoundTripper) http.RoundTripper) http.RoundTripper {
	for i := len(wrappers) - 1; i >= 0; i-- {
		base = wrappers[i](base)
	}
	return base
}

// BaseTransport builds the innermost transport, optionally skipping TLS
// verification for lab environments.
func BaseTransport(skipSSLValidation bool) http.RoundTripper {
	if !skipSSLValidation {
		return http.DefaultTransport
	}
	return &http.Transport{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}
}

// setBearer clones the request with an Authorization header attached.
// Round trippers must not mutate the caller's request.
func setBearer(req *http.Request, accessToken string) *http.Request {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+accessToken)
	return clone
}
