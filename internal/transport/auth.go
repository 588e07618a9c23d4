// ABOUTME: Bearer token attachment and 401 recovery round tripper
// ABOUTME: On 401, runs exactly one refresh-and-retry cycle; never loops

package transport

import (
	"io"
	"log/slog"
	"net/http"
)

// AuthTransport attaches the current access token to outgoing requests
// and recovers from a single 401 by refreshing and retrying once.
type AuthTransport struct {
	Base      http.RoundTripper
	Tokens    TokenSource
	Refresher Refresher
}

// WithAuth wraps a transport with token attachment and 401 recovery.
func WithAuth(tokens TokenSource, refresher Refresher) func(http.RoundTripper) http.RoundTripper {
	return func(base http.RoundTripper) http.RoundTripper {
		return &AuthTransport{Base: base, Tokens: tokens, Refresher: refresher}
	}
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Auth endpoints carry no bearer token and are never retried
	if isAuthPath(req.URL.Path) {
		return t.Base.RoundTrip(req)
	}

	outgoing := req
	if token := t.Tokens.AccessToken(); token != "" {
		outgoing = setBearer(req, token)
	}

	resp, err := t.Base.RoundTrip(outgoing)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	// A request with a body can only be re-sent if it is rewindable.
	// Requests built with http.NewRequest from an in-memory reader are.
	if req.Body != nil && req.GetBody == nil {
		slog.Debug("401 not retried: request body cannot be rewound",
			"method", req.Method, "path", req.URL.Path)
		return resp, nil
	}

	pair, refreshErr := t.Refresher.Refresh(req.Context())
	if refreshErr != nil {
		// The coordinator has already torn the session down; the
		// original 401 propagates and no second retry happens.
		slog.Debug("401 not retried: refresh failed",
			"method", req.Method, "path", req.URL.Path, "error", refreshErr)
		return resp, nil
	}

	// Drain and close the 401 body so the connection can be reused
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	retry := setBearer(req, pair.AccessToken)
	if req.GetBody != nil {
		body, bodyErr := req.GetBody()
		if bodyErr != nil {
			return nil, bodyErr
		}
		retry.Body = body
	}

	slog.Debug("Retrying request after token refresh",
		"method", req.Method, "path", req.URL.Path)
	return t.Base.RoundTrip(retry)
}
