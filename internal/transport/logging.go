// ABOUTME: Request logging round tripper with correlation IDs
// ABOUTME: Logs method, path, status, and latency at debug level

package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// LoggingTransport logs each request with a correlation ID. The ID is also
// sent as X-Request-ID so backend logs can be matched up.
type LoggingTransport struct {
	Base http.RoundTripper
}

// WithLogging wraps a transport with request logging.
func WithLogging() func(http.RoundTripper) http.RoundTripper {
	return func(base http.RoundTripper) http.RoundTripper {
		return &LoggingTransport{Base: base}
	}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	requestID := uuid.NewString()

	outgoing := req.Clone(req.Context())
	outgoing.Header.Set("X-Request-ID", requestID)

	slog.Debug("Request started",
		"request_id", requestID,
		"method", req.Method,
		"path", req.URL.Path,
	)

	resp, err := t.Base.RoundTrip(outgoing)
	if err != nil {
		slog.Debug("Request failed",
			"request_id", requestID,
			"method", req.Method,
			"path", req.URL.Path,
			"latency_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return nil, err
	}

	slog.Debug("Request completed",
		"request_id", requestID,
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}
