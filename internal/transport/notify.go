// ABOUTME: User-facing error surfacing for failed requests
// ABOUTME: 401s are suppressed here because the auth layer handles them

package transport

import (
	"fmt"
	"log/slog"
	"net/http"
)

// Notifier receives human-readable failure messages. The CLI's default
// notifier logs them; a UI could toast them instead.
type Notifier interface {
	Notify(message string)
}

// LogNotifier surfaces failures through the structured logger.
type LogNotifier struct{}

func (LogNotifier) Notify(message string) {
	slog.Warn(message)
}

// connectFailedMessage matches the wording the web client shows when the
// backend is unreachable.
const connectFailedMessage = "Cannot connect to the server. Please check your network connection."

// NotifyTransport translates request failures into notifications. It sits
// outside the auth layer so it only sees 401s that survived the
// refresh-and-retry cycle, and it deliberately stays quiet about those to
// avoid duplicate logged-out noise.
type NotifyTransport struct {
	Base     http.RoundTripper
	Notifier Notifier
}

// WithNotify wraps a transport with failure notifications.
func WithNotify(n Notifier) func(http.RoundTripper) http.RoundTripper {
	return func(base http.RoundTripper) http.RoundTripper {
		return &NotifyTransport{Base: base, Notifier: n}
	}
}

func (t *NotifyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.Base.RoundTrip(req)
	if err != nil {
		if req.Context().Err() == nil {
			t.Notifier.Notify(connectFailedMessage)
		}
		return nil, err
	}

	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusUnauthorized {
		t.Notifier.Notify(fmt.Sprintf("Request to %s failed with status %d", req.URL.Path, resp.StatusCode))
	}
	return resp, nil
}
