// ABOUTME: Session manager: login/logout, startup hydration, proactive refresh timer
// ABOUTME: Owns the current-user state and broadcasts changes to subscribers

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/GramosTV/zelqora-client/internal/api"
	"github.com/GramosTV/zelqora-client/internal/keystore"
	"github.com/GramosTV/zelqora-client/internal/models"
	"github.com/GramosTV/zelqora-client/internal/token"
)

// State is the session lifecycle state.
type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
	StateRefreshing
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	case StateRefreshing:
		return "refreshing"
	default:
		return "unknown"
	}
}

// ErrNotAuthenticated is returned by operations that need a live session.
var ErrNotAuthenticated = errors.New("not authenticated")

// defaultLoginFailure matches the web client's fallback message when the
// backend rejects credentials without saying why.
const defaultLoginFailure = "Invalid email or password"

// Manager owns the session: it performs login/registration/logout,
// hydrates persisted state at startup, schedules the proactive refresh
// timer, and notifies subscribers when the current user changes.
type Manager struct {
	api    *api.Client
	store  *keystore.Store
	coord  *Coordinator
	leeway time.Duration // how long before expiry the proactive refresh fires

	mu      sync.Mutex
	state   State
	current *models.User
	timer   *time.Timer
	subs    map[chan *models.User]struct{}
}

func NewManager(apiClient *api.Client, store *keystore.Store, coord *Coordinator, leeway time.Duration) *Manager {
	return &Manager{
		api:    apiClient,
		store:  store,
		coord:  coord,
		leeway: leeway,
		state:  StateAnonymous,
		subs:   make(map[chan *models.User]struct{}),
	}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CurrentUser returns the signed-in user, or nil when anonymous.
func (m *Manager) CurrentUser() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Subscribe returns a channel that receives the user on every session
// change (nil when the session ends). Sends never block; a slow consumer
// misses intermediate values, not the subscription.
func (m *Manager) Subscribe() chan *models.User {
	ch := make(chan *models.User, 16)
	m.mu.Lock()
	m.subs[ch] = struct{}{}
	m.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscription channel.
func (m *Manager) Unsubscribe(ch chan *models.User) {
	m.mu.Lock()
	delete(m.subs, ch)
	m.mu.Unlock()
}

func (m *Manager) notify(u *models.User) {
	m.mu.Lock()
	chans := make([]chan *models.User, 0, len(m.subs))
	for ch := range m.subs {
		chans = append(chans, ch)
	}
	m.mu.Unlock()

	for _, ch := range chans {
		select {
		case ch <- u:
		default:
		}
	}
}

// Login authenticates and establishes a session. On rejection the
// backend's message is surfaced, or a default one when it has none.
func (m *Manager) Login(ctx context.Context, email, password string) (*models.User, error) {
	m.setState(StateAuthenticating)

	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		m.setState(StateAnonymous)
		return nil, loginError(err)
	}

	if err := m.establish(resp); err != nil {
		m.setState(StateAnonymous)
		return nil, err
	}
	return resp.User, nil
}

// Register creates an account and establishes a session, same flow as Login.
func (m *Manager) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	m.setState(StateAuthenticating)

	resp, err := m.api.Register(ctx, req)
	if err != nil {
		m.setState(StateAnonymous)
		return nil, err
	}

	if err := m.establish(resp); err != nil {
		m.setState(StateAnonymous)
		return nil, err
	}
	return resp.User, nil
}

// Logout ends the session. The server-side invalidation call is
// best-effort: local state is cleared whether or not it succeeds, and
// calling Logout when already logged out is a no-op.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.api.Logout(ctx); err != nil {
		slog.Debug("Server-side logout failed", "error", err)
	}
	m.teardown()
}

// Restore hydrates the session from persisted state at startup. A valid
// persisted token brings the cached profile up immediately and refreshes
// it from the backend in the background. An expired token gets exactly
// one refresh attempt. An undecodable token forces logout.
func (m *Manager) Restore(ctx context.Context) error {
	access := m.store.AccessToken()
	if access == "" {
		return nil
	}

	claims, err := token.Decode(access)
	if err != nil {
		slog.Warn("Persisted token is malformed, clearing session", "error", err)
		m.teardown()
		return nil
	}

	if !token.IsExpired(access) {
		m.mu.Lock()
		m.state = StateAuthenticated
		m.current = m.store.User()
		m.mu.Unlock()

		m.notify(m.CurrentUser())
		m.scheduleRefresh(claims.ExpiresAt)
		go m.refreshProfile(claims.Subject)
		return nil
	}

	// Expired: one refresh attempt, then give up
	m.setState(StateRefreshing)
	pair, err := m.coord.Refresh(ctx)
	if err != nil {
		m.teardown()
		if errors.Is(err, ErrNoRefreshToken) {
			return nil
		}
		return fmt.Errorf("session expired: %w", err)
	}

	newClaims, err := token.Decode(pair.AccessToken)
	if err != nil {
		m.teardown()
		return fmt.Errorf("refreshed token is malformed: %w", err)
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.current = m.store.User()
	m.mu.Unlock()

	m.notify(m.CurrentUser())
	m.scheduleRefresh(newClaims.ExpiresAt)
	go m.refreshProfile(newClaims.Subject)
	return nil
}

// Refresh exchanges the refresh token on behalf of the HTTP auth layer,
// keeping the session state in step with the outcome: a rejected exchange
// ends the session, a successful one re-arms the proactive timer. A pair
// minted while a logout raced the exchange is discarded, not resurrected.
func (m *Manager) Refresh(ctx context.Context) (models.TokenPair, error) {
	pair, err := m.coord.Refresh(ctx)
	if err != nil {
		m.teardown()
		return models.TokenPair{}, err
	}

	m.mu.Lock()
	loggedOut := m.state == StateAnonymous
	m.mu.Unlock()
	if loggedOut {
		if clearErr := m.store.Clear(); clearErr != nil {
			slog.Warn("Failed to discard post-logout token pair", "error", clearErr)
		}
		return models.TokenPair{}, ErrNotAuthenticated
	}

	if claims, decodeErr := token.Decode(pair.AccessToken); decodeErr == nil && !claims.ExpiresAt.IsZero() {
		m.scheduleRefresh(claims.ExpiresAt)
	}
	return pair, nil
}

// establish persists the auth response and moves to AUTHENTICATED.
func (m *Manager) establish(resp *models.AuthResponse) error {
	if err := m.store.SaveTokens(resp.AccessToken, resp.RefreshToken); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	if err := m.store.SaveUser(resp.User); err != nil {
		return fmt.Errorf("failed to persist profile: %w", err)
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.current = resp.User
	m.mu.Unlock()

	m.notify(resp.User)

	if claims, err := token.Decode(resp.AccessToken); err == nil && !claims.ExpiresAt.IsZero() {
		m.scheduleRefresh(claims.ExpiresAt)
	}
	return nil
}

// scheduleRefresh arms the proactive refresh timer at expiry minus the
// leeway. There is at most one active timer: arming a new one stops the
// previous one.
func (m *Manager) scheduleRefresh(expiresAt time.Time) {
	if expiresAt.IsZero() {
		return
	}

	delay := time.Until(expiresAt) - m.leeway
	if delay < 0 {
		delay = 0
	}

	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
	}
	m.timer = time.AfterFunc(delay, m.proactiveRefresh)
	m.mu.Unlock()

	slog.Debug("Proactive refresh scheduled", "in", delay)
}

// proactiveRefresh runs when the timer fires. A session torn down in the
// meantime (logout raced the timer) is left alone.
func (m *Manager) proactiveRefresh() {
	m.mu.Lock()
	if m.state != StateAuthenticated {
		m.mu.Unlock()
		return
	}
	m.state = StateRefreshing
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pair, err := m.coord.Refresh(ctx)
	if err != nil {
		slog.Warn("Proactive token refresh failed", "error", err)
		m.teardown()
		return
	}

	// Logout may have ended the session while the exchange was in flight.
	// The coordinator has already persisted the new pair by now, so a
	// stale result is both dropped and scrubbed from the keystore.
	m.mu.Lock()
	if m.state != StateRefreshing {
		ended := m.state == StateAnonymous
		m.mu.Unlock()
		slog.Debug("Discarding refresh result, session ended mid-exchange")
		if ended {
			if clearErr := m.store.Clear(); clearErr != nil {
				slog.Warn("Failed to discard post-logout token pair", "error", clearErr)
			}
		}
		return
	}
	m.state = StateAuthenticated
	m.mu.Unlock()

	if claims, err := token.Decode(pair.AccessToken); err == nil {
		m.scheduleRefresh(claims.ExpiresAt)
	}
}

// refreshProfile re-reads the user record keyed by the token subject and
// updates the cache. Failures leave the cached profile in place.
func (m *Manager) refreshProfile(subject string) {
	if subject == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	user, err := m.api.User(ctx, subject)
	if err != nil {
		slog.Debug("Profile refresh failed, keeping cached profile", "error", err)
		return
	}

	if err := m.store.SaveUser(user); err != nil {
		slog.Warn("Failed to cache refreshed profile", "error", err)
	}

	m.mu.Lock()
	stillAuthenticated := m.state == StateAuthenticated
	if stillAuthenticated {
		m.current = user
	}
	m.mu.Unlock()

	if stillAuthenticated {
		m.notify(user)
	}
}

// teardown cancels the timer, clears persisted state, and announces the
// absent user. Safe to call repeatedly.
func (m *Manager) teardown() {
	m.mu.Lock()
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.state = StateAnonymous
	m.current = nil
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		slog.Warn("Failed to clear persisted session", "error", err)
	}
	m.notify(nil)
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// loginError maps a backend rejection to the message shown to the user.
func loginError(err error) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return errors.New(apiErr.Message)
		}
		if apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusBadRequest {
			return errors.New(defaultLoginFailure)
		}
	}
	return err
}
