// ABOUTME: Refresh coordinator: exchanges the stored refresh token for a new pair
// ABOUTME: Single-flight so concurrent 401s never double-spend a single-use refresh token

package session

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/GramosTV/zelqora-client/internal/api"
	"github.com/GramosTV/zelqora-client/internal/keystore"
	"github.com/GramosTV/zelqora-client/internal/models"
)

// ErrNoRefreshToken means there is nothing to exchange; the caller must
// treat the session as logged out.
var ErrNoRefreshToken = errors.New("no refresh token available")

// Coordinator owns the refresh-token exchange. Refresh tokens are
// typically single-use server-side, so concurrent callers are collapsed
// into one in-flight exchange and all of them receive the same result.
type Coordinator struct {
	api   *api.Client // bare client: no auth transport, no retry loop
	store *keystore.Store
	group singleflight.Group
}

func NewCoordinator(apiClient *api.Client, store *keystore.Store) *Coordinator {
	return &Coordinator{api: apiClient, store: store}
}

// Refresh exchanges the stored refresh token for a new pair and persists
// it. On any exchange failure the whole session is cleared (fail-closed)
// and the error propagates to every coalesced caller.
func (c *Coordinator) Refresh(ctx context.Context) (models.TokenPair, error) {
	v, err, shared := c.group.Do("refresh", func() (any, error) {
		refreshToken := c.store.RefreshToken()
		if refreshToken == "" {
			return nil, ErrNoRefreshToken
		}

		pair, err := c.api.ExchangeRefreshToken(ctx, refreshToken)
		if err != nil {
			if clearErr := c.store.Clear(); clearErr != nil {
				slog.Warn("Failed to clear session after refresh failure", "error", clearErr)
			}
			return nil, err
		}

		if err := c.store.SaveTokens(pair.AccessToken, pair.RefreshToken); err != nil {
			return nil, err
		}
		return *pair, nil
	})
	if err != nil {
		return models.TokenPair{}, err
	}
	if shared {
		slog.Debug("Coalesced concurrent token refresh")
	}
	return v.(models.TokenPair), nil
}
