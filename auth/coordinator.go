package auth

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/andreazagoit/upcominghub-native/enums"
	"github.com/andreazagoit/upcominghub-native/models"
	"github.com/andreazagoit/upcominghub-native/store"
	"github.com/andreazagoit/upcominghub-native/utils/logger"
)

// refreshKey collapses all concurrent refresh attempts into one exchange.
const refreshKey = "refresh"

// RefreshCoordinator turns the current refresh token into a new pair, with at
// most one exchange in flight at any time. Callers that arrive while an exchange
// is running share its outcome instead of issuing their own: the refresh token is
// single use, so a second parallel exchange would be rejected by the server and
// would invalidate the first caller's freshly minted pair.
type RefreshCoordinator struct {
	client *identityClient
	state  *State
	tokens store.TokenStore
	group  singleflight.Group
}

func newRefreshCoordinator(client *identityClient, state *State, tokens store.TokenStore) *RefreshCoordinator {
	return &RefreshCoordinator{client: client, state: state, tokens: tokens}
}

// Refresh exchanges the session's refresh token for a new pair. On success the
// pair is persisted and published to the session state before any caller sees
// the result. On failure the session is left untouched; the caller decides
// whether to tear it down.
func (rc *RefreshCoordinator) Refresh(ctx context.Context) (models.TokenPair, error) {
	v, err, _ := rc.group.Do(refreshKey, func() (interface{}, error) {
		current := rc.state.Read().Tokens.RefreshToken
		if current == "" {
			return nil, ErrNoRefreshToken
		}
		pair, err := rc.client.refresh(ctx, current)
		if err != nil {
			return nil, err
		}
		rc.commit(ctx, pair)
		logger.LogDebug("session tokens rotated")
		return pair, nil
	})
	if err != nil {
		return models.TokenPair{}, err
	}
	return v.(models.TokenPair), nil
}

// commit persists and publishes a new pair as one observable step: a subscriber
// notified of the change can immediately read both new tokens.
func (rc *RefreshCoordinator) commit(ctx context.Context, pair models.TokenPair) {
	store.SaveTokens(ctx, rc.tokens, pair)
	rc.state.mutate(func(s *Session) {
		s.Tokens = pair
		s.Status = enums.SessionAuthenticated
	})
}
