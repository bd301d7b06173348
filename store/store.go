package store

import "context"

// Keys under which the session credentials are persisted. Nothing else is durably
// stored by the SDK: the user profile is re-fetched after a restart rather than
// cached, so a stale profile can never survive a process boundary.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
)

// TokenStore is the durable key-value backend for the session credentials.
// Implementations must be idempotent: removing an absent key and overwriting an
// existing one are not errors. Get returns an empty string for an absent key.
type TokenStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
