package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/andreazagoit/upcominghub-native/models"
	"github.com/andreazagoit/upcominghub-native/utils/logger"
)

// SaveTokens persists both credentials of a pair. Storage failures are logged and
// swallowed here: nothing above this boundary handles a persistence error, and a
// failed disk write must never abort a sign-in or a refresh.
func SaveTokens(ctx context.Context, s TokenStore, pair models.TokenPair) {
	if err := s.Set(ctx, KeyAccessToken, pair.AccessToken); err != nil {
		logger.LogWarn("failed to persist access token", zap.Error(err))
	}
	if err := s.Set(ctx, KeyRefreshToken, pair.RefreshToken); err != nil {
		logger.LogWarn("failed to persist refresh token", zap.Error(err))
	}
}

// LoadTokens reads both credentials. A read failure is treated as an absent value,
// which downstream resolves to "not signed in".
func LoadTokens(ctx context.Context, s TokenStore) models.TokenPair {
	access, err := s.Get(ctx, KeyAccessToken)
	if err != nil {
		logger.LogWarn("failed to read access token", zap.Error(err))
	}
	refresh, err := s.Get(ctx, KeyRefreshToken)
	if err != nil {
		logger.LogWarn("failed to read refresh token", zap.Error(err))
	}
	return models.TokenPair{AccessToken: access, RefreshToken: refresh}
}

// ClearTokens removes both credentials. A sign-out is never blocked by a storage
// error.
func ClearTokens(ctx context.Context, s TokenStore) {
	if err := s.Remove(ctx, KeyAccessToken); err != nil {
		logger.LogWarn("failed to remove access token", zap.Error(err))
	}
	if err := s.Remove(ctx, KeyRefreshToken); err != nil {
		logger.LogWarn("failed to remove refresh token", zap.Error(err))
	}
}
