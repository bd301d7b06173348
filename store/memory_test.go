package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	v, err := s.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	assert.Empty(t, v, "missing key reads as empty")

	require.NoError(t, s.Set(ctx, KeyAccessToken, "AT1"))
	v, err = s.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	assert.Equal(t, "AT1", v)

	require.NoError(t, s.Remove(ctx, KeyAccessToken))
	v, err = s.Get(ctx, KeyAccessToken)
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, s.Remove(ctx, "never-set"), "removing an absent key is fine")
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.Set(ctx, KeyAccessToken, "AT")
				_, _ = s.Get(ctx, KeyRefreshToken)
				_ = s.Remove(ctx, KeyRefreshToken)
			}
		}()
	}
	wg.Wait()
}
