package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileKey(t *testing.T) {
	assert.Equal(t, "profile:abc", profileKey("abc"))
}

func TestDisabled_AlwaysMisses(t *testing.T) {
	var c ProfileCache = Disabled{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "u", nil))
	_, err := c.Get(ctx, "u")
	assert.ErrorIs(t, err, ErrMiss)
	assert.NoError(t, c.Delete(ctx, "u"))
	assert.NoError(t, c.Close())
}

func TestNewRedisProfileCache_BadURL(t *testing.T) {
	_, err := NewRedisProfileCache(context.Background(), "://nope", time.Minute)
	require.Error(t, err)
}
