package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/farm_shop/internal/cache"
	"github.com/Skotchmaster/farm_shop/internal/models"
	"github.com/Skotchmaster/farm_shop/internal/transport"
)

type mapCache struct {
	mu      sync.Mutex
	entries map[string]models.Profile
	hits    int
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]models.Profile)}
}

func (c *mapCache) Get(_ context.Context, userID string) (*models.Profile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.entries[userID]
	if !ok {
		return nil, cache.ErrMiss
	}
	c.hits++
	return &p, nil
}

func (c *mapCache) Set(_ context.Context, userID string, p *models.Profile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = *p
	return nil
}

func (c *mapCache) Delete(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
	return nil
}

func (c *mapCache) Close() error { return nil }

func strptr(s string) *string { return &s }

func TestUpdateProfileMergePatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.signup(t, "farmer@farm.test")

	require.NoError(t, env.Profile.UpdateProfile(ctx, p, p.ID, transport.ProfilePatch{
		Address:     strptr("1 Barn Road"),
		PhoneNumber: strptr("+100000"),
	}))
	require.NoError(t, env.Profile.UpdateProfile(ctx, p, p.ID, transport.ProfilePatch{
		Gender: strptr("f"),
	}))

	profile, err := env.Profile.GetProfile(ctx, p, p.ID)
	require.NoError(t, err)
	require.NotNil(t, profile.Address)
	assert.Equal(t, "1 Barn Road", *profile.Address)
	assert.Equal(t, "+100000", *profile.PhoneNumber)
	assert.Equal(t, "f", *profile.Gender)
	assert.Equal(t, "farmer", *profile.FullName)
	assert.Nil(t, profile.Birthday)
}

func TestEmptyPatchKeepsProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.signup(t, "empty@farm.test")

	require.NoError(t, env.Profile.UpdateProfile(ctx, p, p.ID, transport.ProfilePatch{}))
}

func TestProfileIsolation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.signup(t, "pa@farm.test")
	b := env.signup(t, "pb@farm.test")

	_, err := env.Profile.GetProfile(ctx, a, b.ID)
	require.ErrorIs(t, err, ErrForbidden)

	err = env.Profile.UpdateProfile(ctx, a, b.ID, transport.ProfilePatch{Address: strptr("x")})
	require.ErrorIs(t, err, ErrForbidden)

	profile, err := env.Profile.GetProfile(ctx, b, b.ID)
	require.NoError(t, err)
	assert.Nil(t, profile.Address)
}

func TestProfileMissingRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.signup(t, "gone@farm.test")

	require.NoError(t, env.Repo.DB.Where("user_id = ?", p.ID).Delete(&models.Profile{}).Error)

	_, err := env.Profile.GetProfile(ctx, p, p.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, env.Profile.UpdateProfile(ctx, p, p.ID, transport.ProfilePatch{Gender: strptr("m")}), ErrNotFound)
}

func TestProfileCacheAside(t *testing.T) {
	env := newTestEnv(t)
	c := newMapCache()
	env.Profile.Cache = c
	ctx := context.Background()
	p := env.signup(t, "cached@farm.test")

	_, err := env.Profile.GetProfile(ctx, p, p.ID)
	require.NoError(t, err)
	_, err = env.Profile.GetProfile(ctx, p, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, c.hits)

	require.NoError(t, env.Profile.UpdateProfile(ctx, p, p.ID, transport.ProfilePatch{Address: strptr("new")}))

	profile, err := env.Profile.GetProfile(ctx, p, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", *profile.Address)
	assert.Equal(t, 1, c.hits)
}
