package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Skotchmaster/farm_shop/internal/models"
)

var ErrMiss = errors.New("cache miss")

type ProfileCache interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Set(ctx context.Context, userID string, p *models.Profile) error
	Delete(ctx context.Context, userID string) error
	Close() error
}

func profileKey(userID string) string { return "profile:" + userID }

type RedisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisProfileCache(ctx context.Context, url string, ttl time.Duration) (*RedisProfileCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisProfileCache{client: client, ttl: ttl}, nil
}

func (c *RedisProfileCache) Get(ctx context.Context, userID string) (*models.Profile, error) {
	data, err := c.client.Get(ctx, profileKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, err
	}
	var p models.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *RedisProfileCache) Set(ctx context.Context, userID string, p *models.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, profileKey(userID), data, c.ttl).Err()
}

func (c *RedisProfileCache) Delete(ctx context.Context, userID string) error {
	return c.client.Del(ctx, profileKey(userID)).Err()
}

func (c *RedisProfileCache) Close() error {
	return c.client.Close()
}

// Disabled never stores anything.
type Disabled struct{}

func (Disabled) Get(context.Context, string) (*models.Profile, error) { return nil, ErrMiss }
func (Disabled) Set(context.Context, string, *models.Profile) error   { return nil }
func (Disabled) Delete(context.Context, string) error                 { return nil }
func (Disabled) Close() error                                         { return nil }
