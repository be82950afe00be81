package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/internal/domain"
)

const cartKeyPrefix = "cart:"

// RedisCache keeps a JSON copy of each session's cart in front of Mongo.
// Entries expire on their own; mutations go through the repository and
// invalidate here.
type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 30 * time.Minute,
	}
}

func (r *RedisCache) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, cacheKey(sessionID)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, ErrCacheMiss
	case err != nil:
		return nil, fmt.Errorf("cache read for session %s: %w", sessionID, err)
	}

	var cached domain.Cart
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("decode cached cart: %w", err)
	}

	return &cached, nil
}

func (r *RedisCache) Set(ctx context.Context, sessionID string, cart *domain.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}

	// spread expirations so a burst of warm sessions does not refill at once
	ttl := r.baseTTL + time.Duration(rand.Int63n(int64(3*time.Minute)))
	if err := r.client.Set(ctx, cacheKey(sessionID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("cache write for session %s: %w", sessionID, err)
	}
	return nil
}

func (r *RedisCache) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cacheKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("cache invalidate for session %s: %w", sessionID, err)
	}
	return nil
}

func cacheKey(sessionID string) string {
	return cartKeyPrefix + sessionID
}
