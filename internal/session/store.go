package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"storefront/internal/domain"
)

var ErrNoUser = errors.New("no user stored for session")

// Store holds the per-session user projection and issued token, the server
// analog of the storefront's `user` and `token` local-storage keys. The
// projection has no freshness contract: it stays as written until the next
// login or profile update. The token is stored but never consumed by any
// later request path.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) SetUser(ctx context.Context, sessionID string, user domain.UserProjection) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user projection failed: %w", err)
	}

	if err := s.client.Set(ctx, userKey(sessionID), payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, sessionID string) (*domain.UserProjection, error) {
	data, err := s.client.Get(ctx, userKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoUser
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var user domain.UserProjection
	if err2 := json.Unmarshal(data, &user); err2 != nil {
		return nil, fmt.Errorf("unmarshal user projection failed: %w", err2)
	}

	return &user, nil
}

func (s *Store) SetToken(ctx context.Context, sessionID, token string) error {
	if err := s.client.Set(ctx, tokenKey(sessionID), token, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *Store) ClearUser(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, userKey(sessionID), tokenKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func userKey(sessionID string) string {
	return fmt.Sprintf("user:%s", sessionID)
}

func tokenKey(sessionID string) string {
	return fmt.Sprintf("token:%s", sessionID)
}
