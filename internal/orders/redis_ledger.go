package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"storefront/internal/domain"
)

// RedisLedger keeps each session's orders as one serialized JSON array under
// a single key, the durable-client-storage analog. Orders persist until the
// key is purged; no TTL is applied.
type RedisLedger struct {
	client *redis.Client
}

func NewRedisLedger(client *redis.Client) *RedisLedger {
	return &RedisLedger{client: client}
}

func (l *RedisLedger) List(ctx context.Context, sessionID string) ([]domain.Order, error) {
	data, err := l.client.Get(ctx, ledgerKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []domain.Order{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var orders []domain.Order
	if err2 := json.Unmarshal(data, &orders); err2 != nil {
		return nil, fmt.Errorf("unmarshal orders failed: %w", err2)
	}

	return orders, nil
}

func (l *RedisLedger) Append(ctx context.Context, sessionID string, order domain.Order) error {
	orders, err := l.List(ctx, sessionID)
	if err != nil {
		return err
	}

	orders = append(orders, order)
	return l.store(ctx, sessionID, orders)
}

// Cancel removes exactly one entry matching the id and rewrites the full
// sequence. Other entries and their item contents are untouched.
func (l *RedisLedger) Cancel(ctx context.Context, sessionID string, orderID int64) error {
	orders, err := l.List(ctx, sessionID)
	if err != nil {
		return err
	}

	kept := orders[:0]
	found := false
	for _, o := range orders {
		if o.ID == orderID && !found {
			found = true
			continue
		}
		kept = append(kept, o)
	}

	if !found {
		return ErrOrderNotFound
	}

	return l.store(ctx, sessionID, kept)
}

func (l *RedisLedger) store(ctx context.Context, sessionID string, orders []domain.Order) error {
	payload, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("marshal orders failed: %w", err)
	}

	if err := l.client.Set(ctx, ledgerKey(sessionID), payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func ledgerKey(sessionID string) string {
	return fmt.Sprintf("orders:%s", sessionID)
}
