package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{
		client: client,
		ttl:    30 * 24 * time.Hour,
	}
}

// RedisStorage keeps the whole cart as one JSON record per session.
type RedisStorage struct {
	client *redis.Client
	ttl    time.Duration
}

func (r RedisStorage) Load(ctx context.Context, sessionID string) (*Cart, error) {
	data, err := r.client.Get(ctx, storageKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var cart Cart
	if err2 := json.Unmarshal(data, &cart); err2 != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err2)
	}

	return &cart, nil
}

func (r RedisStorage) Save(ctx context.Context, sessionID string, cart *Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	if err := r.client.Set(ctx, storageKey(sessionID), string(data), r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r RedisStorage) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, storageKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}

	return nil
}

func storageKey(sessionID string) string {
	return fmt.Sprintf("oja:cart:%s", sessionID)
}
