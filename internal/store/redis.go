package store

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// RedisBackend persists snapshots in Redis, one JSON document per key.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend wraps an existing Redis client. The prefix namespaces the
// snapshot keys so the simulator can share a Redis instance.
func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	if prefix == "" {
		prefix = "tradesim:"
	}
	return &RedisBackend{client: client, prefix: prefix}
}

func (b *RedisBackend) Load(ctx context.Context, key string, dest interface{}) error {
	data, err := b.client.Get(ctx, b.prefix+key).Result()
	if err == redis.Nil {
		return ErrNoSnapshot
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func (b *RedisBackend) Save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	// Snapshots never expire; they are replaced on the next save.
	return b.client.Set(ctx, b.prefix+key, data, 0).Err()
}

func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	return b.client.Del(ctx, b.prefix+key).Err()
}
