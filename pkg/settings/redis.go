package settings

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the hash holding the settings.
const DefaultRedisKey = "cleanread:settings"

// RedisStore keeps settings as a Redis hash, one field per key.
type RedisStore struct {
	client redis.UniversalClient
	key    string
}

// NewRedisStore uses client and hash key; an empty key means DefaultRedisKey.
func NewRedisStore(client redis.UniversalClient, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// NewRedisStoreFromURL parses a redis:// URL.
func NewRedisStoreFromURL(url, key string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	return NewRedisStore(redis.NewClient(opts), key), nil
}

// Load implements Store.
func (r *RedisStore) Load(ctx context.Context) (Settings, error) {
	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return Defaults(), fmt.Errorf("reading settings from redis: %w", err)
	}
	return FromMap(fields)
}

// Save implements Store.
func (r *RedisStore) Save(ctx context.Context, s Settings) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	fields := make(map[string]interface{}, len(Keys))
	for k, v := range s.Map() {
		fields[k] = v
	}
	if err := r.client.HSet(ctx, r.key, fields).Err(); err != nil {
		return fmt.Errorf("writing settings to redis: %w", err)
	}
	return nil
}

// Reset implements Store.
func (r *RedisStore) Reset(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("removing settings from redis: %w", err)
	}
	return nil
}

// Close releases the client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
