package feedback

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultStorageKey is the key the feedback blob is stored under
const DefaultStorageKey = "faqbot_feedback"

// RedisKV is the subset of the Redis client the blob store uses
type RedisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisBlobStore keeps the blob in a single Redis string key
type RedisBlobStore struct {
	client RedisKV
	key    string
}

// NewRedisBlobStore creates a Redis-backed store
func NewRedisBlobStore(client RedisKV, key string) *RedisBlobStore {
	if key == "" {
		key = DefaultStorageKey
	}
	return &RedisBlobStore{client: client, key: key}
}

// NewRedisClient connects to Redis from a redis:// URL, or a bare host:port
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return rdb, nil
}

// Name returns the store name
func (s *RedisBlobStore) Name() string {
	return "redis:" + s.key
}

// Read gets the blob
func (s *RedisBlobStore) Read(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read feedback from redis: %w", err)
	}
	return data, nil
}

// Write sets the blob with no expiry
func (s *RedisBlobStore) Write(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write feedback to redis: %w", err)
	}
	return nil
}
