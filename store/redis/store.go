package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds the configuration for the redis-backed token store.
type Config struct {
	Addr     string
	Password string
	DB       int
	// Prefix namespaces the session keys, e.g. one prefix per end user when the
	// SDK runs inside a server-side proxy managing many sessions.
	Prefix string
	// TTL bounds how long persisted credentials outlive their last write.
	// Zero means no expiry.
	TTL time.Duration
}

// Store persists session credentials in redis. Intended for server-side hosts
// that already run redis and need sessions to survive process restarts.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Ping the redis server to ensure the connection is established
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Store{client: client, prefix: cfg.Prefix, ttl: cfg.TTL}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.key(key)).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, s.key(key), value, s.ttl).Err()
}

func (s *Store) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return s.prefix + ":" + k
}
