package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrEmptyKey is returned when a claim is attempted with an empty key.
var ErrEmptyKey = errors.New("idempotency: key cannot be empty")

// Option configures a Store during construction.
type Option func(*Store)

// WithTTL sets how long a claim is held. Defaults to 24h, long enough to
// cover typical webhook redelivery windows.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithKeyPrefix sets the Redis key namespace. Defaults to "idem".
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// Store claims and releases idempotency keys in Redis.
type Store struct {
	client redis.Cmdable
	ttl    time.Duration
	prefix string
}

// New creates a Store over the given Redis client.
func New(client redis.Cmdable, opts ...Option) *Store {
	if client == nil {
		panic("idempotency: redis client cannot be nil")
	}

	s := &Store{
		client: client,
		ttl:    24 * time.Hour,
		prefix: "idem",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Claim atomically claims the key. It returns true when this caller won the
// claim and false when the key is already held, meaning the request is a
// duplicate.
func (s *Store) Claim(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, ErrEmptyKey
	}
	ok, err := s.client.SetNX(ctx, s.redisKey(key), time.Now().UTC().Format(time.RFC3339), s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency: claim %q: %w", key, err)
	}
	return ok, nil
}

// Release frees a claimed key so a retry of a failed attempt is allowed
// through again.
func (s *Store) Release(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("idempotency: release %q: %w", key, err)
	}
	return nil
}

func (s *Store) redisKey(key string) string {
	return s.prefix + ":" + key
}
