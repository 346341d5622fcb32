package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Slot is a durable key-value cell holding one serialized blob per
// store (one for the cart, one for favorites).  Get returns (nil, nil)
// when nothing has been written yet; that is not an error.  Any backend
// that can serve the blob synchronously at store construction time
// satisfies the contract.
type Slot interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, blob []byte) error
	Remove(ctx context.Context) error
}

// RedisSlot persists a store blob under a single Redis key.  A TTL keeps
// abandoned guest carts from accumulating; every write refreshes it.
type RedisSlot struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

// NewRedisSlot returns a slot bound to the given key.  A non-positive
// ttl stores the blob without expiry.
func NewRedisSlot(rdb *redis.Client, key string, ttl time.Duration) *RedisSlot {
	return &RedisSlot{rdb: rdb, key: key, ttl: ttl}
}

func (s *RedisSlot) Get(ctx context.Context) ([]byte, error) {
	bs, err := s.rdb.Get(ctx, s.key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return bs, nil
}

func (s *RedisSlot) Set(ctx context.Context, blob []byte) error {
	return s.rdb.Set(ctx, s.key, blob, s.ttl).Err()
}

func (s *RedisSlot) Remove(ctx context.Context) error {
	return s.rdb.Del(ctx, s.key).Err()
}

// MemorySlot keeps the blob in process memory.  It backs tests and the
// degraded mode used when Redis is unreachable: the session keeps
// working, durability is lost.
type MemorySlot struct {
	blob    []byte
	present bool
}

func NewMemorySlot() *MemorySlot { return &MemorySlot{} }

func (s *MemorySlot) Get(ctx context.Context) ([]byte, error) {
	if !s.present {
		return nil, nil
	}
	out := make([]byte, len(s.blob))
	copy(out, s.blob)
	return out, nil
}

func (s *MemorySlot) Set(ctx context.Context, blob []byte) error {
	s.blob = make([]byte, len(blob))
	copy(s.blob, blob)
	s.present = true
	return nil
}

func (s *MemorySlot) Remove(ctx context.Context) error {
	s.blob = nil
	s.present = false
	return nil
}
