package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopwave/vip-store/internal/store"
)

// SessionStores builds the per-session cart and favorites stores over
// their Redis persistence slots. Each request gets its own store
// instance loaded from the slot, so store internals never need locks.
// When Redis is unavailable the stores run on in-memory slots: the
// request still works, durability is lost for that session.
type SessionStores struct {
	rdb     *redis.Client
	slotTTL time.Duration
}

// NewSessionStores returns a factory bound to the given Redis client
// (which may be nil) and slot TTL.
func NewSessionStores(rdb *redis.Client, slotTTL time.Duration) *SessionStores {
	return &SessionStores{rdb: rdb, slotTTL: slotTTL}
}

// Cart loads the session's cart from its slot.
func (s *SessionStores) Cart(ctx context.Context, sessionID string) *store.Cart {
	return store.NewCart(ctx, s.slot("cart", sessionID))
}

// Favorites loads the session's favorites from their slot.
func (s *SessionStores) Favorites(ctx context.Context, sessionID string) *store.Favorites {
	return store.NewFavorites(ctx, s.slot("favorites", sessionID))
}

func (s *SessionStores) slot(kind, sessionID string) store.Slot {
	if s.rdb == nil {
		return store.NewMemorySlot()
	}
	return store.NewRedisSlot(s.rdb, fmt.Sprintf("%s:%s", kind, sessionID), s.slotTTL)
}
