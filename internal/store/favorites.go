package store

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/shopwave/vip-store/internal/model"
)

// FavoriteEntry is a snapshot of a favorited catalog item.  Favorites
// key on the top-level item id only: a pack is favorited as a whole, no
// matter which member subset might sit in the cart.
type FavoriteEntry struct {
	ItemID     string    `json:"item_id"`
	Kind       Kind      `json:"kind"`
	Label      string    `json:"label"`
	PricePaise int64     `json:"price_paise"`
	VIP        bool      `json:"vip"`
	AddedAt    time.Time `json:"added_at"`
}

// NumberFavorite builds the favorite snapshot for an individual number.
func NumberFavorite(n *model.VipNumber) FavoriteEntry {
	return FavoriteEntry{
		ItemID:     n.ID,
		Kind:       KindNumber,
		Label:      n.DisplayNumber,
		PricePaise: n.PricePaise,
		VIP:        n.VIP,
	}
}

// PackFavorite builds the favorite snapshot for a pack.
func PackFavorite(p *model.Pack) FavoriteEntry {
	return FavoriteEntry{
		ItemID:     p.ID,
		Kind:       KindPackSelection,
		Label:      p.Name,
		PricePaise: p.ListPricePaise,
		VIP:        p.VIP,
	}
}

// Favorites is a persisted set of favorited items with the same slot
// contract as the cart.  There is no pricing or quantity logic here.
type Favorites struct {
	slot      Slot
	items     []FavoriteEntry
	listeners map[int]func()
	nextID    int
}

// NewFavorites constructs the favorites set and loads persisted state
// from the slot.  Corrupt or unreadable blobs are discarded so the
// shopper always gets a usable, possibly empty, set.
func NewFavorites(ctx context.Context, slot Slot) *Favorites {
	f := &Favorites{slot: slot, listeners: make(map[int]func())}
	blob, err := slot.Get(ctx)
	if err != nil {
		log.Printf("favorites: load failed, starting empty: %v", err)
		return f
	}
	if len(blob) == 0 {
		return f
	}
	var loaded []FavoriteEntry
	if err := json.Unmarshal(blob, &loaded); err != nil {
		log.Printf("favorites: discarding corrupt persisted state: %v", err)
		if err := slot.Remove(ctx); err != nil {
			log.Printf("favorites: remove corrupt blob failed: %v", err)
		}
		return f
	}
	seen := make(map[string]struct{}, len(loaded))
	for _, it := range loaded {
		if it.ItemID == "" {
			continue
		}
		if _, dup := seen[it.ItemID]; dup {
			continue
		}
		seen[it.ItemID] = struct{}{}
		f.items = append(f.items, it)
	}
	return f
}

// Toggle adds the item when absent and removes it when present.  It
// returns true when the item ends up favorited.
func (f *Favorites) Toggle(ctx context.Context, entry FavoriteEntry) bool {
	for i := range f.items {
		if f.items[i].ItemID == entry.ItemID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			f.persist(ctx)
			f.notify()
			return false
		}
	}
	entry.AddedAt = time.Now().UTC()
	f.items = append(f.items, entry)
	f.persist(ctx)
	f.notify()
	return true
}

// IsFavorite reports whether the item id is in the set.
func (f *Favorites) IsFavorite(itemID string) bool {
	for i := range f.items {
		if f.items[i].ItemID == itemID {
			return true
		}
	}
	return false
}

// Count returns the number of favorited items.
func (f *Favorites) Count() int { return len(f.items) }

// Items returns a copy of the favorites in insertion order.
func (f *Favorites) Items() []FavoriteEntry {
	out := make([]FavoriteEntry, len(f.items))
	copy(out, f.items)
	return out
}

// Subscribe registers a listener invoked synchronously after each
// successful mutation.  The returned function removes the listener.
func (f *Favorites) Subscribe(fn func()) func() {
	id := f.nextID
	f.nextID++
	f.listeners[id] = fn
	return func() { delete(f.listeners, id) }
}

func (f *Favorites) persist(ctx context.Context) {
	blob, err := json.Marshal(f.items)
	if err != nil {
		log.Printf("favorites: marshal failed: %v", err)
		return
	}
	if err := f.slot.Set(ctx, blob); err != nil {
		log.Printf("favorites: persist failed: %v", err)
	}
}

func (f *Favorites) notify() {
	for _, fn := range f.listeners {
		fn()
	}
}
