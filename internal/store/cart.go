package store

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/shopwave/vip-store/internal/model"
)

// Kind distinguishes the two shapes a cart line can take.
type Kind string

const (
	// KindNumber is an individual VIP number bought on its own.
	KindNumber Kind = "number"
	// KindPackSelection is a chosen subset of a pack's member numbers.
	KindPackSelection Kind = "pack_selection"
)

// CartEntry is one line in the cart.  CartKey is its identity (see
// ComputeCartKey); Quantity is pinned to 1 because every line is a
// fixed-identity good: "one more of the same number" does not exist.
//
// Fields:
//  CartKey           – derived identity of the line.
//  Kind              – number or pack_selection.
//  ItemID            – id of the source number or pack.
//  Label             – display number (individual) or pack name.
//  SelectedMemberIDs – effective selection for pack lines, sorted.
//  UnitPricePaise    – price of this line in paise.
//  Quantity          – always 1.
//  AddedAt           – when the line entered the cart.
type CartEntry struct {
	CartKey           string    `json:"cart_key"`
	Kind              Kind      `json:"kind"`
	ItemID            string    `json:"item_id"`
	Label             string    `json:"label"`
	SelectedMemberIDs []string  `json:"selected_member_ids,omitempty"`
	UnitPricePaise    int64     `json:"unit_price_paise"`
	Quantity          int       `json:"quantity"`
	AddedAt           time.Time `json:"added_at"`
}

// Cart owns an ordered list of entries unique by cart key.  Every
// mutation serializes the full list to the slot (best effort) and then
// notifies subscribers, who always observe a fully applied state.
type Cart struct {
	slot      Slot
	entries   []CartEntry
	listeners map[int]func()
	nextID    int
}

// NewCart constructs a cart and loads any previously persisted entries
// from the slot before accepting operations.  A corrupt or unreadable
// blob is discarded and the cart starts empty; that is a recoverable
// condition, not a failure.  Entries persisted by older builds without a
// cart key get one backfilled from their item id and selection.
func NewCart(ctx context.Context, slot Slot) *Cart {
	c := &Cart{slot: slot, listeners: make(map[int]func())}
	blob, err := slot.Get(ctx)
	if err != nil {
		log.Printf("cart: load failed, starting empty: %v", err)
		return c
	}
	if len(blob) == 0 {
		return c
	}
	var loaded []CartEntry
	if err := json.Unmarshal(blob, &loaded); err != nil {
		log.Printf("cart: discarding corrupt persisted state: %v", err)
		if err := slot.Remove(ctx); err != nil {
			log.Printf("cart: remove corrupt blob failed: %v", err)
		}
		return c
	}
	seen := make(map[string]struct{}, len(loaded))
	for _, e := range loaded {
		if e.CartKey == "" {
			e.CartKey = ComputeCartKey(e.ItemID, e.SelectedMemberIDs)
		}
		if _, dup := seen[e.CartKey]; dup {
			continue
		}
		seen[e.CartKey] = struct{}{}
		e.Quantity = 1
		c.entries = append(c.entries, e)
	}
	return c
}

// AddNumber appends a line for an individual number.  Adding a number
// that is already in the cart returns ErrDuplicateEntry and changes
// nothing.
func (c *Cart) AddNumber(ctx context.Context, n *model.VipNumber) (*CartEntry, error) {
	key := ComputeCartKey(n.ID, nil)
	if c.find(key) != nil {
		return nil, ErrDuplicateEntry
	}
	e := CartEntry{
		CartKey:        key,
		Kind:           KindNumber,
		ItemID:         n.ID,
		Label:          n.DisplayNumber,
		UnitPricePaise: n.PricePaise,
		Quantity:       1,
		AddedAt:        time.Now().UTC(),
	}
	c.entries = append(c.entries, e)
	c.persist(ctx)
	c.notify()
	return &e, nil
}

// AddPackSelection appends a line for a subset of a pack's members.
// Members that are no longer available are silently excluded from both
// the price and the stored selection; the excluded ids are returned so
// the caller can tell the shopper.  If nothing selectable remains the
// operation fails with ErrEmptySelection, and if the same pack with the
// same effective subset is already in the cart it fails with
// ErrDuplicateEntry.  Either way the cart is unchanged.
func (c *Cart) AddPackSelection(ctx context.Context, p *model.Pack, selection []string) (*CartEntry, []string, error) {
	requested := NormalizeSelection(selection)
	effective := EffectiveSelection(p, requested)
	excluded := diff(requested, effective)
	if len(effective) == 0 {
		return nil, excluded, ErrEmptySelection
	}
	key := ComputeCartKey(p.ID, effective)
	if c.find(key) != nil {
		return nil, excluded, ErrDuplicateEntry
	}
	e := CartEntry{
		CartKey:           key,
		Kind:              KindPackSelection,
		ItemID:            p.ID,
		Label:             p.Name,
		SelectedMemberIDs: effective,
		UnitPricePaise:    PackSelectionPricePaise(p, effective),
		Quantity:          1,
		AddedAt:           time.Now().UTC(),
	}
	c.entries = append(c.entries, e)
	c.persist(ctx)
	c.notify()
	return &e, excluded, nil
}

// RemoveItem deletes the line with the given cart key.  Removing an
// absent key is a no-op, not an error.
func (c *Cart) RemoveItem(ctx context.Context, cartKey string) {
	for i := range c.entries {
		if c.entries[i].CartKey == cartKey {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			c.persist(ctx)
			c.notify()
			return
		}
	}
}

// SetQuantity enforces the single-unit rule: any n >= 1 normalizes to a
// quantity of 1 and n <= 0 removes the line.  The rule lives here, not
// in the UI, so relaxing it later touches exactly one place.
func (c *Cart) SetQuantity(ctx context.Context, cartKey string, n int) {
	if n <= 0 {
		c.RemoveItem(ctx, cartKey)
		return
	}
	e := c.find(cartKey)
	if e == nil {
		return
	}
	if e.Quantity == 1 {
		return
	}
	e.Quantity = 1
	c.persist(ctx)
	c.notify()
}

// Clear empties the cart, e.g. after a successful checkout.
func (c *Cart) Clear(ctx context.Context) {
	c.entries = nil
	c.persist(ctx)
	c.notify()
}

// TotalPaise returns the exact sum of unit prices over all lines.
func (c *Cart) TotalPaise() int64 {
	var total int64
	for i := range c.entries {
		total += c.entries[i].UnitPricePaise * int64(c.entries[i].Quantity)
	}
	return total
}

// Count returns the number of distinct cart lines.
func (c *Cart) Count() int { return len(c.entries) }

// Entries returns a copy of the current lines in insertion order.
func (c *Cart) Entries() []CartEntry {
	out := make([]CartEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Contains reports whether a line with the given cart key is present.
func (c *Cart) Contains(cartKey string) bool { return c.find(cartKey) != nil }

// Subscribe registers a listener invoked synchronously after each
// successful mutation, once state is fully updated and persisted.  The
// returned function removes the listener.
func (c *Cart) Subscribe(fn func()) func() {
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() { delete(c.listeners, id) }
}

func (c *Cart) find(cartKey string) *CartEntry {
	for i := range c.entries {
		if c.entries[i].CartKey == cartKey {
			return &c.entries[i]
		}
	}
	return nil
}

// persist writes the full entry list to the slot.  Failures are logged
// and do not roll back the mutation: in-memory state stays authoritative
// for the rest of the session.
func (c *Cart) persist(ctx context.Context) {
	blob, err := json.Marshal(c.entries)
	if err != nil {
		log.Printf("cart: marshal failed: %v", err)
		return
	}
	if err := c.slot.Set(ctx, blob); err != nil {
		log.Printf("cart: persist failed: %v", err)
	}
}

func (c *Cart) notify() {
	for _, fn := range c.listeners {
		fn()
	}
}

// diff returns the members of a that are not in b.  Both inputs are
// normalized selections.
func diff(a, b []string) []string {
	if len(b) == 0 {
		return append([]string(nil), a...)
	}
	inB := make(map[string]struct{}, len(b))
	for _, id := range b {
		inB[id] = struct{}{}
	}
	var out []string
	for _, id := range a {
		if _, ok := inB[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
