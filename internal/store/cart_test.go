package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopwave/vip-store/internal/model"
)

func testNumber(id string, pricePaise int64) *model.VipNumber {
	return &model.VipNumber{
		ID:            id,
		DisplayNumber: "98765" + id,
		PricePaise:    pricePaise,
		Status:        model.NumberAvailable,
	}
}

// failingSlot simulates an unavailable backend (quota exceeded, Redis
// down) for the degraded-mode contract.
type failingSlot struct{}

func (failingSlot) Get(ctx context.Context) ([]byte, error)    { return nil, errors.New("slot down") }
func (failingSlot) Set(ctx context.Context, blob []byte) error { return errors.New("slot down") }
func (failingSlot) Remove(ctx context.Context) error           { return errors.New("slot down") }

func TestAddNumberOnceAndDuplicate(t *testing.T) {
	ctx := context.Background()
	c := NewCart(ctx, NewMemorySlot())

	e, err := c.AddNumber(ctx, testNumber("N1", 10000))
	require.NoError(t, err)
	assert.Equal(t, "N1", e.CartKey)
	assert.Equal(t, 1, e.Quantity)
	assert.Equal(t, int64(10000), c.TotalPaise())
	assert.Equal(t, 1, c.Count())

	// second add is rejected and changes nothing
	_, err = c.AddNumber(ctx, testNumber("N1", 10000))
	assert.ErrorIs(t, err, ErrDuplicateEntry)
	assert.Equal(t, int64(10000), c.TotalPaise())
	assert.Equal(t, 1, c.Count())
}

func TestAddPackSelectionFiltersSoldMembers(t *testing.T) {
	ctx := context.Background()
	c := NewCart(ctx, NewMemorySlot())
	p := testPack()

	e, excluded, err := c.AddPackSelection(ctx, p, []string{"m1", "m2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"m2"}, excluded)
	assert.Equal(t, []string{"m1"}, e.SelectedMemberIDs)
	assert.Equal(t, int64(5000), e.UnitPricePaise)
	assert.Equal(t, "P1::m1", e.CartKey)

	// nothing selectable left -> rejected, cart unchanged
	_, excluded, err = c.AddPackSelection(ctx, p, []string{"m2"})
	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.Equal(t, []string{"m2"}, excluded)
	assert.Equal(t, 1, c.Count())
}

func TestDistinctSelectionsCoexist(t *testing.T) {
	ctx := context.Background()
	c := NewCart(ctx, NewMemorySlot())
	p := testPack()

	_, _, err := c.AddPackSelection(ctx, p, []string{"m1"})
	require.NoError(t, err)
	_, _, err = c.AddPackSelection(ctx, p, []string{"m1", "m3"})
	require.NoError(t, err)

	assert.Equal(t, 2, c.Count())
	assert.Equal(t, int64(5000+7000), c.TotalPaise())

	// set-equal but reordered selection collapses to the existing line
	_, _, err = c.AddPackSelection(ctx, p, []string{"m3", "m1"})
	assert.ErrorIs(t, err, ErrDuplicateEntry)
	assert.Equal(t, 2, c.Count())
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	c := NewCart(ctx, NewMemorySlot())

	_, err := c.AddNumber(ctx, testNumber("N1", 1000))
	require.NoError(t, err)

	// absent key is a no-op
	c.RemoveItem(ctx, "nope")
	assert.Equal(t, 1, c.Count())

	c.RemoveItem(ctx, "N1")
	assert.Equal(t, 0, c.Count())
	assert.Equal(t, int64(0), c.TotalPaise())
}

func TestSetQuantityPinnedToOne(t *testing.T) {
	ctx := context.Background()
	c := NewCart(ctx, NewMemorySlot())

	_, err := c.AddNumber(ctx, testNumber("N1", 2500))
	require.NoError(t, err)

	c.SetQuantity(ctx, "N1", 5)
	assert.Equal(t, 1, c.Entries()[0].Quantity)
	assert.Equal(t, int64(2500), c.TotalPaise())

	c.SetQuantity(ctx, "N1", 0)
	assert.Equal(t, 0, c.Count(), "quantity <= 0 removes the line")

	// unknown key is a no-op
	c.SetQuantity(ctx, "nope", 3)
	assert.Equal(t, 0, c.Count())
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	c := NewCart(ctx, NewMemorySlot())

	_, err := c.AddNumber(ctx, testNumber("N1", 100))
	require.NoError(t, err)
	_, err = c.AddNumber(ctx, testNumber("N2", 200))
	require.NoError(t, err)

	c.Clear(ctx)
	assert.Equal(t, 0, c.Count())
	assert.Equal(t, int64(0), c.TotalPaise())
}

func TestTotalExactOverRepeatedAdds(t *testing.T) {
	ctx := context.Background()
	c := NewCart(ctx, NewMemorySlot())

	// 10 paise + 20 paise repeated; integer arithmetic cannot drift the
	// way float 0.1 + 0.2 does
	var want int64
	for i := 0; i < 50; i++ {
		_, err := c.AddNumber(ctx, testNumber(fmt.Sprintf("A%02d", i), 10))
		require.NoError(t, err)
		want += 10
		_, err = c.AddNumber(ctx, testNumber(fmt.Sprintf("B%02d", i), 20))
		require.NoError(t, err)
		want += 20
	}
	assert.Equal(t, want, c.TotalPaise())
	assert.Equal(t, int64(1500), c.TotalPaise())
}

func TestPersistRoundTrip(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()

	c := NewCart(ctx, slot)
	_, err := c.AddNumber(ctx, testNumber("N1", 10000))
	require.NoError(t, err)
	_, _, err = c.AddPackSelection(ctx, testPack(), []string{"m1", "m3"})
	require.NoError(t, err)

	// a fresh cart over the same slot sees identical lines
	reloaded := NewCart(ctx, slot)
	require.Equal(t, c.Count(), reloaded.Count())
	assert.Equal(t, c.TotalPaise(), reloaded.TotalPaise())
	assert.Equal(t, c.Entries(), reloaded.Entries())
}

func TestLoadCorruptBlobStartsEmpty(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	require.NoError(t, slot.Set(ctx, []byte("{not json")))

	c := NewCart(ctx, slot)
	assert.Equal(t, 0, c.Count())

	// the corrupt blob is gone and the store is fully usable
	blob, err := slot.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, blob)
	_, err = c.AddNumber(ctx, testNumber("N1", 100))
	require.NoError(t, err)
}

func TestLoadBackfillsMissingCartKeys(t *testing.T) {
	ctx := context.Background()
	slot := NewMemorySlot()
	// older persisted shape: no cart_key field
	legacy := `[
		{"kind":"number","item_id":"N1","label":"9876500001","unit_price_paise":1000,"quantity":1},
		{"kind":"pack_selection","item_id":"P1","label":"Lucky Trio","selected_member_ids":["m3","m1"],"unit_price_paise":7000,"quantity":1}
	]`
	require.NoError(t, slot.Set(ctx, []byte(legacy)))

	c := NewCart(ctx, slot)
	require.Equal(t, 2, c.Count())
	entries := c.Entries()
	assert.Equal(t, "N1", entries[0].CartKey)
	assert.Equal(t, "P1::m1,m3", entries[1].CartKey)
}

func TestPersistenceFailureKeepsStateAuthoritative(t *testing.T) {
	ctx := context.Background()
	c := NewCart(ctx, failingSlot{})

	_, err := c.AddNumber(ctx, testNumber("N1", 100))
	require.NoError(t, err, "slot failures must not block shopping")
	assert.Equal(t, 1, c.Count())
	assert.Equal(t, int64(100), c.TotalPaise())
}

func TestSubscribeSeesConsistentState(t *testing.T) {
	ctx := context.Background()
	c := NewCart(ctx, NewMemorySlot())

	var observedCounts []int
	var observedTotals []int64
	unsubscribe := c.Subscribe(func() {
		observedCounts = append(observedCounts, c.Count())
		observedTotals = append(observedTotals, c.TotalPaise())
	})

	_, err := c.AddNumber(ctx, testNumber("N1", 100))
	require.NoError(t, err)
	c.RemoveItem(ctx, "N1")

	assert.Equal(t, []int{1, 0}, observedCounts)
	assert.Equal(t, []int64{100, 0}, observedTotals)

	// failed operations do not notify
	before := len(observedCounts)
	c.RemoveItem(ctx, "absent")
	assert.Len(t, observedCounts, before)

	unsubscribe()
	_, err = c.AddNumber(ctx, testNumber("N2", 100))
	require.NoError(t, err)
	assert.Len(t, observedCounts, before)
}
