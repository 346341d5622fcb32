package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shopwave/vip-store/internal/model"
)

func testPack() *model.Pack {
	return &model.Pack{
		ID:             "P1",
		Name:           "Lucky Trio",
		ListPricePaise: 7000,
		Members: []model.PackMember{
			{NumberID: "m1", DisplayNumber: "9999900001", PricePaise: 5000, Status: model.NumberAvailable},
			{NumberID: "m2", DisplayNumber: "9999900002", PricePaise: 3000, Status: model.NumberSold},
			{NumberID: "m3", DisplayNumber: "9999900003", PricePaise: 2000, Status: model.NumberAvailable},
		},
	}
}

func TestComputeCartKeyIndividual(t *testing.T) {
	assert.Equal(t, "N1", ComputeCartKey("N1", nil))
	assert.Equal(t, "N1", ComputeCartKey("N1", []string{}))
}

func TestComputeCartKeyPackSelection(t *testing.T) {
	k1 := ComputeCartKey("P1", []string{"m1", "m3"})
	k2 := ComputeCartKey("P1", []string{"m3", "m1"})
	assert.Equal(t, k1, k2, "set-equal selections must produce the same key regardless of order")
	assert.Equal(t, "P1::m1,m3", k1)

	k3 := ComputeCartKey("P1", []string{"m1"})
	assert.NotEqual(t, k1, k3, "different subsets of the same pack are different lines")

	// duplicates in the request collapse
	assert.Equal(t, k3, ComputeCartKey("P1", []string{"m1", "m1"}))
}

func TestNormalizeSelection(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, NormalizeSelection([]string{"c", "b", "a", "b", ""}))
	assert.Empty(t, NormalizeSelection(nil))
}

func TestEffectiveSelectionFiltersUnavailable(t *testing.T) {
	p := testPack()

	eff := EffectiveSelection(p, []string{"m1", "m2"})
	assert.Equal(t, []string{"m1"}, eff, "sold member m2 must be excluded")

	// unknown ids are dropped too
	eff = EffectiveSelection(p, []string{"m1", "nope"})
	assert.Equal(t, []string{"m1"}, eff)

	assert.True(t, IsSelectionEffectivelyEmpty(p, []string{"m2"}))
	assert.False(t, IsSelectionEffectivelyEmpty(p, []string{"m1", "m2"}))
}

func TestPackSelectionPricePaise(t *testing.T) {
	p := testPack()
	assert.Equal(t, int64(7000), PackSelectionPricePaise(p, []string{"m1", "m3"}))
	assert.Equal(t, int64(5000), PackSelectionPricePaise(p, []string{"m1"}))
	assert.Equal(t, int64(0), PackSelectionPricePaise(p, nil))
}
