package store

import (
	"sort"
	"strings"

	"github.com/shopwave/vip-store/internal/model"
)

// cartKeySeparator joins a pack id with its selected member ids.  "::"
// cannot appear in ids, so keys parse unambiguously.
const cartKeySeparator = "::"

// ComputeCartKey derives the identity of a cart line.  An individual
// number is keyed by its own id (pass a nil or empty selection).  A pack
// selection is keyed by the pack id plus the sorted, deduplicated member
// ids, so two selections of the same pack with different subsets are
// distinct lines while set-equal selections collapse to one.
func ComputeCartKey(itemID string, selectedMemberIDs []string) string {
	if len(selectedMemberIDs) == 0 {
		return itemID
	}
	return itemID + cartKeySeparator + strings.Join(NormalizeSelection(selectedMemberIDs), ",")
}

// NormalizeSelection returns the ids sorted and deduplicated, dropping
// empty strings. The input slice is not modified.
func NormalizeSelection(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// EffectiveSelection normalizes the requested member ids and keeps only
// those that exist in the pack and are still AVAILABLE.  The result is
// what the shopper actually buys; callers compare its length against
// the request to tell the shopper which numbers were dropped.
func EffectiveSelection(p *model.Pack, selectedMemberIDs []string) []string {
	out := make([]string, 0, len(selectedMemberIDs))
	for _, id := range NormalizeSelection(selectedMemberIDs) {
		m := p.Member(id)
		if m == nil || m.Status != model.NumberAvailable {
			continue
		}
		out = append(out, id)
	}
	return out
}

// IsSelectionEffectivelyEmpty reports whether filtering unavailable
// members leaves nothing to buy.  AddPackSelection fails with
// ErrEmptySelection in exactly this case.
func IsSelectionEffectivelyEmpty(p *model.Pack, selectedMemberIDs []string) bool {
	return len(EffectiveSelection(p, selectedMemberIDs)) == 0
}

// PackSelectionPricePaise sums the prices of the given members of the
// pack.  The caller passes an effective selection; ids that do not
// resolve to a member contribute nothing.
func PackSelectionPricePaise(p *model.Pack, memberIDs []string) int64 {
	var total int64
	for _, id := range memberIDs {
		if m := p.Member(id); m != nil {
			total += m.PricePaise
		}
	}
	return total
}
