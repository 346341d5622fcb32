package model

import "time"

// Pack is a bundled offering of several numbers sold together.  Buyers
// pick a subset of the members; the price they pay is the sum of the
// selected members' prices, not the advertised ListPricePaise (which
// applies when the whole pack is taken).
//
// Fields:
//  ID                      – unique identifier.
//  Name                    – display name of the pack.
//  Description             – optional marketing text.
//  ListPricePaise          – advertised whole-pack price in paise.
//  TotalOriginalPricePaise – sum of members' original prices, if known.
//  VIP                     – marks premium packs.
//  Members                 – the numbers bundled in this pack, in display order.
//  CreatedAt               – creation timestamp.
//  UpdatedAt               – last update timestamp.
type Pack struct {
	ID                      string       `json:"id"`                                   // packs.id
	Name                    string       `json:"name"`                                 // packs.name
	Description             string       `json:"description,omitempty"`                // packs.description
	ListPricePaise          int64        `json:"list_price_paise"`                     // packs.list_price_paise
	TotalOriginalPricePaise *int64       `json:"total_original_price_paise,omitempty"` // packs.total_original_price_paise (nullable)
	VIP                     bool         `json:"vip"`                                  // packs.is_vip
	Members                 []PackMember `json:"members"`                              // pack_members rows joined with vip_numbers
	CreatedAt               time.Time    `json:"-"`                                    // packs.created_at
	UpdatedAt               time.Time    `json:"-"`                                    // packs.updated_at
}

// PackMember is one number inside a pack.  NumberID references
// vip_numbers.id and Status mirrors the referenced number's current
// status at read time; members that are no longer AVAILABLE must not be
// selectable for purchase.
type PackMember struct {
	NumberID      string `json:"number_id"`      // pack_members.number_id
	DisplayNumber string `json:"display_number"` // vip_numbers.display_number
	PricePaise    int64  `json:"price_paise"`    // vip_numbers.price_paise
	Status        string `json:"status"`         // vip_numbers.status
}

// Member returns the member with the given number id, or nil when the
// pack does not contain it.
func (p *Pack) Member(numberID string) *PackMember {
	for i := range p.Members {
		if p.Members[i].NumberID == numberID {
			return &p.Members[i]
		}
	}
	return nil
}
