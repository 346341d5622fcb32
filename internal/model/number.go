package model

import "time"

// Number statuses as stored in the database. A number leaves AVAILABLE
// when an order containing it is confirmed (SOLD) or while it is part of
// a pending order (RESERVED).
const (
	NumberAvailable = "AVAILABLE"
	NumberSold      = "SOLD"
	NumberReserved  = "RESERVED"
)

// VipNumber represents a single phone number offered for sale.  All
// monetary amounts are stored in paise so that totals can be computed
// with exact integer arithmetic.
//
// Fields:
//  ID                 – unique identifier (document-style string key).
//  DisplayNumber      – the phone number as shown to buyers.
//  CategoryID         – category the number is listed under.
//  PricePaise         – selling price in paise.
//  OriginalPricePaise – pre-discount price in paise, if any (>= PricePaise).
//  Status             – AVAILABLE, SOLD or RESERVED.
//  VIP                – marks premium numbers highlighted in listings.
//  CreatedAt          – creation timestamp.
//  UpdatedAt          – last update timestamp.
type VipNumber struct {
	ID                 string    `json:"id"`                             // vip_numbers.id
	DisplayNumber      string    `json:"display_number"`                 // vip_numbers.display_number
	CategoryID         string    `json:"category_id"`                    // vip_numbers.category_id
	PricePaise         int64     `json:"price_paise"`                    // vip_numbers.price_paise
	OriginalPricePaise *int64    `json:"original_price_paise,omitempty"` // vip_numbers.original_price_paise (nullable)
	Status             string    `json:"status"`                         // vip_numbers.status
	VIP                bool      `json:"vip"`                            // vip_numbers.is_vip
	CreatedAt          time.Time `json:"-"`                              // vip_numbers.created_at
	UpdatedAt          time.Time `json:"-"`                              // vip_numbers.updated_at
}

// Available reports whether the number can still be purchased.
func (n *VipNumber) Available() bool { return n.Status == NumberAvailable }
