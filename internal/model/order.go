package model

import "time"

// Order statuses. An order is created PENDING when the hosted checkout
// opens and flips to CONFIRMED or CANCELLED when the gateway reports
// back.
const (
	OrderPending   = "PENDING"
	OrderConfirmed = "CONFIRMED"
	OrderCancelled = "CANCELLED"
)

// Order records a checkout attempt: the receipt handed to the payment
// gateway plus the gateway references once known.
//
// Fields:
//  ID              – primary key identifier.
//  SessionID       – guest session that placed the order.
//  Status          – PENDING, CONFIRMED or CANCELLED.
//  TotalPaise      – total charged, in paise.
//  GatewayOrderRef – order id returned by the payment gateway.
//  PaymentRef      – payment id reported on success (nullable).
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Order struct {
	ID              uint64    // orders.id
	SessionID       string    // orders.session_id
	Status          string    // orders.status
	TotalPaise      int64     // orders.total_paise
	GatewayOrderRef string    // orders.gateway_order_ref
	PaymentRef      *string   // orders.payment_ref (nullable)
	CreatedAt       time.Time // orders.created_at
	UpdatedAt       time.Time // orders.updated_at
}

// OrderItem is one receipt line of an order, frozen at checkout time so
// the record survives later catalog changes.
type OrderItem struct {
	ID                uint64 // order_items.id
	OrderID           uint64 // order_items.order_id
	CartKey           string // order_items.cart_key
	Label             string // order_items.label
	SelectedNumberIDs string // order_items.selected_number_ids (comma-joined, empty for individual numbers)
	UnitPricePaise    int64  // order_items.unit_price_paise
}
