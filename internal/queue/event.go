// Package queue defines message payloads exchanged over the message
// broker and the background consumer that processes them.
package queue

// OrderLine is one receipt line carried inside an order event.
type OrderLine struct {
	CartKey         string   `json:"cart_key"`
	Label           string   `json:"label"`
	SelectedNumbers []string `json:"selected_numbers,omitempty"`
	UnitPricePaise  int64    `json:"unit_price_paise"`
}

// OrderConfirmedEvent is published when the payment gateway reports a
// successful checkout. It carries the full receipt so downstream
// consumers can log, notify, or feed analytics without querying the
// primary database.
type OrderConfirmedEvent struct {
	OrderID         uint64      `json:"order_id"`
	SessionID       string      `json:"session_id"`
	GatewayOrderRef string      `json:"gateway_order_ref"`
	PaymentRef      string      `json:"payment_ref"`
	Lines           []OrderLine `json:"lines"`
	TotalPaise      int64       `json:"total_paise"`
	ConfirmedAt     string      `json:"confirmed_at"`
}
