// Package payment wraps the hosted checkout gateway. The storefront
// only ever hands the gateway a total and a receipt description and
// gets back an order reference for the hosted widget; everything else
// (card entry, OTP, capture) happens on the gateway's side.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// razorpayOrdersURL is the order-creation endpoint of the gateway API.
const razorpayOrdersURL = "https://api.razorpay.com/v1/orders"

// Client creates gateway orders using basic-auth API credentials.
type Client struct {
	keyID     string
	keySecret string
	http      *http.Client
	baseURL   string
}

// NewClient returns a gateway client. Empty credentials yield a client
// whose calls fail with ErrNotConfigured, so environments without
// payment access still serve the catalog and cart.
func NewClient(keyID, keySecret string) *Client {
	return &Client{
		keyID:     keyID,
		keySecret: keySecret,
		http:      &http.Client{Timeout: 10 * time.Second},
		baseURL:   razorpayOrdersURL,
	}
}

// ErrNotConfigured is returned when gateway credentials are missing.
var ErrNotConfigured = fmt.Errorf("payment gateway credentials not configured")

// GatewayOrder is the subset of the gateway's order object the
// storefront needs: the reference handed to the hosted widget.
type GatewayOrder struct {
	ID         string `json:"id"`
	AmountPaid int64  `json:"amount_paid"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	Status     string `json:"status"`
}

// CreateOrder registers a checkout of the given paise amount with the
// gateway and returns the created order. The receipt string appears on
// the gateway dashboard next to the payment.
func (c *Client) CreateOrder(ctx context.Context, amountPaise int64, receipt string) (*GatewayOrder, error) {
	if c.keyID == "" || c.keySecret == "" {
		return nil, ErrNotConfigured
	}
	payload := map[string]any{
		"amount":   amountPaise, // the gateway expects currency subunits
		"currency": "INR",
		"receipt":  receipt,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("gateway order create: status %d: %s", resp.StatusCode, snippet)
	}
	var out GatewayOrder
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, fmt.Errorf("gateway order create: response missing order id")
	}
	return &out, nil
}
