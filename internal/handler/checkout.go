package handler

// checkout.go drives the hosted payment flow. Creating a checkout
// freezes the cart into a PENDING order and registers it with the
// gateway; confirming records the gateway's verdict. Only a confirmed
// order clears the cart and marks its numbers SOLD. A cancelled or
// failed payment leaves the shopper exactly where they were.

import (
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shopwave/vip-store/internal/middleware"
	"github.com/shopwave/vip-store/internal/model"
	"github.com/shopwave/vip-store/internal/payment"
	"github.com/shopwave/vip-store/internal/queue"
	"github.com/shopwave/vip-store/internal/repository"
	queue_publisher "github.com/shopwave/vip-store/internal/service"
)

// CheckoutHandler groups the dependencies for the checkout flow.
type CheckoutHandler struct {
	Stores     *SessionStores
	OrderRepo  *repository.OrderRepo
	NumberRepo *repository.NumberRepo
	Gateway    *payment.Client
}

// NewCheckoutHandler constructs a CheckoutHandler. All dependencies
// must be non-nil.
func NewCheckoutHandler(stores *SessionStores, orderRepo *repository.OrderRepo, numberRepo *repository.NumberRepo, gateway *payment.Client) *CheckoutHandler {
	if stores == nil || orderRepo == nil || numberRepo == nil || gateway == nil {
		panic("nil dependency passed to NewCheckoutHandler")
	}
	return &CheckoutHandler{Stores: stores, OrderRepo: orderRepo, NumberRepo: numberRepo, Gateway: gateway}
}

// receiptLine is one human-readable line of the checkout receipt.
type receiptLine struct {
	CartKey         string   `json:"cart_key"`
	Label           string   `json:"label"`
	SelectedNumbers []string `json:"selected_numbers,omitempty"`
	UnitPricePaise  int64    `json:"unit_price_paise"`
}

// Create handles POST /v1/checkout. It builds the receipt from the
// session's cart, registers a gateway order for the exact paise total,
// and stores a PENDING order so the later confirm call can be matched
// against what was actually quoted.
func (h *CheckoutHandler) Create(c echo.Context) error {
	sid := middleware.SessionID(c)
	if sid == "" {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no session"})
	}
	ctx := c.Request().Context()
	cart := h.Stores.Cart(ctx, sid)
	if cart.Count() == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cart is empty"})
	}

	entries := cart.Entries()
	lines := make([]receiptLine, 0, len(entries))
	items := make([]model.OrderItem, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, receiptLine{
			CartKey:         e.CartKey,
			Label:           e.Label,
			SelectedNumbers: e.SelectedMemberIDs,
			UnitPricePaise:  e.UnitPricePaise,
		})
		items = append(items, model.OrderItem{
			CartKey:           e.CartKey,
			Label:             e.Label,
			SelectedNumberIDs: strings.Join(e.SelectedMemberIDs, ","),
			UnitPricePaise:    e.UnitPricePaise,
		})
	}
	total := cart.TotalPaise()

	gw, err := h.Gateway.CreateOrder(ctx, total, "session-"+sid)
	if err != nil {
		log.Printf("checkout: gateway order create failed: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "payment gateway unavailable"})
	}

	order := &model.Order{
		SessionID:       sid,
		Status:          model.OrderPending,
		TotalPaise:      total,
		GatewayOrderRef: gw.ID,
	}
	if err := h.OrderRepo.Create(ctx, order, items); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record order"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"order_id":          order.ID,
		"gateway_order_ref": gw.ID,
		"amount_paise":      total,
		"currency":          "INR",
		"lines":             lines,
	})
}

// Confirm handles POST /v1/checkout/confirm. The body reports the
// hosted widget's outcome:
//
//	{"gateway_order_ref": "...", "payment_ref": "...", "outcome": "success"}
//
// On success the order flips to CONFIRMED, its numbers are marked SOLD,
// an order.confirmed event is published (best effort) and the cart is
// cleared. Any other outcome cancels the order and keeps the cart.
func (h *CheckoutHandler) Confirm(c echo.Context) error {
	sid := middleware.SessionID(c)
	if sid == "" {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no session"})
	}
	var body struct {
		GatewayOrderRef string `json:"gateway_order_ref"`
		PaymentRef      string `json:"payment_ref"`
		Outcome         string `json:"outcome"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.GatewayOrderRef == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "gateway_order_ref is required"})
	}

	ctx := c.Request().Context()
	order, err := h.OrderRepo.GetByGatewayRef(ctx, body.GatewayOrderRef)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if order.SessionID != sid {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
	}
	if order.Status != model.OrderPending {
		return c.JSON(http.StatusConflict, echo.Map{"error": "order already settled"})
	}

	items, err := h.OrderRepo.ListItems(ctx, order.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	if body.Outcome != "success" {
		tx, err := h.OrderRepo.DB().BeginTx(ctx, nil)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
		}
		if err := h.OrderRepo.MarkStatusTx(ctx, tx, order.ID, model.OrderCancelled, nil); err != nil {
			_ = tx.Rollback()
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel order"})
		}
		if err := tx.Commit(); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to cancel order"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": model.OrderCancelled})
	}

	tx, err := h.OrderRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var payRef *string
	if body.PaymentRef != "" {
		payRef = &body.PaymentRef
	}
	if err := h.OrderRepo.MarkStatusTx(ctx, tx, order.ID, model.OrderConfirmed, payRef); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "order already settled"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to confirm order"})
	}
	if err := h.NumberRepo.MarkStatusTx(ctx, tx, purchasedNumberIDs(items), model.NumberSold); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to mark numbers sold"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to confirm order"})
	}
	committed = true

	// Best-effort event; the order stands even if the broker is down.
	ev := queue.OrderConfirmedEvent{
		OrderID:         order.ID,
		SessionID:       sid,
		GatewayOrderRef: order.GatewayOrderRef,
		PaymentRef:      body.PaymentRef,
		Lines:           eventLines(items),
		TotalPaise:      order.TotalPaise,
		ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue_publisher.PublishOrderConfirmed(ctx, ev); err != nil {
		log.Printf("checkout: publish order.confirmed failed: %v", err)
	}

	cart := h.Stores.Cart(ctx, sid)
	cart.Clear(ctx)

	return c.JSON(http.StatusOK, echo.Map{"status": model.OrderConfirmed, "order_id": order.ID})
}

// purchasedNumberIDs flattens the receipt into the vip_numbers ids the
// shopper bought: the item id itself for individual lines, the selected
// member ids for pack lines.
func purchasedNumberIDs(items []model.OrderItem) []string {
	var out []string
	for _, it := range items {
		if it.SelectedNumberIDs == "" {
			out = append(out, it.CartKey)
			continue
		}
		out = append(out, strings.Split(it.SelectedNumberIDs, ",")...)
	}
	return out
}

func eventLines(items []model.OrderItem) []queue.OrderLine {
	out := make([]queue.OrderLine, 0, len(items))
	for _, it := range items {
		var sel []string
		if it.SelectedNumberIDs != "" {
			sel = strings.Split(it.SelectedNumberIDs, ",")
		}
		out = append(out, queue.OrderLine{
			CartKey:         it.CartKey,
			Label:           it.Label,
			SelectedNumbers: sel,
			UnitPricePaise:  it.UnitPricePaise,
		})
	}
	return out
}
