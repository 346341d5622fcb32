package handler

// cart.go exposes the session cart over HTTP. Each request loads the
// shopper's cart from its persistence slot, applies at most one
// mutation, and responds with the fresh snapshot so clients never need
// a second round trip to update badges. Catalog items are always
// re-read from the database at add time, so the cart prices what is
// actually still purchasable.

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopwave/vip-store/internal/middleware"
	"github.com/shopwave/vip-store/internal/repository"
	"github.com/shopwave/vip-store/internal/store"
)

// CartHandler groups the dependencies for cart endpoints.
type CartHandler struct {
	Stores     *SessionStores
	NumberRepo *repository.NumberRepo
	PackRepo   *repository.PackRepo
}

// NewCartHandler constructs a CartHandler. All dependencies must be
// non-nil.
func NewCartHandler(stores *SessionStores, numberRepo *repository.NumberRepo, packRepo *repository.PackRepo) *CartHandler {
	if stores == nil || numberRepo == nil || packRepo == nil {
		panic("nil dependency passed to NewCartHandler")
	}
	return &CartHandler{Stores: stores, NumberRepo: numberRepo, PackRepo: packRepo}
}

// cartSnapshot is the response body shared by all cart endpoints.
type cartSnapshot struct {
	Items      []store.CartEntry `json:"items"`
	Count      int               `json:"count"`
	TotalPaise int64             `json:"total_paise"`
	Excluded   []string          `json:"excluded_numbers,omitempty"`
}

func snapshot(cart *store.Cart, excluded []string) cartSnapshot {
	return cartSnapshot{
		Items:      cart.Entries(),
		Count:      cart.Count(),
		TotalPaise: cart.TotalPaise(),
		Excluded:   excluded,
	}
}

// Get handles GET /v1/cart and returns the session's current cart.
func (h *CartHandler) Get(c echo.Context) error {
	sid := middleware.SessionID(c)
	if sid == "" {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no session"})
	}
	cart := h.Stores.Cart(c.Request().Context(), sid)
	return c.JSON(http.StatusOK, snapshot(cart, nil))
}

// AddItem handles POST /v1/cart/items. The body names either an
// individual number or a pack with a member selection:
//
//	{"kind": "number", "id": "N1"}
//	{"kind": "pack", "id": "P1", "selection": ["m1", "m2"]}
//
// Adding a line that is already present returns 409 and leaves the
// cart unchanged. A pack whose requested members have all sold returns
// 400. Members that sold since the shopper picked them are excluded
// from the line and reported in "excluded_numbers".
func (h *CartHandler) AddItem(c echo.Context) error {
	sid := middleware.SessionID(c)
	if sid == "" {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no session"})
	}
	var body struct {
		Kind      string   `json:"kind"`
		ID        string   `json:"id"`
		Selection []string `json:"selection"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}

	ctx := c.Request().Context()
	cart := h.Stores.Cart(ctx, sid)

	switch body.Kind {
	case "number":
		n, err := h.NumberRepo.GetByID(ctx, body.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNumberNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "number not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		if !n.Available() {
			return c.JSON(http.StatusConflict, echo.Map{"error": "number no longer available"})
		}
		if _, err := cart.AddNumber(ctx, n); err != nil {
			if errors.Is(err, store.ErrDuplicateEntry) {
				return c.JSON(http.StatusConflict, echo.Map{"error": "already in cart"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add to cart"})
		}
		return c.JSON(http.StatusCreated, snapshot(cart, nil))

	case "pack":
		p, err := h.PackRepo.GetByID(ctx, body.ID)
		if err != nil {
			if errors.Is(err, repository.ErrPackNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "pack not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		_, excluded, err := cart.AddPackSelection(ctx, p, body.Selection)
		if err != nil {
			if errors.Is(err, store.ErrEmptySelection) {
				return c.JSON(http.StatusBadRequest, echo.Map{
					"error":            "no selectable numbers in pack selection",
					"excluded_numbers": excluded,
				})
			}
			if errors.Is(err, store.ErrDuplicateEntry) {
				return c.JSON(http.StatusConflict, echo.Map{"error": "already in cart"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to add to cart"})
		}
		return c.JSON(http.StatusCreated, snapshot(cart, excluded))

	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "kind must be number or pack"})
	}
}

// RemoveItem handles DELETE /v1/cart/items/:key. Removing an absent
// key is not an error; the response is the resulting snapshot either
// way.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	sid := middleware.SessionID(c)
	if sid == "" {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no session"})
	}
	ctx := c.Request().Context()
	cart := h.Stores.Cart(ctx, sid)
	cart.RemoveItem(ctx, c.Param("key"))
	return c.JSON(http.StatusOK, snapshot(cart, nil))
}

// SetQuantity handles PATCH /v1/cart/items/:key/quantity with body
// {"quantity": n}. Every line is a fixed-identity good, so n >= 1
// normalizes to 1 and n <= 0 removes the line.
func (h *CartHandler) SetQuantity(c echo.Context) error {
	sid := middleware.SessionID(c)
	if sid == "" {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no session"})
	}
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	cart := h.Stores.Cart(ctx, sid)
	cart.SetQuantity(ctx, c.Param("key"), body.Quantity)
	return c.JSON(http.StatusOK, snapshot(cart, nil))
}

// Clear handles DELETE /v1/cart and empties the session's cart.
func (h *CartHandler) Clear(c echo.Context) error {
	sid := middleware.SessionID(c)
	if sid == "" {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no session"})
	}
	ctx := c.Request().Context()
	cart := h.Stores.Cart(ctx, sid)
	cart.Clear(ctx)
	return c.JSON(http.StatusOK, snapshot(cart, nil))
}
