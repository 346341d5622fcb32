package handler

// favorites.go exposes the session favorites set. Favorites key on the
// top-level item id only: a pack is favorited as a whole regardless of
// any member subset sitting in the cart, and favorites survive
// checkout.

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopwave/vip-store/internal/middleware"
	"github.com/shopwave/vip-store/internal/repository"
	"github.com/shopwave/vip-store/internal/store"
)

// FavoritesHandler groups the dependencies for favorites endpoints.
type FavoritesHandler struct {
	Stores     *SessionStores
	NumberRepo *repository.NumberRepo
	PackRepo   *repository.PackRepo
}

// NewFavoritesHandler constructs a FavoritesHandler. All dependencies
// must be non-nil.
func NewFavoritesHandler(stores *SessionStores, numberRepo *repository.NumberRepo, packRepo *repository.PackRepo) *FavoritesHandler {
	if stores == nil || numberRepo == nil || packRepo == nil {
		panic("nil dependency passed to NewFavoritesHandler")
	}
	return &FavoritesHandler{Stores: stores, NumberRepo: numberRepo, PackRepo: packRepo}
}

// List handles GET /v1/favorites and returns the session's favorites.
func (h *FavoritesHandler) List(c echo.Context) error {
	sid := middleware.SessionID(c)
	if sid == "" {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no session"})
	}
	favs := h.Stores.Favorites(c.Request().Context(), sid)
	return c.JSON(http.StatusOK, echo.Map{"items": favs.Items(), "count": favs.Count()})
}

// Toggle handles POST /v1/favorites/toggle with body
// {"kind": "number"|"pack", "id": "..."}. It adds the item when absent
// and removes it when present, responding with the end state.
func (h *FavoritesHandler) Toggle(c echo.Context) error {
	sid := middleware.SessionID(c)
	if sid == "" {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no session"})
	}
	var body struct {
		Kind string `json:"kind"`
		ID   string `json:"id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.ID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "id is required"})
	}

	ctx := c.Request().Context()
	var entry store.FavoriteEntry
	switch body.Kind {
	case "number":
		n, err := h.NumberRepo.GetByID(ctx, body.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNumberNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "number not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		entry = store.NumberFavorite(n)
	case "pack":
		p, err := h.PackRepo.GetByID(ctx, body.ID)
		if err != nil {
			if errors.Is(err, repository.ErrPackNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "pack not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		entry = store.PackFavorite(p)
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "kind must be number or pack"})
	}

	favs := h.Stores.Favorites(ctx, sid)
	favorited := favs.Toggle(ctx, entry)
	return c.JSON(http.StatusOK, echo.Map{"favorited": favorited, "count": favs.Count()})
}
