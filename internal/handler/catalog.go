// Package handler exposes HTTP handlers for the storefront API. This
// file defines the public catalog: categories, numbers, packs and
// search. These routes are shared across all shoppers and sit behind
// the Redis response cache; nothing session-scoped belongs here.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shopwave/vip-store/internal/repository"
)

// CatalogHandler aggregates the repositories needed for browsing.
type CatalogHandler struct {
	CategoryRepo *repository.CategoryRepo
	NumberRepo   *repository.NumberRepo
	PackRepo     *repository.PackRepo
}

// NewCatalogHandler constructs a CatalogHandler with the provided
// repositories. All dependencies must be non-nil.
func NewCatalogHandler(categoryRepo *repository.CategoryRepo, numberRepo *repository.NumberRepo, packRepo *repository.PackRepo) *CatalogHandler {
	if categoryRepo == nil || numberRepo == nil || packRepo == nil {
		panic("nil repository passed to NewCatalogHandler")
	}
	return &CatalogHandler{CategoryRepo: categoryRepo, NumberRepo: numberRepo, PackRepo: packRepo}
}

// ListCategories handles GET /v1/categories. Response JSON contains an
// "items" array in storefront order.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	cats, err := h.CategoryRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": cats})
}

// ListNumbersByCategory handles GET /v1/categories/:slug/numbers. It
// validates the category exists, then returns its AVAILABLE numbers.
func (h *CatalogHandler) ListNumbersByCategory(c echo.Context) error {
	ctx := c.Request().Context()
	cat, err := h.CategoryRepo.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	numbers, err := h.NumberRepo.ListAvailableByCategory(ctx, cat.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"category": cat, "items": numbers})
}

// GetNumber handles GET /v1/numbers/:id and returns a single number
// including its current status, so clients can re-validate before an
// add-to-cart.
func (h *CatalogHandler) GetNumber(c echo.Context) error {
	ctx := c.Request().Context()
	n, err := h.NumberRepo.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNumberNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "number not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, n)
}

// ListPacks handles GET /v1/packs. Member statuses are read live, so a
// pack whose members sold out still lists but shows nothing selectable.
func (h *CatalogHandler) ListPacks(c echo.Context) error {
	ctx := c.Request().Context()
	packs, err := h.PackRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": packs})
}

// GetPack handles GET /v1/packs/:id with current member statuses.
func (h *CatalogHandler) GetPack(c echo.Context) error {
	ctx := c.Request().Context()
	p, err := h.PackRepo.GetByID(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrPackNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "pack not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, p)
}

// SearchNumbers handles GET /v1/search/numbers. Query parameters:
// q (digit substring), category (slug), min_paise, max_paise,
// vip (true/false), page, page_size.
func (h *CatalogHandler) SearchNumbers(c echo.Context) error {
	ctx := c.Request().Context()

	q := repository.NumberSearchQuery{
		Digits:       c.QueryParam("q"),
		CategorySlug: c.QueryParam("category"),
		VIPOnly:      c.QueryParam("vip") == "true",
		Page:         1,
		PageSize:     20,
	}
	if v, err := strconv.ParseInt(c.QueryParam("min_paise"), 10, 64); err == nil && v > 0 {
		q.MinPaise = v
	}
	if v, err := strconv.ParseInt(c.QueryParam("max_paise"), 10, 64); err == nil && v > 0 {
		q.MaxPaise = v
	}
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		q.Page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && v > 0 && v <= 100 {
		q.PageSize = v
	}

	rows, total, err := h.NumberRepo.SearchAvailable(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":     rows,
		"total":     total,
		"page":      q.Page,
		"page_size": q.PageSize,
	})
}
