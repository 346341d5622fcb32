package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/shopwave/vip-store/internal/handler" // handlers implementing the storefront logic
)

// RegisterRoutes registers routes that need no session on the provided
// Echo instance. Currently it exposes only a health check, usable by
// load balancers and monitoring to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterCatalog registers the public browse and search endpoints.
// These are shared, read-only routes; the optional cache middleware is
// applied here and only here so session-scoped responses are never
// cached. The limiter runs before the cache so hits still consume a
// token.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, limiter, cache echo.MiddlewareFunc) {
	g := e.Group("/v1", limiter)
	if cache != nil {
		g.Use(cache)
	}
	// Storefront category list, in display order
	g.GET("/categories", h.ListCategories)
	// Available numbers within a category, addressed by slug
	g.GET("/categories/:slug/numbers", h.ListNumbersByCategory)
	// Single number with live status, for pre-add revalidation
	g.GET("/numbers/:id", h.GetNumber)
	// All packs with live member statuses
	g.GET("/packs", h.ListPacks)
	// Single pack detail
	g.GET("/packs/:id", h.GetPack)
	// Digit/price/category search over available numbers
	g.GET("/search/numbers", h.SearchNumbers)
}

// RegisterShopping registers the session-scoped cart, favorites and
// checkout endpoints. The session middleware resolves (or mints) the
// guest session that names the shopper's persistence slots; every
// handler in this group requires it. The limiter runs after it so
// session-keyed bucket strategies see the real session id.
func RegisterShopping(e *echo.Echo, cart *handler.CartHandler, favs *handler.FavoritesHandler, checkout *handler.CheckoutHandler, session, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1", session, limiter)

	// Cart operations; responses always carry the fresh snapshot
	g.GET("/cart", cart.Get)
	g.POST("/cart/items", cart.AddItem)
	g.DELETE("/cart/items/:key", cart.RemoveItem)
	g.PATCH("/cart/items/:key/quantity", cart.SetQuantity)
	g.DELETE("/cart", cart.Clear)

	// Favorites: a pure toggle set keyed by item id
	g.GET("/favorites", favs.List)
	g.POST("/favorites/toggle", favs.Toggle)

	// Checkout: freeze the cart into a gateway order, then settle it
	g.POST("/checkout", checkout.Create)
	g.POST("/checkout/confirm", checkout.Confirm)
}
