package main // Entry point package

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/shopwave/vip-store/internal/config"
	"github.com/shopwave/vip-store/internal/database"
	"github.com/shopwave/vip-store/internal/handler"
	"github.com/shopwave/vip-store/internal/middleware"
	"github.com/shopwave/vip-store/internal/payment"
	"github.com/shopwave/vip-store/internal/queue"
	"github.com/shopwave/vip-store/internal/repository"
	"github.com/shopwave/vip-store/internal/router"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	// Redis backs the persistence slots, response cache and rate
	// limiter. A nil client degrades all three gracefully.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable: carts fall back to in-memory slots, cache and rate limit disabled")
	}

	categoryRepo := repository.NewCategoryRepo(db)
	numberRepo := repository.NewNumberRepo(db)
	packRepo := repository.NewPackRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	stores := handler.NewSessionStores(rdb, time.Duration(cfg.SlotTTLDays)*24*time.Hour)
	gateway := payment.NewClient(cfg.RazorpayKeyID, cfg.RazorpaySecret)

	catalogHandler := handler.NewCatalogHandler(categoryRepo, numberRepo, packRepo)
	cartHandler := handler.NewCartHandler(stores, numberRepo, packRepo)
	favoritesHandler := handler.NewFavoritesHandler(stores, numberRepo, packRepo)
	checkoutHandler := handler.NewCheckoutHandler(stores, orderRepo, numberRepo, gateway)

	session := middleware.GuestSession(cfg.SessionSecret, time.Duration(cfg.SessionTTLDays)*24*time.Hour)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterCatalog(e, catalogHandler, limiter, cache)
	router.RegisterShopping(e, cartHandler, favoritesHandler, checkoutHandler, session, limiter)

	// Background consumer appending confirmed orders to logs/orders.log.
	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
