// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/authenticore/registry/internal/config"
	"github.com/authenticore/registry/internal/handler"
	"github.com/authenticore/registry/internal/middleware"
)

// RegisterRoutes registers the full API surface on the Echo instance.
// Rate limiting guards the credential endpoints, the response cache sits
// on the public read endpoints, and the admin group requires a JWT with
// the admin role. Both Redis-backed middlewares degrade to pass-through
// when rdb is nil.
func RegisterRoutes(e *echo.Echo, cfg config.Config, a *handler.AuthHandler, p *handler.ProductHandler, adm *handler.AdminHandler, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	auth := e.Group("/api/auth", limiter)
	auth.POST("/register", a.Register)
	auth.POST("/login", a.Login)
	auth.POST("/wallet", a.Wallet)
	auth.POST("/refresh", a.Refresh)
	auth.POST("/logout", a.Logout)
	auth.GET("/me", a.Me)

	// The :id segment is shared: a public code for the flat lookup, a
	// numeric internal id for the history routes.
	//
	// The cached GETs may serve a payload missing a just-appended
	// history event for up to the cache TTL (30s by default). Accepted:
	// verification scans vastly outnumber history writes, and the
	// uncached history route always reads fresh.
	e.POST("/api/products", p.Create)
	e.GET("/api/products/:id", p.GetByCode, cache)
	e.GET("/api/products/:id/history", p.History)
	e.POST("/api/products/:id/history", p.AppendHistory)
	e.GET("/api/verify/:productId", p.Verify, cache)
	e.GET("/api/manufacturers/:id/products", p.ManufacturerProducts)

	admin := e.Group("/api/admin")
	admin.Use(middleware.JWTAuth(cfg.JWTSecret))
	admin.Use(middleware.RequireRole("admin"))
	admin.GET("/users", adm.ListUsers)
}
