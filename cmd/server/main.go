package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/authenticore/registry/internal/config"
	"github.com/authenticore/registry/internal/handler"
	"github.com/authenticore/registry/internal/logger"
	"github.com/authenticore/registry/internal/queue"
	"github.com/authenticore/registry/internal/repository"
	"github.com/authenticore/registry/internal/router"
	"github.com/authenticore/registry/internal/service"
)

func main() {
	_ = godotenv.Load()
	logger.Init()

	cfg := config.Load()
	rdb := config.NewRedisClient() // nil when Redis is unreachable; middlewares degrade
	if rdb == nil {
		slog.Warn("redis unavailable, rate limiting and response cache disabled")
	}

	store := repository.NewStore()
	if cfg.SeedDemoData {
		if err := store.Seed(cfg.BcryptCost); err != nil {
			slog.Error("seeding demo data failed", "err", err)
			os.Exit(1)
		}
		slog.Info("demo data seeded")
	}
	tokens := repository.NewTokenRepo(rdb)

	queue.StartPassportConsumers()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	authH := handler.NewAuthHandler(cfg, store, tokens)
	productH := handler.NewProductHandler(store, service.NewPublisher())
	adminH := handler.NewAdminHandler(store)
	router.RegisterRoutes(e, cfg, authH, productH, adminH, rdb)

	addr := ":" + cfg.Port
	slog.Info("listening", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
