package app

import (
	"context"
	"time"

	"sailbook/internal/cache"
	"sailbook/internal/config"
	"sailbook/internal/db"
	"sailbook/internal/handlers"
	"sailbook/internal/logger"
	"sailbook/internal/repository"
	"sailbook/internal/routes"
	"sailbook/internal/services"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func InitApp(cfg *config.Config) (*mux.Router, error) {
	var (
		accountRepo  *repository.AccountRepository
		boatRepo     *repository.BoatRepository
		waypointRepo *repository.WaypointRepository
	)

	if cfg.DbDriver == "memory" {
		accountRepo = repository.NewMemoryAccountRepository()
		boatRepo = repository.NewMemoryBoatRepository()
		waypointRepo = repository.NewMemoryWaypointRepository()
	} else {
		conn, err := db.NewPostgresConnection(cfg)
		if err != nil {
			return nil, err
		}
		if err := repository.EnsureSchema(context.Background(), conn); err != nil {
			return nil, err
		}
		accountRepo = repository.NewAccountRepository(conn)
		boatRepo = repository.NewBoatRepository(conn)
		waypointRepo = repository.NewWaypointRepository(conn)
	}

	resetTTL := parseMinutes(cfg.PasswordResetTTLMin, 60*time.Minute)
	verifyTTL := parseHours(cfg.VerifyTokenTTLHours, 24*time.Hour)

	// Services
	emailService := services.NewEmailService(cfg)
	accountService := services.NewAccountService(accountRepo, emailService, cfg.SiteURL, resetTTL, verifyTTL)
	boatService := services.NewBoatService(boatRepo, waypointRepo, accountService)
	waypointService := services.NewWaypointService(waypointRepo, boatRepo)

	// Optional Redis profile cache, invalidated through the account
	// service's listener hook.
	var profileCache handlers.ProfileCache
	if cfg.RedisAddr != "" {
		accountCache, err := cache.NewAccountCache(cfg)
		if err != nil {
			logger.Log.Warn("redis unavailable, running without account cache", zap.Error(err))
		} else {
			accountService.Subscribe(accountCache.Invalidate)
			profileCache = accountCache
		}
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(accountService)
	passwordHandler := handlers.NewPasswordHandler(accountService)
	accountHandler := handlers.NewAccountHandler(accountService, profileCache)
	boatHandler := handlers.NewBoatHandler(boatService)
	waypointHandler := handlers.NewWaypointHandler(waypointService)

	router := mux.NewRouter()
	routes.InitRoutes(router, authHandler, passwordHandler, accountHandler, boatHandler, waypointHandler)

	return router, nil
}

func parseMinutes(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v + "m")
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func parseHours(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v + "h")
	if err != nil || d <= 0 {
		return def
	}
	return d
}
