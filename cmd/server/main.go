package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mertdogan/estately/internal/api"
	"github.com/mertdogan/estately/internal/auth"
	"github.com/mertdogan/estately/internal/config"
	"github.com/mertdogan/estately/internal/database"
	"github.com/mertdogan/estately/internal/database/repository"
	"github.com/mertdogan/estately/internal/database/service"
	"github.com/mertdogan/estately/internal/handler"
	"github.com/mertdogan/estately/internal/logger"
	"github.com/mertdogan/estately/internal/middleware"
)

func main() {
	// 1. Config (.env is optional; the environment may be set directly)
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 [Estately] Starting API server...",
		"environment", cfg.AppEnv,
		"port", cfg.Port,
	)

	// 3. Connect to MongoDB
	db, err := database.Connect(cfg, appLogger)
	if err != nil {
		appLogger.Error("❌ Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer database.Disconnect(db)

	// 4. Token denylist (Redis). Optional: without it signout degrades to
	// clearing the client cookie only.
	denylist, err := database.NewTokenDenylist(cfg, appLogger)
	if err != nil {
		appLogger.Warn("⚠️ Failed to connect to Redis for token revocation", "error", err)
		appLogger.Info("💡 Signout will be stateless (cookie clear only)")
		denylist = nil
	}
	defer denylist.Close()

	// 5. Repositories
	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)

	// 6. Token manager & services
	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.TokenExpiration)*time.Second)
	authService := service.NewAuthService(userRepo, tokens, denylist, appLogger)
	userService := service.NewUserService(userRepo, listingRepo, appLogger)
	listingService := service.NewListingService(listingRepo, appLogger)

	// 7. Handlers & middleware
	authHandler := handler.NewAuthHandler(authService, tokens, appLogger)
	userHandler := handler.NewUserHandler(userService, authService, appLogger)
	listingHandler := handler.NewListingHandler(listingService, appLogger)
	authMiddleware := middleware.NewAuthMiddleware(tokens, denylist, appLogger)

	// 8. Rate limiter for the credential endpoints
	rateLimiter, err := middleware.NewRateLimiter(cfg, appLogger)
	if err != nil {
		rateLimiter = middleware.NewNoOpRateLimiter(appLogger)
	}
	defer rateLimiter.Close()

	// 9. Router
	router := api.SetupRouter(
		authHandler,
		userHandler,
		listingHandler,
		authMiddleware,
		middleware.AuthRateLimit(rateLimiter, appLogger),
	)

	appLogger.Info("✅ [Estately] API server ready", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		appLogger.Error("❌ Server error", "error", err)
		os.Exit(1)
	}
}
