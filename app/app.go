// File: app/app.go
package app

import (
	"context"
	"journey-api/config"
	"journey-api/db"
	"journey-api/handler"
	"journey-api/logger"
	"journey-api/repository"
	"journey-api/router"
	"journey-api/service"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func Run() {
	config.LoadConfig(".")
	logger.Init()
	logger.Log.Info("Logger initialized")
	logger.Log.Info("Configuration loaded successfully")

	database, err := db.Connect()
	if err != nil {
		logger.Log.Fatalf("Error connecting to the database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations("file://db/migrations"); err != nil {
		logger.Log.Fatalf("Error running migrations: %v", err)
	}

	// --- Wiring All Layers Together ---

	tokenService := service.NewTokenService(service.TokenConfig{
		SigningKey:      config.AppConfig.JWT.SecretKey,
		RefreshTokenTTL: config.AppConfig.JWT.RefreshTokenTTL,
	})

	userRepo := repository.NewUserRepository(database)
	tokenRepo := repository.NewTokenRepository(database)
	journeyRepo := repository.NewJourneyRepository(database)
	todoRepo := repository.NewToDoRepository(database)
	retrospectRepo := repository.NewRetrospectRepository(database)

	authService := service.NewAuthService(userRepo, tokenRepo, tokenService)
	journeyService := service.NewJourneyService(journeyRepo)
	todoService := service.NewToDoService(database, todoRepo, journeyService)
	retrospectService := service.NewRetrospectService(retrospectRepo, journeyRepo)

	authHandler := handler.NewAuthHandler(authService)
	todoHandler := handler.NewToDoHandler(todoService)
	retrospectHandler := handler.NewRetrospectHandler(retrospectService)
	authMW := handler.NewAuthMiddleware(tokenService, tokenRepo, userRepo)

	r := router.NewRouter(authHandler, todoHandler, retrospectHandler, authMW)

	// --- Start the Server with Graceful Shutdown ---
	port := config.AppConfig.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}
