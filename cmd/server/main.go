package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AptiPro-2025/exam-session-service/internal/cache"
	"github.com/AptiPro-2025/exam-session-service/internal/collab"
	"github.com/AptiPro-2025/exam-session-service/internal/config"
	"github.com/AptiPro-2025/exam-session-service/internal/handlers"
	"github.com/AptiPro-2025/exam-session-service/internal/services"
	"github.com/AptiPro-2025/exam-session-service/internal/utils"
	"github.com/AptiPro-2025/exam-session-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}

	logger.Info("Starting exam session service", "environment", cfg.Environment, "port", cfg.Port)

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	publisher, err := cfg.Events.CreateEventPublisher(utils.ToSlogLogger(logger))
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	validator := utils.NewValidator()
	collabClient := collab.NewClient(cfg.CollabAPIURL, logger)
	viewerStore := cache.NewViewerStore(cache.NewRedisCache(redisClient, logger))

	sessionService := services.NewSessionService(collabClient, viewerStore, publisher, logger, validator)
	resultService := services.NewResultService(collabClient, viewerStore, logger)
	accountService := services.NewAccountService(collabClient, viewerStore, logger, validator)
	reportService := services.NewReportService(collabClient, viewerStore, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))

	handlerManager := handlers.NewHandlerManager(
		sessionService,
		resultService,
		accountService,
		reportService,
		validator,
		logger,
	)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("Server listening", "addr", server.Addr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
	logger.Info("Shutdown complete")
}
