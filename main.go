package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reporting-service/domain/repository"
	"reporting-service/infrastructure/cache"
	"reporting-service/infrastructure/clients/catalogapi"
	"reporting-service/infrastructure/configuration"
	"reporting-service/infrastructure/gateway"
	"reporting-service/infrastructure/logger"
	httpHandler "reporting-service/interfaces/http"
	"reporting-service/server"
	"reporting-service/usecase"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := configuration.C
	logger.Configure(cfg.Logger.Format, cfg.Logger.Level)
	if cfg.App.Mode != "" {
		gin.SetMode(cfg.App.Mode)
	}

	g, ctx := errgroup.WithContext(ctx)

	catalog := InitiateCatalog(ctx, cfg)
	reportUsecase := usecase.NewReportUsecase(catalog)

	router := server.InitiateRouter(
		httpHandler.NewReportHandler(reportUsecase),
		httpHandler.NewHealthHandler(),
		cfg.Cors.AllowOrigins,
	)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		logger.GetLogger().WithFields(map[string]interface{}{
			"port":       cfg.App.Port,
			"videoApi":   cfg.VideoAPI.BaseURL,
			"cacheTtlS":  cfg.RedisClient.TTLSeconds,
			"cacheReady": cfg.CacheEnabled(),
		}).Info("Starting application")
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.GetLogger().Info("Application shutdown requested")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// InitiateCatalog builds the catalog gateway, wrapped with the Redis cache
// when one is configured and reachable.
func InitiateCatalog(ctx context.Context, cfg configuration.Config) repository.ICatalog {
	client := catalogapi.NewCatalogClient(
		cfg.VideoAPI.BaseURL,
		time.Duration(cfg.VideoAPI.TimeoutSeconds)*time.Second,
		catalogapi.Header{
			Accept:    cfg.VideoAPI.Header.Accept,
			UserAgent: cfg.VideoAPI.Header.UserAgent,
		},
	)

	if !cfg.CacheEnabled() {
		logger.GetLogger().Info("Catalog cache disabled - every report fetches fresh data")
		return client
	}

	redisClient, err := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", cfg.RedisClient.Host, cfg.RedisClient.Port),
		cfg.RedisClient.Username,
		cfg.RedisClient.Password,
		cfg.RedisClient.DB,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - continuing without catalog cache")
		return client
	}

	logger.GetLogger().Info("Redis client initialized successfully.")
	return gateway.NewCatalogRepository(
		client,
		cache.NewCatalogCache(redisClient),
		time.Duration(cfg.RedisClient.TTLSeconds)*time.Second,
	)
}
