package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"myregistry/adapters/memstore"
	"myregistry/adapters/myredis"
	"myregistry/handlers"
	"myregistry/interfaces"
	"myregistry/service"

	"github.com/VictoriaMetrics/metrics"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
)

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting MyRegistry service")

	// Load configuration (.env first, then the environment)
	_ = godotenv.Load()
	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"service_port_http", config.HTTPPort,
		"redis_addr", config.Redis.Addr,
		"memory_store", config.MemoryStore,
		"gc_interval", config.Registry.SweepInterval,
		"instance_timeout", config.Registry.InstanceTimeout,
		"mutex_timeout", config.Registry.MutexTimeout,
	)

	var store interfaces.Store
	if config.MemoryStore {
		store = memstore.NewStore()
		level.Info(logger).Log("msg", "Using in-memory store")
	} else {
		redisClient, err := myredis.NewRedisUniversalClient(config.Redis.Addr)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create Redis client", "err", err)
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			level.Error(logger).Log("msg", "Failed to connect to Redis", "err", err)
			os.Exit(1)
		}
		level.Info(logger).Log("msg", "Connected to Redis")

		store = myredis.NewStore(redisClient)
	}

	if config.FlushOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := store.FlushAll(ctx); err != nil {
			cancel()
			level.Error(logger).Log("msg", "Failed to flush store", "err", err)
			os.Exit(1)
		}
		cancel()
		level.Info(logger).Log("msg", "Store flushed for a clean run")
	}

	// Create the registry core
	metricsSet := metrics.NewSet()
	clock := service.NewTimeProvider(func() time.Time { return time.Now().UTC() })
	registry := service.NewRegistry(store, clock, config.Registry, metricsSet)

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		e = echo.New()
		e.HideBanner = true
		service.RegisterErrorHandler(e, logger)
		handlers.RegisterHandlers(e, handlers.NewHTTPServer(registry, logger))
		e.GET("/metrics", func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderContentType, "text/plain; charset=utf-8")
			metricsSet.WritePrometheus(c.Response())
			return nil
		})
	}

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%d", config.HTTPPort)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
		}
	}()

	// Wait for interrupt signal
	<-quit
	level.Info(logger).Log("msg", "Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}

	level.Info(logger).Log("msg", "Server stopped")
}
