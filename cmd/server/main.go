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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nhlcentral/stats-api/internal/adapter"
	"github.com/nhlcentral/stats-api/internal/cache"
	"github.com/nhlcentral/stats-api/internal/config"
	"github.com/nhlcentral/stats-api/internal/handlers"
	"github.com/nhlcentral/stats-api/internal/ratelimit"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	store := connectCache(cfg, logger)

	limiter := ratelimit.NewFixedWindow(cfg.RateLimitPermits, cfg.RateLimitWindow, cfg.RateLimitQueue)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(handlers.RequestLogger(logger))
	r.Use(handlers.Metrics)
	r.Use(limiter.Middleware)

	r.Get("/health", handlers.Health)
	r.Handle("/metrics", promhttp.Handler())

	for _, vc := range cfg.Variants {
		if err := mountVariant(r, vc, store, logger); err != nil {
			sugar.Fatalw("failed to mount variant", "variant", vc.Name, "error", err)
		}
		sugar.Infow("variant mounted",
			"variant", vc.Name, "type", vc.Type, "prefix", vc.RoutePrefix, "driver", vc.Driver)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		sugar.Infow("listening", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("shutdown", "error", err)
	}
}

// connectCache builds the advisory cache store. No Redis URL means the
// gateway runs in direct-query mode; an unreachable Redis is logged but
// the client is kept, individual calls degrade to misses.
func connectCache(cfg *config.Config, logger *zap.Logger) *cache.Store {
	if cfg.RedisURL == "" {
		logger.Sugar().Warn("no REDIS_URL configured, caching disabled")
		return nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Sugar().Warnw("invalid REDIS_URL, caching disabled", "error", err)
		return nil
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Sugar().Warnw("redis unreachable, requests degrade to direct queries", "error", err)
	}
	return cache.New(client, logger)
}

// mountVariant opens the variant's database pool lazily and registers its
// routes. An unreachable database fails requests, not startup.
func mountVariant(r chi.Router, vc config.VariantConfig, store *cache.Store, logger *zap.Logger) error {
	db, dialect, err := adapter.Open(vc.Driver, vc.DatabaseURL)
	if err != nil {
		return err
	}

	namespace := vc.Type.Namespace()
	var a adapter.StatsAdapter
	endpoints := handlers.EndpointsFull
	variantStore := store

	switch vc.Type {
	case config.VariantNHL10:
		a = adapter.NewSingle(db, dialect, namespace, logger)
	case config.VariantNHL11:
		// The nhl11 title never had the full endpoint set nor caching.
		a = adapter.NewSingle(db, dialect, namespace, logger)
		endpoints = handlers.EndpointsBasic
		variantStore = nil
	case config.VariantNHL14:
		a = adapter.NewSplit(db, dialect, namespace, logger)
	case config.VariantNHLLegacy:
		a = adapter.NewLegacy(db, dialect, namespace, logger)
	default:
		return fmt.Errorf("unknown variant type %q", vc.Type)
	}

	h := handlers.New(handlers.Config{
		Adapter:   a,
		Cache:     variantStore,
		Keys:      cache.Keys{Namespace: namespace, RoutePrefix: vc.RoutePrefix},
		Logger:    logger,
		Endpoints: endpoints,
	})
	h.Mount(r, vc.RoutePrefix)
	return nil
}
