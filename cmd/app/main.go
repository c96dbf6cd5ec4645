package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"

	"ualz-service/internal/catalog"
	"ualz-service/internal/config"
	catalogReload "ualz-service/internal/http-server/handlers/catalog/reload"
	conflictsGet "ualz-service/internal/http-server/handlers/conflicts/get"
	coursesGet "ualz-service/internal/http-server/handlers/courses/get"
	exportGet "ualz-service/internal/http-server/handlers/export/get"
	svc "ualz-service/internal/service"
	slogpretty "ualz-service/pkg/handlers/slogPretty"
	"ualz-service/pkg/middleware/mwLogger"
	"ualz-service/pkg/sl"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting API", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	variant, err := catalog.ParseVariant(cfg.Catalog.Variant)
	if err != nil {
		log.Error("Invalid catalog variant", sl.Err(err))
		os.Exit(1)
	}

	loader := catalog.NewLoader(log, variant)

	var cache catalog.Cache
	var redisCache *catalog.RedisCache
	if cfg.Catalog.RedisAddr != "" {
		redisCache, err = catalog.NewRedisCache(cfg.Catalog.RedisAddr, cfg.Catalog.CacheTTL)
		if err != nil {
			log.Error("Failed to init redis cache", sl.Err(err))
			os.Exit(1)
		}
		cache = redisCache
	} else {
		cache = catalog.NewMemoryCache()
	}

	provider := catalog.NewProvider(log, loader, cache, cfg.Catalog.Path)

	// Warm load so a broken catalog file fails fast at startup.
	if _, err := provider.Catalog(context.Background()); err != nil {
		log.Error("Failed to load catalog", sl.Err(err))
		os.Exit(1)
	}

	service := svc.NewService(provider)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwLogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(CORS)

	// Courses
	router.Get("/courses", coursesGet.New(log, service))
	router.Get("/courses/{id}", coursesGet.New(log, service))

	// Conflicts
	router.Get("/courses/{id}/conflicts", conflictsGet.New(log, service))
	router.Get("/courses/{id}/conflicts/export", exportGet.New(log, service))

	// Catalog
	router.Post("/catalog/reload", catalogReload.New(log, service))

	serv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErrCh := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", slog.String("addr", cfg.Address))
		if err := serv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		} else {
			serverErrCh <- nil
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErrCh:
		if err != nil {
			log.Error("HTTP server stopped unexpectedly", sl.Err(err))
		} else {
			log.Info("HTTP server stopped gracefully")
		}
	}

	shutdownTimeout := cfg.HTTPServer.ShutdownTimeout

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("Shutting down HTTP server", slog.String("timeout", shutdownTimeout.String()))

	if err := serv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", sl.Err(err))
	} else {
		log.Info("Server shutdown complete")
	}

	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			log.Error("Failed to close redis cache", sl.Err(err))
		} else {
			log.Info("Redis cache closed")
		}
	}

	log.Info("Shutdown finished, server stopped")

}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
