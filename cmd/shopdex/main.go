package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/shopdex/internal/config"
	dbPostgres "github.com/kailas-cloud/shopdex/internal/db/postgres"
	dbRedis "github.com/kailas-cloud/shopdex/internal/db/redis"
	"github.com/kailas-cloud/shopdex/internal/domain"
	logpkg "github.com/kailas-cloud/shopdex/internal/logger"
	"github.com/kailas-cloud/shopdex/internal/metrics"
	"github.com/kailas-cloud/shopdex/internal/pdf"
	documentrepo "github.com/kailas-cloud/shopdex/internal/repository/document"
	memoryrepo "github.com/kailas-cloud/shopdex/internal/repository/memory"
	productrepo "github.com/kailas-cloud/shopdex/internal/repository/product"
	"github.com/kailas-cloud/shopdex/internal/token"
	chiTransport "github.com/kailas-cloud/shopdex/internal/transport/chi"
	ingestuc "github.com/kailas-cloud/shopdex/internal/usecase/ingest"
	searchuc "github.com/kailas-cloud/shopdex/internal/usecase/search"
	"github.com/kailas-cloud/shopdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting shopdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	ctx := context.Background()

	// Create repositories based on driver
	var (
		docSearcher  searchuc.DocumentSearcher
		prodSearcher searchuc.ProductSearcher
		docStore     ingestuc.DocumentStore
	)
	switch cfg.Database.Driver {
	case "postgres":
		pool, err := dbPostgres.New(ctx, cfg.Database.DSN)
		if err != nil {
			logger.Fatal("Failed to create database pool", zap.Error(err))
		}
		defer pool.Close()

		readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
		if err := dbPostgres.WaitForReady(ctx, pool, readiness); err != nil {
			logger.Fatal("Database not ready", zap.Error(err))
		}
		logger.Info("Connected to database")

		docRepo := documentrepo.New(pool)
		docSearcher = docRepo
		docStore = docRepo
		prodSearcher = productrepo.New(pool)
	case "memory":
		repo := memoryrepo.New()
		docSearcher = repo
		docStore = repo
		prodSearcher = repo
		logger.Info("Using in-memory store")
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}

	// Register ingest metrics explicitly (no init())
	metrics.RegisterIngestMetrics()

	// Create use case services
	searchSvc := searchuc.New(docSearcher, prodSearcher).
		WithWeights(domain.Weights{
			Document: cfg.Search.DocumentWeight,
			Product:  cfg.Search.ProductWeight,
		}).
		WithLimits(cfg.Search.DefaultLimit, cfg.Search.MaxLimit)

	// Suggestion path: optionally a read-through cache over the search service
	var suggester searchuc.Suggester = searchSvc
	if cfg.Cache.Enabled {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, readiness); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		logger.Info("Suggestion cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))

		suggester = searchuc.NewCached(
			searchSvc, store,
			time.Duration(cfg.Cache.TTLSec)*time.Second,
			metrics.SuggestionCacheTotal,
			logger,
		)
	}

	ingestSvc := ingestuc.New(docStore, pdf.New(), cfg.Ingest.UploadDir, cfg.Ingest.PublicPathFmt)

	// Create chi server
	maxUploadBytes := int64(cfg.Ingest.MaxUploadMB) << 20
	server := chiTransport.NewServer(searchSvc, suggester, ingestSvc, maxUploadBytes, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.JWTAuthMiddleware(token.NewIssuer(cfg.Auth.JWTSecret)))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
