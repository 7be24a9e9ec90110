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
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/lumen-cloud/memodex/internal/config"
	"github.com/lumen-cloud/memodex/internal/db"
	dbRedis "github.com/lumen-cloud/memodex/internal/db/redis"
	logpkg "github.com/lumen-cloud/memodex/internal/logger"
	"github.com/lumen-cloud/memodex/internal/metrics"
	conversationrepo "github.com/lumen-cloud/memodex/internal/repository/conversation"
	noterepo "github.com/lumen-cloud/memodex/internal/repository/note"
	"github.com/lumen-cloud/memodex/internal/repository/trcache"
	chiTransport "github.com/lumen-cloud/memodex/internal/transport/chi"
	"github.com/lumen-cloud/memodex/internal/transport/libre"
	answeruc "github.com/lumen-cloud/memodex/internal/usecase/answer"
	conversationuc "github.com/lumen-cloud/memodex/internal/usecase/conversation"
	diagnosticsuc "github.com/lumen-cloud/memodex/internal/usecase/diagnostics"
	memoryuc "github.com/lumen-cloud/memodex/internal/usecase/memory"
	summaryuc "github.com/lumen-cloud/memodex/internal/usecase/summary"
	translateuc "github.com/lumen-cloud/memodex/internal/usecase/translate"
	"github.com/lumen-cloud/memodex/internal/version"
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

	logger.Info("Starting memodex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Connect the document store. The service starts even when the store is
	// absent or unreachable: store-backed routes answer 500 and /test reports
	// the condition, but detection, translation and summarize keep working.
	//
	// Go gotcha: assign only a live *Store to the db.Store interface — a typed
	// nil pointer wrapped in the interface would not compare equal to nil.
	var store db.Store
	if len(cfg.Database.Addrs) == 0 {
		logger.Warn("No database configured, running without a store")
	} else if redisStore, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	}); err != nil {
		logger.Warn("Failed to connect database store, running degraded", zap.Error(err))
	} else {
		ctx := context.Background()
		timeout := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
		if err := redisStore.WaitForReady(ctx, timeout); err != nil {
			logger.Warn("Database not ready, running degraded", zap.Error(err))
		} else {
			logger.Info("Connected to database")
		}
		store = redisStore
		defer redisStore.Close()
	}

	// Register translation metrics explicitly (no init())
	metrics.RegisterTranslationMetrics()

	libreClient := libre.NewClient(&libre.Config{
		DetectURL:    cfg.Translator.DetectURL,
		TranslateURL: cfg.Translator.TranslateURL,
		Timeout:      time.Duration(cfg.Translator.TimeoutSec) * time.Second,
		Logger:       logger,
	})

	// Translation cache needs both a store and a positive TTL.
	var trClient translateuc.Client = libreClient
	if store != nil && cfg.Translator.CacheTTLSec > 0 {
		trClient = trcache.New(
			libreClient,
			store,
			cfg.Storage.KeyPrefix,
			time.Duration(cfg.Translator.CacheTTLSec)*time.Second,
			metrics.TranslationCacheTotal,
			logger,
		)
		logger.Info("Translation cache enabled", zap.Int("ttl_sec", cfg.Translator.CacheTTLSec))
	}

	// Create repositories (nil store is tolerated, see above)
	noteRepo := noterepo.New(store, cfg.Storage.KeyPrefix)
	convRepo := conversationrepo.New(store, cfg.Storage.KeyPrefix)

	// Create use case services
	trSvc := translateuc.New(trClient)
	summarySvc := summaryuc.New(trSvc)
	answerSvc := answeruc.New(noteRepo, trSvc, cfg.Retrieval.AskLimit, cfg.Retrieval.ContextMaxChars)
	memorySvc := memoryuc.New(noteRepo, cfg.Retrieval.MemoryLimit)
	convSvc := conversationuc.New(convRepo, cfg.Retrieval.ConversationLimit)
	diagSvc := diagnosticsuc.New(
		store,
		cfg.Storage.KeyPrefix+"collections",
		len(cfg.Database.Addrs) > 0,
		cfg.Database.Name != "",
	)

	server := chiTransport.NewServer(trSvc, summarySvc, answerSvc, memorySvc, convSvc, diagSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
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
						"detail": "internal error",
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
