// ChatMatch - Simulated Conversation Practice Server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/chatmatch/backend/internal/api"
	"github.com/chatmatch/backend/internal/config"
	"github.com/chatmatch/backend/internal/engine"
	"github.com/chatmatch/backend/internal/exemplar"
	"github.com/chatmatch/backend/internal/exemplar/qdrant"
	"github.com/chatmatch/backend/internal/llm"
	"github.com/chatmatch/backend/internal/middleware"
	"github.com/chatmatch/backend/internal/persona"
	"github.com/chatmatch/backend/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server",
		"port", cfg.Port,
		"store", cfg.StoreDriver,
		"dev", cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize dependencies.
	repo, err := store.New(cfg)
	if err != nil {
		slog.Error("Failed to initialize session store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close session store", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Session store health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Session store connected", "driver", cfg.StoreDriver)

	gemini, err := llm.NewGeminiClient(ctx, llm.GeminiConfig{
		APIKey:     cfg.GeminiAPIKey,
		Model:      cfg.GeminiModel,
		EmbedModel: cfg.GeminiEmbedModel,
		Retry: &llm.RetryPolicy{
			MaxAttempts:  cfg.GenerationAttempts,
			InitialDelay: 500 * time.Millisecond,
			Multiplier:   2.0,
			MaxDelay:     10 * time.Second,
		},
	})
	if err != nil {
		slog.Error("Failed to initialize generation client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := gemini.Close(); closeErr != nil {
			slog.Error("Failed to close generation client", "error", closeErr)
		}
	}()

	// Exemplar store: Qdrant when configured, in-process otherwise.
	var vectors exemplar.VectorStore
	if cfg.QdrantURL != "" {
		qs, err := qdrant.New(qdrant.Config{
			URL:            cfg.QdrantURL,
			CollectionName: cfg.QdrantCollection,
			APIKey:         cfg.QdrantAPIKey,
		})
		if err != nil {
			slog.Error("Failed to initialize Qdrant client", "error", err)
			os.Exit(1)
		}
		vectors = qs
		slog.Info("Exemplar store connected", "backend", "qdrant", "collection", cfg.QdrantCollection)
	} else {
		vectors = exemplar.NewMemoryStore()
		slog.Info("Exemplar store running in-process", "backend", "memory")
	}
	defer func() {
		if closeErr := vectors.Close(); closeErr != nil {
			slog.Error("Failed to close exemplar store", "error", closeErr)
		}
	}()

	retriever := exemplar.NewRetriever(gemini, vectors)

	var archive *engine.ArchiveWriter
	if cfg.AssessmentLog.Enabled {
		archive, err = engine.NewArchiveWriter(cfg.AssessmentLog.Dir, cfg.AssessmentLog.QueueSize)
		if err != nil {
			slog.Error("Failed to initialize assessment archive", "error", err)
			os.Exit(1)
		}
		defer archive.Close()
		slog.Info("Assessment archive enabled", "dir", cfg.AssessmentLog.Dir)
	}

	eng := engine.New(repo, persona.NewRegistry(), gemini, retriever, archive, engine.Options{
		MaxUserTurns:      cfg.MaxUserTurns,
		ExemplarTopK:      cfg.ExemplarTopK,
		GenerationTimeout: cfg.GenerationTimeout,
	})

	eng.StartTTLWorker(ctx, cfg.SessionTTL)

	// Initialize handlers.
	baseHandler := api.NewHandler(eng)
	sessionHandler := api.NewSessionHandler(baseHandler)
	healthHandler := api.NewHealthHandler(repo)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)

	allowedOrigins := []string{"*"}
	if cfg.FrontendURL != "" {
		allowedOrigins = []string{cfg.FrontendURL}
	}
	r.Use(middleware.CORS(allowedOrigins))

	r.Get("/health", healthHandler.Health)
	sessionHandler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
