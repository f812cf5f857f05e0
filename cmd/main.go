package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/Vovarama1992/go-utils/logger"

	"github.com/voicecanvas/voicecanvas/internal/config"
	"github.com/voicecanvas/voicecanvas/internal/delivery"
	"github.com/voicecanvas/voicecanvas/internal/latest"
	"github.com/voicecanvas/voicecanvas/internal/processing"
	"github.com/voicecanvas/voicecanvas/internal/settings"
	"github.com/voicecanvas/voicecanvas/internal/synthesis"
	"github.com/voicecanvas/voicecanvas/internal/transcribe"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / CONFIG
	// =========================================================================

	_ = godotenv.Load()
	cfg := config.Load()

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// SETTINGS STORE
	// =========================================================================

	var settingsRepo settings.Repo

	switch {
	case cfg.SettingsBackend == "memory" || cfg.DatabaseURL == "":
		if cfg.SettingsBackend != "memory" {
			log.Print("DATABASE_URL is not set, falling back to in-memory settings")
		}
		settingsRepo = settings.NewMemRepo(cfg.DefaultMetaPrompt)
	default:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("db ping failed: %v", err)
		}
		defer db.Close()

		settingsRepo = settings.NewPgRepo(db, cfg.DefaultMetaPrompt)
	}

	settingsService := settings.NewService(settingsRepo, cfg.DefaultMetaPrompt, zl)

	// =========================================================================
	// CLIENTS (STT / IMAGE)
	// =========================================================================

	var sttClient transcribe.Client
	switch cfg.STTBackend {
	case "whisper":
		sttClient = transcribe.NewWhisperClient(cfg.OpenAIKey)
	default:
		sttClient = transcribe.NewAssemblyAIClient(cfg.AssemblyAIKey)
	}

	imageClient := synthesis.NewTogetherClient(cfg.TogetherKey, cfg.ImageModel)

	// =========================================================================
	// PIPELINE
	// =========================================================================

	cache := latest.NewStore()
	processingService := processing.NewService(sttClient, imageClient, settingsService, cache, zl)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	processHandler := delivery.NewProcessHandler(processingService, settingsService, zl)
	latestHandler := delivery.NewLatestImageHandler(cache)
	settingsHandler := delivery.NewSettingsHandler(settingsService, zl)

	delivery.RegisterRoutes(r, processHandler, latestHandler, settingsHandler)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("pong"))
	})

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr,
		Service: "voicecanvas",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
