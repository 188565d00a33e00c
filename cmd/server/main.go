package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/principled-summit/internal/advisor"
	"github.com/freeeve/principled-summit/internal/auth"
	"github.com/freeeve/principled-summit/internal/config"
	"github.com/freeeve/principled-summit/internal/handler"
	"github.com/freeeve/principled-summit/internal/logger"
	"github.com/freeeve/principled-summit/internal/middleware"
	"github.com/freeeve/principled-summit/internal/repository"
	"github.com/freeeve/principled-summit/internal/repository/memory"
	"github.com/freeeve/principled-summit/internal/repository/postgres"
	redisrepo "github.com/freeeve/principled-summit/internal/repository/redis"
	"github.com/freeeve/principled-summit/internal/service"
	"github.com/freeeve/principled-summit/pkg/negotiation"
)

func main() {
	logger.Init()
	cfg := config.Load()
	log.Info().
		Str("sessionStore", cfg.SessionStore).
		Bool("archiveEnabled", cfg.DatabaseURL != "").
		Bool("liveAdvisor", cfg.OpenAIAPIKey != "").
		Msg("Config loaded")

	// Session store: in-process by default, Redis when configured.
	var store repository.SessionStore
	if cfg.SessionStore == "redis" {
		redisClient, err := redisrepo.NewClient(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Redis connection failed")
		}
		defer redisClient.Close()
		store = redisClient
	} else {
		store = memory.NewSessionStore()
	}

	// Advisor: live OpenAI backend, or the deterministic mock without a key.
	adv := advisor.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)

	// Auth
	jwtMgr := auth.NewJWTManager(cfg.JWTSecret)
	var googleOAuth *auth.OAuthProvider
	if cfg.GoogleClientID != "" {
		googleOAuth = auth.NewGoogleOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	}

	// WebSocket hub
	wsHub := handler.NewHub()

	// Service
	batna := map[negotiation.Persona]float64{
		negotiation.PersonaTrump: cfg.BATNATrump,
		negotiation.PersonaPutin: cfg.BATNAPutin,
	}
	negotiationSvc := service.NewNegotiationService(store, adv, wsHub, cfg.BaselineScore, batna)

	// Agreement archive is opt-in: concluded agreements persist only when
	// Postgres is configured.
	if cfg.DatabaseURL != "" {
		db, err := postgres.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Database connection failed")
		}
		defer db.Close()
		negotiationSvc.SetArchive(postgres.NewAgreementRepo(db))
	}

	// Handlers
	authHandler := handler.NewAuthHandler(googleOAuth, jwtMgr, cfg.DevMode)
	sessionHandler := handler.NewSessionHandler(negotiationSvc)
	agreementHandler := handler.NewAgreementHandler(negotiationSvc)
	metadataHandler := handler.NewMetadataHandler(cfg.BaselineScore, batna)
	wsHandler := handler.NewWSHandler(wsHub, jwtMgr)

	// Router
	mux := http.NewServeMux()
	authMw := auth.Middleware(jwtMgr)

	// Health
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth (public)
	mux.HandleFunc("GET /auth/google/login", authHandler.GoogleLogin)
	mux.HandleFunc("GET /auth/google/callback", authHandler.GoogleCallback)
	mux.HandleFunc("POST /auth/refresh", authHandler.RefreshToken)
	mux.HandleFunc("GET /auth/dev", authHandler.DevLogin)

	// Protected API routes
	api := http.NewServeMux()
	api.HandleFunc("GET /metadata", metadataHandler.Metadata)
	api.HandleFunc("POST /session", sessionHandler.CreateSession)
	api.HandleFunc("GET /session", sessionHandler.GetSession)
	api.HandleFunc("DELETE /session", sessionHandler.DeleteSession)
	api.HandleFunc("POST /session/message", sessionHandler.PostMessage)
	api.HandleFunc("POST /session/agreement/request", agreementHandler.RequestAgreement)
	api.HandleFunc("POST /session/agreement/conclude", agreementHandler.ConcludeAgreement)
	api.HandleFunc("GET /agreements", agreementHandler.ListAgreements)

	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", authMw(api)))

	// WebSocket (auth via query param, not middleware)
	mux.HandleFunc("GET /api/v1/ws", wsHandler.ServeWS)

	// Apply global middleware
	root := middleware.Chain(mux, middleware.Logger, middleware.CORS(cfg.CORSAllowOrigin), middleware.JSON)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown error")
	}
	log.Info().Msg("Server stopped")
}
