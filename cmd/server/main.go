package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mbellotti/cardbox/internal/api"
	"github.com/mbellotti/cardbox/internal/config"
	"github.com/mbellotti/cardbox/internal/db"
	"github.com/mbellotti/cardbox/internal/logger"
	"github.com/mbellotti/cardbox/internal/repository/sqlite"
	"github.com/mbellotti/cardbox/internal/services"
	"github.com/mbellotti/cardbox/internal/suggest"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("cardbox starting")
	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	deckRepo := sqlite.NewDeckRepository(database.DB)
	cardRepo := sqlite.NewCardRepository(database.DB)
	logRepo := sqlite.NewReviewLogRepository(database.DB)

	srv := &api.Server{
		DeckService:    services.NewDeckService(deckRepo),
		CardService:    services.NewCardService(deckRepo, cardRepo, logRepo),
		BundleService:  services.NewBundleService(deckRepo, cardRepo),
		MaxImportBytes: int64(cfg.MaxImportBytes),
	}

	if cfg.GeminiAPIKey != "" {
		generator, err := suggest.NewGeminiGenerator(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Error("failed to initialize suggestion generator: %v", err)
			os.Exit(1)
		}
		srv.Generator = generator
		log.Info("card suggestions enabled: model=%s", cfg.GeminiModel)
	} else {
		log.Info("GEMINI_API_KEY not set, card suggestions disabled")
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, shutting down", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("cardbox stopped")
}
