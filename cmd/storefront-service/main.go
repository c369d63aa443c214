package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tokosena/tokosena/server/internal/api"
	"github.com/tokosena/tokosena/server/internal/assistant"
	"github.com/tokosena/tokosena/server/internal/config"
	"github.com/tokosena/tokosena/server/internal/imagehost"
	"github.com/tokosena/tokosena/server/internal/platform/factory"
	"github.com/tokosena/tokosena/server/internal/platform/logger"
	"github.com/tokosena/tokosena/server/internal/search"
	"github.com/tokosena/tokosena/server/internal/services"
	"github.com/tokosena/tokosena/server/internal/store"
)

func main() {
	dbDriver := flag.String("db-driver", "", "Override STOREFRONT_DB_DRIVER (postgres, sqlite)")
	flag.Parse()

	log := logger.New("storefront-service")

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *dbDriver != "" {
		cfg.DBDriver = *dbDriver
		if err := cfg.ResolveDefaults(); err != nil {
			log.Fatal().Err(err).Msg("Invalid db-driver override")
		}
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Bool("assistant_enabled", cfg.AssistantEnabled).
		Msg("Storefront service starting")

	ctx, stopMonitors := context.WithCancel(context.Background())
	defer stopMonitors()

	st, err := factory.NewStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Store unavailable")
	}

	// -------- Health monitor ---------------
	var checker *store.HealthChecker
	if pinger, ok := st.(store.HealthPinger); ok {
		checker = store.NewHealthChecker(pinger, log, 2*time.Second)
		go checker.Start(ctx, 30*time.Second)
	}

	// -------- Services ---------------------
	searchSvc := search.NewService(st, log, search.Options{
		CacheTTL:        cfg.SearchCacheTTL,
		SuggestionLimit: cfg.SuggestionLimit,
		ScoreThreshold:  cfg.FuzzyScoreThresh,
		MinMatchChars:   cfg.FuzzyMinMatchChars,
	})
	catalogSvc := services.NewCatalogService(st, searchSvc)

	var uploader api.Uploader
	if cfg.ImageHostURL != "" {
		uploader = imagehost.New(cfg.ImageHostURL, cfg.ImageHostKey)
	}

	handlers := api.Handlers{
		Search:   api.NewSearchHandler(searchSvc, log),
		Catalog:  api.NewCatalogHandler(catalogSvc, uploader, log),
		Reviews:  api.NewReviewHandler(services.NewReviewService(st)),
		Wishlist: api.NewWishlistHandler(services.NewWishlistService(st)),
		Health:   api.NewHealthHandler(checker),
	}

	if cfg.AssistantEnabled && cfg.GeminiAPIKey != "" {
		gen, err := assistant.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("Gemini client init failed")
		}
		ctxb := assistant.NewContextBuilder(st, log, cfg.ContextCacheTTL, cfg.CurrencyLabel)
		chatSvc := assistant.NewService(gen, ctxb, log, cfg.HistoryWindow)
		handlers.Assistant = api.NewAssistantHandler(chatSvc, log)
	} else {
		log.Warn().Msg("Assistant disabled: chat endpoints not registered")
	}

	// -------- Router & Server --------------
	server := &http.Server{
		Addr:         cfg.GetHTTPAddr(),
		Handler:      api.NewRouter(handlers),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")
	stopMonitors()
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}
