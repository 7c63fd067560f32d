// ABOUTME: Main entry point for the Affiliate Tracker API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"affiliate-tracker-api/api"
	"affiliate-tracker-api/api/handlers"
	"affiliate-tracker-api/core/aggregate"
	"affiliate-tracker-api/core/chat"
	"affiliate-tracker-api/core/domain"
	"affiliate-tracker-api/core/interfaces"
	"affiliate-tracker-api/core/jobs"
	"affiliate-tracker-api/core/report"
	"affiliate-tracker-api/core/scoring"
	"affiliate-tracker-api/core/sources"
	"affiliate-tracker-api/core/subscribers"
	"affiliate-tracker-api/infrastructure/cache/memory"
	"affiliate-tracker-api/infrastructure/cache/redis"
	stdhttp "affiliate-tracker-api/infrastructure/http/standard"
	jsonlogger "affiliate-tracker-api/infrastructure/logger/logrus"
	stdlogger "affiliate-tracker-api/infrastructure/logger/standard"
	"affiliate-tracker-api/pkg/config"
	"affiliate-tracker-api/pkg/featureflags"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Create logger
	var logger interfaces.Logger
	if cfg.Server.LogFormat == "json" {
		logger = jsonlogger.NewLogrusLogger()
	} else {
		logger = stdlogger.NewStandardLogger()
	}
	logger.Info("Starting Affiliate Tracker API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"lookback":   cfg.Search.LookbackDays,
	})

	// Create cache
	var cache interfaces.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memory.NewMemoryCache()
		} else {
			cache = redisCache
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
		}
	default:
		cache = memory.NewMemoryCache()
		logger.Info("Using memory cache", nil)
	}

	// Create HTTP client
	httpClient := stdhttp.NewStandardHTTPClient(30 * time.Second)

	// Create dependencies container
	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	roster := domain.DefaultRoster()
	adapterTimeout := time.Duration(cfg.Search.AdapterTimeout) * time.Second
	flags := featureflags.NewEnvManager("FEATURE_")
	flagCtx := context.Background()

	// Each upstream source gets its own request budget so a burst
	// against one does not starve the other.
	newsLimiter := rate.NewLimiter(rate.Every(time.Second), 5)
	scholarLimiter := rate.NewLimiter(rate.Every(2*time.Second), 1)

	adapters := []sources.Adapter{
		sources.NewNewsAdapter(deps, newsLimiter),
	}
	if flags.IsEnabledWithDefault(flagCtx, featureflags.ScholarSource, true) {
		adapters = append(adapters, sources.NewScholarAdapter(deps, scholarLimiter, adapterTimeout))
	} else {
		logger.Info("Scholar source disabled by feature flag", nil)
	}

	var enricher *sources.Enricher
	if flags.IsEnabledWithDefault(flagCtx, featureflags.ContentEnrichment, true) {
		enricher = sources.NewEnricher(deps)
	} else {
		logger.Info("Content enrichment disabled by feature flag", nil)
	}

	// Create pipeline services
	store := jobs.NewStore()
	orchestrator := jobs.NewOrchestrator(jobs.Config{
		Store:             store,
		Roster:            roster,
		Adapters:          adapters,
		Enricher:          enricher,
		Aggregator:        aggregate.NewService(logger),
		Scorer:            scoring.NewService(cfg.Scoring),
		Reports:           report.NewService(cfg.Search.OutputDir, logger),
		Logger:            logger,
		LookbackDays:      cfg.Search.LookbackDays,
		AdapterTimeout:    adapterTimeout,
		JobTimeout:        time.Duration(cfg.Search.JobTimeout) * time.Second,
		MaxConcurrentJobs: cfg.Search.MaxConcurrentJobs,
	})

	subscriberStore := subscribers.NewStore()
	responder := chat.NewResponder(roster)

	// Create API with middleware
	humaAPI, router := api.NewAPIWithMiddleware(api.APIConfig{
		Logger:     logger,
		RateLimit:  cfg.Server.RateLimit,
		RateWindow: time.Minute,
	})

	// Create and register handlers
	searchHandler := handlers.NewSearchHandler(orchestrator, store)
	searchHandler.RegisterRoutes(humaAPI)

	affiliateHandler := handlers.NewAffiliateHandler(roster)
	affiliateHandler.RegisterRoutes(humaAPI)

	subscribeHandler := handlers.NewSubscribeHandler(subscriberStore)
	subscribeHandler.RegisterRoutes(humaAPI)

	if flags.IsEnabledWithDefault(flagCtx, featureflags.ChatAssistant, true) {
		chatHandler := handlers.NewChatHandler(responder)
		chatHandler.RegisterRoutes(humaAPI)
	}

	statsHandler := handlers.NewStatsHandler(roster, store, subscriberStore)
	statsHandler.RegisterRoutes(humaAPI)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped", nil)
}
