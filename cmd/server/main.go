package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripwise-backend/internal/assistant"
	"tripwise-backend/internal/cache"
	"tripwise-backend/internal/config"
	"tripwise-backend/internal/database"
	"tripwise-backend/internal/handlers"
	"tripwise-backend/internal/llm"
	"tripwise-backend/internal/router"
	"tripwise-backend/internal/services"
	"tripwise-backend/internal/session"
)

func main() {
	log.Println("🚀 Starting Tripwise Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Lookup Cache (optional) ────
	var lookupCache *cache.Cache
	if cfg.RedisURL != "" {
		rdb, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer rdb.Close()
		lookupCache = cache.New(rdb, time.Duration(cfg.CacheTTLSecs)*time.Second)
		log.Println("✓ Redis connected (lookup cache enabled)")
	} else {
		log.Println("✓ Running without Redis (lookup cache disabled)")
	}

	// ──── Step 3: Initialize Model Provider ────
	var provider llm.Provider
	switch cfg.LLMProvider {
	case "gemini":
		client, err := llm.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		provider = client
		log.Printf("✓ Gemini client initialized (%s)", cfg.GeminiModel)
	default:
		provider = llm.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel, cfg.LLMNumPredict,
			time.Duration(cfg.LLMTimeoutSecs)*time.Second)
		log.Printf("✓ Ollama client initialized (%s at %s)", cfg.OllamaModel, cfg.OllamaURL)
	}
	defer provider.Close()

	// ──── Step 4: Initialize External Data Services ────
	geocodeService := services.NewGeocodeService(cfg.GeocodeURL, cfg.ReverseGeocodeURL, lookupCache)
	weatherService := services.NewWeatherService(cfg.WeatherURL, lookupCache)
	countryService := services.NewCountryService(cfg.CountryURL, geocodeService, lookupCache)
	placesService := services.NewPlacesService(cfg.OverpassURL, lookupCache)
	log.Println("✓ External data services initialized")

	// ──── Step 5: Start Session Manager ────
	sessions := session.NewManager(time.Duration(cfg.SessionTTLMins) * time.Minute)
	janitorStop := make(chan struct{})
	sessions.StartJanitor(janitorStop)
	log.Printf("✓ Session manager started (TTL %dm)", cfg.SessionTTLMins)

	// ──── Step 6: Assemble Assistant Pipeline ────
	assistantService := assistant.New(
		provider,
		sessions,
		geocodeService,
		weatherService,
		countryService,
		placesService,
		cfg.LLMConcurrent,
		time.Duration(cfg.LLMTimeoutSecs)*time.Second,
	)
	assistantHandler := handlers.NewAssistantHandler(assistantService)

	// ──── Step 7: Start HTTP Server ────
	r := router.New(assistantHandler, cfg.RateLimitPerMin, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		close(janitorStop)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Tripwise Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  Ask:     POST http://localhost:%s/assistant/ask", cfg.Port)
	log.Printf("  Metrics: http://localhost:%s/metrics", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
