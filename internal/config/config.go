package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Redis (optional, external lookup cache only)
	RedisURL string

	// LLM runtime
	LLMProvider    string // "ollama" or "gemini"
	OllamaURL      string
	OllamaModel    string
	LLMTimeoutSecs int
	LLMNumPredict  int
	LLMConcurrent  int
	GeminiAPIKey   string
	GeminiModel    string

	// External data APIs
	GeocodeURL        string
	ReverseGeocodeURL string
	WeatherURL        string
	CountryURL        string
	OverpassURL       string

	// Tunables
	CacheTTLSecs    int
	SessionTTLMins  int
	RateLimitPerMin int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:     getEnvOrDefault("PORT", "8080"),
		Env:      getEnvOrDefault("ENV", "development"),
		RedisURL: getEnvOrDefault("REDIS_URL", ""),

		LLMProvider:    getEnvOrDefault("LLM_PROVIDER", "ollama"),
		OllamaURL:      getEnvOrDefault("OLLAMA_URL", "http://localhost:11434/api/generate"),
		OllamaModel:    getEnvOrDefault("OLLAMA_MODEL", "gemma:2b"),
		LLMTimeoutSecs: getEnvAsIntOrDefault("LLM_TIMEOUT_SECONDS", 20),
		LLMNumPredict:  getEnvAsIntOrDefault("LLM_NUM_PREDICT", 200),
		LLMConcurrent:  getEnvAsIntOrDefault("LLM_CONCURRENT_REQUESTS", 5),
		GeminiModel:    getEnvOrDefault("GEMINI_MODEL", "gemini-3-flash-preview"),

		GeocodeURL:        getEnvOrDefault("GEOCODE_URL", "https://geocoding-api.open-meteo.com/v1/search"),
		ReverseGeocodeURL: getEnvOrDefault("REVERSE_GEOCODE_URL", "https://nominatim.openstreetmap.org/reverse"),
		WeatherURL:        getEnvOrDefault("WEATHER_URL", "https://api.open-meteo.com/v1/forecast"),
		CountryURL:        getEnvOrDefault("COUNTRY_URL", "https://restcountries.com/v3.1"),
		OverpassURL:       getEnvOrDefault("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),

		CacheTTLSecs:    getEnvAsIntOrDefault("CACHE_TTL_SECONDS", 1800),
		SessionTTLMins:  getEnvAsIntOrDefault("SESSION_TTL_MINUTES", 120),
		RateLimitPerMin: getEnvAsIntOrDefault("RATE_LIMIT_PER_MINUTE", 60),

		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	// Gemini needs a key; a local Ollama does not.
	if cfg.LLMProvider == "gemini" {
		cfg.GeminiAPIKey = mustGetEnv("GEMINI_API_KEY")
	}

	return cfg
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return val
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
