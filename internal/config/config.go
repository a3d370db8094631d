package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultForecastBaseURL = "https://api.openweathermap.org/data/2.5/forecast"

type AppConfig struct {
	OpenWeatherAPIKey string

	// ForecastBaseURL is the OpenWeather 5 day / 3 hour forecast endpoint.
	ForecastBaseURL string
	// ForecastUseCount sends cnt=days*8 to limit the number of 3-hour readings.
	ForecastUseCount bool

	// HTTPTimeout bounds the single outbound forecast call.
	HTTPTimeout time.Duration

	// ForecastDays is the number of daily summaries shown to the user.
	ForecastDays int
	// HorizonDays is how far ahead the provider can forecast.
	HorizonDays int
	// RequireState rejects trips without a state code.
	RequireState bool
	// Location decides the calendar day a reading belongs to.
	Location *time.Location

	// ForecastCacheTTL keeps fetched payloads per destination (0 = disabled).
	ForecastCacheTTL time.Duration

	// DataDir holds users.json and trips.json.
	DataDir string

	BreakerMaxRequests uint32
	BreakerTimeout     time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.ForecastBaseURL = getenvDefault("FORECAST_BASE_URL", defaultForecastBaseURL)
	cfg.ForecastUseCount = getenvBool("FORECAST_USE_COUNT", true)

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: must be positive")
	}
	cfg.HTTPTimeout = timeout

	cfg.ForecastDays = getenvInt("FORECAST_DAYS", 5)
	if cfg.ForecastDays <= 0 {
		return nil, fmt.Errorf("invalid FORECAST_DAYS: must be greater than zero")
	}
	cfg.HorizonDays = getenvInt("FORECAST_HORIZON_DAYS", 16)
	cfg.RequireState = getenvBool("REQUIRE_STATE", true)

	loc, err := loadLocation(getenvDefault("FORECAST_TZ", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid FORECAST_TZ: %w", err)
	}
	cfg.Location = loc

	ttl, err := time.ParseDuration(getenvDefault("FORECAST_CACHE_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid FORECAST_CACHE_TTL: %w", err)
	}
	cfg.ForecastCacheTTL = ttl

	cfg.DataDir = getenvDefault("DATA_DIR", "data")

	cfg.BreakerMaxRequests = uint32(getenvInt("BREAKER_MAX_REQUESTS", 1))
	breakerTimeout, err := time.ParseDuration(getenvDefault("BREAKER_TIMEOUT", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid BREAKER_TIMEOUT: %w", err)
	}
	cfg.BreakerTimeout = breakerTimeout

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func loadLocation(name string) (*time.Location, error) {
	switch strings.ToLower(name) {
	case "", "local":
		return time.Local, nil
	case "utc":
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
