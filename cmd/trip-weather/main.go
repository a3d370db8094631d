package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	httpapi "github.com/i474232898/trip-weather/internal/api/http"
	"github.com/i474232898/trip-weather/internal/config"
	"github.com/i474232898/trip-weather/internal/store"
	"github.com/i474232898/trip-weather/internal/trip"
	"github.com/i474232898/trip-weather/internal/ui"
	"github.com/i474232898/trip-weather/internal/weather"
	"github.com/i474232898/trip-weather/internal/weather/providers"
)

func main() {
	serve := flag.Bool("serve", false, "Start the HTTP API instead of the terminal form")
	city := flag.String("city", "", "Destination city; submits a single trip and prints the forecast")
	state := flag.String("state", "", "Two-letter US state code (e.g., FL)")
	start := flag.String("start", "", "Trip start date (YYYY-MM-DD)")
	end := flag.String("end", "", "Trip end date (YYYY-MM-DD)")
	user := flag.String("user", "", "Link saved trips to this user name")
	flag.Parse()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	service := newTripService(cfg)

	switch {
	case *serve:
		runServer(cfg, service)
	case *city != "":
		os.Exit(runOnce(service, trip.SubmitRequest{
			City:      *city,
			State:     *state,
			StartDate: *start,
			EndDate:   *end,
			User:      *user,
		}))
	default:
		runTerminal(cfg, service, *user)
	}
}

func newTripService(cfg *config.AppConfig) *trip.Service {
	// Shared HTTP client for the outbound forecast call.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider := providers.NewOpenWeatherProvider(httpClient, providers.OpenWeatherConfig{
		APIKey:   cfg.OpenWeatherAPIKey,
		BaseURL:  cfg.ForecastBaseURL,
		UseCount: cfg.ForecastUseCount,
		Breaker: providers.BreakerConfig{
			MaxRequests: cfg.BreakerMaxRequests,
			Timeout:     cfg.BreakerTimeout,
		},
	})

	// In-memory payload cache with configured freshness.
	memStore := store.NewMemoryStore(cfg.ForecastCacheTTL)
	forecasts := weather.NewService(memStore, provider, cfg.ForecastDays, cfg.Location)
	log.Printf("INFO: using %s for %d-day forecasts (%s)", provider.Name(), forecasts.Days(), cfg.Location)

	return trip.NewService(forecasts, trip.Options{
		DataDir:      cfg.DataDir,
		HorizonDays:  cfg.HorizonDays,
		RequireState: cfg.RequireState,
		Location:     cfg.Location,
	})
}

func runOnce(service *trip.Service, req trip.SubmitRequest) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := service.Submit(ctx, req)
	if err != nil {
		fmt.Fprintln(os.Stderr, trip.Message(err))
		return 1
	}
	fmt.Print(res.Text())
	return 0
}

func runTerminal(cfg *config.AppConfig, service *trip.Service, user string) {
	// The form owns the screen, so logs go to a file.
	if err := os.MkdirAll(cfg.DataDir, 0o755); err == nil {
		f, err := tea.LogToFile(filepath.Join(cfg.DataDir, "trip-weather.log"), "")
		if err == nil {
			defer f.Close()
		}
	}

	p := tea.NewProgram(ui.NewModel(service, user), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}

func runServer(cfg *config.AppConfig, service *trip.Service) {
	app := httpapi.NewApp(service, true)

	go func() {
		log.Printf("INFO: listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
