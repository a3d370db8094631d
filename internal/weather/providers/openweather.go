package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/i474232898/trip-weather/internal/weather"
)

// readingsPerDay is the number of 3-hour slots OpenWeather returns per day.
const readingsPerDay = 8

// OpenWeatherConfig configures the forecast client.
type OpenWeatherConfig struct {
	APIKey  string
	BaseURL string
	// UseCount limits the response with cnt=days*8.
	UseCount bool
	Breaker  BreakerConfig
}

// OpenWeatherProvider implements weather.Fetcher for the OpenWeatherMap 5 day / 3 hour
// forecast endpoint.
type OpenWeatherProvider struct {
	name     string
	apiKey   string
	baseURL  string
	useCount bool
	client   *http.Client
	circuit  *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, cfg OpenWeatherConfig) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:     "openweathermap",
		apiKey:   cfg.APIKey,
		baseURL:  cfg.BaseURL,
		useCount: cfg.UseCount,
		client:   client,
		circuit:  newCircuitBreaker("openweather", cfg.Breaker),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// Fetch issues one GET for dest and returns the decoded payload.
func (p *OpenWeatherProvider) Fetch(ctx context.Context, dest weather.Destination, days int) (*weather.Payload, error) {
	payload, err := p.fetch(ctx, dest, days)
	if err != nil {
		log.Printf("ERROR: provider %s fetch failed for %s: %v", p.name, dest.Key(), err)
		return nil, err
	}
	return payload, nil
}

func (p *OpenWeatherProvider) fetch(ctx context.Context, dest weather.Destination, days int) (*weather.Payload, error) {
	if p.apiKey == "" {
		return nil, weather.NewFetchError(weather.FailureTransport, 0, fmt.Errorf("openweather api key is not configured"))
	}

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		values.Set("q", dest.Query())
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")
		if p.useCount && days > 0 {
			values.Set("cnt", strconv.Itoa(days*readingsPerDay))
		}

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload weather.Payload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, weather.NewFetchError(weather.FailureMalformedBody, resp.StatusCode, fmt.Errorf("failed to decode response: %w", err))
	}
	if payload.List == nil {
		return nil, weather.NewFetchError(weather.FailureMalformedBody, resp.StatusCode, errors.New("response has no list of readings"))
	}

	return &payload, nil
}
