package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/trip-weather/internal/weather"
)

// BreakerConfig controls the circuit breaker around provider calls.
type BreakerConfig struct {
	MaxRequests uint32
	Interval    time.Duration
	Timeout     time.Duration
}

var (
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

func newCircuitBreaker(name string, cfg BreakerConfig) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
	})
}

// doRequest executes a single HTTP request through the circuit breaker. It never
// retries. Failures come back as *weather.FetchError; on success the caller owns
// the response body.
func doRequest(
	ctx context.Context,
	client *http.Client,
	cb *gobreaker.CircuitBreaker,
	buildRequest func(ctx context.Context) (*http.Request, error),
) (*http.Response, error) {
	if client == nil {
		return nil, weather.NewFetchError(weather.FailureTransport, 0, errNoHTTPClient)
	}

	req, err := buildRequest(ctx)
	if err != nil {
		return nil, weather.NewFetchError(weather.FailureTransport, 0, err)
	}

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, weather.NewFetchError(weather.FailureTransport, 0, execErr)
		}

		// Only 5xx responses count against the breaker.
		if resp.StatusCode >= 500 {
			return nil, badStatus(resp)
		}

		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, weather.NewFetchError(weather.FailureTransport, 0, fmt.Errorf("%w: %v", errCircuitOpen, err))
		}
		var fe *weather.FetchError
		if errors.As(err, &fe) {
			return nil, fe
		}
		return nil, weather.NewFetchError(weather.FailureTransport, 0, err)
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, weather.NewFetchError(weather.FailureTransport, 0, fmt.Errorf("unexpected result type from circuit breaker"))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, badStatus(resp)
	}
	return resp, nil
}

// badStatus drains a short snippet of a non-2xx body, closes it and returns a
// BadStatus failure.
func badStatus(resp *http.Response) *weather.FetchError {
	defer resp.Body.Close()
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return weather.NewFetchError(weather.FailureBadStatus, resp.StatusCode,
		fmt.Errorf("unexpected status code: %s", strings.TrimSpace(string(snippet))))
}
