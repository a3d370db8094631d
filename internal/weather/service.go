package weather

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Service fetches forecasts for a destination and aggregates them into daily summaries.
type Service struct {
	store   Store
	fetcher Fetcher
	days    int
	loc     *time.Location
}

// NewService creates a new Service. store may be nil to disable caching.
func NewService(store Store, fetcher Fetcher, days int, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		store:   store,
		fetcher: fetcher,
		days:    days,
		loc:     loc,
	}
}

// Days returns how many daily summaries GetForecast produces at most.
func (s *Service) Days() int {
	return s.days
}

// GetForecast returns up to Days() daily summaries for dest. A cached payload is
// reused while fresh; otherwise exactly one fetch is made. Fetch failures are
// returned as *FetchError.
func (s *Service) GetForecast(ctx context.Context, dest Destination) (Forecast, error) {
	if s.fetcher == nil {
		return nil, fmt.Errorf("no forecast fetcher configured")
	}

	payload, err := s.cached(dest)
	if err != nil {
		log.Printf("DEBUG: GetForecast fetching %s for %d days", dest.Key(), s.days)

		payload, err = s.fetcher.Fetch(ctx, dest, s.days)
		if err != nil {
			log.Printf("ERROR: forecast fetch failed for %s: %v", dest.Key(), err)
			return nil, err
		}
		if s.store != nil {
			s.store.SavePayload(dest, payload)
		}
	}

	forecast := Aggregate(payload, s.days, s.loc)
	if len(forecast) == 0 {
		log.Printf("INFO: forecast for %s has no usable days", dest.Key())
	}
	return forecast, nil
}

func (s *Service) cached(dest Destination) (*Payload, error) {
	if s.store == nil {
		return nil, fmt.Errorf("cache disabled")
	}
	return s.store.GetLatest(dest)
}
