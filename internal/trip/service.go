package trip

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/trip-weather/internal/store"
	"github.com/i474232898/trip-weather/internal/validation"
	"github.com/i474232898/trip-weather/internal/weather"
)

const (
	UserFile = "users.json"
	TripFile = "trips.json"
)

// ErrTripNotFound is returned when no trip has the requested id.
var ErrTripNotFound = errors.New("trip not found")

// ForecastSource produces daily summaries for a destination.
type ForecastSource interface {
	GetForecast(ctx context.Context, dest weather.Destination) (weather.Forecast, error)
}

// SubmitRequest is what a form, CLI or HTTP handler collects from the user.
type SubmitRequest struct {
	City      string `json:"city"`
	State     string `json:"state"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	User      string `json:"user"`
}

// Result is a successful submission.
type Result struct {
	Destination weather.Destination `json:"destination"`
	Forecast    weather.Forecast    `json:"forecast"`
	Trip        *TripRecord         `json:"trip,omitempty"`
}

// Text renders the forecast as shown to the user.
func (r *Result) Text() string {
	return r.Forecast.Render(r.Destination)
}

// Options configures a Service.
type Options struct {
	DataDir      string
	HorizonDays  int
	RequireState bool
	Location     *time.Location
}

// Service validates submissions, fetches their forecast and records the trip.
type Service struct {
	forecasts ForecastSource
	validator *validation.Validator
	trips     *store.JSONStore[TripRecord]
	users     *store.JSONStore[UserRecord]
	loc       *time.Location
	now       func() time.Time
}

func NewService(forecasts ForecastSource, opts Options) *Service {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		forecasts: forecasts,
		validator: validation.New(opts.HorizonDays, opts.RequireState),
		trips:     store.NewJSONStore[TripRecord](filepath.Join(opts.DataDir, TripFile)),
		users:     store.NewJSONStore[UserRecord](filepath.Join(opts.DataDir, UserFile)),
		loc:       loc,
		now:       time.Now,
	}
}

// Submit is the single entry point for a trip submission. It returns a
// *validation.Error for bad input and a *weather.FetchError when the forecast
// could not be fetched. Persistence problems are logged and do not fail the call.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*Result, error) {
	tripReq := validation.TripRequest{
		City:      req.City,
		State:     req.State,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}.Normalize()

	today := s.now().In(s.loc)
	if err := s.validator.ValidateTrip(tripReq, today).Err(); err != nil {
		log.Printf("INFO: rejected trip submission for %q: %v", tripReq.City, err)
		return nil, err
	}

	dest := weather.Destination{City: tripReq.City, State: tripReq.State}
	forecast, err := s.forecasts.GetForecast(ctx, dest)
	if err != nil {
		return nil, err
	}

	record := &TripRecord{
		ID:          uuid.NewString(),
		Destination: dest.String(),
		City:        dest.City,
		State:       dest.State,
		StartDate:   canonicalDate(tripReq.StartDate, s.loc),
		EndDate:     canonicalDate(tripReq.EndDate, s.loc),
		CreatedAt:   s.now().UTC(),
	}
	record.AttachForecast(forecast)

	if err := s.saveTrip(*record); err != nil {
		log.Printf("WARN: could not save trip %s: %v", record.ID, err)
		return &Result{Destination: dest, Forecast: record.Forecast, Trip: record}, nil
	}

	// The user only ever points at trips that are on disk.
	if name := strings.TrimSpace(req.User); name != "" {
		userID, err := s.addTripToUser(name, record.ID)
		if err != nil {
			log.Printf("WARN: could not save user %q: %v", name, err)
		} else {
			record.UserID = userID
			if err := s.saveTrip(*record); err != nil {
				log.Printf("WARN: could not link trip %s to user %s: %v", record.ID, userID, err)
			}
		}
	}

	log.Printf("INFO: trip %s to %s saved with %d forecast days", record.ID, record.Destination, len(forecast))

	return &Result{Destination: dest, Forecast: record.Forecast, Trip: record}, nil
}

// Forecast validates a destination and returns its forecast without recording a trip.
func (s *Service) Forecast(ctx context.Context, city, state string) (*Result, error) {
	tripReq := validation.TripRequest{City: city, State: state}.Normalize()
	if err := s.validator.ValidateTrip(tripReq, s.now().In(s.loc)).Err(); err != nil {
		return nil, err
	}

	dest := weather.Destination{City: tripReq.City, State: tripReq.State}
	forecast, err := s.forecasts.GetForecast(ctx, dest)
	if err != nil {
		return nil, err
	}
	if forecast == nil {
		forecast = weather.Forecast{}
	}
	return &Result{Destination: dest, Forecast: forecast}, nil
}

// Trips returns all recorded trips, oldest first.
func (s *Service) Trips() []TripRecord {
	data := s.trips.Load()
	out := make([]TripRecord, 0, len(data))
	for _, t := range data {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Trip returns a single trip by id.
func (s *Service) Trip(id string) (TripRecord, error) {
	t, ok := s.trips.Get(id)
	if !ok {
		return TripRecord{}, fmt.Errorf("%w: %s", ErrTripNotFound, id)
	}
	return t, nil
}

// User returns the user with the given name, if any.
func (s *Service) User(name string) (UserRecord, bool) {
	for _, u := range s.users.Load() {
		if sameName(u.Name, name) {
			return u, true
		}
	}
	return UserRecord{}, false
}

func (s *Service) saveTrip(record TripRecord) error {
	return s.trips.Update(func(data map[string]TripRecord) error {
		data[record.ID] = record
		return nil
	})
}

func (s *Service) addTripToUser(name, tripID string) (string, error) {
	var userID string
	err := s.users.Update(func(data map[string]UserRecord) error {
		for id, u := range data {
			if sameName(u.Name, name) {
				u.AddTrip(tripID)
				data[id] = u
				userID = id
				return nil
			}
		}

		u := UserRecord{ID: uuid.NewString(), Name: name}
		u.AddTrip(tripID)
		data[u.ID] = u
		userID = u.ID
		return nil
	})
	return userID, err
}

func canonicalDate(text string, loc *time.Location) string {
	if text == "" {
		return ""
	}
	d, ok := validation.ParseDate(text, loc)
	if !ok {
		return text
	}
	return d.Format("2006-01-02")
}

// Message converts any submission error into the single line shown to the user.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		return verr.Message()
	}
	var ferr *weather.FetchError
	if errors.As(err, &ferr) {
		return ferr.Message()
	}
	if errors.Is(err, ErrTripNotFound) {
		return "Trip not found."
	}
	return "Something went wrong. Try again!"
}
