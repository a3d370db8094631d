package trip

import (
	"strings"
	"time"

	"github.com/i474232898/trip-weather/internal/weather"
)

// TripRecord is a submitted trip. Dates are YYYY-MM-DD and empty for a trip
// planned without dates.
type TripRecord struct {
	ID          string           `json:"id"`
	UserID      string           `json:"userId,omitempty"`
	Destination string           `json:"destination"`
	City        string           `json:"city"`
	State       string           `json:"state,omitempty"`
	StartDate   string           `json:"startDate,omitempty"`
	EndDate     string           `json:"endDate,omitempty"`
	Forecast    weather.Forecast `json:"forecast"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// AttachForecast sets the forecast once; later calls are ignored.
func (t *TripRecord) AttachForecast(f weather.Forecast) {
	if t.Forecast != nil {
		return
	}
	if f == nil {
		f = weather.Forecast{}
	}
	t.Forecast = f
}

// UserRecord groups the trips submitted under one name.
type UserRecord struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	TripIDs []string `json:"trips"`
}

func (u *UserRecord) AddTrip(id string) {
	for _, existing := range u.TripIDs {
		if existing == id {
			return
		}
	}
	u.TripIDs = append(u.TripIDs, id)
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
