package weather

import (
	"fmt"
	"strings"
	"time"
)

// Destination identifies where a trip goes. State may be empty for a city-only
// lookup.
type Destination struct {
	City  string `json:"city"`
	State string `json:"state,omitempty"`
}

// Query returns the provider location string, "{city},{state},US" or just the city.
func (d Destination) Query() string {
	if d.State == "" {
		return d.City
	}
	return fmt.Sprintf("%s,%s,US", d.City, d.State)
}

// Key returns a canonical string key for indexing this destination in stores.
func (d Destination) Key() string {
	return strings.ToLower(d.City) + ":" + strings.ToUpper(d.State)
}

func (d Destination) String() string {
	if d.State == "" {
		return d.City
	}
	return d.City + ", " + d.State
}

// Payload is the provider response, kept in the provider's own shape. List is nil
// when the response carried no "list" key.
type Payload struct {
	Count int       `json:"cnt"`
	List  []Reading `json:"list"`
	City  struct {
		Name     string `json:"name"`
		Country  string `json:"country"`
		Timezone int    `json:"timezone"`
	} `json:"city"`
}

// Reading is one 3-hour entry. Temperatures are Celsius; either may be missing.
type Reading struct {
	Dt   int64 `json:"dt"`
	Main struct {
		TempMax *float64 `json:"temp_max"`
		TempMin *float64 `json:"temp_min"`
	} `json:"main"`
}

// DailySummary is the high/low for one calendar date, in Fahrenheit.
type DailySummary struct {
	Date time.Time `json:"date"`
	High float64   `json:"highF"`
	Low  float64   `json:"lowF"`
}

func (d DailySummary) String() string {
	return fmt.Sprintf("%s (%s): High: %.1f°F, Low: %.1f°F",
		d.Date.Weekday(), d.Date.Format("2006-01-02"), d.High, d.Low)
}

// Forecast is a chronological list of daily summaries.
type Forecast []DailySummary

// Lines renders one line per day.
func (f Forecast) Lines() []string {
	lines := make([]string, 0, len(f))
	for _, d := range f {
		lines = append(lines, d.String())
	}
	return lines
}

// Render returns the forecast text shown to the user for dest.
func (f Forecast) Render(dest Destination) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Weather forecast for %s:\n", dest)
	for _, line := range f.Lines() {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
