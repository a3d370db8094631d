package weather

import (
	"strings"
	"testing"
	"time"
)

func TestDestinationQuery(t *testing.T) {
	if got := (Destination{City: "Austin", State: "TX"}).Query(); got != "Austin,TX,US" {
		t.Errorf("Query() = %q, want Austin,TX,US", got)
	}
	if got := (Destination{City: "London"}).Query(); got != "London" {
		t.Errorf("Query() = %q, want London", got)
	}
}

func TestDestinationKeyIgnoresCase(t *testing.T) {
	a := Destination{City: "Austin", State: "tx"}
	b := Destination{City: "AUSTIN", State: "TX"}
	if a.Key() != b.Key() {
		t.Errorf("keys differ: %q vs %q", a.Key(), b.Key())
	}
}

func TestDailySummaryString(t *testing.T) {
	d := DailySummary{
		Date: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		High: 50.04,
		Low:  -3.96,
	}

	want := "Monday (2024-01-01): High: 50.0°F, Low: -4.0°F"
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestForecastRender(t *testing.T) {
	fc := Forecast{
		{Date: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), High: 41, Low: 30},
		{Date: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), High: 42, Low: 31},
	}

	text := fc.Render(Destination{City: "Denver", State: "CO"})
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	if len(lines) != 3 {
		t.Fatalf("expected header + 2 lines, got %d: %q", len(lines), text)
	}
	if lines[0] != "Weather forecast for Denver, CO:" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[2] != "Tuesday (2024-01-02): High: 42.0°F, Low: 31.0°F" {
		t.Errorf("line = %q", lines[2])
	}
}
