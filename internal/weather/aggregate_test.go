package weather

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func f(v float64) *float64 { return &v }

func reading(ts time.Time, max, min *float64) Reading {
	var r Reading
	r.Dt = ts.Unix()
	r.Main.TempMax = max
	r.Main.TempMin = min
	return r
}

func TestAggregateEmpty(t *testing.T) {
	if got := Aggregate(&Payload{List: []Reading{}}, 5, time.UTC); len(got) != 0 {
		t.Fatalf("expected empty forecast, got %v", got)
	}
	if got := Aggregate(nil, 5, time.UTC); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil forecast for nil payload, got %#v", got)
	}
}

func TestAggregateUnitConversion(t *testing.T) {
	day := time.Date(2024, time.January, 2, 12, 0, 0, 0, time.UTC)
	p := &Payload{List: []Reading{reading(day, f(0), f(-40))}}

	got := Aggregate(p, 5, time.UTC)
	if len(got) != 1 {
		t.Fatalf("expected 1 day, got %d", len(got))
	}
	if got[0].High != 32.0 {
		t.Errorf("High = %v, want 32.0", got[0].High)
	}
	if got[0].Low != -40.0 {
		t.Errorf("Low = %v, want -40.0", got[0].Low)
	}
}

func TestAggregateFoldsExtremesPerDay(t *testing.T) {
	base := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	p := &Payload{List: []Reading{
		reading(base.Add(3*time.Hour), f(10), f(5)),
		reading(base.Add(6*time.Hour), f(15), f(7)),
		reading(base.Add(9*time.Hour), nil, f(2)),   // max missing: keep running max
		reading(base.Add(12*time.Hour), f(12), nil), // min missing: keep running min
	}}

	got := Aggregate(p, 5, time.UTC)
	if len(got) != 1 {
		t.Fatalf("expected 1 day, got %d", len(got))
	}
	if got[0].High != CelsiusToFahrenheit(15) {
		t.Errorf("High = %v, want %v", got[0].High, CelsiusToFahrenheit(15))
	}
	if got[0].Low != CelsiusToFahrenheit(2) {
		t.Errorf("Low = %v, want %v", got[0].Low, CelsiusToFahrenheit(2))
	}
	if !got[0].Date.Equal(base) {
		t.Errorf("Date = %v, want %v", got[0].Date, base)
	}
}

func TestAggregateSortsAndTruncates(t *testing.T) {
	base := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)

	// Ten distinct days, supplied in reverse order.
	var list []Reading
	for i := 9; i >= 0; i-- {
		list = append(list, reading(base.AddDate(0, 0, i), f(float64(i)), f(float64(-i))))
	}

	got := Aggregate(&Payload{List: list}, 5, time.UTC)
	if len(got) != 5 {
		t.Fatalf("expected 5 days, got %d", len(got))
	}
	for i, d := range got {
		want := time.Date(2024, time.May, 1+i, 0, 0, 0, 0, time.UTC)
		if !d.Date.Equal(want) {
			t.Errorf("day %d = %v, want %v", i, d.Date, want)
		}
	}
}

func TestAggregateFewerDaysThanRequested(t *testing.T) {
	base := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	p := &Payload{List: []Reading{
		reading(base, f(1), f(0)),
		reading(base.AddDate(0, 0, 1), f(2), f(1)),
	}}

	if got := Aggregate(p, 5, time.UTC); len(got) != 2 {
		t.Fatalf("expected 2 days, got %d", len(got))
	}
}

func TestAggregateDropsDaysWithoutUsableTemperatures(t *testing.T) {
	base := time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC)
	p := &Payload{List: []Reading{
		reading(base, nil, nil),
		reading(base.AddDate(0, 0, 1), f(2), nil),
		reading(base.AddDate(0, 0, 2), f(3), f(1)),
	}}

	got := Aggregate(p, 5, time.UTC)
	if len(got) != 1 {
		t.Fatalf("expected 1 usable day, got %d", len(got))
	}
	if got[0].Date.Day() != 3 {
		t.Errorf("expected May 3, got %v", got[0].Date)
	}
}

func TestAggregateUsesLocationDayBoundary(t *testing.T) {
	// 2024-01-02 03:00 UTC is still January 1st in New York.
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	ts := time.Date(2024, time.January, 2, 3, 0, 0, 0, time.UTC)
	p := &Payload{List: []Reading{reading(ts, f(1), f(0))}}

	utc := Aggregate(p, 5, time.UTC)
	local := Aggregate(p, 5, ny)

	if utc[0].Date.Day() != 2 {
		t.Errorf("UTC day = %d, want 2", utc[0].Date.Day())
	}
	if local[0].Date.Day() != 1 {
		t.Errorf("New York day = %d, want 1", local[0].Date.Day())
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	body := `{"cnt":4,"list":[
		{"dt":1704164400,"main":{"temp_max":4.5,"temp_min":1.2}},
		{"dt":1704175200,"main":{"temp_max":6.1,"temp_min":2.0}},
		{"dt":1704250800,"main":{"temp_max":-1.0,"temp_min":-6.3}},
		{"dt":1704261600,"main":{"temp_min":-7.5}}
	]}`
	var p Payload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	first := Aggregate(&p, 5, time.UTC)
	second := Aggregate(&p, 5, time.UTC)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aggregate not idempotent:\n%v\n%v", first, second)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 days, got %d", len(first))
	}
	if first[1].Low != CelsiusToFahrenheit(-7.5) {
		t.Errorf("Low = %v, want %v", first[1].Low, CelsiusToFahrenheit(-7.5))
	}
}
