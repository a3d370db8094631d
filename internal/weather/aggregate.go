package weather

import (
	"sort"
	"time"
)

// CelsiusToFahrenheit converts a temperature from Celsius to Fahrenheit.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

type dayAccumulator struct {
	date           time.Time
	maxC, minC     float64
	hasMax, hasMin bool
}

// Aggregate folds the payload's 3-hour readings into daily highs and lows in
// Fahrenheit, ordered by date and capped at days entries. Readings are bucketed by
// calendar day in loc. A missing temperature field is skipped for that field only;
// days that never saw both a max and a min are dropped.
func Aggregate(payload *Payload, days int, loc *time.Location) Forecast {
	if payload == nil || len(payload.List) == 0 || days <= 0 {
		return Forecast{}
	}
	if loc == nil {
		loc = time.Local
	}

	byDay := make(map[string]*dayAccumulator)
	order := make([]*dayAccumulator, 0)

	for _, r := range payload.List {
		ts := time.Unix(r.Dt, 0).In(loc)
		key := ts.Format("2006-01-02")

		acc, ok := byDay[key]
		if !ok {
			acc = &dayAccumulator{
				date: time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, loc),
			}
			byDay[key] = acc
			order = append(order, acc)
		}

		if v := r.Main.TempMax; v != nil && (!acc.hasMax || *v > acc.maxC) {
			acc.maxC = *v
			acc.hasMax = true
		}
		if v := r.Main.TempMin; v != nil && (!acc.hasMin || *v < acc.minC) {
			acc.minC = *v
			acc.hasMin = true
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].date.Before(order[j].date)
	})

	forecast := make(Forecast, 0, days)
	for _, acc := range order {
		if len(forecast) >= days {
			break
		}
		if !acc.hasMax || !acc.hasMin {
			continue
		}
		forecast = append(forecast, DailySummary{
			Date: acc.date,
			High: CelsiusToFahrenheit(acc.maxC),
			Low:  CelsiusToFahrenheit(acc.minC),
		})
	}

	return forecast
}
