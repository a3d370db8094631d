package validation

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// DefaultHorizonDays is how many days ahead OpenWeather can forecast.
const DefaultHorizonDays = 16

var validStates = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {}, "DE": {}, "FL": {}, "GA": {},
	"HI": {}, "ID": {}, "IL": {}, "IN": {}, "IA": {}, "KS": {}, "KY": {}, "LA": {}, "ME": {}, "MD": {},
	"MA": {}, "MI": {}, "MN": {}, "MS": {}, "MO": {}, "MT": {}, "NE": {}, "NV": {}, "NH": {}, "NJ": {},
	"NM": {}, "NY": {}, "NC": {}, "ND": {}, "OH": {}, "OK": {}, "OR": {}, "PA": {}, "RI": {}, "SC": {},
	"SD": {}, "TN": {}, "TX": {}, "UT": {}, "VT": {}, "VA": {}, "WA": {}, "WV": {}, "WI": {}, "WY": {},
}

// ValidateCity reports whether name is purely alphabetic and at least two letters long.
func ValidateCity(name string) bool {
	if utf8.RuneCountInString(name) < 2 {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// ValidateState reports whether code is one of the 50 US state abbreviations, ignoring case.
func ValidateState(code string) bool {
	_, ok := validStates[strings.ToUpper(code)]
	return ok
}

// ValidateDate checks the YYYY-MM-DD shape. Month and day are range checked only;
// "2024-02-30" is accepted.
func ValidateDate(text string) bool {
	_, _, _, ok := splitDate(text)
	return ok
}

// ParseDate turns a string accepted by ValidateDate into midnight of that day in loc.
// Out-of-month days roll over the way time.Date normalizes them.
func ParseDate(text string, loc *time.Location) (time.Time, bool) {
	y, m, d, ok := splitDate(text)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, loc), true
}

func splitDate(text string) (year, month, day int, ok bool) {
	parts := strings.Split(text, "-")
	if len(parts) != 3 {
		return 0, 0, 0, false
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, false
		}
		nums[i] = n
	}

	year, month, day = nums[0], nums[1], nums[2]
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

// ValidateTripDates checks that both dates fall inside [today, today+horizonDays].
// Past dates are reported before dates beyond the horizon.
func ValidateTripDates(start, end, today time.Time, horizonDays int) Result {
	today = startOfDay(today)
	start = startOfDay(start.In(today.Location()))
	end = startOfDay(end.In(today.Location()))
	horizon := today.AddDate(0, 0, horizonDays)

	switch {
	case start.Before(today):
		return invalid(ReasonDateInPast, "start_date")
	case end.Before(today):
		return invalid(ReasonDateInPast, "end_date")
	case start.After(horizon):
		return invalid(ReasonDateBeyondHorizon, "start_date")
	case end.After(horizon):
		return invalid(ReasonDateBeyondHorizon, "end_date")
	case end.Before(start):
		return invalid(ReasonEndBeforeStart, "end_date")
	}
	return Valid()
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
