package validation

import "fmt"

// Reason classifies why a trip request was rejected.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonMissingField
	ReasonBadCityName
	ReasonBadStateCode
	ReasonBadDateFormat
	ReasonDateInPast
	ReasonDateBeyondHorizon
	ReasonEndBeforeStart
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "valid"
	case ReasonMissingField:
		return "missing_field"
	case ReasonBadCityName:
		return "bad_city_name"
	case ReasonBadStateCode:
		return "bad_state_code"
	case ReasonBadDateFormat:
		return "bad_date_format"
	case ReasonDateInPast:
		return "date_in_past"
	case ReasonDateBeyondHorizon:
		return "date_beyond_horizon"
	case ReasonEndBeforeStart:
		return "end_before_start"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Result is the outcome of a validation: valid, or invalid with a reason and the
// offending field.
type Result struct {
	Reason Reason
	Field  string
}

func Valid() Result { return Result{} }

func invalid(r Reason, field string) Result {
	return Result{Reason: r, Field: field}
}

func (r Result) Valid() bool { return r.Reason == ReasonNone }

// Err returns nil for a valid result and an *Error otherwise.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &Error{Reason: r.Reason, Field: r.Field}
}

// Error is returned by submissions that fail validation.
type Error struct {
	Reason Reason
	Field  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("validation failed: %s (%s)", e.Reason, e.Field)
}

// Message is the single line shown to the user.
func (e *Error) Message() string {
	switch e.Reason {
	case ReasonMissingField:
		if e.Field == "start_date" || e.Field == "end_date" {
			return "Both start and end dates are required when planning by date."
		}
		return "City and state are required!"
	case ReasonBadCityName:
		return "Invalid city name. Use letters only, at least 2 characters."
	case ReasonBadStateCode:
		return "Invalid state format. Use 2-letter uppercase state abbreviations (e.g., FL, CA)."
	case ReasonBadDateFormat:
		return "Invalid date format. Use YYYY-MM-DD."
	case ReasonDateInPast:
		return "Trip dates cannot be in the past."
	case ReasonDateBeyondHorizon:
		return "Trip dates are too far ahead for the forecast."
	case ReasonEndBeforeStart:
		return "End date must not be before start date."
	default:
		return "Invalid trip details."
	}
}
