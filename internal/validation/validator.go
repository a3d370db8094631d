package validation

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// TripRequest is the raw user input for a trip submission.
type TripRequest struct {
	City      string `validate:"required,city"`
	State     string `validate:"omitempty,usstate"`
	StartDate string `validate:"omitempty,isodate"`
	EndDate   string `validate:"omitempty,isodate"`
}

// Normalize trims whitespace and upper-cases the state code.
func (r TripRequest) Normalize() TripRequest {
	return TripRequest{
		City:      strings.TrimSpace(r.City),
		State:     strings.ToUpper(strings.TrimSpace(r.State)),
		StartDate: strings.TrimSpace(r.StartDate),
		EndDate:   strings.TrimSpace(r.EndDate),
	}
}

// HasDates reports whether the request plans by date.
func (r TripRequest) HasDates() bool {
	return r.StartDate != "" || r.EndDate != ""
}

// Validator checks trip requests in a fixed order: missing fields, then field
// formats, then the date range.
type Validator struct {
	validate     *validator.Validate
	horizonDays  int
	requireState bool
}

// New creates a Validator. A horizonDays <= 0 falls back to DefaultHorizonDays.
func New(horizonDays int, requireState bool) *Validator {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	return &Validator{
		validate:     newValidate(),
		horizonDays:  horizonDays,
		requireState: requireState,
	}
}

func newValidate() *validator.Validate {
	v := validator.New()
	mustRegister(v, "city", func(fl validator.FieldLevel) bool {
		return ValidateCity(fl.Field().String())
	})
	mustRegister(v, "usstate", func(fl validator.FieldLevel) bool {
		return ValidateState(fl.Field().String())
	})
	mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
		return ValidateDate(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// ValidateTrip validates a normalized request against today's date.
func (v *Validator) ValidateTrip(req TripRequest, today time.Time) Result {
	if r := v.checkMissing(req); !r.Valid() {
		return r
	}

	if err := v.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return fieldResult(fieldErrs[0])
		}
		return invalid(ReasonMissingField, "request")
	}

	if !req.HasDates() {
		return Valid()
	}

	start, _ := ParseDate(req.StartDate, today.Location())
	end, _ := ParseDate(req.EndDate, today.Location())
	return ValidateTripDates(start, end, today, v.horizonDays)
}

func (v *Validator) checkMissing(req TripRequest) Result {
	switch {
	case req.City == "":
		return invalid(ReasonMissingField, "city")
	case v.requireState && req.State == "":
		return invalid(ReasonMissingField, "state")
	case req.StartDate == "" && req.EndDate != "":
		return invalid(ReasonMissingField, "start_date")
	case req.StartDate != "" && req.EndDate == "":
		return invalid(ReasonMissingField, "end_date")
	}
	return Valid()
}

func fieldResult(fe validator.FieldError) Result {
	field := fieldName(fe.Field())
	switch fe.Tag() {
	case "required":
		return invalid(ReasonMissingField, field)
	case "city":
		return invalid(ReasonBadCityName, field)
	case "usstate":
		return invalid(ReasonBadStateCode, field)
	case "isodate":
		return invalid(ReasonBadDateFormat, field)
	default:
		return invalid(ReasonMissingField, field)
	}
}

func fieldName(structField string) string {
	switch structField {
	case "City":
		return "city"
	case "State":
		return "state"
	case "StartDate":
		return "start_date"
	case "EndDate":
		return "end_date"
	default:
		return strings.ToLower(structField)
	}
}
