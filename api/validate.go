package api

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/warp/roster-engine/roster"
)

// Package-level validator with the wire-format rules registered once.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// hhmm: zero-padded 24h clock time, e.g. "08:00".
	v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return roster.ValidTime(fl.Field().String())
	})

	// monthday: recurring MM-DD calendar date, e.g. "12-25".
	v.RegisterValidation("monthday", func(fl validator.FieldLevel) bool {
		return roster.ValidMonthDay(fl.Field().String())
	})

	return v
}

// validationMessage flattens validator errors into a single human-readable
// line for the error response.
func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", fe.Field()))
		case "hhmm":
			parts = append(parts, fmt.Sprintf("%s must be HH:MM", fe.Field()))
		case "monthday":
			parts = append(parts, fmt.Sprintf("%s must be MM-DD", fe.Field()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param()))
		case "datetime":
			parts = append(parts, fmt.Sprintf("%s must be %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
