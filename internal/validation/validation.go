// Package validation wraps go-playground/validator so handlers can turn
// schema violations into the structured field→message maps returned on
// 422 responses.  All failing fields are reported together; a request is
// never rejected with only the first error found.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// MsgISO8601 is the message attached to date/time fields that fail to
// parse.  Handlers use it for raw timestamp strings, which are parsed
// before struct validation runs.
const MsgISO8601 = "invalid format, use ISO 8601 (e.g. 2025-08-17T14:00:00)"

// timestampLayouts are accepted on input, most specific first.  Output
// always uses RFC 3339.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// New constructs a validator that reports field names using the json
// struct tag, so the keys of the error map match the wire format.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Fields flattens a validator error into a field→message map.  Non
// validation errors (nil struct, bad usage) come back under a single
// "_" key so the caller still produces a structured response.
func Fields(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["_"] = "invalid payload"
		return out
	}
	for _, fe := range verrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

// message renders a human readable message for a single failed rule.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("the %s field is required", fe.Field())
	case "min":
		return fmt.Sprintf("the %s field must have at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("the %s field must have at most %s characters", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("the %s field must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("the %s field must be a non-negative integer", fe.Field())
	default:
		return fmt.Sprintf("the %s field is invalid", fe.Field())
	}
}

// ParseTimestamp parses an ISO 8601 timestamp in one of the accepted
// layouts.  The zero time and an error are returned when no layout
// matches; callers should map the error to MsgISO8601.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp %q is not ISO 8601", s)
}
