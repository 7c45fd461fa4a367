package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"timeclock-sync/internal/apperror"

	"github.com/go-playground/validator/v10"
)

var hhmmPattern = regexp.MustCompile(`^\d{1,3}:[0-5]\d$`)

// HHMMValidator accepts free-text durations such as "00:15" or "108:30".
var HHMMValidator = func(fl validator.FieldLevel) bool {
	return hhmmPattern.MatchString(fl.Field().String())
}

// NewValidator returns a validator that reports JSON field names and knows the hhmm tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("hhmm", HHMMValidator)
	return v
}

var fieldCodes = map[string]string{
	"Latitude":           apperror.CodeInvalidLatitude,
	"Longitude":          apperror.CodeInvalidLongitude,
	"MatchPercentage":    apperror.CodeInvalidMatchPercentage,
	"VerificationStatus": apperror.CodeInvalidVerification,
	"LateTime":           apperror.CodeInvalidTimeFormat,
	"EarlyLeaveTime":     apperror.CodeInvalidTimeFormat,
}

// validationError maps the first failed field to its machine-readable code.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperror.Internal(err)
	}

	fe := verrs[0]
	code, ok := fieldCodes[fe.StructField()]
	if !ok {
		code = apperror.CodeInvalidParameter
	}

	var msg string
	switch fe.Tag() {
	case "gte", "lte":
		msg = fmt.Sprintf("%s must be between the allowed bounds (%s %s)", fe.Field(), fe.Tag(), fe.Param())
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "hhmm":
		msg = fmt.Sprintf("%s must use the HH:MM format", fe.Field())
	default:
		msg = fmt.Sprintf("%s is invalid", fe.Field())
	}
	return apperror.BadRequest(code, msg)
}

// zone-less layouts accepted for check timestamps, tried after RFC 3339
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseCheckDate parses an ISO-8601 timestamp. Values without an offset are read in loc,
// values with one are converted to loc. The result is truncated to the second.
func ParseCheckDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.In(loc).Truncate(time.Second), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t.Truncate(time.Second), nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp %q", raw)
}

// parseRangeEnd parses an inclusive upper bound and returns the exclusive one.
// A date-only value covers the whole day.
func parseRangeEnd(raw string, loc *time.Location) (time.Time, error) {
	if d, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(raw), loc); err == nil {
		return d.AddDate(0, 0, 1), nil
	}
	t, err := ParseCheckDate(raw, loc)
	if err != nil {
		return time.Time{}, err
	}
	return t.Add(time.Second), nil
}

func parseRangeStart(raw string, loc *time.Location) (time.Time, error) {
	if d, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(raw), loc); err == nil {
		return d, nil
	}
	return ParseCheckDate(raw, loc)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
