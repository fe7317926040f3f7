package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var ErrMalformedDate = errors.New("malformed date")
var ErrBelowMinimumAge = errors.New("below minimum age")

// mobilePattern is exactly ten ASCII digits, no separators.
var mobilePattern = regexp.MustCompile(`^\d{10}$`)

// FieldError is a validation failure attached to a single form field.
// An empty Field marks a form-level error (e.g. a duplicate email reported
// by the store).
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationErrors accumulates field errors across an entire submission so
// the caller can re-render the form with every problem at once.
type ValidationErrors []FieldError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fe.Error())
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// MinimumAge reports whether dob is at least years old as of today, boundary
// inclusive: a candidate whose Nth birthday falls exactly on today is valid.
// A zero dob signals malformed input and is reported distinctly from a
// too-young date.
func MinimumAge(dob time.Time, years int, today time.Time) error {
	if dob.IsZero() {
		return ErrMalformedDate
	}
	cutoff := dateOnly(today).AddDate(-years, 0, 0)
	if dateOnly(dob).After(cutoff) {
		return fmt.Errorf("%w: must be at least %d years old", ErrBelowMinimumAge, years)
	}
	return nil
}

// ValidMobileNumber reports whether s is exactly ten digits.
func ValidMobileNumber(s string) bool {
	return mobilePattern.MatchString(s)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
