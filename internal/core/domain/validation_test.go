package domain

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMinimumAge_ExactBoundary(t *testing.T) {
	today := date(2024, time.June, 15)

	// 27th birthday falls exactly on today → valid (inclusive).
	if err := MinimumAge(date(1997, time.June, 15), 27, today); err != nil {
		t.Fatalf("expected boundary date to be valid, got %v", err)
	}

	// One day short of the 27th birthday → invalid.
	err := MinimumAge(date(1997, time.June, 16), 27, today)
	if !errors.Is(err, ErrBelowMinimumAge) {
		t.Fatalf("expected ErrBelowMinimumAge, got %v", err)
	}
}

func TestMinimumAge_WellPastThreshold(t *testing.T) {
	today := date(2024, time.June, 15)
	if err := MinimumAge(date(1960, time.January, 2), 27, today); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}

func TestMinimumAge_LeapDayBirthdate(t *testing.T) {
	// Born 1996-02-29; cutoff for 27 years from 2023-02-28 is 1996-02-28,
	// so the leap-day birthdate is one day past the cutoff → invalid.
	if err := MinimumAge(date(1996, time.February, 29), 27, date(2023, time.February, 28)); !errors.Is(err, ErrBelowMinimumAge) {
		t.Fatalf("expected ErrBelowMinimumAge, got %v", err)
	}
	// The next day the cutoff advances to 1996-03-01 (standard AddDate
	// normalisation) and the candidate becomes valid.
	if err := MinimumAge(date(1996, time.February, 29), 27, date(2023, time.March, 1)); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
}

func TestMinimumAge_TimeOfDayIgnored(t *testing.T) {
	today := time.Date(2024, time.June, 15, 0, 1, 0, 0, time.UTC)
	dob := time.Date(1997, time.June, 15, 23, 59, 0, 0, time.UTC)
	if err := MinimumAge(dob, 27, today); err != nil {
		t.Fatalf("expected date-only comparison to pass, got %v", err)
	}
}

func TestMinimumAge_MalformedDate(t *testing.T) {
	if err := MinimumAge(time.Time{}, 27, date(2024, time.June, 15)); !errors.Is(err, ErrMalformedDate) {
		t.Fatalf("expected ErrMalformedDate, got %v", err)
	}
}

func TestValidMobileNumber(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"0412345678", true},
		{"1234567890", true},
		{"12345", false},
		{"123456789A", false},
		{"12345678901", false},
		{"123 456 78", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidMobileNumber(tc.in); got != tc.want {
			t.Errorf("ValidMobileNumber(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestValidationErrors_Message(t *testing.T) {
	ve := ValidationErrors{
		{Field: "email", Message: "must be a valid email"},
		{Message: "email already registered"},
	}
	want := "validation failed: email: must be a valid email; email already registered"
	if ve.Error() != want {
		t.Fatalf("unexpected message: %q", ve.Error())
	}
}
