package utils

import (
	"fmt"
	"time"
)

// DayLayout is the ISO calendar-day format used for every stored completion date.
const DayLayout = "2006-01-02"

// Clock abstracts time.Now so streak math can be pinned in tests.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// Today returns the current calendar day in loc. A nil loc means UTC.
func Today(clock Clock, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return clock.Now().In(loc).Format(DayLayout)
}

func ParseDay(day string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, day, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: %w", day, err)
	}
	return t, nil
}

func FormatDay(t time.Time) string {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Format(DayLayout)
}

func ValidDay(day string) bool {
	_, err := ParseDay(day)
	return err == nil
}

// DayBefore returns the day n calendar days before day. Invalid input yields "".
func DayBefore(day string, n int) string {
	t, err := ParseDay(day)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -n).Format(DayLayout)
}

// DaysBetween returns b - a in whole calendar days.
func DaysBetween(a, b string) (int, error) {
	ta, err := ParseDay(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDay(b)
	if err != nil {
		return 0, err
	}
	// Both values are UTC midnights, so the division is exact.
	return int(tb.Sub(ta).Hours() / 24), nil
}

// LoadLocation resolves an IANA zone name; "" and "UTC" map to time.UTC.
func LoadLocation(name string) (*time.Location, error) {
	switch name {
	case "", "UTC":
		return time.UTC, nil
	case "Local":
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// AgeOn returns the age in whole years on the given day for a birth date.
func AgeOn(dob time.Time, on time.Time) int {
	age := on.Year() - dob.Year()
	if on.Month() < dob.Month() || (on.Month() == dob.Month() && on.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
