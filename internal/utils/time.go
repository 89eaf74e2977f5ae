package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/homeplan/internal/constants"
)

// Clock is a minute of the day, 0 <= c < constants.MinutesPerDay.
type Clock int

// ClockOf wraps any minute count onto the 24-hour clock.
func ClockOf(minutes int) Clock {
	m := minutes % constants.MinutesPerDay
	if m < 0 {
		m += constants.MinutesPerDay
	}
	return Clock(m)
}

// String renders the clock as zero-padded HH:MM.
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Hour returns the hour component.
func (c Clock) Hour() int {
	return int(c) / 60
}

// ParseClock parses "HH:MM" (or "H:MM"). The second result is false for
// empty or malformed input.
func ParseClock(s string) (Clock, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	t, err := time.Parse(constants.TimeFormat, s)
	if err != nil {
		return 0, false
	}
	return Clock(t.Hour()*60 + t.Minute()), true
}

// IsSet reports whether s holds a parseable time.
func IsSet(s string) bool {
	_, ok := ParseClock(s)
	return ok
}

// ToMinutes returns minutes since midnight, or the 08:00 default when s is
// empty or malformed.
func ToMinutes(s string) int {
	return ToMinutesOr(s, constants.DefaultClock)
}

// ToMinutesOr returns minutes since midnight, falling back to def.
func ToMinutesOr(s, def string) int {
	if c, ok := ParseClock(s); ok {
		return int(c)
	}
	c, _ := ParseClock(def)
	return int(c)
}

// FormatMinutes renders a minute count as HH:MM after wrapping.
func FormatMinutes(minutes int) string {
	return ClockOf(minutes).String()
}

// AddMinutes shifts s by n minutes, wrapping around midnight. Empty input
// yields the 08:00 default.
func AddMinutes(s string, n int) string {
	c, ok := ParseClock(s)
	if !ok {
		return constants.DefaultClock
	}
	return ClockOf(int(c) + n).String()
}

// SubtractMinutes shifts s back by n minutes, wrapping to the previous day.
func SubtractMinutes(s string, n int) string {
	return AddMinutes(s, -n)
}

// AddHour shifts s forward one hour modulo 24.
func AddHour(s string) string {
	return AddMinutes(s, 60)
}

// WindowLength returns end-start in minutes, never negative. It is 0 when
// either bound is unset.
func WindowLength(start, end string) int {
	s, okStart := ParseClock(start)
	e, okEnd := ParseClock(end)
	if !okStart || !okEnd {
		return 0
	}
	return max(0, int(e)-int(s))
}

// FormatDuration renders minutes as "Xh Ymin".
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dmin", minutes/60, minutes%60)
}

// GetTodayInTimezone returns today's date string (YYYY-MM-DD) in the specified timezone.
func GetTodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	return IsSet(timeStr)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
