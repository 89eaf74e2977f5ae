package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// MinutesPerDay bounds every minute-of-day value: 0 <= m < MinutesPerDay
	MinutesPerDay = 24 * 60

	// DefaultClock is substituted for empty or malformed time fields
	DefaultClock = "08:00"
)
