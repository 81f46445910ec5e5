package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// DateFormat is the wire format for calendar dates (enrollment dates,
// attendance dates, graded dates).
const DateFormat = "2006-01-02"

// ParseDuration parses a duration string, returns the default on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// Today returns the current calendar date truncated to midnight UTC.
func Today() time.Time {
	return Midnight(time.Now().UTC())
}

// Midnight truncates a timestamp to its calendar date.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of whole days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)).Hours() / 24)
}
