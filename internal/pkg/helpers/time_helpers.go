package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// TimestampLayout is the layout every persisted document uses for timestamps
const TimestampLayout = "2006-01-02 15:04:05"

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// FormatTimestamp renders t in the document timestamp layout
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp parses a document timestamp in local time
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, s, time.Local)
}

// SameMonth reports whether the document timestamp falls in the month of ref.
// Unparsable timestamps never match.
func SameMonth(timestamp string, ref time.Time) bool {
	t, err := ParseTimestamp(timestamp)
	if err != nil {
		return false
	}
	return t.Year() == ref.Year() && t.Month() == ref.Month()
}
