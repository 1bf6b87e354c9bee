package utils

import "time"

// DayString normalizes an instant to its diary-day key, YYYY-MM-DD in
// UTC. Pinning the zone keeps the goal-propagation window ("today and
// later") stable regardless of the server's local timezone.
func DayString(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// TodayString is today's diary-day key.
func TodayString() string {
	return DayString(time.Now())
}
