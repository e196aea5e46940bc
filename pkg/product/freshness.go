package product

import (
	"time"

	"FreshTrack/domain"
)

// warningWindowDays is the single "about to spoil" threshold used everywhere.
const warningWindowDays = 3

// Classify maps an expiration date to a freshness status by comparing
// calendar days, ignoring time of day. Spoiled when the date has passed,
// Warning within warningWindowDays (today included), Fresh beyond that.
func Classify(expiresAt, today time.Time) string {
	days := daysBetween(today, expiresAt)

	switch {
	case days < 0:
		return domain.StatusSpoiled
	case days <= warningWindowDays:
		return domain.StatusWarning
	default:
		return domain.StatusFresh
	}
}

func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	start := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	end := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(end.Sub(start).Hours() / 24)
}
