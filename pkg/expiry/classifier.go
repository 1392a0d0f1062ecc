package expiry

import (
	"time"
)

// Status is the derived freshness state of an item.
type Status string

const (
	StatusGood         Status = "Good"
	StatusExpiringSoon Status = "Expiring Soon"
	StatusExpired      Status = "Expired"
)

// DefaultDashboardThreshold and DefaultReportThreshold are the windows the
// dashboard and the inventory report use when the caller does not override
// them. They differ on purpose; callers must always pass one explicitly.
const (
	DefaultDashboardThreshold = 7
	DefaultReportThreshold    = 3
)

const oneDay = 24 * time.Hour

type Classification struct {
	DaysRemaining int    `json:"days_remaining"`
	Status        Status `json:"status"`
}

// DaysUntil returns the calendar-day ceiling of the time left until expiry.
// An item expiring 10 hours from now reports 1 day remaining, not 0.
func DaysUntil(expiryDate, now time.Time) int {
	diff := expiryDate.Sub(now)
	days := int(diff / oneDay)
	if diff%oneDay > 0 {
		days++
	}
	return days
}

// Classify derives the status of an expiry date relative to now.
// An item expiring today (0 days remaining) is ExpiringSoon, never Expired;
// it becomes Expired only once the day count goes negative.
func Classify(expiryDate, now time.Time, thresholdDays int) Classification {
	days := DaysUntil(expiryDate, now)

	switch {
	case days < 0:
		return Classification{DaysRemaining: days, Status: StatusExpired}
	case days <= thresholdDays:
		return Classification{DaysRemaining: days, Status: StatusExpiringSoon}
	default:
		return Classification{DaysRemaining: days, Status: StatusGood}
	}
}
