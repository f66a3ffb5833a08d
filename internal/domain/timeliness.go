package domain

import (
	"fmt"
	"time"
)

const dayMillis = 24 * 60 * 60 * 1000

// Timeliness labels derived from processing days vs. target.
const (
	TimelinessOnTime = "On time"
)

// ProcessingDays returns the whole-day elapsed time between receipt and
// release, clamped to zero. Nil when either date is unknown.
func ProcessingDays(dateReceived, dateRelease *time.Time) *int {
	if dateReceived == nil || dateRelease == nil {
		return nil
	}
	diff := dateRelease.UnixMilli() - dateReceived.UnixMilli()
	days := int(floorDiv(diff, dayMillis))
	if days < 0 {
		days = 0
	}
	return &days
}

// ComputeTimeliness derives processingDays and the timeliness label from a
// ticket's receipt date, release date and optional target. Callers must pass
// the fully merged record so the derived fields never go stale.
func ComputeTimeliness(dateReceived, dateRelease *time.Time, targetDays *float64) (*int, string) {
	days := ProcessingDays(dateReceived, dateRelease)
	if days == nil {
		return nil, ""
	}
	if targetDays != nil {
		if float64(*days) <= *targetDays {
			return days, TimelinessOnTime
		}
		late := float64(*days) - *targetDays
		return days, fmt.Sprintf("Delayed (%s days)", trimFloat(late))
	}
	if *days == 0 {
		return days, TimelinessOnTime
	}
	return days, fmt.Sprintf("Delayed (%d days)", *days)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// trimFloat renders whole-number deltas without a decimal point.
func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
