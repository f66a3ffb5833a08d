package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/campus-kit/registrar-service/internal/domain"
)

// WeeklyBucket is one Monday-aligned week of registrar ticket statistics.
type WeeklyBucket struct {
	Week      string    `json:"week"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Total     int       `json:"total"`
	Completed int       `json:"completed"`
	Avg       *float64  `json:"avg"`
	TargetAvg *float64  `json:"targetAvg"`
	Fastest   *int      `json:"fastest"`
	Longest   *int      `json:"longest"`
	PctWithin *float64  `json:"pctWithin"`
}

// MonthlyBucket is one calendar month of registrar ticket statistics.
type MonthlyBucket struct {
	Month     string   `json:"month"`
	Completed int      `json:"completed"`
	ActualAvg *float64 `json:"actualAvg"`
	TargetAvg *float64 `json:"targetAvg"`
}

// AggregateWeekly groups tickets into Monday-aligned UTC weeks keyed by the
// receipt date (falling back to the creation timestamp) and computes
// per-bucket summary statistics. Buckets are returned sorted by week start.
func AggregateWeekly(tickets []domain.Ticket) []WeeklyBucket {
	groups := make(map[time.Time][]domain.Ticket)
	for _, t := range tickets {
		start := weekStartUTC(bucketTime(&t))
		groups[start] = append(groups[start], t)
	}

	out := make([]WeeklyBucket, 0, len(groups))
	for start, items := range groups {
		end := start.AddDate(0, 0, 7).Add(-time.Millisecond)
		bucket := WeeklyBucket{
			Week:  fmt.Sprintf("Wk of %s", start.Format("2006-01-02")),
			Start: start,
			End:   end,
			Total: len(items),
		}

		var procSum, procCount int
		var withTarget, within int
		for i := range items {
			t := &items[i]
			if !t.Completed() {
				continue
			}
			bucket.Completed++
			days := t.EffectiveProcessingDays()
			if days != nil {
				procSum += *days
				procCount++
				if bucket.Fastest == nil || *days < *bucket.Fastest {
					bucket.Fastest = cloneInt(*days)
				}
				if bucket.Longest == nil || *days > *bucket.Longest {
					bucket.Longest = cloneInt(*days)
				}
			}
			if t.TargetDays != nil {
				withTarget++
				if days != nil && float64(*days) <= *t.TargetDays {
					within++
				}
			}
		}

		if procCount > 0 {
			bucket.Avg = cloneFloat(float64(procSum) / float64(procCount))
		}
		bucket.TargetAvg = targetAverage(items)
		// Tickets without a numeric target are excluded from the
		// within-target percentage entirely.
		if withTarget > 0 {
			bucket.PctWithin = cloneFloat(float64(within) * 100 / float64(withTarget))
		}
		out = append(out, bucket)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// AggregateMonthly groups tickets into calendar months ("YYYY-MM", UTC) and
// computes completion counts and averages. Buckets are sorted by month.
func AggregateMonthly(tickets []domain.Ticket) []MonthlyBucket {
	groups := make(map[string][]domain.Ticket)
	for _, t := range tickets {
		key := bucketTime(&t).UTC().Format("2006-01")
		groups[key] = append(groups[key], t)
	}

	out := make([]MonthlyBucket, 0, len(groups))
	for month, items := range groups {
		bucket := MonthlyBucket{Month: month}

		var procSum, procCount int
		for i := range items {
			t := &items[i]
			if !t.Completed() {
				continue
			}
			bucket.Completed++
			if days := t.EffectiveProcessingDays(); days != nil {
				procSum += *days
				procCount++
			}
		}

		if procCount > 0 {
			bucket.ActualAvg = cloneFloat(float64(procSum) / float64(procCount))
		}
		bucket.TargetAvg = targetAverage(items)
		out = append(out, bucket)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// bucketTime picks the grouping timestamp: receipt date when known,
// otherwise the creation timestamp.
func bucketTime(t *domain.Ticket) time.Time {
	if t.DateReceived != nil {
		return *t.DateReceived
	}
	return t.CreatedAt
}

// weekStartUTC returns midnight UTC of the Monday of t's week.
func weekStartUTC(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

// targetAverage is the mean of numeric targets over all tickets in a bucket,
// nil when none carry one.
func targetAverage(items []domain.Ticket) *float64 {
	var sum float64
	count := 0
	for i := range items {
		if items[i].TargetDays != nil {
			sum += *items[i].TargetDays
			count++
		}
	}
	if count == 0 {
		return nil
	}
	return cloneFloat(sum / float64(count))
}

func cloneInt(n int) *int           { return &n }
func cloneFloat(f float64) *float64 { return &f }
