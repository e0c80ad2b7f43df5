package spacedrep

import "time"

// The day cutoff: wall-clock times before 05:30 still count as the previous
// calendar day, so a late-night session is not scheduled a full day ahead.
const (
	dayCutoffHour   = 5
	dayCutoffMinute = 30
)

// EffectiveToday returns the effective calendar day for now, truncated to
// midnight in now's location.
func EffectiveToday(now time.Time) time.Time {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	cutoff := dayStart.Add(dayCutoffHour*time.Hour + dayCutoffMinute*time.Minute)
	if now.Before(cutoff) {
		return dayStart.AddDate(0, 0, -1)
	}
	return dayStart
}
