// Package alerting holds the pure status-classification rules shared by the
// API handlers, the background jobs and the reports. Nothing in here reads a
// clock or touches I/O; the reference date is always injected by the caller.
package alerting

import "time"

// Window classifies how close a date is to its threshold.
type Window string

const (
	WindowExpired  Window = "EXPIRED"
	WindowCritical Window = "CRITICAL"
	WindowWarning  Window = "WARNING"
	WindowNormal   Window = "NORMAL"
)

// Thresholds configures ClassifyWindow. Critical must not exceed Warning.
type Thresholds struct {
	Critical int
	Warning  int
}

// DaysUntil returns the number of whole calendar days from ref to target.
// Negative when target is in the past, zero when both fall on the same day.
// Time-of-day is truncated, so 23:59 today to 00:01 tomorrow is one day.
func DaysUntil(target, ref time.Time) int {
	t := truncateToDay(target)
	r := truncateToDay(ref)
	return int(t.Sub(r).Hours() / 24)
}

func truncateToDay(v time.Time) time.Time {
	y, m, d := v.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ClassifyWindow maps a day delta onto a window band:
// EXPIRED for days < 0, CRITICAL for 0..Critical, WARNING for
// Critical+1..Warning, NORMAL beyond that.
func ClassifyWindow(days int, t Thresholds) Window {
	switch {
	case days < 0:
		return WindowExpired
	case days <= t.Critical:
		return WindowCritical
	case days <= t.Warning:
		return WindowWarning
	default:
		return WindowNormal
	}
}
