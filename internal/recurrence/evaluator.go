// Package recurrence decides on which calendar dates a medicine's doses appear.
//
// Every view routes through ShouldShow. All date arithmetic works on civil dates
// anchored at noon UTC, so day differences are exact regardless of the host
// timezone or daylight-saving transitions. Malformed input always resolves to
// "show": a spurious reminder is preferable to a silently hidden dose.
package recurrence

import (
	"strconv"
	"strings"
	"time"

	"github.com/medreminder/internal/model"
)

// DateLayout is the persisted date format.
const DateLayout = "2006-01-02"

const day = 24 * time.Hour

// Evaluator decides dose visibility for a date.
type Evaluator interface {
	ShouldShow(medicine model.Medicine, date string) bool
}

// Canonical is the single evaluator shared by every view.
var Canonical Evaluator = canonical{}

type canonical struct{}

func (canonical) ShouldShow(medicine model.Medicine, date string) bool {
	return ShouldShow(medicine, date)
}

// ShouldShow reports whether medicine has a dose on date (YYYY-MM-DD).
func ShouldShow(medicine model.Medicine, date string) bool {
	start, ok := ParseDate(medicine.StartDate)
	if !ok {
		return true
	}
	candidate, ok := ParseDate(date)
	if !ok {
		return true
	}

	if candidate.Before(start) {
		return false
	}

	if days := DurationDays(medicine.Duration); days != Unbounded {
		end := start.AddDate(0, 0, days-1)
		if candidate.After(end) {
			return false
		}
	}

	if medicine.Frequency == "" {
		return true
	}
	if candidate.Equal(start) {
		return true
	}

	return matchesRule(FrequencyRule(medicine.Frequency), start, candidate)
}

func matchesRule(rule Rule, start, candidate time.Time) bool {
	switch rule.Kind {
	case RulePeriod:
		if rule.Period <= 0 {
			return true
		}
		return DaysBetween(start, candidate)%rule.Period == 0
	case RuleDayOfMonth:
		// 不对短月做修正：开始日为 31 号时，30 天的月份不会显示
		return candidate.Day() == start.Day()
	case RuleQuarterly:
		return candidate.Day() == start.Day() && monthsBetween(start, candidate)%3 == 0
	case RuleYearly:
		return candidate.Day() == start.Day() && candidate.Month() == start.Month()
	default:
		return true
	}
}

// ParseDate parses a YYYY-MM-DD string into a civil date at noon UTC. It accepts
// exactly three dash-separated numeric parts; out-of-range month or day values
// roll over the way time.Date normalizes them.
func ParseDate(raw string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	values := [3]int{}
	for i, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil {
			return time.Time{}, false
		}
		values[i] = value
	}

	return time.Date(values[0], time.Month(values[1]), values[2], 12, 0, 0, 0, time.UTC), true
}

// FormatDate renders a civil date back to YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current civil date in loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 12, 0, 0, 0, time.UTC)
}

// DaysBetween returns the absolute whole-day distance between two civil dates.
func DaysBetween(a, b time.Time) int {
	diff := b.Sub(a)
	if diff < 0 {
		diff = -diff
	}
	return int(diff / day)
}

func monthsBetween(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if months < 0 {
		return -months
	}
	return months
}
