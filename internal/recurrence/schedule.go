package recurrence

import (
	"time"

	"github.com/medreminder/internal/model"
)

// maxLookahead bounds NextDose. Four years plus a day reaches the next
// February 29 for a yearly schedule anchored on a leap day.
const maxLookahead = 4*366 + 1

// Window 描述疗程的起止日期（含首尾两天）
type Window struct {
	Start  string
	End    string
	Days   int
	Finite bool
}

// TreatmentWindow returns the course window. ok is false when the medicine has
// no parseable start date.
func TreatmentWindow(medicine model.Medicine) (Window, bool) {
	start, ok := ParseDate(medicine.StartDate)
	if !ok {
		return Window{}, false
	}

	window := Window{Start: FormatDate(start), Days: DurationDays(medicine.Duration)}
	if window.Days != Unbounded {
		window.Finite = true
		window.End = FormatDate(start.AddDate(0, 0, window.Days-1))
	}
	return window, true
}

// NextDose returns the first date strictly after from on which the medicine
// shows. ok is false when from is malformed or nothing shows within the lookahead.
func NextDose(medicine model.Medicine, from string) (string, bool) {
	return NextDoseWith(Canonical, medicine, from)
}

// NextDoseWith is NextDose over an arbitrary evaluator.
func NextDoseWith(evaluator Evaluator, medicine model.Medicine, from string) (string, bool) {
	current, ok := ParseDate(from)
	if !ok {
		return "", false
	}

	for i := 1; i <= maxLookahead; i++ {
		candidate := FormatDate(current.AddDate(0, 0, i))
		if evaluator.ShouldShow(medicine, candidate) {
			return candidate, true
		}
	}
	return "", false
}

// Reason 说明某天不显示（或显示）的原因
type Reason string

const (
	ReasonScheduled  Reason = "scheduled"
	ReasonNotStarted Reason = "not_started"
	ReasonEnded      Reason = "ended"
	ReasonOffDay     Reason = "off_day"
)

// Status 是详情页使用的排期说明
type Status struct {
	Visible   bool
	Reason    Reason
	StartDate string
	EndDate   string
	NextDose  string
	DaysUntil int
}

// Explain describes why the medicine does or does not show on date, using the
// same rules as ShouldShow.
func Explain(medicine model.Medicine, date string) Status {
	if ShouldShow(medicine, date) {
		return Status{Visible: true, Reason: ReasonScheduled}
	}

	// ShouldShow only hides when both dates parse.
	start, _ := ParseDate(medicine.StartDate)
	candidate, _ := ParseDate(date)

	status := Status{StartDate: FormatDate(start)}
	if candidate.Before(start) {
		status.Reason = ReasonNotStarted
		status.NextDose = status.StartDate
		status.DaysUntil = DaysBetween(candidate, start)
		return status
	}

	if window, ok := TreatmentWindow(medicine); ok && window.Finite {
		end, _ := ParseDate(window.End)
		if candidate.After(end) {
			status.Reason = ReasonEnded
			status.EndDate = window.End
			return status
		}
	}

	status.Reason = ReasonOffDay
	if next, ok := NextDose(medicine, date); ok {
		nextDate, _ := ParseDate(next)
		status.NextDose = next
		status.DaysUntil = DaysBetween(candidate, nextDate)
	}
	return status
}

// DatesInRange lists every date in [from, to] on which the medicine shows.
func DatesInRange(medicine model.Medicine, from, to time.Time) []string {
	var dates []string
	for current := from; !current.After(to); current = current.AddDate(0, 0, 1) {
		date := FormatDate(current)
		if ShouldShow(medicine, date) {
			dates = append(dates, date)
		}
	}
	return dates
}
