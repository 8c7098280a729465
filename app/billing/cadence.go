package billing

import (
	"time"

	"clubhouse/app/models"
)

// Cadence policy: pure date arithmetic mapping a subscription plan and an
// anchor date to the next due date. Due dates always fall on the 5th or the
// 20th; which of the two is a function of the anchor's day-of-month, so it is
// re-derived every cycle rather than fixed per student.

// CadenceMonths returns the billing interval in months for a plan. Unknown
// plan values default to monthly with recognized=false; billing never fails
// because of a bad plan label, the caller just logs a warning.
func CadenceMonths(plan models.SubscriptionPlan) (months int, recognized bool) {
	switch plan {
	case models.PlanMonthly:
		return 1, true
	case models.PlanQuarterly:
		return 3, true
	case models.PlanSemiannual:
		return 6, true
	default:
		return 1, false
	}
}

// DueDay maps the day-of-month of a cycle's anchor to the due day: the 5th
// for anchors on or before the 5th, the 20th otherwise.
func DueDay(anchorDay int) int {
	if anchorDay <= 5 {
		return 5
	}
	return 20
}

// FirstDueDate computes the due date of a student's first billing cycle from
// the enrollment date. If the month's due day has already passed at
// enrollment, the first cycle starts one full cadence later.
func FirstDueDate(enrolledOn time.Time, plan models.SubscriptionPlan) time.Time {
	dueDay := DueDay(enrolledOn.Day())
	candidate := time.Date(enrolledOn.Year(), enrolledOn.Month(), dueDay, 0, 0, 0, 0, time.UTC)
	if enrolledOn.Day() > dueDay {
		months, _ := CadenceMonths(plan)
		candidate = addMonths(candidate, months, dueDay)
	}
	return candidate
}

// NextDueDate advances a due date by one cadence. The due day is re-derived
// from the previous due date's day-of-month, not copied.
func NextDueDate(previousDue time.Time, plan models.SubscriptionPlan) time.Time {
	months, _ := CadenceMonths(plan)
	return addMonths(previousDue, months, DueDay(previousDue.Day()))
}

// addMonths moves t forward by the given number of months, landing on day
// (clamped to the target month's length). time.AddDate alone is not used
// because it normalizes overflowing days into the following month.
func addMonths(t time.Time, months, day int) time.Time {
	year, month := t.Year(), int(t.Month())+months
	year += (month - 1) / 12
	month = (month-1)%12 + 1
	if last := daysIn(year, time.Month(month)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
