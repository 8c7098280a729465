package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"clubhouse/app/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDueDay(t *testing.T) {
	for day := 1; day <= 31; day++ {
		got := DueDay(day)
		if day <= 5 {
			assert.Equal(t, 5, got, "day %d", day)
		} else {
			assert.Equal(t, 20, got, "day %d", day)
		}
	}
}

func TestCadenceMonths(t *testing.T) {
	tests := []struct {
		plan       models.SubscriptionPlan
		months     int
		recognized bool
	}{
		{models.PlanMonthly, 1, true},
		{models.PlanQuarterly, 3, true},
		{models.PlanSemiannual, 6, true},
		{models.SubscriptionPlan("weekly"), 1, false},
		{models.SubscriptionPlan(""), 1, false},
	}
	for _, tt := range tests {
		months, recognized := CadenceMonths(tt.plan)
		assert.Equal(t, tt.months, months, "plan %q", tt.plan)
		assert.Equal(t, tt.recognized, recognized, "plan %q", tt.plan)
	}
}

func TestFirstDueDate(t *testing.T) {
	tests := []struct {
		name     string
		enrolled time.Time
		plan     models.SubscriptionPlan
		want     time.Time
	}{
		{"enroll day 3 quarterly keeps same month", date(2025, time.January, 3), models.PlanQuarterly, date(2025, time.January, 5)},
		{"enroll on due day exactly", date(2025, time.January, 5), models.PlanMonthly, date(2025, time.January, 5)},
		{"enroll day 6 falls to the 20th", date(2025, time.January, 6), models.PlanMonthly, date(2025, time.January, 20)},
		{"enroll day 10 monthly", date(2025, time.March, 10), models.PlanMonthly, date(2025, time.March, 20)},
		{"enroll day 21 monthly rolls a month", date(2025, time.January, 21), models.PlanMonthly, date(2025, time.February, 20)},
		{"enroll day 25 quarterly rolls a quarter", date(2025, time.January, 25), models.PlanQuarterly, date(2025, time.April, 20)},
		{"enroll late december rolls the year", date(2025, time.December, 25), models.PlanMonthly, date(2026, time.January, 20)},
		{"unknown plan behaves monthly", date(2025, time.January, 21), models.SubscriptionPlan("weekly"), date(2025, time.February, 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstDueDate(tt.enrolled, tt.plan))
		})
	}
}

func TestNextDueDate(t *testing.T) {
	tests := []struct {
		name string
		prev time.Time
		plan models.SubscriptionPlan
		want time.Time
	}{
		{"monthly from the 5th", date(2025, time.January, 5), models.PlanMonthly, date(2025, time.February, 5)},
		{"monthly from the 20th", date(2025, time.January, 20), models.PlanMonthly, date(2025, time.February, 20)},
		{"quarterly from the 5th", date(2025, time.January, 5), models.PlanQuarterly, date(2025, time.April, 5)},
		{"semiannual rolls the year", date(2025, time.September, 20), models.PlanSemiannual, date(2026, time.March, 20)},
		{"unknown plan advances one month", date(2025, time.January, 5), models.SubscriptionPlan("biweekly"), date(2025, time.February, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDueDate(tt.prev, tt.plan)
			assert.Equal(t, tt.want, got)

			months, _ := CadenceMonths(tt.plan)
			wantMonths := (tt.prev.Year()*12 + int(tt.prev.Month())) + months
			gotMonths := got.Year()*12 + int(got.Month())
			assert.Equal(t, wantMonths, gotMonths, "advance is exactly one cadence")
			assert.Equal(t, DueDay(tt.prev.Day()), got.Day(), "due day re-derived from anchor")
		})
	}
}

func TestAddMonthsClampsToMonthLength(t *testing.T) {
	// Due days are always 5 or 20 in practice, but the arithmetic must not
	// overflow into the following month for any day value.
	assert.Equal(t, date(2025, time.February, 28), addMonths(date(2025, time.January, 31), 1, 31))
	assert.Equal(t, date(2024, time.February, 29), addMonths(date(2024, time.January, 31), 1, 31))
	assert.Equal(t, date(2025, time.April, 30), addMonths(date(2025, time.January, 15), 3, 31))
}
