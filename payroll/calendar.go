package payroll

import (
	"time"

	"github.com/warp/payroll-engine/generic"
)

// =============================================================================
// CALENDARS - Is this date a payday, and which days does it cover?
// =============================================================================

// Anchor is the reference Friday for biweekly pay and the fixed reference
// date custom weekly schedules start from for salaried and commissioned employees.
var Anchor = generic.NewTimePoint(2005, time.January, 14)

// calendar decides payday eligibility for one employee on one date.
type calendar interface {
	payday(e *Employee, date generic.TimePoint) (generic.Period, bool)
}

// builtinCalendar applies the fixed rule of each variant, ignoring descriptors.
type builtinCalendar struct{}

func (builtinCalendar) payday(e *Employee, date generic.TimePoint) (generic.Period, bool) {
	switch e.Pay.(type) {
	case *HourlyPay:
		if date.Weekday() != time.Friday {
			return generic.Period{}, false
		}
		return generic.PeriodEnding(date, 7), true
	case *CommissionedPay:
		if date.Weekday() != time.Friday || weeksFrom(Anchor, date)%2 != 0 {
			return generic.Period{}, false
		}
		return generic.PeriodEnding(date, 14), true
	default:
		if !date.Equal(generic.LastBusinessDay(date.Year(), date.Month())) {
			return generic.Period{}, false
		}
		return generic.Period{Start: generic.StartOfMonth(date.Year(), date.Month()), End: date}, true
	}
}

// descriptorCalendar evaluates every employee's own descriptor.
type descriptorCalendar struct{}

func (descriptorCalendar) payday(e *Employee, date generic.TimePoint) (generic.Period, bool) {
	sc, err := ParseSchedule(e.Schedule)
	if err != nil {
		sc, _ = ParseSchedule(DefaultSchedule(e.Kind()))
	}
	return sc.payday(e, date)
}

func (sc Schedule) payday(e *Employee, date generic.TimePoint) (generic.Period, bool) {
	switch {
	case sc.Monthly && sc.Day == 0:
		if !date.Equal(generic.LastBusinessDay(date.Year(), date.Month())) {
			return generic.Period{}, false
		}
		return generic.Period{Start: generic.StartOfMonth(date.Year(), date.Month()), End: date}, true
	case sc.Monthly:
		if date.Day() != sc.Day {
			return generic.Period{}, false
		}
		return generic.Period{Start: date.AddMonths(-1).AddDays(1), End: date}, true
	}

	if date.ISOWeekday() != sc.Weekday {
		return generic.Period{}, false
	}
	ref, hired, ok := reference(e)
	if !ok {
		return generic.Period{}, false
	}
	first := ref.NextWeekday(sc.Weekday)
	if hired && date.Before(first) {
		return generic.Period{}, false
	}
	if mod(weeksFrom(first, date), sc.Weeks) != 0 {
		return generic.Period{}, false
	}
	return generic.PeriodEnding(date, 7*sc.Weeks), true
}

// reference is the first timecard date for hourly employees (hired=true) and
// Anchor for everyone else. Paydays before a hire reference never happen; the
// fixed Anchor repeats in both directions. An hourly employee without
// timecards has no reference (ok=false).
func reference(e *Employee) (ref generic.TimePoint, hired, ok bool) {
	if pay, hourly := e.Pay.(*HourlyPay); hourly {
		if len(pay.TimeCards) == 0 {
			return generic.TimePoint{}, true, false
		}
		return pay.TimeCards[0].Date, true, true
	}
	return Anchor, false, true
}

func weeksFrom(from, to generic.TimePoint) int { return generic.DaysBetween(from, to) / 7 }

func mod(a, n int) int { return ((a % n) + n) % n }
