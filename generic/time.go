package generic

import (
	"regexp"
	"strconv"
	"time"
)

// =============================================================================
// TIME POINT - Calendar date (payroll never needs a time of day)
// =============================================================================

type TimePoint struct {
	Time time.Time
}

// Constructors
func NewTimePoint(year int, month time.Month, day int) TimePoint {
	return TimePoint{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func Today() TimePoint {
	now := time.Now()
	return NewTimePoint(now.Year(), now.Month(), now.Day())
}

// dateLayout is the strict day/month/year grammar: one or two digit day and
// month, four digit year. Impossible dates are rejected after matching.
var dateLayout = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

// ParseDate parses "d/M/yyyy" strictly. "31/2/2005" and "1-1-2005" both fail
// with ErrInvalidDate.
func ParseDate(field, s string) (TimePoint, error) {
	m := dateLayout.FindStringSubmatch(s)
	if m == nil {
		return TimePoint{}, &FieldError{Field: field, Err: ErrInvalidDate}
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || day < 1 {
		return TimePoint{}, &FieldError{Field: field, Err: ErrInvalidDate}
	}
	tp := NewTimePoint(year, time.Month(month), day)
	// time.Date normalizes overflow (31/2 -> 3/3); a mismatch means the day does not exist.
	if tp.Day() != day || int(tp.Month()) != month || tp.Year() != year {
		return TimePoint{}, &FieldError{Field: field, Err: ErrInvalidDate}
	}
	return tp, nil
}

// Comparison
func (tp TimePoint) Before(other TimePoint) bool        { return tp.Time.Before(other.Time) }
func (tp TimePoint) Equal(other TimePoint) bool         { return tp.Time.Equal(other.Time) }
func (tp TimePoint) After(other TimePoint) bool         { return tp.Time.After(other.Time) }
func (tp TimePoint) BeforeOrEqual(other TimePoint) bool { return !tp.After(other) }
func (tp TimePoint) AfterOrEqual(other TimePoint) bool  { return !tp.Before(other) }

// Arithmetic
func (tp TimePoint) AddDays(n int) TimePoint   { return TimePoint{Time: tp.Time.AddDate(0, 0, n)} }
func (tp TimePoint) AddMonths(n int) TimePoint { return TimePoint{Time: tp.Time.AddDate(0, n, 0)} }

// Properties
func (tp TimePoint) Year() int             { return tp.Time.Year() }
func (tp TimePoint) Month() time.Month     { return tp.Time.Month() }
func (tp TimePoint) Day() int              { return tp.Time.Day() }
func (tp TimePoint) Weekday() time.Weekday { return tp.Time.Weekday() }
func (tp TimePoint) IsWeekend() bool       { wd := tp.Weekday(); return wd == time.Saturday || wd == time.Sunday }
func (tp TimePoint) IsWorkday() bool       { return !tp.IsWeekend() }
func (tp TimePoint) IsZero() bool          { return tp.Time.IsZero() }

// ISOWeekday numbers Monday as 1 through Sunday as 7.
func (tp TimePoint) ISOWeekday() int {
	if wd := tp.Weekday(); wd != time.Sunday {
		return int(wd)
	}
	return 7
}

func (tp TimePoint) String() string { return tp.Time.Format("2006-01-02") }

// Format renders the same d/M/yyyy form ParseDate accepts.
func (tp TimePoint) Format() string { return tp.Time.Format("2/1/2006") }

// =============================================================================
// TIME UTILITIES
// =============================================================================

func DaysBetween(from, to TimePoint) int { return int(to.Time.Sub(from.Time).Hours() / 24) }
func StartOfMonth(year int, month time.Month) TimePoint { return NewTimePoint(year, month, 1) }
func EndOfMonth(year int, month time.Month) TimePoint {
	return TimePoint{Time: time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)}
}

// LastBusinessDay walks back from the month's last day, skipping weekends.
func LastBusinessDay(year int, month time.Month) TimePoint {
	d := EndOfMonth(year, month)
	for d.IsWeekend() {
		d = d.AddDays(-1)
	}
	return d
}

// NextWeekday returns the first date on or after tp whose ISO weekday is isoDay.
func (tp TimePoint) NextWeekday(isoDay int) TimePoint {
	return tp.AddDays((isoDay - tp.ISOWeekday() + 7) % 7)
}
