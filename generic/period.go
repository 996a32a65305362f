package generic

// =============================================================================
// PERIOD - The span of days a payday covers
// =============================================================================

// Period is an inclusive date range [Start, End].
//
// Examples:
//   - Weekly pay: Saturday through Friday
//   - Biweekly pay: the 14 days ending on the payday
//   - Monthly pay: the 1st of the month through the last business day
type Period struct {
	Start TimePoint
	End   TimePoint
}

// PeriodEnding returns the period of n days whose last day is end.
func PeriodEnding(end TimePoint, days int) Period {
	return Period{Start: end.AddDays(-(days - 1)), End: end}
}

// Contains returns true if the time point is within the period [Start, End]
func (p Period) Contains(t TimePoint) bool {
	return t.AfterOrEqual(p.Start) && t.BeforeOrEqual(p.End)
}

// Len returns the number of days in the period, both ends included.
func (p Period) Len() int {
	if p.End.Before(p.Start) {
		return 0
	}
	return DaysBetween(p.Start, p.End) + 1
}

// Days returns all days in the period as a slice of TimePoints.
func (p Period) Days() []TimePoint {
	var days []TimePoint
	current := p.Start
	for current.BeforeOrEqual(p.End) {
		days = append(days, current)
		current = current.AddDays(1)
	}
	return days
}

// String returns a string representation of the period.
func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// HalfOpen is a query range [From, To) as used by the hours and sales
// totals: a sale dated exactly To is not counted.
type HalfOpen struct {
	From TimePoint
	To   TimePoint
}

// NewHalfOpen validates that from is not after to.
func NewHalfOpen(from, to TimePoint) (HalfOpen, error) {
	if from.After(to) {
		return HalfOpen{}, ErrInvalidRange
	}
	return HalfOpen{From: from, To: to}, nil
}

func (r HalfOpen) Contains(t TimePoint) bool { return t.AfterOrEqual(r.From) && t.Before(r.To) }
