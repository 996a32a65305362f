package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

// UnionMembership is owned by exactly one employee and dropped with it.
type UnionMembership struct {
	MemberID string
	DailyDue decimal.Decimal
	Charges  []ServiceCharge

	// Debt is the unpaid balance an hourly employee carries to the next payday.
	Debt decimal.Decimal

	// LastPaid is the last payday whose dues were settled (zero if never).
	LastPaid generic.TimePoint

	// Settlements holds the opening state of every settled payday in date
	// order, so any covered payday can be computed again with identical results.
	Settlements []Settlement
}

// Settlement is the opening state of one settled payday.
type Settlement struct {
	Date          generic.TimePoint
	PriorDebt     decimal.Decimal
	PriorLastPaid generic.TimePoint
}

func (u *UnionMembership) clone() *UnionMembership {
	c := *u
	c.Charges = append([]ServiceCharge(nil), u.Charges...)
	c.Settlements = append([]Settlement(nil), u.Settlements...)
	return &c
}

// opening returns the debt and last-paid marker a computation for date starts
// from. A date already covered starts from the opening of the first
// settlement on or after it.
func (u *UnionMembership) opening(date generic.TimePoint) (decimal.Decimal, generic.TimePoint) {
	for _, st := range u.Settlements {
		if !st.Date.Before(date) {
			return st.PriorDebt, st.PriorLastPaid
		}
	}
	return u.Debt, u.LastPaid
}

// settle advances the membership past date. Dates already covered are a no-op.
func (u *UnionMembership) settle(date generic.TimePoint, shortfall decimal.Decimal) {
	if !u.LastPaid.IsZero() && !date.After(u.LastPaid) {
		return
	}
	u.Settlements = append(u.Settlements, Settlement{Date: date, PriorDebt: u.Debt, PriorLastPaid: u.LastPaid})
	u.Debt = shortfall
	u.LastPaid = date
}

// resetDues drops the hourly-only state: debt, last-paid marker and settlements.
func (u *UnionMembership) resetDues() {
	u.Debt = decimal.Zero
	u.LastPaid = generic.TimePoint{}
	u.Settlements = nil
}
