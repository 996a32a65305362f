package payroll

import (
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

// =============================================================================
// PAYCHECK - What one employee is owed on one payday
// =============================================================================

// Paycheck is the computed pay of one employee. Gross, Deductions and Net are
// rounded half-up to cents; Base and Commission are floored to cents.
type Paycheck struct {
	EmployeeID EmployeeID
	Name       string
	Kind       Kind
	Payment    string
	Period     generic.Period

	// Hourly
	NormalHours decimal.Decimal
	ExtraHours  decimal.Decimal

	// Commissioned (Base also carries prorated salaried pay)
	Base       decimal.Decimal
	Sales      decimal.Decimal
	Commission decimal.Decimal

	Gross      decimal.Decimal
	Deductions decimal.Decimal
	Net        decimal.Decimal

	// Shortfall is the part of the deductions the gross could not cover.
	// Hourly employees carry it forward as union debt.
	Shortfall decimal.Decimal
}

var (
	overtimeFactor = decimal.RequireFromString("1.5")
	monthsPerYear  = decimal.NewFromInt(12)
	weeksPerYear   = decimal.NewFromInt(52)
)

// computePaycheck is read-only: it never touches e or its membership.
func computePaycheck(e *Employee, date generic.TimePoint, period generic.Period, sc *Schedule) Paycheck {
	pc := Paycheck{
		EmployeeID:  e.ID,
		Name:        e.Name,
		Kind:        e.Kind(),
		Payment:     e.Payment.Describe(e.Address),
		Period:      period,
		NormalHours: decimal.Zero,
		ExtraHours:  decimal.Zero,
		Base:        decimal.Zero,
		Sales:       decimal.Zero,
		Commission:  decimal.Zero,
	}

	var gross decimal.Decimal
	switch pay := e.Pay.(type) {
	case *HourlyPay:
		pc.NormalHours, pc.ExtraHours = sumHours(pay.TimeCards, period.Contains)
		gross = pc.NormalHours.Mul(pay.Rate).Add(pc.ExtraHours.Mul(pay.Rate).Mul(overtimeFactor))
	case *SalariedPay:
		pc.Base = basePay(pay.Monthly, sc)
		gross = pc.Base
	case *CommissionedPay:
		if sc == nil {
			pc.Base = prorate(pay.Monthly, 2)
		} else {
			pc.Base = basePay(pay.Monthly, sc)
		}
		pc.Sales = sumSales(pay.Sales, period.Contains)
		pc.Commission = generic.Floor2(pay.Rate.Mul(pc.Sales))
		gross = pc.Base.Add(pc.Commission)
	}

	deductions := unionDeductions(e, date, period)
	pc.Gross = generic.Round2(gross)
	pc.Deductions = generic.Round2(deductions)
	pc.Net = generic.Round2(generic.Max(gross.Sub(deductions), decimal.Zero))
	pc.Shortfall = generic.Max(deductions.Sub(gross), decimal.Zero)
	return pc
}

// basePay is the full monthly salary, or its N-weekly proration under a
// weekly descriptor. A nil schedule means the built-in monthly rule.
func basePay(monthly decimal.Decimal, sc *Schedule) decimal.Decimal {
	if sc == nil || sc.Monthly {
		return monthly
	}
	return prorate(monthly, sc.Weeks)
}

// prorate returns floor2(monthly * 12 * weeks / 52).
func prorate(monthly decimal.Decimal, weeks int) decimal.Decimal {
	return generic.Floor2(monthly.Mul(monthsPerYear).Mul(decimal.NewFromInt(int64(weeks))).Div(weeksPerYear))
}

// unionDeductions charges the daily due for the covered days plus the service
// charges dated in the period. Hourly members are charged only for the days
// since their last settled payday, plus any carried debt.
func unionDeductions(e *Employee, date generic.TimePoint, period generic.Period) decimal.Decimal {
	u := e.Union
	if u == nil {
		return decimal.Zero
	}
	days := period.Len()
	debt := decimal.Zero
	if _, hourly := e.Pay.(*HourlyPay); hourly {
		var lastPaid generic.TimePoint
		debt, lastPaid = u.opening(date)
		if !lastPaid.IsZero() {
			days = max(generic.DaysBetween(lastPaid, date), 0)
		}
	}
	dues := u.DailyDue.Mul(decimal.NewFromInt(int64(days)))
	return dues.Add(debt).Add(sumCharges(u.Charges, period.Contains))
}
