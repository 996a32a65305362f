/*
run.go - Payroll run orchestration

PURPOSE:
  Pays everyone due on a date. A run has two passes:

    1. Compute (read-only): every employee's payday and paycheck is computed
       against the state as it was before the run.
    2. Advance (write): paid hourly union members settle their dues, moving
       their debt and last-paid marker.

  Nothing computed in pass 1 can observe a change made in pass 2, so the
  order employees are visited in never changes a paycheck.

CALENDAR SELECTION:
  While every employee keeps its variant's default schedule the built-in
  rules apply. Once any employee has another schedule, every employee is
  evaluated through its descriptor, keeping the totals of one date consistent.

SEE ALSO:
  - calendar.go: Payday rules
  - compute.go: Paycheck arithmetic
  - report/: Renders a Payroll
*/
package payroll

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

// Totals accumulates paychecks. Hour and commission columns stay zero for
// groups that do not use them.
type Totals struct {
	NormalHours decimal.Decimal
	ExtraHours  decimal.Decimal
	Base        decimal.Decimal
	Sales       decimal.Decimal
	Commission  decimal.Decimal
	Gross       decimal.Decimal
	Deductions  decimal.Decimal
	Net         decimal.Decimal
}

func zeroTotals() Totals {
	z := decimal.Zero
	return Totals{z, z, z, z, z, z, z, z}
}

func (t *Totals) add(pc Paycheck) {
	t.NormalHours = t.NormalHours.Add(pc.NormalHours)
	t.ExtraHours = t.ExtraHours.Add(pc.ExtraHours)
	t.Base = t.Base.Add(pc.Base)
	t.Sales = t.Sales.Add(pc.Sales)
	t.Commission = t.Commission.Add(pc.Commission)
	t.Gross = t.Gross.Add(pc.Gross)
	t.Deductions = t.Deductions.Add(pc.Deductions)
	t.Net = t.Net.Add(pc.Net)
}

// Group holds the paychecks of one variant, sorted by name.
type Group struct {
	Kind      Kind
	Paychecks []Paycheck
	Total     Totals
}

// Payroll is the result of computing or running payroll for a date.
type Payroll struct {
	Date       generic.TimePoint
	CustomPath bool
	Groups     []Group
	Total      Totals
}

// Group returns the group of kind k.
func (p *Payroll) Group(k Kind) *Group {
	for i := range p.Groups {
		if p.Groups[i].Kind == k {
			return &p.Groups[i]
		}
	}
	return nil
}

// Paychecks returns every paycheck in employee id order.
func (p *Payroll) Paychecks() []Paycheck {
	var all []Paycheck
	for _, g := range p.Groups {
		all = append(all, g.Paychecks...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].EmployeeID < all[j].EmployeeID })
	return all
}

// Record turns the payroll into an archive record.
func (p *Payroll) Record(id string, createdAt time.Time) RunRecord {
	return RunRecord{ID: id, PayDate: p.Date, CreatedAt: createdAt, Paychecks: p.Paychecks(), Total: p.Total}
}

// =============================================================================
// COMPUTE AND RUN
// =============================================================================

// Compute returns the payroll for date without changing any state.
func (s *System) Compute(date generic.TimePoint) *Payroll {
	custom := s.usesCustomSchedules()
	var cal calendar = builtinCalendar{}
	if custom {
		cal = descriptorCalendar{}
	}

	p := &Payroll{Date: date, CustomPath: custom, Total: zeroTotals()}
	for _, k := range Kinds {
		p.Groups = append(p.Groups, Group{Kind: k, Total: zeroTotals()})
	}

	for _, e := range s.sorted() {
		period, ok := cal.payday(e, date)
		if !ok {
			continue
		}
		var sc *Schedule
		if custom {
			if parsed, err := ParseSchedule(e.Schedule); err == nil {
				sc = &parsed
			}
		}
		pc := computePaycheck(e, date, period, sc)
		g := p.Group(pc.Kind)
		g.Paychecks = append(g.Paychecks, pc)
		g.Total.add(pc)
		p.Total.add(pc)
	}

	for i := range p.Groups {
		pcs := p.Groups[i].Paychecks
		sort.SliceStable(pcs, func(a, b int) bool { return pcs[a].Name < pcs[b].Name })
	}
	return p
}

// TotalPayroll is the total net pay due on date, without running payroll.
func (s *System) TotalPayroll(date string) (decimal.Decimal, error) {
	day, err := generic.ParseDate("data", date)
	if err != nil {
		return decimal.Zero, err
	}
	return s.Compute(day).Total.Net, nil
}

// RunPayroll computes the payroll for date and then settles union dues of the
// hourly employees it paid. Running the same date twice yields the same
// Payroll and settles nothing the second time.
func (s *System) RunPayroll(date generic.TimePoint) *Payroll {
	p := s.Compute(date)
	for _, pc := range p.Group(KindHourly).Paychecks {
		if e, ok := s.employees[pc.EmployeeID]; ok && e.Union != nil {
			e.Union.settle(date, pc.Shortfall)
		}
	}
	return p
}
