package payroll

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

// =============================================================================
// QUERIES - Read-only views of the System
// =============================================================================

// Attribute returns an attribute formatted for display (money with two
// decimals and a comma separator).
func (s *System) Attribute(id, attr string) (string, error) {
	e, err := s.lookup(id)
	if err != nil {
		return "", err
	}
	switch attr {
	case AttrName:
		return e.Name, nil
	case AttrAddress:
		return e.Address, nil
	case AttrKind:
		return string(e.Kind()), nil
	case AttrSalary:
		return generic.FormatMoney(e.BaseRate()), nil
	case AttrCommission:
		pay, ok := e.Pay.(*CommissionedPay)
		if !ok {
			return "", generic.ErrWrongVariant
		}
		return generic.FormatMoney(pay.Rate), nil
	case AttrPayment:
		return string(e.Payment.Kind), nil
	case AttrBank, AttrBranch, AttrAccount:
		if e.Payment.Kind != PayBank {
			return "", generic.ErrNotBankPayment
		}
		return map[string]string{
			AttrBank:    e.Payment.Bank,
			AttrBranch:  e.Payment.Branch,
			AttrAccount: e.Payment.Account,
		}[attr], nil
	case AttrUnion:
		return strconv.FormatBool(e.Union != nil), nil
	case AttrMemberID, AttrDailyDue:
		if e.Union == nil {
			return "", generic.ErrNotUnionMember
		}
		if attr == AttrMemberID {
			return e.Union.MemberID, nil
		}
		return generic.FormatMoney(e.Union.DailyDue), nil
	case AttrSchedule:
		return e.Schedule, nil
	case "":
		return "", &generic.FieldError{Field: "atributo", Err: generic.ErrFieldRequired}
	}
	return "", generic.ErrUnknownAttribute
}

// EmployeeByName returns the id of the index-th (1-based, id order) employee
// whose name contains name.
func (s *System) EmployeeByName(name string, index int) (EmployeeID, error) {
	if _, err := generic.RequireText(AttrName, name); err != nil {
		return 0, err
	}
	if index < 1 {
		return 0, generic.ErrNoEmployeeWithName
	}
	for _, e := range s.sorted() {
		if strings.Contains(e.Name, name) {
			if index--; index == 0 {
				return e.ID, nil
			}
		}
	}
	return 0, generic.ErrNoEmployeeWithName
}

// HourTotals are the hours an hourly employee worked in a [from, to) range.
type HourTotals struct {
	Normal decimal.Decimal
	Extra  decimal.Decimal
}

func (h HourTotals) Total() decimal.Decimal { return h.Normal.Add(h.Extra) }

func (s *System) HoursWorked(id, from, to string) (HourTotals, error) {
	e, err := s.lookup(id)
	if err != nil {
		return HourTotals{}, err
	}
	pay, ok := e.Pay.(*HourlyPay)
	if !ok {
		return HourTotals{}, generic.ErrWrongVariant
	}
	r, err := parseRange(from, to)
	if err != nil {
		return HourTotals{}, err
	}
	normal, extra := sumHours(pay.TimeCards, r.Contains)
	return HourTotals{Normal: normal, Extra: extra}, nil
}

// SalesTotal sums a commissioned employee's sales in [from, to).
func (s *System) SalesTotal(id, from, to string) (decimal.Decimal, error) {
	e, err := s.lookup(id)
	if err != nil {
		return decimal.Zero, err
	}
	pay, ok := e.Pay.(*CommissionedPay)
	if !ok {
		return decimal.Zero, generic.ErrWrongVariant
	}
	r, err := parseRange(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return sumSales(pay.Sales, r.Contains), nil
}

// ServiceChargesTotal sums a union member's service charges in [from, to).
func (s *System) ServiceChargesTotal(id, from, to string) (decimal.Decimal, error) {
	e, err := s.lookup(id)
	if err != nil {
		return decimal.Zero, err
	}
	if e.Union == nil {
		return decimal.Zero, generic.ErrNotUnionMember
	}
	r, err := parseRange(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return sumCharges(e.Union.Charges, r.Contains), nil
}

func parseRange(from, to string) (generic.HalfOpen, error) {
	start, err := generic.ParseDate("dataInicial", from)
	if err != nil {
		return generic.HalfOpen{}, err
	}
	end, err := generic.ParseDate("dataFinal", to)
	if err != nil {
		return generic.HalfOpen{}, err
	}
	return generic.NewHalfOpen(start, end)
}
