package payroll

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

// Attribute names shared by ChangeAttribute and Attribute.
const (
	AttrName       = "nome"
	AttrAddress    = "endereco"
	AttrKind       = "tipo"
	AttrSalary     = "salario"
	AttrCommission = "comissao"
	AttrUnion      = "sindicalizado"
	AttrMemberID   = "idSindicato"
	AttrDailyDue   = "taxaSindical"
	AttrPayment    = "metodoPagamento"
	AttrBank       = "banco"
	AttrBranch     = "agencia"
	AttrAccount    = "contaCorrente"
	AttrSchedule   = "agendaPagamento"
)

// ChangeAttribute sets one attribute. Some attributes take extra values:
//
//	tipo             extra[0] = new rate (hourly rate, monthly salary or, for comissionado, the commission)
//	sindicalizado    extra[0] = member id, extra[1] = daily due (when true)
//	metodoPagamento  extra[0..2] = bank, branch, account (when banco)
func (s *System) ChangeAttribute(id, attr, value string, extra ...string) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	arg := func(i int) string {
		if i < len(extra) {
			return extra[i]
		}
		return ""
	}

	switch attr {
	case AttrName, AttrAddress:
		if _, err := generic.RequireText(attr, value); err != nil {
			return err
		}
		if attr == AttrName {
			e.Name = value
		} else {
			e.Address = value
		}
		return nil
	case AttrKind:
		return s.changeKind(e, value, arg(0))
	case AttrSalary:
		return setSalary(e, value)
	case AttrCommission:
		return setCommission(e, value)
	case AttrUnion:
		return s.setUnion(e, value, arg(0), arg(1))
	case AttrPayment:
		return setPayment(e, value, arg(0), arg(1), arg(2))
	case AttrSchedule:
		return s.setSchedule(e, value)
	case "":
		return &generic.FieldError{Field: "atributo", Err: generic.ErrFieldRequired}
	}
	return generic.ErrUnknownAttribute
}

// changeKind replaces e with a new record of the requested variant, keeping
// id, name, address, payment method and union membership. Union debt and
// settled paydays belong to the old variant and are cleared.
func (s *System) changeKind(e *Employee, kind, rate string) error {
	k, err := ParseKind(kind)
	if err != nil {
		return err
	}

	base := e.BaseRate()
	commission := decimal.Zero
	switch k {
	case KindCommissioned:
		if strings.TrimSpace(rate) != "" {
			if commission, err = generic.ParseAmount(AttrCommission, rate); err != nil {
				return err
			}
		} else if pay, ok := e.Pay.(*CommissionedPay); ok {
			commission = pay.Rate
		} else {
			return &generic.FieldError{Field: AttrCommission, Err: generic.ErrFieldRequired}
		}
	default:
		if strings.TrimSpace(rate) != "" {
			if base, err = generic.ParseAmount(AttrSalary, rate); err != nil {
				return err
			}
		}
	}

	if k == e.Kind() {
		switch pay := e.Pay.(type) {
		case *HourlyPay:
			pay.Rate = base
		case *SalariedPay:
			pay.Monthly = base
		case *CommissionedPay:
			pay.Rate = commission
		}
		return nil
	}

	if e.Union != nil {
		e.Union.resetDues()
	}
	s.employees[e.ID] = &Employee{
		ID:       e.ID,
		Name:     e.Name,
		Address:  e.Address,
		Payment:  e.Payment,
		Union:    e.Union,
		Schedule: DefaultSchedule(k),
		Pay:      newPay(k, base, commission),
	}
	return nil
}

func setSalary(e *Employee, value string) error {
	amount, err := generic.ParseAmount(AttrSalary, value)
	if err != nil {
		return err
	}
	switch pay := e.Pay.(type) {
	case *HourlyPay:
		pay.Rate = amount
	case *SalariedPay:
		pay.Monthly = amount
	case *CommissionedPay:
		pay.Monthly = amount
	}
	return nil
}

func setCommission(e *Employee, value string) error {
	pay, ok := e.Pay.(*CommissionedPay)
	if !ok {
		return generic.ErrWrongVariant
	}
	rate, err := generic.ParseAmount(AttrCommission, value)
	if err != nil {
		return err
	}
	pay.Rate = rate
	return nil
}

// setUnion attaches or clears the membership. Re-joining under the same
// member id only updates the daily due.
func (s *System) setUnion(e *Employee, value, memberID, due string) error {
	join, err := generic.ParseBool(AttrUnion, value)
	if err != nil {
		return err
	}
	if !join {
		e.Union = nil
		return nil
	}
	if _, err := generic.RequireText(AttrMemberID, memberID); err != nil {
		return err
	}
	dailyDue, err := generic.ParseAmount(AttrDailyDue, due)
	if err != nil {
		return err
	}
	for _, other := range s.employees {
		if other.ID != e.ID && other.Union != nil && other.Union.MemberID == memberID {
			return generic.ErrDuplicateMemberID
		}
	}

	if e.Union != nil && e.Union.MemberID == memberID {
		e.Union.DailyDue = dailyDue
		return nil
	}
	e.Union = &UnionMembership{MemberID: memberID, DailyDue: dailyDue, Debt: decimal.Zero}
	return nil
}

func setPayment(e *Employee, value, bank, branch, account string) error {
	switch PaymentKind(value) {
	case PayCash, PayMail:
		e.Payment = PaymentMethod{Kind: PaymentKind(value)}
		return nil
	case PayBank:
		for _, f := range [][2]string{{AttrBank, bank}, {AttrBranch, branch}, {AttrAccount, account}} {
			if _, err := generic.RequireText(f[0], f[1]); err != nil {
				return err
			}
		}
		e.Payment = PaymentMethod{Kind: PayBank, Bank: bank, Branch: branch, Account: account}
		return nil
	case "":
		return &generic.FieldError{Field: AttrPayment, Err: generic.ErrFieldRequired}
	}
	return generic.ErrInvalidPaymentMethod
}

func (s *System) setSchedule(e *Employee, value string) error {
	if !s.schedules.Has(value) {
		return generic.ErrScheduleUnavailable
	}
	canon, _ := Canonical(value)
	e.Schedule = canon
	return nil
}
