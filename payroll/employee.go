/*
Package payroll implements the payroll domain: employees and their pay
variants, union membership, payment schedules, pay computation and the
payroll run.

PURPOSE:
  Everything a payday needs to know lives on the System aggregate. Operations
  take the raw strings the outside world sends (dates as d/M/yyyy, numbers
  with ',' or '.'), validate every field first and only then mutate, so a
  failed operation never leaves a partial update behind.

KEY CONCEPTS IN THIS FILE (employee.go):
  - Employee: the shared base record (id, name, address, payment, union, schedule)
  - Pay: the variant payload, one of HourlyPay, SalariedPay, CommissionedPay
  - Kind: the variant discriminant, using the wire names horista/assalariado/comissionado
  - PaymentMethod: cash, mail or bank deposit

VARIANT DISPATCH:
  Code that depends on the variant switches on the Pay value:

    switch pay := e.Pay.(type) {
    case *HourlyPay:
        ...
    case *CommissionedPay:
        ...
    }

  Changing the variant builds a new Employee and replaces the old one by id.

SEE ALSO:
  - system.go: The aggregate that owns employees
  - mutate.go: Attribute and variant changes
  - snapshot.go: Deep copies used by undo/redo
*/
package payroll

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

// =============================================================================
// IDENTIFIERS AND DISCRIMINANTS
// =============================================================================

type EmployeeID int

func (id EmployeeID) String() string { return strconv.Itoa(int(id)) }

type Kind string

const (
	KindHourly       Kind = "horista"
	KindSalaried     Kind = "assalariado"
	KindCommissioned Kind = "comissionado"
)

// Kinds lists the variants in report order.
var Kinds = []Kind{KindHourly, KindSalaried, KindCommissioned}

func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.TrimSpace(s)); k {
	case KindHourly, KindSalaried, KindCommissioned:
		return k, nil
	}
	return "", &generic.FieldError{Field: "tipo", Err: generic.ErrInvalidType}
}

// Label is the report heading for the variant.
func (k Kind) Label() string {
	switch k {
	case KindHourly:
		return "HORISTAS"
	case KindSalaried:
		return "ASSALARIADOS"
	case KindCommissioned:
		return "COMISSIONADOS"
	}
	return strings.ToUpper(string(k))
}

// =============================================================================
// PAYMENT METHOD
// =============================================================================

type PaymentKind string

const (
	PayCash PaymentKind = "emMaos"
	PayMail PaymentKind = "correios"
	PayBank PaymentKind = "banco"
)

type PaymentMethod struct {
	Kind    PaymentKind
	Bank    string
	Branch  string
	Account string
}

// Describe renders the payment method the way the payroll report prints it.
func (p PaymentMethod) Describe(address string) string {
	switch p.Kind {
	case PayMail:
		return "Correios, " + address
	case PayBank:
		return fmt.Sprintf("%s, Ag. %s CC %s", p.Bank, p.Branch, p.Account)
	default:
		return "Em maos"
	}
}

// =============================================================================
// VARIANT PAYLOADS
// =============================================================================

// Pay is the variant-specific part of an Employee.
type Pay interface {
	Kind() Kind
	clone() Pay
}

type HourlyPay struct {
	Rate decimal.Decimal

	// TimeCards is kept sorted by date, one card per date.
	TimeCards []TimeCard
}

type SalariedPay struct {
	Monthly decimal.Decimal
}

type CommissionedPay struct {
	Monthly decimal.Decimal
	Rate    decimal.Decimal
	Sales   []SalesReceipt
}

func (p *HourlyPay) Kind() Kind       { return KindHourly }
func (p *SalariedPay) Kind() Kind     { return KindSalaried }
func (p *CommissionedPay) Kind() Kind { return KindCommissioned }

func (p *HourlyPay) clone() Pay {
	return &HourlyPay{Rate: p.Rate, TimeCards: append([]TimeCard(nil), p.TimeCards...)}
}

func (p *SalariedPay) clone() Pay { c := *p; return &c }

func (p *CommissionedPay) clone() Pay {
	return &CommissionedPay{Monthly: p.Monthly, Rate: p.Rate, Sales: append([]SalesReceipt(nil), p.Sales...)}
}

// =============================================================================
// EMPLOYEE
// =============================================================================

type Employee struct {
	ID       EmployeeID
	Name     string
	Address  string
	Payment  PaymentMethod
	Union    *UnionMembership
	Schedule string
	Pay      Pay
}

func (e *Employee) Kind() Kind { return e.Pay.Kind() }

// BaseRate is the hourly rate or the monthly salary, the amount carried
// forward when the variant changes without an explicit new rate.
func (e *Employee) BaseRate() decimal.Decimal {
	switch pay := e.Pay.(type) {
	case *HourlyPay:
		return pay.Rate
	case *SalariedPay:
		return pay.Monthly
	case *CommissionedPay:
		return pay.Monthly
	}
	return decimal.Zero
}

// Clone returns a copy sharing no mutable state with e.
func (e *Employee) Clone() *Employee {
	c := *e
	c.Pay = e.Pay.clone()
	if e.Union != nil {
		c.Union = e.Union.clone()
	}
	return &c
}

// newPay builds the payload for a freshly registered or re-typed employee.
func newPay(kind Kind, base, commission decimal.Decimal) Pay {
	switch kind {
	case KindHourly:
		return &HourlyPay{Rate: base}
	case KindCommissioned:
		return &CommissionedPay{Monthly: base, Rate: commission}
	default:
		return &SalariedPay{Monthly: base}
	}
}
