/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the payroll model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

WIRE FORMATS:
  - Dates: d/M/yyyy, as the command surface takes them
  - Money: decimal strings with two places ("1384.61")
  - Hours: decimal strings without trailing zeros ("8.5")

VALIDATION:
  Validation is done by the payroll package, not in DTOs. Request fields are
  passed through as the raw strings the commands expect.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// EMPLOYEES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	Kind       string    `json:"kind"`
	Salary     string    `json:"salary"`
	Commission string    `json:"commission,omitempty"`
	Payment    string    `json:"payment"`
	Schedule   string    `json:"schedule"`
	Union      *UnionDTO `json:"union,omitempty"`
}

type UnionDTO struct {
	MemberID string `json:"member_id"`
	DailyDue string `json:"daily_due"`
	Debt     string `json:"debt"`
}

// CreateEmployeeRequest is the request to create an employee.
type CreateEmployeeRequest struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	Kind       string `json:"kind"`
	Salary     string `json:"salary"`
	Commission string `json:"commission,omitempty"`
}

// ChangeAttributeRequest changes one attribute. Extra carries the
// attribute's follow-up arguments (bank details, union id and due, new rate).
type ChangeAttributeRequest struct {
	Attribute string   `json:"attribute"`
	Value     string   `json:"value"`
	Extra     []string `json:"extra,omitempty"`
}

type AttributeDTO struct {
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
}

type SearchResultDTO struct {
	ID int `json:"id"`
}

// =============================================================================
// ENTRIES
// =============================================================================

// EntryRequest posts a time card (Hours) or a sale/charge (Amount).
type EntryRequest struct {
	Date   string `json:"date"`
	Hours  string `json:"hours,omitempty"`
	Amount string `json:"amount,omitempty"`
}

// HandleDTO returns the handle needed to remove a sale or service charge.
type HandleDTO struct {
	Handle string `json:"handle"`
}

type HoursDTO struct {
	Normal string `json:"normal"`
	Extra  string `json:"extra"`
	Total  string `json:"total"`
}

type AmountDTO struct {
	Total string `json:"total"`
}

// =============================================================================
// SCHEDULES
// =============================================================================

type CreateScheduleRequest struct {
	Description string `json:"description"`
}

type ScheduleDTO struct {
	Schedule string `json:"schedule"`
}

// =============================================================================
// PAYROLL
// =============================================================================

type RunPayrollRequest struct {
	Date string `json:"date"`
}

type PaycheckDTO struct {
	EmployeeID  int    `json:"employee_id"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	NormalHours string `json:"normal_hours,omitempty"`
	ExtraHours  string `json:"extra_hours,omitempty"`
	Base        string `json:"base"`
	Sales       string `json:"sales,omitempty"`
	Commission  string `json:"commission,omitempty"`
	Gross       string `json:"gross"`
	Deductions  string `json:"deductions"`
	Net         string `json:"net"`
	Payment     string `json:"payment"`
}

// RunDTO is a payroll run, archived or just executed.
type RunDTO struct {
	ID         string        `json:"id,omitempty"`
	PayDate    string        `json:"pay_date"`
	CreatedAt  string        `json:"created_at,omitempty"`
	Report     string        `json:"report,omitempty"`
	Gross      string        `json:"gross"`
	Deductions string        `json:"deductions"`
	Net        string        `json:"net"`
	Paychecks  []PaycheckDTO `json:"paychecks,omitempty"`
}

type HistoryDTO struct {
	Undo int `json:"undo"`
	Redo int `json:"redo"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toEmployeeDTO(e *payroll.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:       int(e.ID),
		Name:     e.Name,
		Address:  e.Address,
		Kind:     string(e.Kind()),
		Salary:   e.BaseRate().StringFixed(2),
		Payment:  e.Payment.Describe(e.Address),
		Schedule: e.Schedule,
	}
	if c, ok := e.Pay.(*payroll.CommissionedPay); ok {
		dto.Commission = c.Rate.StringFixed(2)
	}
	if e.Union != nil {
		dto.Union = &UnionDTO{
			MemberID: e.Union.MemberID,
			DailyDue: e.Union.DailyDue.StringFixed(2),
			Debt:     e.Union.Debt.StringFixed(2),
		}
	}
	return dto
}

func toPaycheckDTO(pc payroll.Paycheck) PaycheckDTO {
	dto := PaycheckDTO{
		EmployeeID:  int(pc.EmployeeID),
		Name:        pc.Name,
		Kind:        string(pc.Kind),
		PeriodStart: pc.Period.Start.Format(),
		PeriodEnd:   pc.Period.End.Format(),
		Base:        pc.Base.StringFixed(2),
		Gross:       pc.Gross.StringFixed(2),
		Deductions:  pc.Deductions.StringFixed(2),
		Net:         pc.Net.StringFixed(2),
		Payment:     pc.Payment,
	}
	switch pc.Kind {
	case payroll.KindHourly:
		dto.NormalHours = pc.NormalHours.String()
		dto.ExtraHours = pc.ExtraHours.String()
	case payroll.KindCommissioned:
		dto.Sales = pc.Sales.StringFixed(2)
		dto.Commission = pc.Commission.StringFixed(2)
	}
	return dto
}

func toRunDTO(rec payroll.RunRecord) RunDTO {
	dto := RunDTO{
		ID:         rec.ID,
		PayDate:    rec.PayDate.Format(),
		CreatedAt:  rec.CreatedAt.Format(time.RFC3339),
		Gross:      rec.Total.Gross.StringFixed(2),
		Deductions: rec.Total.Deductions.StringFixed(2),
		Net:        rec.Total.Net.StringFixed(2),
	}
	for _, pc := range rec.Paychecks {
		dto.Paychecks = append(dto.Paychecks, toPaycheckDTO(pc))
	}
	return dto
}
