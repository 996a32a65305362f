package command

import (
	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// EMPLOYEES
// =============================================================================

// CreateEmployee registers an employee. ID is set on success.
type CreateEmployee struct {
	Name, Address, Kind, Salary, Commission string

	ID payroll.EmployeeID
}

type RemoveEmployee struct{ ID string }

// ChangeAttribute changes one attribute; see payroll.System.ChangeAttribute for Extra.
type ChangeAttribute struct {
	ID, Attribute, Value string
	Extra                []string
}

// ToggleUnion joins (memberID, dailyDue required) or leaves the union.
func ToggleUnion(id string, member bool, memberID, dailyDue string) *ChangeAttribute {
	if !member {
		return &ChangeAttribute{ID: id, Attribute: payroll.AttrUnion, Value: "false"}
	}
	return &ChangeAttribute{ID: id, Attribute: payroll.AttrUnion, Value: "true", Extra: []string{memberID, dailyDue}}
}

// BankPayment switches an employee to bank deposit.
func BankPayment(id, bank, branch, account string) *ChangeAttribute {
	return &ChangeAttribute{ID: id, Attribute: payroll.AttrPayment, Value: string(payroll.PayBank), Extra: []string{bank, branch, account}}
}

// =============================================================================
// ENTRIES
// =============================================================================

type PostTimeCard struct{ ID, Date, Hours string }

type RemoveTimeCard struct{ ID, Date string }

// PostSale records a sale. Receipt is the handle RemoveSale takes.
type PostSale struct {
	ID, Date, Amount string

	Receipt string
}

type RemoveSale struct{ ID, Receipt string }

// PostServiceCharge records a union charge. Charge is the handle RemoveServiceCharge takes.
type PostServiceCharge struct {
	MemberID, Date, Amount string

	Charge string
}

type RemoveServiceCharge struct{ MemberID, Charge string }

// =============================================================================
// SYSTEM
// =============================================================================

// CreateSchedule registers a custom payment schedule descriptor.
type CreateSchedule struct {
	Description string

	Canonical string
}

// RunPayroll pays everyone due on Date and settles hourly union dues. Result
// is set on success.
type RunPayroll struct {
	Date string

	Result *payroll.Payroll
}

// Reset clears every employee and custom schedule.
type Reset struct{}

// =============================================================================
// APPLY
// =============================================================================

func (c *CreateEmployee) Apply(s *payroll.System) (err error) {
	c.ID, err = s.AddEmployee(c.Name, c.Address, c.Kind, c.Salary, c.Commission)
	return err
}

func (c *RemoveEmployee) Apply(s *payroll.System) error { return s.RemoveEmployee(c.ID) }

func (c *ChangeAttribute) Apply(s *payroll.System) error {
	return s.ChangeAttribute(c.ID, c.Attribute, c.Value, c.Extra...)
}

func (c *PostTimeCard) Apply(s *payroll.System) error { return s.PostTimeCard(c.ID, c.Date, c.Hours) }

func (c *RemoveTimeCard) Apply(s *payroll.System) error { return s.RemoveTimeCard(c.ID, c.Date) }

func (c *PostSale) Apply(s *payroll.System) (err error) {
	c.Receipt, err = s.PostSale(c.ID, c.Date, c.Amount)
	return err
}

func (c *RemoveSale) Apply(s *payroll.System) error { return s.RemoveSale(c.ID, c.Receipt) }

func (c *PostServiceCharge) Apply(s *payroll.System) (err error) {
	c.Charge, err = s.PostServiceCharge(c.MemberID, c.Date, c.Amount)
	return err
}

func (c *RemoveServiceCharge) Apply(s *payroll.System) error {
	return s.RemoveServiceCharge(c.MemberID, c.Charge)
}

func (c *CreateSchedule) Apply(s *payroll.System) (err error) {
	c.Canonical, err = s.RegisterSchedule(c.Description)
	return err
}

func (c *RunPayroll) Apply(s *payroll.System) error {
	day, err := generic.ParseDate("data", c.Date)
	if err != nil {
		return err
	}
	c.Result = s.RunPayroll(day)
	return nil
}

func (c *Reset) Apply(s *payroll.System) error {
	s.Reset()
	return nil
}

// =============================================================================
// OPERATION NAMES (logging)
// =============================================================================

func (c *CreateEmployee) Op() string      { return "create-employee" }
func (c *RemoveEmployee) Op() string      { return "remove-employee" }
func (c *ChangeAttribute) Op() string     { return "change-" + c.Attribute }
func (c *PostTimeCard) Op() string        { return "post-timecard" }
func (c *RemoveTimeCard) Op() string      { return "remove-timecard" }
func (c *PostSale) Op() string            { return "post-sale" }
func (c *RemoveSale) Op() string          { return "remove-sale" }
func (c *PostServiceCharge) Op() string   { return "post-service-charge" }
func (c *RemoveServiceCharge) Op() string { return "remove-service-charge" }
func (c *CreateSchedule) Op() string      { return "create-schedule" }
func (c *RunPayroll) Op() string          { return "run-payroll" }
func (c *Reset) Op() string               { return "reset" }
