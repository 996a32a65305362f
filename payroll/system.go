package payroll

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/generic"
)

// =============================================================================
// SYSTEM - The aggregate every operation runs against
// =============================================================================

// System owns the employee arena, the id counter and the schedule registry.
// It is not safe for concurrent use; callers serialize access (see command.Engine).
type System struct {
	employees map[EmployeeID]*Employee
	lastID    int
	schedules *Registry

	// NewHandle issues receipt and charge handles.
	NewHandle func() string
}

func NewSystem() *System {
	return &System{
		employees: make(map[EmployeeID]*Employee),
		schedules: NewRegistry(),
		NewHandle: uuid.NewString,
	}
}

// Reset drops every employee and custom schedule and restarts ids from 1.
func (s *System) Reset() {
	s.employees = make(map[EmployeeID]*Employee)
	s.lastID = 0
	s.schedules = NewRegistry()
}

// =============================================================================
// REGISTRATION
// =============================================================================

// AddEmployee registers a new employee. commission is required for
// comissionado and must be blank otherwise.
func (s *System) AddEmployee(name, address, kind, salary, commission string) (EmployeeID, error) {
	if _, err := generic.RequireText("nome", name); err != nil {
		return 0, err
	}
	if _, err := generic.RequireText("endereco", address); err != nil {
		return 0, err
	}
	k, err := ParseKind(kind)
	if err != nil {
		return 0, err
	}
	base, err := generic.ParseAmount("salario", salary)
	if err != nil {
		return 0, err
	}
	rate := decimal.Zero
	if k == KindCommissioned {
		if rate, err = generic.ParseAmount("comissao", commission); err != nil {
			return 0, err
		}
	} else if strings.TrimSpace(commission) != "" {
		return 0, &generic.FieldError{Field: "comissao", Err: generic.ErrWrongVariant}
	}

	s.lastID++
	id := EmployeeID(s.lastID)
	s.employees[id] = &Employee{
		ID:       id,
		Name:     name,
		Address:  address,
		Payment:  PaymentMethod{Kind: PayCash},
		Schedule: DefaultSchedule(k),
		Pay:      newPay(k, base, rate),
	}
	return id, nil
}

func (s *System) RemoveEmployee(id string) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	delete(s.employees, e.ID)
	return nil
}

// RegisterSchedule makes a custom descriptor available to agendaPagamento.
func (s *System) RegisterSchedule(desc string) (string, error) {
	return s.schedules.Register(desc)
}

// =============================================================================
// LOOKUPS
// =============================================================================

func (s *System) lookup(id string) (*Employee, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &generic.FieldError{Field: "id", Err: generic.ErrFieldRequired}
	}
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return nil, generic.ErrEmployeeNotFound
	}
	e, ok := s.employees[EmployeeID(n)]
	if !ok {
		return nil, generic.ErrEmployeeNotFound
	}
	return e, nil
}

func (s *System) lookupMember(memberID string) (*Employee, error) {
	if strings.TrimSpace(memberID) == "" {
		return nil, &generic.FieldError{Field: "idSindicato", Err: generic.ErrFieldRequired}
	}
	for _, e := range s.employees {
		if e.Union != nil && e.Union.MemberID == memberID {
			return e, nil
		}
	}
	return nil, generic.ErrMemberNotFound
}

// sorted returns the live employees in id order.
func (s *System) sorted() []*Employee {
	list := make([]*Employee, 0, len(s.employees))
	for _, e := range s.employees {
		list = append(list, e)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// Employee returns a copy of the employee with the given id.
func (s *System) Employee(id string) (*Employee, error) {
	e, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	return e.Clone(), nil
}

// Employees returns copies of all employees in id order.
func (s *System) Employees() []*Employee {
	list := s.sorted()
	for i, e := range list {
		list[i] = e.Clone()
	}
	return list
}

func (s *System) Count() int { return len(s.employees) }

func (s *System) Schedules() []string { return s.schedules.List() }

// usesCustomSchedules is true once any employee left its variant's default schedule.
func (s *System) usesCustomSchedules() bool {
	for _, e := range s.employees {
		if e.Schedule != DefaultSchedule(e.Kind()) {
			return true
		}
	}
	return false
}
