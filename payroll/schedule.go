package payroll

import (
	"strconv"
	"strings"

	"github.com/warp/payroll-engine/generic"
)

// =============================================================================
// SCHEDULE DESCRIPTORS
// =============================================================================

// Default descriptors per variant.
const (
	ScheduleWeeklyFriday   = "semanal 5"
	ScheduleMonthlyLastDay = "mensal $"
	ScheduleBiweeklyFriday = "semanal 2 5"
)

func DefaultSchedule(k Kind) string {
	switch k {
	case KindHourly:
		return ScheduleWeeklyFriday
	case KindCommissioned:
		return ScheduleBiweeklyFriday
	default:
		return ScheduleMonthlyLastDay
	}
}

// Schedule is a parsed descriptor. Monthly schedules use Day (0 means the last
// business day); weekly schedules use Weeks and Weekday (ISO, Monday=1).
type Schedule struct {
	Monthly bool
	Day     int
	Weeks   int
	Weekday int
}

// ParseSchedule accepts "mensal $", "mensal N" (1-28) and "semanal [N] D"
// (N 1-52, D 1-7). Extra whitespace is ignored.
func ParseSchedule(desc string) (Schedule, error) {
	f := strings.Fields(desc)
	if len(f) < 2 {
		return Schedule{}, generic.ErrInvalidSchedule
	}
	switch f[0] {
	case "mensal":
		if len(f) != 2 {
			return Schedule{}, generic.ErrInvalidSchedule
		}
		if f[1] == "$" {
			return Schedule{Monthly: true}, nil
		}
		day, ok := inRange(f[1], 1, 28)
		if !ok {
			return Schedule{}, generic.ErrInvalidSchedule
		}
		return Schedule{Monthly: true, Day: day}, nil
	case "semanal":
		weeks := 1
		if len(f) == 3 {
			n, ok := inRange(f[1], 1, 52)
			if !ok {
				return Schedule{}, generic.ErrInvalidSchedule
			}
			weeks = n
		} else if len(f) != 2 {
			return Schedule{}, generic.ErrInvalidSchedule
		}
		wd, ok := inRange(f[len(f)-1], 1, 7)
		if !ok {
			return Schedule{}, generic.ErrInvalidSchedule
		}
		return Schedule{Weeks: weeks, Weekday: wd}, nil
	}
	return Schedule{}, generic.ErrInvalidSchedule
}

func inRange(s string, lo, hi int) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil && n >= lo && n <= hi
}

// String returns the canonical descriptor. "semanal 1 5" and "semanal 5" are the same schedule.
func (sc Schedule) String() string {
	switch {
	case sc.Monthly && sc.Day == 0:
		return "mensal $"
	case sc.Monthly:
		return "mensal " + strconv.Itoa(sc.Day)
	case sc.Weeks == 1:
		return "semanal " + strconv.Itoa(sc.Weekday)
	default:
		return "semanal " + strconv.Itoa(sc.Weeks) + " " + strconv.Itoa(sc.Weekday)
	}
}

// Canonical parses desc and returns its canonical form.
func Canonical(desc string) (string, error) {
	sc, err := ParseSchedule(desc)
	if err != nil {
		return "", err
	}
	return sc.String(), nil
}

// =============================================================================
// REGISTRY - Descriptors employees may be assigned
// =============================================================================

type Registry struct {
	descriptors []string
}

// NewRegistry returns a registry holding only the three defaults.
func NewRegistry() *Registry {
	return &Registry{descriptors: []string{ScheduleWeeklyFriday, ScheduleMonthlyLastDay, ScheduleBiweeklyFriday}}
}

// Register validates and adds a custom descriptor, returning its canonical form.
func (r *Registry) Register(desc string) (string, error) {
	canon, err := Canonical(desc)
	if err != nil {
		return "", err
	}
	if r.Has(canon) {
		return "", generic.ErrDuplicateSchedule
	}
	r.descriptors = append(r.descriptors, canon)
	return canon, nil
}

// Has reports whether desc (in any accepted spelling) is registered.
func (r *Registry) Has(desc string) bool {
	canon, err := Canonical(desc)
	if err != nil {
		return false
	}
	for _, d := range r.descriptors {
		if d == canon {
			return true
		}
	}
	return false
}

func (r *Registry) List() []string { return append([]string(nil), r.descriptors...) }

func (r *Registry) clone() *Registry { return &Registry{descriptors: r.List()} }
