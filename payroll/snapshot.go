package payroll

// =============================================================================
// SNAPSHOT - Memento of the whole System
// =============================================================================

// Snapshot is an independent deep copy of the employee arena, id counter and
// schedule registry. Mutating the System after Save never changes a snapshot,
// and a snapshot can be restored any number of times.
type Snapshot struct {
	employees map[EmployeeID]*Employee
	lastID    int
	schedules *Registry
}

// Save captures the current state.
func (s *System) Save() *Snapshot {
	return &Snapshot{
		employees: cloneArena(s.employees),
		lastID:    s.lastID,
		schedules: s.schedules.clone(),
	}
}

// Restore replaces the current state with a copy of snap.
func (s *System) Restore(snap *Snapshot) {
	s.employees = cloneArena(snap.employees)
	s.lastID = snap.lastID
	s.schedules = snap.schedules.clone()
}

func cloneArena(src map[EmployeeID]*Employee) map[EmployeeID]*Employee {
	dst := make(map[EmployeeID]*Employee, len(src))
	for id, e := range src {
		dst[id] = e.Clone()
	}
	return dst
}
