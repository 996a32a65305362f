// Package memory provides an in-memory payroll run archive.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// MEMORY ARCHIVE - In-memory implementation (for testing/dev)
// =============================================================================

type Archive struct {
	mu   sync.RWMutex
	runs map[string]payroll.RunRecord
}

func New() *Archive {
	return &Archive{runs: make(map[string]payroll.RunRecord)}
}

// SaveRun stores a copy of rec. Append-only: an existing id is rejected.
func (a *Archive) SaveRun(_ context.Context, rec payroll.RunRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.runs[rec.ID]; ok {
		return generic.ErrDuplicateRun
	}
	rec.Paychecks = append([]payroll.Paycheck(nil), rec.Paychecks...)
	a.runs[rec.ID] = rec
	return nil
}

func (a *Archive) GetRun(_ context.Context, id string) (*payroll.RunRecord, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	rec, ok := a.runs[id]
	if !ok {
		return nil, generic.ErrRunNotFound
	}
	rec.Paychecks = append([]payroll.Paycheck(nil), rec.Paychecks...)
	return &rec, nil
}

// ListRuns returns every run newest first, without paychecks.
func (a *Archive) ListRuns(_ context.Context) ([]payroll.RunRecord, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	result := make([]payroll.RunRecord, 0, len(a.runs))
	for _, rec := range a.runs {
		rec.Paychecks = nil
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}
