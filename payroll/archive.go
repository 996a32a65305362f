package payroll

import (
	"context"
	"time"

	"github.com/warp/payroll-engine/generic"
)

// =============================================================================
// ARCHIVE - Audit trail of payroll runs
// =============================================================================

// RunRecord is an archived payroll run.
type RunRecord struct {
	ID        string
	PayDate   generic.TimePoint
	CreatedAt time.Time
	Paychecks []Paycheck
	Total     Totals
}

// Archive persists run records. Records are append-only. GetRun fails with
// generic.ErrRunNotFound for unknown ids; ListRuns returns newest first and
// leaves Paychecks empty.
//
// Implementations:
//   - store/memory: In-memory (testing)
//   - store/sqlite: SQLite (production)
type Archive interface {
	SaveRun(ctx context.Context, rec RunRecord) error
	GetRun(ctx context.Context, id string) (*RunRecord, error)
	ListRuns(ctx context.Context) ([]RunRecord, error)
}
