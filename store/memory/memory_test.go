package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll-engine/generic"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/memory"
)

func record(id string, created time.Time) payroll.RunRecord {
	return payroll.RunRecord{
		ID:        id,
		PayDate:   generic.NewTimePoint(2005, time.January, 7),
		CreatedAt: created,
		Paychecks: []payroll.Paycheck{{EmployeeID: 1, Name: "Ana", Net: decimal.NewFromInt(80)}},
		Total:     payroll.Totals{Net: decimal.NewFromInt(80)},
	}
}

func TestArchive_SaveAndGet(t *testing.T) {
	a := memory.New()
	ctx := context.Background()
	rec := record("r1", time.Now())

	require.NoError(t, a.SaveRun(ctx, rec))
	got, err := a.GetRun(ctx, "r1")

	require.NoError(t, err)
	assert.Equal(t, rec, *got)
}

func TestArchive_StoresCopies(t *testing.T) {
	a := memory.New()
	ctx := context.Background()
	rec := record("r1", time.Now())
	require.NoError(t, a.SaveRun(ctx, rec))

	// WHEN: Caller mutates both its input and a returned record
	rec.Paychecks[0].Name = "changed"
	got, _ := a.GetRun(ctx, "r1")
	got.Paychecks[0].Name = "changed again"

	// THEN
	again, err := a.GetRun(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", again.Paychecks[0].Name)
}

func TestArchive_DuplicateAndUnknown(t *testing.T) {
	a := memory.New()
	ctx := context.Background()
	require.NoError(t, a.SaveRun(ctx, record("r1", time.Now())))

	assert.ErrorIs(t, a.SaveRun(ctx, record("r1", time.Now())), generic.ErrDuplicateRun)
	_, err := a.GetRun(ctx, "r2")
	assert.ErrorIs(t, err, generic.ErrRunNotFound)
}

func TestArchive_ListNewestFirst(t *testing.T) {
	a := memory.New()
	ctx := context.Background()
	base := time.Date(2005, time.January, 7, 12, 0, 0, 0, time.UTC)
	require.NoError(t, a.SaveRun(ctx, record("a", base.Add(time.Hour))))
	require.NoError(t, a.SaveRun(ctx, record("b", base)))
	require.NoError(t, a.SaveRun(ctx, record("c", base.Add(2*time.Hour))))

	runs, err := a.ListRuns(ctx)

	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{runs[0].ID, runs[1].ID, runs[2].ID})
	for _, r := range runs {
		assert.Nil(t, r.Paychecks)
	}
}
